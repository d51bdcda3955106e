package api

import (
	"net/http"

	reqdto "hotel-reservations/internal/handler/dto/request"
	resdto "hotel-reservations/internal/handler/dto/response"
	"hotel-reservations/internal/handler/httperr"
	"hotel-reservations/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availability usecase.AvailabilityQueries
}

func NewAvailabilityHandler(availability usecase.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

func (h *AvailabilityHandler) Search(c *gin.Context) {
	var q reqdto.SearchAvailabilityQuery
	if bindErr := c.ShouldBindQuery(&q); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid query parameters", nil)
		return
	}

	hotelID, err := uuid.Parse(q.HotelID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid hotel ID format", nil)
		return
	}
	stayRange, err := reqdto.ParseStayRange(q.CheckIn, q.CheckOut)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid stay dates", nil)
		return
	}
	filter, err := q.Filter()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid search filter", nil)
		return
	}

	candidates, err := h.availability.Search(c.Request.Context(), hotelID, stayRange, filter)
	if err != nil {
		httperr.AbortDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomCandidates(candidates))
}

// CreateBlock creates a front-desk hold or a maintenance block outside the
// booking saga. Staff only.
func (h *AvailabilityHandler) CreateBlock(c *gin.Context) {
	var req reqdto.CreateBlockRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID format", nil)
		return
	}
	stayRange, err := reqdto.ParseStayRange(req.CheckIn, req.CheckOut)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid stay dates", nil)
		return
	}
	kind, err := req.BlockKind()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid block kind", nil)
		return
	}

	receipt, err := h.availability.Block(c.Request.Context(), roomID, stayRange, kind)
	if err != nil {
		httperr.AbortDomain(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromHoldReceipt(receipt))
}

func (h *AvailabilityHandler) Release(c *gin.Context) {
	blockID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid block ID format", nil)
		return
	}

	if err := h.availability.Release(c.Request.Context(), blockID); err != nil {
		httperr.AbortDomain(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
