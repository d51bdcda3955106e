package api

import (
	"net/http"

	"hotel-reservations/internal/domain/pricing"
	reqdto "hotel-reservations/internal/handler/dto/request"
	resdto "hotel-reservations/internal/handler/dto/response"
	"hotel-reservations/internal/handler/httperr"
	"hotel-reservations/internal/handler/middleware"
	"hotel-reservations/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	orchestrator usecase.ReservationSagas
	reservations usecase.ReservationQueries
}

func NewReservationHandler(orchestrator usecase.ReservationSagas, reservations usecase.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		orchestrator: orchestrator,
		reservations: reservations,
	}
}

func (h *ReservationHandler) Create(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	stayRange, err := req.StayRange()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid stay dates", nil)
		return
	}

	res, err := h.orchestrator.CreateReservation(c.Request.Context(), usecase.CreateReservationInput{
		CustomerID: customerID,
		HotelID:    req.HotelID,
		RoomType:   pricing.RoomType(req.RoomType),
		Range:      stayRange,
		AddOns:     req.AddOns,
		Coupon:     req.GetCoupon(),
		RoomID:     req.RoomID,
		GuestCount: req.GuestCount,
		Method:     req.Method(),
	})
	if err != nil {
		httperr.AbortDomain(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservation(res))
}

func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	res, err := h.reservations.Get(c.Request.Context(), id)
	if err != nil {
		httperr.AbortDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

func (h *ReservationHandler) ListMine(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	list, err := h.reservations.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		httperr.AbortDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservations(list))
}

func (h *ReservationHandler) Modify(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req reqdto.ModifyReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	res, err := h.reservations.Modify(c.Request.Context(), id, usecase.ModifyInput{
		GuestCount: req.GuestCount,
		AddOns:     req.AddOns,
	})
	if err != nil {
		httperr.AbortDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	res, err := h.orchestrator.CancelReservation(c.Request.Context(), id)
	if err != nil {
		httperr.AbortDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

func (h *ReservationHandler) CheckIn(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	res, err := h.reservations.CheckIn(c.Request.Context(), id)
	if err != nil {
		httperr.AbortDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

func (h *ReservationHandler) CheckOut(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	res, err := h.reservations.CheckOut(c.Request.Context(), id)
	if err != nil {
		httperr.AbortDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

func (h *ReservationHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
