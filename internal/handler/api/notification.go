package api

import (
	"net/http"
	"strconv"

	resdto "hotel-reservations/internal/handler/dto/response"
	"hotel-reservations/internal/handler/httperr"
	"hotel-reservations/internal/handler/middleware"
	"hotel-reservations/internal/infra/repository"
	"hotel-reservations/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const defaultNotificationLimit = 50

type NotificationHandler struct {
	notifications *repository.NotificationRepository
}

func NewNotificationHandler(notifications *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) ListMine(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	limit := defaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			if err == nil {
				err = errs.New("limit must be positive")
			}
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	records, err := h.notifications.ListByCustomer(c.Request.Context(), customerID, limit)
	if err != nil {
		httperr.AbortDomain(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotifications(records))
}
