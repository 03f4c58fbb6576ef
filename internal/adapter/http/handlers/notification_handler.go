package handlers

import (
	"errors"
	"log"
	"net/http"

	response "github.com/Sharrmavishal/startsolomay26-sub001/internal/adapter/http/dto/response"
	"github.com/Sharrmavishal/startsolomay26-sub001/internal/usecase"
	"github.com/Sharrmavishal/startsolomay26-sub001/pkg"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the per-user notification feed.

type NotificationHandler struct {
	usecase usecase.INotificationUseCase
}

func NewNotificationHandler(uc usecase.INotificationUseCase) *NotificationHandler {
	return &NotificationHandler{usecase: uc}
}

// ListByUser godoc
// @Summary      List notifications for a user
// @Tags         notifications
// @Produce      json
// @Param        user_id  path  string  true  "user id"
// @Success      200  {object}  response.NotificationListResponse
// @Failure      400  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /notifications/{user_id} [get]
func (h *NotificationHandler) ListByUser(c *gin.Context) {
	userID := c.Param("user_id")

	items, err := h.usecase.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[notification][handler] list failed user_id=%s err=%v", userID, err)
		appErr := mapNotificationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromNotifications(items))
}

func mapNotificationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidUserID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
