// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/amaanah/backend/internal/application/usecase/notification"
	domainerror "github.com/amaanah/backend/internal/domain/error"
	"github.com/amaanah/backend/internal/integration/entrypoint/dto"
	"github.com/amaanah/backend/internal/integration/entrypoint/middleware"
)

// NotificationController handles notification feed endpoints.
type NotificationController struct {
	listUseCase     *notification.ListNotificationsUseCase
	markReadUseCase *notification.MarkReadUseCase
}

// NewNotificationController creates a new notification controller instance.
func NewNotificationController(
	listUseCase *notification.ListNotificationsUseCase,
	markReadUseCase *notification.MarkReadUseCase,
) *NotificationController {
	return &NotificationController{
		listUseCase:     listUseCase,
		markReadUseCase: markReadUseCase,
	}
}

// List handles GET /notifications requests.
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), notification.ListNotificationsInput{
		UserID:     userID,
		UnreadOnly: ctx.Query("unread") == "true",
	})
	if err != nil {
		c.handleNotificationError(ctx, err)
		return
	}

	resp := dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(output.Notifications)),
		UnreadCount:   output.UnreadCount,
	}
	for _, n := range output.Notifications {
		resp.Notifications = append(resp.Notifications, dto.ToNotificationResponse(n))
	}
	ctx.JSON(http.StatusOK, resp)
}

// MarkRead handles POST /notifications/:id/read requests.
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid notification ID",
		})
		return
	}

	output, err := c.markReadUseCase.Execute(ctx.Request.Context(), notification.MarkReadInput{
		NotificationID: notificationID,
		UserID:         userID,
	})
	if err != nil {
		c.handleNotificationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotificationResponse(output.Notification))
}

// handleNotificationError maps notification errors to HTTP responses.
func (c *NotificationController) handleNotificationError(ctx *gin.Context, err error) {
	var notificationErr *domainerror.NotificationError
	if errors.As(err, &notificationErr) {
		status := http.StatusInternalServerError
		switch notificationErr.Code {
		case domainerror.ErrCodeNotificationNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeNotRecipient:
			status = http.StatusForbidden
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: notificationErr.Message,
			Code:  string(notificationErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
