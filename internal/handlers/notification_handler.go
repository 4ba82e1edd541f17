package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/services"
	"github.com/mentorhub/dashboard-service/internal/utils"
)

type NotificationHandler struct {
	BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         NewBaseHandler(logger),
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req services.NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	n, err := h.notificationService.Notify(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// ListNotifications returns notifications newest first. A role query param
// scopes the list to what that role should see.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	ctx := c.Request.Context()

	if role := c.Query("role"); role != "" {
		c.JSON(http.StatusOK, gin.H{
			"notifications": h.notificationService.ListForRole(ctx, models.UserRole(role)),
			"unread_count":  h.notificationService.UnreadCount(ctx),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": h.notificationService.List(ctx),
		"unread_count":  h.notificationService.UnreadCount(ctx),
	})
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"unread_count": h.notificationService.UnreadCount(c.Request.Context()),
	})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.notificationService.MarkAsRead(c.Request.Context(), id)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	h.notificationService.MarkAllAsRead(c.Request.Context())
	c.JSON(http.StatusOK, SuccessResponse{Message: "All notifications marked as read"})
}

func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	h.notificationService.Clear(c.Request.Context())
	c.JSON(http.StatusOK, SuccessResponse{Message: "Notifications cleared"})
}

func (h *NotificationHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.notificationService.Settings(c.Request.Context()))
}

func (h *NotificationHandler) UpdateSettings(c *gin.Context) {
	var patch models.NotificationSettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	settings := h.notificationService.UpdateSettings(c.Request.Context(), patch)
	c.JSON(http.StatusOK, settings)
}
