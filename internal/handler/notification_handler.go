package handler

import (
	"net/http"
	"strconv"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/middleware"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/service"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	service service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GetUnreadCount handles GET /notifications/unread-count
// @Summary Unread notification badge for the caller
// @Tags notifications
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.NotificationSummaryResponse}
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	recipient, ok := middleware.GetParticipant(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	summary, err := h.service.GetUnreadCount(recipient)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load unread count", err)
		return
	}

	common.SuccessResponse(c, summary, nil)
}

// GetList handles GET /notifications
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} common.APIResponse{data=domain.NotificationListResponse}
// @Router /notifications [get]
func (h *NotificationHandler) GetList(c *gin.Context) {
	recipient, ok := middleware.GetParticipant(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, err := h.service.GetList(recipient, page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list notifications", err)
		return
	}

	common.SuccessResponse(c, list, nil)
}

// MarkAsRead handles POST /notifications/:id/read
// @Summary Mark one notification read
// @Tags notifications
// @Produce json
// @Param id path int true "notification id"
// @Success 200 {object} common.APIResponse
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	recipient, ok := middleware.GetParticipant(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid notification id", err)
		return
	}

	if err := h.service.MarkAsRead(recipient, id); err != nil {
		common.ErrorResponse(c, statusForError(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, gin.H{"read": true}, nil)
}

// MarkAllAsRead handles POST /notifications/read-all
// @Summary Mark all of the caller's notifications read
// @Tags notifications
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	recipient, ok := middleware.GetParticipant(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	if err := h.service.MarkAllAsRead(recipient); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to mark notifications read", err)
		return
	}

	common.SuccessResponse(c, gin.H{"read": true}, nil)
}
