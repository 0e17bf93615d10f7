package handler

import (
	"net/http"
	"strconv"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/middleware"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/service"
	"github.com/gin-gonic/gin"
)

// ChatHandler handles direct chat and conversation HTTP requests
type ChatHandler struct {
	service      service.ChatService
	groupService service.GroupService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService service.ChatService, groupService service.GroupService) *ChatHandler {
	return &ChatHandler{service: chatService, groupService: groupService}
}

// SendDirectMessage handles POST /messages/direct
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body domain.SendDirectMessageRequest true "Message payload"
// @Success 200 {object} common.APIResponse{data=domain.Message}
// @Router /messages/direct [post]
func (h *ChatHandler) SendDirectMessage(c *gin.Context) {
	sender, ok := middleware.GetParticipant(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req domain.SendDirectMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	msg, err := h.service.SendDirectMessage(sender, &req)
	if err != nil {
		common.ErrorResponse(c, statusForError(err), err.Error(), err)
		return
	}

	middleware.CountMessageSent(string(domain.ConversationChat))
	common.SuccessResponse(c, msg, nil)
}

// ListConversations handles GET /conversations
// @Summary List the caller's conversations (chats and groups)
// @Tags messages
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.ConversationSummary}
// @Router /conversations [get]
func (h *ChatHandler) ListConversations(c *gin.Context) {
	viewer, ok := middleware.GetParticipant(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	summaries, err := h.service.ListConversations(viewer)
	if err != nil {
		common.ErrorResponse(c, statusForError(err), "Failed to list conversations", err)
		return
	}

	common.SuccessResponse(c, summaries, nil)
}

// ListMessages handles GET /conversations/:type/:id/messages
// @Summary Page a conversation's messages
// @Tags messages
// @Produce json
// @Param type path string true "chat or group"
// @Param id path int true "conversation id"
// @Param cursor query int false "id watermark of the previous page"
// @Param limit query int false "page size"
// @Success 200 {object} common.APIResponse{data=domain.MessagePage}
// @Router /conversations/{type}/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	viewer, ok := middleware.GetParticipant(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	ref, ok := conversationRefFromPath(c)
	if !ok {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid conversation reference", nil)
		return
	}

	afterID, _ := strconv.Atoi(c.Query("cursor"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	page, err := h.service.ListMessages(viewer, ref, afterID, limit)
	if err != nil {
		common.ErrorResponse(c, statusForError(err), "Failed to list messages", err)
		return
	}

	common.SuccessResponse(c, page, &common.Meta{NextCursor: page.NextCursor})
}

// MarkRead handles POST /conversations/:type/:id/read
// @Summary Mark a conversation read for the caller
// @Tags messages
// @Produce json
// @Param type path string true "chat or group"
// @Param id path int true "conversation id"
// @Success 200 {object} common.APIResponse
// @Router /conversations/{type}/{id}/read [post]
func (h *ChatHandler) MarkRead(c *gin.Context) {
	reader, ok := middleware.GetParticipant(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	ref, ok := conversationRefFromPath(c)
	if !ok {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid conversation reference", nil)
		return
	}

	var err error
	switch ref.Type {
	case domain.ConversationChat:
		err = h.service.MarkRead(ref.ID, reader)
	case domain.ConversationGroup:
		// Group read state is role-scoped: one member acknowledging
		// clears the counter for their whole role.
		err = h.groupService.Acknowledge(ref.ID, reader)
	}
	if err != nil {
		common.ErrorResponse(c, statusForError(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, gin.H{"read": true}, nil)
}

// DeleteMessage handles DELETE /messages/:id
// @Summary Tombstone the caller's own message
// @Tags messages
// @Produce json
// @Param id path int true "message id"
// @Success 200 {object} common.APIResponse
// @Router /messages/{id} [delete]
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	caller, ok := middleware.GetParticipant(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid message id", err)
		return
	}

	if err := h.service.DeleteMessage(caller, id); err != nil {
		common.ErrorResponse(c, statusForError(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// CloseConversation handles DELETE /conversations/:type/:id
// @Summary Soft-disable a conversation (chat: either side, group: admin)
// @Tags messages
// @Produce json
// @Param type path string true "chat or group"
// @Param id path int true "conversation id"
// @Success 200 {object} common.APIResponse
// @Router /conversations/{type}/{id} [delete]
func (h *ChatHandler) CloseConversation(c *gin.Context) {
	caller, ok := middleware.GetParticipant(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	ref, ok := conversationRefFromPath(c)
	if !ok {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid conversation reference", nil)
		return
	}

	var err error
	switch ref.Type {
	case domain.ConversationChat:
		err = h.service.CloseChat(ref.ID, caller)
	case domain.ConversationGroup:
		err = h.groupService.DeactivateGroup(ref.ID, caller)
	}
	if err != nil {
		common.ErrorResponse(c, statusForError(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, gin.H{"closed": true}, nil)
}

// conversationRefFromPath parses the :type/:id path segments
func conversationRefFromPath(c *gin.Context) (domain.ConversationRef, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return domain.ConversationRef{}, false
	}
	switch c.Param("type") {
	case string(domain.ConversationChat):
		return domain.ConversationRef{Type: domain.ConversationChat, ID: id}, true
	case string(domain.ConversationGroup):
		return domain.ConversationRef{Type: domain.ConversationGroup, ID: id}, true
	default:
		return domain.ConversationRef{}, false
	}
}
