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

// GroupHandler handles group chat HTTP requests
type GroupHandler struct {
	service service.GroupService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(service service.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

// CreateGroup handles POST /groups
// @Summary Create a group chat (caller becomes admin)
// @Tags groups
// @Accept json
// @Produce json
// @Param request body domain.CreateGroupRequest true "Group payload"
// @Success 200 {object} common.APIResponse{data=domain.Group}
// @Router /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	admin, ok := middleware.GetParticipant(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req domain.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	group, err := h.service.CreateGroup(admin, &req)
	if err != nil {
		common.ErrorResponse(c, statusForError(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, group, nil)
}

// GetGroup handles GET /groups/:id
// @Summary Get a group
// @Tags groups
// @Produce json
// @Param id path int true "group id"
// @Success 200 {object} common.APIResponse{data=domain.Group}
// @Router /groups/{id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid group id", err)
		return
	}

	group, err := h.service.GetGroup(id)
	if err != nil {
		common.ErrorResponse(c, statusForError(err), "Group not found", err)
		return
	}

	common.SuccessResponse(c, group, nil)
}

// AddMember handles POST /groups/:id/members
// @Summary Add a member to a group (idempotent)
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "group id"
// @Success 200 {object} common.APIResponse
// @Router /groups/{id}/members [post]
func (h *GroupHandler) AddMember(c *gin.Context) {
	if _, ok := middleware.GetParticipant(c); !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid group id", err)
		return
	}

	var req struct {
		MemberID   int    `json:"member_id" binding:"required"`
		MemberKind string `json:"member_kind" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	member := domain.ParticipantRef{ID: req.MemberID, Kind: domain.ParticipantKind(req.MemberKind)}
	if !member.Kind.Valid() {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid member kind", nil)
		return
	}

	if err := h.service.AddMember(id, member); err != nil {
		common.ErrorResponse(c, statusForError(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, gin.H{"added": true}, nil)
}

// RemoveMember handles DELETE /groups/:id/members
// @Summary Remove a member; admin removal needs new_admin_id
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "group id"
// @Param request body domain.RemoveMemberRequest true "Removal payload"
// @Success 200 {object} common.APIResponse
// @Router /groups/{id}/members [delete]
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	if _, ok := middleware.GetParticipant(c); !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid group id", err)
		return
	}

	var req domain.RemoveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	member := domain.ParticipantRef{ID: req.MemberID, Kind: domain.ParticipantKind(req.MemberKind)}
	if err := h.service.RemoveMember(id, member, req.NewAdminID); err != nil {
		common.ErrorResponse(c, statusForError(err), err.Error(), err)
		return
	}

	common.SuccessResponse(c, gin.H{"removed": true}, nil)
}

// SendMessage handles POST /groups/:id/messages
// @Summary Send a message to a group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "group id"
// @Param request body domain.SendGroupMessageRequest true "Message payload"
// @Success 200 {object} common.APIResponse{data=domain.Message}
// @Router /groups/{id}/messages [post]
func (h *GroupHandler) SendMessage(c *gin.Context) {
	sender, ok := middleware.GetParticipant(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid group id", err)
		return
	}

	var req domain.SendGroupMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	msg, err := h.service.SendGroupMessage(sender, id, &req)
	if err != nil {
		common.ErrorResponse(c, statusForError(err), err.Error(), err)
		return
	}

	middleware.CountMessageSent(string(domain.ConversationGroup))
	common.SuccessResponse(c, msg, nil)
}
