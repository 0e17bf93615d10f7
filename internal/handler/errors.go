package handler

import (
	"errors"
	"net/http"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
)

// statusForError maps the messaging error taxonomy to HTTP statuses.
// Concurrency conflicts never reach here: the stores recover them by
// re-reading the winning row.
func statusForError(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidKind),
		errors.Is(err, common.ErrInvalidParticipants),
		errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrNotFound),
		errors.Is(err, common.ErrAccountNotFound),
		errors.Is(err, common.ErrChatNotFound),
		errors.Is(err, common.ErrGroupNotFound),
		errors.Is(err, common.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrNotAParticipant),
		errors.Is(err, common.ErrNotAMember),
		errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrCrossConversationReply),
		errors.Is(err, common.ErrCannotOrphanGroup):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
