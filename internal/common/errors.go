package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Participant errors
	ErrInvalidKind         = errors.New("invalid participant kind")
	ErrInvalidParticipants = errors.New("invalid participants")
	ErrAccountNotFound     = errors.New("account not found")

	// Conversation errors
	ErrChatNotFound           = errors.New("chat not found")
	ErrGroupNotFound          = errors.New("group not found")
	ErrMessageNotFound        = errors.New("message not found")
	ErrNotAParticipant        = errors.New("sender is not a participant of this chat")
	ErrNotAMember             = errors.New("sender is not a member of this group")
	ErrCrossConversationReply = errors.New("reply target belongs to a different conversation")
	ErrCannotOrphanGroup      = errors.New("cannot remove group admin without a replacement")

	// ErrConcurrencyConflict marks a uniqueness race lost on insert
	// whose recovery re-read of the winning row also failed.
	ErrConcurrencyConflict = errors.New("concurrent insert conflict")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
