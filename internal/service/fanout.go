package service

import (
	"context"
	"fmt"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/middleware"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/repository"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/ws"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/cache"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/logger"
)

const notificationTypeMessage = "message"

// Fanout produces the per-recipient delivery artifacts after a message
// has been appended: one notification row per recipient plus a live
// WebSocket event for connected sessions. The message write is
// authoritative; every step here is best-effort and never propagates
// an error back to the sender.
type Fanout interface {
	MessageCreated(msg *domain.Message, senderName string, recipients []domain.ParticipantRef)
}

type fanout struct {
	notifications repository.NotificationRepository
	hub           *ws.Hub       // optional
	cache         cache.Service // optional
}

// NewFanout creates a new Fanout. hub and cacheSvc may be nil.
func NewFanout(notifications repository.NotificationRepository, hub *ws.Hub, cacheSvc cache.Service) Fanout {
	return &fanout{notifications: notifications, hub: hub, cache: cacheSvc}
}

// MessageCreated emits one notification per recipient and pushes the
// live event. Failures are logged, never retried inline and never
// re-attempted by re-sending the message.
func (f *fanout) MessageCreated(msg *domain.Message, senderName string, recipients []domain.ParticipantRef) {
	msgID := msg.ID
	preview := msg.Text
	// Truncate on rune boundaries; a byte slice would split multibyte
	// characters and ship invalid UTF-8.
	if runes := []rune(preview); len(runes) > 120 {
		preview = string(runes[:117]) + "..."
	}

	for _, rcpt := range recipients {
		n := &domain.Notification{
			RecipientID:      rcpt.ID,
			RecipientKind:    rcpt.Kind,
			Type:             notificationTypeMessage,
			Title:            fmt.Sprintf("New message from %s", senderName),
			Message:          preview,
			RelatedMessageID: &msgID,
			CreatedAt:        msg.CreatedAt,
		}
		if err := f.notifications.Create(n); err != nil {
			middleware.CountFanoutFailure()
			logger.GetLogger().Warn().
				Err(err).
				Int("message_id", msgID).
				Str("recipient", rcpt.Key()).
				Msg("notification fan-out failed")
			continue
		}

		if f.hub != nil {
			f.hub.SendToParticipant(rcpt.Key(), &ws.Event{
				Type: ws.EventNewMessage,
				Payload: map[string]interface{}{
					"conversation": msg.Conversation(),
					"message":      msg,
				},
			})
		}
	}

	if f.cache != nil {
		keys := make([]string, len(recipients))
		for i, rcpt := range recipients {
			keys[i] = rcpt.Key()
		}
		if err := f.cache.InvalidateUnread(context.Background(), keys...); err != nil {
			logger.GetLogger().Warn().Err(err).Msg("unread badge invalidation failed")
		}
	}
}
