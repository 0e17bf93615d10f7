package service

import (
	"context"
	"fmt"
	"time"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/repository"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/cache"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/logger"
)

// ChatService business logic for direct chats and the conversation
// listing shared with groups.
type ChatService interface {
	// SendDirectMessage appends a message to the pair's chat, creating
	// it on first contact. NOT idempotent: callers must not retry
	// blindly without a client-side de-duplication token.
	SendDirectMessage(sender domain.ParticipantRef, req *domain.SendDirectMessageRequest) (*domain.Message, error)
	// MarkRead zeroes the reader's unread counter. Idempotent.
	MarkRead(chatID int, reader domain.ParticipantRef) error
	// ListConversations returns all direct chats and groups of the
	// participant with the viewer-scoped unread counts.
	ListConversations(p domain.ParticipantRef) ([]*domain.ConversationSummary, error)
	// ListMessages pages a conversation the viewer has standing in.
	ListMessages(viewer domain.ParticipantRef, ref domain.ConversationRef, afterID, limit int) (*domain.MessagePage, error)
	// DeleteMessage tombstones a message; only its sender may do so. The
	// last-message caches are not rewritten.
	DeleteMessage(caller domain.ParticipantRef, messageID int) error
	// CloseChat soft-disables a chat for both sides; history is kept.
	CloseChat(chatID int, caller domain.ParticipantRef) error
}

type chatService struct {
	chats    repository.ChatRepository
	groups   repository.GroupRepository
	messages repository.MessageRepository
	resolver ParticipantResolver
	fanout   Fanout
	cacheSvc cache.Service // optional
}

// NewChatService creates a new ChatService
func NewChatService(
	chats repository.ChatRepository,
	groups repository.GroupRepository,
	messages repository.MessageRepository,
	resolver ParticipantResolver,
	fanout Fanout,
	cacheSvc cache.Service,
) ChatService {
	return &chatService{
		chats:    chats,
		groups:   groups,
		messages: messages,
		resolver: resolver,
		fanout:   fanout,
		cacheSvc: cacheSvc,
	}
}

// SendDirectMessage validates both ends, appends the message with its
// cache update, then fans out notifications best-effort
func (s *chatService) SendDirectMessage(sender domain.ParticipantRef, req *domain.SendDirectMessageRequest) (*domain.Message, error) {
	recipient := domain.ParticipantRef{
		ID:   req.RecipientID,
		Kind: domain.ParticipantKind(req.RecipientKind),
	}
	if !recipient.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidKind, req.RecipientKind)
	}
	if sender.Equal(recipient) {
		return nil, fmt.Errorf("%w: cannot open a chat with yourself", common.ErrInvalidParticipants)
	}

	senderAccount, err := s.resolver.Resolve(sender)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolver.Resolve(recipient); err != nil {
		return nil, err
	}

	chat, err := s.chats.FindOrCreate(sender, recipient)
	if err != nil {
		return nil, err
	}
	// A closed chat keeps its history readable but accepts no new
	// messages; reopening is not supported.
	if !chat.Active {
		return nil, common.ErrChatNotFound
	}

	chatID := chat.ID
	msg := &domain.Message{
		ChatID:     &chatID,
		SenderID:   sender.ID,
		SenderKind: sender.Kind,
		Text:       req.Text,
		Type:       messageType(req.Type),
		ReplyToID:  req.ReplyToID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.validateReply(req.ReplyToID, msg.Conversation()); err != nil {
		return nil, err
	}

	recipientSide, ok := chat.SideOf(recipient)
	if !ok {
		// findOrCreate canonicalized this pair; a miss here means the
		// sender was never on the chat at all.
		return nil, common.ErrNotAParticipant
	}

	if err := s.chats.AppendMessage(chatID, msg, recipientSide); err != nil {
		return nil, err
	}

	s.fanout.MessageCreated(msg, senderAccount.Name, []domain.ParticipantRef{recipient})
	return msg, nil
}

// MarkRead zeroes the reader's counter; calling on an already-read chat is a no-op
func (s *chatService) MarkRead(chatID int, reader domain.ParticipantRef) error {
	chat, err := s.chats.FindByID(chatID)
	if err != nil {
		return err
	}
	side, ok := chat.SideOf(reader)
	if !ok {
		return common.ErrNotAParticipant
	}
	if err := s.chats.MarkRead(chatID, side, reader); err != nil {
		return err
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.InvalidateUnread(context.Background(), reader.Key()); err != nil {
			logger.GetLogger().Warn().Err(err).Msg("unread badge invalidation failed")
		}
	}
	return nil
}

// ListConversations merges direct chats and groups into one summary list
func (s *chatService) ListConversations(p domain.ParticipantRef) ([]*domain.ConversationSummary, error) {
	if _, err := s.resolver.Resolve(p); err != nil {
		return nil, err
	}

	chats, err := s.chats.ListForParticipant(p)
	if err != nil {
		return nil, err
	}
	groups, err := s.groups.ListForParticipant(p)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.ConversationSummary, 0, len(chats)+len(groups))
	for _, chat := range chats {
		side, ok := chat.SideOf(p)
		if !ok {
			continue
		}
		summaries = append(summaries, &domain.ConversationSummary{
			Conversation:    domain.ConversationRef{Type: domain.ConversationChat, ID: chat.ID},
			Title:           s.peerName(chat.Other(side)),
			LastMessageAt:   chat.LastMessageAt,
			LastMessageText: chat.LastMessageText,
			UnreadCount:     chat.UnreadFor(side),
		})
	}
	for _, group := range groups {
		summaries = append(summaries, &domain.ConversationSummary{
			Conversation:    domain.ConversationRef{Type: domain.ConversationGroup, ID: group.ID},
			Title:           group.Name,
			LastMessageAt:   group.LastMessageAt,
			LastMessageText: group.LastMessageText,
			UnreadCount:     group.UnreadFor(p.Kind),
		})
	}
	return summaries, nil
}

// ListMessages pages a conversation after an access check
func (s *chatService) ListMessages(viewer domain.ParticipantRef, ref domain.ConversationRef, afterID, limit int) (*domain.MessagePage, error) {
	switch ref.Type {
	case domain.ConversationChat:
		chat, err := s.chats.FindByID(ref.ID)
		if err != nil {
			return nil, err
		}
		if _, ok := chat.SideOf(viewer); !ok {
			return nil, common.ErrNotAParticipant
		}
	case domain.ConversationGroup:
		member, err := s.groups.IsMember(ref.ID, viewer)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, common.ErrNotAMember
		}
	default:
		return nil, common.ErrInvalidInput
	}

	if limit < 1 || limit > repository.MaxPageSize {
		limit = repository.DefaultPageSize
	}
	messages, err := s.messages.ListByConversation(ref, afterID, limit)
	if err != nil {
		return nil, err
	}

	page := &domain.MessagePage{Messages: messages}
	if len(messages) == limit {
		page.NextCursor = messages[len(messages)-1].ID
	}
	return page, nil
}

// DeleteMessage tombstones the sender's own message
func (s *chatService) DeleteMessage(caller domain.ParticipantRef, messageID int) error {
	msg, err := s.messages.FindByID(messageID)
	if err != nil {
		return err
	}
	if !msg.Sender().Equal(caller) {
		return common.ErrForbidden
	}
	return s.messages.Tombstone(messageID)
}

// CloseChat soft-disables a chat after a standing check
func (s *chatService) CloseChat(chatID int, caller domain.ParticipantRef) error {
	chat, err := s.chats.FindByID(chatID)
	if err != nil {
		return err
	}
	if _, ok := chat.SideOf(caller); !ok {
		return common.ErrNotAParticipant
	}
	return s.chats.Disable(chatID)
}

// validateReply rejects reply targets outside the message's own conversation
func (s *chatService) validateReply(replyToID *int, ref domain.ConversationRef) error {
	if replyToID == nil {
		return nil
	}
	target, err := s.messages.FindByID(*replyToID)
	if err != nil {
		return err
	}
	if target.Conversation() != ref {
		return common.ErrCrossConversationReply
	}
	return nil
}

// peerName resolves the chat partner's display name, falling back to
// the raw key for deactivated accounts so old chats keep rendering.
func (s *chatService) peerName(peer domain.ParticipantRef) string {
	account, err := s.resolver.Resolve(peer)
	if err != nil {
		return peer.Key()
	}
	return account.Name
}

func messageType(t string) string {
	if t == "" {
		return "text"
	}
	return t
}
