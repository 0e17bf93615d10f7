package repository

import (
	"errors"
	"fmt"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"gorm.io/gorm"
)

// ChatRepository direct chat data access interface
type ChatRepository interface {
	FindByID(id int) (*domain.DirectChat, error)
	// FindOrCreate returns the single chat row for the unordered pair,
	// creating it lazily. Safe under concurrent first contact: the
	// loser of the uniqueness race re-reads the winner's row.
	FindOrCreate(a, b domain.ParticipantRef) (*domain.DirectChat, error)
	// AppendMessage writes the message and, in the same transaction,
	// refreshes the last-message cache and bumps the recipient side's
	// unread counter with a relative increment.
	AppendMessage(chatID int, msg *domain.Message, recipientSide domain.ChatSide) error
	// MarkRead zeroes the reader side's counter and flags that side's
	// received messages as read. Idempotent.
	MarkRead(chatID int, readerSide domain.ChatSide, reader domain.ParticipantRef) error
	ListForParticipant(p domain.ParticipantRef) ([]*domain.DirectChat, error)
	// Disable soft-disables a chat; rows are never physically deleted.
	Disable(chatID int) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// FindByID finds a chat by ID
func (r *chatRepository) FindByID(id int) (*domain.DirectChat, error) {
	var chat domain.DirectChat
	err := r.db.Where("id = ?", id).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// FindOrCreate returns the chat for the canonicalized pair, creating it on first contact
func (r *chatRepository) FindOrCreate(x, y domain.ParticipantRef) (*domain.DirectChat, error) {
	a, b := domain.CanonicalPair(x, y)

	chat, err := r.findByPair(a, b)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &domain.DirectChat{
		AID:    a.ID,
		AKind:  a.Kind,
		BID:    b.ID,
		BKind:  b.Kind,
		Active: true,
	}
	if err := r.db.Create(fresh).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the first-contact race; the unique index guarantees
			// the winner's row exists now.
			chat, rerr := r.findByPair(a, b)
			if rerr != nil {
				return nil, fmt.Errorf("%w: %v", common.ErrConcurrencyConflict, rerr)
			}
			return chat, nil
		}
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return fresh, nil
}

func (r *chatRepository) findByPair(a, b domain.ParticipantRef) (*domain.DirectChat, error) {
	var chat domain.DirectChat
	err := r.db.Where("a_id = ? AND a_kind = ? AND b_id = ? AND b_kind = ?",
		a.ID, a.Kind, b.ID, b.Kind).First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// AppendMessage writes the message and cache update as one transaction
func (r *chatRepository) AppendMessage(chatID int, msg *domain.Message, recipientSide domain.ChatSide) error {
	counterCol := "unread_count_a"
	if recipientSide == domain.SideB {
		counterCol = "unread_count_b"
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		// Relative increment at the storage layer; concurrent appends
		// must never lose an update.
		return tx.Model(&domain.DirectChat{}).
			Where("id = ?", chatID).
			Updates(map[string]interface{}{
				"last_message_at":   msg.CreatedAt,
				"last_message_text": msg.Text,
				counterCol:          gorm.Expr(counterCol+" + ?", 1),
			}).Error
	})
}

// MarkRead zeroes the reader's counter and marks received messages read
func (r *chatRepository) MarkRead(chatID int, readerSide domain.ChatSide, reader domain.ParticipantRef) error {
	counterCol := "unread_count_a"
	if readerSide == domain.SideB {
		counterCol = "unread_count_b"
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.DirectChat{}).
			Where("id = ?", chatID).
			UpdateColumn(counterCol, 0).Error; err != nil {
			return err
		}

		// Per-message read flags exist for direct chats only.
		return tx.Model(&domain.Message{}).
			Where("chat_id = ? AND `read` = ? AND NOT (sender_id = ? AND sender_kind = ?)",
				chatID, false, reader.ID, reader.Kind).
			UpdateColumn("read", true).Error
	})
}

// ListForParticipant returns active chats the participant is on either side of
func (r *chatRepository) ListForParticipant(p domain.ParticipantRef) ([]*domain.DirectChat, error) {
	var chats []*domain.DirectChat
	err := r.db.
		Where("active = ?", true).
		Where("(a_id = ? AND a_kind = ?) OR (b_id = ? AND b_kind = ?)",
			p.ID, p.Kind, p.ID, p.Kind).
		Order("last_message_at DESC").
		Find(&chats).Error
	return chats, err
}

// Disable soft-disables a chat
func (r *chatRepository) Disable(chatID int) error {
	result := r.db.Model(&domain.DirectChat{}).
		Where("id = ?", chatID).
		UpdateColumn("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrChatNotFound
	}
	return nil
}
