package repository

import (
	"errors"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"gorm.io/gorm"
)

// DefaultPageSize bounds conversation pages; listings are never unbounded.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// MessageRepository message ledger read access. Writes go through the
// chat and group repositories so the cache update shares their
// transaction.
type MessageRepository interface {
	FindByID(id int) (*domain.Message, error)
	// ListByConversation pages messages in (created_at, id) ascending
	// order. afterID is the id watermark of the previous page; zero
	// starts from the beginning. Tombstoned rows are excluded.
	ListByConversation(ref domain.ConversationRef, afterID, limit int) ([]*domain.Message, error)
	// Tombstone flags a message deleted without removing the row, so
	// the last-message caches stay reconcilable.
	Tombstone(id int) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// FindByID finds a message by ID
func (r *messageRepository) FindByID(id int) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.Where("id = ? AND deleted = ?", id, false).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// ListByConversation returns one cursor page of a conversation's messages
func (r *messageRepository) ListByConversation(ref domain.ConversationRef, afterID, limit int) ([]*domain.Message, error) {
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	q := r.db.Where("deleted = ?", false)
	switch ref.Type {
	case domain.ConversationChat:
		q = q.Where("chat_id = ?", ref.ID)
	case domain.ConversationGroup:
		q = q.Where("group_id = ?", ref.ID)
	default:
		return nil, common.ErrInvalidInput
	}

	if afterID > 0 {
		// The id watermark restarts pagination deterministically:
		// created_at ties are broken by id in the sort as well.
		q = q.Where("id > ?", afterID)
	}

	var messages []*domain.Message
	err := q.Order("created_at ASC, id ASC").Limit(limit).Find(&messages).Error
	return messages, err
}

// Tombstone soft-deletes a message
func (r *messageRepository) Tombstone(id int) error {
	result := r.db.Model(&domain.Message{}).
		Where("id = ?", id).
		UpdateColumn("deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrMessageNotFound
	}
	return nil
}
