package repository

import (
	"errors"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"gorm.io/gorm"
)

// NotificationRepository handles notification data operations
type NotificationRepository interface {
	Create(n *domain.Notification) error
	FindByID(id int) (*domain.Notification, error)
	GetList(recipient domain.ParticipantRef, offset, limit int) ([]domain.Notification, int64, error)
	GetUnreadCount(recipient domain.ParticipantRef) (int64, error)
	MarkAsRead(id int) error
	MarkAllAsRead(recipient domain.ParticipantRef) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create inserts a new notification
func (r *notificationRepository) Create(n *domain.Notification) error {
	return r.db.Create(n).Error
}

// FindByID returns a notification by ID, nil when absent
func (r *notificationRepository) FindByID(id int) (*domain.Notification, error) {
	var n domain.Notification
	err := r.db.Where("id = ?", id).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// GetList returns paginated notifications for a recipient
func (r *notificationRepository) GetList(recipient domain.ParticipantRef, offset, limit int) ([]domain.Notification, int64, error) {
	var notifications []domain.Notification
	var total int64

	if err := r.db.Model(&domain.Notification{}).
		Where("recipient_id = ? AND recipient_kind = ?", recipient.ID, recipient.Kind).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Where("recipient_id = ? AND recipient_kind = ?", recipient.ID, recipient.Kind).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// GetUnreadCount returns the number of unread notifications for a recipient
func (r *notificationRepository) GetUnreadCount(recipient domain.ParticipantRef) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Notification{}).
		Where("recipient_id = ? AND recipient_kind = ? AND `read` = ?", recipient.ID, recipient.Kind, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead marks a notification as read
func (r *notificationRepository) MarkAsRead(id int) error {
	return r.db.Model(&domain.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}

// MarkAllAsRead marks all notifications as read for a recipient
func (r *notificationRepository) MarkAllAsRead(recipient domain.ParticipantRef) error {
	return r.db.Model(&domain.Notification{}).
		Where("recipient_id = ? AND recipient_kind = ? AND `read` = ?", recipient.ID, recipient.Kind, false).
		Update("read", true).Error
}
