package service

import (
	"context"
	"errors"
	"math"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/repository"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/cache"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/logger"
)

// NotificationService is the read side of the fan-out artifacts
type NotificationService interface {
	GetUnreadCount(recipient domain.ParticipantRef) (*domain.NotificationSummaryResponse, error)
	GetList(recipient domain.ParticipantRef, page, limit int) (*domain.NotificationListResponse, error)
	MarkAsRead(recipient domain.ParticipantRef, notificationID int) error
	MarkAllAsRead(recipient domain.ParticipantRef) error
}

type notificationService struct {
	repo     repository.NotificationRepository
	cacheSvc cache.Service // optional
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repository.NotificationRepository, cacheSvc cache.Service) NotificationService {
	return &notificationService{repo: repo, cacheSvc: cacheSvc}
}

// GetUnreadCount returns the unread badge, served from cache when warm
func (s *notificationService) GetUnreadCount(recipient domain.ParticipantRef) (*domain.NotificationSummaryResponse, error) {
	ctx := context.Background()

	if s.cacheSvc != nil {
		if total, err := s.cacheSvc.GetUnreadTotal(ctx, recipient.Key()); err == nil {
			return &domain.NotificationSummaryResponse{TotalUnread: total}, nil
		}
	}

	count, err := s.repo.GetUnreadCount(recipient)
	if err != nil {
		return nil, err
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetUnreadTotal(ctx, recipient.Key(), int(count)); err != nil {
			logger.GetLogger().Warn().Err(err).Msg("unread badge cache write failed")
		}
	}
	return &domain.NotificationSummaryResponse{TotalUnread: int(count)}, nil
}

// GetList returns paginated notifications for a recipient
func (s *notificationService) GetList(recipient domain.ParticipantRef, page, limit int) (*domain.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit
	notifications, total, err := s.repo.GetList(recipient, offset, limit)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(recipient)
	if err != nil {
		return nil, err
	}

	items := make([]domain.NotificationItem, len(notifications))
	for i, n := range notifications {
		items[i] = n.ToItem()
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &domain.NotificationListResponse{
		Items:       items,
		Total:       total,
		UnreadCount: unreadCount,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
	}, nil
}

// MarkAsRead marks a notification as read after ownership check
func (s *notificationService) MarkAsRead(recipient domain.ParticipantRef, notificationID int) error {
	n, err := s.repo.FindByID(notificationID)
	if err != nil {
		return err
	}
	if n == nil {
		return common.ErrNotFound
	}
	if n.RecipientID != recipient.ID || n.RecipientKind != recipient.Kind {
		return common.ErrForbidden
	}
	if err := s.repo.MarkAsRead(notificationID); err != nil {
		return err
	}
	s.invalidateBadge(recipient)
	return nil
}

// MarkAllAsRead marks all notifications as read for a recipient
func (s *notificationService) MarkAllAsRead(recipient domain.ParticipantRef) error {
	if err := s.repo.MarkAllAsRead(recipient); err != nil {
		return err
	}
	s.invalidateBadge(recipient)
	return nil
}

func (s *notificationService) invalidateBadge(recipient domain.ParticipantRef) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.InvalidateUnread(context.Background(), recipient.Key()); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		logger.GetLogger().Warn().Err(err).Msg("unread badge invalidation failed")
	}
}
