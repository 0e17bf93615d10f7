package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
)

func TestNotificationGetUnreadCount(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil)

	repo.On("GetUnreadCount", student1).Return(int64(3), nil)

	summary, err := svc.GetUnreadCount(student1)

	assert.NoError(t, err)
	assert.Equal(t, 3, summary.TotalUnread)
	repo.AssertExpectations(t)
}

func TestNotificationGetListClampsPaging(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil)

	// page 0 / limit 0 fall back to defaults: page 1, limit 20, offset 0.
	repo.On("GetList", student1, 0, 20).Return([]domain.Notification{}, int64(0), nil)
	repo.On("GetUnreadCount", student1).Return(int64(0), nil)

	resp, err := svc.GetList(student1, 0, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	repo.AssertExpectations(t)
}

func TestNotificationMarkAsReadRejectsForeignRecipient(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil)

	repo.On("FindByID", 7).Return(&domain.Notification{
		ID:            7,
		RecipientID:   mentor2.ID,
		RecipientKind: mentor2.Kind,
	}, nil)

	err := svc.MarkAsRead(student1, 7)

	assert.ErrorIs(t, err, common.ErrForbidden)
	repo.AssertNotCalled(t, "MarkAsRead", mock.Anything)
}

func TestNotificationMarkAsReadSameIDOtherKind(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil)

	// Recipient id matches but the kind does not; ownership must fail.
	repo.On("FindByID", 8).Return(&domain.Notification{
		ID:            8,
		RecipientID:   student1.ID,
		RecipientKind: domain.KindMentor,
	}, nil)

	err := svc.MarkAsRead(student1, 8)

	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestNotificationMarkAsReadNotFound(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil)

	repo.On("FindByID", 99).Return((*domain.Notification)(nil), nil)

	err := svc.MarkAsRead(student1, 99)

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestNotificationMarkAllAsRead(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil)

	repo.On("MarkAllAsRead", student1).Return(nil)

	assert.NoError(t, svc.MarkAllAsRead(student1))
	repo.AssertExpectations(t)
}
