package service

import (
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockResolver is a mock implementation of ParticipantResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ref domain.ParticipantRef) (*domain.Account, error) {
	args := m.Called(ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockResolver) Validate(ref domain.ParticipantRef) error {
	args := m.Called(ref)
	return args.Error(0)
}

// MockChatRepository is a mock implementation of ChatRepository
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) FindByID(id int) (*domain.DirectChat, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectChat), args.Error(1)
}

func (m *MockChatRepository) FindOrCreate(a, b domain.ParticipantRef) (*domain.DirectChat, error) {
	args := m.Called(a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectChat), args.Error(1)
}

func (m *MockChatRepository) AppendMessage(chatID int, msg *domain.Message, recipientSide domain.ChatSide) error {
	args := m.Called(chatID, msg, recipientSide)
	return args.Error(0)
}

func (m *MockChatRepository) MarkRead(chatID int, readerSide domain.ChatSide, reader domain.ParticipantRef) error {
	args := m.Called(chatID, readerSide, reader)
	return args.Error(0)
}

func (m *MockChatRepository) ListForParticipant(p domain.ParticipantRef) ([]*domain.DirectChat, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DirectChat), args.Error(1)
}

func (m *MockChatRepository) Disable(chatID int) error {
	args := m.Called(chatID)
	return args.Error(0)
}

// MockGroupRepository is a mock implementation of GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) FindByID(id int) (*domain.Group, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) Create(group *domain.Group, studentIDs, mentorIDs []int) error {
	args := m.Called(group, studentIDs, mentorIDs)
	return args.Error(0)
}

func (m *MockGroupRepository) AddStudent(groupID, studentID int) error {
	args := m.Called(groupID, studentID)
	return args.Error(0)
}

func (m *MockGroupRepository) AddMentor(groupID, mentorID int) error {
	args := m.Called(groupID, mentorID)
	return args.Error(0)
}

func (m *MockGroupRepository) RemoveStudent(groupID, studentID int) error {
	args := m.Called(groupID, studentID)
	return args.Error(0)
}

func (m *MockGroupRepository) RemoveMentor(groupID, mentorID int) error {
	args := m.Called(groupID, mentorID)
	return args.Error(0)
}

func (m *MockGroupRepository) ReplaceAdmin(groupID, oldAdminID, newAdminID int) error {
	args := m.Called(groupID, oldAdminID, newAdminID)
	return args.Error(0)
}

func (m *MockGroupRepository) IsMember(groupID int, p domain.ParticipantRef) (bool, error) {
	args := m.Called(groupID, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) Members(groupID int) ([]domain.ParticipantRef, error) {
	args := m.Called(groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParticipantRef), args.Error(1)
}

func (m *MockGroupRepository) AppendMessage(groupID int, msg *domain.Message, senderName string) error {
	args := m.Called(groupID, msg, senderName)
	return args.Error(0)
}

func (m *MockGroupRepository) Acknowledge(groupID int, role domain.ParticipantKind) error {
	args := m.Called(groupID, role)
	return args.Error(0)
}

func (m *MockGroupRepository) ListForParticipant(p domain.ParticipantRef) ([]*domain.Group, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) Disable(groupID int) error {
	args := m.Called(groupID)
	return args.Error(0)
}

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) FindByID(id int) (*domain.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByConversation(ref domain.ConversationRef, afterID, limit int) ([]*domain.Message, error) {
	args := m.Called(ref, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *MockMessageRepository) Tombstone(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(n *domain.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByID(id int) (*domain.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetList(recipient domain.ParticipantRef, offset, limit int) ([]domain.Notification, int64, error) {
	args := m.Called(recipient, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) GetUnreadCount(recipient domain.ParticipantRef) (int64, error) {
	args := m.Called(recipient)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllAsRead(recipient domain.ParticipantRef) error {
	args := m.Called(recipient)
	return args.Error(0)
}

// MockFanout is a mock implementation of Fanout
type MockFanout struct {
	mock.Mock
}

func (m *MockFanout) MessageCreated(msg *domain.Message, senderName string, recipients []domain.ParticipantRef) {
	m.Called(msg, senderName, recipients)
}

// MockStudentRepository is a mock implementation of repository.StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindByID(id int) (*domain.Student, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) Exists(id int) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

// MockMentorRepository is a mock implementation of repository.MentorRepository
type MockMentorRepository struct {
	mock.Mock
}

func (m *MockMentorRepository) FindByID(id int) (*domain.Mentor, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mentor), args.Error(1)
}

func (m *MockMentorRepository) Exists(id int) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}
