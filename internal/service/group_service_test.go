package service

import (
	"testing"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newGroupServiceFixture() (*MockGroupRepository, *MockMessageRepository, *MockResolver, *MockFanout, GroupService) {
	groups := new(MockGroupRepository)
	messages := new(MockMessageRepository)
	resolver := new(MockResolver)
	fanout := new(MockFanout)
	svc := NewGroupService(groups, messages, resolver, fanout)
	return groups, messages, resolver, fanout, svc
}

func TestCreateGroupAdminJoinsMentorMembers(t *testing.T) {
	groups, _, resolver, _, svc := newGroupServiceFixture()

	admin := domain.ParticipantRef{ID: 7, Kind: domain.KindMentor}
	resolver.On("Resolve", admin).Return(&domain.Account{ID: 7, Kind: domain.KindMentor, Name: "Marko"}, nil)
	resolver.On("Validate", mock.AnythingOfType("domain.ParticipantRef")).Return(nil)

	// The admin leads the mentor member batch even when the request
	// repeats or omits them.
	groups.On("Create", mock.AnythingOfType("*domain.Group"), []int{1, 2}, []int{7, 9}).Return(nil)

	group, err := svc.CreateGroup(admin, &domain.CreateGroupRequest{
		Name:        "Solfeggio",
		Description: "Tuesday group",
		StudentIDs:  []int{1, 2},
		MentorIDs:   []int{9, 7},
	})

	assert.NoError(t, err)
	assert.Equal(t, 7, group.AdminID)
	assert.True(t, group.Active)
	groups.AssertExpectations(t)
}

func TestCreateGroupDanglingMemberRejected(t *testing.T) {
	groups, _, resolver, _, svc := newGroupServiceFixture()

	admin := domain.ParticipantRef{ID: 7, Kind: domain.KindMentor}
	resolver.On("Resolve", admin).Return(&domain.Account{ID: 7, Kind: domain.KindMentor, Name: "Marko"}, nil)
	resolver.On("Validate", domain.ParticipantRef{ID: 99, Kind: domain.KindStudent}).Return(common.ErrAccountNotFound)

	_, err := svc.CreateGroup(admin, &domain.CreateGroupRequest{
		Name:       "Solfeggio",
		StudentIDs: []int{99},
	})

	assert.ErrorIs(t, err, common.ErrAccountNotFound)
	groups.AssertNotCalled(t, "Create")
}

func TestCreateGroupStudentAdminRejected(t *testing.T) {
	groups, _, _, _, svc := newGroupServiceFixture()

	_, err := svc.CreateGroup(student1, &domain.CreateGroupRequest{Name: "Nope"})

	assert.ErrorIs(t, err, common.ErrInvalidParticipants)
	groups.AssertNotCalled(t, "Create")
}

func TestAddMemberIdempotent(t *testing.T) {
	groups, _, resolver, _, svc := newGroupServiceFixture()

	member := domain.ParticipantRef{ID: 4, Kind: domain.KindStudent}
	resolver.On("Resolve", member).Return(&domain.Account{ID: 4, Kind: domain.KindStudent}, nil)
	groups.On("FindByID", 3).Return(&domain.Group{ID: 3, AdminID: 7, Active: true}, nil)
	groups.On("AddStudent", 3, 4).Return(nil)

	assert.NoError(t, svc.AddMember(3, member))
	// Joining twice is a no-op, not an error.
	assert.NoError(t, svc.AddMember(3, member))
	groups.AssertNumberOfCalls(t, "AddStudent", 2)
}

func TestRemoveAdminWithoutReplacement(t *testing.T) {
	groups, _, _, _, svc := newGroupServiceFixture()

	groups.On("FindByID", 3).Return(&domain.Group{ID: 3, AdminID: 7, Active: true}, nil)

	admin := domain.ParticipantRef{ID: 7, Kind: domain.KindMentor}
	err := svc.RemoveMember(3, admin, nil)

	assert.ErrorIs(t, err, common.ErrCannotOrphanGroup)
	groups.AssertNotCalled(t, "RemoveMentor")
	groups.AssertNotCalled(t, "ReplaceAdmin")
}

func TestRemoveAdminWithReplacement(t *testing.T) {
	groups, _, resolver, _, svc := newGroupServiceFixture()

	groups.On("FindByID", 3).Return(&domain.Group{ID: 3, AdminID: 7, Active: true}, nil)
	newAdmin := domain.ParticipantRef{ID: 9, Kind: domain.KindMentor}
	resolver.On("Resolve", newAdmin).Return(&domain.Account{ID: 9, Kind: domain.KindMentor}, nil)
	groups.On("ReplaceAdmin", 3, 7, 9).Return(nil)

	admin := domain.ParticipantRef{ID: 7, Kind: domain.KindMentor}
	nine := 9
	err := svc.RemoveMember(3, admin, &nine)

	assert.NoError(t, err)
	groups.AssertExpectations(t)
}

func TestRemoveNonAdminMember(t *testing.T) {
	groups, _, _, _, svc := newGroupServiceFixture()

	groups.On("FindByID", 3).Return(&domain.Group{ID: 3, AdminID: 7, Active: true}, nil)
	groups.On("RemoveStudent", 3, 4).Return(nil)

	err := svc.RemoveMember(3, domain.ParticipantRef{ID: 4, Kind: domain.KindStudent}, nil)

	assert.NoError(t, err)
}

// Fan-out cardinality: M members yield exactly M-1 notifications,
// regardless of role mix.
func TestSendGroupMessageFanout(t *testing.T) {
	groups, _, resolver, fanout, svc := newGroupServiceFixture()

	mentorAdmin := domain.ParticipantRef{ID: 7, Kind: domain.KindMentor}
	s1 := domain.ParticipantRef{ID: 1, Kind: domain.KindStudent}
	s2 := domain.ParticipantRef{ID: 2, Kind: domain.KindStudent}

	resolver.On("Resolve", mentorAdmin).Return(&domain.Account{ID: 7, Kind: domain.KindMentor, Name: "Marko"}, nil)
	groups.On("FindByID", 3).Return(&domain.Group{ID: 3, AdminID: 7, Active: true}, nil)
	groups.On("IsMember", 3, mentorAdmin).Return(true, nil)
	groups.On("AppendMessage", 3, mock.AnythingOfType("*domain.Message"), "Marko").Return(nil)
	groups.On("Members", 3).Return([]domain.ParticipantRef{s1, s2, mentorAdmin}, nil)

	fanout.On("MessageCreated", mock.Anything, "Marko", []domain.ParticipantRef{s1, s2}).Return()

	msg, err := svc.SendGroupMessage(mentorAdmin, 3, &domain.SendGroupMessageRequest{Text: "Lesson moved"})

	assert.NoError(t, err)
	assert.Equal(t, 3, *msg.GroupID)
	assert.Nil(t, msg.ChatID)
	fanout.AssertExpectations(t)
}

func TestSendGroupMessageNotAMember(t *testing.T) {
	groups, _, resolver, fanout, svc := newGroupServiceFixture()

	outsider := domain.ParticipantRef{ID: 42, Kind: domain.KindStudent}
	resolver.On("Resolve", outsider).Return(&domain.Account{ID: 42, Kind: domain.KindStudent, Name: "Iva"}, nil)
	groups.On("FindByID", 3).Return(&domain.Group{ID: 3, AdminID: 7, Active: true}, nil)
	groups.On("IsMember", 3, outsider).Return(false, nil)

	_, err := svc.SendGroupMessage(outsider, 3, &domain.SendGroupMessageRequest{Text: "hi"})

	assert.ErrorIs(t, err, common.ErrNotAMember)
	groups.AssertNotCalled(t, "AppendMessage")
	fanout.AssertNotCalled(t, "MessageCreated")
}

func TestSendGroupMessageCrossConversationReply(t *testing.T) {
	groups, messages, resolver, _, svc := newGroupServiceFixture()

	mentorAdmin := domain.ParticipantRef{ID: 7, Kind: domain.KindMentor}
	resolver.On("Resolve", mentorAdmin).Return(&domain.Account{ID: 7, Kind: domain.KindMentor, Name: "Marko"}, nil)
	groups.On("FindByID", 3).Return(&domain.Group{ID: 3, AdminID: 7, Active: true}, nil)
	groups.On("IsMember", 3, mentorAdmin).Return(true, nil)

	otherGroup := 8
	replyTo := 55
	messages.On("FindByID", 55).Return(&domain.Message{ID: 55, GroupID: &otherGroup}, nil)

	_, err := svc.SendGroupMessage(mentorAdmin, 3, &domain.SendGroupMessageRequest{Text: "hi", ReplyToID: &replyTo})

	assert.ErrorIs(t, err, common.ErrCrossConversationReply)
	groups.AssertNotCalled(t, "AppendMessage")
}

// Any single member of a role acknowledging clears the shared role
// counter, even for members who never read the message.
func TestAcknowledgeRoleScoped(t *testing.T) {
	groups, _, _, _, svc := newGroupServiceFixture()

	s1 := domain.ParticipantRef{ID: 1, Kind: domain.KindStudent}
	groups.On("FindByID", 3).Return(&domain.Group{ID: 3, AdminID: 7, UnreadStudents: 1, Active: true}, nil)
	groups.On("IsMember", 3, s1).Return(true, nil)
	groups.On("Acknowledge", 3, domain.KindStudent).Return(nil)

	assert.NoError(t, svc.Acknowledge(3, s1))
	// Idempotent on repeat.
	assert.NoError(t, svc.Acknowledge(3, s1))
	groups.AssertNumberOfCalls(t, "Acknowledge", 2)
}

func TestAcknowledgeRequiresMembership(t *testing.T) {
	groups, _, _, _, svc := newGroupServiceFixture()

	outsider := domain.ParticipantRef{ID: 42, Kind: domain.KindMentor}
	groups.On("FindByID", 3).Return(&domain.Group{ID: 3, AdminID: 7, Active: true}, nil)
	groups.On("IsMember", 3, outsider).Return(false, nil)

	err := svc.Acknowledge(3, outsider)

	assert.ErrorIs(t, err, common.ErrNotAMember)
	groups.AssertNotCalled(t, "Acknowledge")
}

func TestDeactivateGroupAdminOnly(t *testing.T) {
	groups, _, _, _, svc := newGroupServiceFixture()

	groups.On("FindByID", 3).Return(&domain.Group{ID: 3, AdminID: 7, Active: true}, nil)

	nonAdmin := domain.ParticipantRef{ID: 9, Kind: domain.KindMentor}
	err := svc.DeactivateGroup(3, nonAdmin)
	assert.ErrorIs(t, err, common.ErrForbidden)

	// A student with the admin's id is still not the admin.
	err = svc.DeactivateGroup(3, domain.ParticipantRef{ID: 7, Kind: domain.KindStudent})
	assert.ErrorIs(t, err, common.ErrForbidden)
	groups.AssertNotCalled(t, "Disable", mock.Anything)

	groups.On("Disable", 3).Return(nil)
	admin := domain.ParticipantRef{ID: 7, Kind: domain.KindMentor}
	assert.NoError(t, svc.DeactivateGroup(3, admin))
	groups.AssertExpectations(t)
}
