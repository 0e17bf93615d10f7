package service

import (
	"fmt"
	"time"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/repository"
)

// GroupService business logic for group chats
type GroupService interface {
	CreateGroup(admin domain.ParticipantRef, req *domain.CreateGroupRequest) (*domain.Group, error)
	GetGroup(id int) (*domain.Group, error)
	// AddMember is idempotent; joining twice is a no-op.
	AddMember(groupID int, member domain.ParticipantRef) error
	// RemoveMember is a no-op for non-members. Removing the admin
	// requires newAdminID, assigned atomically with the removal.
	RemoveMember(groupID int, member domain.ParticipantRef, newAdminID *int) error
	// SendGroupMessage appends a message and bumps the unread counter
	// of the role opposite the sender's. NOT idempotent on retry.
	SendGroupMessage(sender domain.ParticipantRef, groupID int, req *domain.SendGroupMessageRequest) (*domain.Message, error)
	// Acknowledge zeroes one role's shared counter. Any single member
	// of the role acknowledging clears it for the whole role.
	Acknowledge(groupID int, member domain.ParticipantRef) error
	// DeactivateGroup soft-disables a group; admin only. History is kept.
	DeactivateGroup(groupID int, caller domain.ParticipantRef) error
}

type groupService struct {
	groups   repository.GroupRepository
	messages repository.MessageRepository
	resolver ParticipantResolver
	fanout   Fanout
}

// NewGroupService creates a new GroupService
func NewGroupService(
	groups repository.GroupRepository,
	messages repository.MessageRepository,
	resolver ParticipantResolver,
	fanout Fanout,
) GroupService {
	return &groupService{
		groups:   groups,
		messages: messages,
		resolver: resolver,
		fanout:   fanout,
	}
}

// CreateGroup creates a group with the admin as implicit mentor member
func (s *groupService) CreateGroup(admin domain.ParticipantRef, req *domain.CreateGroupRequest) (*domain.Group, error) {
	if admin.Kind != domain.KindMentor {
		return nil, fmt.Errorf("%w: group admin must be a mentor", common.ErrInvalidParticipants)
	}
	if _, err := s.resolver.Resolve(admin); err != nil {
		return nil, err
	}

	mentorIDs := []int{admin.ID}
	for _, id := range req.MentorIDs {
		if id != admin.ID {
			mentorIDs = append(mentorIDs, id)
		}
	}

	// Initial members must all point at active accounts; a dangling id
	// fails the whole create, not just that member.
	for _, id := range req.StudentIDs {
		if err := s.resolver.Validate(domain.ParticipantRef{ID: id, Kind: domain.KindStudent}); err != nil {
			return nil, err
		}
	}
	for _, id := range mentorIDs[1:] {
		if err := s.resolver.Validate(domain.ParticipantRef{ID: id, Kind: domain.KindMentor}); err != nil {
			return nil, err
		}
	}

	group := &domain.Group{
		Name:        req.Name,
		Description: req.Description,
		AdminID:     admin.ID,
		Active:      true,
	}
	if err := s.groups.Create(group, req.StudentIDs, mentorIDs); err != nil {
		return nil, err
	}
	return group, nil
}

// GetGroup returns a group by ID
func (s *groupService) GetGroup(id int) (*domain.Group, error) {
	return s.groups.FindByID(id)
}

// AddMember adds a resolved participant to the matching membership set
func (s *groupService) AddMember(groupID int, member domain.ParticipantRef) error {
	if _, err := s.resolver.Resolve(member); err != nil {
		return err
	}
	if _, err := s.groups.FindByID(groupID); err != nil {
		return err
	}

	switch member.Kind {
	case domain.KindStudent:
		return s.groups.AddStudent(groupID, member.ID)
	default:
		return s.groups.AddMentor(groupID, member.ID)
	}
}

// RemoveMember removes a member, enforcing the admin-replacement invariant
func (s *groupService) RemoveMember(groupID int, member domain.ParticipantRef, newAdminID *int) error {
	if !member.Kind.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidKind, member.Kind)
	}
	group, err := s.groups.FindByID(groupID)
	if err != nil {
		return err
	}

	isAdmin := member.Kind == domain.KindMentor && member.ID == group.AdminID
	if isAdmin {
		if newAdminID == nil || *newAdminID == member.ID {
			return common.ErrCannotOrphanGroup
		}
		newAdmin := domain.ParticipantRef{ID: *newAdminID, Kind: domain.KindMentor}
		if _, err := s.resolver.Resolve(newAdmin); err != nil {
			return err
		}
		// ReplaceAdmin swaps the admin and drops the old membership in
		// one transaction; the group is never admin-less in between.
		return s.groups.ReplaceAdmin(groupID, member.ID, *newAdminID)
	}

	switch member.Kind {
	case domain.KindStudent:
		return s.groups.RemoveStudent(groupID, member.ID)
	default:
		return s.groups.RemoveMentor(groupID, member.ID)
	}
}

// SendGroupMessage appends a member's message and fans out to everyone else
func (s *groupService) SendGroupMessage(sender domain.ParticipantRef, groupID int, req *domain.SendGroupMessageRequest) (*domain.Message, error) {
	senderAccount, err := s.resolver.Resolve(sender)
	if err != nil {
		return nil, err
	}
	group, err := s.groups.FindByID(groupID)
	if err != nil {
		return nil, err
	}

	member, err := s.groups.IsMember(group.ID, sender)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, common.ErrNotAMember
	}

	gid := group.ID
	msg := &domain.Message{
		GroupID:    &gid,
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

	if err := s.groups.AppendMessage(gid, msg, senderAccount.Name); err != nil {
		return nil, err
	}

	members, err := s.groups.Members(gid)
	if err != nil {
		// The message landed; the recipient list is only needed for the
		// best-effort fan-out, so the send still succeeds.
		members = nil
	}
	recipients := make([]domain.ParticipantRef, 0, len(members))
	for _, m := range members {
		if !m.Equal(sender) {
			recipients = append(recipients, m)
		}
	}
	s.fanout.MessageCreated(msg, senderAccount.Name, recipients)

	return msg, nil
}

// Acknowledge zeroes the counter of the acknowledging member's role
func (s *groupService) Acknowledge(groupID int, member domain.ParticipantRef) error {
	group, err := s.groups.FindByID(groupID)
	if err != nil {
		return err
	}
	isMember, err := s.groups.IsMember(group.ID, member)
	if err != nil {
		return err
	}
	if !isMember {
		return common.ErrNotAMember
	}
	return s.groups.Acknowledge(group.ID, member.Kind)
}

// DeactivateGroup soft-disables a group; only the admin may do this
func (s *groupService) DeactivateGroup(groupID int, caller domain.ParticipantRef) error {
	group, err := s.groups.FindByID(groupID)
	if err != nil {
		return err
	}
	if caller.Kind != domain.KindMentor || caller.ID != group.AdminID {
		return common.ErrForbidden
	}
	return s.groups.Disable(groupID)
}

// validateReply rejects reply targets outside the message's own conversation
func (s *groupService) validateReply(replyToID *int, ref domain.ConversationRef) error {
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
