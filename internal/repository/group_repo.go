package repository

import (
	"errors"
	"fmt"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"gorm.io/gorm"
)

// GroupRepository group chat data access interface
type GroupRepository interface {
	FindByID(id int) (*domain.Group, error)
	// Create inserts the group and all initial membership rows in one
	// transaction. The admin mentor membership is part of the batch.
	Create(group *domain.Group, studentIDs, mentorIDs []int) error
	// AddStudent / AddMentor are idempotent; joining twice is a no-op.
	AddStudent(groupID, studentID int) error
	AddMentor(groupID, mentorID int) error
	// RemoveStudent / RemoveMentor of a non-member are no-ops.
	RemoveStudent(groupID, studentID int) error
	RemoveMentor(groupID, mentorID int) error
	// ReplaceAdmin atomically swaps the admin and drops the old admin's
	// membership, so the group is never left without one.
	ReplaceAdmin(groupID, oldAdminID, newAdminID int) error
	IsMember(groupID int, p domain.ParticipantRef) (bool, error)
	Members(groupID int) ([]domain.ParticipantRef, error)
	// AppendMessage writes the message, refreshes the cache triple and
	// bumps the opposite role's counter in one transaction.
	AppendMessage(groupID int, msg *domain.Message, senderName string) error
	// Acknowledge zeroes one role's aggregate counter. Idempotent.
	Acknowledge(groupID int, role domain.ParticipantKind) error
	ListForParticipant(p domain.ParticipantRef) ([]*domain.Group, error)
	// Disable soft-disables a group; rows are never physically deleted.
	Disable(groupID int) error
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// FindByID finds an active group by ID
func (r *groupRepository) FindByID(id int) (*domain.Group, error) {
	var group domain.Group
	err := r.db.Where("id = ? AND active = ?", id, true).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

// Create inserts the group and initial members in one transaction
func (r *groupRepository) Create(group *domain.Group, studentIDs, mentorIDs []int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}

		for _, id := range studentIDs {
			if err := insertStudentMember(tx, group.ID, id); err != nil {
				return err
			}
		}
		for _, id := range mentorIDs {
			if err := insertMentorMember(tx, group.ID, id); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertStudentMember(tx *gorm.DB, groupID, studentID int) error {
	err := tx.Create(&domain.GroupStudent{GroupID: groupID, StudentID: studentID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func insertMentorMember(tx *gorm.DB, groupID, mentorID int) error {
	err := tx.Create(&domain.GroupMentor{GroupID: groupID, MentorID: mentorID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// AddStudent adds a student member; duplicate joins are no-ops
func (r *groupRepository) AddStudent(groupID, studentID int) error {
	return insertStudentMember(r.db, groupID, studentID)
}

// AddMentor adds a mentor member; duplicate joins are no-ops
func (r *groupRepository) AddMentor(groupID, mentorID int) error {
	return insertMentorMember(r.db, groupID, mentorID)
}

// RemoveStudent removes a student member; non-members are no-ops
func (r *groupRepository) RemoveStudent(groupID, studentID int) error {
	return r.db.Where("group_id = ? AND student_id = ?", groupID, studentID).
		Delete(&domain.GroupStudent{}).Error
}

// RemoveMentor removes a mentor member; non-members are no-ops
func (r *groupRepository) RemoveMentor(groupID, mentorID int) error {
	return r.db.Where("group_id = ? AND mentor_id = ?", groupID, mentorID).
		Delete(&domain.GroupMentor{}).Error
}

// ReplaceAdmin swaps the admin and removes the old admin's membership atomically
func (r *groupRepository) ReplaceAdmin(groupID, oldAdminID, newAdminID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Group{}).
			Where("id = ? AND admin_id = ?", groupID, oldAdminID).
			UpdateColumn("admin_id", newAdminID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrGroupNotFound
		}

		// The new admin is always an implicit member.
		if err := insertMentorMember(tx, groupID, newAdminID); err != nil {
			return err
		}

		return tx.Where("group_id = ? AND mentor_id = ?", groupID, oldAdminID).
			Delete(&domain.GroupMentor{}).Error
	})
}

// IsMember reports whether the participant is a current member
func (r *groupRepository) IsMember(groupID int, p domain.ParticipantRef) (bool, error) {
	var count int64
	var err error
	switch p.Kind {
	case domain.KindStudent:
		err = r.db.Model(&domain.GroupStudent{}).
			Where("group_id = ? AND student_id = ?", groupID, p.ID).
			Count(&count).Error
	case domain.KindMentor:
		err = r.db.Model(&domain.GroupMentor{}).
			Where("group_id = ? AND mentor_id = ?", groupID, p.ID).
			Count(&count).Error
	default:
		return false, common.ErrInvalidKind
	}
	return count > 0, err
}

// Members returns all current members as participant references
func (r *groupRepository) Members(groupID int) ([]domain.ParticipantRef, error) {
	var students []domain.GroupStudent
	if err := r.db.Where("group_id = ?", groupID).Find(&students).Error; err != nil {
		return nil, err
	}
	var mentors []domain.GroupMentor
	if err := r.db.Where("group_id = ?", groupID).Find(&mentors).Error; err != nil {
		return nil, err
	}

	members := make([]domain.ParticipantRef, 0, len(students)+len(mentors))
	for _, s := range students {
		members = append(members, domain.ParticipantRef{ID: s.StudentID, Kind: domain.KindStudent})
	}
	for _, m := range mentors {
		members = append(members, domain.ParticipantRef{ID: m.MentorID, Kind: domain.KindMentor})
	}
	return members, nil
}

// AppendMessage writes the message, cache triple and cross-role counter bump as one transaction
func (r *groupRepository) AppendMessage(groupID int, msg *domain.Message, senderName string) error {
	// A mentor's message is unread for students and vice versa. The
	// sender's own role keeps its counter untouched.
	counterCol := "unread_mentors"
	if msg.SenderKind == domain.KindMentor {
		counterCol = "unread_students"
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Group{}).
			Where("id = ?", groupID).
			Updates(map[string]interface{}{
				"last_message_at":          msg.CreatedAt,
				"last_message_text":        msg.Text,
				"last_message_sender_name": senderName,
				counterCol:                 gorm.Expr(counterCol+" + ?", 1),
			}).Error
	})
}

// Acknowledge zeroes the role's aggregate counter
func (r *groupRepository) Acknowledge(groupID int, role domain.ParticipantKind) error {
	var counterCol string
	switch role {
	case domain.KindStudent:
		counterCol = "unread_students"
	case domain.KindMentor:
		counterCol = "unread_mentors"
	default:
		return common.ErrInvalidKind
	}

	return r.db.Model(&domain.Group{}).
		Where("id = ?", groupID).
		UpdateColumn(counterCol, 0).Error
}

// Disable soft-disables a group
func (r *groupRepository) Disable(groupID int) error {
	result := r.db.Model(&domain.Group{}).
		Where("id = ?", groupID).
		UpdateColumn("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrGroupNotFound
	}
	return nil
}

// ListForParticipant returns active groups the participant belongs to
func (r *groupRepository) ListForParticipant(p domain.ParticipantRef) ([]*domain.Group, error) {
	var groups []*domain.Group
	var err error
	switch p.Kind {
	case domain.KindStudent:
		err = r.db.
			Joins("JOIN chat_group_students m ON m.group_id = chat_groups.id").
			Where("m.student_id = ? AND chat_groups.active = ?", p.ID, true).
			Order("chat_groups.last_message_at DESC").
			Find(&groups).Error
	case domain.KindMentor:
		err = r.db.
			Joins("JOIN chat_group_mentors m ON m.group_id = chat_groups.id").
			Where("m.mentor_id = ? AND chat_groups.active = ?", p.ID, true).
			Order("chat_groups.last_message_at DESC").
			Find(&groups).Error
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidKind, p.Kind)
	}
	return groups, err
}
