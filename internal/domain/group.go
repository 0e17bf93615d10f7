package domain

import "time"

// Group is a many-to-many conversation. Students and mentors join
// independently through the two membership tables; the admin is a
// mentor and always an implicit member.
//
// The unread counters are role-scoped aggregates, not per-member read
// state: a mentor's message bumps UnreadStudents and vice versa, and
// any single member of a role acknowledging zeroes the whole role's
// counter.
type Group struct {
	ID                    int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name                  string     `gorm:"column:name" json:"name"`
	Description           string     `gorm:"column:description;type:text" json:"description"`
	AdminID               int        `gorm:"column:admin_id;index" json:"admin_id"`
	LastMessageAt         *time.Time `gorm:"column:last_message_at" json:"last_message_at,omitempty"`
	LastMessageText       string     `gorm:"column:last_message_text;type:text" json:"last_message_text"`
	LastMessageSenderName string     `gorm:"column:last_message_sender_name" json:"last_message_sender_name"`
	UnreadStudents        int        `gorm:"column:unread_students;default:0" json:"unread_students"`
	UnreadMentors         int        `gorm:"column:unread_mentors;default:0" json:"unread_mentors"`
	Active                bool       `gorm:"column:active;default:true" json:"active"`
	CreatedAt             time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Group) TableName() string {
	return "chat_groups"
}

// UnreadFor returns the aggregate unread counter for a role.
func (g *Group) UnreadFor(role ParticipantKind) int {
	if role == KindStudent {
		return g.UnreadStudents
	}
	return g.UnreadMentors
}

// GroupStudent is a student membership row.
type GroupStudent struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	GroupID   int       `gorm:"column:group_id;uniqueIndex:idx_group_student" json:"group_id"`
	StudentID int       `gorm:"column:student_id;uniqueIndex:idx_group_student" json:"student_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (GroupStudent) TableName() string {
	return "chat_group_students"
}

// GroupMentor is a mentor membership row.
type GroupMentor struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	GroupID   int       `gorm:"column:group_id;uniqueIndex:idx_group_mentor" json:"group_id"`
	MentorID  int       `gorm:"column:mentor_id;uniqueIndex:idx_group_mentor" json:"mentor_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (GroupMentor) TableName() string {
	return "chat_group_mentors"
}

// CreateGroupRequest is the edge payload for creating a group.
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	StudentIDs  []int  `json:"student_ids"`
	MentorIDs   []int  `json:"mentor_ids"`
}

// SendGroupMessageRequest is the edge payload for a group message.
type SendGroupMessageRequest struct {
	Text      string `json:"text" binding:"required"`
	Type      string `json:"type"`
	ReplyToID *int   `json:"reply_to_id"`
}

// RemoveMemberRequest removes a member; NewAdminID must be set when
// the removed member is the current admin.
type RemoveMemberRequest struct {
	MemberID   int    `json:"member_id" binding:"required"`
	MemberKind string `json:"member_kind" binding:"required"`
	NewAdminID *int   `json:"new_admin_id"`
}
