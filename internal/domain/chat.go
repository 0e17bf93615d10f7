package domain

import "time"

// ChatSide identifies one of the two positions in a direct chat row.
type ChatSide string

const (
	SideA ChatSide = "a"
	SideB ChatSide = "b"
)

// DirectChat is a one-to-one conversation between two participants of
// any kind combination. The pair is stored in canonical order (see
// CanonicalPair) and guarded by a composite unique index, so exactly
// one row exists per unordered pair.
//
// LastMessageAt/LastMessageText and the two unread counters are
// denormalized read caches; the messages table stays authoritative.
// Counters are only ever bumped with a relative UPDATE at the storage
// layer, never read-modify-written in application code.
type DirectChat struct {
	ID               int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AID              int             `gorm:"column:a_id;uniqueIndex:idx_direct_chat_pair" json:"a_id"`
	AKind            ParticipantKind `gorm:"column:a_kind;type:varchar(10);uniqueIndex:idx_direct_chat_pair" json:"a_kind"`
	BID              int             `gorm:"column:b_id;uniqueIndex:idx_direct_chat_pair" json:"b_id"`
	BKind            ParticipantKind `gorm:"column:b_kind;type:varchar(10);uniqueIndex:idx_direct_chat_pair" json:"b_kind"`
	LastMessageAt    *time.Time      `gorm:"column:last_message_at" json:"last_message_at,omitempty"`
	LastMessageText  string          `gorm:"column:last_message_text;type:text" json:"last_message_text"`
	UnreadCountA     int             `gorm:"column:unread_count_a;default:0" json:"unread_count_a"`
	UnreadCountB     int             `gorm:"column:unread_count_b;default:0" json:"unread_count_b"`
	Active           bool            `gorm:"column:active;default:true" json:"active"`
	CreatedAt        time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (DirectChat) TableName() string {
	return "direct_chats"
}

// A returns the participant in the A position.
func (c *DirectChat) A() ParticipantRef {
	return ParticipantRef{ID: c.AID, Kind: c.AKind}
}

// B returns the participant in the B position.
func (c *DirectChat) B() ParticipantRef {
	return ParticipantRef{ID: c.BID, Kind: c.BKind}
}

// SideOf returns which side of the chat p occupies, or false when p is
// not a participant.
func (c *DirectChat) SideOf(p ParticipantRef) (ChatSide, bool) {
	switch {
	case c.A().Equal(p):
		return SideA, true
	case c.B().Equal(p):
		return SideB, true
	default:
		return "", false
	}
}

// Other returns the participant opposite the given side.
func (c *DirectChat) Other(side ChatSide) ParticipantRef {
	if side == SideA {
		return c.B()
	}
	return c.A()
}

// UnreadFor returns the unread counter for the given side.
func (c *DirectChat) UnreadFor(side ChatSide) int {
	if side == SideA {
		return c.UnreadCountA
	}
	return c.UnreadCountB
}

// SendDirectMessageRequest is the edge payload for sending a direct message.
type SendDirectMessageRequest struct {
	RecipientID   int    `json:"recipient_id" binding:"required"`
	RecipientKind string `json:"recipient_kind" binding:"required"`
	Text          string `json:"text" binding:"required"`
	Type          string `json:"type"`
	ReplyToID     *int   `json:"reply_to_id"`
}

// ConversationSummary is the flat per-conversation record exposed by
// the conversation listing, viewer-scoped (unread count is the
// viewer's own side or role).
type ConversationSummary struct {
	Conversation    ConversationRef `json:"conversation"`
	Title           string          `json:"title"`
	LastMessageAt   *time.Time      `json:"last_message_at,omitempty"`
	LastMessageText string          `json:"last_message_text"`
	UnreadCount     int             `json:"unread_count"`
}
