package domain

import "time"

// ConversationType tags which table a conversation reference points at.
type ConversationType string

const (
	ConversationChat  ConversationType = "chat"
	ConversationGroup ConversationType = "group"
)

// ConversationRef is a tagged reference to either a direct chat or a
// group, never both.
type ConversationRef struct {
	Type ConversationType `json:"type"`
	ID   int              `json:"id"`
}

// Message is one row of the append-only message ledger. Exactly one of
// ChatID/GroupID is set. Rows are never mutated after insert except the
// Read flag (direct chats only; group read state lives on the group's
// role counters) and the Deleted tombstone.
type Message struct {
	ID         int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ChatID     *int            `gorm:"column:chat_id;index:idx_messages_chat,priority:1" json:"chat_id,omitempty"`
	GroupID    *int            `gorm:"column:group_id;index:idx_messages_group,priority:1" json:"group_id,omitempty"`
	SenderID   int             `gorm:"column:sender_id;index" json:"sender_id"`
	SenderKind ParticipantKind `gorm:"column:sender_kind;type:varchar(10)" json:"sender_kind"`
	Text       string          `gorm:"column:text;type:text" json:"text"`
	Type       string          `gorm:"column:type;default:text" json:"type"`
	Read       bool            `gorm:"column:read;default:false" json:"read"`
	ReplyToID  *int            `gorm:"column:reply_to_id" json:"reply_to_id,omitempty"`
	Deleted    bool            `gorm:"column:deleted;default:false" json:"-"`
	CreatedAt  time.Time       `gorm:"column:created_at;index:idx_messages_chat,priority:2;index:idx_messages_group,priority:2" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

// Conversation returns the tagged conversation reference of the message.
func (m *Message) Conversation() ConversationRef {
	if m.ChatID != nil {
		return ConversationRef{Type: ConversationChat, ID: *m.ChatID}
	}
	if m.GroupID != nil {
		return ConversationRef{Type: ConversationGroup, ID: *m.GroupID}
	}
	return ConversationRef{}
}

// Sender returns the sender as a participant reference.
func (m *Message) Sender() ParticipantRef {
	return ParticipantRef{ID: m.SenderID, Kind: m.SenderKind}
}

// MessagePage is one cursor page of a conversation's messages, ordered
// by (created_at, id) ascending. NextCursor is the id watermark to pass
// for the next page; zero means the last page was reached.
type MessagePage struct {
	Messages   []*Message `json:"messages"`
	NextCursor int        `json:"next_cursor,omitempty"`
}
