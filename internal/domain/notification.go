package domain

import "time"

// Notification is the fan-out artifact produced for each recipient of
// a new message. Rows are best-effort: a failed insert is logged and
// never rolls back the message that triggered it.
type Notification struct {
	ID               int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RecipientID      int             `gorm:"column:recipient_id;index:idx_notifications_recipient,priority:1" json:"recipient_id"`
	RecipientKind    ParticipantKind `gorm:"column:recipient_kind;type:varchar(10);index:idx_notifications_recipient,priority:2" json:"recipient_kind"`
	Type             string          `gorm:"column:type" json:"type"`
	Title            string          `gorm:"column:title" json:"title"`
	Message          string          `gorm:"column:message;type:text" json:"message"`
	Read             bool            `gorm:"column:read;default:false" json:"read"`
	RelatedMessageID *int            `gorm:"column:related_message_id" json:"related_message_id,omitempty"`
	RelatedPostID    *int            `gorm:"column:related_post_id" json:"related_post_id,omitempty"`
	IsPublic         bool            `gorm:"column:is_public;default:false" json:"is_public"`
	CreatedAt        time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationSummaryResponse carries the unread badge count.
type NotificationSummaryResponse struct {
	TotalUnread int `json:"total_unread"`
}

// NotificationListResponse is a paginated notification listing.
type NotificationListResponse struct {
	Items       []NotificationItem `json:"items"`
	Total       int64              `json:"total"`
	UnreadCount int64              `json:"unread_count"`
	Page        int                `json:"page"`
	Limit       int                `json:"limit"`
	TotalPages  int                `json:"total_pages"`
}

// NotificationItem is a single notification in list responses.
type NotificationItem struct {
	ID               int    `json:"id"`
	Type             string `json:"type"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	Read             bool   `json:"read"`
	RelatedMessageID *int   `json:"related_message_id,omitempty"`
	RelatedPostID    *int   `json:"related_post_id,omitempty"`
	IsPublic         bool   `json:"is_public"`
	CreatedAt        string `json:"created_at"`
}

// ToItem converts a notification row for list responses.
func (n *Notification) ToItem() NotificationItem {
	return NotificationItem{
		ID:               n.ID,
		Type:             n.Type,
		Title:            n.Title,
		Message:          n.Message,
		Read:             n.Read,
		RelatedMessageID: n.RelatedMessageID,
		RelatedPostID:    n.RelatedPostID,
		IsPublic:         n.IsPublic,
		CreatedAt:        n.CreatedAt.UTC().Format(time.RFC3339),
	}
}
