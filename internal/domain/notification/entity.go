package notification

import (
	"fmt"
	"time"
)

// Type discriminates the notification payload.
type Type string

const (
	TypeNewApplication Type = "new_application"
	TypeNewMessage     Type = "new_message"
)

// Notification is one item in a user's feed. The payload is flattened into
// typed columns instead of a JSON blob: each type fills its own subset and
// leaves the rest empty, which keeps queries and scanning trivial.
type Notification struct {
	ID          string `gorm:"column:id;primaryKey" json:"id"`
	RecipientID string `gorm:"column:recipient_id;index" json:"recipient_id"`
	Type        Type   `gorm:"column:type" json:"type"`

	// new_application payload
	JobID         string `gorm:"column:job_id" json:"job_id,omitempty"`
	JobTitle      string `gorm:"column:job_title" json:"job_title,omitempty"`
	ApplicantID   string `gorm:"column:applicant_id" json:"applicant_id,omitempty"`
	ApplicantName string `gorm:"column:applicant_name" json:"applicant_name,omitempty"`

	// new_message payload
	ConversationID string `gorm:"column:conversation_id" json:"conversation_id,omitempty"`
	FromName       string `gorm:"column:from_name" json:"from_name,omitempty"`
	MessagePreview string `gorm:"column:message_preview" json:"message_preview,omitempty"`

	Read      bool      `gorm:"column:is_read;index" json:"read"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// Summary renders the one-line feed text for the item.
func (n *Notification) Summary() string {
	switch n.Type {
	case TypeNewApplication:
		return fmt.Sprintf("%s applied for %s", n.ApplicantName, n.JobTitle)
	case TypeNewMessage:
		if n.JobTitle != "" {
			return fmt.Sprintf("New message from %s about %s", n.FromName, n.JobTitle)
		}
		return fmt.Sprintf("New message from %s", n.FromName)
	default:
		return "Notification"
	}
}
