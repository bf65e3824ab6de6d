package conversation

import "time"

// Conversation is a two-party thread between an employer and a seeker,
// optionally anchored to a job. The participant pair is fixed at creation.
// Display names are denormalized copies taken at creation time; they can go
// stale if a profile is renamed later, which is an accepted tradeoff to
// avoid a join on every list render.
type Conversation struct {
	ID            string    `gorm:"column:id;primaryKey" json:"id"`
	EmployerID    string    `gorm:"column:employer_id;index" json:"employer_id"`
	SeekerID      string    `gorm:"column:seeker_id;index" json:"seeker_id"`
	EmployerName  string    `gorm:"column:employer_name" json:"employer_name"`
	SeekerName    string    `gorm:"column:seeker_name" json:"seeker_name"`
	JobID         string    `gorm:"column:job_id" json:"job_id,omitempty"`
	JobTitle      string    `gorm:"column:job_title" json:"job_title,omitempty"`
	LastMessage   string    `gorm:"column:last_message" json:"last_message"`
	LastMessageAt time.Time `gorm:"column:last_message_at;index" json:"last_message_at"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Conversation) TableName() string { return "conversations" }

// HasParticipant reports whether id is one of the two parties.
func (c *Conversation) HasParticipant(id string) bool {
	return id == c.EmployerID || id == c.SeekerID
}

// Counterpart returns the participant that is not senderID, derived by set
// difference against the fixed two-element participant set.
func (c *Conversation) Counterpart(senderID string) (string, error) {
	switch senderID {
	case c.EmployerID:
		return c.SeekerID, nil
	case c.SeekerID:
		return c.EmployerID, nil
	default:
		return "", ErrInvalidParticipant
	}
}

// OtherName is the role-relative display name: the employer sees the seeker
// name and vice versa.
func (c *Conversation) OtherName(viewerID string) string {
	if viewerID == c.EmployerID {
		return c.SeekerName
	}
	return c.EmployerName
}

// participantName returns the stored display name for a participant.
func (c *Conversation) participantName(id string) string {
	if id == c.EmployerID {
		return c.EmployerName
	}
	return c.SeekerName
}

// Message is one entry in a conversation. Append-only: messages are never
// edited or deleted, and ordering is by SentAt, not by id.
type Message struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	ConversationID string    `gorm:"column:conversation_id;index" json:"conversation_id"`
	SenderID       string    `gorm:"column:sender_id" json:"sender_id"`
	SenderName     string    `gorm:"column:sender_name" json:"sender_name"`
	Text           string    `gorm:"column:text" json:"text"`
	SentAt         time.Time `gorm:"column:sent_at;index" json:"sent_at"`
}

func (Message) TableName() string { return "conversation_messages" }
