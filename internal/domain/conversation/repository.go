package conversation

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository handles all DB operations for threads and messages.
type Repository interface {
	// CreateWithFirstMessage writes the thread and its opening message in
	// one transaction; either both rows land or neither does.
	CreateWithFirstMessage(ctx context.Context, conv *Conversation, first *Message) error
	// AppendMessage writes the message and updates the parent thread's
	// last-message fields in one transaction.
	AppendMessage(ctx context.Context, msg *Message) error
	GetByID(ctx context.Context, id string) (*Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]*Conversation, error)
	ListMessages(ctx context.Context, conversationID string) ([]*Message, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithFirstMessage(ctx context.Context, conv *Conversation, first *Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		return tx.Create(first).Error
	})
}

func (r *repository) AppendMessage(ctx context.Context, msg *Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		res := tx.Model(&Conversation{}).
			Where("id = ?", msg.ConversationID).
			Updates(map[string]any{
				"last_message":    msg.Text,
				"last_message_at": msg.SentAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id string) (*Conversation, error) {
	var conv Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &conv, err
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Conversation, error) {
	var convs []*Conversation
	err := r.db.WithContext(ctx).
		Where("employer_id = ? OR seeker_id = ?", userID, userID).
		Order("last_message_at DESC, id ASC").
		Find(&convs).Error
	return convs, err
}

func (r *repository) ListMessages(ctx context.Context, conversationID string) ([]*Message, error) {
	var msgs []*Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}
