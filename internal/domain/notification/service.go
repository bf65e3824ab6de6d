package notification

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Service owns the notification feed. It implements the Notifier interfaces
// of the application and conversation packages, so those services fan out
// through it without importing it.
type Service struct {
	repo Repository
	hub  *CountHub
	now  func() time.Time
}

func NewService(repo Repository, hub *CountHub) *Service {
	return &Service{repo: repo, hub: hub, now: time.Now}
}

// NotifyNewApplication records a feed item for the employer whose job
// received an application.
func (s *Service) NotifyNewApplication(ctx context.Context, recipientID, jobID, jobTitle, applicantID, applicantName string) error {
	n := &Notification{
		ID:            uuid.NewString(),
		RecipientID:   recipientID,
		Type:          TypeNewApplication,
		JobID:         jobID,
		JobTitle:      jobTitle,
		ApplicantID:   applicantID,
		ApplicantName: applicantName,
		CreatedAt:     s.now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	s.publishCount(ctx, recipientID)
	return nil
}

// NotifyNewMessage records a feed item for the counterpart of a delivered
// message.
func (s *Service) NotifyNewMessage(ctx context.Context, recipientID, conversationID, fromName, jobTitle, preview string) error {
	n := &Notification{
		ID:             uuid.NewString(),
		RecipientID:    recipientID,
		Type:           TypeNewMessage,
		ConversationID: conversationID,
		FromName:       fromName,
		JobTitle:       jobTitle,
		MessagePreview: preview,
		CreatedAt:      s.now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	s.publishCount(ctx, recipientID)
	return nil
}

// ListForUser returns the feed, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*Notification, error) {
	return s.repo.ListByRecipient(ctx, userID)
}

func (s *Service) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead flips one item to read. Marking an already-read item is a no-op,
// not an error.
func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}
	flipped, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if flipped {
		s.publishCount(ctx, userID)
	}
	return nil
}

// MarkAllRead flips every unread item for the user.
func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	flipped, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	if flipped > 0 {
		s.publishCount(ctx, userID)
	}
	return flipped, nil
}

// Target is where the client should navigate when a notification is opened.
type Target struct {
	Kind           string `json:"kind"`
	JobID          string `json:"job_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// Resolve marks the item read and returns its navigation target. The mark
// happens exactly once per item even when the referent no longer exists, so
// opening a dangling notification still clears it from the counter.
func (s *Service) Resolve(ctx context.Context, userID, id string) (*Target, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != userID {
		return nil, ErrNotRecipient
	}

	flipped, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if flipped {
		s.publishCount(ctx, userID)
	}

	switch n.Type {
	case TypeNewApplication:
		return &Target{Kind: "applications", JobID: n.JobID}, nil
	case TypeNewMessage:
		return &Target{Kind: "conversation", ConversationID: n.ConversationID}, nil
	default:
		return &Target{Kind: "feed"}, nil
	}
}

// SubscribeUnreadCount opens a live counter feed seeded with the current
// value. The caller must Cancel the subscription when done.
func (s *Service) SubscribeUnreadCount(ctx context.Context, userID string) (*CountSubscription, error) {
	sub := s.hub.Subscribe(userID)
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		sub.Cancel()
		return nil, err
	}
	sub.sub.push(count)
	return sub, nil
}

// publishCount recomputes and broadcasts the counter. Failures only cost a
// stale counter until the next event, so they are logged and swallowed.
func (s *Service) publishCount(ctx context.Context, userID string) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		log.Printf("unread_count_failed user_id=%s err=%v", userID, err)
		return
	}
	s.hub.Publish(userID, count)
}
