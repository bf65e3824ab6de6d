package conversation

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/pkg/timeutil"
)

const previewLen = 100

// UserDirectory resolves display names for the two participants when a
// thread is created. Satisfied by identity.Service.
type UserDirectory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// Notifier receives a best-effort signal for every delivered message.
// Satisfied by notification.Service.
type Notifier interface {
	NotifyNewMessage(ctx context.Context, recipientID, conversationID, fromName, jobTitle, preview string) error
}

type Service struct {
	repo     Repository
	users    UserDirectory
	notifier Notifier
	hub      *Hub
	now      func() time.Time
}

func NewService(repo Repository, users UserDirectory, notifier Notifier, hub *Hub) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		notifier: notifier,
		hub:      hub,
		now:      time.Now,
	}
}

// Start opens a fresh thread between an employer and a seeker and records the
// opening message. Every call creates a new thread, even if the same pair
// already has one for the same job.
func (s *Service) Start(ctx context.Context, employerID, seekerID, jobID, jobTitle, text string) (*Conversation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if employerID == seekerID {
		return nil, ErrSelfConversation
	}

	employerName, err := s.users.DisplayName(ctx, employerID)
	if err != nil {
		return nil, err
	}
	seekerName, err := s.users.DisplayName(ctx, seekerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	conv := &Conversation{
		ID:            uuid.NewString(),
		EmployerID:    employerID,
		SeekerID:      seekerID,
		EmployerName:  employerName,
		SeekerName:    seekerName,
		JobID:         jobID,
		JobTitle:      jobTitle,
		LastMessage:   text,
		LastMessageAt: now,
		CreatedAt:     now,
	}
	first := &Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		SenderID:       employerID,
		SenderName:     employerName,
		Text:           text,
		SentAt:         now,
	}
	if err := s.repo.CreateWithFirstMessage(ctx, conv, first); err != nil {
		return nil, err
	}

	s.hub.Publish(first)
	s.notify(ctx, seekerID, conv, first)
	return conv, nil
}

// Send appends a message from either participant. The counterpart is derived
// from the stored participant pair, never from the request.
func (s *Service) Send(ctx context.Context, conversationID, senderID, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.repo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	recipientID, err := conv.Counterpart(senderID)
	if err != nil {
		return nil, err
	}

	msg := &Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderName:     conv.participantName(senderID),
		Text:           text,
		SentAt:         s.now(),
	}
	if err := s.repo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.hub.Publish(msg)
	s.notify(ctx, recipientID, conv, msg)
	return msg, nil
}

// notify fans the message out to the recipient. Failures are logged and
// swallowed so delivery never blocks on the notification path.
func (s *Service) notify(ctx context.Context, recipientID string, conv *Conversation, msg *Message) {
	if s.notifier == nil {
		return
	}
	preview := timeutil.Truncate(msg.Text, previewLen)
	if err := s.notifier.NotifyNewMessage(ctx, recipientID, conv.ID, msg.SenderName, conv.JobTitle, preview); err != nil {
		log.Printf("notify_failed type=new_message conversation_id=%s recipient_id=%s err=%v", conv.ID, recipientID, err)
	}
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]*Conversation, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns the thread if requesterID is a participant.
func (s *Service) Get(ctx context.Context, conversationID, requesterID string) (*Conversation, error) {
	conv, err := s.repo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(requesterID) {
		return nil, ErrInvalidParticipant
	}
	return conv, nil
}

// Messages returns the full history, oldest first.
func (s *Service) Messages(ctx context.Context, conversationID, requesterID string) ([]*Message, error) {
	if _, err := s.Get(ctx, conversationID, requesterID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, conversationID)
}

// SubscribeMessages opens a live feed over the thread: the stored history is
// delivered first, then every later message exactly once, in order. The
// caller must Cancel the subscription when done.
func (s *Service) SubscribeMessages(ctx context.Context, conversationID, requesterID string) (*Subscription, error) {
	if _, err := s.Get(ctx, conversationID, requesterID); err != nil {
		return nil, err
	}

	sub := s.hub.subscribe(conversationID)
	backlog, err := s.repo.ListMessages(ctx, conversationID)
	if err != nil {
		sub.close()
		return nil, err
	}
	sub.start(backlog)
	return &Subscription{C: sub.out, sub: sub}, nil
}
