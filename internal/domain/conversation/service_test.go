package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"jobboard/internal/database"
)

type stubDirectory map[string]string

func (d stubDirectory) DisplayName(ctx context.Context, userID string) (string, error) {
	name, ok := d[userID]
	if !ok {
		return "", errors.New("unknown user")
	}
	return name, nil
}

type messageNotice struct {
	recipientID string
	fromName    string
	preview     string
}

type stubNotifier struct {
	mu      sync.Mutex
	notices []messageNotice
	err     error
}

func (s *stubNotifier) NotifyNewMessage(ctx context.Context, recipientID, conversationID, fromName, jobTitle, preview string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, messageNotice{recipientID, fromName, preview})
	return s.err
}

func (s *stubNotifier) last(t *testing.T) messageNotice {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notices) == 0 {
		t.Fatal("no notification recorded")
	}
	return s.notices[len(s.notices)-1]
}

func newTestService(t *testing.T) (*Service, *stubNotifier) {
	t.Helper()
	db, err := database.ConnectSilent(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Conversation{}, &Message{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	users := stubDirectory{"emp-1": "Acme HR", "seeker-1": "Jamie Rivera"}
	notifier := &stubNotifier{}
	svc := NewService(NewRepository(db), users, notifier, NewHub())

	// Deterministic, strictly increasing clock so ordering is stable
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, notifier
}

func recvMessage(t *testing.T, ch <-chan *Message) *Message {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("channel closed early")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestStartCreatesThreadWithFirstMessage(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()

	conv, err := svc.Start(ctx, "emp-1", "seeker-1", "job-1", "Backend Engineer", "Hi, we liked your application")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if conv.EmployerName != "Acme HR" || conv.SeekerName != "Jamie Rivera" {
		t.Fatalf("names not stamped: %q %q", conv.EmployerName, conv.SeekerName)
	}
	if conv.LastMessage != "Hi, we liked your application" {
		t.Fatalf("last message %q", conv.LastMessage)
	}

	msgs, err := svc.Messages(ctx, conv.ID, "seeker-1")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].SenderID != "emp-1" || msgs[0].SenderName != "Acme HR" {
		t.Fatalf("unexpected opening message %+v", msgs)
	}

	n := notifier.last(t)
	if n.recipientID != "seeker-1" || n.fromName != "Acme HR" {
		t.Fatalf("wrong notification %+v", n)
	}
}

func TestStartTwiceCreatesSeparateThreads(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Start(ctx, "emp-1", "seeker-1", "job-1", "Backend Engineer", "First thread")
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Start(ctx, "emp-1", "seeker-1", "job-1", "Backend Engineer", "Second thread")
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Fatal("expected two distinct threads")
	}

	convs, err := svc.ListForUser(ctx, "seeker-1")
	if err != nil || len(convs) != 2 {
		t.Fatalf("list: %v, %d threads", err, len(convs))
	}
}

func TestStartRejections(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "emp-1", "seeker-1", "", "", "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("blank text: expected ErrEmptyMessage, got %v", err)
	}
	if _, err := svc.Start(ctx, "emp-1", "emp-1", "", "", "hello"); !errors.Is(err, ErrSelfConversation) {
		t.Fatalf("self: expected ErrSelfConversation, got %v", err)
	}
}

func TestSendMaintainsLastMessage(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()

	conv, _ := svc.Start(ctx, "emp-1", "seeker-1", "job-1", "Backend Engineer", "message 1")
	for i := 2; i <= 5; i++ {
		sender := "seeker-1"
		if i%2 == 1 {
			sender = "emp-1"
		}
		if _, err := svc.Send(ctx, conv.ID, sender, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}

	got, err := svc.Get(ctx, conv.ID, "emp-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LastMessage != "message 5" {
		t.Fatalf("last message %q", got.LastMessage)
	}

	msgs, _ := svc.Messages(ctx, conv.ID, "emp-1")
	if len(msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(msgs))
	}
	for i, m := range msgs {
		if m.Text != fmt.Sprintf("message %d", i+1) {
			t.Fatalf("out of order at %d: %q", i, m.Text)
		}
	}

	// message 5 came from the employer, so the seeker was notified
	n := notifier.last(t)
	if n.recipientID != "seeker-1" {
		t.Fatalf("message 5 should notify the seeker, got %+v", n)
	}
}

func TestSendRejectsOutsider(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	conv, _ := svc.Start(ctx, "emp-1", "seeker-1", "", "", "hello")

	if _, err := svc.Send(ctx, conv.ID, "intruder", "hi"); !errors.Is(err, ErrInvalidParticipant) {
		t.Fatalf("send: expected ErrInvalidParticipant, got %v", err)
	}
	if _, err := svc.Get(ctx, conv.ID, "intruder"); !errors.Is(err, ErrInvalidParticipant) {
		t.Fatalf("get: expected ErrInvalidParticipant, got %v", err)
	}
	if _, err := svc.Messages(ctx, conv.ID, "intruder"); !errors.Is(err, ErrInvalidParticipant) {
		t.Fatalf("messages: expected ErrInvalidParticipant, got %v", err)
	}
	if _, err := svc.Send(ctx, "missing", "emp-1", "hi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing thread: expected ErrNotFound, got %v", err)
	}
}

func TestListForUserOrdersByActivity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, _ := svc.Start(ctx, "emp-1", "seeker-1", "", "", "older thread")
	second, _ := svc.Start(ctx, "emp-1", "seeker-1", "", "", "newer thread")

	convs, _ := svc.ListForUser(ctx, "emp-1")
	if len(convs) != 2 || convs[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", convs)
	}

	// Activity on the older thread moves it to the top
	if _, err := svc.Send(ctx, first.ID, "seeker-1", "bump"); err != nil {
		t.Fatal(err)
	}
	convs, _ = svc.ListForUser(ctx, "emp-1")
	if convs[0].ID != first.ID {
		t.Fatal("expected bumped thread first")
	}
}

func TestNotificationPreviewIsTruncated(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()

	long := strings.Repeat("a", 150)
	if _, err := svc.Start(ctx, "emp-1", "seeker-1", "", "", long); err != nil {
		t.Fatal(err)
	}

	n := notifier.last(t)
	if len(n.preview) != previewLen {
		t.Fatalf("expected %d char preview, got %d", previewLen, len(n.preview))
	}
}

func TestSubscribeDeliversBacklogThenLive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	conv, _ := svc.Start(ctx, "emp-1", "seeker-1", "", "", "first")
	if _, err := svc.Send(ctx, conv.ID, "seeker-1", "second"); err != nil {
		t.Fatal(err)
	}

	sub, err := svc.SubscribeMessages(ctx, conv.ID, "emp-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Cancel()

	if got := recvMessage(t, sub.C); got.Text != "first" {
		t.Fatalf("backlog 1: %q", got.Text)
	}
	if got := recvMessage(t, sub.C); got.Text != "second" {
		t.Fatalf("backlog 2: %q", got.Text)
	}

	if _, err := svc.Send(ctx, conv.ID, "emp-1", "third"); err != nil {
		t.Fatal(err)
	}
	if got := recvMessage(t, sub.C); got.Text != "third" {
		t.Fatalf("live: %q", got.Text)
	}
}

func TestSubscribeCancelClosesChannel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	conv, _ := svc.Start(ctx, "emp-1", "seeker-1", "", "", "hello")
	sub, err := svc.SubscribeMessages(ctx, conv.ID, "seeker-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	recvMessage(t, sub.C)
	sub.Cancel()
	sub.Cancel() // double cancel is safe

	select {
	case _, ok := <-sub.C:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}

	// Sends after cancel are not delivered anywhere but still succeed
	if _, err := svc.Send(ctx, conv.ID, "emp-1", "after cancel"); err != nil {
		t.Fatalf("send after cancel: %v", err)
	}
}

func TestSubscribeRequiresParticipant(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	conv, _ := svc.Start(ctx, "emp-1", "seeker-1", "", "", "hello")
	if _, err := svc.SubscribeMessages(ctx, conv.ID, "intruder"); !errors.Is(err, ErrInvalidParticipant) {
		t.Fatalf("expected ErrInvalidParticipant, got %v", err)
	}
	if _, err := svc.SubscribeMessages(ctx, "missing", "emp-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
