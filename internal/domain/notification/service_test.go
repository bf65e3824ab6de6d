package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard/internal/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.ConnectSilent(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Notification{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc := NewService(NewRepository(db), NewCountHub())

	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}

func recvCount(t *testing.T, ch <-chan int64) int64 {
	t.Helper()
	select {
	case count, ok := <-ch:
		if !ok {
			t.Fatal("channel closed early")
		}
		return count
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for count")
		return 0
	}
}

func TestFeedIsNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.NotifyNewApplication(ctx, "emp-1", "job-1", "Backend Engineer", "seeker-1", "Jamie Rivera"); err != nil {
		t.Fatal(err)
	}
	if err := svc.NotifyNewMessage(ctx, "emp-1", "conv-1", "Jamie Rivera", "Backend Engineer", "Thanks for reaching out"); err != nil {
		t.Fatal(err)
	}
	// A different user's feed stays separate
	if err := svc.NotifyNewMessage(ctx, "seeker-1", "conv-1", "Acme HR", "", "Hello"); err != nil {
		t.Fatal(err)
	}

	feed, err := svc.ListForUser(ctx, "emp-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 items, got %d", len(feed))
	}
	if feed[0].Type != TypeNewMessage || feed[1].Type != TypeNewApplication {
		t.Fatalf("not newest first: %s, %s", feed[0].Type, feed[1].Type)
	}
	if feed[1].Summary() != "Jamie Rivera applied for Backend Engineer" {
		t.Fatalf("summary %q", feed[1].Summary())
	}
	if feed[0].Summary() != "New message from Jamie Rivera about Backend Engineer" {
		t.Fatalf("summary %q", feed[0].Summary())
	}

	count, _ := svc.CountUnread(ctx, "emp-1")
	if count != 2 {
		t.Fatalf("expected 2 unread, got %d", count)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	svc.NotifyNewApplication(ctx, "emp-1", "job-1", "Backend Engineer", "seeker-1", "Jamie")
	feed, _ := svc.ListForUser(ctx, "emp-1")
	id := feed[0].ID

	if err := svc.MarkRead(ctx, "emp-1", id); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := svc.MarkRead(ctx, "emp-1", id); err != nil {
		t.Fatalf("second mark must be a no-op, got %v", err)
	}

	count, _ := svc.CountUnread(ctx, "emp-1")
	if count != 0 {
		t.Fatalf("expected 0 unread, got %d", count)
	}

	if err := svc.MarkRead(ctx, "seeker-1", id); !errors.Is(err, ErrNotRecipient) {
		t.Fatalf("foreign user: expected ErrNotRecipient, got %v", err)
	}
	if err := svc.MarkRead(ctx, "emp-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing: expected ErrNotFound, got %v", err)
	}
}

func TestMarkAllReadTouchesOnlyUnread(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		svc.NotifyNewMessage(ctx, "emp-1", "conv-1", "Jamie", "", "hello")
	}
	feed, _ := svc.ListForUser(ctx, "emp-1")
	if err := svc.MarkRead(ctx, "emp-1", feed[0].ID); err != nil {
		t.Fatal(err)
	}

	flipped, err := svc.MarkAllRead(ctx, "emp-1")
	if err != nil {
		t.Fatalf("mark all: %v", err)
	}
	if flipped != 2 {
		t.Fatalf("expected 2 flipped, got %d", flipped)
	}

	flipped, _ = svc.MarkAllRead(ctx, "emp-1")
	if flipped != 0 {
		t.Fatalf("second pass should flip nothing, got %d", flipped)
	}
}

func TestResolveReturnsTargetAndMarksReadOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// The referenced job and conversation do not exist anywhere; resolution
	// must still work and clear the item
	svc.NotifyNewApplication(ctx, "emp-1", "job-gone", "Old Role", "seeker-1", "Jamie")
	svc.NotifyNewMessage(ctx, "emp-1", "conv-gone", "Jamie", "", "hi")
	feed, _ := svc.ListForUser(ctx, "emp-1")

	msgTarget, err := svc.Resolve(ctx, "emp-1", feed[0].ID)
	if err != nil {
		t.Fatalf("resolve message: %v", err)
	}
	if msgTarget.Kind != "conversation" || msgTarget.ConversationID != "conv-gone" {
		t.Fatalf("unexpected target %+v", msgTarget)
	}

	appTarget, err := svc.Resolve(ctx, "emp-1", feed[1].ID)
	if err != nil {
		t.Fatalf("resolve application: %v", err)
	}
	if appTarget.Kind != "applications" || appTarget.JobID != "job-gone" {
		t.Fatalf("unexpected target %+v", appTarget)
	}

	count, _ := svc.CountUnread(ctx, "emp-1")
	if count != 0 {
		t.Fatalf("expected 0 unread after resolve, got %d", count)
	}

	// Resolving again still navigates but flips nothing
	if _, err := svc.Resolve(ctx, "emp-1", feed[0].ID); err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if _, err := svc.Resolve(ctx, "seeker-1", feed[0].ID); !errors.Is(err, ErrNotRecipient) {
		t.Fatalf("foreign user: expected ErrNotRecipient, got %v", err)
	}
}

func TestUnreadCountSubscription(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	svc.NotifyNewMessage(ctx, "emp-1", "conv-1", "Jamie", "", "hi")

	sub, err := svc.SubscribeUnreadCount(ctx, "emp-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if got := recvCount(t, sub.C); got != 1 {
		t.Fatalf("initial count %d", got)
	}

	// Two quick events coalesce to the latest value
	svc.NotifyNewMessage(ctx, "emp-1", "conv-1", "Jamie", "", "hi again")
	svc.NotifyNewApplication(ctx, "emp-1", "job-1", "Backend Engineer", "seeker-1", "Jamie")
	if got := recvCount(t, sub.C); got != 3 {
		t.Fatalf("after events: %d", got)
	}

	if _, err := svc.MarkAllRead(ctx, "emp-1"); err != nil {
		t.Fatal(err)
	}
	if got := recvCount(t, sub.C); got != 0 {
		t.Fatalf("after mark all: %d", got)
	}

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
}
