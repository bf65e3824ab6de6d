package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"jobboard/internal/database"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.ConnectSilent(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Job{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(NewRepository(db)), db
}

func futureForm() *Form {
	f := validTestForm()
	f.Deadline = time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	return f
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "emp-1", futureForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != StatusPublished {
		t.Fatalf("expected published, got %s", created.Status)
	}
	if created.EmployerID != "emp-1" {
		t.Fatalf("wrong owner %s", created.EmployerID)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != created.Title {
		t.Fatalf("got title %q", got.Title)
	}
}

func TestCreateRejectsInvalidForm(t *testing.T) {
	svc, _ := newTestService(t)

	f := futureForm()
	f.Title = "Dev"
	_, err := svc.Create(context.Background(), "emp-1", f)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["title"] == "" {
		t.Fatalf("expected title field error, got %v", verr.Fields)
	}
}

func TestDraftIsExcludedFromListing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "emp-1", futureForm()); err != nil {
		t.Fatalf("create: %v", err)
	}
	draft, err := svc.CreateDraft(ctx, "emp-1", futureForm())
	if err != nil {
		t.Fatalf("draft: %v", err)
	}

	listed, err := svc.ListPublished(ctx, Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 published job, got %d", len(listed))
	}

	// Publishing promotes the draft into the listing
	if _, err := svc.Publish(ctx, "emp-1", draft.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	listed, _ = svc.ListPublished(ctx, Filter{})
	if len(listed) != 2 {
		t.Fatalf("expected 2 after publish, got %d", len(listed))
	}

	// Publishing again is a no-op success
	if _, err := svc.Publish(ctx, "emp-1", draft.ID); err != nil {
		t.Fatalf("re-publish: %v", err)
	}
}

func TestOwnershipChecks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	j, err := svc.Create(ctx, "emp-1", futureForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, "emp-2", j.ID, futureForm()); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("update: expected ErrNotOwner, got %v", err)
	}
	if _, err := svc.Publish(ctx, "emp-2", j.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("publish: expected ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(ctx, "emp-2", j.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("delete: expected ErrNotOwner, got %v", err)
	}

	if err := svc.Delete(ctx, "emp-1", j.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, j.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUpdateRevalidates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	j, err := svc.Create(ctx, "emp-1", futureForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := futureForm()
	bad.Openings = 0
	var verr *ValidationError
	if _, err := svc.Update(ctx, "emp-1", j.ID, bad); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	good := futureForm()
	good.Title = "Principal Engineer"
	updated, err := svc.Update(ctx, "emp-1", j.ID, good)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Principal Engineer" {
		t.Fatalf("got %q", updated.Title)
	}
	if updated.Status != StatusPublished {
		t.Fatalf("update must not change status, got %s", updated.Status)
	}
}

func TestListPublishedFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a := futureForm()
	a.Title = "Data Scientist"
	a.Location = "San Francisco, CA"
	b := futureForm()
	b.Title = "Civil Engineer"
	b.Location = "Houston, TX"

	if _, err := svc.Create(ctx, "emp-1", a); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, "emp-1", b); err != nil {
		t.Fatal(err)
	}

	got, err := svc.ListPublished(ctx, Filter{Query: "scientist"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Data Scientist" {
		t.Fatalf("unexpected result %+v", got)
	}

	got, _ = svc.ListPublished(ctx, Filter{Query: "scientist", Location: "houston"})
	if len(got) != 0 {
		t.Fatalf("conjunctive filter should match nothing, got %d", len(got))
	}
}

func TestIncrementApplicants(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	j, err := svc.Create(ctx, "emp-1", futureForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.IncrementApplicants(ctx, j.ID); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := svc.IncrementApplicants(ctx, j.ID); err != nil {
		t.Fatalf("increment: %v", err)
	}

	got, _ := svc.GetByID(ctx, j.ID)
	if got.ApplicantsCount != 2 {
		t.Fatalf("expected 2 applicants, got %d", got.ApplicantsCount)
	}
}
