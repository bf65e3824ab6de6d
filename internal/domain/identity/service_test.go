package identity

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"jobboard/internal/database"
)

type stubJWT struct{ issued int }

func (s *stubJWT) GenerateToken(userID string, role string) (string, error) {
	s.issued++
	return fmt.Sprintf("token-%s-%s-%d", userID, role, s.issued), nil
}

func newTestService(t *testing.T) (*Service, *stubJWT) {
	t.Helper()
	db, err := database.ConnectSilent(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	jwt := &stubJWT{}
	return NewService(NewRepository(db), jwt), jwt
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Jamie@Example.com", "secret123", "Jamie Rivera", "+49 170 0000000", RoleJobSeeker)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "jamie@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash != "" {
		t.Fatal("hash leaked in response")
	}

	// Same email, different casing
	if _, err := svc.Register(ctx, "JAMIE@example.com", "other", "Other", "", RoleEmployer); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	res, err := svc.Login(ctx, "jamie@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccessToken == "" || res.User.ID != user.ID {
		t.Fatalf("unexpected login result %+v", res)
	}
	if res.User.PasswordHash != "" {
		t.Fatal("hash leaked in login response")
	}

	if _, err := svc.Login(ctx, "jamie@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSetRole(t *testing.T) {
	svc, jwt := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "jamie@example.com", "secret123", "Jamie", "", RoleJobSeeker)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.SetRole(ctx, user.ID, RoleEmployer)
	if err != nil {
		t.Fatalf("set role: %v", err)
	}
	if res.User.Role != RoleEmployer {
		t.Fatalf("role not switched: %s", res.User.Role)
	}
	if res.AccessToken == "" {
		t.Fatal("expected a fresh token after the switch")
	}

	// Setting the same role again succeeds and still returns a token
	issuedBefore := jwt.issued
	again, err := svc.SetRole(ctx, user.ID, RoleEmployer)
	if err != nil {
		t.Fatalf("idempotent set: %v", err)
	}
	if again.User.Role != RoleEmployer || jwt.issued != issuedBefore+1 {
		t.Fatalf("unexpected idempotent result %+v", again)
	}

	// Admin cannot be self-assigned
	if _, err := svc.SetRole(ctx, user.ID, RoleAdmin); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestMeAndDisplayName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, _ := svc.Register(ctx, "jamie@example.com", "secret123", "Jamie Rivera", "", RoleJobSeeker)

	me, err := svc.Me(ctx, user.ID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Email != "jamie@example.com" || me.PasswordHash != "" {
		t.Fatalf("unexpected me %+v", me)
	}

	name, err := svc.DisplayName(ctx, user.ID)
	if err != nil || name != "Jamie Rivera" {
		t.Fatalf("display name: %q, %v", name, err)
	}
	if _, err := svc.DisplayName(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
