package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"devicehub/internal/dto"
	"devicehub/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubHasher keeps user tests fast and lets them assert that the stored
// password went through the hasher.
type stubHasher struct {
	hashCalls []string
}

func (s *stubHasher) Hash(password string) (string, error) {
	s.hashCalls = append(s.hashCalls, password)
	return "hashed:" + password, nil
}

func (s *stubHasher) Verify(password, encoded string) bool {
	return encoded == "hashed:"+password
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	st := store.New(db)
	if err := st.AutoMigrate(); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return st
}

func newUserService(t *testing.T) (*UserService, *stubHasher, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	hasher := &stubHasher{}
	return NewUserService(st, hasher), hasher, st
}

func TestRegisterHashesPasswordAndSetsAdmin(t *testing.T) {
	svc, hasher, st := newUserService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, dto.RegisterUserRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secret1", IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.ID == 0 || !res.IsAdmin {
		t.Fatalf("unexpected response: %+v", res)
	}
	if len(hasher.hashCalls) != 1 || hasher.hashCalls[0] != "secret1" {
		t.Fatalf("expected password to be hashed, calls: %v", hasher.hashCalls)
	}

	stored, err := st.Users().GetByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored.Password == "secret1" || !strings.HasPrefix(stored.Password, "hashed:") {
		t.Fatalf("plaintext password stored: %q", stored.Password)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, dto.RegisterUserRequest{Name: "Ana", Email: "a@b.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err = svc.Register(ctx, dto.RegisterUserRequest{Name: "Bob", Email: "a@b.com", Password: "secret2"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// First user is untouched by the failed registration.
	got, err := svc.Get(ctx, first.ID)
	if err != nil || got.Email != "a@b.com" {
		t.Fatalf("first user lost: %+v %v", got, err)
	}
}

func TestRegisterAdminCreatesFlagRow(t *testing.T) {
	svc, _, st := newUserService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, dto.RegisterUserRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1", IsAdmin: true})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	isAdmin, err := st.Admins().Exists(ctx, res.ID)
	if err != nil || !isAdmin {
		t.Fatalf("expected flag row in same transaction, got %v %v", isAdmin, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	cases := []dto.RegisterUserRequest{
		{Name: "ab", Email: "a@b.com", Password: "secret1"},
		{Name: "Ana", Email: "not-an-email", Password: "secret1"},
		{Name: "Ana", Email: "a@b.com", Password: "short"},
	}
	for _, req := range cases {
		if _, err := svc.Register(ctx, req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest for %+v, got %v", req, err)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, dto.RegisterUserRequest{Name: "Ana", Email: "a@b.com", Password: "secret1"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, dto.LoginRequest{Email: "unknown@b.com", Password: "secret1"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown email, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, dto.LoginRequest{Email: "a@b.com", Password: "wrong"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong password, got %v", err)
	}

	res, err := svc.Authenticate(ctx, dto.LoginRequest{Email: "a@b.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if res.Email != "a@b.com" || res.IsAdmin {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestUpdateRefusesEmailChange(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, dto.RegisterUserRequest{Name: "Ana", Email: "a@b.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err = svc.Update(ctx, res.ID, dto.UpdateUserRequest{ID: res.ID, Name: "Ana", Email: "other@b.com"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateRehashesNewPassword(t *testing.T) {
	svc, hasher, _ := newUserService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, dto.RegisterUserRequest{Name: "Ana", Email: "a@b.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Update(ctx, res.ID, dto.UpdateUserRequest{ID: res.ID, Name: "Ana María", Email: "a@b.com", Password: "newsecret"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if hasher.hashCalls[len(hasher.hashCalls)-1] != "newsecret" {
		t.Fatalf("expected new password hashed, calls: %v", hasher.hashCalls)
	}

	if _, err := svc.Authenticate(ctx, dto.LoginRequest{Email: "a@b.com", Password: "newsecret"}); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
	if _, err := svc.Authenticate(ctx, dto.LoginRequest{Email: "a@b.com", Password: "secret1"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
}

func TestUpdateMissingUser(t *testing.T) {
	svc, _, _ := newUserService(t)
	_, err := svc.Update(context.Background(), 99, dto.UpdateUserRequest{ID: 99, Name: "Nadie", Email: "x@y.com"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPromote(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	admin, err := svc.Register(ctx, dto.RegisterUserRequest{Name: "Root", Email: "root@b.com", Password: "secret1", IsAdmin: true})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	plain, err := svc.Register(ctx, dto.RegisterUserRequest{Name: "Ana", Email: "ana@b.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register user: %v", err)
	}

	// Non-admin requester.
	if _, err := svc.Promote(ctx, plain.ID, plain.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	// Missing target.
	if _, err := svc.Promote(ctx, admin.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	res, err := svc.Promote(ctx, admin.ID, plain.ID)
	if err != nil || !res.IsAdmin {
		t.Fatalf("promote failed: %+v %v", res, err)
	}

	// Promoting twice is a conflict, not a no-op.
	if _, err := svc.Promote(ctx, admin.ID, plain.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second promote, got %v", err)
	}
}

func TestRemoveReturnsLastKnownAdminFlag(t *testing.T) {
	svc, _, st := newUserService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, dto.RegisterUserRequest{Name: "Root", Email: "root@b.com", Password: "secret1", IsAdmin: true})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	removed, err := svc.Remove(ctx, res.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed.IsAdmin || removed.Email != "root@b.com" {
		t.Fatalf("unexpected removed user: %+v", removed)
	}

	if _, err := svc.Get(ctx, res.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
	exists, _ := st.Admins().Exists(ctx, res.ID)
	if exists {
		t.Fatalf("admin flag should be deleted with the user")
	}

	if _, err := svc.Remove(ctx, res.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}
