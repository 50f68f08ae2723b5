package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skymarket/skymarket-api/internal/domain/user"
	"github.com/skymarket/skymarket-api/internal/pkg/email"
	"github.com/skymarket/skymarket-api/internal/pkg/password"
)

type fakeUserRepo struct {
	byEmail    map[string]*user.User
	byUsername map[string]*user.User
	created    *user.User
	passwords  map[uuid.UUID]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:    map[string]*user.User{},
		byUsername: map[string]*user.User{},
		passwords:  map[uuid.UUID]string{},
	}
}

func (f *fakeUserRepo) add(u *user.User) {
	f.byEmail[u.Email] = u
	f.byUsername[strings.ToLower(u.Username)] = u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.created = u
	f.add(u)
	return nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) GetByEmailOrUsername(ctx context.Context, email, username string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	if u, ok := f.byUsername[strings.ToLower(username)]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) FindByUsernameInsensitive(ctx context.Context, username string) (*user.User, error) {
	if u, ok := f.byUsername[strings.ToLower(username)]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	f.passwords[id] = hash
	return nil
}
func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }

type fakeResetRepo struct {
	tokens map[string]*ResetToken
	used   map[uuid.UUID]bool
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: map[string]*ResetToken{}, used: map[uuid.UUID]bool{}}
}

func (f *fakeResetRepo) Create(ctx context.Context, rt *ResetToken) error {
	f.tokens[rt.Token] = rt
	return nil
}
func (f *fakeResetRepo) GetByToken(ctx context.Context, token string) (*ResetToken, error) {
	if rt, ok := f.tokens[token]; ok {
		return rt, nil
	}
	return nil, ErrResetTokenInvalid
}
func (f *fakeResetRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	f.used[id] = true
	for _, rt := range f.tokens {
		if rt.ID == id {
			rt.Used = true
		}
	}
	return nil
}

func newTestService(users *fakeUserRepo, resets *fakeResetRepo) *Service {
	return NewService(users, resets, email.NopSender{})
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	users := newFakeUserRepo()
	users.add(&user.User{ID: uuid.New(), Email: "steve@example.com", Username: "Steve"})
	svc := newTestService(users, newFakeResetRepo())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "steve@example.com",
		Username: "Other",
		Password: "secret1",
	})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for duplicate email, got %v", err)
	}

	_, err = svc.Register(context.Background(), &RegisterRequest{
		Email:    "other@example.com",
		Username: "steve",
		Password: "secret1",
	})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for duplicate username, got %v", err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users, newFakeResetRepo())

	u, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "steve@example.com",
		Username: "Steve",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.PasswordHash == "secret1" || u.PasswordHash == "" {
		t.Fatal("expected password to be hashed")
	}
	if !password.Verify("secret1", u.PasswordHash) {
		t.Fatal("hash does not verify against original password")
	}
	if u.Credits != 0 {
		t.Fatalf("expected new user to start with 0 credits, got %d", u.Credits)
	}
}

func TestLoginGenericFailure(t *testing.T) {
	users := newFakeUserRepo()
	hash, _ := password.Hash("correct1")
	users.add(&user.User{ID: uuid.New(), Email: "steve@example.com", Username: "Steve", PasswordHash: hash})
	svc := newTestService(users, newFakeResetRepo())

	// unknown email and wrong password must be indistinguishable
	_, errUnknown := svc.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	_, errWrong := svc.Login(context.Background(), &LoginRequest{Email: "steve@example.com", Password: "wrong"})

	if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", errUnknown, errWrong)
	}

	u, err := svc.Login(context.Background(), &LoginRequest{Email: "steve@example.com", Password: "correct1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "Steve" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestForgotPasswordUnknownEmailSucceeds(t *testing.T) {
	resets := newFakeResetRepo()
	svc := newTestService(newFakeUserRepo(), resets)

	if err := svc.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("expected nil error for unknown email, got %v", err)
	}
	if len(resets.tokens) != 0 {
		t.Fatal("expected no token for unknown email")
	}
}

func TestForgotPasswordCreatesToken(t *testing.T) {
	users := newFakeUserRepo()
	userID := uuid.New()
	users.add(&user.User{ID: userID, Email: "steve@example.com", Username: "Steve"})
	resets := newFakeResetRepo()
	svc := newTestService(users, resets)

	if err := svc.ForgotPassword(context.Background(), "steve@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resets.tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(resets.tokens))
	}
	for raw, rt := range resets.tokens {
		if len(raw) != 64 {
			t.Fatalf("expected 64 hex chars, got %d", len(raw))
		}
		if rt.UserID != userID {
			t.Fatal("token bound to wrong user")
		}
		if until := time.Until(rt.ExpiresAt); until < 59*time.Minute || until > time.Hour {
			t.Fatalf("unexpected expiry window: %v", until)
		}
	}
}

func TestResetPasswordSingleUse(t *testing.T) {
	users := newFakeUserRepo()
	userID := uuid.New()
	users.add(&user.User{ID: userID, Email: "steve@example.com", Username: "Steve"})
	resets := newFakeResetRepo()
	svc := newTestService(users, resets)

	rt := &ResetToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     "deadbeef",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	resets.Create(context.Background(), rt)

	if err := svc.ResetPassword(context.Background(), "deadbeef", "newpass1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := users.passwords[userID]; !ok {
		t.Fatal("expected password to be updated")
	}

	if err := svc.ResetPassword(context.Background(), "deadbeef", "another1"); !errors.Is(err, ErrResetTokenUsed) {
		t.Fatalf("expected ErrResetTokenUsed on second use, got %v", err)
	}
}

func TestResetPasswordExpired(t *testing.T) {
	users := newFakeUserRepo()
	userID := uuid.New()
	users.add(&user.User{ID: userID, Email: "steve@example.com", Username: "Steve"})
	resets := newFakeResetRepo()
	svc := newTestService(users, resets)

	resets.Create(context.Background(), &ResetToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     "expired",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	})

	if err := svc.ResetPassword(context.Background(), "expired", "newpass1"); !errors.Is(err, ErrResetTokenExpired) {
		t.Fatalf("expected ErrResetTokenExpired, got %v", err)
	}

	if err := svc.ResetPassword(context.Background(), "missing", "newpass1"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}
