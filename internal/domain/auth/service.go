package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/domain/user"
	"github.com/skymarket/skymarket-api/internal/pkg/email"
	"github.com/skymarket/skymarket-api/internal/pkg/password"
)

const resetTokenTTL = time.Hour

type Service struct {
	users  user.Repository
	resets ResetTokenRepository
	emails email.Sender
}

func NewService(users user.Repository, resets ResetTokenRepository, emails email.Sender) *Service {
	return &Service{users: users, resets: resets, emails: emails}
}

// Register creates an account and sends the welcome email.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*user.User, error) {
	existing, err := s.users.GetByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		Credits:      0,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", u.ID.String()).Str("username", u.Username).Msg("user registered")

	s.emails.SendWelcome(u.Email, u.Username)

	return u, nil
}

// Login checks credentials. Both unknown email and wrong password return
// ErrInvalidCredentials so the response never reveals which one failed.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*user.User, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// ForgotPassword creates a single-use reset token and mails it. The caller
// responds identically whether or not the email exists.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	u, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	rt := &ResetToken{
		ID:        uuid.New(),
		UserID:    u.ID,
		Token:     hex.EncodeToString(raw),
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := s.resets.Create(ctx, rt); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	s.emails.SendPasswordReset(u.Email, u.Username, rt.Token)

	return nil
}

// ResetPassword consumes a reset token and replaces the user's password.
func (s *Service) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	rt, err := s.resets.GetByToken(ctx, tokenString)
	if err != nil {
		return err
	}
	if rt.Used {
		return ErrResetTokenUsed
	}
	if time.Now().After(rt.ExpiresAt) {
		return ErrResetTokenExpired
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, rt.UserID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.resets.MarkUsed(ctx, rt.ID); err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}

	log.Info().Str("user_id", rt.UserID.String()).Msg("password reset")

	return nil
}

// GetUser loads a user by ID for the session endpoint.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}
