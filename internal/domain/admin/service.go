package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/pkg/password"
	"github.com/skymarket/skymarket-api/internal/ratelimit"
)

// LockedOutError carries how long the caller has to wait.
type LockedOutError struct {
	RetryAfter time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("too many attempts, retry after %s", e.RetryAfter)
}

func (e *LockedOutError) Is(target error) bool {
	return target == ErrLockedOut
}

// LoginAttempt is everything the audit trail needs about one request.
type LoginAttempt struct {
	Email              string
	Password           string
	IP                 string
	UserAgent          string
	UserSessionPresent bool
}

type Service struct {
	repo  Repository
	logs  LoginLogRepository
	guard *ratelimit.LoginGuard
}

func NewService(repo Repository, logs LoginLogRepository, guard *ratelimit.LoginGuard) *Service {
	return &Service{repo: repo, logs: logs, guard: guard}
}

// Login performs the admin credential check. Every attempt lands in the
// audit log, including lockout rejections and cross-role blocks. The lockout
// guard counts failures per IP regardless of which check rejected them.
func (s *Service) Login(ctx context.Context, attempt *LoginAttempt) (*Admin, error) {
	if blocked, retryAfter := s.guard.Check(attempt.IP); blocked {
		s.audit(ctx, attempt, attempt.Email, false, ReasonRateLimited)
		return nil, &LockedOutError{RetryAfter: retryAfter}
	}

	// Cross-role block. The attempted email is deliberately not recorded
	// here; the request body is never read in this path.
	if attempt.UserSessionPresent {
		s.audit(ctx, attempt, BlockedEmailPlaceholder, false, ReasonUserSessionActive)
		return nil, ErrUserSessionActive
	}

	if attempt.Email == "" || attempt.Password == "" {
		s.guard.Fail(attempt.IP)
		email := attempt.Email
		if email == "" {
			email = EmptyEmailPlaceholder
		}
		s.audit(ctx, attempt, email, false, ReasonMissingCredentials)
		return nil, ErrMissingCredentials
	}

	a, err := s.repo.GetByEmail(ctx, attempt.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.guard.Fail(attempt.IP)
			s.audit(ctx, attempt, attempt.Email, false, ReasonNotFound)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	if !password.Verify(attempt.Password, a.PasswordHash) {
		s.guard.Fail(attempt.IP)
		s.audit(ctx, attempt, attempt.Email, false, ReasonInvalidPassword)
		return nil, ErrInvalidCredentials
	}

	s.guard.Reset(attempt.IP)
	s.audit(ctx, attempt, attempt.Email, true, ReasonSuccess)

	log.Info().Str("admin_id", a.ID.String()).Str("ip", attempt.IP).Msg("admin login")

	return a, nil
}

func (s *Service) ListLoginLogs(ctx context.Context, page, limit int) ([]LoginLog, int, error) {
	return s.logs.List(ctx, page, limit)
}

func (s *Service) audit(ctx context.Context, attempt *LoginAttempt, email string, success bool, reason string) {
	err := s.logs.Append(ctx, &LoginLog{
		EmailAttempted: email,
		Success:        success,
		IP:             attempt.IP,
		UserAgent:      attempt.UserAgent,
		Reason:         reason,
	})
	if err != nil {
		log.Error().Err(err).Str("reason", reason).Msg("failed to append login audit log")
	}
}
