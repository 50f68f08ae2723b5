package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/domain/credit"
	"github.com/skymarket/skymarket-api/internal/domain/user"
	"github.com/skymarket/skymarket-api/internal/middleware"
	"github.com/skymarket/skymarket-api/internal/pkg/response"
	"github.com/skymarket/skymarket-api/internal/pkg/token"
)

type Handler struct {
	service *Service
	credits *credit.Service
	users   user.Repository
	tokens  *token.Service
}

func NewHandler(service *Service, credits *credit.Service, users user.Repository, tokens *token.Service) *Handler {
	return &Handler{service: service, credits: credits, users: users, tokens: tokens}
}

// Login handles POST /api/admin/login. The request body is only decoded
// after the cross-role check; a browser holding a user session is rejected
// before its credentials are ever read.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	attempt := &LoginAttempt{
		IP:        middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}

	if c, err := r.Cookie(token.UserCookie); err == nil && c.Value != "" {
		attempt.UserSessionPresent = true
	} else {
		var req LoginRequest
		if err := response.DecodeJSON(r.Body, &req); err == nil {
			attempt.Email = req.Email
			attempt.Password = req.Password
		}
	}

	a, err := h.service.Login(r.Context(), attempt)
	if err != nil {
		var locked *LockedOutError
		switch {
		case errors.As(err, &locked):
			response.RateLimited(w, int(locked.RetryAfter.Seconds()))
		case errors.Is(err, ErrUserSessionActive):
			response.Forbidden(w, "Log out of your user session first")
		case errors.Is(err, ErrMissingCredentials):
			response.BadRequest(w, "Email and password required")
		case errors.Is(err, ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid credentials")
		default:
			log.Error().Err(err).Msg("admin login failed")
			response.InternalError(w, "Login failed")
		}
		return
	}

	tokenString, err := h.tokens.IssueAdmin(a.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue admin token")
		response.InternalError(w, "Login failed")
		return
	}
	h.tokens.SetCookie(w, token.RoleAdmin, tokenString)

	response.OK(w, map[string]interface{}{
		"id":    a.ID,
		"email": a.Email,
		"name":  a.Name,
	})
}

// Logout handles POST /api/admin/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.tokens.ClearCookie(w, token.RoleAdmin)
	response.OK(w, map[string]string{"message": "Logged out"})
}

// Check handles GET /api/admin/check. Always 200; the body says whether the
// caller holds a live admin session.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	raw := token.FromRequest(r, token.RoleAdmin)
	if raw == "" {
		response.OK(w, CheckResponse{IsAdmin: false})
		return
	}

	claims, err := h.tokens.VerifyRole(raw, token.RoleAdmin)
	if err != nil {
		response.OK(w, CheckResponse{IsAdmin: false})
		return
	}

	if _, err := h.service.repo.GetByID(r.Context(), claims.SubjectID); err != nil {
		response.OK(w, CheckResponse{IsAdmin: false})
		return
	}

	response.OK(w, CheckResponse{IsAdmin: true})
}

// ListUsers handles GET /api/admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		response.InternalError(w, "Failed to fetch users")
		return
	}

	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Credits:   u.Credits,
			CreatedAt: u.CreatedAt,
		})
	}

	response.OK(w, rows)
}

// AddCredits handles POST /api/admin/credits/add
func (h *Handler) AddCredits(w http.ResponseWriter, r *http.Request) {
	var req AddCreditsRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.UserID == uuid.Nil {
		response.BadRequest(w, "userId required")
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "Added by admin"
	}

	result, err := h.credits.Grant(r.Context(), req.UserID, req.Amount, reason)
	if err != nil {
		switch {
		case errors.Is(err, credit.ErrInvalidAmount):
			response.BadRequest(w, "Amount must be greater than 0")
		case errors.Is(err, credit.ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Msg("credit grant failed")
			response.InternalError(w, "Failed to add credits")
		}
		return
	}

	response.OK(w, AddCreditsResponse{
		UserID:     req.UserID,
		NewBalance: result.NewBalance,
	})
}

// ListLoginLogs handles GET /api/admin/login-logs
func (h *Handler) ListLoginLogs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, total, err := h.service.ListLoginLogs(r.Context(), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list login logs")
		response.InternalError(w, "Failed to fetch login logs")
		return
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	response.WithMeta(w, logs, response.Meta{Total: total, Page: page, Limit: limit})
}
