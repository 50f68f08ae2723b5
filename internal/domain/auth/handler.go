package auth

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/domain/user"
	"github.com/skymarket/skymarket-api/internal/middleware"
	"github.com/skymarket/skymarket-api/internal/pkg/response"
	"github.com/skymarket/skymarket-api/internal/pkg/token"
	"github.com/skymarket/skymarket-api/internal/pkg/validator"
)

const forgotPasswordMessage = "If this email is registered, a password reset link has been sent."

type Handler struct {
	service *Service
	tokens  *token.Service
}

func NewHandler(service *Service, tokens *token.Service) *Handler {
	return &Handler{service: service, tokens: tokens}
}

// Register handles POST /api/auth/register. A fresh registration sets the
// user cookie but deliberately leaves any admin cookie alone; only login
// clears it.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			response.BadRequest(w, "Email or username already in use")
			return
		}
		log.Error().Err(err).Msg("register failed")
		response.InternalError(w, "Registration failed")
		return
	}

	tokenString, err := h.tokens.IssueUser(u.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue user token")
		response.InternalError(w, "Registration failed")
		return
	}
	h.tokens.SetCookie(w, token.RoleUser, tokenString)

	response.OK(w, toUserResponse(u))
}

// Login handles POST /api/auth/login. A successful user login evicts any
// admin session on the same browser.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid email or password")
			return
		}
		log.Error().Err(err).Msg("login failed")
		response.InternalError(w, "Login failed")
		return
	}

	tokenString, err := h.tokens.IssueUser(u.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue user token")
		response.InternalError(w, "Login failed")
		return
	}

	h.tokens.ClearCookie(w, token.RoleAdmin)
	h.tokens.SetCookie(w, token.RoleUser, tokenString)

	response.OK(w, toUserResponse(u))
}

// Logout handles POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.tokens.ClearCookie(w, token.RoleUser)
	response.OK(w, map[string]string{"message": "Logged out"})
}

// Me handles GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	u, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		log.Error().Err(err).Msg("failed to load user")
		response.InternalError(w, "Failed to load user")
		return
	}

	response.OK(w, toUserResponse(u))
}

// ForgotPassword handles POST /api/auth/forgot-password. The response is the
// same whether or not the account exists.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		log.Error().Err(err).Msg("forgot password failed")
		response.InternalError(w, "Failed to process request")
		return
	}

	response.OK(w, map[string]string{"message": forgotPasswordMessage})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, ErrResetTokenInvalid):
			response.BadRequest(w, "Invalid or expired token")
		case errors.Is(err, ErrResetTokenUsed):
			response.BadRequest(w, "This token has already been used")
		case errors.Is(err, ErrResetTokenExpired):
			response.BadRequest(w, "Token has expired")
		default:
			log.Error().Err(err).Msg("reset password failed")
			response.InternalError(w, "Failed to reset password")
		}
		return
	}

	response.OK(w, map[string]string{"message": "Password reset successfully. You can now log in."})
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Credits:  u.Credits,
	}
}
