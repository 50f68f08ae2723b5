package credit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/domain/user"
	"github.com/skymarket/skymarket-api/internal/middleware"
	"github.com/skymarket/skymarket-api/internal/pkg/response"
	"github.com/skymarket/skymarket-api/internal/pkg/validator"
)

type Handler struct {
	service *Service
	users   user.Repository
}

func NewHandler(service *Service, users user.Repository) *Handler {
	return &Handler{service: service, users: users}
}

// Purchase handles POST /api/market/purchase
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req PurchaseRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Purchase(r.Context(), userID, req.ProductID)
	if err != nil {
		var insufficient *InsufficientFundsError
		switch {
		case errors.As(err, &insufficient):
			response.ErrorWithPayload(w, http.StatusBadRequest, "INSUFFICIENT_CREDITS", "Not enough credits", InsufficientFundsPayload{
				CurrentCredits: insufficient.Current,
				NeededCredits:  insufficient.Needed,
				Shortfall:      insufficient.Shortfall(),
			})
		case errors.Is(err, ErrProductNotFound):
			response.NotFound(w, "Product not found")
		case errors.Is(err, ErrProductInactive):
			response.BadRequest(w, "Product is not available")
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("purchase failed")
			response.InternalError(w, "Failed to complete purchase")
		}
		return
	}

	response.OK(w, PurchaseResponse{
		NewBalance: result.NewBalance,
		OrderID:    result.OrderID,
		Product:    result.ProductName,
		Amount:     result.Amount,
	})
}

// Balance handles GET /api/credits/balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			response.Unauthorized(w, "Invalid session")
			return
		}
		log.Error().Err(err).Msg("failed to load user balance")
		response.InternalError(w, "Failed to load balance")
		return
	}

	response.OK(w, BalanceResponse{
		Credits:  u.Credits,
		Username: u.Username,
		Email:    u.Email,
	})
}

// History handles GET /api/credits/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	txs, err := h.service.ListTransactions(r.Context(), userID, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list credit transactions")
		response.InternalError(w, "Failed to load transaction history")
		return
	}

	response.OK(w, txs)
}
