package bridge

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/domain/order"
	"github.com/skymarket/skymarket-api/internal/domain/user"
	"github.com/skymarket/skymarket-api/internal/pkg/response"
)

type Handler struct {
	orders order.Repository
	users  user.Repository
}

func NewHandler(orders order.Repository, users user.Repository) *Handler {
	return &Handler{orders: orders, users: users}
}

// Pending handles GET /api/mc/pending. The optional username filter is only
// applied when the user exists; an unknown name falls back to the unfiltered
// list so a misspelled poll still drains the queue.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	var userID *uuid.UUID
	if username := r.URL.Query().Get("username"); username != "" {
		u, err := h.users.FindByUsernameInsensitive(r.Context(), username)
		if err != nil && !errors.Is(err, user.ErrNotFound) {
			log.Error().Err(err).Msg("bridge username lookup failed")
			response.InternalError(w, "Server error")
			return
		}
		if u != nil {
			userID = &u.ID
		}
	}

	orders, err := h.orders.ListPending(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list pending orders")
		response.InternalError(w, "Server error")
		return
	}

	response.OK(w, PendingResponse{Count: len(orders), Orders: orders})
}

// Execute handles POST /api/mc/execute
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.OrderID == uuid.Nil {
		response.BadRequest(w, "Order ID required")
		return
	}

	o, err := h.orders.GetBridgeOrder(r.Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			response.NotFound(w, "Order not found")
			return
		}
		log.Error().Err(err).Msg("failed to load order")
		response.InternalError(w, "Server error")
		return
	}

	status := o.Status
	if req.Executed != nil {
		next := order.StatusFailed
		if *req.Executed {
			next = order.StatusCompleted
		}

		moved, err := h.orders.SetStatusFromPending(r.Context(), o.ID, next)
		if err != nil {
			log.Error().Err(err).Msg("failed to update order status")
			response.InternalError(w, "Server error")
			return
		}
		if moved {
			status = next
		}

		log.Info().
			Str("order_id", o.ID.String()).
			Str("status", string(status)).
			Bool("moved", moved).
			Msg("bridge execute")
	}

	response.OK(w, ExecuteResponse{Order: OrderSummary{
		ID:          o.ID,
		Username:    o.Username,
		ProductName: o.ProductName,
		Amount:      o.Amount,
		Status:      status,
	}})
}

// Verify handles POST /api/mc/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Username == "" {
		response.BadRequest(w, "Username required")
		return
	}

	u, err := h.users.FindByUsernameInsensitive(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		log.Error().Err(err).Msg("bridge verify lookup failed")
		response.InternalError(w, "Server error")
		return
	}

	response.OK(w, VerifyResponse{
		ID:       u.ID,
		Username: u.Username,
		Credits:  u.Credits,
		Email:    u.Email,
	})
}
