package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skymarket/skymarket-api/internal/domain/order"
	"github.com/skymarket/skymarket-api/internal/domain/user"
)

type fakeOrderRepo struct {
	pending      []order.BridgeOrder
	byID         map[uuid.UUID]*order.BridgeOrder
	filteredWith *uuid.UUID
}

func (f *fakeOrderRepo) ListPending(ctx context.Context, userID *uuid.UUID) ([]order.BridgeOrder, error) {
	f.filteredWith = userID
	if userID == nil {
		return f.pending, nil
	}
	return nil, nil
}
func (f *fakeOrderRepo) GetBridgeOrder(ctx context.Context, id uuid.UUID) (*order.BridgeOrder, error) {
	if o, ok := f.byID[id]; ok {
		return o, nil
	}
	return nil, order.ErrNotFound
}
func (f *fakeOrderRepo) SetStatusFromPending(ctx context.Context, id uuid.UUID, status order.Status) (bool, error) {
	o, ok := f.byID[id]
	if !ok || o.Status != order.StatusPending {
		return false, nil
	}
	o.Status = status
	return true, nil
}
func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]order.Order, error) {
	return nil, nil
}

type fakeUserRepo struct {
	byUsername map[string]*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) GetByEmailOrUsername(ctx context.Context, email, username string) (*user.User, error) {
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) FindByUsernameInsensitive(ctx context.Context, username string) (*user.User, error) {
	if u, ok := f.byUsername[strings.ToLower(username)]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return nil
}
func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }

func TestAPIKeyAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	guarded := APIKeyAuth("secret-key")(next)

	cases := []struct {
		name string
		key  string
		want int
	}{
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "wrong", http.StatusUnauthorized},
		{"correct key", "secret-key", http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/mc/pending", nil)
			if tc.key != "" {
				req.Header.Set("X-API-Key", tc.key)
			}
			rec := httptest.NewRecorder()
			guarded.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestPendingUnknownUsernameFallsBack(t *testing.T) {
	orders := &fakeOrderRepo{pending: []order.BridgeOrder{{
		ID:          uuid.New(),
		Username:    "Steve",
		ProductName: "VIP Rank",
		Amount:      229,
		Status:      order.StatusPending,
		CreatedAt:   time.Now(),
	}}}
	h := NewHandler(orders, &fakeUserRepo{byUsername: map[string]*user.User{}})

	rec := httptest.NewRecorder()
	h.Pending(rec, httptest.NewRequest(http.MethodGet, "/api/mc/pending?username=Nobody", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if orders.filteredWith != nil {
		t.Fatal("expected unfiltered query for unknown username")
	}

	var resp struct {
		Data PendingResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Data.Count != 1 {
		t.Fatalf("expected count 1, got %d", resp.Data.Count)
	}
}

func TestPendingKnownUsernameFilters(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserRepo{byUsername: map[string]*user.User{
		"steve": {ID: userID, Username: "Steve"},
	}}
	orders := &fakeOrderRepo{}
	h := NewHandler(orders, users)

	rec := httptest.NewRecorder()
	h.Pending(rec, httptest.NewRequest(http.MethodGet, "/api/mc/pending?username=STEVE", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if orders.filteredWith == nil || *orders.filteredWith != userID {
		t.Fatal("expected query filtered by resolved user ID")
	}
}

func TestExecuteTransitions(t *testing.T) {
	orderID := uuid.New()

	newRepo := func(status order.Status) *fakeOrderRepo {
		return &fakeOrderRepo{byID: map[uuid.UUID]*order.BridgeOrder{
			orderID: {ID: orderID, Username: "Steve", ProductName: "VIP Rank", Amount: 229, Status: status},
		}}
	}

	t.Run("executed true completes", func(t *testing.T) {
		repo := newRepo(order.StatusPending)
		h := NewHandler(repo, &fakeUserRepo{})

		body, _ := json.Marshal(map[string]interface{}{"orderId": orderID, "executed": true})
		rec := httptest.NewRecorder()
		h.Execute(rec, httptest.NewRequest(http.MethodPost, "/api/mc/execute", bytes.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if repo.byID[orderID].Status != order.StatusCompleted {
			t.Fatalf("expected completed, got %s", repo.byID[orderID].Status)
		}
	})

	t.Run("executed false fails", func(t *testing.T) {
		repo := newRepo(order.StatusPending)
		h := NewHandler(repo, &fakeUserRepo{})

		body, _ := json.Marshal(map[string]interface{}{"orderId": orderID, "executed": false})
		rec := httptest.NewRecorder()
		h.Execute(rec, httptest.NewRequest(http.MethodPost, "/api/mc/execute", bytes.NewReader(body)))

		if repo.byID[orderID].Status != order.StatusFailed {
			t.Fatalf("expected failed, got %s", repo.byID[orderID].Status)
		}
	})

	t.Run("terminal order stays terminal", func(t *testing.T) {
		repo := newRepo(order.StatusCompleted)
		h := NewHandler(repo, &fakeUserRepo{})

		body, _ := json.Marshal(map[string]interface{}{"orderId": orderID, "executed": false})
		rec := httptest.NewRecorder()
		h.Execute(rec, httptest.NewRequest(http.MethodPost, "/api/mc/execute", bytes.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if repo.byID[orderID].Status != order.StatusCompleted {
			t.Fatalf("expected completed to stay, got %s", repo.byID[orderID].Status)
		}

		var resp struct {
			Data ExecuteResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response: %v", err)
		}
		if resp.Data.Order.Status != order.StatusCompleted {
			t.Fatalf("expected echoed status completed, got %s", resp.Data.Order.Status)
		}
	})

	t.Run("missing executed reads only", func(t *testing.T) {
		repo := newRepo(order.StatusPending)
		h := NewHandler(repo, &fakeUserRepo{})

		body, _ := json.Marshal(map[string]interface{}{"orderId": orderID})
		rec := httptest.NewRecorder()
		h.Execute(rec, httptest.NewRequest(http.MethodPost, "/api/mc/execute", bytes.NewReader(body)))

		if repo.byID[orderID].Status != order.StatusPending {
			t.Fatalf("expected status untouched, got %s", repo.byID[orderID].Status)
		}
	})

	t.Run("missing order id", func(t *testing.T) {
		h := NewHandler(newRepo(order.StatusPending), &fakeUserRepo{})
		rec := httptest.NewRecorder()
		h.Execute(rec, httptest.NewRequest(http.MethodPost, "/api/mc/execute", bytes.NewReader([]byte(`{}`))))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		h := NewHandler(newRepo(order.StatusPending), &fakeUserRepo{})
		body, _ := json.Marshal(map[string]interface{}{"orderId": uuid.New(), "executed": true})
		rec := httptest.NewRecorder()
		h.Execute(rec, httptest.NewRequest(http.MethodPost, "/api/mc/execute", bytes.NewReader(body)))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestVerify(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserRepo{byUsername: map[string]*user.User{
		"steve": {ID: userID, Username: "Steve", Credits: 300, Email: "steve@example.com"},
	}}
	h := NewHandler(&fakeOrderRepo{}, users)

	t.Run("known user", func(t *testing.T) {
		body, _ := json.Marshal(VerifyRequest{Username: "steve"})
		rec := httptest.NewRecorder()
		h.Verify(rec, httptest.NewRequest(http.MethodPost, "/api/mc/verify", bytes.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp struct {
			Data VerifyResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response: %v", err)
		}
		if resp.Data.Credits != 300 || resp.Data.ID != userID {
			t.Fatalf("unexpected response: %+v", resp.Data)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		body, _ := json.Marshal(VerifyRequest{Username: "nobody"})
		rec := httptest.NewRecorder()
		h.Verify(rec, httptest.NewRequest(http.MethodPost, "/api/mc/verify", bytes.NewReader(body)))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("missing username", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Verify(rec, httptest.NewRequest(http.MethodPost, "/api/mc/verify", bytes.NewReader([]byte(`{}`))))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
