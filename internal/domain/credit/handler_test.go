package credit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/skymarket/skymarket-api/internal/domain/user"
	"github.com/skymarket/skymarket-api/internal/middleware"
	"github.com/skymarket/skymarket-api/internal/pkg/email"
)

type fakeRepo struct {
	purchase    *PurchaseResult
	purchaseErr error
	grant       *GrantResult
	grantErr    error
}

func (f *fakeRepo) Purchase(ctx context.Context, userID, productID uuid.UUID) (*PurchaseResult, error) {
	return f.purchase, f.purchaseErr
}
func (f *fakeRepo) Grant(ctx context.Context, userID uuid.UUID, amount int, reason string) (*GrantResult, error) {
	return f.grant, f.grantErr
}
func (f *fakeRepo) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	return 0, nil
}
func (f *fakeRepo) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]CreditTransaction, error) {
	return []CreditTransaction{}, nil
}

type fakeUserRepo struct {
	byID *user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.byID != nil && f.byID.ID == id {
		return f.byID, nil
	}
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) GetByEmailOrUsername(ctx context.Context, email, username string) (*user.User, error) {
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) FindByUsernameInsensitive(ctx context.Context, username string) (*user.User, error) {
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return nil
}
func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestPurchaseHandlerSuccess(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	repo := &fakeRepo{purchase: &PurchaseResult{
		NewBalance:  71,
		OrderID:     orderID,
		ProductName: "VIP Rank",
		Amount:      229,
	}}
	h := NewHandler(NewService(repo, email.NopSender{}), &fakeUserRepo{})

	body, _ := json.Marshal(PurchaseRequest{ProductID: uuid.New()})
	rec := httptest.NewRecorder()
	h.Purchase(rec, authedRequest(http.MethodPost, "/api/market/purchase", body, userID))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool             `json:"success"`
		Data    PurchaseResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success || resp.Data.NewBalance != 71 || resp.Data.OrderID != orderID {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPurchaseHandlerInsufficientFunds(t *testing.T) {
	repo := &fakeRepo{purchaseErr: &InsufficientFundsError{Current: 100, Needed: 229}}
	h := NewHandler(NewService(repo, email.NopSender{}), &fakeUserRepo{})

	body, _ := json.Marshal(PurchaseRequest{ProductID: uuid.New()})
	rec := httptest.NewRecorder()
	h.Purchase(rec, authedRequest(http.MethodPost, "/api/market/purchase", body, uuid.New()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
		Data InsufficientFundsPayload `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Success {
		t.Fatal("expected success=false")
	}
	if resp.Error.Code != "INSUFFICIENT_CREDITS" {
		t.Fatalf("expected INSUFFICIENT_CREDITS, got %s", resp.Error.Code)
	}
	if resp.Data.Shortfall != 129 || resp.Data.CurrentCredits != 100 || resp.Data.NeededCredits != 229 {
		t.Fatalf("unexpected payload: %+v", resp.Data)
	}
}

func TestPurchaseHandlerProductNotFound(t *testing.T) {
	repo := &fakeRepo{purchaseErr: ErrProductNotFound}
	h := NewHandler(NewService(repo, email.NopSender{}), &fakeUserRepo{})

	body, _ := json.Marshal(PurchaseRequest{ProductID: uuid.New()})
	rec := httptest.NewRecorder()
	h.Purchase(rec, authedRequest(http.MethodPost, "/api/market/purchase", body, uuid.New()))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPurchaseHandlerInvalidBody(t *testing.T) {
	h := NewHandler(NewService(&fakeRepo{}, email.NopSender{}), &fakeUserRepo{})

	rec := httptest.NewRecorder()
	h.Purchase(rec, authedRequest(http.MethodPost, "/api/market/purchase", []byte("{"), uuid.New()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBalanceHandler(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserRepo{byID: &user.User{
		ID:       userID,
		Email:    "steve@example.com",
		Username: "Steve",
		Credits:  300,
	}}
	h := NewHandler(NewService(&fakeRepo{}, email.NopSender{}), users)

	rec := httptest.NewRecorder()
	h.Balance(rec, authedRequest(http.MethodGet, "/api/market/balance", nil, userID))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data BalanceResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.Credits != 300 || resp.Data.Username != "Steve" {
		t.Fatalf("unexpected balance response: %+v", resp.Data)
	}
}

func TestGrantServiceRejectsNonPositive(t *testing.T) {
	svc := NewService(&fakeRepo{}, email.NopSender{})

	for _, amount := range []int{0, -5} {
		if _, err := svc.Grant(context.Background(), uuid.New(), amount, "test"); err != ErrInvalidAmount {
			t.Fatalf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}
