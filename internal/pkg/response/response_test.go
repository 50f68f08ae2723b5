package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skymarket/skymarket-api/internal/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var res response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res
}

func TestInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.InternalError(rec, "Login failed")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	res := decode(t, rec)
	if res.Success {
		t.Error("success = true, want false")
	}
	if res.Error == nil {
		t.Fatal("error info missing")
	}
	if res.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", res.Error.Code)
	}
	if res.Error.Message != "Login failed" {
		t.Errorf("message = %q, want %q", res.Error.Message, "Login failed")
	}
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	response.OK(rec, map[string]int{"credits": 71})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	res := decode(t, rec)
	if !res.Success {
		t.Error("success = false, want true")
	}
	if res.Error != nil {
		t.Errorf("unexpected error info: %+v", res.Error)
	}
}

func TestErrorWithPayloadKeepsData(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ErrorWithPayload(rec, http.StatusBadRequest, "INSUFFICIENT_CREDITS", "Not enough credits",
		map[string]int{"currentCredits": 100, "neededCredits": 229, "shortfall": 129})

	res := decode(t, rec)
	if res.Success {
		t.Error("success = true, want false")
	}
	data, ok := res.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data = %T, want object", res.Data)
	}
	if got := data["shortfall"].(float64); got != 129 {
		t.Errorf("shortfall = %v, want 129", got)
	}
	if res.Error == nil || res.Error.Code != "INSUFFICIENT_CREDITS" {
		t.Errorf("error info = %+v", res.Error)
	}
}
