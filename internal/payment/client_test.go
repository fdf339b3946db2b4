package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientCharge_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/payments" {
			t.Fatalf("path = %s, want /api/payments", r.URL.Path)
		}

		var req chargeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Amount != 1750 {
			t.Fatalf("amount = %d, want 1750", req.Amount)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(chargeResponse{
			ConfirmationID: "c-123",
			Status:         "confirmed",
		}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	id, err := client.Charge(ctx, 1750)
	if err != nil {
		t.Fatalf("Charge error: %v", err)
	}
	if id != "c-123" {
		t.Fatalf("confirmation id = %q, want c-123", id)
	}
}

func TestClientCharge_Declined(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	_, err := client.Charge(context.Background(), 850)
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("Charge error = %v, want ErrDeclined", err)
	}
}

func TestClientCharge_DeclinedStatusInBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chargeResponse{Status: "declined"})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	_, err := client.Charge(context.Background(), 850)
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("Charge error = %v, want ErrDeclined", err)
	}
}

func TestClientCharge_UnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	_, err := client.Charge(context.Background(), 850)
	if err == nil || errors.Is(err, ErrDeclined) {
		t.Fatalf("Charge error = %v, want generic error", err)
	}
}

func TestClientCharge_NotConfigured(t *testing.T) {
	var client *Client

	if _, err := client.Charge(context.Background(), 1); err == nil {
		t.Fatalf("expected error for unconfigured client")
	}
}

func TestStubCharge_ReturnsConfirmation(t *testing.T) {
	stub := NewStub(0)

	id, err := stub.Charge(context.Background(), 850)
	if err != nil {
		t.Fatalf("Charge error: %v", err)
	}
	if id == "" {
		t.Fatalf("confirmation id must not be empty")
	}
}

func TestStubCharge_RespectsContext(t *testing.T) {
	stub := NewStub(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := stub.Charge(ctx, 850)
	if err == nil {
		t.Fatalf("expected context error")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("Charge did not return promptly on context cancellation")
	}
}

func TestStubCharge_WaitsConfiguredDelay(t *testing.T) {
	delay := 30 * time.Millisecond
	stub := NewStub(delay)

	start := time.Now()
	if _, err := stub.Charge(context.Background(), 850); err != nil {
		t.Fatalf("Charge error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < delay {
		t.Fatalf("Charge returned after %v, want at least %v", elapsed, delay)
	}
}
