// ABOUTME: Tests for payment commands
// ABOUTME: Verifies the pending reference lifecycle between buy and verify

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/store"
)

func pendingRef(t *testing.T) string {
	t.Helper()
	a, err := openApp()
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	defer a.Close()
	ref, _, _ := a.db.Get(store.KeyPendingPaymentRef)
	return ref
}

func TestRunPaymentBuyThenVerify(t *testing.T) {
	fb := newTestEnv(t, map[string]http.HandlerFunc{
		"/payment/initialize": respondJSON(200, `{"authorization_url":"https://pay.example.com/abc","reference":"ref-123"}`),
		"/payment/verify": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("reference") != "ref-123" {
				t.Errorf("expected pending reference, got %s", r.URL.RawQuery)
			}
			respondJSON(200, `{"status":"success","credits":1000}`)(w, r)
		},
		"/sms/balance": respondJSON(200, `{"balance":1010}`),
	})
	signIn(t, 10)

	var buf bytes.Buffer
	if exitCode := runPaymentBuy(context.Background(), &buf, "2"); exitCode != 0 {
		t.Fatalf("expected exit 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "https://pay.example.com/abc") {
		t.Errorf("expected authorization URL, got %q", buf.String())
	}
	if pendingRef(t) != "ref-123" {
		t.Fatal("expected pending reference to be stored")
	}

	buf.Reset()
	if exitCode := runPaymentVerify(context.Background(), &buf, ""); exitCode != 0 {
		t.Fatalf("expected exit 0, got %d: %s", exitCode, buf.String())
	}
	if pendingRef(t) != "" {
		t.Error("expected pending reference to be cleared")
	}
	if !strings.Contains(buf.String(), "1,010") {
		t.Errorf("expected refreshed balance, got %q", buf.String())
	}
	if fb.count("/sms/balance") != 1 {
		t.Error("expected balance refresh after verification")
	}
}

func TestRunPaymentVerify_NotConfirmedKeepsReference(t *testing.T) {
	newTestEnv(t, map[string]http.HandlerFunc{
		"/payment/initialize": respondJSON(200, `{"authorization_url":"https://pay.example.com/x","reference":"ref-9"}`),
		"/payment/verify":     respondJSON(200, `{"status":"pending","message":"awaiting payment"}`),
	})
	signIn(t, 0)

	var buf bytes.Buffer
	runPaymentBuy(context.Background(), &buf, "1")
	buf.Reset()
	if exitCode := runPaymentVerify(context.Background(), &buf, ""); exitCode != 1 {
		t.Errorf("expected exit 1, got %d", exitCode)
	}
	if pendingRef(t) != "ref-9" {
		t.Error("unconfirmed payment should keep the pending reference")
	}
}

func TestRunPaymentVerify_NoReference(t *testing.T) {
	newTestEnv(t, nil)
	signIn(t, 0)

	var buf bytes.Buffer
	if exitCode := runPaymentVerify(context.Background(), &buf, ""); exitCode != 2 {
		t.Errorf("expected exit 2, got %d", exitCode)
	}
}

func TestRunPaymentBuy_InvalidBundle(t *testing.T) {
	fb := newTestEnv(t, nil)

	var buf bytes.Buffer
	if exitCode := runPaymentBuy(context.Background(), &buf, "abc"); exitCode != 2 {
		t.Errorf("expected exit 2, got %d", exitCode)
	}
	if fb.total() != 0 {
		t.Error("invalid bundle should not reach the backend")
	}
}

func TestRunPaymentHistory(t *testing.T) {
	newTestEnv(t, map[string]http.HandlerFunc{
		"/payment/history": respondJSON(200, `{"payments":[{"reference":"ref-1","amount":30,"status":"success","bundle":"Starter","created_at":"2024-03-01"}]}`),
	})
	signIn(t, 0)

	var buf bytes.Buffer
	if exitCode := runPaymentHistory(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "ref-1") || !strings.Contains(buf.String(), "GHS 30.00") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
