// ABOUTME: Tests for SMS commands
// ABOUTME: Covers the send gate, batch ledger exit codes, history and sender IDs

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"
)

const categoriesBody = `{"categories":[{"name":"Customers","count":30},{"name":"Staff","count":40},{"name":"Suppliers","count":50},{"name":"Big","count":60}]}`

func smsRoutes(balance string, send http.HandlerFunc) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/sms/contact-categories": respondJSON(200, categoriesBody),
		"/sms/balance":            respondJSON(200, `{"balance":`+balance+`}`),
		"/sms/history":            respondJSON(200, `{"messages":[],"page":1,"pages":1,"total":0}`),
		"/sms/send":               send,
	}
}

func TestRunSMSSend_CategoryAndManual(t *testing.T) {
	fb := newTestEnv(t, smsRoutes("50", respondJSON(200, `{"message":"queued","sent":1}`)))
	signIn(t, 50)
	smsSender = "ACME"
	smsMessage = "Sale today"
	smsCategories = []string{"Customers"}
	smsTo = []string{"024-123-4567"}

	var buf bytes.Buffer
	exitCode := runSMSSend(context.Background(), &buf)
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d: %s", exitCode, buf.String())
	}

	if len(fb.sends) != 2 {
		t.Fatalf("expected 2 send requests, got %d", len(fb.sends))
	}
	if fb.sends[0]["category"] != "Customers" {
		t.Errorf("expected first batch to address the category, got %v", fb.sends[0])
	}
	recipients, _ := fb.sends[1]["recipients"].([]any)
	if len(recipients) != 1 || recipients[0] != "0241234567" {
		t.Errorf("expected normalized manual number, got %v", fb.sends[1]["recipients"])
	}
	if fb.count("/sms/history") != 1 {
		t.Error("expected history to be refetched after send")
	}
	if !strings.Contains(buf.String(), "2 of 2 batches sent") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	a, _ := openApp()
	defer a.Close()
	if ids := a.senders.Load(); len(ids) == 0 || ids[0] != "ACME" {
		t.Errorf("expected ACME at front of sender list, got %v", ids)
	}
}

func TestRunSMSSend_InsufficientBalanceBlocks(t *testing.T) {
	fb := newTestEnv(t, smsRoutes("50", respondJSON(200, `{}`)))
	signIn(t, 50)
	smsSender = "ACME"
	smsMessage = "Hi"
	smsCategories = []string{"Big"}

	var buf bytes.Buffer
	if exitCode := runSMSSend(context.Background(), &buf); exitCode != 1 {
		t.Errorf("expected exit 1, got %d", exitCode)
	}
	if fb.count("/sms/send") != 0 {
		t.Error("blocked send must not reach the backend")
	}
	if !strings.Contains(buf.String(), "insufficient SMS balance") {
		t.Errorf("expected balance message, got %q", buf.String())
	}
}

func TestRunSMSSend_OverLimitBlocks(t *testing.T) {
	fb := newTestEnv(t, smsRoutes("1000", respondJSON(200, `{}`)))
	signIn(t, 1000)
	smsSender = "ACME"
	smsMessage = "Hi"
	smsCategories = []string{"Staff", "Suppliers"}
	jsonOutput = true

	var buf bytes.Buffer
	if exitCode := runSMSSend(context.Background(), &buf); exitCode != 1 {
		t.Errorf("expected exit 1, got %d", exitCode)
	}
	if fb.count("/sms/send") != 0 {
		t.Error("blocked send must not reach the backend")
	}

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out["allowed"] != false || out["recipients"] != float64(90) {
		t.Errorf("unexpected verdict: %v", out)
	}
	if !strings.Contains(out["reason"].(string), "too many recipients") {
		t.Errorf("expected over-limit reason, got %v", out["reason"])
	}
}

func TestRunSMSSend_PartialFailureContinues(t *testing.T) {
	send := func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["category"] == "Customers" {
			respondJSON(400, `{"message":"category has no contacts"}`)(w, r)
			return
		}
		respondJSON(200, `{"message":"queued","sent":40}`)(w, r)
	}
	fb := newTestEnv(t, smsRoutes("80", send))
	signIn(t, 80)
	smsSender = "ACME"
	smsMessage = "Hi"
	smsCategories = []string{"Customers", "Staff"}

	var buf bytes.Buffer
	if exitCode := runSMSSend(context.Background(), &buf); exitCode != 1 {
		t.Errorf("expected exit 1, got %d", exitCode)
	}
	if fb.count("/sms/send") != 2 {
		t.Errorf("expected both batches attempted, got %d", fb.count("/sms/send"))
	}
	out := buf.String()
	if !strings.Contains(out, "category has no contacts") || !strings.Contains(out, "1 of 2 batches sent") {
		t.Errorf("unexpected ledger: %q", out)
	}
}

func TestRunSMSSend_ExpiredSessionNoRequests(t *testing.T) {
	fb := newTestEnv(t, smsRoutes("50", respondJSON(200, `{}`)))
	storeToken(t, mintToken(t, time.Now().Add(-time.Second)), 50)
	smsSender = "ACME"
	smsMessage = "Hi"
	smsTo = []string{"0241234567"}

	var buf bytes.Buffer
	if exitCode := runSMSSend(context.Background(), &buf); exitCode != 2 {
		t.Errorf("expected exit 2, got %d", exitCode)
	}
	if fb.total() != 0 {
		t.Errorf("expected no backend requests, got %d", fb.total())
	}
}

func TestRunSMSSend_UnknownCategory(t *testing.T) {
	newTestEnv(t, smsRoutes("50", respondJSON(200, `{}`)))
	signIn(t, 50)
	smsSender = "ACME"
	smsMessage = "Hi"
	smsCategories = []string{"Ghosts"}

	var buf bytes.Buffer
	if exitCode := runSMSSend(context.Background(), &buf); exitCode != 2 {
		t.Errorf("expected exit 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Ghosts") {
		t.Errorf("expected category name in error, got %q", buf.String())
	}
}

func TestRunSMSSend_DryRun(t *testing.T) {
	fb := newTestEnv(t, smsRoutes("50", respondJSON(200, `{}`)))
	signIn(t, 50)
	smsSender = "ACME"
	smsMessage = "Hi"
	smsCategories = []string{"Customers"}
	smsDryRun = true

	var buf bytes.Buffer
	if exitCode := runSMSSend(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit 0, got %d: %s", exitCode, buf.String())
	}
	if fb.count("/sms/send") != 0 {
		t.Error("dry run must not send")
	}
	if !strings.Contains(buf.String(), "GHS 0.90") {
		t.Errorf("expected cost estimate, got %q", buf.String())
	}
}

func TestRunSMSHistory(t *testing.T) {
	newTestEnv(t, map[string]http.HandlerFunc{
		"/sms/history": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("limit") != "5" {
				t.Errorf("unexpected query: %s", r.URL.RawQuery)
			}
			respondJSON(200, `{"messages":[{"id":1,"recipient":"0241234567","message":"Hello there","sender_id":"ACME","status":"delivered","created_at":"2024-01-02T10:00:00Z"}],"page":2,"pages":3,"total":11}`)(w, r)
		},
	})
	signIn(t, 0)
	historyPage, historyLimit = 2, 5

	var buf bytes.Buffer
	if exitCode := runSMSHistory(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit 0, got %d: %s", exitCode, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "delivered") || !strings.Contains(out, "Page 2 of 3") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRunSMSHistory_InvalidPage(t *testing.T) {
	newTestEnv(t, nil)
	historyPage = 0

	var buf bytes.Buffer
	if exitCode := runSMSHistory(context.Background(), &buf); exitCode != 2 {
		t.Errorf("expected exit 2, got %d", exitCode)
	}
}

func TestRunSMSBalance_UpdatesCache(t *testing.T) {
	newTestEnv(t, map[string]http.HandlerFunc{
		"/sms/balance": respondJSON(200, `{"balance":1234}`),
	})
	signIn(t, 5)
	jsonOutput = true

	var buf bytes.Buffer
	if exitCode := runSMSBalance(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), `"balance": 1234`) {
		t.Errorf("unexpected output: %q", buf.String())
	}

	a, _ := openApp()
	defer a.Close()
	if a.session.Balance() != 1234 {
		t.Errorf("expected cached balance 1234, got %d", a.session.Balance())
	}
}

func TestRunSMSCategoriesAndBundles(t *testing.T) {
	newTestEnv(t, map[string]http.HandlerFunc{
		"/sms/contact-categories": respondJSON(200, categoriesBody),
		"/sms/bundles":            respondJSON(200, `{"bundles":[{"id":1,"name":"Starter","credits":1000,"price":30}]}`),
	})
	signIn(t, 0)

	var buf bytes.Buffer
	if exitCode := runSMSCategories(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Customers") {
		t.Errorf("expected category list, got %q", buf.String())
	}

	buf.Reset()
	if exitCode := runSMSBundles(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "1,000") || !strings.Contains(buf.String(), "GHS 30.00") {
		t.Errorf("expected formatted bundle, got %q", buf.String())
	}
}

func TestRunSMSSenders(t *testing.T) {
	newTestEnv(t, nil)

	var buf bytes.Buffer
	if exitCode := runSMSSenders(&buf); exitCode != 0 {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "No sender IDs") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	a, _ := openApp()
	a.senders.Add("Shop24")
	a.senders.Add("ACME")
	a.Close()

	buf.Reset()
	runSMSSenders(&buf)
	if buf.String() != "ACME\nShop24\n" {
		t.Errorf("expected most recent first, got %q", buf.String())
	}
}
