// ABOUTME: Shared test helpers for command tests
// ABOUTME: Fake backend, temp config dir, token minting and flag reset

package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
)

// fakeBackend records requests to an httptest server
type fakeBackend struct {
	*httptest.Server
	mu    sync.Mutex
	hits  map[string]int
	sends []map[string]any
}

func (f *fakeBackend) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.hits {
		n += v
	}
	return n
}

// newTestEnv points commands at a fresh config dir and a fake backend
func newTestEnv(t *testing.T, routes map[string]http.HandlerFunc) *fakeBackend {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	t.Setenv("NKWABIZ_CONFIG_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	fb := &fakeBackend{hits: map[string]int{}}
	fb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.hits[r.URL.Path]++
		if r.URL.Path == "/sms/send" {
			raw, _ := io.ReadAll(r.Body)
			// Handlers read the body too
			r.Body = io.NopCloser(bytes.NewReader(raw))
			var body map[string]any
			json.Unmarshal(raw, &body)
			fb.sends = append(fb.sends, body)
		}
		fb.mu.Unlock()

		h, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(fb.Close)
	apiURL = fb.URL
	return fb
}

func respondJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "owner@example.com",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// signIn stores a token valid for an hour, with the given cached balance
func signIn(t *testing.T, balance int) {
	t.Helper()
	storeToken(t, mintToken(t, time.Now().Add(time.Hour)), balance)
}

func storeToken(t *testing.T, token string, balance int) {
	t.Helper()
	a, err := openApp()
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	defer a.Close()
	if err := a.session.Login(token, "Ama's Shop"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := a.session.SetBalance(balance); err != nil {
		t.Fatalf("set balance: %v", err)
	}
}

func resetFlags() {
	apiURL = ""
	jsonOutput = false

	loginEmail, loginPassword = "", ""
	signupInput = client.SignupRequest{}
	verifyToken, resendEmail = "", ""

	smsSender, smsMessage = "", ""
	smsCategories, smsTo = nil, nil
	smsDryRun, smsInteractive = false, false
	historyPage, historyLimit = 1, 20

	stockInput = client.StockRecordRequest{}
	expenseInput = client.ExpenseRequest{}
	expensesAll = false
}
