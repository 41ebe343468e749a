// ABOUTME: Shared fakes and helpers for TUI app tests
// ABOUTME: Provides an in-memory backend and a command runner that skips timers

package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/router"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/senderids"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/session"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/sms"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/store"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/history"
)

// fakeAPI is an in-memory backend
type fakeAPI struct {
	mu sync.Mutex

	categories []client.Category
	balance    int
	info       *client.UserInfo
	sendErr    error
	sends      []client.SendSMSRequest
	history    []client.SMSRecord
	bundles    []client.Bundle
	sales      *client.SalesHistory
	alerts     *client.StockAlerts
	stockErr   error
	stock      []client.StockRecordRequest
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		categories: []client.Category{{Name: "Customers", Count: 30}, {Name: "Suppliers", Count: 5}},
		balance:    69,
		info:       &client.UserInfo{Email: "owner@shop.com", BusinessName: "Ama's Shop", SMSBalance: 100},
		history:    []client.SMSRecord{{ID: 1, Recipient: "0241234567", Message: "hello", Status: "sent"}},
		bundles:    []client.Bundle{{ID: 1, Name: "Starter", Credits: 500, Price: 15}},
		sales:      &client.SalesHistory{History: []client.Sale{{ProductName: "Rice", Quantity: 2, TotalAmount: 300}}, TotalSales: 300},
		alerts:     &client.StockAlerts{},
	}
}

func (f *fakeAPI) Login(_ context.Context, in *client.LoginRequest) (*client.LoginResponse, error) {
	return &client.LoginResponse{AccessToken: mintToken(time.Hour), BusinessName: "Ama's Shop"}, nil
}

func (f *fakeAPI) UserInfo(context.Context) (*client.UserInfo, error) {
	info := *f.info
	return &info, nil
}

func (f *fakeAPI) SendSMS(_ context.Context, in *client.SendSMSRequest) (*client.SendSMSResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sends = append(f.sends, *in)
	sent := len(in.Recipients)
	for _, c := range f.categories {
		if c.Name == in.Category {
			sent = c.Count
		}
	}
	return &client.SendSMSResponse{Message: "queued", Sent: sent}, nil
}

func (f *fakeAPI) ContactCategories(context.Context) ([]client.Category, error) {
	return f.categories, nil
}

func (f *fakeAPI) SMSHistory(_ context.Context, page, limit int) (*client.SMSHistoryPage, error) {
	if page > 1 {
		return &client.SMSHistoryPage{Page: page, Pages: 1, Total: len(f.history)}, nil
	}
	return &client.SMSHistoryPage{Messages: f.history, Page: 1, Pages: 1, Total: len(f.history)}, nil
}

func (f *fakeAPI) SMSBalance(context.Context) (int, error) {
	return f.balance, nil
}

func (f *fakeAPI) SMSBundles(context.Context) ([]client.Bundle, error) {
	return f.bundles, nil
}

func (f *fakeAPI) PaymentHistory(context.Context) (*client.PaymentHistory, error) {
	return &client.PaymentHistory{}, nil
}

func (f *fakeAPI) SalesHistory(context.Context) (*client.SalesHistory, error) {
	return f.sales, nil
}

func (f *fakeAPI) StockAlerts(context.Context) (*client.StockAlerts, error) {
	return f.alerts, nil
}

func (f *fakeAPI) TrackExpenses(context.Context, bool) (*client.ExpenseSummary, error) {
	return &client.ExpenseSummary{}, nil
}

func (f *fakeAPI) RecordStock(_ context.Context, in *client.StockRecordRequest) (*client.MessageResponse, error) {
	if f.stockErr != nil {
		return nil, f.stockErr
	}
	f.stock = append(f.stock, *in)
	return &client.MessageResponse{Message: "Stock recorded"}, nil
}

func mintToken(ttl time.Duration) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(ttl).Unix()})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		panic(err)
	}
	return s
}

type testEnv struct {
	api  *fakeAPI
	kv   *store.Memory
	deps Deps
}

// newTestEnv builds deps over memory storage. signedIn stores a valid
// session; service, when set, is persisted as the active service.
func newTestEnv(t *testing.T, signedIn bool, service router.Service) *testEnv {
	t.Helper()

	api := newFakeAPI()
	kv := store.NewMemory()
	sess := session.New(kv)
	if signedIn {
		if err := sess.Login(mintToken(time.Hour), "Ama's Shop"); err != nil {
			t.Fatalf("login: %v", err)
		}
		if err := sess.SetBalance(100); err != nil {
			t.Fatalf("set balance: %v", err)
		}
	} else if err := sess.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	if service != router.ServiceNone {
		if err := kv.Set(store.KeyActiveService, string(service)); err != nil {
			t.Fatalf("set service: %v", err)
		}
	}

	senders := senderids.New(kv)
	return &testEnv{
		api: api,
		kv:  kv,
		deps: Deps{
			API:     api,
			Session: sess,
			Router:  router.New(kv),
			SMS:     sms.NewWorkflow(api, sess, senders, sms.DefaultLimits(), time.Minute),
			Senders: senders,
			KV:      kv,
		},
	}
}

// run executes cmd and feeds the resulting backend messages to the app.
// Commands returned by those updates are not followed; they may start
// form blink or spinner timers.
func run(a *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	var msgs []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c != nil {
				msgs = append(msgs, c())
			}
		}
	default:
		msgs = append(msgs, msg)
	}

	for _, msg := range msgs {
		switch msg.(type) {
		case loginResultMsg, categoriesLoadedMsg, sendDoneMsg, reportLoadedMsg,
			accountLoadedMsg, stockSavedMsg, balanceMsg, history.PageLoadedMsg:
			a.Update(msg)
		}
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
