// ABOUTME: Owner of session-derived state (token, business name, SMS balance)
// ABOUTME: Explicit unknown/authenticated/unauthenticated state machine with subscribers

package session

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/store"
)

// State is the authentication state of the console
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Reasons attached to transition events.
const (
	ReasonLoaded  = "loaded"
	ReasonLogin   = "login"
	ReasonLogout  = "logout"
	ReasonExpired = "expired"
	ReasonRevoked = "revoked"
	ReasonMissing = "missing"
)

// Event describes a state transition
type Event struct {
	State  State
	Reason string
}

// sessionKeys are cleared on logout and expiry.
var sessionKeys = []string{store.KeyAccessToken, store.KeyBusinessName, store.KeySMSBalance}

// Session is the single writer of session state. Readers subscribe for changes.
type Session struct {
	mu           sync.Mutex
	kv           store.KV
	now          func() time.Time
	state        State
	token        string
	businessName string
	smsBalance   int
	subs         map[int]func(Event)
	nextSub      int
}

// New creates a session backed by kv. Call Load to restore persisted state.
func New(kv store.KV) *Session {
	return &Session{
		kv:   kv,
		now:  time.Now,
		subs: make(map[int]func(Event)),
	}
}

// SetClock overrides the time source used by the expiry gate
func (s *Session) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Now returns the current time from the session clock
func (s *Session) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

// Load restores persisted state and resolves the unknown state.
func (s *Session) Load() error {
	token, ok, err := s.kv.Get(store.KeyAccessToken)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !ok || token == "" {
		s.transition(StateUnauthenticated, ReasonMissing)
		return nil
	}

	if Expired(token, s.Now()) {
		s.Expire(ReasonExpired)
		return nil
	}

	name, _, _ := s.kv.Get(store.KeyBusinessName)
	balance := 0
	if raw, ok, _ := s.kv.Get(store.KeySMSBalance); ok {
		balance, _ = strconv.Atoi(raw)
	}

	s.mu.Lock()
	s.token = token
	s.businessName = name
	s.smsBalance = balance
	s.mu.Unlock()

	s.transition(StateAuthenticated, ReasonLoaded)
	return nil
}

// Login stores a freshly issued token
func (s *Session) Login(token, businessName string) error {
	if err := s.kv.Set(store.KeyAccessToken, token); err != nil {
		return err
	}
	if businessName != "" {
		if err := s.kv.Set(store.KeyBusinessName, businessName); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.token = token
	s.businessName = businessName
	s.mu.Unlock()

	s.transition(StateAuthenticated, ReasonLogin)
	return nil
}

// Logout clears all session state
func (s *Session) Logout() {
	s.clear()
	s.transition(StateUnauthenticated, ReasonLogout)
}

// Expire clears all session state after a failed expiry check or a 401.
// Expiring an already unauthenticated session is a no-op.
func (s *Session) Expire(reason string) {
	s.mu.Lock()
	already := s.state == StateUnauthenticated && s.token == ""
	s.mu.Unlock()
	if already {
		return
	}

	slog.Info("Session expired", "reason", reason)
	s.clear()
	s.transition(StateUnauthenticated, reason)
}

func (s *Session) clear() {
	if err := s.kv.Delete(sessionKeys...); err != nil {
		slog.Warn("Failed to clear session state", "error", err)
	}
	s.mu.Lock()
	s.token = ""
	s.businessName = ""
	s.smsBalance = 0
	s.mu.Unlock()
}

// Token returns the cached bearer token, empty when logged out
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Expired runs the validity gate against the cached token
func (s *Session) Expired() bool {
	s.mu.Lock()
	token, now := s.token, s.now()
	s.mu.Unlock()
	return Expired(token, now)
}

// State returns the current authentication state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BusinessName returns the cached business name
func (s *Session) BusinessName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.businessName
}

// SetBusinessName updates the cached business name
func (s *Session) SetBusinessName(name string) error {
	s.mu.Lock()
	s.businessName = name
	s.mu.Unlock()
	return s.kv.Set(store.KeyBusinessName, name)
}

// Balance returns the cached SMS credit balance
func (s *Session) Balance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.smsBalance
}

// SetBalance updates the cached SMS credit balance
func (s *Session) SetBalance(n int) error {
	s.mu.Lock()
	s.smsBalance = n
	s.mu.Unlock()
	return s.kv.Set(store.KeySMSBalance, strconv.Itoa(n))
}

// Subscribe registers fn for transition events. The returned func unsubscribes.
func (s *Session) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) transition(state State, reason string) {
	s.mu.Lock()
	s.state = state
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	ev := Event{State: state, Reason: reason}
	for _, fn := range subs {
		fn(ev)
	}
}
