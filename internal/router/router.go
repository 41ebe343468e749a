// ABOUTME: Active-service router keeping the selected product line consistent with navigation
// ABOUTME: Maps path prefixes to a service tag, persists it, and exposes per-service menus

package router

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/store"
)

// Service is the product line the user is working in
type Service string

const (
	ServiceNone      Service = ""
	ServiceSMS       Service = "sms"
	ServiceInventory Service = "inventory"
)

// SelectServicePath is where users without an active service are sent
const SelectServicePath = "/select-service"

func (s Service) String() string {
	if s == ServiceNone {
		return "none"
	}
	return string(s)
}

// ParseService accepts "sms", "inventory" or "none"
func ParseService(s string) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sms":
		return ServiceSMS, nil
	case "inventory":
		return ServiceInventory, nil
	case "", "none":
		return ServiceNone, nil
	default:
		return ServiceNone, fmt.Errorf("unknown service %q (use sms or inventory)", s)
	}
}

var smsPrefixes = []string{"/sms"}

var inventoryPrefixes = []string{
	"/dashboard",
	"/products",
	"/stock",
	"/sales",
	"/expenses",
	"/reports",
	"/inventory",
}

var sharedProtectedPrefixes = []string{
	"/payments",
	"/profile",
	"/settings",
	"/account",
}

func hasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if hasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Classify returns the service implied by path, or ServiceNone
func Classify(path string) Service {
	switch {
	case matchesAny(path, smsPrefixes):
		return ServiceSMS
	case matchesAny(path, inventoryPrefixes):
		return ServiceInventory
	default:
		return ServiceNone
	}
}

// Protected reports whether path requires an active service
func Protected(path string) bool {
	return matchesAny(path, sharedProtectedPrefixes) ||
		matchesAny(path, smsPrefixes) ||
		matchesAny(path, inventoryPrefixes)
}

// Decision is the result of a navigation
type Decision struct {
	Service  Service
	Redirect string
}

// Router tracks the active service. Safe for concurrent use.
type Router struct {
	mu      sync.Mutex
	kv      store.KV
	current Service
}

// New returns a router with no in-memory selection. The persisted tag is
// only consulted when a protected path needs it.
func New(kv store.KV) *Router {
	return &Router{kv: kv}
}

// Navigate applies a route change
func (r *Router) Navigate(path string) Decision {
	r.mu.Lock()
	defer r.mu.Unlock()

	implied := Classify(path)
	if implied != ServiceNone {
		if implied != r.current {
			r.current = implied
			r.persist(implied)
		}
		return Decision{Service: r.current}
	}

	if r.current == ServiceNone && Protected(path) {
		if saved := r.persisted(); saved != ServiceNone {
			r.current = saved
			return Decision{Service: saved}
		}
		return Decision{Service: ServiceNone, Redirect: SelectServicePath}
	}
	return Decision{Service: r.current}
}

// Current returns the active service
func (r *Router) Current() Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Restore adopts the persisted tag without navigating
func (r *Router) Restore() Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == ServiceNone {
		r.current = r.persisted()
	}
	return r.current
}

// Select sets and persists the active service
func (r *Router) Select(s Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = s
	if s == ServiceNone {
		return r.kv.Delete(store.KeyActiveService)
	}
	return r.kv.Set(store.KeyActiveService, string(s))
}

// Menu returns the navigation menu for the active service
func (r *Router) Menu() []MenuItem {
	return MenuFor(r.Current())
}

func (r *Router) persist(s Service) {
	if err := r.kv.Set(store.KeyActiveService, string(s)); err != nil {
		slog.Warn("Failed to persist active service", "service", s, "error", err)
	}
}

func (r *Router) persisted() Service {
	v, ok, err := r.kv.Get(store.KeyActiveService)
	if err != nil {
		slog.Warn("Failed to read active service", "error", err)
		return ServiceNone
	}
	if !ok {
		return ServiceNone
	}
	s, err := ParseService(v)
	if err != nil {
		return ServiceNone
	}
	return s
}
