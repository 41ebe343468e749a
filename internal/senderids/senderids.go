// ABOUTME: Most-recently-used list of SMS sender IDs
// ABOUTME: Stored as a JSON array in the local key-value store

package senderids

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/store"
)

// MaxSenderIDs is the maximum number of sender IDs to keep
const MaxSenderIDs = 10

// List manages the MRU sender ID list
type List struct {
	mu sync.Mutex
	kv store.KV
}

// New creates a List backed by kv
func New(kv store.KV) *List {
	return &List{kv: kv}
}

// Load returns the stored IDs, most recent first.
// A missing or corrupt value yields an empty list.
func (l *List) Load() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *List) load() []string {
	raw, ok, err := l.kv.Get(store.KeySenderIDs)
	if err != nil {
		slog.Warn("Failed to read sender IDs", "error", err)
		return []string{}
	}
	if !ok {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		// Invalid JSON, start fresh
		return []string{}
	}
	return ids
}

// Add moves id to the front of the list, removing duplicates and
// trimming to MaxSenderIDs
func (l *List) Add(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.load()
	ids := make([]string, 0, len(current)+1)
	ids = append(ids, id)
	for _, existing := range current {
		if existing != id {
			ids = append(ids, existing)
		}
	}
	if len(ids) > MaxSenderIDs {
		ids = ids[:MaxSenderIDs]
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return l.kv.Set(store.KeySenderIDs, string(data))
}

// Clear removes all stored IDs
func (l *List) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.kv.Delete(store.KeySenderIDs)
}
