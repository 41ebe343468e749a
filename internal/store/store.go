// ABOUTME: Local persistent key/value state for the console
// ABOUTME: Holds the session token, active service, sender IDs, and notice flags

package store

import (
	"sort"
	"strings"
	"sync"
)

// Keys for state persisted between runs.
const (
	KeyAccessToken       = "access_token"
	KeyBusinessName      = "business_name"
	KeySMSBalance        = "sms_balance"
	KeyActiveService     = "active_service"
	KeySenderIDs         = "sms_sender_ids"
	KeyPendingPaymentRef = "pending_payment_reference"

	dismissedPrefix = "dismissed_notice:"
)

// KV is the local key/value store used across the console.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(keys ...string) error
	Keys(prefix string) ([]string, error)
}

// Memory is an in-process KV. State is lost when the process exits.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *Memory) Keys(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Dismiss records that the notice with the given id should not be shown again
func Dismiss(kv KV, id string) error {
	return kv.Set(dismissedPrefix+id, "1")
}

// Dismissed reports whether the notice was dismissed
func Dismissed(kv KV, id string) bool {
	_, ok, err := kv.Get(dismissedPrefix + id)
	return err == nil && ok
}

// DismissedNotices lists the ids of all dismissed notices
func DismissedNotices(kv KV) ([]string, error) {
	keys, err := kv.Keys(dismissedPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, dismissedPrefix))
	}
	return ids, nil
}
