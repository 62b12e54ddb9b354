package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-process Store with per-entry TTL. Entries are lazily
// expired on read and bulk-collected by Sweep.
type MemoryStore struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]map[string]entry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:  ttl,
		data: make(map[string]map[string]entry),
	}
}

func (m *MemoryStore) Get(owner, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys, ok := m.data[owner]
	if !ok {
		return "", false
	}
	e, ok := keys[key]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

func (m *MemoryStore) Set(owner, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys, ok := m.data[owner]
	if !ok {
		keys = make(map[string]entry)
		m.data[owner] = keys
	}
	keys[key] = entry{value: value, expiresAt: time.Now().Add(m.ttl)}
}

func (m *MemoryStore) Delete(owner, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if keys, ok := m.data[owner]; ok {
		delete(keys, key)
		if len(keys) == 0 {
			delete(m.data, owner)
		}
	}
}

func (m *MemoryStore) DeleteOwner(owner string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, owner)
}

// Sweep drops every expired entry and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for owner, keys := range m.data {
		for key, e := range keys {
			if now.After(e.expiresAt) {
				delete(keys, key)
				removed++
			}
		}
		if len(keys) == 0 {
			delete(m.data, owner)
		}
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("session sweep")
	}
	return removed
}
