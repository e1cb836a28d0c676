package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ConferenceAPI/internal/logger"
)

const memorySweepFreq = time.Minute

// ErrCacheFull is returned by Memory.Set when the value does not fit the
// byte budget. The previous value for the key, if any, is kept.
var ErrCacheFull = errors.New("memory cache full")

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// Memory is the in-process fallback used when Redis is unreachable.
type Memory struct {
	mu         sync.Mutex
	items      map[string]*memoryEntry
	lastSweep  time.Time
	totalBytes int64
	maxBytes   int64
	now        func() time.Time
}

// NewMemory returns an empty cache; maxBytes <= 0 disables the size limit.
func NewMemory(maxBytes int64) *Memory {
	return &Memory{
		items:    make(map[string]*memoryEntry),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.maybeSweepLocked(now)
	entry, ok := m.items[key]
	if !ok {
		return "", false, nil
	}
	if entry.expired(now) {
		m.removeLocked(key, entry)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.maybeSweepLocked(now)

	size := entryBytes(key, value)
	existing, ok := m.items[key]
	freed := int64(0)
	if ok {
		freed = entryBytes(key, existing.value)
	}
	if m.maxBytes > 0 && m.totalBytes-freed+size > m.maxBytes {
		logger.Warn("memory_cache_limit_exceeded", map[string]any{
			"key":         key,
			"item_bytes":  size,
			"total_bytes": m.totalBytes,
			"max_bytes":   m.maxBytes,
		})
		return fmt.Errorf("%w: %s needs %d bytes", ErrCacheFull, key, size)
	}
	if ok {
		m.removeLocked(key, existing)
	}

	entry := &memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	m.items[key] = entry
	m.totalBytes += size
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.items[key]; ok {
		m.removeLocked(key, entry)
	}
	return nil
}

func (m *Memory) removeLocked(key string, entry *memoryEntry) {
	delete(m.items, key)
	m.totalBytes -= entryBytes(key, entry.value)
}

func (m *Memory) maybeSweepLocked(now time.Time) {
	if !m.lastSweep.IsZero() && now.Sub(m.lastSweep) < memorySweepFreq {
		return
	}
	for key, entry := range m.items {
		if entry.expired(now) {
			m.removeLocked(key, entry)
		}
	}
	m.lastSweep = now
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

func entryBytes(key, value string) int64 {
	return int64(len(key) + len(value))
}
