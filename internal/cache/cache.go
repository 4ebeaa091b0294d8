/*
Package cache memoizes normalized announcements per source and company code.

Entries expire after a fixed TTL and at the rollover of the report day in the
configured time zone, whichever comes first.
*/
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/shanehull/corpactions/internal/types"
)

const DefaultTimezone = "Asia/Kolkata"

type entry struct {
	records    []types.Announcement
	storedAt   time.Time
	reportDate string
}

type Manager struct {
	mutex          sync.Mutex
	entries        map[string]entry
	ttl            time.Duration
	reportLocation *time.Location
	now            func() time.Time
}

// NewManager returns nil when ttl is not positive; a nil *Manager is a valid,
// always-missing cache.
func NewManager(ttl time.Duration, tzName string) (*Manager, error) {
	if ttl <= 0 {
		return nil, nil
	}
	if tzName == "" {
		tzName = DefaultTimezone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone name '%s': %w", tzName, err)
	}
	return &Manager{
		entries:        make(map[string]entry),
		ttl:            ttl,
		reportLocation: loc,
		now:            time.Now,
	}, nil
}

// Get returns a copy of the cached records for key.
func (m *Manager) Get(key string) ([]types.Announcement, bool) {
	if m == nil {
		return nil, false
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	now := m.now()
	if now.Sub(e.storedAt) >= m.ttl || e.reportDate != m.reportDate(now) {
		delete(m.entries, key)
		return nil, false
	}
	return clone(e.records), true
}

func (m *Manager) Put(key string, records []types.Announcement) {
	if m == nil {
		return
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := m.now()
	m.entries[key] = entry{
		records:    clone(records),
		storedAt:   now,
		reportDate: m.reportDate(now),
	}
}

func (m *Manager) Invalidate(key string) {
	if m == nil {
		return
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.entries, key)
}

func (m *Manager) Clear() {
	if m == nil {
		return
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.entries = make(map[string]entry)
}

func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.entries)
}

func (m *Manager) reportDate(t time.Time) string {
	return t.In(m.reportLocation).Format("2006-01-02")
}

func clone(records []types.Announcement) []types.Announcement {
	if records == nil {
		return nil
	}
	out := make([]types.Announcement, len(records))
	copy(out, records)
	return out
}
