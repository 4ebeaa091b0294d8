package cache

import (
	"testing"
	"time"

	"github.com/shanehull/corpactions/internal/types"
)

func newTestManager(t *testing.T, ttl time.Duration, now *time.Time) *Manager {
	t.Helper()
	m, err := NewManager(ttl, "Asia/Kolkata")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.now = func() time.Time { return *now }
	return m
}

func TestDisabledCache(t *testing.T) {
	m, err := NewManager(0, "")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m != nil {
		t.Fatal("expected nil manager for zero TTL")
	}
	m.Put("k", []types.Announcement{{Description: "x"}})
	if _, ok := m.Get("k"); ok {
		t.Error("nil manager must always miss")
	}
	if m.Len() != 0 {
		t.Error("nil manager must be empty")
	}
}

func TestInvalidTimezone(t *testing.T) {
	if _, err := NewManager(time.Minute, "Mars/Olympus"); err == nil {
		t.Fatal("expected error for unknown time zone")
	}
}

func TestGetPutAndTTL(t *testing.T) {
	// 10:00 IST
	now := time.Date(2024, 6, 15, 4, 30, 0, 0, time.UTC)
	m := newTestManager(t, time.Hour, &now)

	in := []types.Announcement{{Description: "Dividend"}}
	m.Put("json|bse|500233", in)

	got, ok := m.Get("json|bse|500233")
	if !ok || len(got) != 1 || got[0].Description != "Dividend" {
		t.Fatalf("Get = %+v, %v", got, ok)
	}

	got[0].Description = "mutated"
	again, _ := m.Get("json|bse|500233")
	if again[0].Description != "Dividend" {
		t.Error("cached records must not alias returned slices")
	}

	now = now.Add(time.Hour)
	if _, ok := m.Get("json|bse|500233"); ok {
		t.Error("entry should expire after TTL")
	}
	if m.Len() != 0 {
		t.Error("expired entry should be evicted")
	}
}

func TestReportDayRollover(t *testing.T) {
	// 23:50 IST on 15 June.
	now := time.Date(2024, 6, 15, 18, 20, 0, 0, time.UTC)
	m := newTestManager(t, 24*time.Hour, &now)

	m.Put("k", []types.Announcement{{Description: "x"}})

	now = now.Add(5 * time.Minute)
	if _, ok := m.Get("k"); !ok {
		t.Fatal("entry should still be valid before midnight IST")
	}

	now = now.Add(10 * time.Minute)
	if _, ok := m.Get("k"); ok {
		t.Error("entry should expire at the IST day rollover")
	}
}

func TestInvalidateAndClear(t *testing.T) {
	now := time.Date(2024, 6, 15, 4, 30, 0, 0, time.UTC)
	m := newTestManager(t, time.Hour, &now)

	m.Put("a", nil)
	m.Put("b", nil)
	m.Invalidate("a")
	if _, ok := m.Get("a"); ok {
		t.Error("a should be invalidated")
	}
	if _, ok := m.Get("b"); !ok {
		t.Error("b should remain")
	}
	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Len() = %d after Clear", m.Len())
	}
}
