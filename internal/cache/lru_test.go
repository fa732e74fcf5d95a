// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests expire entries without sleeping.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestLRU(capacity int, ttl time.Duration) (*LRU[int], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[int](capacity, ttl)
	c.now = clock.now
	return c, clock
}

func TestLRU_BasicOperations(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, ok := c.Get(key)
		if !ok || got != want {
			t.Errorf("Get(%q) = %d, %v; want %d, true", key, got, ok, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	c.Get("a") // a becomes most recently used
	c.Add("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("expected %q to be present", key)
		}
	}
}

func TestLRU_UpdateRefreshesValue(t *testing.T) {
	c, clock := newTestLRU(2, time.Minute)

	c.Add("a", 1)
	clock.advance(50 * time.Second)
	c.Add("a", 10)
	clock.advance(50 * time.Second)

	got, ok := c.Get("a")
	if !ok || got != 10 {
		t.Errorf("Get(a) = %d, %v; want 10, true", got, ok)
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Add("a", 1)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a before expiry")
	}

	clock.advance(61 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to expire")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after lazy expiry", c.Len())
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Add("old1", 1)
	c.Add("old2", 2)
	clock.advance(45 * time.Second)
	c.Add("fresh", 3)
	clock.advance(30 * time.Second)

	if removed := c.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh entry should survive cleanup")
	}
}

func TestLRU_StatsAndClear(t *testing.T) {
	c, _ := newTestLRU(4, time.Minute)

	c.Add("a", 1)
	c.Get("a")
	c.Get("missing")

	hits, misses, size := c.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats() = %d, %d, %d; want 1, 1, 1", hits, misses, size)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	if c.Remove("a") {
		t.Error("Remove after Clear returned true")
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := strconv.Itoa((g*500 + i) % 150)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
