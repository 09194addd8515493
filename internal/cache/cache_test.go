// file: internal/cache/cache_test.go
// version: 1.0.0
// guid: 8ae64879-616f-43f5-8f48-1fce6acb548f

package cache

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New[int](time.Minute)
	c.Set("a", 1)

	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should report absence")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New[string](time.Minute)
	c.SetWithTTL("a", "x", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("expired entry should not be returned")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := New[int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Error("invalidated key should be gone")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("other keys should survive Invalidate")
	}

	c.InvalidateAll()
	if _, ok := c.Get("b"); ok {
		t.Error("InvalidateAll should drop everything")
	}
}
