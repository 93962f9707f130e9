package cache

import (
	"errors"
	"testing"
	"time"
)

func TestCache_Expiry(t *testing.T) {
	clock := time.Now()
	c := New[int](time.Second)
	c.now = func() time.Time { return clock }

	c.Set("k", 42)
	if v, ok := c.Get("k"); !ok || v != 42 {
		t.Fatalf("expected 42, got %v ok=%v", v, ok)
	}

	clock = clock.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCache_GetOrLoad(t *testing.T) {
	c := New[string](time.Minute)
	loads := 0
	load := func() (string, error) {
		loads++
		return "catalog", nil
	}

	v, hit, err := c.GetOrLoad("k", load)
	if err != nil || hit || v != "catalog" {
		t.Fatalf("first load: v=%q hit=%v err=%v", v, hit, err)
	}

	v, hit, err = c.GetOrLoad("k", load)
	if err != nil || !hit || v != "catalog" {
		t.Fatalf("second load: v=%q hit=%v err=%v", v, hit, err)
	}
	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}

	c.Delete("k")
	if _, hit, _ = c.GetOrLoad("k", load); hit || loads != 2 {
		t.Fatalf("expected reload after delete, loads=%d", loads)
	}
}

func TestCache_LoadErrorNotCached(t *testing.T) {
	c := New[int](time.Minute)
	boom := errors.New("boom")

	if _, _, err := c.GetOrLoad("k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Fatalf("error result must not be cached")
	}
}
