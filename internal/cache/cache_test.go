package cache

import (
	"testing"
	"time"
)

func TestKey_Deterministic(t *testing.T) {
	a := Key([]byte(`{"metadata":{}}`))
	b := Key([]byte(`{"metadata":{}}`))
	if a != b {
		t.Errorf("same input produced different keys: %s vs %s", a, b)
	}
	if Key([]byte("other")) == a {
		t.Error("different inputs produced the same key")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	key := Key([]byte("input"))
	if err := c.Set(key, []byte("envelope"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, found := c.Get(key)
	if !found {
		t.Fatal("Get() miss after Set()")
	}
	if string(got) != "envelope" {
		t.Errorf("Get() = %q, want %q", got, "envelope")
	}

	if _, found := c.Get("crednorm:v1:missing"); found {
		t.Error("Get() hit for unknown key")
	}
}

func TestLayeredCache_PromotesDiskHit(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	key := Key([]byte("report"))
	if err := c.Set(key, []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Drop the memory layer so the next read has to come from disk.
	c.memory.Clear()

	got, found := c.Get(key)
	if !found {
		t.Fatal("Get() miss after memory flush")
	}
	if string(got) != "payload" {
		t.Errorf("Get() = %q, want %q", got, "payload")
	}

	if _, found := c.memory.Get(key); !found {
		t.Error("disk hit was not promoted to memory")
	}
}
