package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey_Namespaced(t *testing.T) {
	key := Key("https://serpapi.com/search?q=claim")
	if !strings.HasPrefix(key, "truthscope:v1:") {
		t.Errorf("expected namespaced key, got %s", key)
	}
	if Key("a") == Key("b") {
		t.Error("expected distinct keys for distinct inputs")
	}
	if Key("a") != Key("a") {
		t.Error("expected stable keys")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("value"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "value" {
		t.Errorf("expected hit with value, got %q found=%v", val, found)
	}

	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set(Key("query"), []byte(`{"articles":[]}`), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	val, found := c.Get(Key("query"))
	if !found || string(val) != `{"articles":[]}` {
		t.Errorf("expected hit, got %q found=%v", val, found)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, found := c.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestLayeredCache_DiskPromotion(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Fresh layered cache over the same dir: memory is cold, disk hits
	c2 := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := c2.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("expected disk hit through new instance, got %q found=%v", val, found)
	}
}
