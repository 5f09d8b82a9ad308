package cache_test

import (
	"testing"
	"time"

	"github.com/ucroboticslab/go-pepper/pkg/cache"
)

func TestGetPut(t *testing.T) {
	c := cache.New(time.Hour)

	if _, ok := c.Get("hello"); ok {
		t.Fatal("empty cache should miss")
	}

	c.Put("hello", "hi there")
	got, ok := c.Get("hello")
	if !ok || got != "hi there" {
		t.Errorf("got %q,%v", got, ok)
	}
}

func TestExactKeying(t *testing.T) {
	c := cache.New(time.Hour)
	c.Put("tell me a joke", "why did the robot cross the road")

	// Paraphrases and case changes are misses by design.
	if _, ok := c.Get("Tell me a joke"); ok {
		t.Error("case-variant prompt must miss")
	}
	if _, ok := c.Get("tell me a joke "); ok {
		t.Error("whitespace-variant prompt must miss")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := cache.New(time.Hour)
	now := time.Now()
	c.SetClock(func() time.Time { return now })

	c.Put("q", "a")

	now = now.Add(59 * time.Minute)
	if _, ok := c.Get("q"); !ok {
		t.Error("entry should still be valid inside the TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("q"); ok {
		t.Error("expired entry should be treated as absent")
	}

	// Expired entries stay in place until overwritten.
	if c.Len() != 1 {
		t.Errorf("expected 1 stored entry, got %d", c.Len())
	}

	// Overwrite restarts the TTL.
	c.Put("q", "a2")
	got, ok := c.Get("q")
	if !ok || got != "a2" {
		t.Errorf("got %q,%v after overwrite", got, ok)
	}
}
