package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinBudget(t *testing.T) {
	store := NewMemoryStore(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !store.Allow("user-1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if store.Allow("user-1") {
		t.Error("request over budget should be denied")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	store := NewMemoryStore(1, time.Minute)

	if !store.Allow("a") {
		t.Fatal("first request for a should pass")
	}
	if !store.Allow("b") {
		t.Error("b should have its own budget")
	}
	if store.Allow("a") {
		t.Error("a is exhausted")
	}
}

func TestWindowResets(t *testing.T) {
	store := NewMemoryStore(1, time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }

	if !store.Allow("k") {
		t.Fatal("first request should pass")
	}
	if store.Allow("k") {
		t.Fatal("budget exhausted")
	}

	current = current.Add(61 * time.Second)
	if !store.Allow("k") {
		t.Error("budget should reset after the window elapses")
	}
}
