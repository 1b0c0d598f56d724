package goCaptcha

import (
	"testing"
	"time"
)

func TestChallengeStoreCreateAndGet(t *testing.T) {
	store := newChallengeStore(time.Minute, time.Minute)

	created := store.Create("tok-1", "pk_site", time.Minute)
	if created.Token != "tok-1" || created.SiteID != "pk_site" {
		t.Fatalf("unexpected challenge: %+v", created)
	}
	if created.Solved || created.Attempts != 0 {
		t.Fatalf("new challenge should be unsolved with zero attempts: %+v", created)
	}

	got, ok := store.Get("tok-1")
	if !ok {
		t.Fatal("expected challenge to be readable")
	}
	if got.ExpiresAt.Before(got.CreatedAt) {
		t.Fatalf("expiry precedes creation: %+v", got)
	}
}

func TestChallengeStoreMarkSolvedOnce(t *testing.T) {
	store := newChallengeStore(time.Minute, time.Minute)
	store.Create("tok-1", "pk_site", time.Minute)

	if !store.MarkSolved("tok-1") {
		t.Fatal("first MarkSolved should succeed")
	}
	if store.MarkSolved("tok-1") {
		t.Fatal("second MarkSolved should be a no-op")
	}

	got, ok := store.Get("tok-1")
	if !ok {
		t.Fatal("solved challenge should remain readable until expiry")
	}
	if !got.Solved {
		t.Fatal("challenge should be solved")
	}
	if got.Attempts != 1 {
		t.Fatalf("MarkSolved should count as an attempt, got %d", got.Attempts)
	}
}

func TestChallengeStoreMarkSolvedAbsent(t *testing.T) {
	store := newChallengeStore(time.Minute, time.Minute)

	if store.MarkSolved("missing") {
		t.Fatal("MarkSolved on an absent token should return false")
	}
}

func TestChallengeStoreIncrementAttempts(t *testing.T) {
	store := newChallengeStore(time.Minute, time.Minute)
	store.Create("tok-1", "pk_site", time.Minute)

	if got := store.IncrementAttempts("tok-1"); got != 1 {
		t.Fatalf("expected attempts 1, got %d", got)
	}
	if got := store.IncrementAttempts("tok-1"); got != 2 {
		t.Fatalf("expected attempts 2, got %d", got)
	}
	if got := store.IncrementAttempts("missing"); got != 0 {
		t.Fatalf("absent token should report 0, got %d", got)
	}
}

func TestChallengeStoreExpiredInvisibleOnRead(t *testing.T) {
	store := newChallengeStore(time.Minute, time.Minute)
	store.Create("tok-1", "pk_site", 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	if _, ok := store.Get("tok-1"); ok {
		t.Fatal("expired challenge should be invisible regardless of the sweep")
	}
	if store.MarkSolved("tok-1") {
		t.Fatal("expired challenge should not be solvable")
	}
}

func TestChallengeStoreDelete(t *testing.T) {
	store := newChallengeStore(time.Minute, time.Minute)
	store.Create("tok-1", "pk_site", time.Minute)

	store.Delete("tok-1")

	if _, ok := store.Get("tok-1"); ok {
		t.Fatal("deleted challenge should be gone")
	}
	if store.Active() != 0 {
		t.Fatalf("expected no active challenges, got %d", store.Active())
	}
}
