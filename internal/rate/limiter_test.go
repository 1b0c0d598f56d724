package rate

import (
	"sync"
	"testing"
	"time"
)

func newTestLimiter(max int, window time.Duration) (*Limiter, *time.Time) {
	l := New(Config{MaxAttempts: max, Window: window})
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestCheckAllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		if !l.Check("203.0.113.1") {
			t.Fatalf("attempt %d unexpectedly rejected", i+1)
		}
	}
	if l.Check("203.0.113.1") {
		t.Fatal("11th attempt within the window should be rejected")
	}
	if got := l.Attempts("203.0.113.1"); got != 10 {
		t.Fatalf("rejection must not grow the count past the limit, got %d", got)
	}
}

func TestCheckResetsAfterWindow(t *testing.T) {
	l, now := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		l.Check("203.0.113.1")
	}
	if l.Check("203.0.113.1") {
		t.Fatal("expected rejection at the limit")
	}

	*now = now.Add(61 * time.Second)
	if !l.Check("203.0.113.1") {
		t.Fatal("expected allowance after the window elapsed")
	}
	if got := l.Attempts("203.0.113.1"); got != 1 {
		t.Fatalf("expected count reset to 1, got %d", got)
	}
}

func TestCheckKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	if !l.Check("a") {
		t.Fatal("first key rejected")
	}
	if !l.Check("b") {
		t.Fatal("second key must have its own budget")
	}
	if l.Check("a") {
		t.Fatal("first key should now be at its limit")
	}
}

func TestSweepDropsStaleRecords(t *testing.T) {
	l, now := newTestLimiter(5, time.Minute)

	l.Check("stale")
	*now = now.Add(2 * time.Minute)
	l.Check("fresh")

	if removed := l.Sweep(); removed != 1 {
		t.Fatalf("expected 1 swept record, got %d", removed)
	}
	if got := l.Attempts("fresh"); got != 1 {
		t.Fatalf("fresh record must survive the sweep, got count %d", got)
	}
}

func TestCheckConcurrentCounting(t *testing.T) {
	l := New(Config{MaxAttempts: 1000, Window: time.Minute})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Check("shared")
			}
		}()
	}
	wg.Wait()

	if got := l.Attempts("shared"); got != 800 {
		t.Fatalf("expected 800 counted attempts, got %d", got)
	}
}
