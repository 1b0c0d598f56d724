package goCaptcha

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

func (s *countingSink) Count() int64 {
	return s.count.Load()
}

type gateSink struct {
	gate chan struct{}
}

func newGateSink() *gateSink {
	return &gateSink{
		gate: make(chan struct{}),
	}
}

func (s *gateSink) Emit(context.Context, AuditEvent) {
	<-s.gate
}

func buildAuditTestEngine(t *testing.T, cfg Config, sink AuditSink) *Engine {
	t.Helper()

	engine, err := New().
		WithConfig(cfg).
		WithSiteCredential(testDomain, testPublicID, testSecret).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}

func TestAuditDisabledNoSinkCalls(t *testing.T) {
	cfg := testConfig()
	cfg.Audit.Enabled = false

	sink := &countingSink{}
	engine := buildAuditTestEngine(t, cfg, sink)

	_, _ = engine.Verify(testContext("203.0.113.1"), "aa.123.forged", testSecret, humanSignals())
	time.Sleep(30 * time.Millisecond)

	if sink.Count() != 0 {
		t.Fatalf("expected no audit sink calls when disabled, got %d", sink.Count())
	}
}

func TestAuditEmitsVerifyEvents(t *testing.T) {
	cfg := testConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 64

	sink := NewChannelSink(64)
	engine := buildAuditTestEngine(t, cfg, sink)
	ctx := testContext("203.0.113.1")

	issued, err := engine.IssueChallenge(ctx, testPublicID)
	if err != nil {
		t.Fatalf("IssueChallenge failed: %v", err)
	}
	if _, err := engine.Verify(ctx, issued.Token, testSecret, humanSignals()); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	seen := map[string]AuditEvent{}
	deadline := time.After(time.Second)
	for len(seen) < 2 {
		select {
		case event := <-sink.Events():
			seen[event.EventType] = event
		case <-deadline:
			t.Fatalf("timed out waiting for audit events, saw %v", seen)
		}
	}

	issuedEvent, ok := seen["challenge_issued"]
	if !ok {
		t.Fatalf("expected challenge_issued event, saw %v", seen)
	}
	if issuedEvent.SiteID != testPublicID || !issuedEvent.Success {
		t.Fatalf("unexpected issuance event: %+v", issuedEvent)
	}
	if issuedEvent.IP != "203.0.113.1" {
		t.Fatalf("event should carry the caller IP, got %q", issuedEvent.IP)
	}

	verifyEvent, ok := seen["verify_success"]
	if !ok {
		t.Fatalf("expected verify_success event, saw %v", seen)
	}
	if verifyEvent.Token != issued.Token {
		t.Fatalf("verify event should carry the token, got %q", verifyEvent.Token)
	}
}

func TestAuditDropIfFullCountsDrops(t *testing.T) {
	cfg := testConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 1
	cfg.Audit.DropIfFull = true

	sink := newGateSink()
	engine := buildAuditTestEngine(t, cfg, sink)
	ctx := testContext("203.0.113.1")

	// The sink blocks, so events pile up past the one-slot buffer.
	for i := 0; i < 8; i++ {
		_, _ = engine.Verify(ctx, "aa.123.forged", testSecret, humanSignals())
	}

	if engine.AuditDropped() == 0 {
		t.Fatal("expected dropped events under backpressure")
	}

	close(sink.gate)
}

// stallSink never finishes a delivery on its own; it returns only when the
// dispatcher's per-delivery context expires.
type stallSink struct {
	started atomic.Int64
}

func (s *stallSink) Emit(ctx context.Context, _ AuditEvent) {
	s.started.Add(1)
	<-ctx.Done()
}

func TestAuditDeliveryTimeoutUnblocksDispatcher(t *testing.T) {
	cfg := testConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 4
	cfg.Audit.DeliveryTimeout = 20 * time.Millisecond

	sink := &stallSink{}
	engine := buildAuditTestEngine(t, cfg, sink)
	ctx := testContext("203.0.113.1")

	for i := 0; i < 3; i++ {
		_, _ = engine.Verify(ctx, "aa.123.forged", testSecret, humanSignals())
	}

	// Each stalled delivery is abandoned at the timeout, so Close drains the
	// remaining events instead of hanging on the first one.
	start := time.Now()
	engine.Close()
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Close took %v; stalled sink should be cut off per delivery", elapsed)
	}

	if sink.started.Load() == 0 {
		t.Fatal("expected the sink to receive at least one delivery")
	}
}

func TestJSONWriterSinkWritesLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: "verify_success",
		SiteID:    "pk_x",
		Success:   true,
	})

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a serialized event")
	}

	var decoded AuditEvent
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("event is not valid JSON: %v", err)
	}
	if decoded.EventType != "verify_success" || decoded.SiteID != "pk_x" {
		t.Fatalf("unexpected decoded event: %+v", decoded)
	}
}
