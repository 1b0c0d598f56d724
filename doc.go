// Package goCaptcha provides an in-memory proof-of-humanity challenge engine with
// HMAC-signed single-use tokens, behavioral bot scoring, per-client rate limiting,
// site credential management, and aggregate usage accounting.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goCaptcha is the public surface. It exposes [Engine], [Builder], [Config], and value
// types (VerificationResult, LedgerSnapshot, SiteCredential, etc.). Signing lives in the
// token sub-package, the scoring heuristic in score, throttling under internal/ — none of
// which hold engine state.
//
// # What this package must NOT do
//
//   - Persist anything: all state is process memory and is lost on restart by design.
//   - Share state across processes — each Engine instance is an island.
//   - Expose credential secrets after creation, or raw challenge internals in its API.
//
// # Performance contract
//
// Verify is the hot path. It performs no I/O: one HMAC computation, a handful of map
// operations under short-lived locks, and a pure scoring pass. Background sweeps
// (challenge expiry, ledger trim) are interval-driven and never block foreground calls
// beyond ordinary lock contention.
package goCaptcha
