// Package middleware exposes an HTTP adapter that gates protected handlers
// behind a solved goCaptcha challenge.
//
// # Guards
//
//   - [Guard] — verifies the X-Captcha-Token header against the engine and
//     rejects requests that do not verify as human.
//
// The guard reads the token and base64-encoded behavioral signals from request
// headers, calls Engine.Verify, and injects the verification result into the
// request context for downstream handlers.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT score
// signals or inspect challenges itself — all decisions are delegated to
// Engine.Verify.
//
// # What this package must NOT do
//
//   - Inspect or mutate challenge state directly (delegates to Engine).
//   - Distinguish why a verification failed beyond pass/reject.
package middleware
