// Package rate provides internal fixed-window rate limit primitives for the
// issuance and verification paths, keyed by client identifier (usually an IP).
//
// # Window semantics
//
// Fixed-window counters: the count resets to 1 once the window has elapsed since
// the first counted attempt; otherwise each allowed attempt increments it. A
// rejected attempt never grows the count past the limit. The fixed window
// permits up to twice the limit across a window boundary; callers accept that
// approximation.
//
// # What this package must NOT do
//
//   - Implement domain-specific policies (the Engine decides which keys to charge).
//   - Be imported outside the goCaptcha module.
package rate
