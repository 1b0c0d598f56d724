// Package internal contains helper utilities that are intentionally private to
// goCaptcha, including secure random identifier generation and credential
// secret hashing.
//
// # Sub-packages
//
//   - rate — in-memory fixed-window rate limit primitives
//
// # What this package must NOT do
//
//   - Export types that appear in the public goCaptcha API.
//   - Be imported by any package outside the goCaptcha module.
package internal
