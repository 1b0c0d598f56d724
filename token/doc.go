// Package token issues and verifies HMAC-signed opaque challenge tokens.
//
// # Token format
//
// Tokens are three dot-separated fields:
//
//	<hex(32 random bytes)>.<unix-millis>.<hex(HMAC-SHA256(payload))>
//
// where payload is the first two fields joined by a dot. Verification recomputes
// the signature over the payload and compares it in constant time. A token with
// any other part count fails closed.
//
// # What this package must NOT do
//
//   - Track issued tokens — single-use enforcement is the challenge store's job.
//   - Import any other goCaptcha package.
package token
