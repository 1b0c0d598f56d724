package internaldefs

import (
	goCaptcha "github.com/MrEthical07/goCaptcha"
)

// CounterDef defines a public type used by goCaptcha APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goCaptcha.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goCaptcha APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goCaptcha.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the verification engine.
var CounterDefs = []CounterDef{
	{ID: goCaptcha.MetricChallengeIssued, Name: "gocaptcha_challenge_issued_total", Help: "Issued challenges."},
	{ID: goCaptcha.MetricIssueRateLimited, Name: "gocaptcha_issue_rate_limited_total", Help: "Rate-limited issuance attempts."},
	{ID: goCaptcha.MetricVerifySuccess, Name: "gocaptcha_verify_success_total", Help: "Successful verifications."},
	{ID: goCaptcha.MetricVerifyFailure, Name: "gocaptcha_verify_failure_total", Help: "Failed verifications."},
	{ID: goCaptcha.MetricVerifyRateLimited, Name: "gocaptcha_verify_rate_limited_total", Help: "Rate-limited verification attempts."},
	{ID: goCaptcha.MetricBotDetected, Name: "gocaptcha_bot_detected_total", Help: "Verifications classified as bot traffic."},
	{ID: goCaptcha.MetricTokenRejected, Name: "gocaptcha_token_rejected_total", Help: "Tokens rejected by signature verification."},
	{ID: goCaptcha.MetricReplayDetected, Name: "gocaptcha_replay_detected_total", Help: "Verification attempts on already-solved challenges."},
	{ID: goCaptcha.MetricAttemptsExceeded, Name: "gocaptcha_attempts_exceeded_total", Help: "Challenges deleted after exhausting the attempt cap."},
	{ID: goCaptcha.MetricSecretRejected, Name: "gocaptcha_secret_rejected_total", Help: "Verifications rejected for an invalid site secret."},
	{ID: goCaptcha.MetricBatchVerify, Name: "gocaptcha_batch_verify_total", Help: "Batch verification calls."},
	{ID: goCaptcha.MetricChallengeExpired, Name: "gocaptcha_challenge_expired_total", Help: "Verification attempts on absent or expired challenges."},
	{ID: goCaptcha.MetricCredentialCreated, Name: "gocaptcha_credential_created_total", Help: "Created site credentials."},
}

// HistogramDefs is an exported constant or variable used by the verification engine.
var HistogramDefs = []HistogramDef{
	{ID: goCaptcha.MetricVerifyLatency, Name: "gocaptcha_verify_latency_seconds", Help: "Verify latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the verification engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the verification engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
