package goCaptcha

import (
	"time"

	"github.com/MrEthical07/goCaptcha/score"
)

// Verification failure reasons surfaced in [VerificationResult.Reasons] for
// lifecycle denials. Heuristic reasons come verbatim from the score package.
const (
	reasonInvalidSignature  = "invalid token signature"
	reasonChallengeNotFound = "challenge not found or expired"
	reasonAlreadyUsed       = "challenge already used"
	reasonTooManyAttempts   = "too many attempts"
	reasonInvalidSecret     = "invalid secret key"
)

// ChallengeKind defines a public type used by goCaptcha APIs.
//
// ChallengeKind instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ChallengeKind string

const (
	// ChallengeDrag is an exported constant or variable used by the verification engine.
	ChallengeDrag ChallengeKind = "drag"
	// ChallengePuzzle is an exported constant or variable used by the verification engine.
	ChallengePuzzle ChallengeKind = "puzzle"
)

// ChallengeData defines a public type used by goCaptcha APIs.
//
// ChallengeData instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ChallengeData struct {
	TargetX  int `json:"targetX"`
	TargetY  int `json:"targetY"`
	Rotation int `json:"rotation,omitempty"`
}

// IssuedChallenge defines a public type used by goCaptcha APIs.
//
// IssuedChallenge instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type IssuedChallenge struct {
	Token           string        `json:"token"`
	Kind            ChallengeKind `json:"type"`
	Data            ChallengeData `json:"challengeData"`
	ExpiresAt       time.Time     `json:"expiresAt"`
	CanvasChallenge string        `json:"canvasChallenge"`
}

// VerificationResult defines a public type used by goCaptcha APIs.
//
// VerificationResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type VerificationResult struct {
	Success   bool      `json:"success"`
	Score     int       `json:"score"`
	IsBot     bool      `json:"isBot"`
	Reasons   []string  `json:"reasons"`
	Timestamp time.Time `json:"timestamp"`
}

// BatchVerification defines a public type used by goCaptcha APIs.
//
// BatchVerification instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BatchVerification struct {
	Token   string
	Signals score.Signals
}

// BatchItemResult defines a public type used by goCaptcha APIs.
//
// BatchItemResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BatchItemResult struct {
	Token string `json:"token"`
	VerificationResult
}

// BatchResult defines a public type used by goCaptcha APIs.
//
// BatchResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BatchResult struct {
	Results  []BatchItemResult `json:"results"`
	Total    int               `json:"total"`
	Verified int               `json:"verifiedCount"`
}

// ChallengeInfo defines a public type used by goCaptcha APIs.
//
// ChallengeInfo instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ChallengeInfo struct {
	ExpiresAt time.Time `json:"expiresAt"`
	Attempts  int       `json:"attempts"`
}

// SiteCredential defines a public type used by goCaptcha APIs.
//
// SiteCredential instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// The secret never appears here; it is revealed exactly once via [CreatedCredential].
type SiteCredential struct {
	PublicID  string    `json:"publicKey"`
	Domain    string    `json:"domain"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatedCredential defines a public type used by goCaptcha APIs.
//
// CreatedCredential instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CreatedCredential struct {
	PublicID string `json:"publicKey"`
	Secret   string `json:"secretKey"`
}

// LedgerEntry defines a public type used by goCaptcha APIs.
//
// LedgerEntry instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LedgerEntry struct {
	Timestamp time.Time `json:"timestamp"`
	SiteID    string    `json:"siteKey"`
	Success   bool      `json:"success"`
	IsBot     bool      `json:"bot"`
	Score     int       `json:"score"`
	ClientIP  string    `json:"ip,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	Country   string    `json:"country,omitempty"`
}

// LedgerSnapshot defines a public type used by goCaptcha APIs.
//
// LedgerSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LedgerSnapshot struct {
	Total       uint64            `json:"totalVerifications"`
	Successful  uint64            `json:"successfulVerifications"`
	Failed      uint64            `json:"failedVerifications"`
	BotAttempts uint64            `json:"botAttempts"`
	ByDomain    map[string]uint64 `json:"byDomain"`
	ByCountry   map[string]uint64 `json:"byCountry"`
	RecentLogs  []LedgerEntry     `json:"recentLogs"`
}

// SiteStats defines a public type used by goCaptcha APIs.
//
// SiteStats instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SiteStats struct {
	Total       int           `json:"totalVerifications"`
	Successful  int           `json:"successfulVerifications"`
	Failed      int           `json:"failedVerifications"`
	BotAttempts int           `json:"botAttempts"`
	RecentLogs  []LedgerEntry `json:"recentLogs"`
}

// HealthStatus defines a public type used by goCaptcha APIs.
//
// HealthStatus instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HealthStatus struct {
	Status string        `json:"status"`
	Uptime time.Duration `json:"uptime"`
	Total  uint64        `json:"totalVerifications"`
	// SuccessRate is a percentage in [0, 100], not a fraction.
	SuccessRate float64   `json:"successRate"`
	Timestamp   time.Time `json:"timestamp"`
}

// CountryResolver maps a client IP to an ISO country code for ledger grouping.
// A resolver returning "" leaves the country bucket untouched.
type CountryResolver interface {
	Country(ip string) string
}
