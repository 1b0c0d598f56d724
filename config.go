package goCaptcha

import (
	"errors"
	"time"
)

// Config defines a public type used by goCaptcha APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token     TokenConfig
	Challenge ChallengeConfig
	Throttle  ThrottleConfig
	Ledger    LedgerConfig
	Batch     BatchConfig
	Widget    WidgetConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by goCaptcha APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	SigningSecret []byte
}

/*
====================================
CHALLENGE CONFIG
====================================
*/

// ChallengeConfig defines a public type used by goCaptcha APIs.
//
// ChallengeConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ChallengeConfig struct {
	TTL           time.Duration
	MaxAttempts   int
	SweepInterval time.Duration
}

/*
====================================
THROTTLE CONFIG
====================================
*/

// ThrottleConfig defines a public type used by goCaptcha APIs.
//
// ThrottleConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ThrottleConfig struct {
	IssueMaxAttempts  int
	VerifyMaxAttempts int
	Window            time.Duration
}

/*
====================================
LEDGER CONFIG
====================================
*/

// LedgerConfig defines a public type used by goCaptcha APIs.
//
// LedgerConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LedgerConfig struct {
	MaxEntries   int
	TrimInterval time.Duration
}

/*
====================================
BATCH CONFIG
====================================
*/

// BatchConfig defines a public type used by goCaptcha APIs.
//
// BatchConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BatchConfig struct {
	MaxItems int
}

/*
====================================
WIDGET CONFIG
====================================
*/

// WidgetConfig defines a public type used by goCaptcha APIs.
//
// WidgetConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type WidgetConfig struct {
	DragProbability float64
	CanvasPhrase    string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by goCaptcha APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool

	// DeliveryTimeout bounds a single sink delivery. A sink that exceeds it
	// (a hung webhook endpoint) is abandoned so the dispatcher keeps draining.
	DeliveryTimeout time.Duration
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goCaptcha APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Challenge: ChallengeConfig{
			TTL:           5 * time.Minute,
			MaxAttempts:   3,
			SweepInterval: 5 * time.Minute,
		},
		Throttle: ThrottleConfig{
			IssueMaxAttempts:  20,
			VerifyMaxAttempts: 10,
			Window:            time.Minute,
		},
		Ledger: LedgerConfig{
			MaxEntries:   10000,
			TrimInterval: time.Hour,
		},
		Batch: BatchConfig{
			MaxItems: 10,
		},
		Widget: WidgetConfig{
			DragProbability: 0.7,
			CanvasPhrase:    "goCaptcha interactive challenge",
		},
		Audit: AuditConfig{
			Enabled:         false,
			BufferSize:      1024,
			DropIfFull:      true,
			DeliveryTimeout: 5 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if len(c.Token.SigningSecret) < 16 {
		return errors.New("Token SigningSecret must be at least 16 bytes")
	}
	if c.Challenge.TTL <= 0 {
		return errors.New("Challenge TTL must be positive")
	}
	if c.Challenge.MaxAttempts <= 0 {
		return errors.New("Challenge MaxAttempts must be positive")
	}
	if c.Challenge.SweepInterval <= 0 {
		return errors.New("Challenge SweepInterval must be positive")
	}
	if c.Throttle.IssueMaxAttempts <= 0 || c.Throttle.VerifyMaxAttempts <= 0 {
		return errors.New("Throttle attempt budgets must be positive")
	}
	if c.Throttle.Window <= 0 {
		return errors.New("Throttle Window must be positive")
	}
	if c.Ledger.MaxEntries <= 0 {
		return errors.New("Ledger MaxEntries must be positive")
	}
	if c.Ledger.TrimInterval <= 0 {
		return errors.New("Ledger TrimInterval must be positive")
	}
	if c.Batch.MaxItems <= 0 {
		return errors.New("Batch MaxItems must be positive")
	}
	if c.Widget.DragProbability < 0 || c.Widget.DragProbability > 1 {
		return errors.New("Widget DragProbability must be within [0, 1]")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be positive when audit is enabled")
	}
	if c.Audit.Enabled && c.Audit.DeliveryTimeout <= 0 {
		return errors.New("Audit DeliveryTimeout must be positive when audit is enabled")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.SigningSecret = cloneBytes(cfg.Token.SigningSecret)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
