package goCaptcha

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "defaults with secret valid",
			mutate:    func(c *Config) {},
			wantValid: true,
		},
		{
			name: "signing secret too short",
			mutate: func(c *Config) {
				c.Token.SigningSecret = []byte("short")
			},
			wantValid: false,
		},
		{
			name: "challenge ttl zero",
			mutate: func(c *Config) {
				c.Challenge.TTL = 0
			},
			wantValid: false,
		},
		{
			name: "challenge attempts zero",
			mutate: func(c *Config) {
				c.Challenge.MaxAttempts = 0
			},
			wantValid: false,
		},
		{
			name: "sweep interval zero",
			mutate: func(c *Config) {
				c.Challenge.SweepInterval = 0
			},
			wantValid: false,
		},
		{
			name: "throttle window zero",
			mutate: func(c *Config) {
				c.Throttle.Window = 0
			},
			wantValid: false,
		},
		{
			name: "verify throttle zero",
			mutate: func(c *Config) {
				c.Throttle.VerifyMaxAttempts = 0
			},
			wantValid: false,
		},
		{
			name: "ledger max entries zero",
			mutate: func(c *Config) {
				c.Ledger.MaxEntries = 0
			},
			wantValid: false,
		},
		{
			name: "batch max items zero",
			mutate: func(c *Config) {
				c.Batch.MaxItems = 0
			},
			wantValid: false,
		},
		{
			name: "drag probability above one",
			mutate: func(c *Config) {
				c.Widget.DragProbability = 1.5
			},
			wantValid: false,
		},
		{
			name: "audit enabled without buffer",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
			wantValid: false,
		},
		{
			name: "audit enabled without delivery timeout",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.DeliveryTimeout = 0
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantValid && err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
			if !tt.wantValid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Challenge.TTL != 5*time.Minute {
		t.Fatalf("unexpected challenge TTL %v", cfg.Challenge.TTL)
	}
	if cfg.Challenge.MaxAttempts != 3 {
		t.Fatalf("unexpected attempt cap %d", cfg.Challenge.MaxAttempts)
	}
	if cfg.Throttle.IssueMaxAttempts != 20 || cfg.Throttle.VerifyMaxAttempts != 10 {
		t.Fatalf("unexpected throttle limits: %+v", cfg.Throttle)
	}
	if cfg.Throttle.Window != time.Minute {
		t.Fatalf("unexpected throttle window %v", cfg.Throttle.Window)
	}
	if cfg.Ledger.MaxEntries != 10000 {
		t.Fatalf("unexpected ledger cap %d", cfg.Ledger.MaxEntries)
	}
	if cfg.Batch.MaxItems != 10 {
		t.Fatalf("unexpected batch cap %d", cfg.Batch.MaxItems)
	}
	if cfg.Widget.DragProbability != 0.7 {
		t.Fatalf("unexpected drag probability %v", cfg.Widget.DragProbability)
	}
	if cfg.Audit.DeliveryTimeout != 5*time.Second {
		t.Fatalf("unexpected audit delivery timeout %v", cfg.Audit.DeliveryTimeout)
	}
}

func TestCloneConfigCopiesSecret(t *testing.T) {
	cfg := testConfig()
	clone := cloneConfig(cfg)

	clone.Token.SigningSecret[0] ^= 0xff
	if cfg.Token.SigningSecret[0] == clone.Token.SigningSecret[0] {
		t.Fatal("clone must not alias the signing secret")
	}
}
