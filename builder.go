package goCaptcha

import (
	"time"

	"github.com/MrEthical07/goCaptcha/internal/rate"
	"github.com/MrEthical07/goCaptcha/token"
)

type seedCredential struct {
	domain   string
	publicID string
	secret   string
}

// Builder defines a public type used by goCaptcha APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	seeds           []seedCredential
	auditSink       AuditSink
	countryResolver CountryResolver

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithSigningSecret describes the withsigningsecret operation and its observable behavior.
//
// WithSigningSecret may return an error when input validation, dependency calls, or security checks fail.
// WithSigningSecret does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithSigningSecret(secret []byte) *Builder {
	b.config.Token.SigningSecret = cloneBytes(secret)
	return b
}

// WithSiteCredential describes the withsitecredential operation and its observable behavior.
//
// WithSiteCredential may return an error when input validation, dependency calls, or security checks fail.
// WithSiteCredential does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithSiteCredential(domain, publicID, secret string) *Builder {
	b.seeds = append(b.seeds, seedCredential{
		domain:   domain,
		publicID: publicID,
		secret:   secret,
	})
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithCountryResolver describes the withcountryresolver operation and its observable behavior.
//
// WithCountryResolver may return an error when input validation, dependency calls, or security checks fail.
// WithCountryResolver does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCountryResolver(resolver CountryResolver) *Builder {
	b.countryResolver = resolver
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	signer, err := token.NewSigner(cfg.Token.SigningSecret)
	if err != nil {
		return nil, err
	}

	credentials := newCredentialStore()
	for _, seed := range b.seeds {
		if err := credentials.Register(seed.domain, seed.publicID, seed.secret); err != nil {
			return nil, err
		}
	}

	engine := &Engine{
		config:      cfg,
		signer:      signer,
		challenges:  newChallengeStore(cfg.Challenge.TTL, cfg.Challenge.SweepInterval),
		credentials: credentials,
		issueLimiter: rate.New(rate.Config{
			MaxAttempts: cfg.Throttle.IssueMaxAttempts,
			Window:      cfg.Throttle.Window,
		}),
		verifyLimiter: rate.New(rate.Config{
			MaxAttempts: cfg.Throttle.VerifyMaxAttempts,
			Window:      cfg.Throttle.Window,
		}),
		geo:       b.countryResolver,
		startedAt: time.Now(),
	}

	engine.ledger = newUsageLedger(cfg.Ledger, credentials.DomainLabel)
	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)
	engine.startSweep(cfg.Challenge.SweepInterval)

	b.built = true

	return engine, nil
}
