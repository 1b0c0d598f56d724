package goCaptcha

import (
	"context"
	"sync"
	"time"

	"github.com/MrEthical07/goCaptcha/internal/rate"
	"github.com/MrEthical07/goCaptcha/token"
)

// Engine defines a public type used by goCaptcha APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config        Config
	signer        *token.Signer
	challenges    *challengeStore
	credentials   *credentialStore
	issueLimiter  *rate.Limiter
	verifyLimiter *rate.Limiter
	ledger        *usageLedger
	audit         *auditDispatcher
	metrics       *Metrics
	geo           CountryResolver
	startedAt     time.Time

	sweepDone chan struct{}
	sweepWG   sync.WaitGroup
	closeOnce sync.Once
}

// startSweep runs the throttle janitor. The challenge store janitors itself;
// limiter windows have no TTL of their own and are swept here.
func (e *Engine) startSweep(interval time.Duration) {
	e.sweepDone = make(chan struct{})
	e.sweepWG.Add(1)

	go func() {
		defer e.sweepWG.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				e.issueLimiter.Sweep()
				e.verifyLimiter.Sweep()
			case <-e.sweepDone:
				return
			}
		}
	}()
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.closeOnce.Do(func() {
		if e.sweepDone != nil {
			close(e.sweepDone)
			e.sweepWG.Wait()
		}
		if e.ledger != nil {
			e.ledger.Close()
		}
		if e.audit != nil {
			e.audit.Close()
		}
	})
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(id, d)
}

// Health describes the health operation and its observable behavior.
//
// Health may return an error when input validation, dependency calls, or security checks fail.
// Health does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Health() HealthStatus {
	if e == nil {
		return HealthStatus{Status: "unavailable", Timestamp: time.Now().UTC()}
	}

	snap := e.ledger.Snapshot()

	// SuccessRate is a percentage in [0, 100].
	successRate := 0.0
	if snap.Total > 0 {
		successRate = float64(snap.Successful) / float64(snap.Total) * 100
	}

	return HealthStatus{
		Status:      "operational",
		Uptime:      time.Since(e.startedAt),
		Total:       snap.Total,
		SuccessRate: successRate,
		Timestamp:   time.Now().UTC(),
	}
}

// Statistics describes the statistics operation and its observable behavior.
//
// Statistics may return an error when input validation, dependency calls, or security checks fail.
// Statistics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Statistics() LedgerSnapshot {
	if e == nil || e.ledger == nil {
		return LedgerSnapshot{
			ByDomain:  map[string]uint64{},
			ByCountry: map[string]uint64{},
		}
	}
	return e.ledger.Snapshot()
}

// SiteStatistics describes the sitestatistics operation and its observable behavior.
//
// SiteStatistics may return an error when input validation, dependency calls, or security checks fail.
// SiteStatistics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SiteStatistics(publicID string) (SiteStats, error) {
	if e == nil || e.ledger == nil {
		return SiteStats{}, ErrEngineNotReady
	}
	if _, ok := e.credentials.LookupPublic(publicID); !ok {
		return SiteStats{}, ErrCredentialNotFound
	}
	return e.ledger.SiteSnapshot(publicID, recentLogDefault), nil
}

// RecentLogs describes the recentlogs operation and its observable behavior.
//
// RecentLogs may return an error when input validation, dependency calls, or security checks fail.
// RecentLogs does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RecentLogs(n int) []LedgerEntry {
	if e == nil || e.ledger == nil {
		return nil
	}
	return e.ledger.Recent(n)
}

// ActiveChallenges describes the activechallenges operation and its observable behavior.
//
// ActiveChallenges may return an error when input validation, dependency calls, or security checks fail.
// ActiveChallenges does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ActiveChallenges() int {
	if e == nil || e.challenges == nil {
		return 0
	}
	return e.challenges.Active()
}

// CreateSiteCredential describes the createsitecredential operation and its observable behavior.
//
// CreateSiteCredential may return an error when input validation, dependency calls, or security checks fail.
// CreateSiteCredential does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CreateSiteCredential(ctx context.Context, domain string) (CreatedCredential, error) {
	if e == nil {
		return CreatedCredential{}, ErrEngineNotReady
	}

	created, err := e.credentials.Create(domain)
	if err != nil {
		e.emitAudit(ctx, auditEventCredentialCreated, false, "", "", err, func() map[string]string {
			return map[string]string{"domain": domain}
		})
		return CreatedCredential{}, err
	}

	e.metricInc(MetricCredentialCreated)
	e.emitAudit(ctx, auditEventCredentialCreated, true, created.PublicID, "", nil, func() map[string]string {
		return map[string]string{"domain": domain}
	})

	return created, nil
}

// SetSiteEnabled describes the setsiteenabled operation and its observable behavior.
//
// SetSiteEnabled may return an error when input validation, dependency calls, or security checks fail.
// SetSiteEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SetSiteEnabled(ctx context.Context, publicID string, enabled bool) error {
	if e == nil {
		return ErrEngineNotReady
	}

	err := e.credentials.SetEnabled(publicID, enabled)
	e.emitAudit(ctx, auditEventCredentialUpdated, err == nil, publicID, "", err, func() map[string]string {
		if enabled {
			return map[string]string{"enabled": "true"}
		}
		return map[string]string{"enabled": "false"}
	})
	return err
}

// ListSiteCredentials describes the listsitecredentials operation and its observable behavior.
//
// ListSiteCredentials may return an error when input validation, dependency calls, or security checks fail.
// ListSiteCredentials does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ListSiteCredentials() []SiteCredential {
	if e == nil || e.credentials == nil {
		return nil
	}
	return e.credentials.List()
}
