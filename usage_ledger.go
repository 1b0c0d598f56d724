package goCaptcha

import (
	"sync"
	"time"
)

const recentLogDefault = 10

// usageLedger owns the append-only verification log and the aggregate
// counters derived from it. Counters update in O(1) per record and are
// all-time: the periodic trim only shortens the raw log.
type usageLedger struct {
	mu          sync.Mutex
	entries     []LedgerEntry
	total       uint64
	successful  uint64
	failed      uint64
	botAttempts uint64
	byDomain    map[string]uint64
	byCountry   map[string]uint64

	maxEntries int
	domainOf   func(siteID string) (string, bool)

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func newUsageLedger(cfg LedgerConfig, domainOf func(string) (string, bool)) *usageLedger {
	l := &usageLedger{
		byDomain:   make(map[string]uint64),
		byCountry:  make(map[string]uint64),
		maxEntries: cfg.MaxEntries,
		domainOf:   domainOf,
		done:       make(chan struct{}),
	}

	l.wg.Add(1)
	go l.run(cfg.TrimInterval)

	return l
}

func (l *usageLedger) run(interval time.Duration) {
	defer l.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Trim()
		case <-l.done:
			return
		}
	}
}

// Record appends an outcome and advances every counter family it touches.
func (l *usageLedger) Record(entry LedgerEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)

	l.total++
	if entry.Success {
		l.successful++
	} else {
		l.failed++
	}
	if entry.IsBot {
		l.botAttempts++
	}

	if domain, ok := l.domainOf(entry.SiteID); ok {
		l.byDomain[domain]++
	}
	if entry.Country != "" {
		l.byCountry[entry.Country]++
	}
}

// Recent returns up to n entries, most recent first.
func (l *usageLedger) Recent(n int) []LedgerEntry {
	if n <= 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}

	out := make([]LedgerEntry, n)
	for i := 0; i < n; i++ {
		out[i] = l.entries[len(l.entries)-1-i]
	}
	return out
}

// Snapshot returns the aggregate counters plus the ten most recent entries.
func (l *usageLedger) Snapshot() LedgerSnapshot {
	recent := l.Recent(recentLogDefault)

	l.mu.Lock()
	defer l.mu.Unlock()

	snap := LedgerSnapshot{
		Total:       l.total,
		Successful:  l.successful,
		Failed:      l.failed,
		BotAttempts: l.botAttempts,
		ByDomain:    make(map[string]uint64, len(l.byDomain)),
		ByCountry:   make(map[string]uint64, len(l.byCountry)),
		RecentLogs:  recent,
	}
	for k, v := range l.byDomain {
		snap.ByDomain[k] = v
	}
	for k, v := range l.byCountry {
		snap.ByCountry[k] = v
	}
	return snap
}

// SiteSnapshot aggregates the retained log for one site. Unlike the global
// counters this is bounded by the trim horizon, so it reflects recent
// activity rather than all-time totals.
func (l *usageLedger) SiteSnapshot(siteID string, recent int) SiteStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	var stats SiteStats
	for i := len(l.entries) - 1; i >= 0; i-- {
		entry := l.entries[i]
		if entry.SiteID != siteID {
			continue
		}
		stats.Total++
		if entry.Success {
			stats.Successful++
		} else {
			stats.Failed++
		}
		if entry.IsBot {
			stats.BotAttempts++
		}
		if len(stats.RecentLogs) < recent {
			stats.RecentLogs = append(stats.RecentLogs, entry)
		}
	}
	return stats
}

// Trim keeps only the newest maxEntries log lines. Counters are untouched.
func (l *usageLedger) Trim() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	excess := len(l.entries) - l.maxEntries
	if excess <= 0 {
		return 0
	}

	kept := make([]LedgerEntry, l.maxEntries)
	copy(kept, l.entries[excess:])
	l.entries = kept
	return excess
}

// Close stops the trim loop. Records after Close still append normally.
func (l *usageLedger) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
		l.wg.Wait()
	})
}
