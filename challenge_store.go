package goCaptcha

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// challenge is the live record behind one issued token. Mutations happen only
// under the store mutex.
type challenge struct {
	Token     string
	SiteID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	Solved    bool
	Attempts  int
}

// challengeStore owns the lifetime of every active challenge. Expired entries
// stop being visible on read immediately; the cache janitor additionally purges
// records nobody reads again, bounding memory from abandoned challenges.
type challengeStore struct {
	mu    sync.Mutex
	items *cache.Cache
}

func newChallengeStore(defaultTTL, sweepInterval time.Duration) *challengeStore {
	return &challengeStore{
		items: cache.New(defaultTTL, sweepInterval),
	}
}

// Create inserts a fresh challenge. Tokens are globally unique by
// construction, so overwrite semantics are not a concern here.
func (s *challengeStore) Create(token, siteID string, ttl time.Duration) challenge {
	now := time.Now()
	ch := &challenge{
		Token:     token,
		SiteID:    siteID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items.Set(token, ch, ttl)
	return *ch
}

// Get returns a snapshot of the live record, or false once the challenge
// expired or never existed. Expired records become invisible on the read
// itself, independent of the background sweep.
func (s *challengeStore) Get(token string) (challenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.lookup(token)
	if !ok {
		return challenge{}, false
	}
	return *ch, true
}

// MarkSolved flips the single-redemption latch. It reports false when the
// challenge is absent, expired, or already solved; the attempt that solved
// the challenge is counted here.
func (s *challengeStore) MarkSolved(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.lookup(token)
	if !ok || ch.Solved {
		return false
	}
	ch.Solved = true
	ch.Attempts++
	return true
}

// IncrementAttempts counts a verification attempt that did not decide the
// challenge. Returns the new count, or 0 when the challenge is gone.
func (s *challengeStore) IncrementAttempts(token string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.lookup(token)
	if !ok {
		return 0
	}
	ch.Attempts++
	return ch.Attempts
}

// Delete removes a challenge unconditionally (attempt-limit enforcement).
func (s *challengeStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items.Delete(token)
}

// Active reports the number of stored records, expired-but-unswept included.
func (s *challengeStore) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items.ItemCount()
}

func (s *challengeStore) lookup(token string) (*challenge, bool) {
	v, ok := s.items.Get(token)
	if !ok {
		return nil, false
	}
	ch, ok := v.(*challenge)
	return ch, ok
}
