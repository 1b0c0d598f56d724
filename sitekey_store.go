package goCaptcha

import (
	"sync"
	"time"

	"github.com/MrEthical07/goCaptcha/internal"
)

const (
	publicIDPrefix = "pk_"
	secretPrefix   = "sk_"
)

// siteCredential is the stored form of a registered caller identity. Only the
// SHA-256 digest of the secret is retained; the plaintext leaves the process
// exactly once, in the creation response.
type siteCredential struct {
	PublicID   string
	secretHash [32]byte
	Domain     string
	Enabled    bool
	CreatedAt  time.Time
}

// credentialStore owns every registered site credential.
type credentialStore struct {
	mu    sync.RWMutex
	creds map[string]*siteCredential
}

func newCredentialStore() *credentialStore {
	return &credentialStore{
		creds: make(map[string]*siteCredential),
	}
}

// Create registers a new credential for the domain label and returns the
// public ID together with the one-time plaintext secret.
func (s *credentialStore) Create(domain string) (CreatedCredential, error) {
	if domain == "" {
		return CreatedCredential{}, ErrDomainRequired
	}

	publicRaw, err := internal.NewKeyID(internal.PublicIDSize)
	if err != nil {
		return CreatedCredential{}, err
	}
	secretRaw, err := internal.NewKeyID(internal.SecretSize)
	if err != nil {
		return CreatedCredential{}, err
	}

	publicID := publicIDPrefix + publicRaw
	secret := secretPrefix + secretRaw

	if err := s.Register(domain, publicID, secret); err != nil {
		return CreatedCredential{}, err
	}

	return CreatedCredential{PublicID: publicID, Secret: secret}, nil
}

// Register stores a credential with caller-chosen identifiers. Used for
// seeding known credentials at startup and by Create.
func (s *credentialStore) Register(domain, publicID, secret string) error {
	if domain == "" {
		return ErrDomainRequired
	}
	if publicID == "" || secret == "" {
		return ErrCredentialInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.creds[publicID]; exists {
		return ErrCredentialExists
	}

	s.creds[publicID] = &siteCredential{
		PublicID:   publicID,
		secretHash: internal.HashSecret(secret),
		Domain:     domain,
		Enabled:    true,
		CreatedAt:  time.Now(),
	}
	return nil
}

// LookupPublic resolves a public ID to its credential, absence included.
// Callers decide how to treat a disabled credential on the issuance path.
func (s *credentialStore) LookupPublic(publicID string) (SiteCredential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.creds[publicID]
	if !ok {
		return SiteCredential{}, false
	}
	return cred.public(), true
}

// ValidateSecret reports whether the secret matches the stored digest for an
// enabled credential. A disabled credential never validates, even on a match.
func (s *credentialStore) ValidateSecret(publicID, secret string) bool {
	s.mu.RLock()
	cred, ok := s.creds[publicID]
	var enabled bool
	var hash [32]byte
	if ok {
		enabled = cred.Enabled
		hash = cred.secretHash
	}
	s.mu.RUnlock()

	if !ok || !enabled {
		return false
	}
	return internal.SecretEqual(hash, secret)
}

// SetEnabled toggles a credential without discarding it.
func (s *credentialStore) SetEnabled(publicID string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.creds[publicID]
	if !ok {
		return ErrCredentialNotFound
	}
	cred.Enabled = enabled
	return nil
}

// DomainLabel resolves the aggregate-grouping label for a site.
func (s *credentialStore) DomainLabel(publicID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.creds[publicID]
	if !ok {
		return "", false
	}
	return cred.Domain, true
}

// List returns every registered credential without secret material.
func (s *credentialStore) List() []SiteCredential {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SiteCredential, 0, len(s.creds))
	for _, cred := range s.creds {
		out = append(out, cred.public())
	}
	return out
}

func (c *siteCredential) public() SiteCredential {
	return SiteCredential{
		PublicID:  c.PublicID,
		Domain:    c.Domain,
		Enabled:   c.Enabled,
		CreatedAt: c.CreatedAt,
	}
}
