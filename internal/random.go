package internal

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	PublicIDSize = 16
	SecretSize   = 32
)

// NewKeyID returns a uniformly random alphanumeric identifier of the given
// length, suitable for site credential public IDs and secrets.
func NewKeyID(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid key id length")
	}

	out := make([]byte, length)
	// Rejection sampling keeps the distribution uniform over the alphabet.
	max := byte(256 - 256%len(idAlphabet))
	var buf [64]byte
	filled := 0
	for filled < length {
		if _, err := rand.Read(buf[:]); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= max {
				continue
			}
			out[filled] = idAlphabet[int(b)%len(idAlphabet)]
			filled++
			if filled == length {
				break
			}
		}
	}

	return string(out), nil
}

// HashSecret digests a credential secret for storage. Plaintext secrets are
// never retained after creation.
func HashSecret(secret string) [32]byte {
	return sha256.Sum256([]byte(secret))
}

// SecretEqual compares a candidate secret against a stored digest in
// constant time.
func SecretEqual(stored [32]byte, candidate string) bool {
	digest := sha256.Sum256([]byte(candidate))
	return subtle.ConstantTimeCompare(stored[:], digest[:]) == 1
}
