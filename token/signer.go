package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

const randomPayloadSize = 32

// Signer defines a public type used by goCaptcha APIs.
//
// Signer instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Signer struct {
	secret []byte
}

// NewSigner describes the newsigner operation and its observable behavior.
//
// NewSigner may return an error when input validation, dependency calls, or security checks fail.
// NewSigner does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewSigner(secret []byte) (*Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("signing secret required")
	}

	owned := make([]byte, len(secret))
	copy(owned, secret)

	return &Signer{secret: owned}, nil
}

// Generate describes the generate operation and its observable behavior.
//
// Generate may return an error when input validation, dependency calls, or security checks fail.
// Generate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Signer) Generate() (string, error) {
	var random [randomPayloadSize]byte
	if _, err := rand.Read(random[:]); err != nil {
		return "", err
	}

	payload := hex.EncodeToString(random[:]) + "." + strconv.FormatInt(time.Now().UnixMilli(), 10)
	return payload + "." + s.sign(payload), nil
}

// Verify describes the verify operation and its observable behavior.
//
// Verify never returns an error; malformed or forged tokens fail closed.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Signer) Verify(token string) bool {
	if s == nil {
		return false
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}

	payload := parts[0] + "." + parts[1]
	return hmac.Equal([]byte(s.sign(payload)), []byte(parts[2]))
}

func (s *Signer) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
