package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// signature verification errors, matched by the HTTP boundary to pick status codes
var (
	// ErrNotConfigured means the shared secret is missing; the endpoint must
	// reject all webhook traffic with a distinct 5xx, never silently accept
	ErrNotConfigured = errors.New("webhook secret not configured")

	ErrMissingSignature = errors.New("missing signature")
	ErrInvalidSignature = errors.New("invalid signature")
)

// Verifier validates HMAC-SHA256 signatures over raw webhook bodies
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier with the given shared secret.
// An empty secret is allowed at construction but fails every Verify call
// with ErrNotConfigured.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks the signature header against HMAC-SHA256(secret, body).
// The header may carry a "sha256=" prefix. Comparison is constant-time.
func (v *Verifier) Verify(body []byte, header string) error {
	if len(v.secret) == 0 {
		return ErrNotConfigured
	}
	if header == "" {
		return ErrMissingSignature
	}

	sig := strings.TrimPrefix(header, "sha256=")

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return ErrInvalidSignature
	}
	return nil
}
