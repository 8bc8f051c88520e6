package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/blake2b"
)

// HeaderName is the request header carrying the shared frontend secret.
const HeaderName = "X-API-TOKEN"

// TokenGuard checks presented tokens against a single shared secret.
// The zero value rejects everything.
type TokenGuard struct {
	expected []byte
}

func NewTokenGuard(expected string) *TokenGuard {
	return &TokenGuard{expected: []byte(expected)}
}

// Allow reports whether presented matches the configured secret. When no
// secret is configured every token is refused.
func (g *TokenGuard) Allow(presented string) bool {
	if g == nil || len(g.expected) == 0 {
		return false
	}

	// compare fixed-size digests so neither length nor prefix leaks through timing
	want := blake2b.Sum256(g.expected)
	got := blake2b.Sum256([]byte(presented))
	return subtle.ConstantTimeCompare(got[:], want[:]) == 1
}
