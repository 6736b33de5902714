// Package sharing resolves documents for unauthenticated public access.
//
// A document becomes publicly reachable only after an explicit share
// request generates its token; tokens are never minted at creation time.
package sharing

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes gives 256 bits of entropy, enough that tokens are unguessable.
const tokenBytes = 32

// NewToken generates an opaque URL-safe share token.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
