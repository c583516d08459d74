// Package token generates and hashes opaque assessment tokens. Only the hash
// is persisted; the raw value travels once, inside the invitation email.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const rawBytes = 32

// Generate returns a fresh raw token and its storable hash.
func Generate() (raw string, hash string, err error) {
	b := make([]byte, rawBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(b)
	return raw, Hash(raw), nil
}

// Hash maps a raw token onto its stored form.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
