// Package cryptox implements the password digest scheme used by the portal.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the hex-encoded SHA-256 digest of the plaintext.
//
// The scheme is a single unsalted round. That is deliberately weak, but the
// stored digests of existing accounts were produced this way, so changing
// the algorithm or adding a salt would invalidate every stored credential.
// Any strengthening has to come with a stored-format migration first.
func HashPassword(plaintext string) string {
	digest := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(digest[:])
}
