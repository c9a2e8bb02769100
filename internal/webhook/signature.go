package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
)

// SecretHeader carries the shared secret of the indexer webhook
const SecretHeader = "goldsky-webhook-secret"

// VerifySecret reports whether the provided secret matches the configured one.
// Both values are hashed first so the comparison takes the same time whatever their lengths.
// An empty configured secret never matches.
func VerifySecret(configured, provided string) bool {
	if configured == "" {
		return false
	}

	expected := sha256.Sum256([]byte(configured))
	actual := sha256.Sum256([]byte(provided))
	return hmac.Equal(expected[:], actual[:])
}
