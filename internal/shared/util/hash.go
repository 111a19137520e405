package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey derives a stable, filesystem-safe directory name from a user
// identifier so storage paths never embed the raw id.
func HashUserKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}
