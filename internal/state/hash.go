package state

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText returns the lowercase hexadecimal SHA-256 digest of text. Sessions
// store it so two runs over the same trainer notes can be told apart from runs
// over edited notes.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
