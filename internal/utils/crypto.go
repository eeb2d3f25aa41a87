// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateInvitationToken produces the opaque token embedded in the
// invitation link. 64 characters fits the column width.
func GenerateInvitationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
