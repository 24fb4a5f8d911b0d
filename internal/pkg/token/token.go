package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewHex returns a cryptographically secure random token of byteLen bytes,
// hex encoded. Donation references use byteLen=10 which yields 80 bits of
// entropy in a 20 character string.
func NewHex(byteLen int) (string, error) {
	if byteLen <= 0 {
		return "", fmt.Errorf("invalid token length: %d", byteLen)
	}

	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read secure random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
