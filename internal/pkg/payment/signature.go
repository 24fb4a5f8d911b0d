package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature checks the webhook signature header against an
// HMAC-SHA256 hex digest of the exact raw body bytes. The processor may
// send the bare digest or wrap it in a structured header such as
// "t=1700000000,s=<digest>", so both a full match and a match of any
// structured field value are accepted. All comparisons are constant time.
func VerifySignature(body []byte, signatureHeader, secret string) bool {
	sig := strings.TrimSpace(signatureHeader)
	if sig == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	digest := hex.EncodeToString(mac.Sum(nil))

	if constantTimeEqualFold(sig, digest) {
		return true
	}

	// Structured header: split on commas, compare the value part of each
	// k=v field. A timestamp prefix like "t=..." is skipped naturally
	// because its value never matches the digest length.
	if strings.ContainsRune(sig, '=') {
		for _, field := range strings.Split(sig, ",") {
			if _, value, ok := strings.Cut(field, "="); ok {
				if constantTimeEqualFold(strings.TrimSpace(value), digest) {
					return true
				}
			}
		}
	}

	return false
}

// constantTimeEqualFold compares two hex strings case-insensitively
// without leaking the mismatch position through timing.
func constantTimeEqualFold(candidate, digest string) bool {
	decoded, err := hex.DecodeString(strings.ToLower(candidate))
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}
	return hmac.Equal(decoded, expected)
}
