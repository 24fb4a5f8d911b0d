package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_BareDigest(t *testing.T) {
	body := []byte(`{"data":{"object":{"eej_ref":"abc"}}}`)
	secret := "wh_test_secret"

	if !VerifySignature(body, signBody(body, secret), secret) {
		t.Fatalf("expected valid bare digest to verify")
	}
}

func TestVerifySignature_EmbeddedInStructuredHeader(t *testing.T) {
	body := []byte(`{"transaction":{"status":"approved"}}`)
	secret := "wh_test_secret"
	digest := signBody(body, secret)

	header := fmt.Sprintf("t=1700000000,s=%s", digest)
	if !VerifySignature(body, header, secret) {
		t.Fatalf("expected digest embedded in structured header to verify")
	}

	header = fmt.Sprintf("t=1700000000, v1=%s, v0=deadbeef", digest)
	if !VerifySignature(body, header, secret) {
		t.Fatalf("expected digest among multiple structured fields to verify")
	}
}

func TestVerifySignature_Rejections(t *testing.T) {
	body := []byte(`{}`)
	secret := "wh_test_secret"
	valid := signBody(body, secret)

	tests := []struct {
		name   string
		header string
		secret string
	}{
		{name: "empty header", header: "", secret: secret},
		{name: "empty secret", header: valid, secret: ""},
		{name: "wrong digest", header: signBody([]byte(`{"x":1}`), secret), secret: secret},
		{name: "garbage", header: "not-a-signature", secret: secret},
		{name: "wrong secret", header: signBody(body, "other"), secret: secret},
		{name: "digest in key position", header: valid + "=1", secret: secret},
	}

	for _, tt := range tests {
		if VerifySignature(body, tt.header, tt.secret) {
			t.Fatalf("%s: expected rejection", tt.name)
		}
	}
}

func TestVerifySignature_CaseInsensitiveHex(t *testing.T) {
	body := []byte(`{"id":1}`)
	secret := "wh_test_secret"
	digest := signBody(body, secret)

	upper := make([]byte, len(digest))
	for i := 0; i < len(digest); i++ {
		c := digest[i]
		if c >= 'a' && c <= 'f' {
			c -= 'a' - 'A'
		}
		upper[i] = c
	}

	if !VerifySignature(body, string(upper), secret) {
		t.Fatalf("expected uppercase hex digest to verify")
	}
}
