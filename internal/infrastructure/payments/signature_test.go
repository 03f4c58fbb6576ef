package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookSignatureVerifier(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"event":"payment.captured","payload":{}}`)

	t.Run("valid signature", func(t *testing.T) {
		v := NewWebhookSignatureVerifier(secret)
		if !v.Verify(body, signBody(body, secret)) {
			t.Fatal("expected valid signature to verify")
		}
	})

	t.Run("tampered body", func(t *testing.T) {
		v := NewWebhookSignatureVerifier(secret)
		sig := signBody(body, secret)
		tampered := []byte(`{"event":"payment.captured","payload":{"x":1}}`)
		if v.Verify(tampered, sig) {
			t.Fatal("expected tampered body to fail")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		v := NewWebhookSignatureVerifier(secret)
		if v.Verify(body, signBody(body, "whsec_other")) {
			t.Fatal("expected signature from another secret to fail")
		}
	})

	t.Run("empty signature", func(t *testing.T) {
		v := NewWebhookSignatureVerifier(secret)
		if v.Verify(body, "") {
			t.Fatal("expected empty signature to fail")
		}
	})

	t.Run("unconfigured secret rejects everything", func(t *testing.T) {
		v := NewWebhookSignatureVerifier("")
		if v.Verify(body, signBody(body, "")) {
			t.Fatal("expected verifier without secret to reject")
		}
	})
}
