package payments

import (
	"log"
	"strings"

	"github.com/razorpay/razorpay-go/utils"
)

// SignatureVerifier checks the X-Gateway-Signature header against the raw
// webhook body.
type SignatureVerifier interface {
	Verify(body []byte, signature string) bool
}

// WebhookSignatureVerifier verifies the gateway's HMAC-SHA256 hex digest over
// the raw request body. The SDK's verification compares digests in constant
// time, so a tampered byte cannot be probed via timing.
type WebhookSignatureVerifier struct {
	secret string
}

var _ SignatureVerifier = (*WebhookSignatureVerifier)(nil)

func NewWebhookSignatureVerifier(secret string) *WebhookSignatureVerifier {
	if strings.TrimSpace(secret) == "" {
		log.Printf("[webhook][signature] GATEWAY_WEBHOOK_SECRET not configured; all deliveries will be rejected")
	}
	return &WebhookSignatureVerifier{secret: secret}
}

// Verify returns false for an unconfigured secret or an empty signature;
// no delivery is ever processed unauthenticated.
func (v *WebhookSignatureVerifier) Verify(body []byte, signature string) bool {
	if strings.TrimSpace(v.secret) == "" || strings.TrimSpace(signature) == "" {
		return false
	}
	return utils.VerifyWebhookSignature(string(body), signature, v.secret)
}
