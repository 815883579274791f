package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(t *testing.T, msg, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyCheckoutSignature(t *testing.T) {
	const secret = "rzp_test_secret"
	good := sign(t, "order_ABC|pay_XYZ", secret)

	if !VerifyCheckoutSignature("order_ABC", "pay_XYZ", good, secret) {
		t.Error("valid signature rejected")
	}
	if VerifyCheckoutSignature("order_ABC", "pay_OTHER", good, secret) {
		t.Error("signature accepted for a different payment")
	}
	if VerifyCheckoutSignature("order_ABC", "pay_XYZ", good, "wrong_secret") {
		t.Error("signature accepted under the wrong secret")
	}
	if VerifyCheckoutSignature("order_ABC", "pay_XYZ", "deadbeef", secret) {
		t.Error("bogus signature accepted")
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	const secret = "rzp_test_secret"
	body := []byte(`{"event":"payment.captured","payload":{}}`)
	good := sign(t, string(body), secret)

	if !VerifyWebhookSignature(body, good, secret) {
		t.Error("valid webhook signature rejected")
	}
	if VerifyWebhookSignature([]byte(`{"event":"tampered"}`), good, secret) {
		t.Error("signature accepted for altered body")
	}
}
