package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyCheckoutSignature checks the signature the browser hands back after
// checkout: HMAC-SHA256 over "provider_order_id|payment_id" with the key
// secret, hex encoded.
func VerifyCheckoutSignature(providerOrderID, paymentID, signature, keySecret string) bool {
	return verify([]byte(providerOrderID+"|"+paymentID), signature, keySecret)
}

// VerifyWebhookSignature checks X-Razorpay-Signature over the raw webhook
// body. The webhook path is the trustworthy one: a client cannot forge it.
func VerifyWebhookSignature(body []byte, signature, keySecret string) bool {
	return verify(body, signature, keySecret)
}

func verify(msg []byte, signature, keySecret string) bool {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write(msg)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
