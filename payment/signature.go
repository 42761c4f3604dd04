package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the provider's callback signature: hex HMAC-SHA256
// over "<providerOrderID>|<paymentID>" with the shared secret.
func Sign(providerOrderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(providerOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the callback signature and compares in
// constant time.
func VerifySignature(providerOrderID, paymentID, signature, secret string) bool {
	expected := Sign(providerOrderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
