// Package getnet implements the PaymentAdapter interface for Getnet
// (Santander Chile) web checkout.
package getnet

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"
)

// isoOffsetLayout is ISO-8601 with the local UTC offset, the timestamp
// format Getnet expects for both seed and expiration.
const isoOffsetLayout = "2006-01-02T15:04:05-07:00"

// generateAuth builds a fresh authentication block. It must be called once
// per request: nonce and seed are one-time challenge values and are never
// cached or shared between calls.
func generateAuth(login, secretKey string) (Auth, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return Auth{}, err
	}

	seed := time.Now().Format(isoOffsetLayout)

	return Auth{
		Login:   login,
		TranKey: tranKey(nonce, seed, secretKey),
		Nonce:   base64.StdEncoding.EncodeToString(nonce),
		Seed:    seed,
	}, nil
}

// tranKey computes base64(SHA-256(rawNonce + seed + secretKey)). The nonce
// goes into the hash as raw bytes, not its base64 transport encoding.
func tranKey(rawNonce []byte, seed, secretKey string) string {
	h := sha256.New()
	h.Write(rawNonce)
	h.Write([]byte(seed))
	h.Write([]byte(secretKey))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// validSignature checks a webhook notification signature:
// lowercase hex SHA-1(requestId + status + date + secretKey), compared
// case-insensitively.
func validSignature(requestID, status, date, signature, secretKey string) bool {
	h := sha1.Sum([]byte(requestID + status + date + secretKey))
	expected := hex.EncodeToString(h[:])
	return strings.EqualFold(expected, signature)
}
