package mercadopago

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// MercadoPago signs webhooks with an x-signature header of the form
// "ts=<timestamp>,v1=<signature>", where the signature is HMAC-SHA256 of
// "id:<data.id>;request-id:<x-request-id>;ts:<timestamp>;".

var (
	tsPattern = regexp.MustCompile(`ts=([^,]+)`)
	v1Pattern = regexp.MustCompile(`v1=([^,]+)`)
)

// validSignature checks the x-signature header against the shared webhook
// secret. An empty secret or a malformed header reports false.
func validSignature(signature, requestID, dataID, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}

	ts, hash := parseSignatureHeader(signature)
	if ts == "" || hash == "" {
		return false
	}

	expected := signManifest(buildManifest(dataID, requestID, ts), secret)
	return hmac.Equal([]byte(hash), []byte(expected))
}

// parseSignatureHeader extracts the ts and v1 values.
func parseSignatureHeader(header string) (ts, hash string) {
	if m := tsPattern.FindStringSubmatch(header); len(m) > 1 {
		ts = m[1]
	}
	if m := v1Pattern.FindStringSubmatch(header); len(m) > 1 {
		hash = m[1]
	}
	return ts, hash
}

// buildManifest constructs the signed string from the parts that are present.
func buildManifest(dataID, requestID, ts string) string {
	var parts []string
	if dataID != "" {
		parts = append(parts, "id:"+dataID)
	}
	if requestID != "" {
		parts = append(parts, "request-id:"+requestID)
	}
	if ts != "" {
		parts = append(parts, "ts:"+ts)
	}
	return strings.Join(parts, ";") + ";"
}

// signManifest computes the lowercase hex HMAC-SHA256 of the manifest.
func signManifest(manifest, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(manifest))
	return hex.EncodeToString(h.Sum(nil))
}
