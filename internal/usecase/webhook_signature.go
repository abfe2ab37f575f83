package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func hmacSHA256Hex(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// verifyOrionPaySignature checks X-Webhook-Signature, the hex HMAC-SHA256 of the raw body.
func verifyOrionPaySignature(secret string, body []byte, signature string) bool {
	sig := strings.ToLower(strings.TrimSpace(signature))
	sig = strings.TrimPrefix(sig, "sha256=")
	if sig == "" {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(hmacSHA256Hex(secret, body)))
}

// parseMercadoPagoSignature splits an x-signature header of the form "ts=...,v1=...".
func parseMercadoPagoSignature(header string) (ts, v1 string) {
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "ts":
			ts = strings.TrimSpace(v)
		case "v1":
			v1 = strings.TrimSpace(v)
		}
	}
	return ts, v1
}

// mercadoPagoManifest builds the signed template; parts without a value are left out.
func mercadoPagoManifest(dataID, requestID, ts string) string {
	var b strings.Builder
	if dataID != "" {
		b.WriteString("id:" + strings.ToLower(dataID) + ";")
	}
	if requestID != "" {
		b.WriteString("request-id:" + requestID + ";")
	}
	if ts != "" {
		b.WriteString("ts:" + ts + ";")
	}
	return b.String()
}

func verifyMercadoPagoSignature(secret, header, requestID, dataID string) bool {
	ts, v1 := parseMercadoPagoSignature(header)
	if ts == "" || v1 == "" {
		return false
	}
	expected := hmacSHA256Hex(secret, []byte(mercadoPagoManifest(dataID, requestID, ts)))
	return hmac.Equal([]byte(strings.ToLower(v1)), []byte(expected))
}
