package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(raw []byte, deliveryID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(raw)
	mac.Write([]byte(deliveryID))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	raw := []byte(`{"cid":"LVLT-100","ticket_number":"TKT-1"}`)

	good := sign(raw, "d-1", "s3cret")
	if !verifySignature(good, "d-1", raw, "s3cret") {
		t.Error("valid signature rejected")
	}
	if verifySignature(good, "d-2", raw, "s3cret") {
		t.Error("signature accepted for a different delivery id")
	}
	if verifySignature(good, "d-1", append(raw, '!'), "s3cret") {
		t.Error("signature accepted for a tampered body")
	}
	if verifySignature(good, "d-1", raw, "other") {
		t.Error("signature accepted with the wrong secret")
	}
	if verifySignature("not-prefixed", "d-1", raw, "s3cret") {
		t.Error("signature without sha256= prefix accepted")
	}
}
