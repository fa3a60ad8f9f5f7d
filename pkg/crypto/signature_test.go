package crypto

import (
	"bytes"
	"testing"
)

func TestSignVerify(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	hash := Hash([]byte("hello"))
	sig, err := key.Sign(hash[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if !VerifySignature(hash[:], sig, key.PublicKey()) {
		t.Error("valid signature should verify")
	}
}

func TestVerifyWrongKey(t *testing.T) {
	key1, _ := GenerateKey()
	key2, _ := GenerateKey()

	hash := Hash([]byte("payload"))
	sig, err := key1.Sign(hash[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if VerifySignature(hash[:], sig, key2.PublicKey()) {
		t.Error("signature should not verify under a different key")
	}
}

func TestVerifyWrongMessage(t *testing.T) {
	key, _ := GenerateKey()

	hash := Hash([]byte("original"))
	sig, _ := key.Sign(hash[:])

	other := Hash([]byte("tampered"))
	if VerifySignature(other[:], sig, key.PublicKey()) {
		t.Error("signature should not verify for a different message")
	}
}

func TestVerifyGarbageInputs(t *testing.T) {
	key, _ := GenerateKey()
	hash := Hash([]byte("x"))

	// Malformed signature and pubkey must yield false, not panic.
	if VerifySignature(hash[:], []byte{0x01, 0x02}, key.PublicKey()) {
		t.Error("garbage signature should not verify")
	}
	sig, _ := key.Sign(hash[:])
	if VerifySignature(hash[:], sig, []byte{0xff}) {
		t.Error("garbage pubkey should not verify")
	}
	if VerifySignature(hash[:], nil, nil) {
		t.Error("nil inputs should not verify")
	}
}

func TestPrivateKeyFromBytes(t *testing.T) {
	key, _ := GenerateKey()
	restored, err := PrivateKeyFromBytes(key.Serialize())
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes: %v", err)
	}
	if !bytes.Equal(restored.PublicKey(), key.PublicKey()) {
		t.Error("restored key should derive the same public key")
	}

	if _, err := PrivateKeyFromBytes([]byte{0x01}); err == nil {
		t.Error("expected error for short secret")
	}
}

func TestSignRejectsBadHashLength(t *testing.T) {
	key, _ := GenerateKey()
	if _, err := key.Sign([]byte("short")); err == nil {
		t.Error("expected error for non-32-byte hash")
	}
}
