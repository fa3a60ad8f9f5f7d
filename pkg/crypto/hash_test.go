package crypto

import (
	"testing"

	"github.com/Vexa-Labs/vexa-ledger/pkg/types"
)

func TestHashDeterministic(t *testing.T) {
	a := Hash([]byte("data"))
	b := Hash([]byte("data"))
	if a != b {
		t.Error("same input should produce the same hash")
	}

	c := Hash([]byte("other"))
	if a == c {
		t.Error("different inputs should produce different hashes")
	}
}

func TestAddressFromPubKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	addr := AddressFromPubKey(key.PublicKey())
	if addr.IsZero() {
		t.Error("derived address should not be zero")
	}

	// Address is the hash prefix of the pubkey.
	h := Hash(key.PublicKey())
	var want types.Address
	copy(want[:], h[:types.AddressSize])
	if addr != want {
		t.Errorf("address = %s, want %s", addr.Hex(), want.Hex())
	}
}
