package tx

import (
	"encoding/json"
	"testing"

	"github.com/Vexa-Labs/vexa-ledger/pkg/crypto"
	"github.com/Vexa-Labs/vexa-ledger/pkg/types"
)

func testKey(t *testing.T) *crypto.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return key
}

func TestHashExcludesSignatures(t *testing.T) {
	key := testKey(t)
	prevOut := types.Outpoint{TxID: types.Hash{0x01}, Index: 0}

	b := NewBuilder().
		AddInput(prevOut).
		AddOutput(1000, key.PublicKey())
	unsigned := b.Build().Hash()

	if err := b.Sign(key); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	signed := b.Build().Hash()

	if unsigned != signed {
		t.Error("signing must not change the transaction hash")
	}
}

func TestHashCoversFields(t *testing.T) {
	key := testKey(t)
	base := NewBuilder().
		AddInput(types.Outpoint{TxID: types.Hash{0x01}, Index: 0}).
		AddOutput(1000, key.PublicKey()).
		Build()

	differentValue := NewBuilder().
		AddInput(types.Outpoint{TxID: types.Hash{0x01}, Index: 0}).
		AddOutput(1001, key.PublicKey()).
		Build()
	if base.Hash() == differentValue.Hash() {
		t.Error("changing an output value must change the hash")
	}

	differentInput := NewBuilder().
		AddInput(types.Outpoint{TxID: types.Hash{0x01}, Index: 1}).
		AddOutput(1000, key.PublicKey()).
		Build()
	if base.Hash() == differentInput.Hash() {
		t.Error("changing an input outpoint must change the hash")
	}
}

func TestSigHashBindsInputPosition(t *testing.T) {
	key := testKey(t)
	transaction := NewBuilder().
		AddInput(types.Outpoint{TxID: types.Hash{0x01}, Index: 0}).
		AddInput(types.Outpoint{TxID: types.Hash{0x02}, Index: 0}).
		AddOutput(1000, key.PublicKey()).
		Build()

	if transaction.SigHash(0) == transaction.SigHash(1) {
		t.Error("each input position must have its own signing digest")
	}
}

func TestSignatureNotTransferableBetweenInputs(t *testing.T) {
	key := testKey(t)
	b := NewBuilder().
		AddInput(types.Outpoint{TxID: types.Hash{0x01}, Index: 0}).
		AddInput(types.Outpoint{TxID: types.Hash{0x02}, Index: 0}).
		AddOutput(1000, key.PublicKey())
	if err := b.Sign(key); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	transaction := b.Build()

	h0 := transaction.SigHash(0)
	h1 := transaction.SigHash(1)
	if !crypto.VerifySignature(h0[:], transaction.Inputs[0].Signature, key.PublicKey()) {
		t.Fatal("input 0 signature should verify at position 0")
	}
	if crypto.VerifySignature(h1[:], transaction.Inputs[0].Signature, key.PublicKey()) {
		t.Error("input 0 signature must not verify at position 1")
	}
}

func TestTransactionJSONRoundTrip(t *testing.T) {
	key := testKey(t)
	b := NewBuilder().
		AddInput(types.Outpoint{TxID: types.Hash{0xaa}, Index: 2}).
		AddOutput(750, key.PublicKey())
	if err := b.Sign(key); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	original := b.Build()

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Transaction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.Hash() != original.Hash() {
		t.Error("JSON round trip must preserve the transaction hash")
	}
	if len(back.Inputs) != 1 || len(back.Inputs[0].Signature) == 0 {
		t.Error("JSON round trip must preserve signatures")
	}
}
