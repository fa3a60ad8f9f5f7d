package tx

import (
	"fmt"

	"github.com/Vexa-Labs/vexa-ledger/pkg/crypto"
	"github.com/Vexa-Labs/vexa-ledger/pkg/types"
)

// Builder constructs transactions incrementally.
type Builder struct {
	tx *Transaction
}

// NewBuilder creates a new transaction builder.
func NewBuilder() *Builder {
	return &Builder{
		tx: &Transaction{Version: 1},
	}
}

// AddInput adds an input claiming a previous output.
func (b *Builder) AddInput(prevOut types.Outpoint) *Builder {
	b.tx.Inputs = append(b.tx.Inputs, Input{PrevOut: prevOut})
	return b
}

// AddOutput adds an output paying value to the given compressed public key.
func (b *Builder) AddOutput(value int64, pubKey []byte) *Builder {
	b.tx.Outputs = append(b.tx.Outputs, Output{Value: value, PubKey: pubKey})
	return b
}

// SetLockTime sets the transaction lock time.
func (b *Builder) SetLockTime(lockTime uint64) *Builder {
	b.tx.LockTime = lockTime
	return b
}

// Sign signs every input with the provided private key (single-key
// spending). Each input gets its own position-bound signature.
func (b *Builder) Sign(key *crypto.PrivateKey) error {
	for i := range b.tx.Inputs {
		hash := b.tx.SigHash(i)
		sig, err := key.Sign(hash[:])
		if err != nil {
			return fmt.Errorf("sign input %d: %w", i, err)
		}
		b.tx.Inputs[i].Signature = sig
	}
	return nil
}

// SignMulti signs each input with the key that owns its outpoint.
// signers maps each input's outpoint to the private key that can spend it.
func (b *Builder) SignMulti(signers map[types.Outpoint]*crypto.PrivateKey) error {
	for i := range b.tx.Inputs {
		key, ok := signers[b.tx.Inputs[i].PrevOut]
		if !ok {
			return fmt.Errorf("no signer for input %d outpoint %s", i, b.tx.Inputs[i].PrevOut)
		}
		hash := b.tx.SigHash(i)
		sig, err := key.Sign(hash[:])
		if err != nil {
			return fmt.Errorf("sign input %d: %w", i, err)
		}
		b.tx.Inputs[i].Signature = sig
	}
	return nil
}

// Build returns the constructed transaction.
// Does NOT validate — call tx.Validate() separately.
func (b *Builder) Build() *Transaction {
	return b.tx
}
