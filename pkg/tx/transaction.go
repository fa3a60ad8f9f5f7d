// Package tx defines the ledger transaction type.
package tx

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"

	"github.com/Vexa-Labs/vexa-ledger/pkg/crypto"
	"github.com/Vexa-Labs/vexa-ledger/pkg/types"
)

// Transaction represents a ledger transaction: an ordered list of inputs
// claiming existing unspent outputs and an ordered list of newly created
// outputs.
type Transaction struct {
	Version  uint32   `json:"version"`
	Inputs   []Input  `json:"inputs"`
	Outputs  []Output `json:"outputs"`
	LockTime uint64   `json:"locktime"`
}

// Input references a UTXO being spent. The signature authorizes this
// transaction under the public key recorded in the claimed output; inputs
// carry no key of their own.
type Input struct {
	PrevOut   types.Outpoint `json:"prevout"`
	Signature []byte         `json:"signature"`
}

// inputJSON is the JSON representation of Input with a hex-encoded signature.
type inputJSON struct {
	PrevOut   types.Outpoint `json:"prevout"`
	Signature *string        `json:"signature"`
}

// MarshalJSON encodes the input with a hex-encoded signature.
func (in Input) MarshalJSON() ([]byte, error) {
	j := inputJSON{PrevOut: in.PrevOut}
	if in.Signature != nil {
		s := hex.EncodeToString(in.Signature)
		j.Signature = &s
	}
	return json.Marshal(j)
}

// UnmarshalJSON decodes an input with a hex-encoded signature.
func (in *Input) UnmarshalJSON(data []byte) error {
	var j inputJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	in.PrevOut = j.PrevOut
	if j.Signature != nil {
		b, err := hex.DecodeString(*j.Signature)
		if err != nil {
			return err
		}
		in.Signature = b
	}
	return nil
}

// Output defines a new UTXO: a value in base units and the compressed
// public key that owns it. Value is signed so that a malformed negative
// amount is representable and can be rejected by validation.
type Output struct {
	Value  int64  `json:"value"`
	PubKey []byte `json:"pubkey"`
}

// outputJSON is the JSON representation of Output with a hex-encoded pubkey.
type outputJSON struct {
	Value  int64   `json:"value"`
	PubKey *string `json:"pubkey"`
}

// MarshalJSON encodes the output with a hex-encoded pubkey.
func (out Output) MarshalJSON() ([]byte, error) {
	j := outputJSON{Value: out.Value}
	if out.PubKey != nil {
		p := hex.EncodeToString(out.PubKey)
		j.PubKey = &p
	}
	return json.Marshal(j)
}

// UnmarshalJSON decodes an output with a hex-encoded pubkey.
func (out *Output) UnmarshalJSON(data []byte) error {
	var j outputJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	out.Value = j.Value
	if j.PubKey != nil {
		b, err := hex.DecodeString(*j.PubKey)
		if err != nil {
			return err
		}
		out.PubKey = b
	}
	return nil
}

// Owner returns the address derived from the output's owning public key.
func (out Output) Owner() types.Address {
	return crypto.AddressFromPubKey(out.PubKey)
}

// Hash computes the transaction ID (BLAKE3 hash of the serialized signing
// data). Signatures are excluded to avoid a circular dependency.
func (tx *Transaction) Hash() types.Hash {
	return crypto.Hash(tx.SigningBytes())
}

// SigningBytes returns the canonical byte representation used for signing.
// Format: version(4) | input_count(4) | [prevout(36)]... |
// output_count(4) | [value(8) + pubkey_len(4) + pubkey]... | locktime(8)
func (tx *Transaction) SigningBytes() []byte {
	var buf []byte

	buf = binary.LittleEndian.AppendUint32(buf, tx.Version)

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		buf = append(buf, in.PrevOut.TxID[:]...)
		buf = binary.LittleEndian.AppendUint32(buf, in.PrevOut.Index)
	}

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(out.Value))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(out.PubKey)))
		buf = append(buf, out.PubKey...)
	}

	buf = binary.LittleEndian.AppendUint64(buf, tx.LockTime)

	return buf
}

// SigHash returns the digest an input's signature must authorize.
// The input index is appended to the signing bytes so each signature is
// bound to its position and cannot be moved to another input.
func (tx *Transaction) SigHash(index int) types.Hash {
	buf := tx.SigningBytes()
	buf = binary.LittleEndian.AppendUint32(buf, uint32(index))
	return crypto.Hash(buf)
}
