package tx

import (
	"errors"
	"fmt"
	"math"

	"github.com/Vexa-Labs/vexa-ledger/config"
	"github.com/Vexa-Labs/vexa-ledger/pkg/crypto"
	"github.com/Vexa-Labs/vexa-ledger/pkg/types"
)

// Structural validation errors.
var (
	ErrNoInputs       = errors.New("transaction has no inputs")
	ErrNoOutputs      = errors.New("transaction has no outputs")
	ErrDuplicateInput = errors.New("duplicate input")
	ErrOutputOverflow = errors.New("output values overflow")
	ErrNegativeOutput = errors.New("output value is negative")
	ErrMissingPubKey  = errors.New("output missing public key")
	ErrMissingSig     = errors.New("input missing signature")
	ErrTooManyInputs  = errors.New("too many inputs")
	ErrTooManyOutputs = errors.New("too many outputs")
)

// Validate checks transaction structure and basic rules.
// This does NOT check UTXO existence or signatures (both require the pool).
func (tx *Transaction) Validate() error {
	if len(tx.Inputs) == 0 {
		return ErrNoInputs
	}
	if len(tx.Outputs) == 0 {
		return ErrNoOutputs
	}
	if len(tx.Inputs) > config.MaxTxInputs {
		return fmt.Errorf("%w: %d inputs, max %d", ErrTooManyInputs, len(tx.Inputs), config.MaxTxInputs)
	}
	if len(tx.Outputs) > config.MaxTxOutputs {
		return fmt.Errorf("%w: %d outputs, max %d", ErrTooManyOutputs, len(tx.Outputs), config.MaxTxOutputs)
	}

	// Check for duplicate inputs.
	seen := make(map[types.Outpoint]bool, len(tx.Inputs))
	for i, in := range tx.Inputs {
		if seen[in.PrevOut] {
			return fmt.Errorf("input %d: %w", i, ErrDuplicateInput)
		}
		seen[in.PrevOut] = true
	}

	for i, in := range tx.Inputs {
		if len(in.Signature) == 0 {
			return fmt.Errorf("input %d: %w", i, ErrMissingSig)
		}
	}

	// Validate outputs.
	var totalOutput int64
	for i, out := range tx.Outputs {
		if out.Value < 0 {
			return fmt.Errorf("output %d: %w", i, ErrNegativeOutput)
		}
		if len(out.PubKey) != crypto.CompressedPubKeySize {
			return fmt.Errorf("output %d: %w: got %d bytes, want %d",
				i, ErrMissingPubKey, len(out.PubKey), crypto.CompressedPubKeySize)
		}
		if totalOutput > math.MaxInt64-out.Value {
			return fmt.Errorf("output %d: %w", i, ErrOutputOverflow)
		}
		totalOutput += out.Value
	}

	return nil
}

// TotalOutputValue returns the sum of all output values.
// Returns an error if the sum overflows int64.
func (tx *Transaction) TotalOutputValue() (int64, error) {
	var total int64
	for _, out := range tx.Outputs {
		if out.Value >= 0 && total > math.MaxInt64-out.Value {
			return 0, fmt.Errorf("output value overflow")
		}
		total += out.Value
	}
	return total, nil
}
