// Package ledger implements transaction acceptance against the UTXO pool.
package ledger

import (
	"errors"
	"fmt"
	"math"

	"github.com/Vexa-Labs/vexa-ledger/internal/log"
	"github.com/Vexa-Labs/vexa-ledger/internal/utxo"
	"github.com/Vexa-Labs/vexa-ledger/pkg/crypto"
	"github.com/Vexa-Labs/vexa-ledger/pkg/tx"
	"github.com/Vexa-Labs/vexa-ledger/pkg/types"
)

// Validation errors. These classify why a candidate was rejected; callers
// that only need the verdict use IsValid.
var (
	ErrMissingInput   = errors.New("input UTXO not in pool")
	ErrBadSignature   = errors.New("input signature invalid")
	ErrDuplicateInput = errors.New("outpoint claimed twice")
	ErrNegativeOutput = errors.New("output value is negative")
	ErrOverspend      = errors.New("output total exceeds input total")
	ErrInputOverflow  = errors.New("input values overflow")
	ErrOutputOverflow = errors.New("output values overflow")
)

// Validator checks candidate transactions against a privately owned UTXO
// pool and applies accepted ones. The pool passed to New is copied, so the
// caller's pool is never aliased or mutated.
//
// A Validator instance is not safe for concurrent use.
type Validator struct {
	pool *utxo.Pool
}

// New creates a validator over an independent copy of the given pool.
func New(pool *utxo.Pool) *Validator {
	return &Validator{pool: utxo.NewPoolFrom(pool)}
}

// Pool returns a copy of the validator's current pool state.
func (v *Validator) Pool() *utxo.Pool {
	return v.pool.Clone()
}

// IsValid reports whether the transaction is acceptable against the
// current pool state. It never mutates the pool.
func (v *Validator) IsValid(t *tx.Transaction) bool {
	return v.Check(t) == nil
}

// Check is the error-reporting form of IsValid. A transaction is valid iff:
//
//  1. every claimed outpoint exists in the pool,
//  2. every input signature verifies under the public key recorded in the
//     claimed output,
//  3. no outpoint is claimed twice within the transaction,
//  4. every output value is non-negative, and
//  5. the input total is at least the output total (any surplus is a fee,
//     discarded by this core).
//
// Presence (rule 1) is established for all inputs before any signature is
// checked, so a dangling reference is a clean rejection, never a fault.
func (v *Validator) Check(t *tx.Transaction) error {
	// Rule 1: all claimed outputs must be present.
	for i, in := range t.Inputs {
		if !v.pool.Contains(in.PrevOut) {
			return fmt.Errorf("input %d (%s): %w", i, in.PrevOut, ErrMissingInput)
		}
	}

	// Rule 2: signatures, under the key the pool records for each claim.
	// Rule 5 needs the same lookups, so the input total accumulates here.
	var totalInput int64
	for i, in := range t.Inputs {
		out, err := v.pool.Lookup(in.PrevOut)
		if err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		hash := t.SigHash(i)
		if !crypto.VerifySignature(hash[:], in.Signature, out.PubKey) {
			return fmt.Errorf("input %d (%s): %w", i, in.PrevOut, ErrBadSignature)
		}
		if totalInput > math.MaxInt64-out.Value {
			return fmt.Errorf("input %d: %w", i, ErrInputOverflow)
		}
		totalInput += out.Value
	}

	// Rule 3: no double-spend within the transaction.
	claimed := make(map[types.Outpoint]bool, len(t.Inputs))
	for i, in := range t.Inputs {
		if claimed[in.PrevOut] {
			return fmt.Errorf("input %d (%s): %w", i, in.PrevOut, ErrDuplicateInput)
		}
		claimed[in.PrevOut] = true
	}

	// Rule 4: non-negative outputs.
	for i, out := range t.Outputs {
		if out.Value < 0 {
			return fmt.Errorf("output %d: %w: %d", i, ErrNegativeOutput, out.Value)
		}
	}

	// Rule 5: value conservation.
	totalOutput, err := t.TotalOutputValue()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputOverflow, err)
	}
	if totalInput < totalOutput {
		return fmt.Errorf("%w: inputs=%d outputs=%d", ErrOverspend, totalInput, totalOutput)
	}

	return nil
}

// AcceptBatch processes candidate transactions in the order supplied and
// returns the accepted subset in acceptance order.
//
// Each candidate is checked against the current pool state, so a candidate
// sees the effects of every earlier acceptance in the same batch: spent
// claims are gone and newly created outputs are spendable. Conflicting
// claims resolve first-seen-wins; rejected candidates are not retried and
// leave the pool untouched. The pool mutates only after Check has passed,
// so no transaction is ever half-applied.
func (v *Validator) AcceptBatch(candidates []*tx.Transaction) []*tx.Transaction {
	accepted := make([]*tx.Transaction, 0, len(candidates))

	for _, t := range candidates {
		if err := v.Check(t); err != nil {
			log.Ledger.Debug().
				Str("tx", t.Hash().String()).
				Err(err).
				Msg("candidate rejected")
			continue
		}

		v.apply(t)
		accepted = append(accepted, t)
	}

	log.Ledger.Info().
		Int("candidates", len(candidates)).
		Int("accepted", len(accepted)).
		Int("pool_size", v.pool.Len()).
		Msg("batch processed")

	return accepted
}

// apply consumes the transaction's claims and records its outputs.
// The caller has already verified the transaction; every removed entry was
// just confirmed present by Check.
func (v *Validator) apply(t *tx.Transaction) {
	for _, in := range t.Inputs {
		v.pool.Remove(in.PrevOut)
	}
	txid := t.Hash()
	for i, out := range t.Outputs {
		v.pool.Add(types.Outpoint{TxID: txid, Index: uint32(i)}, out)
	}
}
