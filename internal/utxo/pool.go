// Package utxo manages the set of unspent transaction outputs.
package utxo

import (
	"errors"
	"fmt"

	"github.com/Vexa-Labs/vexa-ledger/pkg/tx"
	"github.com/Vexa-Labs/vexa-ledger/pkg/types"
)

// ErrNotFound is returned by Lookup when no entry exists for an outpoint.
var ErrNotFound = errors.New("utxo not found")

// Pool is an in-memory mapping from outpoint to the unspent output it
// identifies. Outpoints have value semantics, so a reconstructed key
// always matches the stored entry. At most one entry exists per outpoint.
//
// Pool is not safe for concurrent use; callers embedding it in a
// concurrent host must synchronize externally.
type Pool struct {
	entries map[types.Outpoint]tx.Output
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{entries: make(map[types.Outpoint]tx.Output)}
}

// NewPoolFrom creates an independent copy of the given pool. The copy
// shares no backing storage with the source, so later mutation of either
// pool cannot disturb the other.
func NewPoolFrom(src *Pool) *Pool {
	p := &Pool{entries: make(map[types.Outpoint]tx.Output, len(src.entries))}
	for op, out := range src.entries {
		p.entries[op] = out
	}
	return p
}

// Clone returns an independent copy of the pool.
func (p *Pool) Clone() *Pool {
	return NewPoolFrom(p)
}

// Contains reports whether an entry exists for the given outpoint.
func (p *Pool) Contains(op types.Outpoint) bool {
	_, ok := p.entries[op]
	return ok
}

// Lookup returns the output recorded for the given outpoint.
// Returns ErrNotFound when no entry exists.
func (p *Pool) Lookup(op types.Outpoint) (tx.Output, error) {
	out, ok := p.entries[op]
	if !ok {
		return tx.Output{}, fmt.Errorf("%w: %s", ErrNotFound, op)
	}
	return out, nil
}

// Add inserts or overwrites the entry for the given outpoint.
func (p *Pool) Add(op types.Outpoint, out tx.Output) {
	p.entries[op] = out
}

// Remove deletes the entry for the given outpoint. Removing an absent
// outpoint is a safe no-op; the validator only removes entries it has
// just confirmed present.
func (p *Pool) Remove(op types.Outpoint) {
	delete(p.entries, op)
}

// Len returns the number of entries in the pool.
func (p *Pool) Len() int {
	return len(p.entries)
}

// Outpoints returns the outpoints of all entries, in no particular order.
func (p *Pool) Outpoints() []types.Outpoint {
	ops := make([]types.Outpoint, 0, len(p.entries))
	for op := range p.entries {
		ops = append(ops, op)
	}
	return ops
}

// ForEach calls fn for every entry in the pool, in no particular order.
// A non-nil error from fn stops iteration and is returned.
func (p *Pool) ForEach(fn func(types.Outpoint, tx.Output) error) error {
	for op, out := range p.entries {
		if err := fn(op, out); err != nil {
			return err
		}
	}
	return nil
}

// TotalValue returns the sum of all entry values.
func (p *Pool) TotalValue() int64 {
	var total int64
	for _, out := range p.entries {
		total += out.Value
	}
	return total
}
