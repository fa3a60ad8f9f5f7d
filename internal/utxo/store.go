package utxo

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/Vexa-Labs/vexa-ledger/internal/storage"
	"github.com/Vexa-Labs/vexa-ledger/pkg/tx"
	"github.com/Vexa-Labs/vexa-ledger/pkg/types"
)

// prefixUTXO keys persisted entries: u/<txid><index> -> Output JSON.
var prefixUTXO = []byte("u/")

// Store persists pool snapshots in a storage.DB. The validator itself only
// ever works on an in-memory Pool; the store exists so a host can carry
// the pool between processing rounds.
type Store struct {
	db storage.DB
}

// NewStore creates a UTXO store backed by the given database.
func NewStore(db storage.DB) *Store {
	return &Store{db: db}
}

// utxoKey builds a storage key for an outpoint: "u/" + txid(32) + index(4).
func utxoKey(op types.Outpoint) []byte {
	key := make([]byte, len(prefixUTXO)+types.HashSize+4)
	copy(key, prefixUTXO)
	copy(key[len(prefixUTXO):], op.TxID[:])
	binary.BigEndian.PutUint32(key[len(prefixUTXO)+types.HashSize:], op.Index)
	return key
}

// Get retrieves a persisted output by its outpoint.
func (s *Store) Get(op types.Outpoint) (tx.Output, error) {
	data, err := s.db.Get(utxoKey(op))
	if err != nil {
		return tx.Output{}, fmt.Errorf("utxo get: %w", err)
	}
	var out tx.Output
	if err := json.Unmarshal(data, &out); err != nil {
		return tx.Output{}, fmt.Errorf("utxo unmarshal: %w", err)
	}
	return out, nil
}

// Put persists a single entry.
func (s *Store) Put(op types.Outpoint, out tx.Output) error {
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("utxo marshal: %w", err)
	}
	if err := s.db.Put(utxoKey(op), data); err != nil {
		return fmt.Errorf("utxo put: %w", err)
	}
	return nil
}

// Delete removes a persisted entry.
func (s *Store) Delete(op types.Outpoint) error {
	if err := s.db.Delete(utxoKey(op)); err != nil {
		return fmt.Errorf("utxo delete: %w", err)
	}
	return nil
}

// Has checks if an entry exists for the given outpoint.
func (s *Store) Has(op types.Outpoint) (bool, error) {
	return s.db.Has(utxoKey(op))
}

// Load reads every persisted entry into a fresh in-memory pool.
func (s *Store) Load() (*Pool, error) {
	pool := NewPool()
	err := s.db.ForEach(prefixUTXO, func(key, value []byte) error {
		// Key layout: "u/" + txid(32) + index(4).
		off := len(prefixUTXO)
		if len(key) != off+types.HashSize+4 {
			return fmt.Errorf("malformed utxo key %q", key)
		}
		var op types.Outpoint
		copy(op.TxID[:], key[off:off+types.HashSize])
		op.Index = binary.BigEndian.Uint32(key[off+types.HashSize:])

		var out tx.Output
		if err := json.Unmarshal(value, &out); err != nil {
			return fmt.Errorf("utxo unmarshal: %w", err)
		}
		pool.Add(op, out)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load pool: %w", err)
	}
	return pool, nil
}

// Save replaces the persisted snapshot with the given pool's entries.
// Stale entries not present in the pool are deleted first.
func (s *Store) Save(pool *Pool) error {
	var stale [][]byte
	err := s.db.ForEach(prefixUTXO, func(key, _ []byte) error {
		off := len(prefixUTXO)
		if len(key) != off+types.HashSize+4 {
			return nil
		}
		var op types.Outpoint
		copy(op.TxID[:], key[off:off+types.HashSize])
		op.Index = binary.BigEndian.Uint32(key[off+types.HashSize:])
		if !pool.Contains(op) {
			k := make([]byte, len(key))
			copy(k, key)
			stale = append(stale, k)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan pool snapshot: %w", err)
	}
	for _, key := range stale {
		if err := s.db.Delete(key); err != nil {
			return fmt.Errorf("delete stale utxo: %w", err)
		}
	}

	return pool.ForEach(func(op types.Outpoint, out tx.Output) error {
		return s.Put(op, out)
	})
}
