package wallet

import (
	"fmt"

	"github.com/Vexa-Labs/vexa-ledger/pkg/crypto"
	"github.com/Vexa-Labs/vexa-ledger/pkg/tx"
	"github.com/Vexa-Labs/vexa-ledger/pkg/types"
)

// Account is a single derived key and its address.
type Account struct {
	Key     *crypto.PrivateKey
	Address types.Address
}

// NewAccount wraps an existing private key as an account.
func NewAccount(key *crypto.PrivateKey) *Account {
	return &Account{
		Key:     key,
		Address: crypto.AddressFromPubKey(key.PublicKey()),
	}
}

// AccountFromMnemonic derives the account at m/44'/7341'/account'/0/index
// from a BIP-39 mnemonic.
func AccountFromMnemonic(mnemonic, passphrase string, account, index uint32) (*Account, error) {
	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	derived, err := master.DeriveAccount(account, index)
	if err != nil {
		return nil, err
	}
	key, err := derived.PrivateKey()
	if err != nil {
		return nil, err
	}
	return NewAccount(key), nil
}

// PublicKey returns the account's compressed public key.
func (a *Account) PublicKey() []byte {
	return a.Key.PublicKey()
}

// SignTx signs every input of the transaction with the account key.
func (a *Account) SignTx(t *tx.Transaction) error {
	for i := range t.Inputs {
		hash := t.SigHash(i)
		sig, err := a.Key.Sign(hash[:])
		if err != nil {
			return fmt.Errorf("sign input %d: %w", i, err)
		}
		t.Inputs[i].Signature = sig
	}
	return nil
}
