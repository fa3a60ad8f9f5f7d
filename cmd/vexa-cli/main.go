// vexa-cli drives the Vexa ledger core: it seeds and inspects the
// persisted UTXO pool and submits candidate batches for acceptance.
//
// Usage:
//
//	vexa-cli keygen                  Generate a mnemonic and first address
//	vexa-cli pool init <seed.json>   Seed the pool from a JSON entry list
//	vexa-cli pool show               Print the current pool entries
//	vexa-cli submit <batch.json>     Validate a batch and persist the result
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Vexa-Labs/vexa-ledger/config"
	"github.com/Vexa-Labs/vexa-ledger/internal/ledger"
	"github.com/Vexa-Labs/vexa-ledger/internal/log"
	"github.com/Vexa-Labs/vexa-ledger/internal/storage"
	"github.com/Vexa-Labs/vexa-ledger/internal/utxo"
	"github.com/Vexa-Labs/vexa-ledger/internal/wallet"
	"github.com/Vexa-Labs/vexa-ledger/pkg/tx"
	"github.com/Vexa-Labs/vexa-ledger/pkg/types"
)

func main() {
	cfg, flags, err := config.Load()
	if err != nil {
		fatal(err)
	}
	log.Init(cfg.Log.Level, cfg.Log.JSON)

	if flags.Help || len(flags.Args) == 0 {
		usage()
		if len(flags.Args) == 0 && !flags.Help {
			os.Exit(1)
		}
		return
	}

	switch flags.Args[0] {
	case "keygen":
		err = cmdKeygen()
	case "pool":
		err = cmdPool(cfg, flags.Args[1:])
	case "submit":
		err = cmdSubmit(cfg, flags.Args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flags.Args[0])
		usage()
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `vexa-cli [flags] <command>

Commands:
  keygen                  Generate a mnemonic and its first address
  pool init <seed.json>   Seed the pool database from a JSON entry list
  pool show               Print the current pool entries
  submit <batch.json>     Validate a candidate batch and persist the result

Flags:
  --datadir <dir>    Data directory (default ~/.vexa)
  --config <file>    Config file path
  --log-level <lvl>  debug, info, warn, error
  --log-json         Emit JSON logs`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// cmdKeygen generates a fresh mnemonic and prints the first derived address.
func cmdKeygen() error {
	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		return err
	}
	account, err := wallet.AccountFromMnemonic(mnemonic, "", 0, 0)
	if err != nil {
		return err
	}
	fmt.Printf("mnemonic: %s\n", mnemonic)
	fmt.Printf("address:  %s\n", account.Address)
	fmt.Printf("pubkey:   %x\n", account.PublicKey())
	return nil
}

// poolEntry is the JSON form of one seeded pool entry.
type poolEntry struct {
	Outpoint types.Outpoint `json:"outpoint"`
	Output   tx.Output      `json:"output"`
}

func cmdPool(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("pool needs a subcommand: init or show")
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	store := utxo.NewStore(db)

	switch args[0] {
	case "init":
		if len(args) < 2 {
			return fmt.Errorf("pool init needs a seed file")
		}
		return poolInit(store, args[1])
	case "show":
		return poolShow(store)
	default:
		return fmt.Errorf("unknown pool subcommand %q", args[0])
	}
}

func poolInit(store *utxo.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var entries []poolEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	pool := utxo.NewPool()
	for _, e := range entries {
		if e.Output.Value < 0 {
			return fmt.Errorf("entry %s: negative value %d", e.Outpoint, e.Output.Value)
		}
		pool.Add(e.Outpoint, e.Output)
	}
	if err := store.Save(pool); err != nil {
		return err
	}
	fmt.Printf("pool seeded with %d entries (total %d)\n", pool.Len(), pool.TotalValue())
	return nil
}

func poolShow(store *utxo.Store) error {
	pool, err := store.Load()
	if err != nil {
		return err
	}
	err = pool.ForEach(func(op types.Outpoint, out tx.Output) error {
		fmt.Printf("%s  value=%d  owner=%s\n", op, out.Value, out.Owner())
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("%d entries, total value %d\n", pool.Len(), pool.TotalValue())
	return nil
}

// batchFile is the JSON form of a candidate batch.
type batchFile struct {
	Transactions []*tx.Transaction `json:"transactions"`
}

func cmdSubmit(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("submit needs a batch file")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read batch file: %w", err)
	}
	var batch batchFile
	if err := json.Unmarshal(data, &batch); err != nil {
		return fmt.Errorf("parse batch file: %w", err)
	}
	if len(batch.Transactions) > cfg.Ledger.MaxBatchSize {
		return fmt.Errorf("batch has %d candidates, max %d", len(batch.Transactions), cfg.Ledger.MaxBatchSize)
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	store := utxo.NewStore(db)

	pool, err := store.Load()
	if err != nil {
		return err
	}

	validator := ledger.New(pool)
	accepted := validator.AcceptBatch(batch.Transactions)

	// The accepted list and resulting pool state commit together; until
	// Save succeeds the previous snapshot remains the truth.
	if err := store.Save(validator.Pool()); err != nil {
		return fmt.Errorf("persist pool: %w", err)
	}

	for _, t := range accepted {
		fmt.Println(t.Hash())
	}
	fmt.Printf("accepted %d of %d\n", len(accepted), len(batch.Transactions))
	return nil
}

func openDB(cfg *config.Config) (storage.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create datadir: %w", err)
	}
	return storage.NewBadger(cfg.DBPath())
}
