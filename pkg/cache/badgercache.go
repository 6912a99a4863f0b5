package cache

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// BadgerConfig mirrors the shape of the teacher's store.Config, trimmed to
// the knobs a single-project analysis cache actually needs — there is no
// dictionary shard or vector index concern here, just key/value entries
// keyed by project-root-hash.
type BadgerConfig struct {
	DataDir        string
	InMemory       bool
	BlockCacheSize int64
	IndexCacheSize int64
	Compression    bool
	SyncWrites     bool
}

// DefaultBadgerConfig returns conservative defaults sized for a single
// analysis cache rather than the teacher's billion-node knowledge store.
func DefaultBadgerConfig(dataDir string) BadgerConfig {
	return BadgerConfig{
		DataDir:        dataDir,
		BlockCacheSize: 64 << 20,
		IndexCacheSize: 16 << 20,
		Compression:    true,
		SyncWrites:     false,
	}
}

func buildBadgerOptions(cfg BadgerConfig) badger.Options {
	if cfg.InMemory {
		opts := badger.DefaultOptions("")
		opts.InMemory = true
		opts.Logger = nil
		return opts
	}
	opts := badger.DefaultOptions(cfg.DataDir)
	opts.DetectConflicts = false
	opts.BlockCacheSize = cfg.BlockCacheSize
	opts.IndexCacheSize = cfg.IndexCacheSize
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil
	if cfg.Compression {
		opts.Compression = options.ZSTD
	} else {
		opts.Compression = options.None
	}
	return opts
}

// BadgerStore is the on-disk Store implementation, grounded on the
// teacher's pkg/meb/store.OpenBadgerDB config-building pattern and
// pkg/meb/content.go's txn.Set/txn.Get/ValueCopy access pattern.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a Badger-backed cache at the
// configured data directory.
func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	db, err := badger.Open(buildBadgerOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("cache: open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the underlying database handle.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}

func (b *BadgerStore) Get(key string) (Entry, bool, error) {
	var out Entry
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		decoded, err := decodeEntry(data)
		if err != nil {
			return err
		}
		out = decoded
		found = true
		return nil
	})
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache: get: %w", err)
	}
	return out, found, nil
}

func (b *BadgerStore) Put(key string, entry Entry) error {
	data, err := encodeEntry(entry)
	if err != nil {
		return fmt.Errorf("cache: encode entry: %w", err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("cache: put: %w", err)
	}
	return nil
}

func (b *BadgerStore) Delete(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("cache: delete: %w", err)
	}
	return nil
}
