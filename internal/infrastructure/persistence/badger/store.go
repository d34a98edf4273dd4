// Package badger persists the catalog in an embedded Badger key-value store,
// one key per record set.
package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
	"mediavault/internal/infrastructure/persistence/codec"
)

const (
	Driver    = "badger"
	keyPrefix = "catalog/"
)

type Config struct {
	Path     string
	InMemory bool
}

type Store struct {
	db *badger.DB
}

func New(cfg Config) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Driver() string { return Driver }

func (s *Store) Load(ctx context.Context) (*entity.CatalogDocument, error) {
	payloads := make(map[string][]byte, len(codec.Buckets))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, bucket := range codec.Buckets {
			item, err := txn.Get([]byte(keyPrefix + bucket))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			payloads[bucket] = value
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read badger: %w", err)
	}
	if len(payloads) == 0 {
		return nil, repository.ErrSnapshotNotFound
	}
	return codec.DecodeBuckets(payloads)
}

// Save writes the three keys in a single transaction.
func (s *Store) Save(ctx context.Context, doc *entity.CatalogDocument) error {
	payloads, err := codec.EncodeBuckets(doc)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		for _, bucket := range codec.Buckets {
			if err := txn.Set([]byte(keyPrefix+bucket), payloads[bucket]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write badger: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }
