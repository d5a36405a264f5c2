// Package storage persists galleries in a badger key-value store so a
// batch-built gallery can be reopened by the search tools and the server.
package storage

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/hash"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/retrieval"
)

const (
	hashPrefix = "img:"
	configKey  = "meta:config"
)

// ErrConfigMismatch is returned when a hash produced under a different
// configuration is written into an existing store. Mixing widths would
// poison every later distance computation.
var ErrConfigMismatch = errors.New("storage: hash config differs from stored gallery config")

// BadgerConfig mirrors the knobs the tools expose for the store.
type BadgerConfig struct {
	Dir        string
	InMemory   bool
	SyncWrites bool
}

// GalleryStore is a badger-backed hash store.
type GalleryStore struct {
	db *badger.DB
}

type hashRecord struct {
	Packed []byte
	Bits   int
	Cfg    hash.Config
}

// Open opens or creates a store.
func Open(cfg BadgerConfig) (*GalleryStore, error) {
	opts := badger.DefaultOptions(cfg.Dir).
		WithInMemory(cfg.InMemory).
		WithSyncWrites(cfg.SyncWrites).
		WithLogger(nil)
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("")
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &GalleryStore{db: db}, nil
}

// Close releases the underlying database.
func (s *GalleryStore) Close() error {
	return s.db.Close()
}

// PutHash stores one gallery entry. The first write pins the store's
// configuration; later writes must match it.
func (s *GalleryStore) PutHash(id string, h *hash.Hash) error {
	stored, err := s.Config()
	if err != nil {
		return err
	}
	if stored != nil {
		if *stored != h.Config() {
			return fmt.Errorf("%w: store has %s, hash has %s", ErrConfigMismatch, stored.ID(), h.Config().ID())
		}
	} else if err := s.putConfig(h.Config()); err != nil {
		return err
	}

	value, err := encodeRecord(hashRecord{Packed: h.Packed(), Bits: h.BitLen(), Cfg: h.Config()})
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(hashPrefix+id), value)
	})
}

// PutGallery stores every entry of a gallery.
func (s *GalleryStore) PutGallery(g *retrieval.Gallery) error {
	for _, e := range g.Entries() {
		if err := s.PutHash(e.ID, e.Hash); err != nil {
			return fmt.Errorf("store %s: %w", e.ID, err)
		}
	}
	return nil
}

// LoadGallery reads every stored entry, ordered by id.
func (s *GalleryStore) LoadGallery() (*retrieval.Gallery, error) {
	gallery := retrieval.NewGallery()
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(hashPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := strings.TrimPrefix(string(item.Key()), hashPrefix)
			if err := item.Value(func(val []byte) error {
				rec, err := decodeRecord(val)
				if err != nil {
					return fmt.Errorf("decode %s: %w", id, err)
				}
				h, err := hash.FromPacked(rec.Packed, rec.Bits, rec.Cfg)
				if err != nil {
					return fmt.Errorf("rebuild %s: %w", id, err)
				}
				gallery.Add(id, h)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return gallery, nil
}

// Config returns the configuration the stored gallery was built under, or
// nil for an empty store.
func (s *GalleryStore) Config() (*hash.Config, error) {
	var cfg *hash.Config
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(configKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var decoded hash.Config
			if err := gob.NewDecoder(bytes.NewReader(val)).Decode(&decoded); err != nil {
				return err
			}
			cfg = &decoded
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *GalleryStore) putConfig(cfg hash.Config) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(configKey), buf.Bytes())
	})
}

func encodeRecord(rec hashRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRecord(val []byte) (hashRecord, error) {
	var rec hashRecord
	err := gob.NewDecoder(bytes.NewReader(val)).Decode(&rec)
	return rec, err
}
