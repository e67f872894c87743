// Package storage persists games in BadgerDB so they survive server
// restarts. A game is stored as the move list played from the starting
// position; replaying it rebuilds the full game state.
package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// gamePrefix namespaces game records in the key space.
const gamePrefix = "game:"

// ErrNotFound is returned when no record exists for the requested id.
var ErrNotFound = errors.New("game not found")

// GameRecord is the persisted form of a game. FEN and Status are
// snapshots of the latest state so listings don't need a replay.
type GameRecord struct {
	ID        string    `json:"id"`
	FEN       string    `json:"fen"`
	Moves     []string  `json:"moves"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameStore wraps BadgerDB for game persistence.
type GameStore struct {
	db *badger.DB
}

// Open opens or creates the store in dir. An empty dir selects an
// in-memory database that vanishes on close; tests use that mode, and
// the server falls back to it when run without a database path.
func Open(dir string) (*GameStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &GameStore{db: db}, nil
}

// Close closes the database.
func (s *GameStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gamePrefix + id)
}

// Save writes the record, stamping UpdatedAt.
func (s *GameStore) Save(rec *GameRecord) error {
	rec.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
}

// Load reads the record for id, or ErrNotFound.
func (s *GameStore) Load(id string) (*GameRecord, error) {
	var rec GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// Delete removes the record for id, or returns ErrNotFound.
func (s *GameStore) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// List returns all stored games in key order.
func (s *GameStore) List() ([]*GameRecord, error) {
	var recs []*GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			recs = append(recs, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return recs, nil
}
