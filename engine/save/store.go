package save

import (
	"errors"
	"fmt"

	bbolt "go.etcd.io/bbolt"
)

// ErrSlotNotFound is returned by Get for an empty slot.
var ErrSlotNotFound = errors.New("save slot not found")

// Store keeps save slots in a bbolt database, one bucket per game.
type Store struct {
	bolt *bbolt.DB
}

// Open opens or creates the save database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("savestore: open %s: %w", path, err)
	}
	return &Store{bolt: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	if s.bolt != nil {
		return s.bolt.Close()
	}
	return nil
}

// Path returns the filesystem path of the underlying database.
func (s *Store) Path() string {
	if s.bolt != nil {
		return s.bolt.Path()
	}
	return ""
}

// Put writes data to a slot, replacing what was there.
func (s *Store) Put(game, slot string, data []byte) error {
	err := s.bolt.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName(game))
		if err != nil {
			return err
		}
		return b.Put([]byte(slot), data)
	})
	if err != nil {
		return fmt.Errorf("savestore: put %s/%s: %w", game, slot, err)
	}
	return nil
}

// Get reads a slot. Missing slots return ErrSlotNotFound.
func (s *Store) Get(game, slot string) ([]byte, error) {
	var data []byte
	err := s.bolt.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName(game))
		if b == nil {
			return ErrSlotNotFound
		}
		v := b.Get([]byte(slot))
		if v == nil {
			return ErrSlotNotFound
		}
		// Values are only valid for the life of the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("savestore: get %s/%s: %w", game, slot, err)
	}
	return data, nil
}

// List returns a game's slot names in key order.
func (s *Store) List(game string) ([]string, error) {
	var slots []string
	err := s.bolt.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName(game))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			slots = append(slots, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("savestore: list %s: %w", game, err)
	}
	return slots, nil
}

// Delete removes a slot. Deleting an empty slot is not an error.
func (s *Store) Delete(game, slot string) error {
	err := s.bolt.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName(game))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(slot))
	})
	if err != nil {
		return fmt.Errorf("savestore: delete %s/%s: %w", game, slot, err)
	}
	return nil
}

func bucketName(game string) []byte {
	if game == "" {
		game = "untitled"
	}
	return []byte("game:" + game)
}
