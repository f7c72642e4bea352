package cart

import (
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var bucketCarts = []byte("carts")

// Store snapshots carts to bbolt keyed by session id, so an in-progress
// cart survives a page reload or a server restart.
type Store struct {
	db *bolt.DB
}

// NewStore opens the cart snapshot file under workdir/data.
func NewStore(workdir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(workdir, "data"), 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	path := filepath.Join(workdir, "data", "carts.bolt")
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open cart store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCarts)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "init cart bucket")
	}
	return &Store{db: db}, nil
}

// NewSessionID mints an opaque cart session identifier.
func (s *Store) NewSessionID() string {
	return random.String(24, random.Alphanumeric)
}

// Load rehydrates a session's cart. An unknown session yields an empty
// cart, not an error.
func (s *Store) Load(sessionID string) (Cart, error) {
	var c Cart
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketCarts).Get([]byte(sessionID))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &c)
	})
	if err != nil {
		return Cart{}, errors.Wrap(err, "load cart")
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return c, nil
}

// Mutate loads the session's cart, applies fn and snapshots the result in
// one transaction. Every mutation persists, per the survives-reload
// contract.
func (s *Store) Mutate(sessionID string, fn func(*Cart)) (Cart, error) {
	var c Cart
	err := s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketCarts)
		if data := bk.Get([]byte(sessionID)); data != nil {
			if err := json.Unmarshal(data, &c); err != nil {
				return err
			}
		}
		fn(&c)
		if c.Items == nil {
			c.Items = []Item{}
		}
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		return bk.Put([]byte(sessionID), data)
	})
	if err != nil {
		return Cart{}, errors.Wrap(err, "mutate cart")
	}
	return c, nil
}

// Clear drops a session's snapshot (e.g. after checkout).
func (s *Store) Clear(sessionID string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCarts).Delete([]byte(sessionID))
	})
	return errors.Wrap(err, "clear cart")
}

func (s *Store) Close() error {
	return s.db.Close()
}
