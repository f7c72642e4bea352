package store

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/talkincode/craftstore/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	bucketProducts   = []byte("products")
	bucketCategories = []byte("categories")
	bucketOrders     = []byte("orders")
	bucketOperators  = []byte("operators")
	bucketSettings   = []byte("settings")
)

// boltDatabase is the pure key-value backend. Records are stored as JSON
// values keyed by big-endian id, so cursor order matches insertion order.
type boltDatabase struct {
	db *bolt.DB
}

// NewBoltDatabase opens (or creates) the bbolt file under workdir/data and
// ensures all buckets exist.
func NewBoltDatabase(name, workdir string) (Database, error) {
	if err := os.MkdirAll(filepath.Join(workdir, "data"), 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	path := filepath.Join(workdir, "data", name+".bolt")
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open bolt database")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketProducts, bucketCategories, bucketOrders, bucketOperators, bucketSettings} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "init bolt buckets")
	}
	return &boltDatabase{db: db}, nil
}

func (b *boltDatabase) Products() ProductStore    { return (*boltProducts)(b) }
func (b *boltDatabase) Categories() CategoryStore { return (*boltCategories)(b) }
func (b *boltDatabase) Orders() OrderStore        { return (*boltOrders)(b) }
func (b *boltDatabase) Admins() AdminStore        { return (*boltAdmins)(b) }
func (b *boltDatabase) Settings() SettingsStore   { return (*boltSettings)(b) }

func (b *boltDatabase) Close() error { return b.db.Close() }

func itob(id int64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))
	return buf[:]
}

func putJSON(bk *bolt.Bucket, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return bk.Put(key, data)
}

type boltProducts boltDatabase

func (s *boltProducts) Create(_ context.Context, p *domain.Product) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketProducts)
		if p.ID == 0 {
			seq, err := bk.NextSequence()
			if err != nil {
				return err
			}
			p.ID = int64(seq)
		}
		now := time.Now()
		p.CreatedAt, p.UpdatedAt = now, now
		return putJSON(bk, itob(p.ID), p)
	})
	return errors.Wrap(err, "create product")
}

func (s *boltProducts) Get(_ context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketProducts).Get(itob(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &p)
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, "query product")
	}
	return &p, nil
}

func (s *boltProducts) List(_ context.Context, category string) ([]domain.Product, error) {
	rows := make([]domain.Product, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketProducts).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var p domain.Product
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			if category != "" && p.Category != category {
				continue
			}
			rows = append(rows, p)
		}
		return nil
	})
	return rows, errors.Wrap(err, "query products")
}

func (s *boltProducts) Update(_ context.Context, p *domain.Product) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketProducts)
		data := bk.Get(itob(p.ID))
		if data == nil {
			return ErrNotFound
		}
		var existing domain.Product
		if err := json.Unmarshal(data, &existing); err != nil {
			return err
		}
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = time.Now()
		return putJSON(bk, itob(p.ID), p)
	})
	if IsNotFound(err) {
		return err
	}
	return errors.Wrap(err, "update product")
}

func (s *boltProducts) Delete(_ context.Context, id int64) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketProducts)
		if bk.Get(itob(id)) == nil {
			return ErrNotFound
		}
		return bk.Delete(itob(id))
	})
	if IsNotFound(err) {
		return err
	}
	return errors.Wrap(err, "delete product")
}

type boltCategories boltDatabase

func (s *boltCategories) Create(_ context.Context, cat *domain.Category) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketCategories)
		if cat.ID == 0 {
			seq, err := bk.NextSequence()
			if err != nil {
				return err
			}
			cat.ID = int64(seq)
		}
		now := time.Now()
		cat.CreatedAt, cat.UpdatedAt = now, now
		return putJSON(bk, itob(cat.ID), cat)
	})
	return errors.Wrap(err, "create category")
}

func (s *boltCategories) Get(_ context.Context, id int64) (*domain.Category, error) {
	var cat domain.Category
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketCategories).Get(itob(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &cat)
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, "query category")
	}
	return &cat, nil
}

func (s *boltCategories) List(_ context.Context) ([]domain.Category, error) {
	rows := make([]domain.Category, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketCategories).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var cat domain.Category
			if err := json.Unmarshal(v, &cat); err != nil {
				return err
			}
			rows = append(rows, cat)
		}
		return nil
	})
	return rows, errors.Wrap(err, "query categories")
}

func (s *boltCategories) Update(_ context.Context, cat *domain.Category) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketCategories)
		data := bk.Get(itob(cat.ID))
		if data == nil {
			return ErrNotFound
		}
		var existing domain.Category
		if err := json.Unmarshal(data, &existing); err != nil {
			return err
		}
		cat.CreatedAt = existing.CreatedAt
		cat.UpdatedAt = time.Now()
		return putJSON(bk, itob(cat.ID), cat)
	})
	if IsNotFound(err) {
		return err
	}
	return errors.Wrap(err, "update category")
}

func (s *boltCategories) Delete(_ context.Context, id int64) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketCategories)
		if bk.Get(itob(id)) == nil {
			return ErrNotFound
		}
		return bk.Delete(itob(id))
	})
	if IsNotFound(err) {
		return err
	}
	return errors.Wrap(err, "delete category")
}

type boltOrders boltDatabase

func (s *boltOrders) Create(_ context.Context, o *domain.Order) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketOrders)
		if o.ID == 0 {
			seq, err := bk.NextSequence()
			if err != nil {
				return err
			}
			o.ID = int64(seq)
		}
		if o.CreatedAt.IsZero() {
			o.CreatedAt = time.Now()
		}
		return putJSON(bk, itob(o.ID), o)
	})
	return errors.Wrap(err, "create order")
}

func (s *boltOrders) Get(_ context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketOrders).Get(itob(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &o)
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, "query order")
	}
	return &o, nil
}

func (s *boltOrders) List(_ context.Context, filter OrderFilter) ([]domain.Order, error) {
	rows := make([]domain.Order, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketOrders).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var o domain.Order
			if err := json.Unmarshal(v, &o); err != nil {
				return err
			}
			if filter.Type != "" && o.Type != filter.Type {
				continue
			}
			if filter.Status != "" && o.Status != filter.Status {
				continue
			}
			if !filter.From.IsZero() && o.CreatedAt.Before(filter.From) {
				continue
			}
			if !filter.To.IsZero() && o.CreatedAt.After(filter.To) {
				continue
			}
			rows = append(rows, o)
		}
		return nil
	})
	return rows, errors.Wrap(err, "query orders")
}

type boltAdmins boltDatabase

// boltOpr is the stored image of an operator. SysOpr hides the password hash
// from JSON responses, but storage must keep it.
type boltOpr struct {
	domain.SysOpr
	Password string `json:"password"`
}

func (s *boltAdmins) Create(_ context.Context, opr *domain.SysOpr) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketOperators)
		if opr.ID == 0 {
			seq, err := bk.NextSequence()
			if err != nil {
				return err
			}
			opr.ID = int64(seq)
		}
		now := time.Now()
		opr.CreatedAt, opr.UpdatedAt = now, now
		return putJSON(bk, []byte(opr.Username), boltOpr{SysOpr: *opr, Password: opr.Password})
	})
	return errors.Wrap(err, "create operator")
}

func (s *boltAdmins) GetByUsername(_ context.Context, username string) (*domain.SysOpr, error) {
	var rec boltOpr
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketOperators).Get([]byte(username))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, "query operator")
	}
	opr := rec.SysOpr
	opr.Password = rec.Password
	return &opr, nil
}

func (s *boltAdmins) Update(_ context.Context, opr *domain.SysOpr) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		opr.UpdatedAt = time.Now()
		return putJSON(tx.Bucket(bucketOperators), []byte(opr.Username), boltOpr{SysOpr: *opr, Password: opr.Password})
	})
	return errors.Wrap(err, "update operator")
}

func (s *boltAdmins) Count(_ context.Context) (int64, error) {
	var n int64
	err := s.db.View(func(tx *bolt.Tx) error {
		n = int64(tx.Bucket(bucketOperators).Stats().KeyN)
		return nil
	})
	return n, errors.Wrap(err, "count operators")
}

type boltSettings boltDatabase

func settingKey(category, name string) []byte {
	return []byte(category + "." + name)
}

func (s *boltSettings) Get(_ context.Context, category, name string) (string, error) {
	var cfg domain.SysConfig
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketSettings).Get(settingKey(category, name))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &cfg)
	})
	if err != nil {
		if IsNotFound(err) {
			return "", err
		}
		return "", errors.Wrap(err, "query setting")
	}
	return cfg.Value, nil
}

func (s *boltSettings) Set(_ context.Context, category, name, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketSettings)
		key := settingKey(category, name)
		cfg := domain.SysConfig{Type: category, Name: name, Value: value, UpdatedAt: time.Now()}
		if data := bk.Get(key); data != nil {
			var existing domain.SysConfig
			if err := json.Unmarshal(data, &existing); err == nil {
				cfg.ID = existing.ID
				cfg.CreatedAt = existing.CreatedAt
			}
		} else {
			seq, err := bk.NextSequence()
			if err != nil {
				return err
			}
			cfg.ID = int64(seq)
			cfg.CreatedAt = time.Now()
		}
		return putJSON(bk, key, cfg)
	})
	return errors.Wrap(err, "save setting")
}

func (s *boltSettings) List(_ context.Context) ([]domain.SysConfig, error) {
	rows := make([]domain.SysConfig, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketSettings).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var cfg domain.SysConfig
			if err := json.Unmarshal(v, &cfg); err != nil {
				return err
			}
			rows = append(rows, cfg)
		}
		return nil
	})
	return rows, errors.Wrap(err, "query settings")
}
