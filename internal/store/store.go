// Package store defines the persistence contract of the storefront and its
// interchangeable backends. The backend is selected once at startup from
// configuration and injected into the services; nothing below this package
// knows which engine holds the data.
package store

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/talkincode/craftstore/internal/domain"
)

// ErrNotFound is returned when a referenced entity does not exist. Handlers
// map it to 404.
var ErrNotFound = errors.New("record not found")

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// OrderFilter narrows an order listing. Zero values mean "no constraint".
type OrderFilter struct {
	Type   string
	Status string
	From   time.Time
	To     time.Time
}

type ProductStore interface {
	Create(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, category string) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	// Delete fails with ErrNotFound when the id does not exist. Deleting a
	// missing product is an error, not a no-op.
	Delete(ctx context.Context, id int64) error
}

type CategoryStore interface {
	Create(ctx context.Context, cat *domain.Category) error
	Get(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, cat *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

type OrderStore interface {
	// Create persists a new order and assigns its id. Orders are never
	// mutated through this store after creation.
	Create(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
}

type AdminStore interface {
	Create(ctx context.Context, opr *domain.SysOpr) error
	GetByUsername(ctx context.Context, username string) (*domain.SysOpr, error)
	Update(ctx context.Context, opr *domain.SysOpr) error
	Count(ctx context.Context) (int64, error)
}

// SettingsStore is the runtime key-value configuration held alongside the
// business data (category + name addressing, string values).
type SettingsStore interface {
	Get(ctx context.Context, category, name string) (string, error)
	Set(ctx context.Context, category, name, value string) error
	List(ctx context.Context) ([]domain.SysConfig, error)
}

// Database is the capability set a backend must provide.
type Database interface {
	Products() ProductStore
	Categories() CategoryStore
	Orders() OrderStore
	Admins() AdminStore
	Settings() SettingsStore
	Close() error
}
