// Package catalog provides product and category management over the
// injected storage backend.
package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/talkincode/craftstore/internal/domain"
	"github.com/talkincode/craftstore/internal/order"
	"github.com/talkincode/craftstore/internal/store"
)

// ProductFields is the mutable subset of a product. Price arrives as an
// arbitrary JSON value: admin UIs across deployments have sent both numbers
// and numeric strings, so it is coerced and rejected only when unparseable.
type ProductFields struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       interface{} `json:"price"`
	Image       string      `json:"image"`
	Category    string      `json:"category"`
}

type Service struct {
	products   store.ProductStore
	categories store.CategoryStore
}

func NewService(products store.ProductStore, categories store.CategoryStore) *Service {
	return &Service{products: products, categories: categories}
}

// List returns products, optionally restricted to one category.
func (s *Service) List(ctx context.Context, category string) ([]domain.Product, error) {
	return s.products.List(ctx, category)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *Service) validateFields(f ProductFields) (float64, *order.ValidationError) {
	verr := &order.ValidationError{
		Details: map[string]bool{},
		Reasons: map[string]string{},
	}
	check := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			verr.Details[field] = true
			verr.Reasons[field] = field + " is required"
		}
	}
	check("name", f.Name)
	check("description", f.Description)
	check("image", f.Image)
	check("category", f.Category)

	var price float64
	if f.Price == nil {
		// cast.ToFloat64E(nil) yields 0 without an error; an absent price is
		// a missing field, not a free product
		verr.Details["price"] = true
		verr.Reasons["price"] = "price is required"
	} else if p, err := cast.ToFloat64E(f.Price); err != nil {
		verr.Details["price"] = true
		verr.Reasons["price"] = "price must be a number"
	} else if p < 0 {
		verr.Details["price"] = true
		verr.Reasons["price"] = "price must not be negative"
	} else {
		price = p
	}
	if len(verr.Details) > 0 {
		return 0, verr
	}
	return price, nil
}

// Create validates and stores a new product, returning it with its
// server-assigned id.
func (s *Service) Create(ctx context.Context, f ProductFields) (*domain.Product, error) {
	price, verr := s.validateFields(f)
	if verr != nil {
		return nil, verr
	}
	p := &domain.Product{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Price:       price,
		Image:       strings.TrimSpace(f.Image),
		Category:    strings.TrimSpace(f.Category),
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the mutable fields of an existing product. Fails with
// store.ErrNotFound when the id is unknown.
func (s *Service) Update(ctx context.Context, id int64, f ProductFields) (*domain.Product, error) {
	price, verr := s.validateFields(f)
	if verr != nil {
		return nil, verr
	}
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(f.Name)
	p.Description = strings.TrimSpace(f.Description)
	p.Price = price
	p.Image = strings.TrimSpace(f.Image)
	p.Category = strings.TrimSpace(f.Category)
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product; deleting a missing id is an error, not a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

// CategoryNames returns the distinct category tags present on products plus
// any managed Category entities, for the storefront filter bar.
func (s *Service) CategoryNames(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	products, err := s.products.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.Category != "" {
			seen[p.Category] = true
		}
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		if c.Name != "" {
			seen[c.Name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, cat *domain.Category) error {
	if strings.TrimSpace(cat.Name) == "" {
		verr := &order.ValidationError{
			Details: map[string]bool{"name": true},
			Reasons: map[string]string{"name": "name is required"},
		}
		return verr
	}
	return s.categories.Create(ctx, cat)
}

func (s *Service) UpdateCategory(ctx context.Context, cat *domain.Category) error {
	return s.categories.Update(ctx, cat)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}
