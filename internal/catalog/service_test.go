package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/craftstore/internal/domain"
	"github.com/talkincode/craftstore/internal/order"
	"github.com/talkincode/craftstore/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := store.NewBoltDatabase("catalog-test", t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewService(db.Products(), db.Categories())
}

func validFields() ProductFields {
	return ProductFields{
		Name:        "Wooden Sign",
		Description: "Hand carved",
		Price:       100,
		Image:       "/assets/sign.jpg",
		Category:    "signs",
	}
}

func TestCreate(t *testing.T) {
	svc := newTestService(t)
	p, err := svc.Create(context.Background(), validFields())
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, float64(100), p.Price)

	got, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wooden Sign", got.Name)
}

func TestCreate_PriceCoercion(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	f := validFields()
	f.Price = "12.5"
	p, err := svc.Create(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 12.5, p.Price)

	f.Price = "abc"
	_, err = svc.Create(ctx, f)
	var verr *order.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Details["price"])

	f.Price = -5
	_, err = svc.Create(ctx, f)
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Details["price"])
}

func TestCreate_MissingPrice(t *testing.T) {
	svc := newTestService(t)
	f := validFields()
	f.Price = nil
	_, err := svc.Create(context.Background(), f)
	var verr *order.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]bool{"price": true}, verr.Details)
}

func TestCreate_MissingFields(t *testing.T) {
	svc := newTestService(t)
	f := validFields()
	f.Name = "  "
	f.Image = ""
	_, err := svc.Create(context.Background(), f)
	var verr *order.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]bool{"name": true, "image": true}, verr.Details)
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, validFields())
	require.NoError(t, err)

	f := validFields()
	f.Price = "250"
	f.Name = "Bigger Sign"
	updated, err := svc.Update(ctx, p.ID, f)
	require.NoError(t, err)
	assert.Equal(t, float64(250), updated.Price)
	assert.Equal(t, "Bigger Sign", updated.Name)
}

func TestUpdate_MissingProduct(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Update(context.Background(), 424242, validFields())
	assert.True(t, store.IsNotFound(err))
}

func TestDelete_MissingProduct(t *testing.T) {
	svc := newTestService(t)
	err := svc.Delete(context.Background(), 424242)
	assert.True(t, store.IsNotFound(err))
}

func TestCategoryNames_MergesTagsAndEntities(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	f := validFields()
	_, err := svc.Create(ctx, f)
	require.NoError(t, err)
	f.Category = "frames"
	_, err = svc.Create(ctx, f)
	require.NoError(t, err)

	require.NoError(t, svc.CreateCategory(ctx, &domain.Category{Name: "gifts"}))

	names, err := svc.CategoryNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"frames", "gifts", "signs"}, names)
}

func TestCreateCategory_RequiresName(t *testing.T) {
	svc := newTestService(t)
	err := svc.CreateCategory(context.Background(), &domain.Category{Name: "  "})
	var verr *order.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Details["name"])
}
