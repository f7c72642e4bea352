package order

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/craftstore/internal/domain"
	"github.com/talkincode/craftstore/internal/store"
)

// memOrders is an in-memory OrderStore used to isolate the service.
type memOrders struct {
	orders  []domain.Order
	nextID  int64
	failing bool
}

func (m *memOrders) Create(_ context.Context, o *domain.Order) error {
	if m.failing {
		return errors.New("disk on fire")
	}
	m.nextID++
	o.ID = m.nextID
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memOrders) Get(_ context.Context, id int64) (*domain.Order, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			return &m.orders[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memOrders) List(_ context.Context, _ store.OrderFilter) ([]domain.Order, error) {
	return m.orders, nil
}

// captureNotifier records what would have been sent to the admin channel.
type captureNotifier struct {
	texts  []string
	images []string
	calls  int32
}

func (n *captureNotifier) Notify(_ context.Context, text string, images []string) {
	atomic.AddInt32(&n.calls, 1)
	n.texts = append(n.texts, text)
	n.images = append(n.images, images...)
}

func validCartRequest() CartOrderRequest {
	return CartOrderRequest{
		Name:    "A",
		Email:   "a@x.com",
		Phone:   "9876543210",
		Address: "1 Rd",
		Items: []CartItemInput{
			{Name: "Sign", Price: 100, Quantity: 2},
		},
	}
}

func TestSubmitCartOrder_ComputesTotalServerSide(t *testing.T) {
	st := &memOrders{}
	notifier := &captureNotifier{}
	svc := NewService(st, nil, notifier)

	req := validCartRequest()
	req.Total = 5 // a lying client total must be ignored

	o, err := svc.SubmitCartOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, float64(200), o.Total)
	assert.Equal(t, domain.OrderTypeCart, o.Type)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.NotZero(t, o.ID)
	assert.False(t, o.CreatedAt.IsZero())

	require.Len(t, st.orders, 1)
	assert.Equal(t, float64(200), st.orders[0].Total)
}

func TestSubmitCartOrder_MissingFieldsFlaggedExactly(t *testing.T) {
	svc := NewService(&memOrders{}, nil)

	req := validCartRequest()
	req.Email = ""
	req.Address = "   "
	_, err := svc.SubmitCartOrder(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]bool{"email": true, "address": true}, verr.Details)
}

func TestSubmitCartOrder_EmptyItemsRejected(t *testing.T) {
	st := &memOrders{}
	svc := NewService(st, nil)

	req := validCartRequest()
	req.Items = nil
	_, err := svc.SubmitCartOrder(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Details["items"])
	assert.Empty(t, st.orders, "validation must short-circuit before any side effect")
}

func TestSubmitCartOrder_BadItemValuesRejected(t *testing.T) {
	svc := NewService(&memOrders{}, nil)

	req := validCartRequest()
	req.Items = []CartItemInput{{Name: "Sign", Price: -1, Quantity: 1}}
	_, err := svc.SubmitCartOrder(context.Background(), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Details["items"])

	req.Items = []CartItemInput{{Name: "Sign", Price: 100, Quantity: 0}}
	_, err = svc.SubmitCartOrder(context.Background(), req)
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Details["items"])
}

func TestSubmitCartOrder_StorageFailureAbortsWithoutNotification(t *testing.T) {
	notifier := &captureNotifier{}
	svc := NewService(&memOrders{failing: true}, nil, notifier)

	_, err := svc.SubmitCartOrder(context.Background(), validCartRequest())
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.Zero(t, notifier.calls, "no alert for an order that was never recorded")
}

func TestSubmitCartOrder_NotificationMentionsItems(t *testing.T) {
	notifier := &captureNotifier{}
	svc := NewService(&memOrders{}, nil, notifier)

	o, err := svc.SubmitCartOrder(context.Background(), validCartRequest())
	require.NoError(t, err)

	require.Len(t, notifier.texts, 1)
	assert.Contains(t, notifier.texts[0], "Sign x2")
	assert.Contains(t, notifier.texts[0], FormatINR(o.Total))
	assert.Contains(t, notifier.texts[0], "New Cart Order")
}

func TestSubmitCustomOrder_PersistsAndForwardsImages(t *testing.T) {
	st := &memOrders{}
	notifier := &captureNotifier{}
	svc := NewService(st, nil, notifier)

	o, err := svc.SubmitCustomOrder(context.Background(), CustomOrderRequest{
		Name:        "B",
		Email:       "b@x.com",
		Phone:       "9876543210",
		Description: "a small painted sign",
		Images:      []string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderTypeCustom, o.Type)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	require.Len(t, st.orders, 1)

	require.Len(t, notifier.texts, 1)
	assert.Contains(t, notifier.texts[0], "New Custom Order")
	assert.Contains(t, notifier.texts[0], "2 images attached")
	assert.Equal(t, []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}, notifier.images)
}

func TestSubmitCustomOrder_MissingDescription(t *testing.T) {
	st := &memOrders{}
	svc := NewService(st, nil)

	_, err := svc.SubmitCustomOrder(context.Background(), CustomOrderRequest{
		Name:  "B",
		Email: "b@x.com",
		Phone: "9876543210",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]bool{"description": true}, verr.Details)
	assert.Empty(t, st.orders)
}

func TestSubmitCustomOrder_NilImagesSerializedAsEmpty(t *testing.T) {
	st := &memOrders{}
	svc := NewService(st, nil)

	o, err := svc.SubmitCustomOrder(context.Background(), CustomOrderRequest{
		Name:        "B",
		Email:       "b@x.com",
		Phone:       "9876543210",
		Description: "no pictures",
	})
	require.NoError(t, err)
	assert.NotNil(t, o.Images)
	assert.Empty(t, o.Images)
}
