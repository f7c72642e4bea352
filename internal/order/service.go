// Package order implements the checkout flow: validate the payload, compute
// the total server-side, persist the order, then alert the administrator.
// Persistence failure aborts the request; notification failure never does.
package order

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/talkincode/craftstore/internal/domain"
	"github.com/talkincode/craftstore/internal/store"
)

// EventOrderCreated is published on the application bus after an order is
// durably recorded.
const EventOrderCreated = "order.created"

// Notifier is the best-effort notification convention. Implementations must
// swallow their own failures; the order is already recorded by the time
// Notify runs.
type Notifier interface {
	Notify(ctx context.Context, text string, images []string)
}

type CartItemInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type CartOrderRequest struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
	Notes   string          `json:"notes"`
	Items   []CartItemInput `json:"items"`
	// Total is accepted for wire compatibility with older clients but never
	// trusted; the service always recomputes it.
	Total float64 `json:"total"`
}

type CustomOrderRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

type Service struct {
	orders    store.OrderStore
	notifiers []Notifier
	bus       EventBus.Bus
}

// NewService builds the order service with its injected dependencies. bus
// may be nil when no in-process subscribers exist (tests).
func NewService(orders store.OrderStore, bus EventBus.Bus, notifiers ...Notifier) *Service {
	return &Service{orders: orders, notifiers: notifiers, bus: bus}
}

// SubmitCartOrder validates and records a checkout submission, then alerts
// the administrator. The returned order carries its assigned id and
// timestamp.
func (s *Service) SubmitCartOrder(ctx context.Context, req CartOrderRequest) (*domain.Order, error) {
	if verr := req.validate(); verr != nil {
		return nil, verr
	}

	var total float64
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		total += in.Price * float64(in.Quantity)
		items = append(items, domain.OrderItem{
			Name:     strings.TrimSpace(in.Name),
			Price:    in.Price,
			Quantity: in.Quantity,
		})
	}

	o := &domain.Order{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Notes:     strings.TrimSpace(req.Notes),
		Items:     items,
		Total:     total,
		Type:      domain.OrderTypeCart,
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		zap.L().Error("order: failed to store cart order", zap.Error(err))
		return nil, err
	}
	s.publish(o)

	s.notify(ctx, formatCartMessage(o), nil)
	zap.L().Info("order: cart order created",
		zap.Int64("id", o.ID), zap.Float64("total", o.Total), zap.Int("items", len(o.Items)))
	return o, nil
}

// SubmitCustomOrder records a bespoke product request. Image attachments
// are forwarded to the notifier one by one.
func (s *Service) SubmitCustomOrder(ctx context.Context, req CustomOrderRequest) (*domain.Order, error) {
	if verr := req.validate(); verr != nil {
		return nil, verr
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}
	o := &domain.Order{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Description: strings.TrimSpace(req.Description),
		Images:      images,
		Type:        domain.OrderTypeCustom,
		Status:      domain.OrderStatusPending,
		CreatedAt:   time.Now(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		zap.L().Error("order: failed to store custom order", zap.Error(err))
		return nil, err
	}
	s.publish(o)

	s.notify(ctx, formatCustomMessage(o), o.Images)
	zap.L().Info("order: custom order created",
		zap.Int64("id", o.ID), zap.Int("images", len(o.Images)))
	return o, nil
}

// List exposes order history for the admin surface.
func (s *Service) List(ctx context.Context, filter store.OrderFilter) ([]domain.Order, error) {
	return s.orders.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.Get(ctx, id)
}

func (s *Service) publish(o *domain.Order) {
	if s.bus != nil {
		s.bus.Publish(EventOrderCreated, o)
	}
}

func (s *Service) notify(ctx context.Context, text string, images []string) {
	for _, n := range s.notifiers {
		n.Notify(ctx, text, images)
	}
}
