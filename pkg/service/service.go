// Package service runs state store transactions on behalf of the transport.
// Each method executes exactly one transaction, then records it and publishes
// the resulting change outside the lock.
package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"callorder/pkg/call"
	"callorder/pkg/event"
	"callorder/pkg/logger"
	"callorder/pkg/menu"
	"callorder/pkg/metrics"
	"callorder/pkg/order"
	"callorder/pkg/otel"
	"callorder/pkg/store"
)

// Config holds the collaborators of a Service. Publisher and OnFatal are
// optional.
type Config struct {
	Store     *store.Store
	Log       *logger.Logger
	Metrics   *metrics.Metrics
	Publisher event.Publisher
	// OnFatal is invoked once the store reports an unrecoverable error.
	OnFatal   func(error)
}

// Service exposes the store operations.
type Service struct {
	store   *store.Store
	log     *logger.Logger
	metrics *metrics.Metrics
	pub     event.Publisher
	onFatal func(error)
	now     func() time.Time
}

// New creates a Service.
func New(cfg Config) *Service {
	s := &Service{
		store:   cfg.Store,
		log:     cfg.Log,
		metrics: cfg.Metrics,
		pub:     cfg.Publisher,
		onFatal: cfg.OnFatal,
		now:     time.Now,
	}
	if s.pub == nil {
		s.pub = event.Nop{}
	}
	if s.onFatal == nil {
		s.onFatal = func(error) {}
	}
	return s
}

// CreateCall registers a new call and returns its id.
func (s *Service) CreateCall(ctx context.Context) (string, error) {
	ctx, done := s.begin(ctx, "create_call")
	id, err := s.store.CreateCall()
	done(err, attribute.String("call.id", id))
	if err != nil {
		return "", err
	}
	s.publish(ctx, event.Event{Type: event.CallCreated, CallID: id})
	return id, nil
}

// GetCall returns a snapshot of the call.
func (s *Service) GetCall(ctx context.Context, id string) (call.Call, error) {
	_, done := s.begin(ctx, "get_call")
	c, err := s.store.GetCall(id)
	done(err, attribute.String("call.id", id))
	return c, err
}

// GetOrder returns the call's order, nil when it has none.
func (s *Service) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	_, done := s.begin(ctx, "get_order")
	o, err := s.store.GetOrder(id)
	done(err, attribute.String("call.id", id))
	return o, err
}

// AddItemsToOrder adds quantity units of itemName to the call's order.
func (s *Service) AddItemsToOrder(ctx context.Context, id, itemName string, quantity int) (*order.Order, error) {
	ctx, done := s.begin(ctx, "add_items")
	o, err := s.store.AddItemsToOrder(id, itemName, quantity)
	done(err, attribute.String("call.id", id), attribute.String("item", itemName), attribute.Int("quantity", quantity))
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.Event{Type: event.OrderItemsAdded, CallID: id, Item: itemName, Quantity: quantity, Order: o})
	return o, nil
}

// RemoveItemsFromOrder removes up to quantity units of itemName.
func (s *Service) RemoveItemsFromOrder(ctx context.Context, id, itemName string, quantity int) (*order.Order, error) {
	ctx, done := s.begin(ctx, "remove_items")
	o, removed, err := s.store.RemoveItemsFromOrder(id, itemName, quantity)
	done(err, attribute.String("call.id", id), attribute.String("item", itemName), attribute.Int("removed", removed))
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		s.publish(ctx, event.Event{Type: event.OrderItemsRemoved, CallID: id, Item: itemName, Quantity: removed, Order: o})
	}
	return o, nil
}

// ClearOrder drops the call's order.
func (s *Service) ClearOrder(ctx context.Context, id string) error {
	ctx, done := s.begin(ctx, "clear_order")
	err := s.store.ClearOrder(id)
	done(err, attribute.String("call.id", id))
	if err != nil {
		return err
	}
	s.publish(ctx, event.Event{Type: event.OrderCleared, CallID: id})
	return nil
}

// AddMenuItem upserts a menu item.
func (s *Service) AddMenuItem(ctx context.Context, it order.Item) error {
	ctx, done := s.begin(ctx, "add_menu_item")
	err := s.store.AddMenuItem(it)
	done(err, attribute.String("item", it.Name))
	if err != nil {
		return err
	}
	s.publish(ctx, event.Event{Type: event.MenuItemUpserted, Item: it.Name, MenuItem: &it})
	return nil
}

// ClearMenu empties the menu.
func (s *Service) ClearMenu(ctx context.Context) error {
	ctx, done := s.begin(ctx, "clear_menu")
	err := s.store.ClearMenu()
	done(err)
	if err != nil {
		return err
	}
	s.publish(ctx, event.Event{Type: event.MenuCleared})
	return nil
}

// GetMenu returns a snapshot of the menu.
func (s *Service) GetMenu(ctx context.Context) (menu.Menu, error) {
	_, done := s.begin(ctx, "get_menu")
	m, err := s.store.GetMenu()
	done(err)
	return m, err
}

// begin opens a span for op. The returned function records the outcome and
// must be called exactly once.
func (s *Service) begin(ctx context.Context, op string) (context.Context, func(error, ...attribute.KeyValue)) {
	start := s.now()
	ctx, span := otel.AddSpan(ctx, "store."+op)
	return ctx, func(err error, attrs ...attribute.KeyValue) {
		defer span.End()
		span.SetAttributes(attrs...)

		outcome := outcomeOf(err)
		s.metrics.Observe(op, outcome, start)

		switch outcome {
		case metrics.OutcomeOK:
			s.log.Debug(ctx, "transaction", "op", op)
		case metrics.OutcomeFatal:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.log.Error(ctx, "transaction failed fatally", "op", op, "error", err)
			s.onFatal(err)
		default:
			span.SetStatus(codes.Error, err.Error())
			s.log.Warn(ctx, "transaction rejected", "op", op, "error", err)
		}
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case store.IsFatal(err):
		return metrics.OutcomeFatal
	case errors.Is(err, order.ErrNotFound):
		return metrics.OutcomeMissing
	case order.IsValidation(err):
		return metrics.OutcomeInvalid
	}
	return metrics.OutcomeError
}

func (s *Service) publish(ctx context.Context, e event.Event) {
	e.At = s.now().UTC()
	if err := s.pub.Publish(ctx, e); err != nil {
		s.metrics.Published.WithLabelValues(metrics.OutcomeError).Inc()
		s.log.Warn(ctx, "publish event", "type", e.Type, "error", err)
		return
	}
	s.metrics.Published.WithLabelValues(metrics.OutcomeOK).Inc()
}
