// Package event describes state changes published after a transaction commits.
package event

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"callorder/pkg/order"
)

// Type names a state change.
type Type string

const (
	CallCreated       Type = "call.created"
	OrderItemsAdded   Type = "order.items_added"
	OrderItemsRemoved Type = "order.items_removed"
	OrderCleared      Type = "order.cleared"
	MenuItemUpserted  Type = "menu.item_upserted"
	MenuCleared       Type = "menu.cleared"
)

// Event is one committed change.
type Event struct {
	Type     Type         `json:"type"`
	CallID   string       `json:"call_id,omitempty"`
	Item     string       `json:"item,omitempty"`
	Quantity int          `json:"quantity,omitempty"`
	Order    *order.Order `json:"order,omitempty"`
	MenuItem *order.Item  `json:"menu_item,omitempty"`
	At       time.Time    `json:"at"`
}

// Publisher delivers events to a downstream consumer.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Multi publishes to every publisher concurrently and joins their errors.
type Multi []Publisher

// Publish implements Publisher.
func (m Multi) Publish(ctx context.Context, e Event) error {
	var g errgroup.Group
	errs := make([]error, len(m))
	for i, p := range m {
		g.Go(func() error {
			errs[i] = p.Publish(ctx, e)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
