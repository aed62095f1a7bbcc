// Package call tracks call sessions and the order each one holds.
package call

import (
	"fmt"

	"github.com/google/uuid"

	"callorder/pkg/order"
)

// Call is one customer interaction. A nil Order means no order has been
// started, which differs from an order with zero items.
type Call struct {
	ID    uuid.UUID    `json:"id" swaggertype:"string" format:"uuid"`
	Order *order.Order `json:"order"`
}

// Clone returns a deep copy safe to hand outside the store.
func (c *Call) Clone() Call {
	return Call{ID: c.ID, Order: c.Order.Clone()}
}

// Registry owns every call created during the process lifetime. It is not
// safe for concurrent use.
type Registry struct {
	calls map[uuid.UUID]*Call
	newID func() (uuid.UUID, error)
}

// NewRegistry creates an empty registry issuing random (version 4) ids.
func NewRegistry() *Registry {
	return &Registry{
		calls: make(map[uuid.UUID]*Call),
		newID: uuid.NewRandom,
	}
}

// Create registers a call with no order and returns it.
func (r *Registry) Create() (*Call, error) {
	id, err := r.newID()
	if err != nil {
		return nil, fmt.Errorf("generate call id: %w", err)
	}
	if _, dup := r.calls[id]; dup {
		return nil, fmt.Errorf("%w: call id %s issued twice", order.ErrInvariantViolation, id)
	}
	c := &Call{ID: id}
	r.calls[id] = c
	return c, nil
}

// Get returns the live call record for id.
func (r *Registry) Get(id uuid.UUID) (*Call, error) {
	c, ok := r.calls[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", order.ErrNotFound, id)
	}
	return c, nil
}

// Len returns the number of registered calls.
func (r *Registry) Len() int {
	return len(r.calls)
}
