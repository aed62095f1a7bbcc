// Package store composes the menu catalog and the call registry behind a
// single lock. Every exported method is one transaction.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"callorder/pkg/call"
	"callorder/pkg/menu"
	"callorder/pkg/order"
)

// ErrLockPoisoned is returned once a transaction has failed fatally. The
// store must not be used afterwards.
var ErrLockPoisoned = errors.New("state store poisoned by an earlier fatal error")

// IsFatal reports whether err means the shared state can no longer be trusted.
func IsFatal(err error) bool {
	return errors.Is(err, order.ErrInvariantViolation) || errors.Is(err, ErrLockPoisoned)
}

// Store is the shared state of the process. The zero value is not usable;
// call New.
type Store struct {
	mu       sync.Mutex
	poisoned error
	calls    *call.Registry
	catalog  *menu.Catalog
}

// New returns an empty store.
func New() *Store {
	return &Store{
		calls:   call.NewRegistry(),
		catalog: menu.New(),
	}
}

// tx runs fn with exclusive access to the state. A panic or an invariant
// violation inside fn poisons the store.
func (s *Store) tx(fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.poisoned != nil {
		return fmt.Errorf("%w: %v", ErrLockPoisoned, s.poisoned)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", order.ErrInvariantViolation, r)
		}
		if errors.Is(err, order.ErrInvariantViolation) {
			s.poisoned = err
		}
	}()
	return fn()
}

func (s *Store) lookup(id string) (*call.Call, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", order.ErrNotFound, id)
	}
	return s.calls.Get(uid)
}

// CreateCall registers a new call with no order and returns its id.
func (s *Store) CreateCall() (string, error) {
	var id string
	err := s.tx(func() error {
		c, err := s.calls.Create()
		if err != nil {
			return err
		}
		id = c.ID.String()
		return nil
	})
	return id, err
}

// GetCall returns a snapshot of the call.
func (s *Store) GetCall(id string) (call.Call, error) {
	var out call.Call
	err := s.tx(func() error {
		c, err := s.lookup(id)
		if err != nil {
			return err
		}
		out = c.Clone()
		return nil
	})
	return out, err
}

// GetOrder returns a snapshot of the call's order, nil when it has none.
func (s *Store) GetOrder(id string) (*order.Order, error) {
	var out *order.Order
	err := s.tx(func() error {
		c, err := s.lookup(id)
		if err != nil {
			return err
		}
		out = c.Order.Clone()
		return nil
	})
	return out, err
}

// AddItemsToOrder appends quantity units of the named menu item to the call's
// order, creating the order if needed, and returns the resulting order.
func (s *Store) AddItemsToOrder(id, itemName string, quantity int) (*order.Order, error) {
	var out *order.Order
	err := s.tx(func() error {
		c, err := s.lookup(id)
		if err != nil {
			return err
		}
		o, err := order.AddItems(c.Order, s.catalog, itemName, quantity)
		if err != nil {
			return err
		}
		c.Order = o
		out = o.Clone()
		return nil
	})
	return out, err
}

// RemoveItemsFromOrder removes up to quantity units of the named item and
// returns the resulting order along with how many units were removed.
func (s *Store) RemoveItemsFromOrder(id, itemName string, quantity int) (*order.Order, int, error) {
	var (
		out     *order.Order
		removed int
	)
	err := s.tx(func() error {
		c, err := s.lookup(id)
		if err != nil {
			return err
		}
		removed, err = order.RemoveItems(c.Order, itemName, quantity)
		if err != nil {
			return err
		}
		out = c.Order.Clone()
		return nil
	})
	return out, removed, err
}

// ClearOrder drops the call's order entirely.
func (s *Store) ClearOrder(id string) error {
	return s.tx(func() error {
		c, err := s.lookup(id)
		if err != nil {
			return err
		}
		c.Order = nil
		return nil
	})
}

// AddMenuItem upserts an item into the catalog.
func (s *Store) AddMenuItem(it order.Item) error {
	return s.tx(func() error {
		return s.catalog.Upsert(it)
	})
}

// ClearMenu empties the catalog. Existing orders keep their item snapshots.
func (s *Store) ClearMenu() error {
	return s.tx(func() error {
		s.catalog.Clear()
		return nil
	})
}

// GetMenu returns a snapshot of the catalog.
func (s *Store) GetMenu() (menu.Menu, error) {
	var out menu.Menu
	err := s.tx(func() error {
		out = s.catalog.Snapshot()
		return nil
	})
	return out, err
}

// Stats reports the size of the state.
func (s *Store) Stats() (calls, menuItems int, err error) {
	err = s.tx(func() error {
		calls, menuItems = s.calls.Len(), s.catalog.Len()
		return nil
	})
	return calls, menuItems, err
}
