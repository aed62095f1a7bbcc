package order

import "fmt"

// MaxQuantity is the most units a single add or remove may name. Larger
// requests are rejected with ErrInvalidQuantity before anything is allocated.
const MaxQuantity = 1000

// Catalog resolves item names to their current definition.
type Catalog interface {
	Lookup(name string) (Item, bool)
}

// AddItems appends quantity units of the named item to o and returns the
// resulting order. A nil o is treated as an absent order and a new one is
// created. On a validation error o is returned untouched.
func AddItems(o *Order, catalog Catalog, name string, quantity int) (*Order, error) {
	if err := checkQuantity(quantity); err != nil {
		return o, err
	}
	item, ok := catalog.Lookup(name)
	if !ok {
		return o, fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	if o == nil {
		o = &Order{Items: make([]Item, 0, quantity)}
	}
	for range quantity {
		o.Items = append(o.Items, item)
		o.TotalCost = o.TotalCost.Add(item.Price)
	}
	return o, verify(o)
}

// RemoveItems removes up to quantity units of the named item, first match in
// insertion order each time. Fewer matches than requested, or a nil order, is
// not an error. It returns the number of units removed.
func RemoveItems(o *Order, name string, quantity int) (int, error) {
	if err := checkQuantity(quantity); err != nil {
		return 0, err
	}
	if o == nil {
		return 0, nil
	}
	removed := 0
	for removed < quantity {
		idx := indexOf(o.Items, name)
		if idx < 0 {
			break
		}
		o.TotalCost = o.TotalCost.Sub(o.Items[idx].Price)
		o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
		removed++
	}
	return removed, verify(o)
}

func checkQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxQuantity {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return nil
}

func indexOf(items []Item, name string) int {
	for i, it := range items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

func verify(o *Order) error {
	if sum := o.Sum(); !sum.Equal(o.TotalCost) {
		return fmt.Errorf("%w: total %s, items sum to %s", ErrInvariantViolation, o.TotalCost, sum)
	}
	return nil
}
