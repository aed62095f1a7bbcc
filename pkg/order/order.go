package order

import (
	"errors"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices and totals travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Item is a purchasable menu entry. Name is the catalog key.
type Item struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Category    string          `json:"category,omitempty"`
}

// Validate reports whether the item may be stored in a catalog.
func (i Item) Validate() error {
	if i.Name == "" {
		return ErrInvalidItem
	}
	if i.Price.IsNegative() {
		return ErrInvalidItem
	}
	return nil
}

// Order is the sequence of item units attached to a call. Duplicates are
// distinct units. TotalCost always equals the sum of Items' prices.
type Order struct {
	Items     []Item          `json:"items"`
	TotalCost decimal.Decimal `json:"total_cost" swaggertype:"number"`
}

// Clone returns a deep copy safe to hand outside the store.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	items := make([]Item, len(o.Items))
	copy(items, o.Items)
	return &Order{Items: items, TotalCost: o.TotalCost}
}

// Sum recomputes the total from the items. It is only used to verify the
// running total, never to maintain it.
func (o *Order) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Price)
	}
	return sum
}

var (
	// ErrNotFound indicates the requested call does not exist.
	ErrNotFound = errors.New("call not found")
	// ErrItemNotFound indicates the item is not on the menu.
	ErrItemNotFound = errors.New("item not on the menu")
	// ErrInvalidQuantity indicates a quantity outside [1, MaxQuantity].
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 1000")
	// ErrInvalidItem indicates a menu item with an empty name or a negative price.
	ErrInvalidItem = errors.New("item needs a name and a non-negative price")
	// ErrInvariantViolation indicates the shared state is inconsistent.
	ErrInvariantViolation = errors.New("invariant violation")
)

// IsValidation reports whether err is a caller mistake that left state untouched.
func IsValidation(err error) bool {
	return errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidItem)
}
