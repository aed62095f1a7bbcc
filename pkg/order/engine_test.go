package order

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalog map[string]Item

func (c catalog) Lookup(name string) (Item, bool) {
	it, ok := c[name]
	return it, ok
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog() catalog {
	return catalog{
		"Coffee": {Name: "Coffee", Price: price("2.5"), Category: "drinks"},
		"Bagel":  {Name: "Bagel", Price: price("3.1")},
		"Water":  {Name: "Water", Price: decimal.Zero},
	}
}

func requireConsistent(t *testing.T, o *Order) {
	t.Helper()
	require.NotNil(t, o)
	assert.True(t, o.Sum().Equal(o.TotalCost), "total %s != sum %s", o.TotalCost, o.Sum())
}

func TestAddItemsCreatesOrder(t *testing.T) {
	o, err := AddItems(nil, testCatalog(), "Coffee", 2)
	require.NoError(t, err)
	requireConsistent(t, o)
	assert.Len(t, o.Items, 2)
	assert.True(t, o.TotalCost.Equal(price("5")))
}

func TestAddItemsUnknownItemLeavesOrderUnchanged(t *testing.T) {
	o, err := AddItems(nil, testCatalog(), "Coffee", 1)
	require.NoError(t, err)
	before := o.Clone()

	got, err := AddItems(o, testCatalog(), "Tea", 3)
	require.ErrorIs(t, err, ErrItemNotFound)
	assert.Same(t, o, got)
	assert.Equal(t, before, o)

	none, err := AddItems(nil, testCatalog(), "Tea", 1)
	require.ErrorIs(t, err, ErrItemNotFound)
	assert.Nil(t, none)
}

func TestAddItemsRejectsNonPositiveQuantity(t *testing.T) {
	for _, q := range []int{0, -1} {
		o, err := AddItems(nil, testCatalog(), "Coffee", q)
		require.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Nil(t, o)
	}
}

func TestRemoveItemsFirstMatch(t *testing.T) {
	cat := testCatalog()
	o, err := AddItems(nil, cat, "Coffee", 1)
	require.NoError(t, err)
	o, err = AddItems(o, cat, "Bagel", 1)
	require.NoError(t, err)
	o, err = AddItems(o, cat, "Coffee", 1)
	require.NoError(t, err)

	n, err := RemoveItems(o, "Coffee", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	requireConsistent(t, o)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Bagel", o.Items[0].Name)
	assert.Equal(t, "Coffee", o.Items[1].Name)
}

func TestRemoveItemsMoreThanPresent(t *testing.T) {
	o, err := AddItems(nil, testCatalog(), "Coffee", 2)
	require.NoError(t, err)

	n, err := RemoveItems(o, "Coffee", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	requireConsistent(t, o)
	assert.Empty(t, o.Items)
	assert.True(t, o.TotalCost.IsZero())

	n, err = RemoveItems(o, "Bagel", 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRemoveItemsNilOrder(t *testing.T) {
	n, err := RemoveItems(nil, "Coffee", 3)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRemoveItemsUsesStoredPrice(t *testing.T) {
	cat := testCatalog()
	o, err := AddItems(nil, cat, "Coffee", 1)
	require.NoError(t, err)

	// A later price change must not affect units already ordered.
	cat["Coffee"] = Item{Name: "Coffee", Price: price("9.99")}
	o, err = AddItems(o, cat, "Coffee", 1)
	require.NoError(t, err)

	_, err = RemoveItems(o, "Coffee", 1)
	require.NoError(t, err)
	requireConsistent(t, o)
	assert.True(t, o.TotalCost.Equal(price("9.99")))
}

func TestRunningTotalStaysExact(t *testing.T) {
	cat := catalog{
		"a": {Name: "a", Price: price("0.1")},
		"b": {Name: "b", Price: price("0.2")},
		"c": {Name: "c", Price: price("0.3")},
	}
	var o *Order
	var err error
	steps := []struct {
		add  bool
		name string
		qty  int
	}{
		{true, "a", 3}, {true, "b", 1}, {false, "a", 1}, {true, "c", 2},
		{false, "b", 4}, {true, "a", 1}, {false, "c", 1}, {false, "a", 10},
	}
	for _, s := range steps {
		if s.add {
			o, err = AddItems(o, cat, s.name, s.qty)
		} else {
			_, err = RemoveItems(o, s.name, s.qty)
		}
		require.NoError(t, err)
		requireConsistent(t, o)
	}
	assert.True(t, o.TotalCost.Equal(price("0.3")))
}

func TestVerifyDetectsDrift(t *testing.T) {
	o := &Order{Items: []Item{{Name: "x", Price: price("1")}}, TotalCost: price("2")}
	err := verify(o)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
}

func TestItemValidate(t *testing.T) {
	assert.NoError(t, Item{Name: "Coffee", Price: decimal.Zero}.Validate())
	assert.ErrorIs(t, Item{Price: price("1")}.Validate(), ErrInvalidItem)
	assert.ErrorIs(t, Item{Name: "x", Price: price("-1")}.Validate(), ErrInvalidItem)
}

func TestQuantityBound(t *testing.T) {
	cat := testCatalog()
	o, err := AddItems(nil, cat, "Coffee", MaxQuantity)
	require.NoError(t, err)
	require.Len(t, o.Items, MaxQuantity)
	before := o.Clone()

	for _, q := range []int{MaxQuantity + 1, math.MaxInt} {
		got, err := AddItems(o, cat, "Coffee", q)
		require.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Same(t, o, got)

		none, err := AddItems(nil, cat, "Coffee", q)
		require.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Nil(t, none)

		n, err := RemoveItems(o, "Coffee", q)
		require.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Zero(t, n)
	}
	assert.Equal(t, before, o)

	n, err := RemoveItems(o, "Coffee", MaxQuantity)
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, n)
}
