// Package menu holds the catalog of purchasable items.
package menu

import "callorder/pkg/order"

// Catalog maps item names to item definitions. It is not safe for concurrent
// use; the store serialises access to it.
type Catalog struct {
	items map[string]order.Item
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{items: make(map[string]order.Item)}
}

// Upsert inserts the item or overwrites the entry with the same name.
func (c *Catalog) Upsert(it order.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	c.items[it.Name] = it
	return nil
}

// Clear removes every entry.
func (c *Catalog) Clear() {
	clear(c.items)
}

// Lookup returns the item stored under name.
func (c *Catalog) Lookup(name string) (order.Item, bool) {
	it, ok := c.items[name]
	return it, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Snapshot returns a copy of the full mapping.
func (c *Catalog) Snapshot() Menu {
	items := make(map[string]order.Item, len(c.items))
	for k, v := range c.items {
		items[k] = v
	}
	return Menu{Items: items}
}

// Menu is a read-only view of the catalog.
type Menu struct {
	Items map[string]order.Item `json:"items"`
}

// Lookup lets a snapshot serve as an order.Catalog.
func (m Menu) Lookup(name string) (order.Item, bool) {
	it, ok := m.Items[name]
	return it, ok
}
