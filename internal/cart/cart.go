package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Cart is an ordered, id-unique list of items. Values are immutable: every
// change builds a new backing slice, so a Cart handed out earlier never changes.
type Cart struct {
	items []Item
}

// Items returns a copy of the entries in insertion order.
func (c Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len is the number of distinct products.
func (c Cart) Len() int {
	return len(c.items)
}

// Count returns the number of distinct products in the cart.
func (c Cart) Count() int {
	return len(c.items)
}

func (c Cart) Find(id ProductID) (Item, bool) {
	if idx := c.index(id); idx >= 0 {
		return c.items[idx], true
	}
	return Item{}, false
}

// Quantities maps each product to its amount.
func (c Cart) Quantities() map[ProductID]int {
	out := make(map[ProductID]int, len(c.items))
	for _, item := range c.items {
		out[item.ID] = item.Amount
	}
	return out
}

// Total sums the item subtotals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Same reports whether both values share the same backing storage, i.e. one
// was not rebuilt from the other.
func (c Cart) Same(other Cart) bool {
	if len(c.items) != len(other.items) || cap(c.items) != cap(other.items) {
		return false
	}
	if len(c.items) == 0 {
		return (c.items == nil) == (other.items == nil)
	}
	return &c.items[0] == &other.items[0]
}

func (c Cart) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

func (c Cart) index(id ProductID) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (c Cart) withItem(item Item) Cart {
	next := make([]Item, len(c.items), len(c.items)+1)
	copy(next, c.items)
	return Cart{items: append(next, item)}
}

func (c Cart) withAmount(id ProductID, amount int) Cart {
	next := make([]Item, len(c.items))
	for i, item := range c.items {
		if item.ID == id {
			item = item.withAmount(amount)
		}
		next[i] = item
	}
	return Cart{items: next}
}

func (c Cart) without(id ProductID) Cart {
	next := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	return Cart{items: next}
}

// NewCart builds a cart from items, enforcing the amount floor and id uniqueness.
func NewCart(items ...Item) (Cart, error) {
	seen := make(map[ProductID]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Amount < 1 {
			return Cart{}, fmt.Errorf("product %d has amount %d", item.ID, item.Amount)
		}
		if _, dup := seen[item.ID]; dup {
			return Cart{}, fmt.Errorf("product %d appears more than once", item.ID)
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return Cart{items: out}, nil
}
