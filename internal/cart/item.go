package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	fieldID     = "id"
	fieldAmount = "amount"
	fieldTitle  = "title"
	fieldPrice  = "price"
	fieldImage  = "image"
)

// ProductID identifies a product in the inventory and in the cart.
type ProductID int64

func (id ProductID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseProductID parses a decimal product id.
func ParseProductID(raw string) (ProductID, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q: %w", raw, err)
	}
	return ProductID(v), nil
}

// Stock is the available quantity the inventory reports for a product.
type Stock struct {
	ProductID ProductID `json:"id"`
	Amount    int       `json:"amount"`
}

// Product is the inventory's metadata for a product. Attributes holds every field
// except the id, as raw JSON, so unknown fields survive into the snapshot.
type Product struct {
	ID         ProductID
	Attributes map[string]json.RawMessage
}

// Item is one cart entry. Amount is always >= 1 for items held by a Cart.
// The attribute map is never mutated after construction, so copies may share it.
type Item struct {
	ID     ProductID
	Amount int
	attrs  map[string]json.RawMessage
}

// NewItem builds a cart entry for id from product metadata.
func NewItem(id ProductID, attrs map[string]json.RawMessage, amount int) Item {
	clean := make(map[string]json.RawMessage, len(attrs))
	for k, v := range attrs {
		if k == fieldID || k == fieldAmount {
			continue
		}
		clean[k] = append(json.RawMessage(nil), v...)
	}
	return Item{ID: id, Amount: amount, attrs: clean}
}

// Attribute returns the raw JSON of a product field.
func (i Item) Attribute(name string) (json.RawMessage, bool) {
	v, ok := i.attrs[name]
	return v, ok
}

func (i Item) Title() string {
	return i.stringAttr(fieldTitle)
}

func (i Item) Image() string {
	return i.stringAttr(fieldImage)
}

// Price returns the unit price when the product carries a numeric one.
func (i Item) Price() (decimal.Decimal, bool) {
	raw, ok := i.attrs[fieldPrice]
	if !ok {
		return decimal.Zero, false
	}
	text := string(bytes.TrimSpace(raw))
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = unquoted
	}
	price, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	return price, true
}

// Subtotal is price times amount, zero when the price is unknown.
func (i Item) Subtotal() decimal.Decimal {
	price, ok := i.Price()
	if !ok {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(i.Amount)))
}

func (i Item) withAmount(amount int) Item {
	i.Amount = amount
	return i
}

func (i Item) stringAttr(name string) string {
	raw, ok := i.attrs[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func (i Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(i.attrs)+2)
	for k, v := range i.attrs {
		out[k] = v
	}
	id, err := json.Marshal(int64(i.ID))
	if err != nil {
		return nil, err
	}
	amount, err := json.Marshal(i.Amount)
	if err != nil {
		return nil, err
	}
	out[fieldID] = id
	out[fieldAmount] = amount
	return json.Marshal(out)
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("cart item must be an object")
	}

	rawID, ok := fields[fieldID]
	if !ok {
		return fmt.Errorf("cart item missing %q", fieldID)
	}
	var id int64
	if err := json.Unmarshal(rawID, &id); err != nil {
		return fmt.Errorf("cart item %q: %w", fieldID, err)
	}

	rawAmount, ok := fields[fieldAmount]
	if !ok {
		return fmt.Errorf("cart item %d missing %q", id, fieldAmount)
	}
	var amount int
	if err := json.Unmarshal(rawAmount, &amount); err != nil {
		return fmt.Errorf("cart item %d %q: %w", id, fieldAmount, err)
	}

	*i = NewItem(ProductID(id), fields, amount)
	return nil
}
