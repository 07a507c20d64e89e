package cart

import (
	"encoding/json"
	"fmt"
)

// DefaultSnapshotKey is the storage key the cart snapshot lives under.
const DefaultSnapshotKey = "@RocketShoes:cart"

// EncodeSnapshot serializes the cart as a JSON array of item objects.
func EncodeSnapshot(c Cart) ([]byte, error) {
	return json.Marshal(c)
}

// DecodeSnapshot parses a snapshot and checks the cart invariants.
func DecodeSnapshot(data []byte) (Cart, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return Cart{}, fmt.Errorf("decode cart snapshot: %w", err)
	}
	c, err := NewCart(items...)
	if err != nil {
		return Cart{}, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return c, nil
}
