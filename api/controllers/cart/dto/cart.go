package cartdto

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/rocketcart/internal/cart"
)

// Cart is the cart as shown to UI callers. Items keep every product field.
type Cart struct {
	Items []cart.Item     `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Outcome reports how a mutation ended.
type Outcome struct {
	Kind    cart.OutcomeKind `json:"kind"`
	Applied bool             `json:"applied"`
	Message string           `json:"message,omitempty"`
}

// MutationResult is returned by every cart mutation, successful or not.
type MutationResult struct {
	Cart          Cart     `json:"cart"`
	Outcome       Outcome  `json:"outcome"`
	Notifications []string `json:"notifications"`
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type UpdateItemRequest struct {
	Amount *int `json:"amount" validate:"required"`
}
