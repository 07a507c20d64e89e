package cart

import "context"

// Inventory answers stock and product metadata lookups.
type Inventory interface {
	Stock(ctx context.Context, id ProductID) (Stock, error)
	Product(ctx context.Context, id ProductID) (Product, error)
}

// SnapshotStore persists the serialized cart as a single blob.
// Load reports ok=false when nothing has been saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) (snapshot []byte, ok bool, err error)
	Save(ctx context.Context, snapshot []byte) error
}

// Notifier receives user-facing warnings. Warn must not block.
type Notifier interface {
	Warn(ctx context.Context, message string)
}

// Service is the cart surface exposed to callers.
type Service interface {
	Cart() Cart
	AddProduct(ctx context.Context, id ProductID) Outcome
	RemoveProduct(ctx context.Context, id ProductID) Outcome
	UpdateProductAmount(ctx context.Context, in UpdateAmount) Outcome
}

var _ Service = (*Store)(nil)
