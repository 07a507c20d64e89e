package cart

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/rocketcart/pkg/errors"
	"github.com/angelmondragon/rocketcart/pkg/logger"
	"github.com/angelmondragon/rocketcart/pkg/metrics"
)

const (
	opAdd    = "add_product"
	opRemove = "remove_product"
	opUpdate = "update_product_amount"
)

// UpdateAmount is the input of UpdateProductAmount.
type UpdateAmount struct {
	ProductID ProductID
	Amount    int
}

// StoreParams wires the collaborators of a Store.
type StoreParams struct {
	Inventory Inventory
	Storage   SnapshotStore
	Notifier  Notifier
	Logger    *logger.Logger
	Metrics   *metrics.CartMetrics
}

// Store owns the cart. Mutations are serialized; reads never wait on I/O.
type Store struct {
	inventory Inventory
	storage   SnapshotStore
	notifier  Notifier
	logg      *logger.Logger
	metrics   *metrics.CartMetrics

	opMu sync.Mutex

	mu   sync.RWMutex
	cart Cart
}

// NewStore builds a Store and loads the persisted snapshot. A snapshot that
// cannot be decoded is replaced by an empty cart; a storage read error is
// returned so an unreachable store is never overwritten with an empty cart.
func NewStore(ctx context.Context, params StoreParams) (*Store, error) {
	if params.Inventory == nil {
		return nil, fmt.Errorf("inventory required")
	}
	if params.Storage == nil {
		return nil, fmt.Errorf("snapshot storage required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.New(logger.Options{ServiceName: "cart", Output: io.Discard})
	}

	s := &Store{
		inventory: params.Inventory,
		storage:   params.Storage,
		notifier:  params.Notifier,
		logg:      logg,
		metrics:   params.Metrics,
	}

	raw, ok, err := s.storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}
	if ok {
		loaded, err := DecodeSnapshot(raw)
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.snapshot.malformed")
		} else {
			s.cart = loaded
		}
	}
	s.metrics.SetItems(s.cart.Len())
	s.logg.Info(s.logg.WithField(ctx, "items", s.cart.Len()), "cart.loaded")

	return s, nil
}

// Cart returns the current cart value.
func (s *Store) Cart() Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

// AddProduct adds one unit of the product, bounded by its stock.
func (s *Store) AddProduct(ctx context.Context, id ProductID) Outcome {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx = s.operationContext(ctx, opAdd, id)
	current := s.Cart()
	existing, found := current.Find(id)

	stock, err := s.stock(ctx, id)
	if err != nil {
		return s.fail(ctx, opAdd, MsgAddFailed, err)
	}

	desired := existing.Amount + 1
	if desired > stock.Amount {
		return s.fail(ctx, opAdd, MsgStockExceeded, stockExceeded(id, desired, stock.Amount))
	}

	var next Cart
	if found {
		next = current.withAmount(id, desired)
	} else {
		product, err := s.product(ctx, id)
		if err != nil {
			return s.fail(ctx, opAdd, MsgAddFailed, err)
		}
		next = current.withItem(NewItem(id, product.Attributes, 1))
	}

	return s.commit(ctx, opAdd, next)
}

// RemoveProduct drops the product's entry from the cart.
func (s *Store) RemoveProduct(ctx context.Context, id ProductID) Outcome {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx = s.operationContext(ctx, opRemove, id)
	current := s.Cart()
	if _, found := current.Find(id); !found {
		return s.fail(ctx, opRemove, MsgRemoveFailed, notInCart(id))
	}

	return s.commit(ctx, opRemove, current.without(id))
}

// UpdateProductAmount sets the amount of an entry already in the cart.
// Amounts below one are ignored without notification.
func (s *Store) UpdateProductAmount(ctx context.Context, in UpdateAmount) Outcome {
	if in.Amount < 1 {
		s.metrics.IncOperation(opUpdate, string(OutcomeIgnored))
		s.logg.Debug(s.operationContext(ctx, opUpdate, in.ProductID), "cart.operation.ignored")
		return Outcome{Kind: OutcomeIgnored, Cart: s.Cart()}
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	ctx = s.operationContext(ctx, opUpdate, in.ProductID)
	current := s.Cart()
	if _, found := current.Find(in.ProductID); !found {
		return s.fail(ctx, opUpdate, MsgUpdateFailed, notInCart(in.ProductID))
	}

	stock, err := s.stock(ctx, in.ProductID)
	if err != nil {
		return s.fail(ctx, opUpdate, MsgUpdateFailed, err)
	}
	if in.Amount > stock.Amount {
		return s.fail(ctx, opUpdate, MsgStockExceeded, stockExceeded(in.ProductID, in.Amount, stock.Amount))
	}

	return s.commit(ctx, opUpdate, current.withAmount(in.ProductID, in.Amount))
}

// commit swaps in the new cart and writes the snapshot. The write is detached
// from caller cancellation so memory and storage agree once the swap happens.
// A failed write is logged and counted; the in-memory cart still advances.
func (s *Store) commit(ctx context.Context, op string, next Cart) Outcome {
	snapshot, err := EncodeSnapshot(next)
	if err != nil {
		return s.fail(ctx, op, failureMessage(op), pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot"))
	}

	s.mu.Lock()
	s.cart = next
	s.mu.Unlock()

	if err := s.storage.Save(context.WithoutCancel(ctx), snapshot); err != nil {
		s.metrics.IncSaveFailure()
		s.logg.Error(ctx, "cart.snapshot.save_failed", err)
	}

	s.metrics.SetItems(next.Len())
	s.metrics.IncOperation(op, string(OutcomeApplied))
	s.logg.Info(s.logg.WithField(ctx, "items", next.Len()), "cart.operation.applied")
	return Outcome{Kind: OutcomeApplied, Cart: next}
}

func (s *Store) fail(ctx context.Context, op, message string, err error) Outcome {
	kind := kindFromError(err)

	s.notifier.Warn(ctx, message)
	s.metrics.IncOperation(op, string(kind))

	dump := pkgerrors.Dump(err)
	s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
		"outcome":     kind,
		"error":       dump.TopMessage,
		"error_code":  dump.Code,
		"error_chain": dump.Chain,
	}), "cart.operation.rejected")

	return Outcome{Kind: kind, Message: message, Err: err, Cart: s.Cart()}
}

func (s *Store) stock(ctx context.Context, id ProductID) (Stock, error) {
	start := time.Now()
	stock, err := s.inventory.Stock(ctx, id)
	s.metrics.ObserveInventory("stock", time.Since(start))
	return stock, err
}

func (s *Store) product(ctx context.Context, id ProductID) (Product, error) {
	start := time.Now()
	product, err := s.inventory.Product(ctx, id)
	s.metrics.ObserveInventory("product", time.Since(start))
	return product, err
}

func (s *Store) operationContext(ctx context.Context, op string, id ProductID) context.Context {
	ctx = s.logg.WithOperation(ctx, op)
	return s.logg.WithProductID(ctx, int64(id))
}

func failureMessage(op string) string {
	switch op {
	case opAdd:
		return MsgAddFailed
	case opRemove:
		return MsgRemoveFailed
	default:
		return MsgUpdateFailed
	}
}

func notInCart(id ProductID) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d is not in the cart", id))
}

func stockExceeded(id ProductID, requested, available int) error {
	return pkgerrors.New(pkgerrors.CodeStockExceeded, fmt.Sprintf("product %d: requested %d, in stock %d", id, requested, available)).
		WithDetails(map[string]any{
			"product_id": int64(id),
			"requested":  requested,
			"available":  available,
		})
}
