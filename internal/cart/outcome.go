package cart

import (
	pkgerrors "github.com/angelmondragon/rocketcart/pkg/errors"
)

// User-facing notification messages, one per failure path.
const (
	MsgStockExceeded = "requested quantity exceeds stock"
	MsgAddFailed     = "error adding product"
	MsgRemoveFailed  = "error removing product"
	MsgUpdateFailed  = "error updating quantity"
)

type OutcomeKind string

const (
	OutcomeApplied          OutcomeKind = "applied"
	OutcomeIgnored          OutcomeKind = "ignored"
	OutcomeStockExceeded    OutcomeKind = "stock_exceeded"
	OutcomeNotFound         OutcomeKind = "not_found"
	OutcomeTransportFailure OutcomeKind = "transport_failure"
)

// Outcome is the result of a cart operation. Failures are never returned as
// errors; Err carries the cause for callers that want to inspect it. Cart is
// the cart as this operation left it.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Err     error
	Cart    Cart
}

// OK reports whether the operation changed the cart.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeApplied
}

func kindFromError(err error) OutcomeKind {
	switch pkgerrors.CodeOf(err) {
	case pkgerrors.CodeNotFound:
		return OutcomeNotFound
	case pkgerrors.CodeStockExceeded:
		return OutcomeStockExceeded
	default:
		return OutcomeTransportFailure
	}
}
