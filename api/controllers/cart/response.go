package cart

import (
	"context"

	cartdto "github.com/angelmondragon/rocketcart/api/controllers/cart/dto"
	"github.com/angelmondragon/rocketcart/internal/cart"
	"github.com/angelmondragon/rocketcart/internal/notify"
)

func newCartView(c cart.Cart) cartdto.Cart {
	return cartdto.Cart{
		Items: c.Items(),
		Count: c.Count(),
		Total: c.Total(),
	}
}

func newMutationResult(ctx context.Context, outcome cart.Outcome) cartdto.MutationResult {
	notifications := []string{}
	if inbox, ok := notify.InboxFrom(ctx); ok {
		notifications = append(notifications, inbox.Drain()...)
	}
	return cartdto.MutationResult{
		Cart: newCartView(outcome.Cart),
		Outcome: cartdto.Outcome{
			Kind:    outcome.Kind,
			Applied: outcome.OK(),
			Message: outcome.Message,
		},
		Notifications: notifications,
	}
}
