package cart

import (
	"net/http"

	cartdto "github.com/angelmondragon/rocketcart/api/controllers/cart/dto"
	"github.com/angelmondragon/rocketcart/api/responses"
	"github.com/angelmondragon/rocketcart/api/validators"
	"github.com/angelmondragon/rocketcart/internal/cart"
	pkgerrors "github.com/angelmondragon/rocketcart/pkg/errors"
	"github.com/angelmondragon/rocketcart/pkg/logger"
)

const productIDParam = "productId"

// CartFetch returns the current cart.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		responses.WriteSuccess(w, newCartView(svc.Cart()))
	}
}

// CartAddItem adds one unit of a product.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome := svc.AddProduct(r.Context(), cart.ProductID(payload.ProductID))
		responses.WriteSuccess(w, newMutationResult(r.Context(), outcome))
	}
}

// CartRemoveItem drops a product from the cart.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := validators.ParsePathInt64(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome := svc.RemoveProduct(r.Context(), cart.ProductID(productID))
		responses.WriteSuccess(w, newMutationResult(r.Context(), outcome))
	}
}

// CartUpdateItem sets the amount of a product already in the cart.
func CartUpdateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := validators.ParsePathInt64(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.UpdateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome := svc.UpdateProductAmount(r.Context(), cart.UpdateAmount{
			ProductID: cart.ProductID(productID),
			Amount:    *payload.Amount,
		})
		responses.WriteSuccess(w, newMutationResult(r.Context(), outcome))
	}
}
