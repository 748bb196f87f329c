package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	"app/internal/pricing"
	repo "app/internal/repository"
)

type EditOrderInput struct {
	Items           []OrderItemInput
	PropertyNotes   *string
	ExpectedVersion int
}

// EditOrder replaces the non-post lines of an order and recomputes its
// totals. The post line and the one-time fees (fuel, expedite, no-post)
// are carried over from the original order untouched, so repeating an
// edit never re-levies anything. Tax on this path is always the flat
// fallback rate; the oracle is not consulted again.
func (u *OrderUsecase) EditOrder(ctx context.Context, userID int64, orderID int64, in EditOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.ExpectedVersion <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "version is required")
	}

	newItems, err := buildOrderItems(in.Items)
	if err != nil {
		return OrderOutput{}, err
	}
	for _, it := range newItems {
		if it.ItemType == model.ItemTypePost {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "post item cannot be changed")
		}
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		if !o.Editable() {
			return NewHTTPError(http.StatusBadRequest, "order can no longer be edited")
		}
		if o.Version != in.ExpectedVersion {
			return NewHTTPError(http.StatusConflict, "order was changed by another request")
		}

		existing, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// the post line survives every edit verbatim
		var postItems []model.OrderItem
		postTotal := decimal.Zero
		for _, it := range existing {
			if it.ItemType == model.ItemTypePost {
				postItems = append(postItems, it)
				postTotal = postTotal.Add(it.TotalPrice)
			}
		}

		subtotal := postTotal.Add(pricing.Subtotal(newItems))

		// amount-only recomputation: an attached promo keeps discounting
		// the order it was redeemed on, eligibility is not re-checked
		discount := decimal.Zero
		if o.PromoCodeID != nil {
			p, err := r.PromoCodes().FindByID(ctx, *o.PromoCodeID)
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err == nil && p.IsActive {
				d, derr := pricing.Discount(p, subtotal)
				if derr != nil {
					return NewHTTPError(http.StatusInternalServerError, "pricing error")
				}
				discount = d
			}
		}

		taxable := pricing.TaxableBase(subtotal, discount, o.ExpediteFee, o.NoPostSurcharge)
		quote := pricing.FallbackTax(taxable)

		o.Subtotal = subtotal
		o.Discount = discount
		o.Tax = quote.Tax
		o.TaxRate = quote.Rate
		o.TaxMethod = string(quote.Method)
		o.TaxJurisdiction = quote.Jurisdiction
		o.Total = pricing.Total(subtotal, discount, o.FuelSurcharge, o.ExpediteFee, o.NoPostSurcharge, quote.Tax)
		if in.PropertyNotes != nil {
			o.PropertyNotes = *in.PropertyNotes
		}

		if err := r.OrderItems().DeleteNonPostByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, newItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().UpdateTotals(ctx, o, in.ExpectedVersion); err != nil {
			if errors.Is(err, repo.ErrVersionConflict) {
				return NewHTTPError(http.StatusConflict, "order was changed by another request")
			}
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		o.Version = in.ExpectedVersion + 1

		items := make([]model.OrderItem, 0, len(postItems)+len(newItems))
		items = append(items, postItems...)
		for _, it := range newItems {
			it.OrderID = orderID
			items = append(items, it)
		}

		out = OrderOutput{Order: o, Items: items}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
