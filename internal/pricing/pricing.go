// Package pricing computes the monetary breakdown of an order: subtotal,
// promo discount, surcharges, tax and grand total. The same rules run at
// checkout, promo preview and order edit so totals never drift between
// paths. Everything is decimal arithmetic rounded to cents.
package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	"app/internal/tax"
)

// Flat rate charged whenever the tax oracle is unavailable or classifies
// the service as non-taxable. The business always charges 6%.
var FallbackRate = decimal.New(6, -2)

var oneHundred = decimal.New(100, 0)

// Promo ineligibility. The message is shown to the customer as-is.
type PromoError struct {
	Message string
}

func (e *PromoError) Error() string {
	return e.Message
}

// Subtotal sums line totals. Each line already carries its own 2-decimal
// total; no further rounding happens here.
func Subtotal(items []model.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.TotalPrice)
	}
	return sum
}

// ValidatePromo runs the eligibility checks in order and returns the first
// failure as a *PromoError. The not-found case is the caller's ("Invalid
// promo code"); everything here assumes the code resolved.
func ValidatePromo(p model.PromoCode, subtotal decimal.Decimal, userUses int64, now time.Time) error {
	if !p.IsActive {
		return &PromoError{Message: "This promo code is no longer active"}
	}
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return &PromoError{Message: "This promo code is not yet active"}
	}
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return &PromoError{Message: "This promo code has expired"}
	}
	if p.MaxUses != nil && userUses >= int64(*p.MaxUses) {
		return &PromoError{Message: "You have used this promo code the maximum number of times"}
	}
	if p.MinOrderAmount != nil && subtotal.LessThan(*p.MinOrderAmount) {
		return &PromoError{
			Message: fmt.Sprintf("This promo code requires a minimum order of $%s", p.MinOrderAmount.StringFixed(2)),
		}
	}
	return nil
}

// Discount computes the promo amount against a subtotal. Never negative,
// never more than the subtotal, rounded to cents.
func Discount(p model.PromoCode, subtotal decimal.Decimal) (decimal.Decimal, error) {
	var d decimal.Decimal
	switch p.DiscountType {
	case model.DiscountTypePercentage:
		d = subtotal.Mul(p.DiscountValue).Div(oneHundred)
	case model.DiscountTypeFixed:
		d = p.DiscountValue
	default:
		return decimal.Zero, fmt.Errorf("unknown discount type %q", p.DiscountType)
	}

	d = d.Round(2)
	if d.GreaterThan(subtotal) {
		d = subtotal
	}
	if d.IsNegative() {
		d = decimal.Zero
	}
	return d, nil
}

// DiscountedSubtotal floors at zero: a fixed discount larger than the
// subtotal never produces a credit.
func DiscountedSubtotal(subtotal, discount decimal.Decimal) decimal.Decimal {
	d := subtotal.Sub(discount)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// TaxableBase is discounted subtotal plus the taxable fees. The fuel
// surcharge is a pass-through and stays out of the tax base.
func TaxableBase(subtotal, discount, expediteFee, noPostSurcharge decimal.Decimal) decimal.Decimal {
	return DiscountedSubtotal(subtotal, discount).Add(expediteFee).Add(noPostSurcharge)
}

// Total is the grand-total identity every order row must satisfy.
func Total(subtotal, discount, fuelSurcharge, expediteFee, noPostSurcharge, taxAmount decimal.Decimal) decimal.Decimal {
	return DiscountedSubtotal(subtotal, discount).
		Add(fuelSurcharge).
		Add(expediteFee).
		Add(noPostSurcharge).
		Add(taxAmount)
}

type TaxMethod string

const (
	TaxMethodOracle   TaxMethod = "stripe_tax"
	TaxMethodFallback TaxMethod = "fallback"
)

type TaxQuote struct {
	Tax          decimal.Decimal
	Rate         decimal.Decimal
	Method       TaxMethod
	Jurisdiction string
}

// FallbackTax applies the flat rate without consulting the oracle. Used
// directly on the edit path and as the recovery for oracle failures.
func FallbackTax(taxable decimal.Decimal) TaxQuote {
	return TaxQuote{
		Tax:          taxable.Mul(FallbackRate).Round(2),
		Rate:         FallbackRate,
		Method:       TaxMethodFallback,
		Jurisdiction: "Kentucky (fallback)",
	}
}

// QuoteTax asks the oracle for a rate by address. Three outcomes:
//   - oracle errors: flat-rate fallback
//   - oracle returns zero (non-taxable classification): flat rate anyway;
//     the business charges 6% regardless
//   - oracle returns a positive amount: use it, rate and jurisdiction from
//     the first breakdown entry
func QuoteTax(ctx context.Context, oracle tax.Oracle, taxable decimal.Decimal, addr tax.Address, lines []tax.Line) TaxQuote {
	res, err := oracle.Calculate(ctx, addr, lines)
	if err != nil {
		return FallbackTax(taxable)
	}

	if res.TaxCents == 0 {
		q := FallbackTax(taxable)
		q.Jurisdiction = "Kentucky (6% applied)"
		return q
	}

	q := TaxQuote{
		Tax:    decimal.New(res.TaxCents, -2),
		Method: TaxMethodOracle,
	}
	if len(res.Breakdown) > 0 {
		q.Jurisdiction = res.Breakdown[0].Jurisdiction
		if rate, perr := decimal.NewFromString(res.Breakdown[0].Percentage); perr == nil {
			// percentage string, stored as a fraction
			q.Rate = rate.Div(oneHundred)
		}
	}
	return q
}
