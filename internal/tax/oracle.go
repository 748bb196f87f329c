package tax

import "context"

type Address struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// One taxable line reference, amount in cents.
type Line struct {
	Reference   string `json:"reference"`
	AmountCents int64  `json:"amount"`
}

type RateEntry struct {
	Jurisdiction string `json:"jurisdiction"`
	// rate as a percentage string, e.g. "6.0"
	Percentage string `json:"percentage_decimal"`
}

type Result struct {
	TaxCents  int64       `json:"tax_amount_exclusive"`
	Breakdown []RateEntry `json:"tax_breakdown"`
}

// Address-based tax lookup. May fail or classify the service as
// non-taxable (zero tax); callers fall back to the flat rate.
type Oracle interface {
	Calculate(ctx context.Context, addr Address, lines []Line) (Result, error)
}
