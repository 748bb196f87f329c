package usecase

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	"app/internal/pricing"
	"app/internal/tax"
)

type TaxUsecase struct {
	oracle tax.Oracle
}

func NewTaxUsecase(oracle tax.Oracle) *TaxUsecase {
	return &TaxUsecase{oracle: oracle}
}

type TaxPreviewItem struct {
	TotalPrice decimal.Decimal `json:"total_price"`
	ItemType   string          `json:"item_type"`
}

type TaxPreviewInput struct {
	Items       []TaxPreviewItem `json:"items"`
	ExpediteFee decimal.Decimal  `json:"expedite_fee"`
	Discount    decimal.Decimal  `json:"discount"`
	Address     tax.Address      `json:"address"`
}

type TaxPreviewOutput struct {
	Tax           decimal.Decimal `json:"tax"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxMethod     string          `json:"tax_method"`
	Jurisdiction  string          `json:"jurisdiction"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
}

func (u *TaxUsecase) Preview(ctx context.Context, in TaxPreviewInput) (TaxPreviewOutput, error) {
	if len(in.Items) == 0 {
		return TaxPreviewOutput{}, NewHTTPError(http.StatusBadRequest, "items are required")
	}
	if in.Discount.IsNegative() || in.ExpediteFee.IsNegative() {
		return TaxPreviewOutput{}, NewHTTPError(http.StatusBadRequest, "amounts must be >= 0")
	}

	items := make([]model.OrderItem, 0, len(in.Items))
	for i, it := range in.Items {
		itemType, err := model.ParseItemType(it.ItemType)
		if err != nil {
			return TaxPreviewOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if it.TotalPrice.IsNegative() {
			return TaxPreviewOutput{}, NewHTTPError(http.StatusBadRequest, "total_price must be >= 0")
		}
		items = append(items, model.OrderItem{
			ItemType:    itemType,
			Description: fmt.Sprintf("%s-%d", itemType, i+1),
			TotalPrice:  it.TotalPrice.Round(2),
		})
	}

	subtotal := pricing.Subtotal(items)
	taxable := pricing.TaxableBase(subtotal, in.Discount, in.ExpediteFee, decimal.Zero)
	quote := pricing.QuoteTax(ctx, u.oracle, taxable, in.Address, oracleLines(items, in.ExpediteFee, in.Discount))

	return TaxPreviewOutput{
		Tax:           quote.Tax,
		TaxRate:       quote.Rate,
		TaxMethod:     string(quote.Method),
		Jurisdiction:  quote.Jurisdiction,
		TaxableAmount: taxable,
	}, nil
}
