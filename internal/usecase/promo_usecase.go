package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	"app/internal/pricing"
	repo "app/internal/repository"
)

type PromoUsecase struct {
	promos repo.PromoCodeRepository
	usages repo.PromoCodeUsageRepository
}

func NewPromoUsecase(promos repo.PromoCodeRepository, usages repo.PromoCodeUsageRepository) *PromoUsecase {
	return &PromoUsecase{promos: promos, usages: usages}
}

type PromoCodeOutput struct {
	ID                 int64              `json:"id"`
	Code               string             `json:"code"`
	Description        string             `json:"description"`
	DiscountType       model.DiscountType `json:"discount_type"`
	DiscountValue      decimal.Decimal    `json:"discount_value"`
	WaiveFuelSurcharge bool               `json:"waive_fuel_surcharge"`
}

type PromoValidateOutput struct {
	Valid     bool            `json:"valid"`
	PromoCode PromoCodeOutput `json:"promoCode"`
	Discount  decimal.Decimal `json:"discount"`
}

// Validate runs the full eligibility check against a prospective subtotal
// and returns the discount that checkout would apply.
func (u *PromoUsecase) Validate(ctx context.Context, userID int64, code string, subtotal decimal.Decimal) (PromoValidateOutput, error) {
	if userID <= 0 {
		return PromoValidateOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if subtotal.IsNegative() {
		return PromoValidateOutput{}, NewHTTPError(http.StatusBadRequest, "invalid subtotal")
	}

	normalized := model.NormalizePromoCode(code)
	if normalized == "" {
		return PromoValidateOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid promo code")
	}

	p, err := u.promos.FindByCode(ctx, normalized)
	if errors.Is(err, repo.ErrNotFound) {
		return PromoValidateOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid promo code")
	}
	if err != nil {
		return PromoValidateOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	uses, err := u.usages.CountByUserAndPromo(ctx, userID, p.ID)
	if err != nil {
		return PromoValidateOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if verr := pricing.ValidatePromo(p, subtotal, uses, time.Now()); verr != nil {
		return PromoValidateOutput{}, NewHTTPError(http.StatusBadRequest, verr.Error())
	}

	discount, err := pricing.Discount(p, subtotal)
	if err != nil {
		return PromoValidateOutput{}, NewHTTPError(http.StatusInternalServerError, "pricing error")
	}

	return PromoValidateOutput{
		Valid: true,
		PromoCode: PromoCodeOutput{
			ID:                 p.ID,
			Code:               p.Code,
			Description:        p.Description,
			DiscountType:       p.DiscountType,
			DiscountValue:      p.DiscountValue,
			WaiveFuelSurcharge: p.WaiveFuelSurcharge,
		},
		Discount: discount,
	}, nil
}
