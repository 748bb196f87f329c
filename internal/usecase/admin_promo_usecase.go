package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminPromoUsecase struct {
	promos repo.PromoCodeRepository
	usages repo.PromoCodeUsageRepository
	audits repo.AuditLogRepository
	logger *slog.Logger
}

func NewAdminPromoUsecase(
	promos repo.PromoCodeRepository,
	usages repo.PromoCodeUsageRepository,
	audits repo.AuditLogRepository,
	logger *slog.Logger,
) *AdminPromoUsecase {
	return &AdminPromoUsecase{promos: promos, usages: usages, audits: audits, logger: logger}
}

type CreatePromoInput struct {
	Code               string           `json:"code"`
	Description        string           `json:"description"`
	DiscountType       string           `json:"discount_type"`
	DiscountValue      decimal.Decimal  `json:"discount_value"`
	MinOrderAmount     *decimal.Decimal `json:"min_order_amount"`
	MaxUses            *int             `json:"max_uses"`
	StartsAt           *time.Time       `json:"starts_at"`
	ExpiresAt          *time.Time       `json:"expires_at"`
	WaiveFuelSurcharge bool             `json:"waive_fuel_surcharge"`
}

func (u *AdminPromoUsecase) Create(ctx context.Context, actorID int64, in CreatePromoInput) (model.PromoCode, error) {
	code := model.NormalizePromoCode(in.Code)
	if code == "" {
		return model.PromoCode{}, NewHTTPError(http.StatusBadRequest, "code is required")
	}

	var dt model.DiscountType
	switch model.DiscountType(in.DiscountType) {
	case model.DiscountTypePercentage, model.DiscountTypeFixed:
		dt = model.DiscountType(in.DiscountType)
	default:
		return model.PromoCode{}, NewHTTPError(http.StatusBadRequest, "unknown discount type")
	}

	if !in.DiscountValue.IsPositive() {
		return model.PromoCode{}, NewHTTPError(http.StatusBadRequest, "discount_value must be > 0")
	}
	if dt == model.DiscountTypePercentage && in.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return model.PromoCode{}, NewHTTPError(http.StatusBadRequest, "percentage cannot exceed 100")
	}
	if in.MinOrderAmount != nil && in.MinOrderAmount.IsNegative() {
		return model.PromoCode{}, NewHTTPError(http.StatusBadRequest, "min_order_amount must be >= 0")
	}
	if in.MaxUses != nil && *in.MaxUses <= 0 {
		return model.PromoCode{}, NewHTTPError(http.StatusBadRequest, "max_uses must be > 0")
	}
	if in.StartsAt != nil && in.ExpiresAt != nil && !in.ExpiresAt.After(*in.StartsAt) {
		return model.PromoCode{}, NewHTTPError(http.StatusBadRequest, "expires_at must be after starts_at")
	}

	if _, err := u.promos.FindByCode(ctx, code); err == nil {
		return model.PromoCode{}, NewHTTPError(http.StatusConflict, "code already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.PromoCode{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p := model.PromoCode{
		Code:               code,
		Description:        in.Description,
		DiscountType:       dt,
		DiscountValue:      in.DiscountValue.Round(2),
		MinOrderAmount:     in.MinOrderAmount,
		MaxUses:            in.MaxUses,
		StartsAt:           in.StartsAt,
		ExpiresAt:          in.ExpiresAt,
		WaiveFuelSurcharge: in.WaiveFuelSurcharge,
		IsActive:           true,
	}

	id, err := u.promos.Create(ctx, p)
	if err != nil {
		return model.PromoCode{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	p.ID = id

	u.writeAudit(ctx, actorID, model.AuditActionCreatePromoCode, id, nil, p)

	return p, nil
}

type AdminPromoListOutput struct {
	PromoCodes []model.PromoCode `json:"promo_codes"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

func (u *AdminPromoUsecase) List(ctx context.Context, page int, limit int) (AdminPromoListOutput, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	promos, total, err := u.promos.List(ctx, page, limit)
	if err != nil {
		return AdminPromoListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if promos == nil {
		promos = []model.PromoCode{}
	}
	return AdminPromoListOutput{PromoCodes: promos, Total: total, Page: page, Limit: limit}, nil
}

type DeletePromoOutput struct {
	Deleted     bool `json:"deleted"`
	Deactivated bool `json:"deactivated"`
}

// Delete removes a never-used code outright. A code with redemptions is
// only deactivated so past orders keep their discount trail.
func (u *AdminPromoUsecase) Delete(ctx context.Context, actorID int64, promoID int64) (DeletePromoOutput, error) {
	if promoID <= 0 {
		return DeletePromoOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.promos.FindByID(ctx, promoID)
	if errors.Is(err, repo.ErrNotFound) {
		return DeletePromoOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return DeletePromoOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	used, err := u.usages.CountByPromo(ctx, promoID)
	if err != nil {
		return DeletePromoOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if used > 0 {
		if err := u.promos.Deactivate(ctx, promoID); err != nil {
			return DeletePromoOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		after := p
		after.IsActive = false
		u.writeAudit(ctx, actorID, model.AuditActionDisablePromoCode, promoID, p, after)
		return DeletePromoOutput{Deactivated: true}, nil
	}

	if err := u.promos.Delete(ctx, promoID); err != nil {
		return DeletePromoOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	u.writeAudit(ctx, actorID, model.AuditActionDeletePromoCode, promoID, p, nil)
	return DeletePromoOutput{Deleted: true}, nil
}

func (u *AdminPromoUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, promoID int64, before any, after any) {
	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)

	err := u.audits.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourcePromoCode,
		ResourceID:   promoID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		u.logger.Error("audit write failed", "action", string(action), "promo_id", promoID, "error", err.Error())
	}
}
