package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"
)

func newAdminPromoUC() (*usecase.AdminPromoUsecase, *PromoCodeRepoMock, *PromoUsageRepoMock, *AuditRepoMock) {
	promos := new(PromoCodeRepoMock)
	usages := new(PromoUsageRepoMock)
	audits := new(AuditRepoMock)
	return usecase.NewAdminPromoUsecase(promos, usages, audits, testLogger()), promos, usages, audits
}

func TestAdminPromoCreate_UnknownDiscountType(t *testing.T) {
	uc, _, _, _ := newAdminPromoUC()

	_, err := uc.Create(context.Background(), 1, usecase.CreatePromoInput{
		Code:          "SAVE",
		DiscountType:  "bogus",
		DiscountValue: d("10"),
	})
	assertErrContains(t, err, "unknown discount type")
}

func TestAdminPromoCreate_PercentageOverHundred(t *testing.T) {
	uc, _, _, _ := newAdminPromoUC()

	_, err := uc.Create(context.Background(), 1, usecase.CreatePromoInput{
		Code:          "SAVE",
		DiscountType:  "percentage",
		DiscountValue: d("150"),
	})
	assertErrContains(t, err, "percentage cannot exceed 100")
}

func TestAdminPromoCreate_DuplicateCode(t *testing.T) {
	uc, promos, _, _ := newAdminPromoUC()

	promos.On("FindByCode", mock.Anything, "SAVE").Return(model.PromoCode{ID: 1, Code: "SAVE"}, nil)

	_, err := uc.Create(context.Background(), 1, usecase.CreatePromoInput{
		Code:          "save",
		DiscountType:  "fixed",
		DiscountValue: d("10.00"),
	})
	assertErrContains(t, err, "code already exists")
}

func TestAdminPromoCreate_NormalizesAndAudits(t *testing.T) {
	uc, promos, _, audits := newAdminPromoUC()

	promos.On("FindByCode", mock.Anything, "SAVE10").Return(model.PromoCode{}, repo.ErrNotFound)
	promos.On("Create", mock.Anything, mock.MatchedBy(func(p model.PromoCode) bool {
		return p.Code == "SAVE10" && p.IsActive
	})).Return(int64(5), nil)
	audits.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.Action == model.AuditActionCreatePromoCode &&
			a.ResourceType == model.AuditResourcePromoCode &&
			a.ResourceID == int64(5) &&
			a.ActorUserID == int64(99)
	})).Return(nil)

	p, err := uc.Create(context.Background(), 99, usecase.CreatePromoInput{
		Code:          "  save10 ",
		DiscountType:  "percentage",
		DiscountValue: d("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
	assert.Equal(t, "SAVE10", p.Code)

	promos.AssertExpectations(t)
	audits.AssertExpectations(t)
}

// A redeemed code is only deactivated; a never-used one is removed.
func TestAdminPromoDelete_UsedCodeIsDeactivated(t *testing.T) {
	uc, promos, usages, audits := newAdminPromoUC()

	promos.On("FindByID", mock.Anything, int64(5)).Return(model.PromoCode{ID: 5, Code: "SAVE10", IsActive: true}, nil)
	usages.On("CountByPromo", mock.Anything, int64(5)).Return(int64(3), nil)
	promos.On("Deactivate", mock.Anything, int64(5)).Return(nil)
	audits.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.Action == model.AuditActionDisablePromoCode && a.ResourceID == int64(5)
	})).Return(nil)

	out, err := uc.Delete(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.True(t, out.Deactivated)
	assert.False(t, out.Deleted)
	promos.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	audits.AssertExpectations(t)
}

func TestAdminPromoDelete_UnusedCodeIsRemoved(t *testing.T) {
	uc, promos, usages, audits := newAdminPromoUC()

	promos.On("FindByID", mock.Anything, int64(6)).Return(model.PromoCode{ID: 6, Code: "FRESH"}, nil)
	usages.On("CountByPromo", mock.Anything, int64(6)).Return(int64(0), nil)
	promos.On("Delete", mock.Anything, int64(6)).Return(nil)
	audits.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.Action == model.AuditActionDeletePromoCode && a.ResourceID == int64(6)
	})).Return(nil)

	out, err := uc.Delete(context.Background(), 1, 6)
	require.NoError(t, err)

	assert.True(t, out.Deleted)
	assert.False(t, out.Deactivated)
	promos.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
}

func TestAdminPromoDelete_NotFound(t *testing.T) {
	uc, promos, _, _ := newAdminPromoUC()

	promos.On("FindByID", mock.Anything, int64(404)).Return(model.PromoCode{}, repo.ErrNotFound)

	_, err := uc.Delete(context.Background(), 1, 404)
	assertErrContains(t, err, "not found")
}
