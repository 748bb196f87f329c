package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"
	"app/internal/tax"
)

// =====================
// TxManager / TxRepos mocks
// =====================

type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders      repo.OrderRepository
	orderItems  repo.OrderItemRepository
	promoCodes  repo.PromoCodeRepository
	promoUsages repo.PromoCodeUsageRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository                   { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository           { return r.orderItems }
func (r *TxReposMock) PromoCodes() repo.PromoCodeRepository           { return r.promoCodes }
func (r *TxReposMock) PromoCodeUsages() repo.PromoCodeUsageRepository { return r.promoUsages }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateSchedule(ctx context.Context, orderID int64, scheduledDate *time.Time) error {
	args := m.Called(ctx, orderID, scheduledDate)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdatePayment(ctx context.Context, orderID int64, status model.PaymentStatus, ref string) error {
	args := m.Called(ctx, orderID, status, ref)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateTotals(ctx context.Context, order model.Order, expectedVersion int) error {
	args := m.Called(ctx, order, expectedVersion)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) DeleteNonPostByOrderID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type PromoCodeRepoMock struct{ mock.Mock }

func (m *PromoCodeRepoMock) FindByCode(ctx context.Context, code string) (model.PromoCode, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(model.PromoCode)
	return p, args.Error(1)
}

func (m *PromoCodeRepoMock) FindByID(ctx context.Context, promoID int64) (model.PromoCode, error) {
	args := m.Called(ctx, promoID)
	p, _ := args.Get(0).(model.PromoCode)
	return p, args.Error(1)
}

func (m *PromoCodeRepoMock) Create(ctx context.Context, promo model.PromoCode) (int64, error) {
	args := m.Called(ctx, promo)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PromoCodeRepoMock) List(ctx context.Context, page int, limit int) ([]model.PromoCode, int64, error) {
	args := m.Called(ctx, page, limit)
	promos, _ := args.Get(0).([]model.PromoCode)
	return promos, args.Get(1).(int64), args.Error(2)
}

func (m *PromoCodeRepoMock) Deactivate(ctx context.Context, promoID int64) error {
	args := m.Called(ctx, promoID)
	return args.Error(0)
}

func (m *PromoCodeRepoMock) Delete(ctx context.Context, promoID int64) error {
	args := m.Called(ctx, promoID)
	return args.Error(0)
}

type PromoUsageRepoMock struct{ mock.Mock }

func (m *PromoUsageRepoMock) Create(ctx context.Context, usage model.PromoCodeUsage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *PromoUsageRepoMock) CountByUserAndPromo(ctx context.Context, userID int64, promoID int64) (int64, error) {
	args := m.Called(ctx, userID, promoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PromoUsageRepoMock) CountByPromo(ctx context.Context, promoID int64) (int64, error) {
	args := m.Called(ctx, promoID)
	return args.Get(0).(int64), args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// Oracle / Charger stubs
// =====================

type OracleStub struct {
	Res tax.Result
	Err error
}

func (o *OracleStub) Calculate(ctx context.Context, addr tax.Address, lines []tax.Line) (tax.Result, error) {
	return o.Res, o.Err
}

type ChargerMock struct{ mock.Mock }

func (m *ChargerMock) Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(payment.ChargeResult)
	return res, args.Error(1)
}

// =====================
// Helpers
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
