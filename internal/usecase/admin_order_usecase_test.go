package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"
)

func newAdminOrderUC() (*usecase.AdminOrderUsecase, *OrderRepoMock, *OrderItemRepoMock, *AuditRepoMock) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	audits := new(AuditRepoMock)
	return usecase.NewAdminOrderUsecase(orders, items, audits, testLogger()), orders, items, audits
}

func TestAdminOrderList_UnknownStatus(t *testing.T) {
	uc, _, _, _ := newAdminOrderUC()

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Status: "shipped"})
	assertErrContains(t, err, "unknown status")
}

func TestAdminOrderList_DefaultsPaging(t *testing.T) {
	uc, orders, _, _ := newAdminOrderUC()

	orders.On("ListAdmin", mock.Anything, mock.MatchedBy(func(f repo.AdminOrderListFilter) bool {
		return f.Page == 1 && f.Limit == 50
	})).Return([]model.Order{{ID: 1}}, int64(1), nil)

	out, err := uc.List(context.Background(), repo.AdminOrderListFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.Total)
	assert.Len(t, out.Orders, 1)
	orders.AssertExpectations(t)
}

func TestAdminOrderUpdateStatus_UnknownStatus(t *testing.T) {
	uc, _, _, _ := newAdminOrderUC()

	_, err := uc.UpdateStatus(context.Background(), 1, 10, usecase.UpdateOrderStatusInput{Status: "shipped"})
	assertErrContains(t, err, "unknown status")
}

func TestAdminOrderUpdateStatus_TerminalStateRefused(t *testing.T) {
	for _, st := range []model.OrderStatus{model.OrderStatusCompleted, model.OrderStatusCancelled} {
		uc, orders, _, _ := newAdminOrderUC()

		orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{ID: 10, Status: st}, nil)

		_, err := uc.UpdateStatus(context.Background(), 1, 10, usecase.UpdateOrderStatusInput{Status: "pending"})
		assertErrContains(t, err, "order status is final")

		orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestAdminOrderUpdateStatus_PersistsSchedule(t *testing.T) {
	uc, orders, _, audits := newAdminOrderUC()

	when := timePtr(time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC))

	orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID:     10,
		Status: model.OrderStatusPending,
	}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusConfirmed).Return(nil)
	orders.On("UpdateSchedule", mock.Anything, int64(10), when).Return(nil)
	audits.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.UpdateStatus(context.Background(), 1, 10, usecase.UpdateOrderStatusInput{
		Status:        "confirmed",
		ScheduledDate: when,
	})
	require.NoError(t, err)

	assert.Equal(t, when, out.ScheduledDate)
	orders.AssertExpectations(t)
}

func TestAdminOrderUpdateStatus_AuditsTransition(t *testing.T) {
	uc, orders, _, audits := newAdminOrderUC()

	orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID:     10,
		Status: model.OrderStatusConfirmed,
	}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusCompleted).Return(nil)

	audits.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.ActorUserID == int64(99) &&
			a.Action == model.AuditActionUpdateOrderStatus &&
			a.ResourceType == model.AuditResourceOrder &&
			a.ResourceID == int64(10) &&
			a.BeforeJSON == `{"status":"confirmed"}` &&
			a.AfterJSON == `{"status":"completed"}`
	})).Return(nil)

	out, err := uc.UpdateStatus(context.Background(), 99, 10, usecase.UpdateOrderStatusInput{Status: "completed"})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusCompleted, out.Status)
	audits.AssertExpectations(t)
	orders.AssertExpectations(t)
}
