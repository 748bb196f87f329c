package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"
	"app/internal/usecase"
)

type placeFixture struct {
	tx      *TxManagerMock
	orders  *OrderRepoMock
	items   *OrderItemRepoMock
	promos  *PromoCodeRepoMock
	usages  *PromoUsageRepoMock
	oracle  *OracleStub
	charger *ChargerMock
	uc      *usecase.OrderUsecase
}

func newPlaceFixture() *placeFixture {
	f := &placeFixture{
		tx:      new(TxManagerMock),
		orders:  new(OrderRepoMock),
		items:   new(OrderItemRepoMock),
		promos:  new(PromoCodeRepoMock),
		usages:  new(PromoUsageRepoMock),
		oracle:  &OracleStub{Err: errors.New("oracle down")},
		charger: new(ChargerMock),
	}
	f.tx.Repos = &TxReposMock{
		orders:      f.orders,
		orderItems:  f.items,
		promoCodes:  f.promos,
		promoUsages: f.usages,
	}
	f.uc = usecase.NewOrderUsecase(f.tx, f.orders, f.oracle, f.charger, testConfig(), testLogger())
	return f
}

func basicInput(items ...usecase.OrderItemInput) usecase.PlaceOrderInput {
	return usecase.PlaceOrderInput{
		Items:           items,
		PaymentMethod:   "pm_card",
		PropertyAddress: "123 Main St",
		PropertyCity:    "Louisville",
		PropertyState:   "KY",
		PropertyZip:     "40202",
	}
}

func postInput(unitPrice string) usecase.OrderItemInput {
	return usecase.OrderItemInput{
		ItemType:    "post",
		Description: "Standard post",
		Quantity:    1,
		UnitPrice:   d(unitPrice),
	}
}

func TestPlaceOrder_RequiresExactlyOnePost(t *testing.T) {
	f := newPlaceFixture()

	_, err := f.uc.PlaceOrder(context.Background(), 1, basicInput(signInput("50.00")))
	assertErrContains(t, err, "exactly one post")

	_, err = f.uc.PlaceOrder(context.Background(), 1, basicInput(postInput("50.00"), postInput("50.00")))
	assertErrContains(t, err, "exactly one post")
}

func TestPlaceOrder_SignOnlyCannotIncludePost(t *testing.T) {
	f := newPlaceFixture()

	in := basicInput(postInput("50.00"), signInput("50.00"))
	in.SignOnly = true

	_, err := f.uc.PlaceOrder(context.Background(), 1, in)
	assertErrContains(t, err, "sign-only order cannot include a post")
}

func TestPlaceOrder_UnknownItemTypeRejected(t *testing.T) {
	f := newPlaceFixture()

	in := basicInput(usecase.OrderItemInput{
		ItemType:    "balloon",
		Description: "Balloon",
		Quantity:    1,
		UnitPrice:   d("5.00"),
	})

	_, err := f.uc.PlaceOrder(context.Background(), 1, in)
	assertErrContains(t, err, "unknown item type")
}

func TestPlaceOrder_InvalidPromoCode(t *testing.T) {
	f := newPlaceFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.promos.On("FindByCode", mock.Anything, "NOPE").Return(model.PromoCode{}, repo.ErrNotFound)

	in := basicInput(postInput("50.00"), signInput("50.00"))
	in.PromoCode = "nope"

	_, err := f.uc.PlaceOrder(context.Background(), 1, in)
	assertErrContains(t, err, "Invalid promo code")
}

func TestPlaceOrder_Success_FallbackTax(t *testing.T) {
	f := newPlaceFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)

	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		// subtotal 100, fuel 2.47, fallback tax 6.00, total 108.47
		return o.Subtotal.Equal(d("100.00")) &&
			o.Discount.Equal(decimal.Zero) &&
			o.FuelSurcharge.Equal(d("2.47")) &&
			o.Tax.Equal(d("6.00")) &&
			o.TaxMethod == "fallback" &&
			o.TaxJurisdiction == "Kentucky (fallback)" &&
			o.Total.Equal(d("108.47")) &&
			o.Version == 1 &&
			o.Status == model.OrderStatusPending &&
			o.PaymentStatus == model.PaymentStatusUnpaid
	})).Return(int64(42), nil)

	f.items.On("CreateBulk", mock.Anything, int64(42), mock.Anything).Return(nil)
	f.items.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{}, nil)

	f.charger.On("Charge", mock.Anything, mock.MatchedBy(func(req payment.ChargeRequest) bool {
		return req.AmountCents == 10847 && req.Currency == "usd"
	})).Return(payment.ChargeResult{Ref: "ch_1", Status: "succeeded"}, nil)

	f.orders.On("UpdatePayment", mock.Anything, int64(42), model.PaymentStatusSucceeded, "ch_1").Return(nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(42), model.OrderStatusConfirmed).Return(nil)

	out, err := f.uc.PlaceOrder(context.Background(), 1, basicInput(postInput("50.00"), signInput("50.00")))
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusConfirmed, out.Status)
	assert.Equal(t, model.PaymentStatusSucceeded, out.PaymentStatus)
	assert.Equal(t, "ch_1", out.PaymentRef)

	f.orders.AssertExpectations(t)
	f.charger.AssertExpectations(t)
}

func TestPlaceOrder_SignOnlyChargesSurcharge(t *testing.T) {
	f := newPlaceFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)

	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		// subtotal 100, no-post 10, taxable 110 -> tax 6.60
		// total 100 + 2.47 + 10 + 6.60 = 119.07
		return o.NoPostSurcharge.Equal(d("10.00")) &&
			o.Tax.Equal(d("6.60")) &&
			o.Total.Equal(d("119.07"))
	})).Return(int64(43), nil)
	f.items.On("CreateBulk", mock.Anything, int64(43), mock.Anything).Return(nil)
	f.items.On("ListByOrderID", mock.Anything, int64(43)).Return([]model.OrderItem{}, nil)

	f.charger.On("Charge", mock.Anything, mock.Anything).Return(payment.ChargeResult{Ref: "ch_2", Status: "succeeded"}, nil)
	f.orders.On("UpdatePayment", mock.Anything, int64(43), model.PaymentStatusSucceeded, "ch_2").Return(nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(43), model.OrderStatusConfirmed).Return(nil)

	in := basicInput(signInput("100.00"))
	in.SignOnly = true

	_, err := f.uc.PlaceOrder(context.Background(), 1, in)
	require.NoError(t, err)

	f.orders.AssertExpectations(t)
}

func TestPlaceOrder_PromoWaivesFuelAndRecordsUsage(t *testing.T) {
	f := newPlaceFixture()

	promo := model.PromoCode{
		ID:                 7,
		Code:               "FREESHIP",
		DiscountType:       model.DiscountTypePercentage,
		DiscountValue:      d("10"),
		WaiveFuelSurcharge: true,
		IsActive:           true,
	}

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.promos.On("FindByCode", mock.Anything, "FREESHIP").Return(promo, nil)
	f.usages.On("CountByUserAndPromo", mock.Anything, int64(1), int64(7)).Return(int64(0), nil)

	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		// subtotal 100, discount 10, fuel waived, taxable 90 -> tax 5.40
		return o.Discount.Equal(d("10.00")) &&
			o.FuelSurcharge.Equal(decimal.Zero) &&
			o.Tax.Equal(d("5.40")) &&
			o.Total.Equal(d("95.40")) &&
			o.PromoCodeID != nil && *o.PromoCodeID == int64(7)
	})).Return(int64(44), nil)
	f.items.On("CreateBulk", mock.Anything, int64(44), mock.Anything).Return(nil)
	f.usages.On("Create", mock.Anything, mock.MatchedBy(func(u model.PromoCodeUsage) bool {
		return u.PromoCodeID == int64(7) && u.UserID == int64(1) && u.OrderID == int64(44)
	})).Return(nil)
	f.items.On("ListByOrderID", mock.Anything, int64(44)).Return([]model.OrderItem{}, nil)

	f.charger.On("Charge", mock.Anything, mock.Anything).Return(payment.ChargeResult{Ref: "ch_3", Status: "succeeded"}, nil)
	f.orders.On("UpdatePayment", mock.Anything, int64(44), model.PaymentStatusSucceeded, "ch_3").Return(nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(44), model.OrderStatusConfirmed).Return(nil)

	in := basicInput(postInput("50.00"), signInput("50.00"))
	in.PromoCode = "freeship"

	_, err := f.uc.PlaceOrder(context.Background(), 1, in)
	require.NoError(t, err)

	f.usages.AssertExpectations(t)
	f.orders.AssertExpectations(t)
}

func TestPlaceOrder_DeclinedMessagePassedThrough(t *testing.T) {
	f := newPlaceFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(45), nil)
	f.items.On("CreateBulk", mock.Anything, int64(45), mock.Anything).Return(nil)
	f.items.On("ListByOrderID", mock.Anything, int64(45)).Return([]model.OrderItem{}, nil)

	f.charger.On("Charge", mock.Anything, mock.Anything).Return(
		payment.ChargeResult{}, &payment.DeclinedError{Message: "Your card was declined."})
	f.orders.On("UpdatePayment", mock.Anything, int64(45), model.PaymentStatusFailed, "").Return(nil)

	out, err := f.uc.PlaceOrder(context.Background(), 1, basicInput(postInput("50.00"), signInput("50.00")))

	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 402, he.Status)
	assert.Equal(t, "Your card was declined.", he.Message)

	// the order survives with a failed payment so the customer can retry
	assert.Equal(t, model.PaymentStatusFailed, out.PaymentStatus)
	f.orders.AssertExpectations(t)
}

func TestPlaceOrder_ProcessorDown_BadGateway(t *testing.T) {
	f := newPlaceFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(46), nil)
	f.items.On("CreateBulk", mock.Anything, int64(46), mock.Anything).Return(nil)
	f.items.On("ListByOrderID", mock.Anything, int64(46)).Return([]model.OrderItem{}, nil)

	f.charger.On("Charge", mock.Anything, mock.Anything).Return(payment.ChargeResult{}, errors.New("connection refused"))
	f.orders.On("UpdatePayment", mock.Anything, int64(46), model.PaymentStatusFailed, "").Return(nil)

	_, err := f.uc.PlaceOrder(context.Background(), 1, basicInput(postInput("50.00"), signInput("50.00")))

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 502, he.Status)
}
