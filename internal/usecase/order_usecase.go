package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/payment"
	"app/internal/pricing"
	repo "app/internal/repository"
	"app/internal/tax"
)

type OrderUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	oracle   tax.Oracle
	payments payment.Charger
	cfg      config.Config
	logger   *slog.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	oracle tax.Oracle,
	payments payment.Charger,
	cfg config.Config,
	logger *slog.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:       tx,
		orders:   orders,
		oracle:   oracle,
		payments: payments,
		cfg:      cfg,
		logger:   logger,
	}
}

type OrderItemInput struct {
	ItemType        string          `json:"item_type"`
	ItemCategory    string          `json:"item_category"`
	Description     string          `json:"description"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	InventoryItemID *int64          `json:"inventory_item_id"`
	CustomValue     *string         `json:"custom_value"`
}

type PlaceOrderInput struct {
	Items         []OrderItemInput
	PromoCode     string
	Expedite      bool
	SignOnly      bool
	PaymentMethod string

	PropertyAddress string
	PropertyCity    string
	PropertyState   string
	PropertyZip     string
	PropertyNotes   string
	ScheduledDate   *time.Time
}

type OrderOutput struct {
	model.Order
	Items []model.OrderItem `json:"items"`
}

func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order needs at least one item")
	}
	if strings.TrimSpace(in.PropertyAddress) == "" || strings.TrimSpace(in.PropertyZip) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "property address is required")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "payment method is required")
	}

	items, err := buildOrderItems(in.Items)
	if err != nil {
		return OrderOutput{}, err
	}

	// exactly one post per job; a sign-only job carries none and pays the
	// no-post surcharge instead
	postCount := 0
	for _, it := range items {
		if it.ItemType == model.ItemTypePost {
			postCount++
		}
	}
	if in.SignOnly && postCount != 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "sign-only order cannot include a post")
	}
	if !in.SignOnly && postCount != 1 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order requires exactly one post item")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		subtotal := pricing.Subtotal(items)

		var promo *model.PromoCode
		discount := decimal.Zero
		if code := model.NormalizePromoCode(in.PromoCode); code != "" {
			p, err := r.PromoCodes().FindByCode(ctx, code)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, "Invalid promo code")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			uses, err := r.PromoCodeUsages().CountByUserAndPromo(ctx, userID, p.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if verr := pricing.ValidatePromo(p, subtotal, uses, time.Now()); verr != nil {
				return NewHTTPError(http.StatusBadRequest, verr.Error())
			}

			d, err := pricing.Discount(p, subtotal)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "pricing error")
			}
			discount = d
			promo = &p
		}

		fuel := u.cfg.FuelSurcharge
		if promo != nil && promo.WaiveFuelSurcharge {
			fuel = decimal.Zero
		}

		expediteFee := decimal.Zero
		if in.Expedite {
			expediteFee = u.cfg.ExpediteFee
		}

		noPost := decimal.Zero
		if in.SignOnly {
			noPost = u.cfg.NoPostSurcharge
		}

		taxable := pricing.TaxableBase(subtotal, discount, expediteFee, noPost)
		addr := tax.Address{
			Line1:      in.PropertyAddress,
			City:       in.PropertyCity,
			State:      in.PropertyState,
			PostalCode: in.PropertyZip,
		}
		quote := pricing.QuoteTax(ctx, u.oracle, taxable, addr, oracleLines(items, expediteFee, discount))

		total := pricing.Total(subtotal, discount, fuel, expediteFee, noPost, quote.Tax)

		order := model.Order{
			OrderNumber:     newOrderNumber(),
			UserID:          userID,
			Status:          model.OrderStatusPending,
			PropertyAddress: in.PropertyAddress,
			PropertyCity:    in.PropertyCity,
			PropertyState:   in.PropertyState,
			PropertyZip:     in.PropertyZip,
			PropertyNotes:   in.PropertyNotes,
			Subtotal:        subtotal,
			Discount:        discount,
			FuelSurcharge:   fuel,
			NoPostSurcharge: noPost,
			ExpediteFee:     expediteFee,
			Tax:             quote.Tax,
			Total:           total,
			TaxRate:         quote.Rate,
			TaxMethod:       string(quote.Method),
			TaxJurisdiction: quote.Jurisdiction,
			PaymentStatus:   model.PaymentStatusUnpaid,
			ScheduledDate:   in.ScheduledDate,
			Version:         1,
		}
		if promo != nil {
			order.PromoCodeID = &promo.ID
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if promo != nil {
			if err := r.PromoCodeUsages().Create(ctx, model.PromoCodeUsage{
				PromoCodeID: promo.ID,
				UserID:      userID,
				OrderID:     orderID,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		order.ID = orderID
		saved, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = OrderOutput{Order: order, Items: saved}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	// charge after the order is committed; no retry, the customer decides
	res, err := u.payments.Charge(ctx, payment.ChargeRequest{
		AmountCents:   out.Total.Shift(2).IntPart(),
		Currency:      "usd",
		PaymentMethod: in.PaymentMethod,
		Description:   fmt.Sprintf("Yard sign installation %s", out.OrderNumber),
	})
	if err != nil {
		_ = u.orders.UpdatePayment(ctx, out.ID, model.PaymentStatusFailed, "")
		out.PaymentStatus = model.PaymentStatusFailed

		var declined *payment.DeclinedError
		if errors.As(err, &declined) {
			// processor message goes to the customer verbatim
			return out, NewHTTPError(http.StatusPaymentRequired, declined.Message)
		}
		return out, NewHTTPError(http.StatusBadGateway, "payment processor unavailable")
	}

	if err := u.orders.UpdatePayment(ctx, out.ID, model.PaymentStatusSucceeded, res.Ref); err != nil {
		u.logger.Error("order paid but payment status not recorded", "order_id", out.ID, "error", err.Error())
	}
	if err := u.orders.UpdateStatus(ctx, out.ID, model.OrderStatusConfirmed); err != nil {
		u.logger.Error("order paid but status not confirmed", "order_id", out.ID, "error", err.Error())
	}
	out.PaymentStatus = model.PaymentStatusSucceeded
	out.PaymentRef = res.Ref
	out.Status = model.OrderStatusConfirmed

	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, OrderOutput{Order: o, Items: items})
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			// someone else's order looks like it does not exist
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderOutput{Order: o, Items: items}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func buildOrderItems(inputs []OrderItemInput) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		itemType, err := model.ParseItemType(in.ItemType)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, err.Error())
		}
		category, err := model.ParseItemCategory(in.ItemCategory)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if in.Quantity < 1 {
			return nil, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
		}
		if in.UnitPrice.IsNegative() {
			return nil, NewHTTPError(http.StatusBadRequest, "unit price must be >= 0")
		}
		if strings.TrimSpace(in.Description) == "" {
			return nil, NewHTTPError(http.StatusBadRequest, "item description is required")
		}

		items = append(items, model.OrderItem{
			ItemType:        itemType,
			ItemCategory:    category,
			Description:     strings.TrimSpace(in.Description),
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice.Round(2),
			TotalPrice:      in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity)).Round(2),
			InventoryItemID: in.InventoryItemID,
			CustomValue:     in.CustomValue,
		})
	}
	return items, nil
}

// oracleLines turns order lines into taxable line references (cents). The
// discount is subtracted from the first line; the expedite fee rides along
// as its own line. Fuel surcharge never appears here.
func oracleLines(items []model.OrderItem, expediteFee, discount decimal.Decimal) []tax.Line {
	lines := make([]tax.Line, 0, len(items)+1)
	discountCents := discount.Shift(2).IntPart()

	for i, it := range items {
		amount := it.TotalPrice.Shift(2).IntPart()
		if i == 0 {
			amount -= discountCents
			if amount < 0 {
				amount = 0
			}
		}
		lines = append(lines, tax.Line{
			Reference:   it.Description,
			AmountCents: amount,
		})
	}

	if expediteFee.IsPositive() {
		lines = append(lines, tax.Line{
			Reference:   "Expedite fee",
			AmountCents: expediteFee.Shift(2).IntPart(),
		})
	}

	return lines
}

func newOrderNumber() string {
	return "YS-" + strings.ToUpper(uuid.NewString()[:8])
}
