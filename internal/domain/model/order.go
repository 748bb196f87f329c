package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid    PaymentStatus = "unpaid"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string      `gorm:"type:varchar(20);not null;uniqueIndex" json:"order_number"`
	UserID      int64       `gorm:"not null;index" json:"user_id"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	PropertyAddress string `gorm:"type:varchar(255);not null" json:"property_address"`
	PropertyCity    string `gorm:"type:varchar(100);not null" json:"property_city"`
	PropertyState   string `gorm:"type:varchar(2);not null" json:"property_state"`
	PropertyZip     string `gorm:"type:varchar(10);not null" json:"property_zip"`
	PropertyNotes   string `gorm:"type:text" json:"property_notes"`

	Subtotal        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Discount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	FuelSurcharge   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"fuel_surcharge"`
	NoPostSurcharge decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"no_post_surcharge"`
	ExpediteFee     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"expedite_fee"`
	Tax             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`

	TaxRate         decimal.Decimal `gorm:"type:decimal(8,6);not null" json:"tax_rate"`
	TaxMethod       string          `gorm:"type:varchar(20);not null" json:"tax_method"`
	TaxJurisdiction string          `gorm:"type:varchar(100)" json:"tax_jurisdiction"`

	PromoCodeID *int64 `gorm:"index" json:"promo_code_id,omitempty"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`
	PaymentRef    string        `gorm:"type:varchar(100)" json:"-"`

	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`

	// incremented on every edit; editOrder fails on a stale version
	Version int `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// Editable reports whether the order still accepts item/total changes.
func (o Order) Editable() bool {
	return o.Status != OrderStatusCompleted && o.Status != OrderStatusCancelled
}
