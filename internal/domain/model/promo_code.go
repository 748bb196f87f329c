package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// NormalizePromoCode is applied to codes on both write and lookup.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type PromoCode struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Description string `gorm:"type:varchar(255)" json:"description"`

	DiscountType  DiscountType    `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount_value"`

	MinOrderAmount *decimal.Decimal `gorm:"type:decimal(10,2)" json:"min_order_amount,omitempty"`
	MaxUses        *int             `json:"max_uses,omitempty"`

	StartsAt  *time.Time `json:"starts_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	WaiveFuelSurcharge bool `gorm:"not null;default:false" json:"waive_fuel_surcharge"`
	IsActive           bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
