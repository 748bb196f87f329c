package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ItemType string

const (
	ItemTypePost        ItemType = "post"
	ItemTypeSign        ItemType = "sign"
	ItemTypeRider       ItemType = "rider"
	ItemTypeLockbox     ItemType = "lockbox"
	ItemTypeBrochureBox ItemType = "brochure_box"
	ItemTypeTrip        ItemType = "trip"
)

// ParseItemType rejects anything outside the closed set.
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemTypePost, ItemTypeSign, ItemTypeRider, ItemTypeLockbox, ItemTypeBrochureBox, ItemTypeTrip:
		return ItemType(s), nil
	default:
		return "", fmt.Errorf("unknown item type %q", s)
	}
}

type ItemCategory string

const (
	ItemCategoryRental ItemCategory = "rental"
	ItemCategoryOwned  ItemCategory = "owned"
	ItemCategoryNew    ItemCategory = "new"
)

func ParseItemCategory(s string) (ItemCategory, error) {
	switch ItemCategory(s) {
	case "", ItemCategoryRental, ItemCategoryOwned, ItemCategoryNew:
		return ItemCategory(s), nil
	default:
		return "", fmt.Errorf("unknown item category %q", s)
	}
}

type OrderItem struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      int64        `gorm:"not null;index" json:"order_id"`
	ItemType     ItemType     `gorm:"type:varchar(20);not null" json:"item_type"`
	ItemCategory ItemCategory `gorm:"type:varchar(20)" json:"item_category,omitempty"`
	Description  string       `gorm:"type:varchar(255);not null" json:"description"`

	Quantity   int64           `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`

	// owned hardware this line refers to (sign/rider/lockbox/brochure box)
	InventoryItemID *int64  `gorm:"index" json:"inventory_item_id,omitempty"`
	CustomValue     *string `gorm:"type:varchar(255)" json:"custom_value,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
