package model

import (
	"fmt"
	"time"
)

type InventoryKind string

const (
	InventoryKindSign        InventoryKind = "sign"
	InventoryKindRider       InventoryKind = "rider"
	InventoryKindLockbox     InventoryKind = "lockbox"
	InventoryKindBrochureBox InventoryKind = "brochure_box"
)

func ParseInventoryKind(s string) (InventoryKind, error) {
	switch InventoryKind(s) {
	case InventoryKindSign, InventoryKindRider, InventoryKindLockbox, InventoryKindBrochureBox:
		return InventoryKind(s), nil
	default:
		return "", fmt.Errorf("unknown inventory kind %q", s)
	}
}

// Customer-owned hardware that order lines can reference.
type InventoryItem struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64         `gorm:"not null;index" json:"user_id"`
	Kind      InventoryKind `gorm:"type:varchar(20);not null;index" json:"kind"`
	Label     string        `gorm:"type:varchar(100);not null" json:"label"`
	Notes     string        `gorm:"type:text" json:"notes"`
	IsActive  bool          `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
