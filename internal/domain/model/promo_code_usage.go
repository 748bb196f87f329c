package model

import "time"

// One redemption event. Backs the per-user max-uses cap.
type PromoCodeUsage struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PromoCodeID int64     `gorm:"not null;index" json:"promo_code_id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	OrderID     int64     `gorm:"not null;index" json:"order_id"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
