package model

import "time"

type AuditAction string

const (
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	AuditActionEditOrder         AuditAction = "EDIT_ORDER"
	AuditActionCreatePromoCode   AuditAction = "CREATE_PROMO_CODE"
	AuditActionDeletePromoCode   AuditAction = "DELETE_PROMO_CODE"
	AuditActionDisablePromoCode  AuditAction = "DISABLE_PROMO_CODE"
)

type AuditResourceType string

const (
	AuditResourceOrder          AuditResourceType = "order"
	AuditResourcePromoCode      AuditResourceType = "promo_code"
	AuditResourceServiceRequest AuditResourceType = "service_request"
	AuditResourceUser           AuditResourceType = "user"
)

// Admin operation trail: who did what to which resource, before/after as JSON.
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`
	BeforeJSON   string            `gorm:"type:text" json:"before_json"`
	AfterJSON    string            `gorm:"type:text" json:"after_json"`
	CreatedAt    time.Time         `gorm:"not null;index" json:"created_at"`
}
