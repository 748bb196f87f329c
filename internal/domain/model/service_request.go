package model

import (
	"fmt"
	"time"
)

type ServiceRequestKind string

const (
	ServiceRequestKindRepair     ServiceRequestKind = "repair"
	ServiceRequestKindRemoval    ServiceRequestKind = "removal"
	ServiceRequestKindRelocation ServiceRequestKind = "relocation"
)

func ParseServiceRequestKind(s string) (ServiceRequestKind, error) {
	switch ServiceRequestKind(s) {
	case ServiceRequestKindRepair, ServiceRequestKindRemoval, ServiceRequestKindRelocation:
		return ServiceRequestKind(s), nil
	default:
		return "", fmt.Errorf("unknown service request kind %q", s)
	}
}

type ServiceRequestStatus string

const (
	ServiceRequestStatusOpen      ServiceRequestStatus = "open"
	ServiceRequestStatusScheduled ServiceRequestStatus = "scheduled"
	ServiceRequestStatusClosed    ServiceRequestStatus = "closed"
)

type ServiceRequest struct {
	ID            int64                `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64                `gorm:"not null;index" json:"user_id"`
	OrderID       int64                `gorm:"not null;index" json:"order_id"`
	Kind          ServiceRequestKind   `gorm:"type:varchar(20);not null" json:"kind"`
	Status        ServiceRequestStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes         string               `gorm:"type:text" json:"notes"`
	ScheduledDate *time.Time           `json:"scheduled_date,omitempty"`
	CreatedAt     time.Time            `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
