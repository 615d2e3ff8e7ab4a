package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusSent       OrderStatus = "SENT"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusSent,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Order is a placed order. Its items are price snapshots and never change.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	User            *User           `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shippingAddress"`
	ShippingName    string          `gorm:"type:varchar(255);not null" json:"shippingName"`
	ShippingPhone   string          `gorm:"type:varchar(40);not null" json:"shippingPhone"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// OrderItem captures quantity and unit price at the time of the order.
type OrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	Product          *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	ProductVariantID *uuid.UUID      `gorm:"type:uuid;index" json:"productVariantId"`
	ProductVariant   *ProductVariant `gorm:"foreignKey:ProductVariantID;constraint:OnDelete:SET NULL" json:"productVariant,omitempty"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	Price            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}

// LineTotal is price × quantity.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderEvent is published whenever an order is created or changes status.
type OrderEvent struct {
	EventType      string          `json:"eventType"`
	OrderID        string          `json:"orderId"`
	UserID         string          `json:"userId"`
	Status         OrderStatus     `json:"status"`
	PreviousStatus OrderStatus     `json:"previousStatus,omitempty"`
	Total          decimal.Decimal `json:"total"`
	ItemCount      int             `json:"itemCount"`
	Timestamp      time.Time       `json:"timestamp"`
}

const (
	OrderEventCreated       = "order_created"
	OrderEventStatusChanged = "order_status_changed"
)
