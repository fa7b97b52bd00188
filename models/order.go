package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentOnline         PaymentMethod = "online"
	PaymentCashOnDelivery PaymentMethod = "cash-on-delivery"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentOnline || m == PaymentCashOnDelivery
}

// InitialPaymentStatus is the payment status an order starts with. Online
// payments are settled at checkout, cash is collected on delivery.
func (m PaymentMethod) InitialPaymentStatus() PaymentStatus {
	if m == PaymentOnline {
		return PaymentPaid
	}
	return PaymentPending
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type Order struct {
	ID                    uint                 `json:"id" gorm:"primaryKey"`
	UserID                uint                 `json:"user_id" gorm:"not null;index"`
	User                  *User                `json:"-" gorm:"foreignKey:UserID"`
	CustomerName          string               `json:"customer_name" gorm:"not null"`
	CustomerPhone         string               `json:"customer_phone" gorm:"not null"`
	CustomerAddress       string               `json:"customer_address" gorm:"not null"`
	Status                OrderStatus          `json:"status" gorm:"not null;default:'pending';index"`
	PaymentMethod         PaymentMethod        `json:"payment_method" gorm:"not null"`
	PaymentStatus         PaymentStatus        `json:"payment_status" gorm:"not null"`
	TotalAmount           decimal.Decimal      `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Notes                 string               `json:"notes"`
	EstimatedDeliveryTime *time.Time           `json:"estimated_delivery_time"`
	Items                 []OrderItem          `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StatusHistory         []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

// OrderItem snapshots the menu item's name and price at order time, so later
// menu edits or deletions leave order history untouched.
type OrderItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	OrderID      uint            `json:"order_id" gorm:"not null;index"`
	MenuItemID   uint            `json:"menu_item_id" gorm:"not null"`
	MenuItemName string          `json:"menu_item_name" gorm:"not null"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
}

// LineTotal is price × quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
