package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderStatusRank orders the lifecycle chain. cancelled sits outside the
// chain and is handled separately.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusConfirmed:  1,
	OrderStatusProcessing: 2,
	OrderStatusShipped:    3,
	OrderStatusDelivered:  4,
}

func (s OrderStatus) Valid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := orderStatusRank[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransition says whether an order may move from one status to another.
// Repeating the current status is allowed so that status updates stay
// idempotent; otherwise only forward moves along the chain are accepted,
// and cancellation is blocked once the order has shipped.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return from != OrderStatusShipped && from != OrderStatusDelivered
	}
	return orderStatusRank[to] > orderStatusRank[from]
}

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"index;not null" json:"user_id"`
	OrderNumber     string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	TotalPrice      float64     `gorm:"not null" json:"total_price"`
	ShippingCost    float64     `gorm:"default:0" json:"shipping_cost"`
	Discount        float64     `gorm:"default:0" json:"discount"`
	FinalPrice      float64     `gorm:"not null" json:"final_price"`
	ShippingAddress string      `gorm:"type:text;not null" json:"shipping_address"`
	ShippingPhone   string      `gorm:"type:varchar(50)" json:"shipping_phone"`
	Notes           string      `gorm:"type:text" json:"notes"`
	Status          OrderStatus `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	ShippedAt       *time.Time  `json:"shipped_at"`
	DeliveredAt     *time.Time  `json:"delivered_at"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
}

// OrderItem freezes the catalog price of one product at order time.
// Price is never recomputed from the live product.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type OrderItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderInput struct {
	UserID          uint             `json:"user_id" validate:"required"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string           `json:"shipping_address" validate:"required"`
	ShippingPhone   string           `json:"shipping_phone"`
	ShippingCost    float64          `json:"shipping_cost" validate:"gte=0"`
	Discount        float64          `json:"discount" validate:"gte=0"`
	Notes           string           `json:"notes"`
}

type CreateOrderFromCartInput struct {
	UserID          uint   `json:"user_id" validate:"required"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
	ShippingPhone   string `json:"shipping_phone"`
	Notes           string `json:"notes"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderInput uses pointers throughout so that a legitimate zero
// (e.g. discount: 0) is distinguishable from an omitted field.
type UpdateOrderInput struct {
	ShippingCost    *float64 `json:"shipping_cost" validate:"omitempty,gte=0"`
	Discount        *float64 `json:"discount" validate:"omitempty,gte=0"`
	ShippingAddress *string  `json:"shipping_address"`
	ShippingPhone   *string  `json:"shipping_phone"`
	Notes           *string  `json:"notes"`
}

type OrderStats struct {
	TotalOrders     int64   `json:"total_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	PendingCount    int64   `json:"pending_count"`
	ConfirmedCount  int64   `json:"confirmed_count"`
	ProcessingCount int64   `json:"processing_count"`
	ShippedCount    int64   `json:"shipped_count"`
	DeliveredCount  int64   `json:"delivered_count"`
	CancelledCount  int64   `json:"cancelled_count"`
}
