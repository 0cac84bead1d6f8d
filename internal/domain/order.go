package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// CanCancel reports whether an order in this status may still be cancelled.
// Shipped, Delivered and Cancelled are past the point of no return.
func (s OrderStatus) CanCancel() bool {
	switch s {
	case StatusShipped, StatusDelivered, StatusCancelled:
		return false
	}
	return true
}

type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition from %s to %s", e.From, e.To)
}

// Order is both the cart holder and the confirmed purchase, discriminated by
// IsOrder: false is an unconfirmed cart row, true an immutable order. A cart
// row is not a state-machine participant.
type Order struct {
	OrderID         string          `json:"orderId" gorm:"primaryKey;column:order_id;size:50"`
	UserID          string          `json:"userId" gorm:"column:user_id;size:50;not null;index"`
	ShippingAddress string          `json:"shippingAddress" gorm:"column:shipping_address"`
	CustomerNote    string          `json:"customerNote" gorm:"column:customer_note;type:text"`
	OrderStatus     OrderStatus     `json:"orderStatus" gorm:"column:order_status;size:20;default:'Pending'"`
	OrderDate       time.Time       `json:"orderDate" gorm:"column:order_date"`
	CouponID        *uint           `json:"couponId" gorm:"column:coupon_id"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"column:total_amount;type:decimal(12,2);not null"`
	IsOrder         bool            `json:"isOrder" gorm:"column:is_order;index"`
	UpdatedAt       time.Time       `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`

	Details []OrderDetail `json:"orderDetails" gorm:"foreignKey:OrderID;references:OrderID"`
}

func (Order) TableName() string { return "orders" }

// OrderDetail is one line of an order or cart. UnitPrice is frozen at
// purchase time and never recomputed from the product. FlashSaleID is
// persisted next to IsFlashSale so cancellation restores the allocation of
// the sale that actually sold the unit, not whatever sale is active later.
type OrderDetail struct {
	OrderDetailID     uint            `json:"orderDetailId" gorm:"primaryKey;column:order_detail_id;autoIncrement"`
	OrderID           string          `json:"orderId" gorm:"column:order_id;size:50;index"`
	ProductID         string          `json:"productId" gorm:"column:product_id;size:50;index;not null"`
	Quantity          int             `json:"quantity" gorm:"column:quantity;not null"`
	UnitPrice         decimal.Decimal `json:"unitPrice" gorm:"column:unit_price;type:decimal(12,2);not null"`
	OriginalUnitPrice decimal.Decimal `json:"originalUnitPrice" gorm:"column:original_unit_price;type:decimal(12,2)"`
	IsFlashSale       bool            `json:"isFlashSale" gorm:"column:is_flash_sale"`
	FlashSaleID       *uint           `json:"flashSaleId" gorm:"column:flash_sale_id"`
}

func (OrderDetail) TableName() string { return "order_details" }
