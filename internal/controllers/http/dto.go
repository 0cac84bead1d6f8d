package http

import "github.com/shopspring/decimal"

type CartLineRequest struct {
	UserID    string `json:"userId" binding:"required"`
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type OrderLineRequest struct {
	ProductID         string          `json:"productId" binding:"required"`
	Quantity          int             `json:"quantity" binding:"required,min=1"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	OriginalUnitPrice decimal.Decimal `json:"originalUnitPrice"`
	IsFlashSale       bool            `json:"isFlashSale"`
}

type CheckoutRequest struct {
	UserID          string             `json:"userId" binding:"required"`
	ShippingAddress string             `json:"shippingAddress" binding:"required"`
	CustomerNote    string             `json:"customerNote"`
	CouponID        *uint              `json:"couponId"`
	Lines           []OrderLineRequest `json:"orderDetails" binding:"required,dive"`
}

type ReplaceOrderRequest struct {
	UserID          string             `json:"userId" binding:"required"`
	ShippingAddress string             `json:"shippingAddress" binding:"required"`
	CustomerNote    string             `json:"customerNote"`
	CouponID        *uint              `json:"couponId"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	OldOrderIDs     []string           `json:"oldOrderIds"`
	Lines           []OrderLineRequest `json:"orderDetails" binding:"required,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"orderStatus" binding:"required"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ReconcilePaymentRequest struct {
	TransactionID string          `json:"transactionId" binding:"required"`
	Paid          *bool           `json:"paid" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
}
