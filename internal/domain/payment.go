package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "Pending"
	PaymentCompleted     PaymentStatus = "Completed"
	PaymentFailed        PaymentStatus = "Failed"
	PaymentRefundPending PaymentStatus = "Refund_Pending"
)

// Payment is one-to-one with a confirmed order. TransactionID is the
// reference handed to the external gateway; reconciliation finds the row by
// it.
type Payment struct {
	PaymentID     string          `json:"paymentId" gorm:"primaryKey;column:payment_id;size:50"`
	OrderID       string          `json:"orderId" gorm:"column:order_id;size:50;uniqueIndex;not null"`
	TransactionID string          `json:"transactionId" gorm:"column:transaction_id;size:100;index"`
	PaymentDate   *time.Time      `json:"paymentDate" gorm:"column:payment_date"`
	Amount        decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(12,2);not null"`
	PaymentStatus PaymentStatus   `json:"paymentStatus" gorm:"column:payment_status;size:20"`
}

func (Payment) TableName() string { return "payments" }
