package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product carries the global stock ledger in AvailableQuantity. It is only
// mutated through the repository's reserve/release operations.
type Product struct {
	ProductID         string          `json:"productId" gorm:"primaryKey;column:product_id;size:50"`
	ProductName       string          `json:"productName" gorm:"column:product_name;not null"`
	AvailableQuantity int             `json:"availableQuantity" gorm:"column:available_quantity;not null"`
	Price             decimal.Decimal `json:"price" gorm:"column:price;type:decimal(12,2);not null"`
	DiscountPercent   int             `json:"discountPercent" gorm:"column:discount_percent;default:0"`
	CreatedAt         time.Time       `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }
