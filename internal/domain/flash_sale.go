package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FlashSaleStatus string

const (
	FlashSaleActive   FlashSaleStatus = "Active"
	FlashSaleInactive FlashSaleStatus = "Inactive"
	FlashSaleFinished FlashSaleStatus = "Finished"
)

// FlashSale is a time-boxed promotional event. At most one sale is active at
// any moment; activity is resolved by the start/end window, not the status
// column, which trails it.
type FlashSale struct {
	FlashSaleID uint            `json:"flashSaleId" gorm:"primaryKey;column:flash_sale_id;autoIncrement"`
	Name        string          `json:"name" gorm:"column:name;not null"`
	Description string          `json:"description" gorm:"column:description"`
	StartDate   time.Time       `json:"startDate" gorm:"column:start_date;not null"`
	EndDate     time.Time       `json:"endDate" gorm:"column:end_date;not null"`
	Status      FlashSaleStatus `json:"status" gorm:"column:status;size:20;default:'Inactive'"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"column:created_at;autoCreateTime"`

	Items []FlashSaleItem `json:"items" gorm:"foreignKey:FlashSaleID;references:FlashSaleID"`
}

func (FlashSale) TableName() string { return "flash_sales" }

// FlashSaleItem is the per-(sale, product) allocation pool. SoldCount counts
// units consumed and never exceeds Quantity. It is an independent ledger from
// Product.AvailableQuantity: a flash-sale unit is deducted from both.
type FlashSaleItem struct {
	FlashSaleItemID uint            `json:"flashSaleItemId" gorm:"primaryKey;column:flash_sale_item_id;autoIncrement"`
	FlashSaleID     uint            `json:"flashSaleId" gorm:"column:flash_sale_id;index;not null"`
	ProductID       string          `json:"productId" gorm:"column:product_id;size:50;index;not null"`
	FlashSalePrice  decimal.Decimal `json:"flashSalePrice" gorm:"column:flash_sale_price;type:decimal(12,2);not null"`
	Quantity        int             `json:"quantity" gorm:"column:quantity;not null"`
	SoldCount       int             `json:"soldCount" gorm:"column:sold_count;default:0"`
}

func (FlashSaleItem) TableName() string { return "flash_sale_items" }
