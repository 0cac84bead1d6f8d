package domain

import "time"

// Coupon usage is counted once per order that references it at creation
// time. UsageLimit nil means unlimited.
type Coupon struct {
	CouponID        uint      `json:"couponId" gorm:"primaryKey;column:coupon_id;autoIncrement"`
	Code            string    `json:"code" gorm:"column:code;size:50;uniqueIndex;not null"`
	DiscountPercent int       `json:"discountPercent" gorm:"column:discount_percent;not null"`
	StartDate       time.Time `json:"startDate" gorm:"column:start_date"`
	EndDate         time.Time `json:"endDate" gorm:"column:end_date"`
	UsageLimit      *int      `json:"usageLimit" gorm:"column:usage_limit"`
	UsedCount       int       `json:"usedCount" gorm:"column:used_count;default:0"`
	IsActive        bool      `json:"isActive" gorm:"column:is_active;default:true"`
	CreatedAt       time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
}

func (Coupon) TableName() string { return "coupons" }
