package services

import (
	"time"

	"shop-order-service/internal/domain"

	"github.com/shopspring/decimal"
)

func CreateMockProduct(id, name string, price int64, qty int) *domain.Product {
	return &domain.Product{
		ProductID:         id,
		ProductName:       name,
		AvailableQuantity: qty,
		Price:             decimal.NewFromInt(price),
	}
}

func CreateMockOrder(id, userID string, status domain.OrderStatus, isOrder bool, details ...domain.OrderDetail) *domain.Order {
	return &domain.Order{
		OrderID:     id,
		UserID:      userID,
		OrderStatus: status,
		OrderDate:   time.Now(),
		IsOrder:     isOrder,
		Details:     details,
	}
}

func CreateMockCoupon(id uint, limit *int, used int, endsIn time.Duration) *domain.Coupon {
	return &domain.Coupon{
		CouponID:        id,
		Code:            "TESTCODE",
		DiscountPercent: 10,
		StartDate:       time.Now().Add(-time.Hour),
		EndDate:         time.Now().Add(endsIn),
		UsageLimit:      limit,
		UsedCount:       used,
		IsActive:        true,
	}
}

const (
	TestUserID      = "user-1"
	TestProductID   = "prod-1"
	TestProductName = "Test Product"
)
