package repository

import (
	"context"
	"time"

	"shop-order-service/internal/domain"
)

// ProductRepository is the stock ledger. ReserveStock and ReleaseStock are
// single conditional statements on the product row; a separate read followed
// by a write would lose updates under concurrency.
type ProductRepository interface {
	FindByID(ctx context.Context, productID string) (*domain.Product, error)
	// ReserveStock decrements available_quantity by qty. Returns
	// domain.ErrInsufficientStock when fewer than qty units remain and
	// domain.ErrProductNotFound when the row does not exist.
	ReserveStock(ctx context.Context, productID string, qty int) error
	// ReleaseStock adds qty back unconditionally.
	ReleaseStock(ctx context.Context, productID string, qty int) error
}

// FlashSaleRepository is the flash-sale allocation ledger.
type FlashSaleRepository interface {
	// FindCurrentActive resolves the sale whose window contains now.
	// Returns domain.ErrNoActiveFlashSale when there is none.
	FindCurrentActive(ctx context.Context, now time.Time) (*domain.FlashSale, error)
	// DeductAllocation raises sold_count by qty, guarded on remaining
	// allocation. Returns domain.ErrProductNotInFlashSale or
	// domain.ErrInsufficientStock.
	DeductAllocation(ctx context.Context, flashSaleID uint, productID string, qty int) error
	// RestoreAllocation lowers sold_count by qty, floored at zero.
	RestoreAllocation(ctx context.Context, flashSaleID uint, productID string, qty int) error
}

// CouponRepository tracks coupon usage.
type CouponRepository interface {
	FindByID(ctx context.Context, couponID uint) (*domain.Coupon, error)
	// IncrementUsage raises used_count by one, guarded on the usage limit.
	// Returns domain.ErrCouponExhausted when the cap is already reached.
	IncrementUsage(ctx context.Context, couponID uint) error
	// DecrementUsage lowers used_count by one, floored at zero.
	DecrementUsage(ctx context.Context, couponID uint) error
}

type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.Order, error)
	FindCartByUserID(ctx context.Context, userID string) ([]domain.Order, error)
	CountCartByUserID(ctx context.Context, userID string) (int64, error)
	// FindCartLine looks up the user's existing is_order=false line for a
	// product, for quantity merging. Returns (nil, nil) when absent.
	FindCartLine(ctx context.Context, userID, productID string) (*domain.OrderDetail, error)
	UpdateCartLineQuantity(ctx context.Context, orderDetailID uint, qty int) error
	DeleteByIDs(ctx context.Context, orderIDs []string) error
	DeleteCartByUserID(ctx context.Context, userID string) error
}

type PaymentRepository interface {
	Save(ctx context.Context, payment *domain.Payment) error
	FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
}

// Store aggregates the repositories over one database handle. Transact runs
// fn against a store bound to a single transaction; any error rolls the
// whole transaction back.
type Store interface {
	Products() ProductRepository
	FlashSales() FlashSaleRepository
	Coupons() CouponRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	Transact(ctx context.Context, fn func(Store) error) error
}
