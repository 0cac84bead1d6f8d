package domain

import "errors"

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrOrderNotFound         = errors.New("order not found")
	ErrCouponNotFound        = errors.New("coupon not found")
	ErrCouponExpired         = errors.New("coupon expired")
	ErrCouponExhausted       = errors.New("coupon usage limit reached")
	ErrCouponInactive        = errors.New("coupon is not active")
	ErrNoActiveFlashSale     = errors.New("no flash sale is currently active")
	ErrProductNotInFlashSale = errors.New("product is not part of the current flash sale")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrAmountMismatch        = errors.New("payment amount does not match order total")
)
