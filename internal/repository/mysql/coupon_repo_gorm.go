package mysql

import (
	"context"
	"errors"
	"log"

	"shop-order-service/internal/domain"

	"gorm.io/gorm"
)

type couponRepo struct {
	db *gorm.DB
}

func (r *couponRepo) FindByID(ctx context.Context, couponID uint) (*domain.Coupon, error) {
	var c domain.Coupon
	if err := r.db.WithContext(ctx).First(&c, "coupon_id = ?", couponID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCouponNotFound
		}
		log.Printf("coupon FindByID error: %v", err)
		return nil, err
	}
	return &c, nil
}

// IncrementUsage counts one redemption, guarded on the usage limit so N
// concurrent orders against a cap of K succeed exactly K times.
func (r *couponRepo) IncrementUsage(ctx context.Context, couponID uint) error {
	res := r.db.WithContext(ctx).Model(&domain.Coupon{}).
		Where("coupon_id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", couponID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		log.Printf("IncrementUsage error for coupon %d: %v", couponID, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, couponID); err != nil {
			return err
		}
		return domain.ErrCouponExhausted
	}
	return nil
}

func (r *couponRepo) DecrementUsage(ctx context.Context, couponID uint) error {
	res := r.db.WithContext(ctx).Model(&domain.Coupon{}).
		Where("coupon_id = ?", couponID).
		UpdateColumn("used_count", gorm.Expr("GREATEST(used_count - 1, 0)"))
	if res.Error != nil {
		log.Printf("DecrementUsage error for coupon %d: %v", couponID, res.Error)
		return res.Error
	}
	return nil
}
