package mysql

import (
	"context"
	"errors"
	"log"
	"time"

	"shop-order-service/internal/domain"

	"gorm.io/gorm"
)

type flashSaleRepo struct {
	db *gorm.DB
}

func (r *flashSaleRepo) FindCurrentActive(ctx context.Context, now time.Time) (*domain.FlashSale, error) {
	var sale domain.FlashSale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("start_date <= ? AND end_date >= ?", now, now).
		Order("start_date DESC").
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoActiveFlashSale
		}
		log.Printf("FindCurrentActive error: %v", err)
		return nil, err
	}
	return &sale, nil
}

// DeductAllocation raises sold_count with the remaining allocation as the
// guard, mirroring ReserveStock on the product ledger.
func (r *flashSaleRepo) DeductAllocation(ctx context.Context, flashSaleID uint, productID string, qty int) error {
	res := r.db.WithContext(ctx).Model(&domain.FlashSaleItem{}).
		Where("flash_sale_id = ? AND product_id = ? AND quantity - sold_count >= ?", flashSaleID, productID, qty).
		UpdateColumn("sold_count", gorm.Expr("sold_count + ?", qty))
	if res.Error != nil {
		log.Printf("DeductAllocation error for sale %d product %s: %v", flashSaleID, productID, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		var item domain.FlashSaleItem
		err := r.db.WithContext(ctx).
			First(&item, "flash_sale_id = ? AND product_id = ?", flashSaleID, productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotInFlashSale
		}
		if err != nil {
			return err
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *flashSaleRepo) RestoreAllocation(ctx context.Context, flashSaleID uint, productID string, qty int) error {
	res := r.db.WithContext(ctx).Model(&domain.FlashSaleItem{}).
		Where("flash_sale_id = ? AND product_id = ?", flashSaleID, productID).
		UpdateColumn("sold_count", gorm.Expr("GREATEST(sold_count - ?, 0)", qty))
	if res.Error != nil {
		log.Printf("RestoreAllocation error for sale %d product %s: %v", flashSaleID, productID, res.Error)
		return res.Error
	}
	return nil
}
