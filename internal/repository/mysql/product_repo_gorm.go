package mysql

import (
	"context"
	"errors"
	"log"

	"shop-order-service/internal/domain"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func (r *productRepo) FindByID(ctx context.Context, productID string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		log.Printf("product FindByID error: %v", err)
		return nil, err
	}
	return &p, nil
}

// ReserveStock is a single guarded UPDATE so the check and the decrement
// cannot be split by a concurrent buyer. RowsAffected == 0 means the guard
// rejected the decrement.
func (r *productRepo) ReserveStock(ctx context.Context, productID string, qty int) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("product_id = ? AND available_quantity >= ?", productID, qty).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity - ?", qty))
	if res.Error != nil {
		log.Printf("ReserveStock error for product %s: %v", productID, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, productID); err != nil {
			return err
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *productRepo) ReleaseStock(ctx context.Context, productID string, qty int) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("product_id = ?", productID).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity + ?", qty))
	if res.Error != nil {
		log.Printf("ReleaseStock error for product %s: %v", productID, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
