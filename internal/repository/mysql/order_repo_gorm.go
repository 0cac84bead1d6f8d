package mysql

import (
	"context"
	"errors"
	"log"

	"shop-order-service/internal/domain"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func (r *orderRepo) Save(ctx context.Context, order *domain.Order) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		log.Printf("order Save error for %s: %v", order.OrderID, err)
		return err
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Details").First(&o, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		log.Printf("order FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Details").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&out).Error
	if err != nil {
		log.Printf("order FindByUserID error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindCartByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Details").
		Where("user_id = ? AND is_order = ?", userID, false).
		Find(&out).Error
	if err != nil {
		log.Printf("order FindCartByUserID error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) CountCartByUserID(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("user_id = ? AND is_order = ?", userID, false).
		Count(&n).Error
	if err != nil {
		log.Printf("order CountCartByUserID error: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *orderRepo) FindCartLine(ctx context.Context, userID, productID string) (*domain.OrderDetail, error) {
	var d domain.OrderDetail
	err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.order_id = order_details.order_id").
		Where("orders.user_id = ? AND orders.is_order = ? AND order_details.product_id = ?", userID, false, productID).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindCartLine error: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *orderRepo) UpdateCartLineQuantity(ctx context.Context, orderDetailID uint, qty int) error {
	res := r.db.WithContext(ctx).Model(&domain.OrderDetail{}).
		Where("order_detail_id = ?", orderDetailID).
		UpdateColumn("quantity", qty)
	if res.Error != nil {
		log.Printf("UpdateCartLineQuantity error for detail %d: %v", orderDetailID, res.Error)
		return res.Error
	}
	return nil
}

func (r *orderRepo) DeleteByIDs(ctx context.Context, orderIDs []string) error {
	if len(orderIDs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("order_id IN ?", orderIDs).Delete(&domain.OrderDetail{}).Error; err != nil {
		log.Printf("DeleteByIDs details error: %v", err)
		return err
	}
	if err := r.db.WithContext(ctx).Where("order_id IN ?", orderIDs).Delete(&domain.Order{}).Error; err != nil {
		log.Printf("DeleteByIDs orders error: %v", err)
		return err
	}
	return nil
}

func (r *orderRepo) DeleteCartByUserID(ctx context.Context, userID string) error {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("user_id = ? AND is_order = ?", userID, false).
		Pluck("order_id", &ids).Error
	if err != nil {
		log.Printf("DeleteCartByUserID lookup error: %v", err)
		return err
	}
	return r.DeleteByIDs(ctx, ids)
}
