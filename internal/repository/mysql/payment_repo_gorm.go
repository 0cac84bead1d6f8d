package mysql

import (
	"context"
	"errors"
	"log"

	"shop-order-service/internal/domain"

	"gorm.io/gorm"
)

type paymentRepo struct {
	db *gorm.DB
}

func (r *paymentRepo) Save(ctx context.Context, payment *domain.Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		log.Printf("payment Save error for %s: %v", payment.PaymentID, err)
		return err
	}
	return nil
}

func (r *paymentRepo) FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		log.Printf("payment FindByOrderID error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		log.Printf("payment FindByTransactionID error: %v", err)
		return nil, err
	}
	return &p, nil
}
