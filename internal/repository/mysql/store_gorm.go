package mysql

import (
	"context"

	"shop-order-service/internal/repository"

	"gorm.io/gorm"
)

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) repository.Store {
	return &store{db: db}
}

func (s *store) Products() repository.ProductRepository     { return &productRepo{db: s.db} }
func (s *store) FlashSales() repository.FlashSaleRepository { return &flashSaleRepo{db: s.db} }
func (s *store) Coupons() repository.CouponRepository       { return &couponRepo{db: s.db} }
func (s *store) Orders() repository.OrderRepository         { return &orderRepo{db: s.db} }
func (s *store) Payments() repository.PaymentRepository     { return &paymentRepo{db: s.db} }

// Transact binds every repository to one database transaction. The closure's
// error aborts and rolls back all ledger mutations together.
func (s *store) Transact(ctx context.Context, fn func(repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}
