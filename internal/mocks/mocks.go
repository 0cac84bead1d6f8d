package mocks

import (
	"context"
	"time"

	"shop-order-service/internal/domain"
	"shop-order-service/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ReserveStock(ctx context.Context, productID string, qty int) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *MockProductRepository) ReleaseStock(ctx context.Context, productID string, qty int) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type MockFlashSaleRepository struct {
	mock.Mock
}

func (m *MockFlashSaleRepository) FindCurrentActive(ctx context.Context, now time.Time) (*domain.FlashSale, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlashSale), args.Error(1)
}

func (m *MockFlashSaleRepository) DeductAllocation(ctx context.Context, flashSaleID uint, productID string, qty int) error {
	args := m.Called(ctx, flashSaleID, productID, qty)
	return args.Error(0)
}

func (m *MockFlashSaleRepository) RestoreAllocation(ctx context.Context, flashSaleID uint, productID string, qty int) error {
	args := m.Called(ctx, flashSaleID, productID, qty)
	return args.Error(0)
}

type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) FindByID(ctx context.Context, couponID uint) (*domain.Coupon, error) {
	args := m.Called(ctx, couponID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, couponID uint) error {
	args := m.Called(ctx, couponID)
	return args.Error(0)
}

func (m *MockCouponRepository) DecrementUsage(ctx context.Context, couponID uint) error {
	args := m.Called(ctx, couponID)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindCartByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) CountCartByUserID(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindCartLine(ctx context.Context, userID, productID string) (*domain.OrderDetail, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderDetail), args.Error(1)
}

func (m *MockOrderRepository) UpdateCartLineQuantity(ctx context.Context, orderDetailID uint, qty int) error {
	args := m.Called(ctx, orderDetailID, qty)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteByIDs(ctx context.Context, orderIDs []string) error {
	args := m.Called(ctx, orderIDs)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteCartByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

// MockStore bundles the repository mocks behind the Store interface.
// Transact runs the closure against the same mocks; rollback semantics are
// covered by the in-memory store tests instead.
type MockStore struct {
	ProductRepo   *MockProductRepository
	FlashSaleRepo *MockFlashSaleRepository
	CouponRepo    *MockCouponRepository
	OrderRepo     *MockOrderRepository
	PaymentRepo   *MockPaymentRepository
}

func NewMockStore() *MockStore {
	return &MockStore{
		ProductRepo:   new(MockProductRepository),
		FlashSaleRepo: new(MockFlashSaleRepository),
		CouponRepo:    new(MockCouponRepository),
		OrderRepo:     new(MockOrderRepository),
		PaymentRepo:   new(MockPaymentRepository),
	}
}

func (m *MockStore) Products() repository.ProductRepository     { return m.ProductRepo }
func (m *MockStore) FlashSales() repository.FlashSaleRepository { return m.FlashSaleRepo }
func (m *MockStore) Coupons() repository.CouponRepository       { return m.CouponRepo }
func (m *MockStore) Orders() repository.OrderRepository         { return m.OrderRepo }
func (m *MockStore) Payments() repository.PaymentRepository     { return m.PaymentRepo }

func (m *MockStore) Transact(ctx context.Context, fn func(repository.Store) error) error {
	return fn(m)
}

func (m *MockStore) AssertExpectations(t mock.TestingT) {
	m.ProductRepo.AssertExpectations(t)
	m.FlashSaleRepo.AssertExpectations(t)
	m.CouponRepo.AssertExpectations(t)
	m.OrderRepo.AssertExpectations(t)
	m.PaymentRepo.AssertExpectations(t)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}
