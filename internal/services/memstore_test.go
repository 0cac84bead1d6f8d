package services

import (
	"context"
	"sync"
	"time"

	"shop-order-service/internal/domain"
	"shop-order-service/internal/repository"
)

// memStore is an in-memory Store used by the invariant tests. Transact
// serializes callers and restores a snapshot on error, giving the same
// all-or-nothing behavior the gorm store gets from database transactions.
type memStore struct {
	mu           sync.Mutex
	products     map[string]domain.Product
	sales        map[uint]domain.FlashSale
	items        map[uint]map[string]domain.FlashSaleItem
	coupons      map[uint]domain.Coupon
	orders       map[string]domain.Order
	payments     map[string]domain.Payment
	nextDetailID uint
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]domain.Product),
		sales:    make(map[uint]domain.FlashSale),
		items:    make(map[uint]map[string]domain.FlashSaleItem),
		coupons:  make(map[uint]domain.Coupon),
		orders:   make(map[string]domain.Order),
		payments: make(map[string]domain.Payment),
	}
}

func (s *memStore) addProduct(p domain.Product) { s.products[p.ProductID] = p }
func (s *memStore) addCoupon(c domain.Coupon)   { s.coupons[c.CouponID] = c }

func (s *memStore) addSale(sale domain.FlashSale, items ...domain.FlashSaleItem) {
	s.sales[sale.FlashSaleID] = sale
	byProduct := make(map[string]domain.FlashSaleItem, len(items))
	for _, it := range items {
		it.FlashSaleID = sale.FlashSaleID
		byProduct[it.ProductID] = it
	}
	s.items[sale.FlashSaleID] = byProduct
}

func (s *memStore) productQty(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[productID].AvailableQuantity
}

func (s *memStore) soldCount(saleID uint, productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[saleID][productID].SoldCount
}

func (s *memStore) couponUsed(couponID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coupons[couponID].UsedCount
}

type memSnapshot struct {
	products     map[string]domain.Product
	items        map[uint]map[string]domain.FlashSaleItem
	coupons      map[uint]domain.Coupon
	orders       map[string]domain.Order
	payments     map[string]domain.Payment
	nextDetailID uint
}

func (s *memStore) snapshot() memSnapshot {
	sn := memSnapshot{
		products:     make(map[string]domain.Product, len(s.products)),
		items:        make(map[uint]map[string]domain.FlashSaleItem, len(s.items)),
		coupons:      make(map[uint]domain.Coupon, len(s.coupons)),
		orders:       make(map[string]domain.Order, len(s.orders)),
		payments:     make(map[string]domain.Payment, len(s.payments)),
		nextDetailID: s.nextDetailID,
	}
	for k, v := range s.products {
		sn.products[k] = v
	}
	for k, v := range s.items {
		inner := make(map[string]domain.FlashSaleItem, len(v))
		for kk, vv := range v {
			inner[kk] = vv
		}
		sn.items[k] = inner
	}
	for k, v := range s.coupons {
		sn.coupons[k] = v
	}
	for k, v := range s.orders {
		v.Details = append([]domain.OrderDetail(nil), v.Details...)
		sn.orders[k] = v
	}
	for k, v := range s.payments {
		sn.payments[k] = v
	}
	return sn
}

func (s *memStore) restore(sn memSnapshot) {
	s.products = sn.products
	s.items = sn.items
	s.coupons = sn.coupons
	s.orders = sn.orders
	s.payments = sn.payments
	s.nextDetailID = sn.nextDetailID
}

func (s *memStore) Transact(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sn := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(sn)
		return err
	}
	return nil
}

func (s *memStore) Products() repository.ProductRepository     { return memProducts{s} }
func (s *memStore) FlashSales() repository.FlashSaleRepository { return memSales{s} }
func (s *memStore) Coupons() repository.CouponRepository       { return memCoupons{s} }
func (s *memStore) Orders() repository.OrderRepository         { return memOrders{s} }
func (s *memStore) Payments() repository.PaymentRepository     { return memPayments{s} }

type memProducts struct{ s *memStore }

func (r memProducts) FindByID(ctx context.Context, productID string) (*domain.Product, error) {
	p, ok := r.s.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r memProducts) ReserveStock(ctx context.Context, productID string, qty int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.AvailableQuantity < qty {
		return domain.ErrInsufficientStock
	}
	p.AvailableQuantity -= qty
	r.s.products[productID] = p
	return nil
}

func (r memProducts) ReleaseStock(ctx context.Context, productID string, qty int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.AvailableQuantity += qty
	r.s.products[productID] = p
	return nil
}

type memSales struct{ s *memStore }

func (r memSales) FindCurrentActive(ctx context.Context, now time.Time) (*domain.FlashSale, error) {
	for _, sale := range r.s.sales {
		if !now.Before(sale.StartDate) && !now.After(sale.EndDate) {
			return &sale, nil
		}
	}
	return nil, domain.ErrNoActiveFlashSale
}

func (r memSales) DeductAllocation(ctx context.Context, flashSaleID uint, productID string, qty int) error {
	item, ok := r.s.items[flashSaleID][productID]
	if !ok {
		return domain.ErrProductNotInFlashSale
	}
	if item.Quantity-item.SoldCount < qty {
		return domain.ErrInsufficientStock
	}
	item.SoldCount += qty
	r.s.items[flashSaleID][productID] = item
	return nil
}

func (r memSales) RestoreAllocation(ctx context.Context, flashSaleID uint, productID string, qty int) error {
	item, ok := r.s.items[flashSaleID][productID]
	if !ok {
		return nil
	}
	item.SoldCount -= qty
	if item.SoldCount < 0 {
		item.SoldCount = 0
	}
	r.s.items[flashSaleID][productID] = item
	return nil
}

type memCoupons struct{ s *memStore }

func (r memCoupons) FindByID(ctx context.Context, couponID uint) (*domain.Coupon, error) {
	c, ok := r.s.coupons[couponID]
	if !ok {
		return nil, domain.ErrCouponNotFound
	}
	return &c, nil
}

func (r memCoupons) IncrementUsage(ctx context.Context, couponID uint) error {
	c, ok := r.s.coupons[couponID]
	if !ok {
		return domain.ErrCouponNotFound
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return domain.ErrCouponExhausted
	}
	c.UsedCount++
	r.s.coupons[couponID] = c
	return nil
}

func (r memCoupons) DecrementUsage(ctx context.Context, couponID uint) error {
	c, ok := r.s.coupons[couponID]
	if !ok {
		return domain.ErrCouponNotFound
	}
	if c.UsedCount > 0 {
		c.UsedCount--
	}
	r.s.coupons[couponID] = c
	return nil
}

type memOrders struct{ s *memStore }

func (r memOrders) Save(ctx context.Context, order *domain.Order) error {
	cp := *order
	cp.Details = make([]domain.OrderDetail, len(order.Details))
	for i, d := range order.Details {
		if d.OrderDetailID == 0 {
			r.s.nextDetailID++
			d.OrderDetailID = r.s.nextDetailID
		}
		d.OrderID = cp.OrderID
		cp.Details[i] = d
	}
	r.s.orders[cp.OrderID] = cp
	return nil
}

func (r memOrders) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	o, ok := r.s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Details = append([]domain.OrderDetail(nil), o.Details...)
	return &o, nil
}

func (r memOrders) FindByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r memOrders) FindCartByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.s.orders {
		if o.UserID == userID && !o.IsOrder {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r memOrders) CountCartByUserID(ctx context.Context, userID string) (int64, error) {
	var n int64
	for _, o := range r.s.orders {
		if o.UserID == userID && !o.IsOrder {
			n++
		}
	}
	return n, nil
}

func (r memOrders) FindCartLine(ctx context.Context, userID, productID string) (*domain.OrderDetail, error) {
	for _, o := range r.s.orders {
		if o.UserID != userID || o.IsOrder {
			continue
		}
		for _, d := range o.Details {
			if d.ProductID == productID {
				cp := d
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r memOrders) UpdateCartLineQuantity(ctx context.Context, orderDetailID uint, qty int) error {
	for id, o := range r.s.orders {
		for i, d := range o.Details {
			if d.OrderDetailID == orderDetailID {
				o.Details[i].Quantity = qty
				r.s.orders[id] = o
				return nil
			}
		}
	}
	return domain.ErrOrderNotFound
}

func (r memOrders) DeleteByIDs(ctx context.Context, orderIDs []string) error {
	for _, id := range orderIDs {
		delete(r.s.orders, id)
	}
	return nil
}

func (r memOrders) DeleteCartByUserID(ctx context.Context, userID string) error {
	for id, o := range r.s.orders {
		if o.UserID == userID && !o.IsOrder {
			delete(r.s.orders, id)
		}
	}
	return nil
}

type memPayments struct{ s *memStore }

func (r memPayments) Save(ctx context.Context, payment *domain.Payment) error {
	r.s.payments[payment.PaymentID] = *payment
	return nil
}

func (r memPayments) FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	for _, p := range r.s.payments {
		if p.OrderID == orderID {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (r memPayments) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	for _, p := range r.s.payments {
		if p.TransactionID == transactionID {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}
