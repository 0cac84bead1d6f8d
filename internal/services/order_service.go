package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"shop-order-service/internal/domain"
	rabbit "shop-order-service/internal/infra/rabbitmq"
	"shop-order-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// LineItem is one requested order line as supplied by the caller. Prices are
// frozen request values, never recomputed from the product afterwards.
type LineItem struct {
	ProductID         string
	Quantity          int
	UnitPrice         decimal.Decimal
	OriginalUnitPrice decimal.Decimal
	IsFlashSale       bool
}

type Config struct {
	// RefundCouponOnCancel returns the coupon use when a referencing order
	// is cancelled. Off by default: a redeemed coupon stays consumed.
	RefundCouponOnCancel bool
}

type OrderService struct {
	store       repository.Store
	publisher   rabbit.PublisherInterface
	redisClient *redis.Client
	cfg         Config
}

func NewOrderService(store repository.Store, pub rabbit.PublisherInterface, cfg Config) *OrderService {
	return &OrderService{
		store:     store,
		publisher: pub,
		cfg:       cfg,
	}
}

func (u *OrderService) SetRedisClient(client *redis.Client) {
	u.redisClient = client
}

// CreateCartLine adds qty of a product to the user's cart, merging into an
// existing line for the same product. Stock is checked but never reserved on
// this path; reservation happens at checkout.
func (u *OrderService) CreateCartLine(ctx context.Context, userID, productID string, qty int) (*domain.Order, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", qty)
	}

	var result *domain.Order
	err := u.store.Transact(ctx, func(s repository.Store) error {
		prod, err := s.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}

		line, err := s.Orders().FindCartLine(ctx, userID, productID)
		if err != nil {
			return err
		}
		if line != nil {
			merged := line.Quantity + qty
			if prod.AvailableQuantity < merged {
				return domain.ErrInsufficientStock
			}
			if err := s.Orders().UpdateCartLineQuantity(ctx, line.OrderDetailID, merged); err != nil {
				return err
			}
			result, err = s.Orders().FindByID(ctx, line.OrderID)
			return err
		}

		if prod.AvailableQuantity < qty {
			return domain.ErrInsufficientStock
		}

		price := discountedPrice(prod)
		order := &domain.Order{
			OrderID:     newOrderID(),
			UserID:      userID,
			OrderStatus: domain.StatusPending,
			OrderDate:   time.Now(),
			TotalAmount: price.Mul(decimal.NewFromInt(int64(qty))),
			IsOrder:     false,
			Details: []domain.OrderDetail{{
				ProductID:         productID,
				Quantity:          qty,
				UnitPrice:         price,
				OriginalUnitPrice: prod.Price,
			}},
		}
		if err := s.Orders().Save(ctx, order); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Checkout consumes the user's cart and creates one confirmed order from the
// submitted lines. Cart deletion, ledger reservations, the order and its
// payment row all commit or roll back together.
func (u *OrderService) Checkout(ctx context.Context, userID, shippingAddress, note string, couponID *uint, lines []LineItem) (*domain.Order, error) {
	var created *domain.Order
	err := u.store.Transact(ctx, func(s repository.Store) error {
		if err := s.Orders().DeleteCartByUserID(ctx, userID); err != nil {
			return err
		}
		o, err := u.createConfirmedOrder(ctx, s, userID, shippingAddress, note, couponID, lines, nil)
		if err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	go u.publishOrderCreated(context.Background(), created)
	return created, nil
}

// BuyNow creates a confirmed order directly, without touching the cart.
func (u *OrderService) BuyNow(ctx context.Context, userID string, lines []LineItem, shippingAddress, note string, couponID *uint) (*domain.Order, error) {
	var created *domain.Order
	err := u.store.Transact(ctx, func(s repository.Store) error {
		o, err := u.createConfirmedOrder(ctx, s, userID, shippingAddress, note, couponID, lines, nil)
		if err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	go u.publishOrderCreated(context.Background(), created)
	return created, nil
}

// ReplaceOrder atomically swaps a known set of existing order/cart rows for
// one newly composed order. A failure on any line leaves the old rows in
// place.
func (u *OrderService) ReplaceOrder(ctx context.Context, userID string, oldOrderIDs []string, lines []LineItem, shippingAddress, note string, couponID *uint, totalAmount decimal.Decimal) (*domain.Order, error) {
	var created *domain.Order
	err := u.store.Transact(ctx, func(s repository.Store) error {
		if err := s.Orders().DeleteByIDs(ctx, oldOrderIDs); err != nil {
			return err
		}
		o, err := u.createConfirmedOrder(ctx, s, userID, shippingAddress, note, couponID, lines, &totalAmount)
		if err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	go u.publishOrderCreated(context.Background(), created)
	return created, nil
}

// createConfirmedOrder runs the shared reservation+creation path: coupon
// redemption, per-line stock reservation, flash-sale allocation deduction,
// then the order and its pending payment row. Must be called inside a
// transaction-bound store.
func (u *OrderService) createConfirmedOrder(ctx context.Context, s repository.Store, userID, shippingAddress, note string, couponID *uint, lines []LineItem, totalOverride *decimal.Decimal) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, errors.New("order must contain at least one line item")
	}
	now := time.Now()

	var coupon *domain.Coupon
	if couponID != nil {
		c, err := u.redeemCoupon(ctx, s, *couponID, now)
		if err != nil {
			return nil, err
		}
		coupon = c
	}

	var sale *domain.FlashSale
	for _, ln := range lines {
		if ln.IsFlashSale {
			var err error
			sale, err = s.FlashSales().FindCurrentActive(ctx, now)
			if err != nil {
				return nil, err
			}
			break
		}
	}

	total := decimal.Zero
	details := make([]domain.OrderDetail, 0, len(lines))
	for _, ln := range lines {
		if ln.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive for product %s", ln.ProductID)
		}
		if err := s.Products().ReserveStock(ctx, ln.ProductID, ln.Quantity); err != nil {
			return nil, err
		}

		d := domain.OrderDetail{
			ProductID:         ln.ProductID,
			Quantity:          ln.Quantity,
			UnitPrice:         ln.UnitPrice,
			OriginalUnitPrice: ln.OriginalUnitPrice,
			IsFlashSale:       ln.IsFlashSale,
		}
		if ln.IsFlashSale {
			if err := s.FlashSales().DeductAllocation(ctx, sale.FlashSaleID, ln.ProductID, ln.Quantity); err != nil {
				return nil, err
			}
			saleID := sale.FlashSaleID
			d.FlashSaleID = &saleID
		}

		total = total.Add(ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Quantity))))
		details = append(details, d)
	}

	if coupon != nil {
		total = applyCouponDiscount(total, coupon.DiscountPercent)
	}
	if totalOverride != nil {
		total = *totalOverride
	}

	order := &domain.Order{
		OrderID:         newOrderID(),
		UserID:          userID,
		ShippingAddress: shippingAddress,
		CustomerNote:    note,
		OrderStatus:     domain.StatusPending,
		OrderDate:       now,
		CouponID:        couponID,
		TotalAmount:     total,
		IsOrder:         true,
		Details:         details,
	}
	if err := s.Orders().Save(ctx, order); err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		PaymentID:     newPaymentID(),
		OrderID:       order.OrderID,
		TransactionID: newTransactionRef(),
		Amount:        total,
		PaymentStatus: domain.PaymentPending,
	}
	if err := s.Payments().Save(ctx, payment); err != nil {
		return nil, err
	}

	return order, nil
}

func (u *OrderService) redeemCoupon(ctx context.Context, s repository.Store, couponID uint, now time.Time) (*domain.Coupon, error) {
	c, err := s.Coupons().FindByID(ctx, couponID)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, domain.ErrCouponInactive
	}
	if !c.StartDate.IsZero() && now.Before(c.StartDate) {
		return nil, domain.ErrCouponExpired
	}
	if !c.EndDate.IsZero() && now.After(c.EndDate) {
		return nil, domain.ErrCouponExpired
	}
	if err := s.Coupons().IncrementUsage(ctx, c.CouponID); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateOrderStatus moves a confirmed order along the forward path of the
// state machine. Cancellation is not reachable here; it carries compensating
// actions and has its own entry point.
func (u *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if status == domain.StatusCancelled {
		return errors.New("cancellation must go through CancelOrder")
	}
	return u.store.Transact(ctx, func(s repository.Store) error {
		o, err := s.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !o.IsOrder {
			return domain.ErrOrderNotFound
		}
		if !o.OrderStatus.CanTransitionTo(status) {
			return &domain.InvalidTransitionError{From: o.OrderStatus, To: status}
		}
		o.OrderStatus = status
		o.UpdatedAt = time.Now()
		return s.Orders().Save(ctx, o)
	})
}

// CancelOrder reverses everything order creation did: releases stock per
// line, restores flash-sale allocations recorded on the lines, flips the
// payment, and marks the order Cancelled with the reason appended to the
// note.
func (u *OrderService) CancelOrder(ctx context.Context, orderID, reason string) error {
	var cancelled *domain.Order
	err := u.store.Transact(ctx, func(s repository.Store) error {
		o, err := s.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !o.IsOrder {
			return domain.ErrOrderNotFound
		}
		if !o.OrderStatus.CanCancel() {
			return &domain.InvalidTransitionError{From: o.OrderStatus, To: domain.StatusCancelled}
		}

		for _, d := range o.Details {
			if err := s.Products().ReleaseStock(ctx, d.ProductID, d.Quantity); err != nil {
				return err
			}
			if d.IsFlashSale && d.FlashSaleID != nil {
				if err := s.FlashSales().RestoreAllocation(ctx, *d.FlashSaleID, d.ProductID, d.Quantity); err != nil {
					return err
				}
			}
		}

		if u.cfg.RefundCouponOnCancel && o.CouponID != nil {
			if err := s.Coupons().DecrementUsage(ctx, *o.CouponID); err != nil {
				return err
			}
		}

		p, err := s.Payments().FindByOrderID(ctx, orderID)
		if err != nil && !errors.Is(err, domain.ErrPaymentNotFound) {
			return err
		}
		if p != nil {
			switch p.PaymentStatus {
			case domain.PaymentCompleted:
				p.PaymentStatus = domain.PaymentRefundPending
			case domain.PaymentPending:
				p.PaymentStatus = domain.PaymentFailed
			}
			if err := s.Payments().Save(ctx, p); err != nil {
				return err
			}
		}

		o.OrderStatus = domain.StatusCancelled
		if o.CustomerNote != "" {
			o.CustomerNote += " | "
		}
		o.CustomerNote += "Cancelled: " + reason
		o.UpdatedAt = time.Now()
		if err := s.Orders().Save(ctx, o); err != nil {
			return err
		}
		cancelled = o
		return nil
	})
	if err != nil {
		return err
	}

	go u.publishOrderCancelled(context.Background(), cancelled, reason)
	return nil
}

func (u *OrderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return u.store.Orders().FindByID(ctx, orderID)
}

func (u *OrderService) GetOrdersByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	return u.store.Orders().FindByUserID(ctx, userID)
}

func (u *OrderService) GetCart(ctx context.Context, userID string) ([]domain.Order, error) {
	return u.store.Orders().FindCartByUserID(ctx, userID)
}

func (u *OrderService) GetCartCount(ctx context.Context, userID string) (int64, error) {
	return u.store.Orders().CountCartByUserID(ctx, userID)
}

func (u *OrderService) GetCurrentFlashSale(ctx context.Context) (*domain.FlashSale, error) {
	return u.store.FlashSales().FindCurrentActive(ctx, time.Now())
}

// GetProduct reads a product through the redis cache. Only non-authoritative
// reads go through here; every stock check that matters happens fresh inside
// a transaction.
func (u *OrderService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	cacheKey := "product:" + productID

	if u.redisClient != nil {
		cached, err := u.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := u.store.Products().FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if u.redisClient != nil {
		if data, err := json.Marshal(p); err == nil {
			u.redisClient.Set(ctx, cacheKey, data, time.Minute)
		}
	}

	return p, nil
}

func (u *OrderService) WarmupProductCache(ctx context.Context, productIDs []string) error {
	if u.redisClient == nil {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range productIDs {
		id := id
		g.Go(func() error {
			p, err := u.store.Products().FindByID(ctx, id)
			if err != nil {
				log.Printf("Failed to warm up cache for product %s: %v", id, err)
				return nil
			}
			if data, err := json.Marshal(p); err == nil {
				u.redisClient.Set(ctx, "product:"+id, data, 5*time.Minute)
			}
			return nil
		})
	}
	return g.Wait()
}

func (u *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		LineCount:   len(order.Details),
		CreatedAt:   order.OrderDate,
	}

	if err := u.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("Failed to publish order.created for %s: %v", order.OrderID, err)
	}
}

func (u *OrderService) publishOrderCancelled(ctx context.Context, order *domain.Order, reason string) {
	evt := domain.OrderCancelledEvent{
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		Reason:      reason,
		CancelledAt: order.UpdatedAt,
	}

	if err := u.publisher.Publish(ctx, "order.cancelled", evt); err != nil {
		log.Printf("Failed to publish order.cancelled for %s: %v", order.OrderID, err)
	}
}

func discountedPrice(p *domain.Product) decimal.Decimal {
	if p.DiscountPercent <= 0 {
		return p.Price
	}
	return p.Price.
		Mul(decimal.NewFromInt(int64(100 - p.DiscountPercent))).
		Div(decimal.NewFromInt(100)).
		Round(2)
}

func applyCouponDiscount(total decimal.Decimal, percent int) decimal.Decimal {
	if percent <= 0 {
		return total
	}
	return total.
		Mul(decimal.NewFromInt(int64(100 - percent))).
		Div(decimal.NewFromInt(100)).
		Round(2)
}

func newOrderID() string {
	return "OR" + shortUUID()
}

func newPaymentID() string {
	return "PM" + shortUUID()
}

func newTransactionRef() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func shortUUID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
