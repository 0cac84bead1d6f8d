package services

import (
	"context"
	"log"
	"time"

	"shop-order-service/internal/domain"
	rabbit "shop-order-service/internal/infra/rabbitmq"
	"shop-order-service/internal/repository"

	"github.com/shopspring/decimal"
)

// PaymentService reconciles verified gateway results onto the payment and
// order rows. Signature verification belongs to the gateway boundary; by the
// time Reconcile runs, (reference, paid, amount) is a trusted fact.
type PaymentService struct {
	store     repository.Store
	publisher rabbit.PublisherInterface
}

func NewPaymentService(store repository.Store, pub rabbit.PublisherInterface) *PaymentService {
	return &PaymentService{store: store, publisher: pub}
}

// Reconcile finds the payment by the gateway reference and applies the
// result. A paid result whose amount differs from the recorded amount is
// rejected: that discrepancy is an integrity flag, not something to accept
// silently.
func (u *PaymentService) Reconcile(ctx context.Context, transactionID string, paid bool, amount decimal.Decimal) error {
	var evt *domain.PaymentReconciledEvent
	err := u.store.Transact(ctx, func(s repository.Store) error {
		p, err := s.Payments().FindByTransactionID(ctx, transactionID)
		if err != nil {
			return err
		}

		if paid {
			if !amount.Equal(p.Amount) {
				log.Printf("payment %s amount mismatch: gateway reported %s, recorded %s", p.PaymentID, amount, p.Amount)
				return domain.ErrAmountMismatch
			}
			now := time.Now()
			p.PaymentStatus = domain.PaymentCompleted
			p.PaymentDate = &now

			o, err := s.Orders().FindByID(ctx, p.OrderID)
			if err != nil {
				return err
			}
			if o.OrderStatus == domain.StatusPending {
				o.OrderStatus = domain.StatusProcessing
				o.UpdatedAt = now
				if err := s.Orders().Save(ctx, o); err != nil {
					return err
				}
			}
		} else {
			p.PaymentStatus = domain.PaymentFailed
		}

		if err := s.Payments().Save(ctx, p); err != nil {
			return err
		}
		evt = &domain.PaymentReconciledEvent{
			PaymentID: p.PaymentID,
			OrderID:   p.OrderID,
			Status:    p.PaymentStatus,
			Amount:    p.Amount,
		}
		return nil
	})
	if err != nil {
		return err
	}

	go u.publishReconciled(context.Background(), evt)
	return nil
}

func (u *PaymentService) publishReconciled(ctx context.Context, evt *domain.PaymentReconciledEvent) {
	if err := u.publisher.Publish(ctx, "payment.reconciled", evt); err != nil {
		log.Printf("Failed to publish payment.reconciled for %s: %v", evt.PaymentID, err)
	}
}
