package invoicing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/payment"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Settler marks invoices as paid for a payment covering their total
type Settler interface {
	Settle(ctx context.Context, id, ownerID uuid.UUID, paid valueobject.Money) (*InvoiceResponse, error)
}

// SettlementHandler settles an invoice when one of its payments completes.
// Deliveries of the same event are processed once.
type SettlementHandler struct {
	settler     Settler
	idempotency shared.IdempotencyStore
	ttl         time.Duration
	logger      *zap.Logger
}

// NewSettlementHandler creates a new SettlementHandler. A nil store disables
// duplicate detection.
func NewSettlementHandler(settler Settler, store shared.IdempotencyStore, cfg shared.IdempotencyConfig, logger *zap.Logger) *SettlementHandler {
	h := &SettlementHandler{
		settler: settler,
		ttl:     cfg.TTL,
		logger:  logger,
	}
	if cfg.Enabled {
		h.idempotency = store
	}
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *SettlementHandler) EventTypes() []string {
	return []string{payment.EventTypePaymentCompleted}
}

// Handle processes a PaymentCompletedEvent
func (h *SettlementHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completed, ok := event.(*payment.PaymentCompletedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", payment.EventTypePaymentCompleted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			payment.EventTypePaymentCompleted, event.EventType())
	}

	key := "invoice-settlement:" + event.EventID().String()
	if h.idempotency != nil {
		fresh, err := h.idempotency.MarkProcessed(ctx, key, h.ttl)
		if err != nil {
			return fmt.Errorf("idempotency check: %w", err)
		}
		if !fresh {
			h.logger.Debug("payment event already processed",
				zap.String("event_id", event.EventID().String()),
			)
			return nil
		}
	}

	err := h.settle(ctx, completed)
	if err != nil && h.idempotency != nil {
		if forgetErr := h.idempotency.Forget(ctx, key); forgetErr != nil {
			h.logger.Warn("failed to release idempotency key",
				zap.String("key", key),
				zap.Error(forgetErr),
			)
		}
	}
	return err
}

func (h *SettlementHandler) settle(ctx context.Context, event *payment.PaymentCompletedEvent) error {
	h.logger.Info("settling invoice",
		zap.String("invoice_id", event.InvoiceID.String()),
		zap.String("payment_reference", event.Reference),
	)

	paid, err := valueobject.NewMoney(event.Amount, valueobject.Currency(event.Currency))
	if err != nil {
		h.logger.Error("payment event carries an invalid amount",
			zap.String("payment_reference", event.Reference),
			zap.Error(err),
		)
		return shared.NewValidationError("payment %s: %s", event.Reference, err.Error())
	}

	resp, err := h.settler.Settle(ctx, event.InvoiceID, event.OwnerID(), paid)
	if err == nil {
		h.logger.Info("invoice settled",
			zap.String("invoice_id", resp.ID.String()),
			zap.String("invoice_number", resp.InvoiceNumber),
		)
		return nil
	}

	var transition *shared.InvalidStateTransition
	if errors.As(err, &transition) && transition.Current == invoicing.StatusPaid.String() {
		h.logger.Info("invoice already paid",
			zap.String("invoice_id", event.InvoiceID.String()),
		)
		return nil
	}

	h.logger.Error("failed to settle invoice",
		zap.String("invoice_id", event.InvoiceID.String()),
		zap.String("payment_reference", event.Reference),
		zap.Error(err),
	)
	return err
}

var _ shared.EventHandler = (*SettlementHandler)(nil)
