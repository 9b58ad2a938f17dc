package payment

import (
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinAmount is the smallest payable amount
var MinAmount = decimal.RequireFromString("0.01")

// MaxExternalTransactionIDLength bounds the gateway reference
const MaxExternalTransactionIDLength = 255

// Payment records money received against an invoice
type Payment struct {
	shared.OwnedAggregateRoot
	Reference             string
	InvoiceID             uuid.UUID
	Amount                valueobject.Money
	Method                PaymentMethod
	Status                PaymentStatus
	ExternalTransactionID string
	PaymentDate           *time.Time
}

// NewPayment creates a PENDING payment. An empty method falls back to
// DefaultMethod and an empty currency to valueobject.DefaultCurrency.
func NewPayment(
	ownerID, invoiceID uuid.UUID,
	reference string,
	amount decimal.Decimal,
	currency valueobject.Currency,
	method PaymentMethod,
	externalTransactionID string,
	now time.Time,
) (*Payment, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewValidationError("owner is required")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewValidationError("invoice ID is required")
	}
	if strings.TrimSpace(reference) == "" {
		return nil, shared.NewValidationError("payment reference is required")
	}

	amount = valueobject.RoundMoney(amount)
	if amount.LessThan(MinAmount) {
		return nil, shared.NewValidationError("payment amount must be at least %s", MinAmount.StringFixed(2))
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	money, err := valueobject.NewMoney(amount, valueobject.Currency(strings.ToUpper(string(currency))))
	if err != nil {
		return nil, shared.NewValidationError("%s", err.Error())
	}

	if method == "" {
		method = DefaultMethod
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("invalid payment method: %s", method)
	}

	externalTransactionID = strings.TrimSpace(externalTransactionID)
	if len(externalTransactionID) > MaxExternalTransactionIDLength {
		return nil, shared.NewValidationError("external transaction ID cannot exceed %d characters", MaxExternalTransactionIDLength)
	}

	p := &Payment{
		OwnedAggregateRoot:    shared.NewOwnedAggregateRoot(ownerID, now),
		Reference:             reference,
		InvoiceID:             invoiceID,
		Amount:                money,
		Method:                method,
		Status:                StatusPending,
		ExternalTransactionID: externalTransactionID,
	}
	p.AddDomainEvent(NewPaymentCreatedEvent(p, now))
	return p, nil
}

func (p *Payment) moveTo(target PaymentStatus, op string) error {
	if !p.Status.CanTransitionTo(target) {
		return shared.NewInvalidStateTransition("payment", p.ID, p.Status.String(), op)
	}
	p.Status = target
	return nil
}

// Confirm completes a pending payment and stamps the payment date.
// A non-empty externalTransactionID replaces the stored one.
func (p *Payment) Confirm(externalTransactionID string, now time.Time) error {
	if err := p.moveTo(StatusCompleted, "confirm"); err != nil {
		return err
	}
	if id := strings.TrimSpace(externalTransactionID); id != "" {
		p.ExternalTransactionID = id
	}
	p.PaymentDate = &now
	p.Touch(now)
	p.AddDomainEvent(NewPaymentCompletedEvent(p, now))
	return nil
}

// Fail marks a pending payment as failed
func (p *Payment) Fail(reason string, now time.Time) error {
	if err := p.moveTo(StatusFailed, "fail"); err != nil {
		return err
	}
	p.Touch(now)
	p.AddDomainEvent(NewPaymentFailedEvent(p, reason, now))
	return nil
}

// Refund reverses a completed payment
func (p *Payment) Refund(now time.Time) error {
	if err := p.moveTo(StatusRefunded, "refund"); err != nil {
		return err
	}
	p.Touch(now)
	p.AddDomainEvent(NewPaymentRefundedEvent(p, now))
	return nil
}

// IsCompleted reports whether the payment settled
func (p *Payment) IsCompleted() bool {
	return p.Status == StatusCompleted
}
