package payment

import (
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypePayment = "Payment"

// Event type constants
const (
	EventTypePaymentCreated   = "PaymentCreated"
	EventTypePaymentCompleted = "PaymentCompleted"
	EventTypePaymentFailed    = "PaymentFailed"
	EventTypePaymentRefunded  = "PaymentRefunded"
)

// PaymentCreatedEvent is raised when a payment is registered
type PaymentCreatedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	Reference string          `json:"reference"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

// NewPaymentCreatedEvent creates a new PaymentCreatedEvent
func NewPaymentCreatedEvent(p *Payment, at time.Time) *PaymentCreatedEvent {
	return &PaymentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCreated, AggregateTypePayment, p.ID, p.OwnerID, at),
		PaymentID:       p.ID,
		Reference:       p.Reference,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount.Amount(),
		Currency:        string(p.Amount.Currency()),
	}
}

// PaymentCompletedEvent is raised when a payment is confirmed.
// The invoicing context settles the referenced invoice on receipt.
type PaymentCompletedEvent struct {
	shared.BaseDomainEvent
	PaymentID             uuid.UUID       `json:"payment_id"`
	Reference             string          `json:"reference"`
	InvoiceID             uuid.UUID       `json:"invoice_id"`
	Amount                decimal.Decimal `json:"amount"`
	Currency              string          `json:"currency"`
	ExternalTransactionID string          `json:"external_transaction_id,omitempty"`
}

// NewPaymentCompletedEvent creates a new PaymentCompletedEvent
func NewPaymentCompletedEvent(p *Payment, at time.Time) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypePaymentCompleted, AggregateTypePayment, p.ID, p.OwnerID, at),
		PaymentID:             p.ID,
		Reference:             p.Reference,
		InvoiceID:             p.InvoiceID,
		Amount:                p.Amount.Amount(),
		Currency:              string(p.Amount.Currency()),
		ExternalTransactionID: p.ExternalTransactionID,
	}
}

// PaymentFailedEvent is raised when a pending payment fails
type PaymentFailedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID `json:"payment_id"`
	InvoiceID uuid.UUID `json:"invoice_id"`
	Reason    string    `json:"reason,omitempty"`
}

// NewPaymentFailedEvent creates a new PaymentFailedEvent
func NewPaymentFailedEvent(p *Payment, reason string, at time.Time) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentFailed, AggregateTypePayment, p.ID, p.OwnerID, at),
		PaymentID:       p.ID,
		InvoiceID:       p.InvoiceID,
		Reason:          reason,
	}
}

// PaymentRefundedEvent is raised when a completed payment is refunded
type PaymentRefundedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewPaymentRefundedEvent creates a new PaymentRefundedEvent
func NewPaymentRefundedEvent(p *Payment, at time.Time) *PaymentRefundedEvent {
	return &PaymentRefundedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRefunded, AggregateTypePayment, p.ID, p.OwnerID, at),
		PaymentID:       p.ID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount.Amount(),
	}
}
