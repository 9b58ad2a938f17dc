package invoicing

import (
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceCreated   = "InvoiceCreated"
	EventTypeInvoiceUpdated   = "InvoiceUpdated"
	EventTypeInvoiceValidated = "InvoiceValidated"
	EventTypeInvoiceSent      = "InvoiceSent"
	EventTypeInvoiceCancelled = "InvoiceCancelled"
	EventTypeInvoicePaid      = "InvoicePaid"
	EventTypeInvoiceDeleted   = "InvoiceDeleted"
)

func newBase(eventType string, inv *Invoice, at time.Time) shared.BaseDomainEvent {
	return shared.NewBaseDomainEvent(eventType, AggregateTypeInvoice, inv.ID, inv.OwnerID, at)
}

// InvoiceCreatedEvent is raised when a draft invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	ClientName string          `json:"client_name"`
	ItemCount  int             `json:"item_count"`
	Total      decimal.Decimal `json:"total"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice, at time.Time) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: newBase(EventTypeInvoiceCreated, inv, at),
		InvoiceID:       inv.ID,
		ClientName:      inv.ClientName,
		ItemCount:       len(inv.Items),
		Total:           inv.Total,
	}
}

// InvoiceUpdatedEvent is raised when a draft is edited
type InvoiceUpdatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID       `json:"invoice_id"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// NewInvoiceUpdatedEvent creates a new InvoiceUpdatedEvent
func NewInvoiceUpdatedEvent(inv *Invoice, at time.Time) *InvoiceUpdatedEvent {
	return &InvoiceUpdatedEvent{
		BaseDomainEvent: newBase(EventTypeInvoiceUpdated, inv, at),
		InvoiceID:       inv.ID,
		ItemCount:       len(inv.Items),
		Total:           inv.Total,
	}
}

// InvoiceValidatedEvent is raised when an invoice receives its number
type InvoiceValidatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Total         decimal.Decimal `json:"total"`
}

// NewInvoiceValidatedEvent creates a new InvoiceValidatedEvent
func NewInvoiceValidatedEvent(inv *Invoice, at time.Time) *InvoiceValidatedEvent {
	return &InvoiceValidatedEvent{
		BaseDomainEvent: newBase(EventTypeInvoiceValidated, inv, at),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		Total:           inv.Total,
	}
}

// InvoiceSentEvent is raised when an invoice is sent to its client
type InvoiceSentEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	ClientEmail   string    `json:"client_email"`
}

// NewInvoiceSentEvent creates a new InvoiceSentEvent
func NewInvoiceSentEvent(inv *Invoice, at time.Time) *InvoiceSentEvent {
	return &InvoiceSentEvent{
		BaseDomainEvent: newBase(EventTypeInvoiceSent, inv, at),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		ClientEmail:     inv.ClientEmail,
	}
}

// InvoiceCancelledEvent is raised when an invoice is cancelled
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID     `json:"invoice_id"`
	InvoiceNumber string        `json:"invoice_number,omitempty"`
	FromStatus    InvoiceStatus `json:"from_status"`
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(inv *Invoice, from InvoiceStatus, at time.Time) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: newBase(EventTypeInvoiceCancelled, inv, at),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		FromStatus:      from,
	}
}

// InvoicePaidEvent is raised when a payment confirmation settles the invoice
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Total         decimal.Decimal `json:"total"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice, at time.Time) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: newBase(EventTypeInvoicePaid, inv, at),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		Total:           inv.Total,
	}
}

// InvoiceDeletedEvent is raised when a draft is removed
type InvoiceDeletedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID `json:"invoice_id"`
}

// NewInvoiceDeletedEvent creates a new InvoiceDeletedEvent
func NewInvoiceDeletedEvent(inv *Invoice, at time.Time) *InvoiceDeletedEvent {
	return &InvoiceDeletedEvent{
		BaseDomainEvent: newBase(EventTypeInvoiceDeleted, inv, at),
		InvoiceID:       inv.ID,
	}
}
