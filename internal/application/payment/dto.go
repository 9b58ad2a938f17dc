package payment

import (
	"time"

	"github.com/billing/backend/internal/domain/payment"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest registers a payment against an invoice.
// Amount and currency default to the invoice total and the configured
// currency; explicit values must match them.
type CreatePaymentRequest struct {
	InvoiceID             uuid.UUID        `json:"invoice_id" binding:"required"`
	Amount                *decimal.Decimal `json:"amount"`
	Currency              string           `json:"currency" binding:"omitempty,len=3"`
	Method                string           `json:"payment_method" binding:"omitempty,oneof=CARD BANK_TRANSFER CASH CHECK"`
	ExternalTransactionID string           `json:"external_transaction_id" binding:"max=255"`
}

// ConfirmPaymentRequest completes a pending payment
type ConfirmPaymentRequest struct {
	ExternalTransactionID string `json:"external_transaction_id" binding:"max=255"`
}

// FailPaymentRequest marks a pending payment as failed
type FailPaymentRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ListPaymentsFilter represents filter options for payment listing
type ListPaymentsFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING COMPLETED FAILED REFUNDED"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID                    uuid.UUID  `json:"id"`
	Reference             string     `json:"reference"`
	InvoiceID             uuid.UUID  `json:"invoice_id"`
	OwnerID               uuid.UUID  `json:"owner_id"`
	Amount                string     `json:"amount"`
	Currency              string     `json:"currency"`
	Method                string     `json:"payment_method"`
	Status                string     `json:"status"`
	ExternalTransactionID string     `json:"external_transaction_id,omitempty"`
	PaymentDate           *time.Time `json:"payment_date,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// ToPaymentResponse converts a domain payment to a response
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                    p.ID,
		Reference:             p.Reference,
		InvoiceID:             p.InvoiceID,
		OwnerID:               p.OwnerID,
		Amount:                p.Amount.Amount().StringFixed(valueobject.MoneyScale),
		Currency:              string(p.Amount.Currency()),
		Method:                p.Method.String(),
		Status:                p.Status.String(),
		ExternalTransactionID: p.ExternalTransactionID,
		PaymentDate:           p.PaymentDate,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func toPaymentResponses(payments []payment.Payment) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToPaymentResponse(&payments[i])
	}
	return out
}
