package models

import (
	"time"

	"github.com/billing/backend/internal/domain/payment"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for the Payment aggregate root.
type PaymentModel struct {
	OwnedAggregateModel
	Reference             string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_payments_reference"`
	InvoiceID             uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount                decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Currency              string                `gorm:"type:varchar(3);not null;default:'TND'"`
	Method                payment.PaymentMethod `gorm:"type:varchar(20);not null;default:'CARD'"`
	Status                payment.PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ExternalTransactionID string                `gorm:"type:varchar(255)"`
	PaymentDate           *time.Time
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *payment.Payment {
	currency := valueobject.Currency(m.Currency)
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &payment.Payment{
		OwnedAggregateRoot:    m.ToOwnedAggregateRoot(),
		Reference:             m.Reference,
		InvoiceID:             m.InvoiceID,
		Amount:                valueobject.MustNewMoney(m.Amount, currency),
		Method:                m.Method,
		Status:                m.Status,
		ExternalTransactionID: m.ExternalTransactionID,
		PaymentDate:           m.PaymentDate,
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *payment.Payment) {
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	m.Reference = p.Reference
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount.Amount()
	m.Currency = string(p.Amount.Currency())
	m.Method = p.Method
	m.Status = p.Status
	m.ExternalTransactionID = p.ExternalTransactionID
	m.PaymentDate = p.PaymentDate
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment
func PaymentModelFromDomain(p *payment.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
