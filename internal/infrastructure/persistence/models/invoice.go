package models

import (
	"time"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	OwnedAggregateModel
	InvoiceNumber  *string                 `gorm:"type:varchar(50);uniqueIndex:idx_invoices_number"`
	ClientName     string                  `gorm:"type:varchar(255);not null"`
	ClientEmail    string                  `gorm:"type:varchar(255);not null"`
	BillingAddress string                  `gorm:"type:varchar(500)"`
	Address        invoicing.Address       `gorm:"type:text"`
	Subtotal       decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate        decimal.Decimal         `gorm:"type:decimal(7,4);not null;default:19"`
	TaxAmount      decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Total          decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Status         invoicing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	IssueDate      time.Time               `gorm:"type:date;not null"`
	DueDate        *time.Time              `gorm:"type:date"`
	SignatureHash  string                  `gorm:"type:varchar(128)"`
	SentAt         *time.Time
	PaidAt         *time.Time
	CancelledAt    *time.Time
	Items          []InvoiceItemModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
// Items keep the order in which they were loaded.
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	inv := &invoicing.Invoice{
		OwnedAggregateRoot: m.ToOwnedAggregateRoot(),
		ClientName:         m.ClientName,
		ClientEmail:        m.ClientEmail,
		BillingAddress:     m.BillingAddress,
		Address:            m.Address,
		Subtotal:           m.Subtotal,
		TaxRate:            m.TaxRate,
		TaxAmount:          m.TaxAmount,
		Total:              m.Total,
		Status:             m.Status,
		IssueDate:          m.IssueDate.UTC(),
		DueDate:            m.DueDate,
		SignatureHash:      m.SignatureHash,
		SentAt:             m.SentAt,
		PaidAt:             m.PaidAt,
		CancelledAt:        m.CancelledAt,
		Items:              make([]invoicing.InvoiceItem, len(m.Items)),
	}
	if m.InvoiceNumber != nil {
		inv.InvoiceNumber = *m.InvoiceNumber
	}
	for i := range m.Items {
		inv.Items[i] = m.Items[i].ToDomain()
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *invoicing.Invoice) {
	m.FromDomainOwnedAggregateRoot(inv.OwnedAggregateRoot)
	m.InvoiceNumber = nil
	if inv.InvoiceNumber != "" {
		number := inv.InvoiceNumber
		m.InvoiceNumber = &number
	}
	m.ClientName = inv.ClientName
	m.ClientEmail = inv.ClientEmail
	m.BillingAddress = inv.BillingAddress
	m.Address = inv.Address
	m.Subtotal = inv.Subtotal
	m.TaxRate = inv.TaxRate
	m.TaxAmount = inv.TaxAmount
	m.Total = inv.Total
	m.Status = inv.Status
	m.IssueDate = inv.IssueDate
	m.DueDate = inv.DueDate
	m.SignatureHash = inv.SignatureHash
	m.SentAt = inv.SentAt
	m.PaidAt = inv.PaidAt
	m.CancelledAt = inv.CancelledAt
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i := range inv.Items {
		m.Items[i] = InvoiceItemModelFromDomain(inv.ID, &inv.Items[i])
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for an invoice line
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_invoice_items_order,priority:1"`
	SortOrder   int             `gorm:"not null;default:0;index:idx_invoice_items_order,priority:2"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(7,4);not null;default:19"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem
func (m *InvoiceItemModel) ToDomain() invoicing.InvoiceItem {
	return invoicing.InvoiceItem{
		ID:          m.ID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TaxRate:     m.TaxRate,
		LineTotal:   m.LineTotal,
		SortOrder:   m.SortOrder,
	}
}

// InvoiceItemModelFromDomain creates an item model owned by invoiceID
func InvoiceItemModelFromDomain(invoiceID uuid.UUID, item *invoicing.InvoiceItem) InvoiceItemModel {
	return InvoiceItemModel{
		ID:          item.ID,
		InvoiceID:   invoiceID,
		SortOrder:   item.SortOrder,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TaxRate:     item.TaxRate,
		LineTotal:   item.LineTotal,
	}
}
