package invoicing

import (
	"time"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// ==================== Request DTOs ====================

// AddressInput is the structured billing address of a request
type AddressInput struct {
	Street         string `json:"street" binding:"max=200"`
	PostalCode     string `json:"postal_code" binding:"max=10"`
	City           string `json:"city" binding:"max=100"`
	Country        string `json:"country" binding:"max=100"`
	AdditionalInfo string `json:"additional_info" binding:"max=500"`
}

// InvoiceItemInput represents a line in a create or update request
type InvoiceItemInput struct {
	Description string           `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"gt=0"`
	UnitPrice   decimal.Decimal  `json:"unit_price" binding:"gt=0"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

// CreateInvoiceRequest represents a request to create a draft invoice
type CreateInvoiceRequest struct {
	ClientName     string             `json:"client_name" binding:"required,max=255"`
	ClientEmail    string             `json:"client_email" binding:"required,email,max=255"`
	BillingAddress string             `json:"billing_address" binding:"max=500"`
	Address        *AddressInput      `json:"address"`
	TaxRate        *decimal.Decimal   `json:"tax_rate"`
	IssueDate      string             `json:"issue_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate        string             `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Items          []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest replaces the editable content of a draft invoice.
// Items are replaced as a whole.
type UpdateInvoiceRequest CreateInvoiceRequest

// ListInvoicesFilter represents filter options for invoice listing
type ListInvoicesFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, shared.NewValidationError("%s must be a date formatted as %s", field, DateLayout)
	}
	return &t, nil
}

// toDraft converts a request into domain input. A missing tax rate is
// filled with defaultTaxRate.
func (r CreateInvoiceRequest) toDraft(defaultTaxRate decimal.Decimal) (invoicing.Draft, error) {
	issue, err := parseDate("issue_date", r.IssueDate)
	if err != nil {
		return invoicing.Draft{}, err
	}
	due, err := parseDate("due_date", r.DueDate)
	if err != nil {
		return invoicing.Draft{}, err
	}

	var address invoicing.Address
	if r.Address != nil {
		address, err = invoicing.NewAddress(r.Address.Street, r.Address.PostalCode, r.Address.City, r.Address.Country, r.Address.AdditionalInfo)
		if err != nil {
			return invoicing.Draft{}, err
		}
	}

	taxRate := defaultTaxRate
	if r.TaxRate != nil {
		taxRate = *r.TaxRate
	}

	items := make([]invoicing.ItemSpec, len(r.Items))
	for i, item := range r.Items {
		items[i] = invoicing.ItemSpec{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxRate:     item.TaxRate,
		}
	}

	return invoicing.Draft{
		ClientName:     r.ClientName,
		ClientEmail:    r.ClientEmail,
		BillingAddress: r.BillingAddress,
		Address:        address,
		TaxRate:        &taxRate,
		IssueDate:      issue,
		DueDate:        due,
		Items:          items,
	}, nil
}

// ==================== Response DTOs ====================

func money(d decimal.Decimal) string {
	return d.StringFixed(valueobject.MoneyScale)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// InvoiceItemResponse represents an invoice line in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Quantity    string    `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	TaxRate     string    `json:"tax_rate"`
	LineTotal   string    `json:"line_total"`
	SortOrder   int       `json:"sort_order"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	InvoiceNumber  string                `json:"invoice_number,omitempty"`
	OwnerID        uuid.UUID             `json:"owner_id"`
	ClientName     string                `json:"client_name"`
	ClientEmail    string                `json:"client_email"`
	BillingAddress string                `json:"billing_address,omitempty"`
	Address        *invoicing.Address    `json:"address,omitempty"`
	Subtotal       string                `json:"subtotal"`
	TaxRate        string                `json:"tax_rate"`
	TaxAmount      string                `json:"tax_amount"`
	Total          string                `json:"total"`
	Status         string                `json:"status"`
	IssueDate      string                `json:"issue_date"`
	DueDate        string                `json:"due_date,omitempty"`
	Overdue        bool                  `json:"overdue"`
	SentAt         *time.Time            `json:"sent_at,omitempty"`
	PaidAt         *time.Time            `json:"paid_at,omitempty"`
	CancelledAt    *time.Time            `json:"cancelled_at,omitempty"`
	Items          []InvoiceItemResponse `json:"items"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Version        int                   `json:"version"`
}

// InvoiceListItemResponse is the condensed form used in listings
type InvoiceListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoice_number,omitempty"`
	ClientName    string    `json:"client_name"`
	Total         string    `json:"total"`
	Status        string    `json:"status"`
	IssueDate     string    `json:"issue_date"`
	DueDate       string    `json:"due_date,omitempty"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// DocumentResponse carries a rendered invoice document
type DocumentResponse struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ToInvoiceResponse converts the domain aggregate to a response
func ToInvoiceResponse(inv *invoicing.Invoice, now time.Time) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity.StringFixed(valueobject.QuantityScale),
			UnitPrice:   money(item.UnitPrice),
			TaxRate:     item.TaxRate.StringFixed(2),
			LineTotal:   money(item.LineTotal),
			SortOrder:   item.SortOrder,
		}
	}

	var address *invoicing.Address
	if !inv.Address.IsEmpty() {
		a := inv.Address
		address = &a
	}
	issue := inv.IssueDate

	return InvoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		OwnerID:        inv.OwnerID,
		ClientName:     inv.ClientName,
		ClientEmail:    inv.ClientEmail,
		BillingAddress: inv.BillingAddress,
		Address:        address,
		Subtotal:       money(inv.Subtotal),
		TaxRate:        inv.TaxRate.StringFixed(2),
		TaxAmount:      money(inv.TaxAmount),
		Total:          money(inv.Total),
		Status:         inv.Status.String(),
		IssueDate:      formatDate(&issue),
		DueDate:        formatDate(inv.DueDate),
		Overdue:        inv.IsOverdue(now),
		SentAt:         inv.SentAt,
		PaidAt:         inv.PaidAt,
		CancelledAt:    inv.CancelledAt,
		Items:          items,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
		Version:        inv.GetVersion(),
	}
}

// ToInvoiceListItemResponse converts an invoice to its listing form
func ToInvoiceListItemResponse(inv *invoicing.Invoice) InvoiceListItemResponse {
	issue := inv.IssueDate
	return InvoiceListItemResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.ClientName,
		Total:         money(inv.Total),
		Status:        inv.Status.String(),
		IssueDate:     formatDate(&issue),
		DueDate:       formatDate(inv.DueDate),
		ItemCount:     len(inv.Items),
		CreatedAt:     inv.CreatedAt,
	}
}
