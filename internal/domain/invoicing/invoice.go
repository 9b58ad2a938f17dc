package invoicing

import (
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Field limits
const (
	MaxClientNameLength     = 255
	MaxClientEmailLength    = 255
	MaxBillingAddressLength = 500
)

// Draft carries the caller-editable content of an invoice
type Draft struct {
	ClientName     string
	ClientEmail    string
	BillingAddress string
	Address        Address
	TaxRate        *decimal.Decimal
	IssueDate      *time.Time
	DueDate        *time.Time
	Items          []ItemSpec
}

// Invoice is the aggregate root of the invoicing context.
// Totals are always derived from Items and TaxRate; callers never set them.
type Invoice struct {
	shared.OwnedAggregateRoot
	InvoiceNumber  string // empty until validated, immutable afterwards
	ClientName     string
	ClientEmail    string
	BillingAddress string
	Address        Address
	Subtotal       decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	Status         InvoiceStatus
	IssueDate      time.Time
	DueDate        *time.Time
	SignatureHash  string
	SentAt         *time.Time
	PaidAt         *time.Time
	CancelledAt    *time.Time
	Items          []InvoiceItem
}

// draftContent is a fully validated Draft ready to be applied
type draftContent struct {
	clientName     string
	clientEmail    string
	billingAddress string
	address        Address
	taxRate        decimal.Decimal
	issueDate      time.Time
	dueDate        *time.Time
	items          []InvoiceItem
}

func prepareDraft(d Draft, now time.Time) (draftContent, error) {
	c := draftContent{
		clientName:     strings.TrimSpace(d.ClientName),
		clientEmail:    strings.TrimSpace(d.ClientEmail),
		billingAddress: strings.TrimSpace(d.BillingAddress),
		address:        d.Address,
		taxRate:        DefaultTaxRate,
		issueDate:      shared.DateOf(now),
	}

	if c.clientName == "" {
		return draftContent{}, shared.NewValidationError("client name is required")
	}
	if len(c.clientName) > MaxClientNameLength {
		return draftContent{}, shared.NewValidationError("client name cannot exceed %d characters", MaxClientNameLength)
	}
	if c.clientEmail == "" {
		return draftContent{}, shared.NewValidationError("client email is required")
	}
	if len(c.clientEmail) > MaxClientEmailLength {
		return draftContent{}, shared.NewValidationError("client email cannot exceed %d characters", MaxClientEmailLength)
	}
	if len(c.billingAddress) > MaxBillingAddressLength {
		return draftContent{}, shared.NewValidationError("billing address cannot exceed %d characters", MaxBillingAddressLength)
	}
	if d.TaxRate != nil {
		rate, err := normalizeTaxRate(*d.TaxRate)
		if err != nil {
			return draftContent{}, err
		}
		c.taxRate = rate
	}
	if d.IssueDate != nil {
		c.issueDate = shared.DateOf(*d.IssueDate)
	}
	if d.DueDate != nil {
		due := shared.DateOf(*d.DueDate)
		c.dueDate = &due
	}

	items, err := BuildItems(d.Items)
	if err != nil {
		return draftContent{}, err
	}
	c.items = items
	return c, nil
}

func (i *Invoice) applyDraft(c draftContent) {
	i.ClientName = c.clientName
	i.ClientEmail = c.clientEmail
	i.BillingAddress = c.billingAddress
	i.Address = c.address
	i.TaxRate = c.taxRate
	i.IssueDate = c.issueDate
	i.DueDate = c.dueDate
	i.Items = c.items
	i.ComputeTotals()
}

// NewInvoice creates a DRAFT invoice for ownerID with computed totals.
// The tax rate defaults to DefaultTaxRate and the issue date to the day of now.
func NewInvoice(ownerID uuid.UUID, d Draft, now time.Time) (*Invoice, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewValidationError("owner is required")
	}
	content, err := prepareDraft(d, now)
	if err != nil {
		return nil, err
	}

	invoice := &Invoice{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID, now),
		Status:             StatusDraft,
	}
	invoice.applyDraft(content)
	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice, now))
	return invoice, nil
}

// ComputeTotals derives Subtotal, TaxAmount and Total from the items and the
// invoice-level tax rate. Line-level rates are not folded in.
func (i *Invoice) ComputeTotals() {
	lines := make([]decimal.Decimal, len(i.Items))
	for idx := range i.Items {
		i.Items[idx].LineTotal = i.Items[idx].ExtendedAmount()
		lines[idx] = i.Items[idx].LineTotal
	}
	i.Subtotal = valueobject.Sum(lines...)
	i.TaxAmount = valueobject.PercentOf(i.Subtotal, i.TaxRate)
	i.Total = i.Subtotal.Add(i.TaxAmount)
}

// transition checks op against the lifecycle table without mutating
func (i *Invoice) transition(op Operation) (InvoiceStatus, error) {
	to, ok := i.Status.Next(op)
	if !ok {
		return "", shared.NewInvalidStateTransition("invoice", i.ID, i.Status.String(), string(op))
	}
	return to, nil
}

// UpdateDraft replaces client fields, dates, tax rate and items of a DRAFT
// invoice and recomputes totals. Nothing changes on error.
func (i *Invoice) UpdateDraft(d Draft, now time.Time) error {
	if _, err := i.transition(OpUpdate); err != nil {
		return err
	}
	content, err := prepareDraft(d, now)
	if err != nil {
		return err
	}
	i.applyDraft(content)
	i.Touch(now)
	i.AddDomainEvent(NewInvoiceUpdatedEvent(i, now))
	return nil
}

// Validate assigns number and moves the invoice to VALIDATED
func (i *Invoice) Validate(number string, now time.Time) error {
	to, err := i.transition(OpValidate)
	if err != nil {
		return err
	}
	if strings.TrimSpace(number) == "" {
		return shared.NewValidationError("invoice number is required to validate")
	}
	if i.InvoiceNumber != "" {
		return shared.NewInvalidStateTransition("invoice", i.ID, i.Status.String(), string(OpValidate))
	}
	i.InvoiceNumber = number
	i.Status = to
	i.Touch(now)
	i.AddDomainEvent(NewInvoiceValidatedEvent(i, now))
	return nil
}

// Send marks a validated invoice as sent to the client
func (i *Invoice) Send(now time.Time) error {
	to, err := i.transition(OpSend)
	if err != nil {
		return err
	}
	i.Status = to
	i.SentAt = &now
	i.Touch(now)
	i.AddDomainEvent(NewInvoiceSentEvent(i, now))
	return nil
}

// Cancel moves a non-terminal invoice to CANCELLED; an assigned number is kept
func (i *Invoice) Cancel(now time.Time) error {
	to, err := i.transition(OpCancel)
	if err != nil {
		return err
	}
	from := i.Status
	i.Status = to
	i.CancelledAt = &now
	i.Touch(now)
	i.AddDomainEvent(NewInvoiceCancelledEvent(i, from, now))
	return nil
}

// MarkPaid records an external payment confirmation
func (i *Invoice) MarkPaid(now time.Time) error {
	to, err := i.transition(OpMarkPaid)
	if err != nil {
		return err
	}
	i.Status = to
	i.PaidAt = &now
	i.Touch(now)
	i.AddDomainEvent(NewInvoicePaidEvent(i, now))
	return nil
}

// PrepareDelete checks that the invoice may be removed and records the event
func (i *Invoice) PrepareDelete(now time.Time) error {
	if _, err := i.transition(OpDelete); err != nil {
		return err
	}
	i.AddDomainEvent(NewInvoiceDeletedEvent(i, now))
	return nil
}

// CheckSettlement accepts paid only when it covers the total exactly, in
// currency. Partial payments and foreign currencies are rejected.
func (i *Invoice) CheckSettlement(paid valueobject.Money, currency valueobject.Currency) error {
	due, err := valueobject.NewMoney(i.Total, currency)
	if err != nil {
		return shared.NewValidationError("invoice currency: %s", err.Error())
	}
	if paid.Currency() != due.Currency() {
		return shared.NewValidationError("payment currency %s does not match invoice currency %s", paid.Currency(), due.Currency())
	}
	if !paid.Round().Equals(due.Round()) {
		return shared.NewValidationError("payment amount %s must equal the invoice total %s", paid.Round(), due.Round())
	}
	return nil
}

// HasNumber reports whether a number has been assigned
func (i *Invoice) HasNumber() bool {
	return i.InvoiceNumber != ""
}

// IsOverdue reports whether the invoice is awaiting payment past its due date
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.DueDate == nil {
		return false
	}
	if i.Status != StatusValidated && i.Status != StatusSent {
		return false
	}
	return shared.DateOf(now).After(*i.DueDate)
}
