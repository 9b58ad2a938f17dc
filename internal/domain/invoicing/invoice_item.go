package invoicing

import (
	"strings"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the VAT percentage applied when none is supplied
var DefaultTaxRate = decimal.NewFromInt(19)

// MaxTaxRate is the highest accepted tax percentage
var MaxTaxRate = decimal.NewFromInt(100)

// MaxDescriptionLength bounds an item description
const MaxDescriptionLength = 500

// normalizeTaxRate rounds rate to the stored scale and checks 0 <= rate <= MaxTaxRate
func normalizeTaxRate(rate decimal.Decimal) (decimal.Decimal, error) {
	rate = rate.Round(valueobject.MoneyScale)
	if rate.IsNegative() {
		return decimal.Zero, shared.NewValidationError("tax rate cannot be negative")
	}
	if rate.GreaterThan(MaxTaxRate) {
		return decimal.Zero, shared.NewValidationError("tax rate cannot exceed %s", MaxTaxRate)
	}
	return rate, nil
}

// ItemSpec is caller input for one line item
type ItemSpec struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     *decimal.Decimal
}

// InvoiceItem is a line of an invoice. Items are owned by value by their
// Invoice and ordered by SortOrder.
type InvoiceItem struct {
	ID          uuid.UUID
	Description string
	Quantity    decimal.Decimal // three decimal places
	UnitPrice   decimal.Decimal // four decimal places
	TaxRate     decimal.Decimal // stored per line, not used in totals
	LineTotal   decimal.Decimal // ExtendedAmount at the time of the last computation
	SortOrder   int
}

// NewInvoiceItem validates spec and builds an item at position sortOrder
func NewInvoiceItem(spec ItemSpec, sortOrder int) (InvoiceItem, error) {
	description := strings.TrimSpace(spec.Description)
	if description == "" {
		return InvoiceItem{}, shared.NewValidationError("item %d: description is required", sortOrder+1)
	}
	if len(description) > MaxDescriptionLength {
		return InvoiceItem{}, shared.NewValidationError("item %d: description cannot exceed %d characters", sortOrder+1, MaxDescriptionLength)
	}

	quantity := valueobject.RoundQuantity(spec.Quantity)
	if !quantity.IsPositive() {
		return InvoiceItem{}, shared.NewValidationError("item %d: quantity must be positive", sortOrder+1)
	}
	unitPrice := valueobject.RoundMoney(spec.UnitPrice)
	if !unitPrice.IsPositive() {
		return InvoiceItem{}, shared.NewValidationError("item %d: unit price must be positive", sortOrder+1)
	}

	taxRate := DefaultTaxRate
	if spec.TaxRate != nil {
		rate, err := normalizeTaxRate(*spec.TaxRate)
		if err != nil {
			return InvoiceItem{}, shared.NewValidationError("item %d: %s", sortOrder+1, err.Error())
		}
		taxRate = rate
	}

	item := InvoiceItem{
		ID:          uuid.New(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TaxRate:     taxRate,
		SortOrder:   sortOrder,
	}
	item.LineTotal = item.ExtendedAmount()
	return item, nil
}

// ExtendedAmount returns unit price × quantity rounded half-up to 4 places
func (i InvoiceItem) ExtendedAmount() decimal.Decimal {
	return valueobject.MultiplyByQuantity(i.UnitPrice, i.Quantity)
}

// BuildItems validates specs in order. It fails on an empty list or on the
// first invalid item and returns nothing in that case.
func BuildItems(specs []ItemSpec) ([]InvoiceItem, error) {
	if len(specs) == 0 {
		return nil, shared.NewValidationError("an invoice needs at least one item")
	}
	items := make([]InvoiceItem, 0, len(specs))
	for idx, spec := range specs {
		item, err := NewInvoiceItem(spec, idx)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
