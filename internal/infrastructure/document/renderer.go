// Package document renders invoice documents and archives them in object storage.
package document

import (
	"context"
	"fmt"

	"github.com/billing/backend/internal/domain/invoicing"
)

// ContentTypePDF is the media type of every rendered invoice document
const ContentTypePDF = "application/pdf"

// Renderer turns an invoice into a printable document
type Renderer interface {
	Render(ctx context.Context, inv *invoicing.Invoice) ([]byte, string, error)
}

// PlaceholderRenderer returns a short text body labelled as a PDF.
// It stands in for a real renderer in development and tests.
type PlaceholderRenderer struct{}

// NewPlaceholderRenderer creates a PlaceholderRenderer
func NewPlaceholderRenderer() *PlaceholderRenderer {
	return &PlaceholderRenderer{}
}

// Render returns "PDF placeholder for invoice <number>", falling back to the ID for drafts
func (r *PlaceholderRenderer) Render(_ context.Context, inv *invoicing.Invoice) ([]byte, string, error) {
	if inv == nil {
		return nil, "", fmt.Errorf("invoice is required")
	}
	label := inv.InvoiceNumber
	if label == "" {
		label = inv.ID.String()
	}
	return []byte("PDF placeholder for invoice " + label), ContentTypePDF, nil
}

var _ Renderer = (*PlaceholderRenderer)(nil)
