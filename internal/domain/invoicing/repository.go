package invoicing

import (
	"context"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceFilter narrows owner listings
type InvoiceFilter struct {
	shared.Filter
	Status *InvoiceStatus
}

// InvoiceRepository persists Invoice aggregates together with their items.
// Lookups return shared.ErrNotFound when nothing matches.
type InvoiceRepository interface {
	// FindByIDAndOwner returns the invoice only when it belongs to ownerID
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*Invoice, error)

	// FindByInvoiceNumber looks an invoice up by its assigned number, any owner
	FindByInvoiceNumber(ctx context.Context, number string) (*Invoice, error)

	// FindByOwner lists an owner's invoices with the total match count
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter InvoiceFilter) ([]Invoice, int64, error)

	// CountAll counts every persisted invoice regardless of owner or status
	CountAll(ctx context.Context) (int64, error)

	// Save inserts or replaces the invoice and its full item set atomically
	Save(ctx context.Context, invoice *Invoice) error

	// Delete removes the invoice and its items
	Delete(ctx context.Context, invoice *Invoice) error

	// WithinLock loads the invoice for ownerID under an exclusive row lock and
	// runs fn inside the same transaction. fn receives a repository bound to
	// that transaction. The lock is released on every exit path; an error from
	// fn rolls everything back.
	WithinLock(ctx context.Context, id, ownerID uuid.UUID, fn func(ctx context.Context, tx InvoiceRepository, invoice *Invoice) error) error
}
