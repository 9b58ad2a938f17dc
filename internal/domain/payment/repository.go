package payment

import (
	"context"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentRepository persists Payment aggregates
type PaymentRepository interface {
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*Payment, error)
	FindByReference(ctx context.Context, reference string) (*Payment, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Payment, int64, error)
	FindByInvoice(ctx context.Context, invoiceID, ownerID uuid.UUID) ([]Payment, error)

	// CountAll counts every payment regardless of owner; it feeds PAY numbering
	CountAll(ctx context.Context) (int64, error)

	// Save inserts or updates the payment. Updates are rejected with
	// shared.ErrConcurrencyConflict when the stored version moved on.
	Save(ctx context.Context, payment *Payment) error

	// WithinLock loads the payment under a row lock and runs fn in the same
	// transaction
	WithinLock(ctx context.Context, id, ownerID uuid.UUID, fn func(ctx context.Context, tx PaymentRepository, payment *Payment) error) error
}
