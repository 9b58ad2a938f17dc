package invoicing

import (
	"context"
	"errors"
	"fmt"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DocumentRenderer turns an invoice into a printable document and returns
// the bytes with their content type
type DocumentRenderer interface {
	Render(ctx context.Context, inv *invoicing.Invoice) ([]byte, string, error)
}

// DocumentArchive keeps a copy of rendered documents
type DocumentArchive interface {
	Store(ctx context.Context, key string, content []byte, contentType string) error
}

// OperationRecorder observes the outcome of lifecycle operations
type OperationRecorder interface {
	RecordOperation(ctx context.Context, entity, operation string, err error)
}

// Service runs the invoice lifecycle. Every mutating operation is a single
// repository transaction holding a row lock on the invoice; events are
// published after commit.
type Service struct {
	repo           invoicing.InvoiceRepository
	clock          shared.Clock
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
	renderer       DocumentRenderer
	archive        DocumentArchive
	recorder       OperationRecorder
	defaultTaxRate decimal.Decimal
	currency       valueobject.Currency
}

// Option configures a Service
type Option func(*Service)

// WithEventPublisher sets the publisher used after each committed change
func WithEventPublisher(publisher shared.EventPublisher) Option {
	return func(s *Service) {
		s.eventPublisher = publisher
	}
}

// WithRenderer sets the document renderer
func WithRenderer(renderer DocumentRenderer) Option {
	return func(s *Service) {
		s.renderer = renderer
	}
}

// WithArchive stores every rendered document
func WithArchive(archive DocumentArchive) Option {
	return func(s *Service) {
		s.archive = archive
	}
}

// WithRecorder sets the operation recorder (metrics)
func WithRecorder(recorder OperationRecorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

// WithDefaultTaxRate overrides the tax rate applied when a request has none
func WithDefaultTaxRate(rate decimal.Decimal) Option {
	return func(s *Service) {
		s.defaultTaxRate = rate
	}
}

// WithCurrency sets the currency invoices are issued and settled in
func WithCurrency(currency valueobject.Currency) Option {
	return func(s *Service) {
		s.currency = currency
	}
}

// NewService creates a new invoice lifecycle Service
func NewService(repo invoicing.InvoiceRepository, clock shared.Clock, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:           repo,
		clock:          clock,
		logger:         logger,
		defaultTaxRate: invoicing.DefaultTaxRate,
		currency:       valueobject.DefaultCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a DRAFT invoice owned by ownerID
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	now := s.clock.Now()

	draft, err := req.toDraft(s.defaultTaxRate)
	if err != nil {
		s.record(ctx, "create", err)
		return nil, err
	}
	inv, err := invoicing.NewInvoice(ownerID, draft, now)
	if err != nil {
		s.record(ctx, "create", err)
		return nil, err
	}
	if err := s.repo.Save(ctx, inv); err != nil {
		s.record(ctx, "create", err)
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("total", inv.Total.StringFixed(4)),
	)
	s.publish(ctx, inv)
	s.record(ctx, "create", nil)

	response := ToInvoiceResponse(inv, now)
	return &response, nil
}

// GetByID retrieves an invoice of ownerID
func (s *Service) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv, s.clock.Now())
	return &response, nil
}

// GetByNumber retrieves an invoice by number. Invoices of other owners are
// reported as not found.
func (s *Service) GetByNumber(ctx context.Context, ownerID uuid.UUID, number string) (*InvoiceResponse, error) {
	if _, _, _, err := shared.ParseNumber(number); err != nil {
		return nil, err
	}
	inv, err := s.repo.FindByInvoiceNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if !inv.IsOwnedBy(ownerID) {
		return nil, shared.NewNotFoundError("invoice", number)
	}
	response := ToInvoiceResponse(inv, s.clock.Now())
	return &response, nil
}

// List returns one page of the owner's invoices and the total count
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListInvoicesFilter) ([]InvoiceListItemResponse, int64, error) {
	domainFilter := invoicing.InvoiceFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		status := invoicing.InvoiceStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewValidationError("unknown invoice status %q", filter.Status)
		}
		domainFilter.Status = &status
	}

	invoices, total, err := s.repo.FindByOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		items[i] = ToInvoiceListItemResponse(&invoices[i])
	}
	return items, total, nil
}

// Update replaces client fields, dates, tax rate and items of a DRAFT invoice
func (s *Service) Update(ctx context.Context, id, ownerID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	draft, err := CreateInvoiceRequest(req).toDraft(s.defaultTaxRate)
	if err != nil {
		s.record(ctx, string(invoicing.OpUpdate), err)
		return nil, err
	}
	return s.mutate(ctx, id, ownerID, invoicing.OpUpdate, func(_ context.Context, _ invoicing.InvoiceRepository, inv *invoicing.Invoice) error {
		return inv.UpdateDraft(draft, s.clock.Now())
	})
}

// Validate assigns the next FAC number and moves the invoice to VALIDATED.
// The number is derived from the invoice count inside the same transaction.
func (s *Service) Validate(ctx context.Context, id, ownerID uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, ownerID, invoicing.OpValidate, func(ctx context.Context, tx invoicing.InvoiceRepository, inv *invoicing.Invoice) error {
		if !inv.Status.Allows(invoicing.OpValidate) {
			return shared.NewInvalidStateTransition("invoice", inv.ID, inv.Status.String(), string(invoicing.OpValidate))
		}
		now := s.clock.Now()
		number, err := shared.NewNumberer(shared.NumberKindInvoice, tx).Next(ctx, now.Year())
		if err != nil {
			return err
		}
		return inv.Validate(number, now)
	})
}

// Send marks a validated invoice as sent. Sending again refreshes SentAt.
func (s *Service) Send(ctx context.Context, id, ownerID uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, ownerID, invoicing.OpSend, func(_ context.Context, _ invoicing.InvoiceRepository, inv *invoicing.Invoice) error {
		return inv.Send(s.clock.Now())
	})
}

// Cancel moves a non-terminal invoice to CANCELLED
func (s *Service) Cancel(ctx context.Context, id, ownerID uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, ownerID, invoicing.OpCancel, func(_ context.Context, _ invoicing.InvoiceRepository, inv *invoicing.Invoice) error {
		return inv.Cancel(s.clock.Now())
	})
}

// MarkPaid records an external payment confirmation
func (s *Service) MarkPaid(ctx context.Context, id, ownerID uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, ownerID, invoicing.OpMarkPaid, func(_ context.Context, _ invoicing.InvoiceRepository, inv *invoicing.Invoice) error {
		return inv.MarkPaid(s.clock.Now())
	})
}

// Settle marks the invoice paid for a completed payment. The payment must
// match the invoice total and currency.
func (s *Service) Settle(ctx context.Context, id, ownerID uuid.UUID, paid valueobject.Money) (*InvoiceResponse, error) {
	return s.mutate(ctx, id, ownerID, invoicing.OpMarkPaid, func(_ context.Context, _ invoicing.InvoiceRepository, inv *invoicing.Invoice) error {
		if err := inv.CheckSettlement(paid, s.currency); err != nil {
			return err
		}
		return inv.MarkPaid(s.clock.Now())
	})
}

// Delete removes a DRAFT invoice and its items
func (s *Service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	var deleted *invoicing.Invoice
	err := s.repo.WithinLock(ctx, id, ownerID, func(ctx context.Context, tx invoicing.InvoiceRepository, inv *invoicing.Invoice) error {
		if err := inv.PrepareDelete(s.clock.Now()); err != nil {
			return err
		}
		if err := tx.Delete(ctx, inv); err != nil {
			return err
		}
		deleted = inv
		return nil
	})
	s.record(ctx, string(invoicing.OpDelete), err)
	if err != nil {
		return err
	}

	s.logger.Info("invoice deleted", zap.String("invoice_id", id.String()))
	s.publish(ctx, deleted)
	return nil
}

// RenderDocument renders the invoice document and archives a copy when an
// archive is configured. Archive failures are logged, not returned.
func (s *Service) RenderDocument(ctx context.Context, id, ownerID uuid.UUID) (*DocumentResponse, error) {
	if s.renderer == nil {
		return nil, errors.New("document rendering is not configured")
	}
	inv, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	content, contentType, err := s.renderer.Render(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.ID, err)
	}

	name := DocumentName(inv)
	if s.archive != nil {
		key := fmt.Sprintf("invoices/%s/%s", inv.OwnerID, name)
		if err := s.archive.Store(ctx, key, content, contentType); err != nil {
			s.logger.Warn("failed to archive invoice document",
				zap.String("invoice_id", inv.ID.String()),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	return &DocumentResponse{
		Filename:    name,
		ContentType: contentType,
		Content:     content,
	}, nil
}

// DocumentName is the file name of an invoice document: the invoice number,
// or the ID for drafts
func DocumentName(inv *invoicing.Invoice) string {
	if inv.HasNumber() {
		return inv.InvoiceNumber + ".pdf"
	}
	return inv.ID.String() + ".pdf"
}

type mutation func(ctx context.Context, tx invoicing.InvoiceRepository, inv *invoicing.Invoice) error

// mutate loads the invoice under lock, applies fn and saves in the same
// transaction, then publishes the collected events
func (s *Service) mutate(ctx context.Context, id, ownerID uuid.UUID, op invoicing.Operation, fn mutation) (*InvoiceResponse, error) {
	var result *invoicing.Invoice
	err := s.repo.WithinLock(ctx, id, ownerID, func(ctx context.Context, tx invoicing.InvoiceRepository, inv *invoicing.Invoice) error {
		if err := fn(ctx, tx, inv); err != nil {
			return err
		}
		if err := tx.Save(ctx, inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	s.record(ctx, string(op), err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice "+string(op),
		zap.String("invoice_id", result.ID.String()),
		zap.String("status", result.Status.String()),
		zap.String("invoice_number", result.InvoiceNumber),
	)
	s.publish(ctx, result)

	response := ToInvoiceResponse(result, s.clock.Now())
	return &response, nil
}

func (s *Service) publish(ctx context.Context, inv *invoicing.Invoice) {
	events := inv.GetDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish invoice events",
				zap.String("invoice_id", inv.ID.String()),
				zap.Error(err),
			)
		}
	}
	inv.ClearDomainEvents()
}

func (s *Service) record(ctx context.Context, operation string, err error) {
	if s.recorder != nil {
		s.recorder.RecordOperation(ctx, "invoice", operation, err)
	}
}
