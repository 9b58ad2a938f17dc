package payment

import (
	"context"
	"strings"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/payment"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceLookup reads invoices of the invoicing context
type InvoiceLookup interface {
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*invoicing.Invoice, error)
}

// OperationRecorder observes the outcome of payment operations
type OperationRecorder interface {
	RecordOperation(ctx context.Context, entity, operation string, err error)
}

// Service handles payment business operations
type Service struct {
	repo           payment.PaymentRepository
	invoices       InvoiceLookup
	clock          shared.Clock
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
	recorder       OperationRecorder
	currency       valueobject.Currency
}

// NewService creates a new payment Service
func NewService(repo payment.PaymentRepository, invoices InvoiceLookup, clock shared.Clock, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		invoices: invoices,
		clock:    clock,
		logger:   logger,
		currency: valueobject.DefaultCurrency,
	}
}

// SetCurrency sets the currency invoices are settled in
func (s *Service) SetCurrency(currency valueobject.Currency) {
	s.currency = currency
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetRecorder sets the operation recorder
func (s *Service) SetRecorder(recorder OperationRecorder) {
	s.recorder = recorder
}

// Create registers a PENDING payment for an invoice awaiting payment
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req CreatePaymentRequest) (*PaymentResponse, error) {
	p, err := s.create(ctx, ownerID, req)
	s.record(ctx, "create", err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment created",
		zap.String("payment_id", p.ID.String()),
		zap.String("reference", p.Reference),
		zap.String("invoice_id", p.InvoiceID.String()),
	)
	s.publish(ctx, p)

	response := ToPaymentResponse(p)
	return &response, nil
}

func (s *Service) create(ctx context.Context, ownerID uuid.UUID, req CreatePaymentRequest) (*payment.Payment, error) {
	inv, err := s.invoices.FindByIDAndOwner(ctx, req.InvoiceID, ownerID)
	if err != nil {
		return nil, err
	}
	if inv.Status != invoicing.StatusValidated && inv.Status != invoicing.StatusSent {
		return nil, shared.NewInvalidStateTransition("invoice", inv.ID, inv.Status.String(), "pay")
	}

	offered, err := s.offeredAmount(inv, req)
	if err != nil {
		return nil, err
	}
	if err := inv.CheckSettlement(offered, s.currency); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	reference, err := shared.NewNumberer(shared.NumberKindPayment, s.repo).Next(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	p, err := payment.NewPayment(
		ownerID,
		inv.ID,
		reference,
		offered.Amount(),
		offered.Currency(),
		payment.PaymentMethod(req.Method),
		req.ExternalTransactionID,
		now,
	)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// offeredAmount reads the requested amount and currency. Missing values
// default to the invoice total and the service currency.
func (s *Service) offeredAmount(inv *invoicing.Invoice, req CreatePaymentRequest) (valueobject.Money, error) {
	amount := inv.Total
	if req.Amount != nil {
		amount = valueobject.RoundMoney(*req.Amount)
	}
	if amount.LessThan(payment.MinAmount) {
		return valueobject.Money{}, shared.NewValidationError("payment amount must be at least %s", payment.MinAmount.StringFixed(2))
	}
	currency := s.currency
	if req.Currency != "" {
		currency = valueobject.Currency(strings.ToUpper(req.Currency))
	}
	offered, err := valueobject.NewMoney(amount, currency)
	if err != nil {
		return valueobject.Money{}, shared.NewValidationError("%s", err.Error())
	}
	return offered, nil
}

// GetByID retrieves a payment of ownerID
func (s *Service) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*PaymentResponse, error) {
	p, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(p)
	return &response, nil
}

// List returns one page of the owner's payments and the total count
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListPaymentsFilter) ([]PaymentResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		status := payment.PaymentStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewValidationError("unknown payment status %q", filter.Status)
		}
		domainFilter.Filters["status"] = status.String()
	}

	payments, total, err := s.repo.FindByOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toPaymentResponses(payments), total, nil
}

// ListByInvoice returns every payment registered against an invoice
func (s *Service) ListByInvoice(ctx context.Context, invoiceID, ownerID uuid.UUID) ([]PaymentResponse, error) {
	if _, err := s.invoices.FindByIDAndOwner(ctx, invoiceID, ownerID); err != nil {
		return nil, err
	}
	payments, err := s.repo.FindByInvoice(ctx, invoiceID, ownerID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(payments), nil
}

// Confirm completes a pending payment. The resulting PaymentCompleted event
// settles the invoice.
func (s *Service) Confirm(ctx context.Context, id, ownerID uuid.UUID, req ConfirmPaymentRequest) (*PaymentResponse, error) {
	return s.mutate(ctx, id, ownerID, "confirm", func(p *payment.Payment) error {
		return p.Confirm(req.ExternalTransactionID, s.clock.Now())
	})
}

// Fail marks a pending payment as failed
func (s *Service) Fail(ctx context.Context, id, ownerID uuid.UUID, req FailPaymentRequest) (*PaymentResponse, error) {
	return s.mutate(ctx, id, ownerID, "fail", func(p *payment.Payment) error {
		return p.Fail(req.Reason, s.clock.Now())
	})
}

// Refund reverses a completed payment. The invoice status is left as is.
func (s *Service) Refund(ctx context.Context, id, ownerID uuid.UUID) (*PaymentResponse, error) {
	return s.mutate(ctx, id, ownerID, "refund", func(p *payment.Payment) error {
		return p.Refund(s.clock.Now())
	})
}

func (s *Service) mutate(ctx context.Context, id, ownerID uuid.UUID, op string, fn func(*payment.Payment) error) (*PaymentResponse, error) {
	var result *payment.Payment
	err := s.repo.WithinLock(ctx, id, ownerID, func(ctx context.Context, tx payment.PaymentRepository, p *payment.Payment) error {
		if err := fn(p); err != nil {
			return err
		}
		if err := tx.Save(ctx, p); err != nil {
			return err
		}
		result = p
		return nil
	})
	s.record(ctx, op, err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment "+op,
		zap.String("payment_id", result.ID.String()),
		zap.String("status", result.Status.String()),
	)
	s.publish(ctx, result)

	response := ToPaymentResponse(result)
	return &response, nil
}

func (s *Service) publish(ctx context.Context, p *payment.Payment) {
	events := p.GetDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish payment events",
				zap.String("payment_id", p.ID.String()),
				zap.Error(err),
			)
		}
	}
	p.ClearDomainEvents()
}

func (s *Service) record(ctx context.Context, operation string, err error) {
	if s.recorder != nil {
		s.recorder.RecordOperation(ctx, "payment", operation, err)
	}
}
