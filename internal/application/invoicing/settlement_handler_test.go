package invoicing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/payment"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSettler struct {
	mock.Mock
}

func (m *MockSettler) Settle(ctx context.Context, id, ownerID uuid.UUID, paid valueobject.Money) (*InvoiceResponse, error) {
	args := m.Called(ctx, id, ownerID, paid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InvoiceResponse), args.Error(1)
}

// memoryStore is a minimal IdempotencyStore for handler tests
type memoryStore struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{keys: make(map[string]bool)}
}

func (s *memoryStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys[key] {
		return false, nil
	}
	s.keys[key] = true
	return true, nil
}

func (s *memoryStore) Forget(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

func (s *memoryStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[key], nil
}

func (s *memoryStore) Close() error { return nil }

func completedEvent(invoiceID uuid.UUID) *payment.PaymentCompletedEvent {
	paymentID := uuid.New()
	return &payment.PaymentCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			payment.EventTypePaymentCompleted,
			payment.AggregateTypePayment,
			paymentID,
			testOwnerID,
			testNow,
		),
		PaymentID: paymentID,
		Reference: "PAY-2024-00001",
		InvoiceID: invoiceID,
		Amount:    decimal.RequireFromString("30.3450"),
		Currency:  "TND",
	}
}

var paidInFull = valueobject.MustNewMoney(decimal.RequireFromString("30.3450"), valueobject.TND)

func TestSettlementHandler_EventTypes(t *testing.T) {
	h := NewSettlementHandler(nil, nil, shared.DefaultIdempotencyConfig(), zap.NewNop())
	assert.Equal(t, []string{payment.EventTypePaymentCompleted}, h.EventTypes())
}

func TestSettlementHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("marks invoice paid once per event", func(t *testing.T) {
		settler := new(MockSettler)
		store := newMemoryStore()
		h := NewSettlementHandler(settler, store, shared.DefaultIdempotencyConfig(), zap.NewNop())

		invoiceID := uuid.New()
		event := completedEvent(invoiceID)
		settler.On("Settle", mock.Anything, invoiceID, testOwnerID, paidInFull).
			Return(&InvoiceResponse{ID: invoiceID, Status: "PAID"}, nil).Once()

		require.NoError(t, h.Handle(ctx, event))
		require.NoError(t, h.Handle(ctx, event))
		settler.AssertNumberOfCalls(t, "Settle", 1)
	})

	t.Run("already paid invoice is success", func(t *testing.T) {
		settler := new(MockSettler)
		h := NewSettlementHandler(settler, newMemoryStore(), shared.DefaultIdempotencyConfig(), zap.NewNop())

		invoiceID := uuid.New()
		settler.On("Settle", mock.Anything, invoiceID, testOwnerID, paidInFull).
			Return(nil, shared.NewInvalidStateTransition("invoice", invoiceID, invoicing.StatusPaid.String(), "mark_paid"))

		assert.NoError(t, h.Handle(ctx, completedEvent(invoiceID)))
	})

	t.Run("failure releases the key for redelivery", func(t *testing.T) {
		settler := new(MockSettler)
		store := newMemoryStore()
		h := NewSettlementHandler(settler, store, shared.DefaultIdempotencyConfig(), zap.NewNop())

		invoiceID := uuid.New()
		event := completedEvent(invoiceID)
		settler.On("Settle", mock.Anything, invoiceID, testOwnerID, paidInFull).Return(nil, errors.New("db down")).Once()
		settler.On("Settle", mock.Anything, invoiceID, testOwnerID, paidInFull).Return(&InvoiceResponse{ID: invoiceID}, nil).Once()

		assert.EqualError(t, h.Handle(ctx, event), "db down")
		processed, _ := store.IsProcessed(ctx, "invoice-settlement:"+event.EventID().String())
		assert.False(t, processed)

		assert.NoError(t, h.Handle(ctx, event))
	})

	t.Run("cancelled invoice is an error", func(t *testing.T) {
		settler := new(MockSettler)
		h := NewSettlementHandler(settler, nil, shared.IdempotencyConfig{}, zap.NewNop())

		invoiceID := uuid.New()
		settler.On("Settle", mock.Anything, invoiceID, testOwnerID, paidInFull).
			Return(nil, shared.NewInvalidStateTransition("invoice", invoiceID, invoicing.StatusCancelled.String(), "mark_paid"))

		err := h.Handle(ctx, completedEvent(invoiceID))
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("malformed currency is rejected before settling", func(t *testing.T) {
		settler := new(MockSettler)
		h := NewSettlementHandler(settler, newMemoryStore(), shared.DefaultIdempotencyConfig(), zap.NewNop())

		event := completedEvent(uuid.New())
		event.Currency = "eur"

		err := h.Handle(ctx, event)
		assert.True(t, errors.Is(err, shared.ErrValidation))
		settler.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wrong event type", func(t *testing.T) {
		h := NewSettlementHandler(new(MockSettler), nil, shared.IdempotencyConfig{}, zap.NewNop())
		inv := draftInvoice(t)
		err := h.Handle(ctx, invoicing.NewInvoiceCreatedEvent(inv, testNow))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected event type")
	})
}

func TestSettlementHandler_PartialOrForeignPaymentLeavesInvoiceUnpaid(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency valueobject.Currency
	}{
		{"one cent", "0.01", valueobject.TND},
		{"foreign currency", "30.3450", valueobject.EUR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockInvoiceRepository)
			svc := newTestService(repo)
			inv := validatedInvoice(t)
			repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)

			p, err := payment.NewPayment(testOwnerID, inv.ID, "PAY-2024-00001",
				decimal.RequireFromString(tt.amount), tt.currency, payment.MethodCard, "", testNow)
			require.NoError(t, err)
			require.NoError(t, p.Confirm("", testNow))

			var completed *payment.PaymentCompletedEvent
			for _, e := range p.GetDomainEvents() {
				if c, ok := e.(*payment.PaymentCompletedEvent); ok {
					completed = c
				}
			}
			require.NotNil(t, completed)

			h := NewSettlementHandler(svc, newMemoryStore(), shared.DefaultIdempotencyConfig(), zap.NewNop())
			err = h.Handle(context.Background(), completed)

			assert.True(t, errors.Is(err, shared.ErrValidation), "got %v", err)
			assert.Equal(t, invoicing.StatusValidated, inv.Status)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}
