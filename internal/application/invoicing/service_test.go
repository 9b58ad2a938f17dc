package invoicing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
// WithinLock hands the mock itself to fn as the transactional repository.
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByInvoiceNumber(ctx context.Context, number string) (*invoicing.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter invoicing.InvoiceFilter) ([]invoicing.Invoice, int64, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]invoicing.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, inv *invoicing.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, inv *invoicing.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) WithinLock(ctx context.Context, id, ownerID uuid.UUID, fn func(ctx context.Context, tx invoicing.InvoiceRepository, inv *invoicing.Invoice) error) error {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return args.Error(1)
	}
	return fn(ctx, m, args.Get(0).(*invoicing.Invoice))
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockRenderer is a mock DocumentRenderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, inv *invoicing.Invoice) ([]byte, string, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

// MockArchive is a mock DocumentArchive
type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Store(ctx context.Context, key string, content []byte, contentType string) error {
	args := m.Called(ctx, key, content, contentType)
	return args.Error(0)
}

var (
	testOwnerID = uuid.New()
	testNow     = time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
)

func newTestService(repo *MockInvoiceRepository, opts ...Option) *Service {
	return NewService(repo, shared.FixedClock{At: testNow}, zap.NewNop(), opts...)
}

func createRequest() CreateInvoiceRequest {
	return CreateInvoiceRequest{
		ClientName:  "Acme SARL",
		ClientEmail: "billing@acme.test",
		Items: []InvoiceItemInput{
			{Description: "Widget", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("10.00")},
			{Description: "Shipping", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("5.50")},
		},
	}
}

func draftInvoice(t *testing.T) *invoicing.Invoice {
	t.Helper()
	req := createRequest()
	draft, err := req.toDraft(invoicing.DefaultTaxRate)
	require.NoError(t, err)
	inv, err := invoicing.NewInvoice(testOwnerID, draft, testNow.Add(-time.Hour))
	require.NoError(t, err)
	inv.ClearDomainEvents()
	return inv
}

func validatedInvoice(t *testing.T) *invoicing.Invoice {
	t.Helper()
	inv := draftInvoice(t)
	require.NoError(t, inv.Validate("FAC-2024-00001", testNow))
	inv.ClearDomainEvents()
	return inv
}

func TestService_Create(t *testing.T) {
	t.Run("creates draft with totals", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		publisher := new(MockEventPublisher)
		svc := newTestService(repo, WithEventPublisher(publisher))

		repo.On("Save", mock.Anything, mock.AnythingOfType("*invoicing.Invoice")).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Create(context.Background(), testOwnerID, createRequest())
		require.NoError(t, err)

		assert.Equal(t, "DRAFT", resp.Status)
		assert.Empty(t, resp.InvoiceNumber)
		assert.Equal(t, "25.5000", resp.Subtotal)
		assert.Equal(t, "19.00", resp.TaxRate)
		assert.Equal(t, "4.8450", resp.TaxAmount)
		assert.Equal(t, "30.3450", resp.Total)
		assert.Equal(t, "2024-06-10", resp.IssueDate)
		assert.Equal(t, testOwnerID, resp.OwnerID)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "20.0000", resp.Items[0].LineTotal)
		assert.Equal(t, "Shipping", resp.Items[1].Description)

		repo.AssertExpectations(t)
		publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == invoicing.EventTypeInvoiceCreated
		}))
	})

	t.Run("applies configured default tax rate", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo, WithDefaultTaxRate(decimal.NewFromInt(7)))
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Create(context.Background(), testOwnerID, createRequest())
		require.NoError(t, err)
		assert.Equal(t, "1.7850", resp.TaxAmount)
	})

	t.Run("rejects empty items without touching storage", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		req := createRequest()
		req.Items = nil
		_, err := svc.Create(context.Background(), testOwnerID, req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		req := createRequest()
		req.DueDate = "10/06/2024"
		_, err := svc.Create(context.Background(), testOwnerID, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "due_date")
	})

	t.Run("propagates storage failure", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)
		repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

		_, err := svc.Create(context.Background(), testOwnerID, createRequest())
		assert.EqualError(t, err, "db down")
	})
}

func TestService_Validate(t *testing.T) {
	t.Run("numbers from the live count", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		publisher := new(MockEventPublisher)
		svc := NewService(repo, shared.FixedClock{At: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}, zap.NewNop(), WithEventPublisher(publisher))

		inv := draftInvoice(t)
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)
		repo.On("CountAll", mock.Anything).Return(int64(6), nil)
		repo.On("Save", mock.Anything, inv).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Validate(context.Background(), inv.ID, testOwnerID)
		require.NoError(t, err)
		assert.Equal(t, "VALIDATED", resp.Status)
		assert.Equal(t, "FAC-2024-00007", resp.InvoiceNumber)
		assert.Empty(t, inv.GetDomainEvents(), "events are cleared after publishing")
		repo.AssertExpectations(t)
	})

	t.Run("validated invoice cannot be validated again", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		inv := validatedInvoice(t)
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)

		_, err := svc.Validate(context.Background(), inv.ID, testOwnerID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		assert.Equal(t, "FAC-2024-00001", inv.InvoiceNumber)
		repo.AssertNotCalled(t, "CountAll", mock.Anything)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate number surfaces unchanged", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		inv := draftInvoice(t)
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)
		repo.On("CountAll", mock.Anything).Return(int64(0), nil)
		repo.On("Save", mock.Anything, inv).Return(shared.NewDuplicateNumberError("invoice", "FAC-2024-00001")).Once()

		_, err := svc.Validate(context.Background(), inv.ID, testOwnerID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrDuplicateNumber))
		repo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("count failure aborts", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		inv := draftInvoice(t)
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)
		repo.On("CountAll", mock.Anything).Return(int64(0), errors.New("timeout"))

		_, err := svc.Validate(context.Background(), inv.ID, testOwnerID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "count FAC records")
	})

	t.Run("other owner sees not found", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		id, stranger := uuid.New(), uuid.New()
		repo.On("WithinLock", mock.Anything, id, stranger).Return(nil, shared.NewNotFoundError("invoice", id))

		_, err := svc.Validate(context.Background(), id, stranger)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestService_Update(t *testing.T) {
	t.Run("replaces items of a draft", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		inv := draftInvoice(t)
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)
		repo.On("Save", mock.Anything, inv).Return(nil)

		req := UpdateInvoiceRequest(createRequest())
		req.Items = []InvoiceItemInput{{Description: "Audit", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)}}

		resp, err := svc.Update(context.Background(), inv.ID, testOwnerID, req)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "119.0000", resp.Total)
		assert.Equal(t, testNow, resp.UpdatedAt)
	})

	t.Run("sent invoice is immutable", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		inv := validatedInvoice(t)
		require.NoError(t, inv.Send(testNow))
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)

		_, err := svc.Update(context.Background(), inv.ID, testOwnerID, UpdateInvoiceRequest(createRequest()))
		require.Error(t, err)
		var transition *shared.InvalidStateTransition
		require.True(t, errors.As(err, &transition))
		assert.Equal(t, "SENT", transition.Current)
		assert.Equal(t, "update", transition.Operation)
	})
}

func TestService_SendCancelMarkPaid(t *testing.T) {
	t.Run("send requires validation", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		inv := draftInvoice(t)
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)

		_, err := svc.Send(context.Background(), inv.ID, testOwnerID)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("send then mark paid", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		inv := validatedInvoice(t)
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)
		repo.On("Save", mock.Anything, inv).Return(nil)

		resp, err := svc.Send(context.Background(), inv.ID, testOwnerID)
		require.NoError(t, err)
		assert.Equal(t, "SENT", resp.Status)
		require.NotNil(t, resp.SentAt)

		resp, err = svc.MarkPaid(context.Background(), inv.ID, testOwnerID)
		require.NoError(t, err)
		assert.Equal(t, "PAID", resp.Status)
	})

	t.Run("cancel keeps number", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		inv := validatedInvoice(t)
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)
		repo.On("Save", mock.Anything, inv).Return(nil)

		resp, err := svc.Cancel(context.Background(), inv.ID, testOwnerID)
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
		assert.Equal(t, "FAC-2024-00001", resp.InvoiceNumber)
	})

	t.Run("concurrency conflict on save is returned", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		inv := validatedInvoice(t)
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)
		repo.On("Save", mock.Anything, inv).Return(shared.ErrConcurrencyConflict)

		_, err := svc.Cancel(context.Background(), inv.ID, testOwnerID)
		assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
	})
}

func TestService_Settle(t *testing.T) {
	total := decimal.RequireFromString("30.3450")

	tests := []struct {
		name       string
		paid       valueobject.Money
		wantStatus string
		wantErr    error
	}{
		{"exact total", valueobject.MustNewMoney(total, valueobject.TND), "PAID", nil},
		{"unrounded exact total", valueobject.MustNewMoney(decimal.RequireFromString("30.34500"), valueobject.TND), "PAID", nil},
		{"one cent", valueobject.MustNewMoney(decimal.RequireFromString("0.01"), valueobject.TND), "", shared.ErrValidation},
		{"overpayment", valueobject.MustNewMoney(decimal.RequireFromString("30.3451"), valueobject.TND), "", shared.ErrValidation},
		{"other currency", valueobject.MustNewMoney(total, valueobject.EUR), "", shared.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockInvoiceRepository)
			svc := newTestService(repo)

			inv := validatedInvoice(t)
			repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)
			repo.On("Save", mock.Anything, inv).Return(nil)

			resp, err := svc.Settle(context.Background(), inv.ID, testOwnerID, tt.paid)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Equal(t, invoicing.StatusValidated, inv.Status)
				repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.Status)
		})
	}

	t.Run("configured currency", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo, WithCurrency(valueobject.EUR))

		inv := validatedInvoice(t)
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)
		repo.On("Save", mock.Anything, inv).Return(nil)

		resp, err := svc.Settle(context.Background(), inv.ID, testOwnerID, valueobject.MustNewMoney(total, valueobject.EUR))
		require.NoError(t, err)
		assert.Equal(t, "PAID", resp.Status)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("deletes draft", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		publisher := new(MockEventPublisher)
		svc := newTestService(repo, WithEventPublisher(publisher))

		inv := draftInvoice(t)
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)
		repo.On("Delete", mock.Anything, inv).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), inv.ID, testOwnerID))
		repo.AssertExpectations(t)
		publisher.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("validated invoice cannot be deleted", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		inv := validatedInvoice(t)
		repo.On("WithinLock", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)

		err := svc.Delete(context.Background(), inv.ID, testOwnerID)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestService_Queries(t *testing.T) {
	t.Run("get by number hides other owners", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		inv := validatedInvoice(t)
		repo.On("FindByInvoiceNumber", mock.Anything, "FAC-2024-00001").Return(inv, nil)

		resp, err := svc.GetByNumber(context.Background(), testOwnerID, "FAC-2024-00001")
		require.NoError(t, err)
		assert.Equal(t, inv.ID, resp.ID)

		_, err = svc.GetByNumber(context.Background(), uuid.New(), "FAC-2024-00001")
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("get by number rejects malformed numbers", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		_, err := svc.GetByNumber(context.Background(), testOwnerID, "INV-1")
		assert.True(t, errors.Is(err, shared.ErrValidation))
		repo.AssertNotCalled(t, "FindByInvoiceNumber", mock.Anything, mock.Anything)
	})

	t.Run("list passes status filter", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo)

		inv := draftInvoice(t)
		repo.On("FindByOwner", mock.Anything, testOwnerID, mock.MatchedBy(func(f invoicing.InvoiceFilter) bool {
			return f.Status != nil && *f.Status == invoicing.StatusDraft && f.Page == 2 && f.PageSize == 5
		})).Return([]invoicing.Invoice{*inv}, int64(6), nil)

		items, total, err := svc.List(context.Background(), testOwnerID, ListInvoicesFilter{Page: 2, PageSize: 5, Status: "DRAFT"})
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].ItemCount)
	})

	t.Run("list rejects unknown status", func(t *testing.T) {
		svc := newTestService(new(MockInvoiceRepository))
		_, _, err := svc.List(context.Background(), testOwnerID, ListInvoicesFilter{Status: "LOST"})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestService_RenderDocument(t *testing.T) {
	t.Run("renders and archives", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		renderer := new(MockRenderer)
		archive := new(MockArchive)
		svc := newTestService(repo, WithRenderer(renderer), WithArchive(archive))

		inv := validatedInvoice(t)
		content := []byte("PDF placeholder for invoice FAC-2024-00001")
		repo.On("FindByIDAndOwner", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)
		renderer.On("Render", mock.Anything, inv).Return(content, "application/pdf", nil)
		archive.On("Store", mock.Anything, "invoices/"+testOwnerID.String()+"/FAC-2024-00001.pdf", content, "application/pdf").Return(nil)

		doc, err := svc.RenderDocument(context.Background(), inv.ID, testOwnerID)
		require.NoError(t, err)
		assert.Equal(t, "FAC-2024-00001.pdf", doc.Filename)
		assert.Equal(t, content, doc.Content)
		archive.AssertExpectations(t)
	})

	t.Run("archive failure does not fail rendering", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		renderer := new(MockRenderer)
		archive := new(MockArchive)
		svc := newTestService(repo, WithRenderer(renderer), WithArchive(archive))

		inv := draftInvoice(t)
		repo.On("FindByIDAndOwner", mock.Anything, inv.ID, testOwnerID).Return(inv, nil)
		renderer.On("Render", mock.Anything, inv).Return([]byte("x"), "application/pdf", nil)
		archive.On("Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket gone"))

		doc, err := svc.RenderDocument(context.Background(), inv.ID, testOwnerID)
		require.NoError(t, err)
		assert.Equal(t, inv.ID.String()+".pdf", doc.Filename)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		svc := newTestService(repo, WithRenderer(new(MockRenderer)))

		id := uuid.New()
		repo.On("FindByIDAndOwner", mock.Anything, id, testOwnerID).Return(nil, shared.NewNotFoundError("invoice", id))

		_, err := svc.RenderDocument(context.Background(), id, testOwnerID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
