package payment

import (
	"errors"
	"testing"
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)

func newPending(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment(uuid.New(), uuid.New(), "PAY-2024-00001", decimal.RequireFromString("30.345"), "", "", "", testNow)
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusRefunded, false},
		{StatusCompleted, StatusRefunded, true},
		{StatusCompleted, StatusFailed, false},
		{StatusFailed, StatusCompleted, false},
		{StatusRefunded, StatusCompleted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewPayment(t *testing.T) {
	owner, invoice := uuid.New(), uuid.New()

	t.Run("applies defaults", func(t *testing.T) {
		p, err := NewPayment(owner, invoice, "PAY-2024-00001", decimal.RequireFromString("12.34567"), "", "", " tx-1 ", testNow)
		require.NoError(t, err)

		assert.Equal(t, StatusPending, p.Status)
		assert.Equal(t, MethodCard, p.Method)
		assert.Equal(t, valueobject.TND, p.Amount.Currency())
		assert.Equal(t, "12.3457", p.Amount.Amount().StringFixed(4))
		assert.Equal(t, "tx-1", p.ExternalTransactionID)
		assert.Nil(t, p.PaymentDate)

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePaymentCreated, events[0].EventType())
	})

	t.Run("normalises currency case", func(t *testing.T) {
		p, err := NewPayment(owner, invoice, "PAY-2024-00002", decimal.NewFromInt(5), "eur", MethodCash, "", testNow)
		require.NoError(t, err)
		assert.Equal(t, valueobject.EUR, p.Amount.Currency())
	})

	tests := []struct {
		name     string
		amount   string
		currency valueobject.Currency
		method   PaymentMethod
		msg      string
	}{
		{"amount below minimum", "0.004", "", "", "at least 0.01"},
		{"negative amount", "-3", "", "", "at least 0.01"},
		{"bad currency", "1", "EURO", "", "invalid currency"},
		{"bad method", "1", "", "BITCOIN", "invalid payment method"},
	}
	for _, tt := range tests {
		t.Run("fails with "+tt.name, func(t *testing.T) {
			_, err := NewPayment(owner, invoice, "PAY-2024-00003", decimal.RequireFromString(tt.amount), tt.currency, tt.method, "", testNow)
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrValidation))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	t.Run("fails without invoice", func(t *testing.T) {
		_, err := NewPayment(owner, uuid.Nil, "PAY-2024-00003", decimal.NewFromInt(1), "", "", "", testNow)
		require.Error(t, err)
	})
}

func TestPayment_Confirm(t *testing.T) {
	p := newPending(t)
	later := testNow.Add(time.Minute)
	require.NoError(t, p.Confirm("gw-42", later))

	assert.Equal(t, StatusCompleted, p.Status)
	assert.True(t, p.IsCompleted())
	assert.Equal(t, "gw-42", p.ExternalTransactionID)
	require.NotNil(t, p.PaymentDate)
	assert.Equal(t, later, *p.PaymentDate)

	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	event, ok := events[0].(*PaymentCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, p.InvoiceID, event.InvoiceID)
	assert.Equal(t, p.OwnerID, event.OwnerID())

	err := p.Confirm("", later)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}

func TestPayment_FailAndRefund(t *testing.T) {
	t.Run("pending payment fails", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, p.Fail("card declined", testNow))
		assert.Equal(t, StatusFailed, p.Status)
		assert.True(t, errors.Is(p.Refund(testNow), shared.ErrInvalidState))
	})

	t.Run("completed payment is refunded", func(t *testing.T) {
		p := newPending(t)
		assert.True(t, errors.Is(p.Refund(testNow), shared.ErrInvalidState))
		require.NoError(t, p.Confirm("", testNow))
		require.NoError(t, p.Refund(testNow))
		assert.Equal(t, StatusRefunded, p.Status)
	})
}
