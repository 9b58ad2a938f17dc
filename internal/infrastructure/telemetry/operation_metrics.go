package telemetry

import (
	"context"
	"errors"

	"github.com/billing/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
)

// OutcomeSuccess labels operations that returned no error
const OutcomeSuccess = "success"

// OperationMetrics counts invoice and payment lifecycle operations by outcome.
// The outcome is "success", the domain error code, or "error".
type OperationMetrics struct {
	operations *Counter
}

// NewOperationMetrics registers the billing_operations_total counter on meter
func NewOperationMetrics(meter metric.Meter) (*OperationMetrics, error) {
	operations, err := NewCounter(meter,
		"billing_operations_total",
		"Invoice and payment lifecycle operations by outcome",
		"{operation}",
	)
	if err != nil {
		return nil, err
	}
	return &OperationMetrics{operations: operations}, nil
}

// RecordOperation counts one operation on entity
func (m *OperationMetrics) RecordOperation(ctx context.Context, entity, operation string, err error) {
	m.operations.Inc(ctx,
		AttrEntity.String(entity),
		AttrOperation.String(operation),
		AttrOutcome.String(Outcome(err)),
	)
}

// Outcome maps err to a low-cardinality label
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	var transition *shared.InvalidStateTransition
	if errors.As(err, &transition) {
		return shared.CodeInvalidState
	}
	return "error"
}
