package shared

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// NumberKind is the prefix of a generated business number.
type NumberKind string

const (
	NumberKindInvoice NumberKind = "FAC"
	NumberKindPayment NumberKind = "PAY"
)

// Counter reports how many records of a kind are persisted.
type Counter interface {
	CountAll(ctx context.Context) (int64, error)
}

// Numberer derives the next sequential number from a live record count.
//
// The sequence is count+1, so two concurrent callers that observe the same
// count produce the same number. Storage rejects the duplicate through a
// unique index and the caller gets ErrDuplicateNumber; nothing retries.
type Numberer struct {
	kind    NumberKind
	counter Counter
}

// NewNumberer creates a Numberer for kind backed by counter
func NewNumberer(kind NumberKind, counter Counter) *Numberer {
	return &Numberer{kind: kind, counter: counter}
}

// Next returns <PREFIX>-<year>-<seq:05d> with seq = CountAll()+1
func (n *Numberer) Next(ctx context.Context, year int) (string, error) {
	count, err := n.counter.CountAll(ctx)
	if err != nil {
		return "", fmt.Errorf("count %s records: %w", n.kind, err)
	}
	return FormatNumber(n.kind, year, count+1), nil
}

// FormatNumber renders a business number. Sequences above 99999 keep all digits.
func FormatNumber(kind NumberKind, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%05d", kind, year, seq)
}

var numberPattern = regexp.MustCompile(`^([A-Z]{3})-(\d{4})-(\d{5,})$`)

// ParseNumber splits a business number into its kind, year and sequence
func ParseNumber(number string) (NumberKind, int, int64, error) {
	m := numberPattern.FindStringSubmatch(number)
	if m == nil {
		return "", 0, 0, NewValidationError("malformed number %q", number)
	}
	year, _ := strconv.Atoi(m[2])
	seq, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return "", 0, 0, NewValidationError("malformed number %q", number)
	}
	return NumberKind(m[1]), year, seq, nil
}
