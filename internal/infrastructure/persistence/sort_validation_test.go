package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := map[string]string{
		"":                         "DESC",
		"ASC":                      "ASC",
		"asc":                      "ASC",
		"  asc  ":                  "ASC",
		"desc":                     "DESC",
		"sideways":                 "DESC",
		"ASC; DROP TABLE invoices": "DESC",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, ValidateSortOrder(input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty uses default", "", "created_at"},
		{"whitelisted column", "invoice_number", "invoice_number"},
		{"trimmed", "  total ", "total"},
		{"case sensitive", "TOTAL", "created_at"},
		{"payment column on invoices", "reference", "created_at"},
		{"owner is not sortable", "owner_id", "created_at"},
		{"injection", "total; DROP TABLE invoices;--", "created_at"},
		{"subquery", "(SELECT 1)", "created_at"},
		{"quoted", "status'--", "created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSortField(tt.input, InvoiceSortFields, "created_at"))
		})
	}
}

func TestSortFieldsWhitelists(t *testing.T) {
	for name, whitelist := range map[string]map[string]bool{
		"invoices": InvoiceSortFields,
		"payments": PaymentSortFields,
	} {
		t.Run(name, func(t *testing.T) {
			for _, field := range []string{"id", "created_at", "updated_at", "status"} {
				assert.True(t, whitelist[field], "%s should allow %q", name, field)
			}
			assert.False(t, whitelist["owner_id"])
		})
	}
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "issue_date ASC", orderClause("issue_date", "asc", InvoiceSortFields))
	assert.Equal(t, "created_at DESC", orderClause("password", "", InvoiceSortFields))
	assert.Equal(t, "amount DESC", orderClause("amount", "sideways", PaymentSortFields))
	assert.Equal(t, "payment_date ASC", orderClause("payment_date", "ASC", PaymentSortFields))
}
