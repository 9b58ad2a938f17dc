package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabels(t *testing.T) {
	pairs := sanitizeLabels(map[string]string{
		"Route":      "/api/v1/invoices/:id",
		"method":     "GET",
		"owner_id":   "c0ffee",
		"request-id": "abc",
		"empty":      "",
		"!!!":        "x",
		"controller": strings.Repeat("a", 200),
	})

	assert.Equal(t, []string{
		"controller", strings.Repeat("a", MaxLabelValueLength),
		"method", "GET",
		"route", "/api/v1/invoices/:id",
	}, pairs)
	assert.Empty(t, sanitizeLabels(nil))
}

func TestSanitizeLabelKey(t *testing.T) {
	assert.Equal(t, "http_route", sanitizeLabelKey("HTTP Route"))
	assert.Equal(t, "a_b", sanitizeLabelKey("a-b"))
	assert.Equal(t, "", sanitizeLabelKey("$%"))
}

func TestHTTPRequestLabels(t *testing.T) {
	assert.Equal(t, map[string]string{
		ProfilingLabelController: "InvoiceHandler",
		ProfilingLabelRoute:      "/api/v1/invoices",
		ProfilingLabelMethod:     "POST",
	}, HTTPRequestLabels("InvoiceHandler", "/api/v1/invoices", "POST"))
	assert.Empty(t, HTTPRequestLabels("", "", ""))
}

func TestWithProfilingLabels_RunsFn(t *testing.T) {
	calls := 0
	WithProfilingLabels(context.Background(), nil, func(context.Context) { calls++ })
	WithProfilingLabels(context.Background(), map[string]string{"route": "/health"}, func(context.Context) { calls++ })
	assert.Equal(t, 2, calls)
}
