package document

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/invoice.html
var templateFS embed.FS

// invoiceView is the data bound to the invoice template
type invoiceView struct {
	Title    string
	Invoice  *invoicing.Invoice
	Currency string
	Draft    bool
}

// TemplateEngine builds the HTML of an invoice document
type TemplateEngine struct {
	tmpl     *template.Template
	currency string
}

// NewTemplateEngine parses the embedded invoice template. currency is
// printed next to every amount.
func NewTemplateEngine(currency string) (*TemplateEngine, error) {
	funcs := template.FuncMap{
		"money":      formatMoney,
		"quantity":   formatQuantity,
		"percent":    formatPercent,
		"date":       formatDate,
		"statusText": statusText,
		"add":        func(a, b int) int { return a + b },
	}
	tmpl, err := template.New("invoice.html").Funcs(funcs).ParseFS(templateFS, "templates/invoice.html")
	if err != nil {
		return nil, fmt.Errorf("parse invoice template: %w", err)
	}
	return &TemplateEngine{tmpl: tmpl, currency: strings.ToUpper(currency)}, nil
}

// RenderHTML executes the invoice template
func (e *TemplateEngine) RenderHTML(inv *invoicing.Invoice) (string, error) {
	if inv == nil {
		return "", fmt.Errorf("invoice is required")
	}
	title := "Invoice " + inv.InvoiceNumber
	if !inv.HasNumber() {
		title = "Draft invoice"
	}
	view := invoiceView{
		Title:    title,
		Invoice:  inv,
		Currency: e.currency,
		Draft:    !inv.HasNumber(),
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("execute invoice template: %w", err)
	}
	return buf.String(), nil
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatQuantity(d decimal.Decimal) string {
	return d.String()
}

func formatPercent(d decimal.Decimal) string {
	return d.String() + "%"
}

func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("02/01/2006")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("02/01/2006")
	default:
		return ""
	}
}

func statusText(s invoicing.InvoiceStatus) string {
	return cases.Title(language.English).String(strings.ToLower(s.String()))
}
