package router

import "github.com/billing/backend/internal/interfaces/http/handler"

// InvoiceRoutes maps the invoice lifecycle endpoints
func InvoiceRoutes(h *handler.InvoiceHandler) *DomainGroup {
	return NewDomainGroup("invoices", "/invoices").
		POST("", h.Create).
		GET("", h.List).
		GET("/number/:number", h.GetByNumber).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete).
		POST("/:id/validate", h.Validate).
		POST("/:id/send", h.Send).
		POST("/:id/cancel", h.Cancel).
		POST("/:id/mark-paid", h.MarkPaid).
		GET("/:id/pdf", h.Document)
}

// PaymentRoutes maps the payment endpoints
func PaymentRoutes(h *handler.PaymentHandler) *DomainGroup {
	return NewDomainGroup("payments", "/payments").
		POST("", h.Create).
		GET("", h.List).
		GET("/invoice/:invoiceId", h.ListByInvoice).
		GET("/:id", h.GetByID).
		POST("/:id/confirm", h.Confirm).
		POST("/:id/fail", h.Fail).
		POST("/:id/refund", h.Refund)
}
