// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: shared columns (ID, timestamps, version, owner)
//   - invoice.go: invoices and invoice_items
//   - payment.go: payments
package models
