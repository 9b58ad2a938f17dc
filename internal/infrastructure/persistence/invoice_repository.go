package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

func (r *GormInvoiceRepository) findOne(ctx context.Context, db *gorm.DB, what any) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := db.WithContext(ctx).Preload("Items", orderedItems).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("invoice", what)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDAndOwner finds an invoice by ID within the owner's scope
func (r *GormInvoiceRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*invoicing.Invoice, error) {
	return r.findOne(ctx, r.db.Where("id = ?", id).Scopes(OwnedBy(ownerID)), id)
}

// FindByInvoiceNumber finds an invoice by its number
func (r *GormInvoiceRepository) FindByInvoiceNumber(ctx context.Context, number string) (*invoicing.Invoice, error) {
	return r.findOne(ctx, r.db.Where("invoice_number = ?", number), number)
}

// FindByOwner lists the owner's invoices with pagination
func (r *GormInvoiceRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter invoicing.InvoiceFilter) ([]invoicing.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("owner_id = ?", ownerID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InvoiceModel
	if err := query.
		Preload("Items", orderedItems).
		Order(orderClause(filter.OrderBy, filter.OrderDir, InvoiceSortFields)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	invoices := make([]invoicing.Invoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices, total, nil
}

// CountAll counts all invoices across owners and statuses
func (r *GormInvoiceRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save inserts a new invoice or updates an existing one with a version check.
// The item set is replaced in the same transaction.
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *invoicing.Invoice) error {
	return r.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := r.saveInvoice(tx, inv); err != nil {
			return err
		}
		return r.replaceItems(tx, inv)
	})
}

func (r *GormInvoiceRepository) saveInvoice(tx *gorm.DB, inv *invoicing.Invoice) error {
	var exists int64
	if err := tx.Model(&models.InvoiceModel{}).Where("id = ?", inv.ID).Count(&exists).Error; err != nil {
		return err
	}

	model := models.InvoiceModelFromDomain(inv)
	if exists == 0 {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return r.translate(err, inv)
		}
		return nil
	}

	result := tx.Model(&models.InvoiceModel{}).
		Where("id = ? AND version = ?", inv.ID, inv.Version).
		Updates(map[string]any{
			"invoice_number":  model.InvoiceNumber,
			"client_name":     model.ClientName,
			"client_email":    model.ClientEmail,
			"billing_address": model.BillingAddress,
			"address":         model.Address,
			"subtotal":        model.Subtotal,
			"tax_rate":        model.TaxRate,
			"tax_amount":      model.TaxAmount,
			"total":           model.Total,
			"status":          model.Status,
			"issue_date":      model.IssueDate,
			"due_date":        model.DueDate,
			"signature_hash":  model.SignatureHash,
			"sent_at":         model.SentAt,
			"paid_at":         model.PaidAt,
			"cancelled_at":    model.CancelledAt,
			"updated_at":      model.UpdatedAt,
			"version":         inv.Version + 1,
		})
	if result.Error != nil {
		return r.translate(result.Error, inv)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			fmt.Sprintf("invoice %s was modified by another process", inv.ID))
	}
	inv.IncrementVersion()
	return nil
}

func (r *GormInvoiceRepository) replaceItems(tx *gorm.DB, inv *invoicing.Invoice) error {
	if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItemModel{}).Error; err != nil {
		return err
	}
	if len(inv.Items) == 0 {
		return nil
	}
	items := make([]models.InvoiceItemModel, len(inv.Items))
	for i := range inv.Items {
		items[i] = models.InvoiceItemModelFromDomain(inv.ID, &inv.Items[i])
	}
	return tx.Create(&items).Error
}

// Delete removes the invoice and its items
func (r *GormInvoiceRepository) Delete(ctx context.Context, inv *invoicing.Invoice) error {
	return r.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", inv.ID).Scopes(OwnedBy(inv.OwnerID)).Delete(&models.InvoiceModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("invoice", inv.ID)
		}
		return nil
	})
}

// WithinLock loads the invoice with SELECT ... FOR UPDATE and runs fn in the
// same transaction
func (r *GormInvoiceRepository) WithinLock(ctx context.Context, id, ownerID uuid.UUID, fn func(ctx context.Context, tx invoicing.InvoiceRepository, inv *invoicing.Invoice) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &GormInvoiceRepository{db: tx}
		locked := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).Scopes(OwnedBy(ownerID))
		inv, err := txRepo.findOne(ctx, locked, id)
		if err != nil {
			return err
		}
		return fn(ctx, txRepo, inv)
	})
}

// inTransaction reuses an enclosing transaction when the repository is
// already bound to one
func (r *GormInvoiceRepository) inTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db := r.db.WithContext(ctx)
	if _, ok := db.Statement.ConnPool.(gorm.TxCommitter); ok {
		return fn(db)
	}
	return db.Transaction(fn)
}

func (r *GormInvoiceRepository) translate(err error, inv *invoicing.Invoice) error {
	if isUniqueViolation(err) {
		return shared.NewDuplicateNumberError("invoice", inv.InvoiceNumber)
	}
	return err
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
