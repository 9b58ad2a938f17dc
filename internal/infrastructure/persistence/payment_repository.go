package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/billing/backend/internal/domain/payment"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) findOne(ctx context.Context, db *gorm.DB, what any) (*payment.Payment, error) {
	var model models.PaymentModel
	if err := db.WithContext(ctx).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("payment", what)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDAndOwner finds a payment by ID within the owner's scope
func (r *GormPaymentRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*payment.Payment, error) {
	return r.findOne(ctx, r.db.Where("id = ?", id).Scopes(OwnedBy(ownerID)), id)
}

// FindByReference finds a payment by its reference
func (r *GormPaymentRepository) FindByReference(ctx context.Context, reference string) (*payment.Payment, error) {
	return r.findOne(ctx, r.db.Where("reference = ?", reference), reference)
}

// FindByOwner lists the owner's payments with pagination.
// Supported filters: status.
func (r *GormPaymentRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]payment.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("owner_id = ?", ownerID)
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PaymentModel
	if err := query.
		Order(orderClause(filter.OrderBy, filter.OrderDir, PaymentSortFields)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toPayments(rows), total, nil
}

// FindByInvoice lists the payments of an invoice, oldest first
func (r *GormPaymentRepository) FindByInvoice(ctx context.Context, invoiceID, ownerID uuid.UUID) ([]payment.Payment, error) {
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).Scopes(OwnedBy(ownerID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toPayments(rows), nil
}

func toPayments(rows []models.PaymentModel) []payment.Payment {
	payments := make([]payment.Payment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments
}

// CountAll counts all payments across owners and statuses
func (r *GormPaymentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save inserts a new payment or updates an existing one with a version check
func (r *GormPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	db := r.db.WithContext(ctx)

	var exists int64
	if err := db.Model(&models.PaymentModel{}).Where("id = ?", p.ID).Count(&exists).Error; err != nil {
		return err
	}

	model := models.PaymentModelFromDomain(p)
	if exists == 0 {
		if err := db.Create(model).Error; err != nil {
			if isUniqueViolation(err) {
				return shared.NewDuplicateNumberError("payment", p.Reference)
			}
			return err
		}
		return nil
	}

	result := db.Model(&models.PaymentModel{}).
		Where("id = ? AND version = ?", p.ID, p.Version).
		Updates(map[string]any{
			"status":                  model.Status,
			"external_transaction_id": model.ExternalTransactionID,
			"payment_date":            model.PaymentDate,
			"updated_at":              model.UpdatedAt,
			"version":                 p.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			fmt.Sprintf("payment %s was modified by another process", p.ID))
	}
	p.IncrementVersion()
	return nil
}

// WithinLock loads the payment with SELECT ... FOR UPDATE and runs fn in the
// same transaction
func (r *GormPaymentRepository) WithinLock(ctx context.Context, id, ownerID uuid.UUID, fn func(ctx context.Context, tx payment.PaymentRepository, p *payment.Payment) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &GormPaymentRepository{db: tx}
		locked := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).Scopes(OwnedBy(ownerID))
		p, err := txRepo.findOne(ctx, locked, id)
		if err != nil {
			return err
		}
		return fn(ctx, txRepo, p)
	})
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ payment.PaymentRepository = (*GormPaymentRepository)(nil)
