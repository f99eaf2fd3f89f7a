// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
	domainerror "github.com/amaanah/backend/internal/domain/error"
	"github.com/amaanah/backend/internal/integration/persistence/model"
)

// ledgerRepository implements the adapter.LedgerRepository interface.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// Create stores a new ledger entry with its payment and retraction history.
func (r *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	entryModel := model.LedgerEntryFromEntity(entry)
	result := r.db.WithContext(ctx).Create(entryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a ledger entry by its ID, including payment log and
// retraction history.
func (r *ledgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	var entryModel model.LedgerEntryModel
	result := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Preload("Retractions", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Where("id = ?", id).
		First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeEntryNotFound,
				"Ledger entry not found",
				domainerror.ErrEntryNotFound,
			)
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindByParticipant retrieves entries where the user is creator or
// counterpart, newest first.
func (r *ledgerRepository) FindByParticipant(ctx context.Context, userID uuid.UUID, filter adapter.LedgerEntryFilter) (*adapter.LedgerEntryListResult, error) {
	query := r.db.WithContext(ctx).
		Model(&model.LedgerEntryModel{}).
		Where("creator_id = ? OR target_user_id = ?", userID, userID)

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}

	var total int64
	if result := query.Count(&total); result.Error != nil {
		return nil, result.Error
	}

	offset := (filter.Page - 1) * filter.Limit
	var entryModels []model.LedgerEntryModel
	result := query.
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Preload("Retractions", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.LedgerEntry, len(entryModels))
	for i, em := range entryModels {
		entries[i] = em.ToEntity()
	}

	return &adapter.LedgerEntryListResult{
		Entries:    entries,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// FindActiveWithDueDate retrieves unresolved entries that carry a due date,
// across all users.
func (r *ledgerRepository) FindActiveWithDueDate(ctx context.Context) ([]*entity.LedgerEntry, error) {
	var entryModels []model.LedgerEntryModel
	result := r.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND status NOT IN ?", []string{
			string(entity.StatusFulfilled),
			string(entity.StatusForgiven),
			string(entity.StatusCharity),
		}).
		Order("due_date ASC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.LedgerEntry, len(entryModels))
	for i, em := range entryModels {
		entries[i] = em.ToEntity()
	}
	return entries, nil
}

// Update persists an entry, its payment log and retraction history in one
// transaction. History rows are replaced wholesale; they are few per entry
// and append-only in practice.
func (r *ledgerRepository) Update(ctx context.Context, entry *entity.LedgerEntry) error {
	entryModel := model.LedgerEntryFromEntity(entry)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payments := entryModel.Payments
		retractions := entryModel.Retractions
		entryModel.Payments = nil
		entryModel.Retractions = nil

		if result := tx.Save(entryModel); result.Error != nil {
			return result.Error
		}
		if result := tx.Delete(&model.PaymentModel{}, "entry_id = ?", entry.ID); result.Error != nil {
			return result.Error
		}
		if result := tx.Delete(&model.RetractionModel{}, "entry_id = ?", entry.ID); result.Error != nil {
			return result.Error
		}
		if len(payments) > 0 {
			if result := tx.Create(&payments); result.Error != nil {
				return result.Error
			}
		}
		if len(retractions) > 0 {
			if result := tx.Create(&retractions); result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
}

// Delete removes an entry and its history permanently.
func (r *ledgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Delete(&model.PaymentModel{}, "entry_id = ?", id); result.Error != nil {
			return result.Error
		}
		if result := tx.Delete(&model.RetractionModel{}, "entry_id = ?", id); result.Error != nil {
			return result.Error
		}
		result := tx.Delete(&model.LedgerEntryModel{}, "id = ?", id)
		return result.Error
	})
}
