// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amaanah/backend/internal/domain/entity"
)

// LedgerEntryModel represents the ledger_entries table in the database.
// TotalAmount and RemainingAmount are set together or not at all; a null
// TotalAmount marks an indivisible entry.
type LedgerEntryModel struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CreatorID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	TargetUserID        *uuid.UUID       `gorm:"type:uuid;index"`
	PartnerName         string           `gorm:"type:varchar(100);not null"`
	Amount              string           `gorm:"type:varchar(100);not null"`
	TotalAmount         *decimal.Decimal `gorm:"type:decimal(15,2)"`
	RemainingAmount     *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Type                string           `gorm:"type:varchar(10);not null;index"`
	Direction           string           `gorm:"type:varchar(15);not null"`
	Status              string           `gorm:"type:varchar(25);not null;index"`
	RequireVerification bool             `gorm:"default:true"`
	DueDate             *time.Time       `gorm:"type:date;index"`
	Notes               string           `gorm:"type:text"`
	CreatedAt           time.Time        `gorm:"not null"`
	ConfirmedAt         *time.Time       `gorm:"type:timestamp"`
	ResolvedAt          *time.Time       `gorm:"type:timestamp"`

	// History (not loaded by default, use Preload)
	Payments    []PaymentModel    `gorm:"foreignKey:EntryID;references:ID"`
	Retractions []RetractionModel `gorm:"foreignKey:EntryID;references:ID"`
}

// TableName returns the table name for the LedgerEntryModel.
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// PaymentModel represents the ledger_payments table in the database.
type PaymentModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EntryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date       time.Time       `gorm:"not null"`
	IsReverted bool            `gorm:"default:false"`
}

// TableName returns the table name for the PaymentModel.
func (PaymentModel) TableName() string {
	return "ledger_payments"
}

// RetractionModel represents the ledger_retractions table in the database.
type RetractionModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntryID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Date           time.Time `gorm:"not null"`
	PreviousStatus string    `gorm:"type:varchar(25);not null"`
	InitiatorID    uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for the RetractionModel.
func (RetractionModel) TableName() string {
	return "ledger_retractions"
}

// ToEntity converts a LedgerEntryModel with its history to a domain LedgerEntry.
func (m *LedgerEntryModel) ToEntity() *entity.LedgerEntry {
	entry := &entity.LedgerEntry{
		ID:                  m.ID,
		CreatorID:           m.CreatorID,
		TargetUserID:        m.TargetUserID,
		PartnerName:         m.PartnerName,
		Amount:              m.Amount,
		Type:                entity.EntryType(m.Type),
		Direction:           entity.Direction(m.Direction),
		Status:              entity.EntryStatus(m.Status),
		RequireVerification: m.RequireVerification,
		DueDate:             m.DueDate,
		Notes:               m.Notes,
		CreatedAt:           m.CreatedAt,
		ConfirmedAt:         m.ConfirmedAt,
		ResolvedAt:          m.ResolvedAt,
	}

	if m.TotalAmount != nil && m.RemainingAmount != nil {
		payments := make([]entity.PaymentRecord, 0, len(m.Payments))
		for _, p := range m.Payments {
			payments = append(payments, entity.PaymentRecord{
				ID:         p.ID,
				Amount:     p.Amount,
				Date:       p.Date,
				IsReverted: p.IsReverted,
			})
		}
		entry.Money = &entity.Obligation{
			Total:     *m.TotalAmount,
			Remaining: *m.RemainingAmount,
			Payments:  payments,
		}
	}

	entry.Retractions = make([]entity.RetractionRecord, 0, len(m.Retractions))
	for _, r := range m.Retractions {
		entry.Retractions = append(entry.Retractions, entity.RetractionRecord{
			ID:             r.ID,
			Date:           r.Date,
			PreviousStatus: entity.EntryStatus(r.PreviousStatus),
			InitiatorID:    r.InitiatorID,
		})
	}

	return entry
}

// LedgerEntryFromEntity creates a LedgerEntryModel with its history from a
// domain LedgerEntry.
func LedgerEntryFromEntity(entry *entity.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{
		ID:                  entry.ID,
		CreatorID:           entry.CreatorID,
		TargetUserID:        entry.TargetUserID,
		PartnerName:         entry.PartnerName,
		Amount:              entry.Amount,
		Type:                string(entry.Type),
		Direction:           string(entry.Direction),
		Status:              string(entry.Status),
		RequireVerification: entry.RequireVerification,
		DueDate:             entry.DueDate,
		Notes:               entry.Notes,
		CreatedAt:           entry.CreatedAt,
		ConfirmedAt:         entry.ConfirmedAt,
		ResolvedAt:          entry.ResolvedAt,
	}

	if entry.Money != nil {
		total := entry.Money.Total
		remaining := entry.Money.Remaining
		m.TotalAmount = &total
		m.RemainingAmount = &remaining
		for _, p := range entry.Money.Payments {
			m.Payments = append(m.Payments, PaymentModel{
				ID:         p.ID,
				EntryID:    entry.ID,
				Amount:     p.Amount,
				Date:       p.Date,
				IsReverted: p.IsReverted,
			})
		}
	}

	for _, r := range entry.Retractions {
		m.Retractions = append(m.Retractions, RetractionModel{
			ID:             r.ID,
			EntryID:        entry.ID,
			Date:           r.Date,
			PreviousStatus: string(r.PreviousStatus),
			InitiatorID:    r.InitiatorID,
		})
	}

	return m
}
