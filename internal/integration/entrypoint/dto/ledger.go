// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amaanah/backend/internal/application/adapter"
	"github.com/amaanah/backend/internal/domain/entity"
)

// CreateLedgerEntryRequest represents the request body for recording an entry.
type CreateLedgerEntryRequest struct {
	PartnerName         string  `json:"partner_name"`
	TargetUserEmail     string  `json:"target_user_email"`
	Amount              string  `json:"amount" binding:"required"`
	Type                string  `json:"type" binding:"required"`
	Direction           string  `json:"direction" binding:"required"`
	RequireVerification *bool   `json:"require_verification"`
	DueDate             *string `json:"due_date"`
	Notes               string  `json:"notes"`
	Valuation           *string `json:"valuation"`
}

// UpdateLedgerEntryRequest represents the request body for editing an entry.
type UpdateLedgerEntryRequest struct {
	Notes   string  `json:"notes"`
	DueDate *string `json:"due_date"`
}

// RecordPaymentRequest represents the request body for logging a payment.
type RecordPaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// PaymentResponse represents a single payment in API responses.
type PaymentResponse struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	IsReverted bool            `json:"is_reverted"`
}

// RetractionResponse represents a single retraction in API responses.
type RetractionResponse struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	PreviousStatus string    `json:"previous_status"`
	InitiatorID    string    `json:"initiator_id"`
}

// ObligationResponse represents the divisible money state of an entry.
type ObligationResponse struct {
	Total     decimal.Decimal   `json:"total"`
	Remaining decimal.Decimal   `json:"remaining"`
	Payments  []PaymentResponse `json:"payments"`
}

// LedgerEntryResponse represents a ledger entry in API responses.
type LedgerEntryResponse struct {
	ID                  string               `json:"id"`
	CreatorID           string               `json:"creator_id"`
	TargetUserID        *string              `json:"target_user_id,omitempty"`
	PartnerName         string               `json:"partner_name"`
	Amount              string               `json:"amount"`
	Money               *ObligationResponse  `json:"money,omitempty"`
	Type                string               `json:"type"`
	Direction           string               `json:"direction"`
	Status              string               `json:"status"`
	RequireVerification bool                 `json:"require_verification"`
	DueDate             *time.Time           `json:"due_date,omitempty"`
	Notes               string               `json:"notes,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	ConfirmedAt         *time.Time           `json:"confirmed_at,omitempty"`
	ResolvedAt          *time.Time           `json:"resolved_at,omitempty"`
	Retractions         []RetractionResponse `json:"retractions,omitempty"`
	ViewerRole          string               `json:"viewer_role,omitempty"`
	ProgressPercent     int                  `json:"progress_percent"`
}

// LedgerEntryListResponse represents one page of ledger entries.
type LedgerEntryListResponse struct {
	Entries    []LedgerEntryResponse `json:"entries"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}

// PaymentListResponse represents the payment log of an entry.
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToPaymentResponse converts a domain PaymentRecord to a PaymentResponse DTO.
func ToPaymentResponse(p entity.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID.String(),
		Amount:     p.Amount,
		Date:       p.Date,
		IsReverted: p.IsReverted,
	}
}

// ToLedgerEntryResponse converts a domain LedgerEntry to a LedgerEntryResponse
// DTO as seen by the given viewer.
func ToLedgerEntryResponse(entry *entity.LedgerEntry, viewerRole entity.Role) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		ID:                  entry.ID.String(),
		CreatorID:           entry.CreatorID.String(),
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
		ViewerRole:          string(viewerRole),
		ProgressPercent:     entry.ProgressPercent(),
	}

	if entry.TargetUserID != nil {
		targetID := entry.TargetUserID.String()
		resp.TargetUserID = &targetID
	}

	if entry.Money != nil {
		money := &ObligationResponse{
			Total:     entry.Money.Total,
			Remaining: entry.Money.Remaining,
			Payments:  make([]PaymentResponse, 0, len(entry.Money.Payments)),
		}
		for _, p := range entry.Money.Payments {
			money.Payments = append(money.Payments, ToPaymentResponse(p))
		}
		resp.Money = money
	}

	for _, r := range entry.Retractions {
		resp.Retractions = append(resp.Retractions, RetractionResponse{
			ID:             r.ID.String(),
			Date:           r.Date,
			PreviousStatus: string(r.PreviousStatus),
			InitiatorID:    r.InitiatorID.String(),
		})
	}

	return resp
}

// ToLedgerEntryListResponse converts a repository list result to a
// LedgerEntryListResponse DTO as seen by the given viewer.
func ToLedgerEntryListResponse(result *adapter.LedgerEntryListResult, viewerID uuid.UUID) LedgerEntryListResponse {
	resp := LedgerEntryListResponse{
		Entries:    make([]LedgerEntryResponse, 0, len(result.Entries)),
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}
	for _, entry := range result.Entries {
		resp.Entries = append(resp.Entries, ToLedgerEntryResponse(entry, entry.RoleOf(viewerID)))
	}
	return resp
}
