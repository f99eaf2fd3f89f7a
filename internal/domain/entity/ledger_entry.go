// Package entity defines the core business entities for the domain layer.
package entity

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/amaanah/backend/internal/domain/error"
)

// EntryType represents the kind of obligation recorded in the ledger.
type EntryType string

const (
	EntryTypeDebt   EntryType = "Debt"
	EntryTypeAmanah EntryType = "Amānah"
)

// Direction states who owes whom, always from the creator's perspective.
type Direction string

const (
	DirectionIOwe     Direction = "I Owe"
	DirectionOwedToMe Direction = "Owed to Me"
)

// EntryStatus represents the lifecycle state of a ledger entry.
type EntryStatus string

const (
	StatusPending            EntryStatus = "Pending"
	StatusConfirmed          EntryStatus = "Confirmed"
	StatusPartiallyFulfilled EntryStatus = "Partially Fulfilled"
	StatusFulfilled          EntryStatus = "Fulfilled"
	StatusForgiven           EntryStatus = "Forgiven"
	StatusCharity            EntryStatus = "Converted to Charity"
)

// Role is a viewer's position relative to an entry.
type Role string

const (
	RoleCreditor Role = "creditor"
	RoleDebtor   Role = "debtor"
)

// PaymentRecord is a single partial payment against a divisible entry.
// Records are never deleted; IsReverted is reserved for a future
// per-payment reversal capability and is never set by current operations.
type PaymentRecord struct {
	ID         uuid.UUID
	Amount     decimal.Decimal
	Date       time.Time
	IsReverted bool
}

// RetractionRecord documents one reopening of a resolved entry.
type RetractionRecord struct {
	ID             uuid.UUID
	Date           time.Time
	PreviousStatus EntryStatus
	InitiatorID    uuid.UUID
}

// Obligation holds the divisible money state of an entry. Total, the
// outstanding remainder and the payment log only ever exist together, so
// they live behind a single pointer on LedgerEntry.
type Obligation struct {
	Total     decimal.Decimal
	Remaining decimal.Decimal
	Payments  []PaymentRecord
}

// PaidTotal returns the sum of all non-reverted payments.
func (o *Obligation) PaidTotal() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range o.Payments {
		if !p.IsReverted {
			paid = paid.Add(p.Amount)
		}
	}
	return paid
}

// LedgerEntry is an obligation recorded between two parties. The counterpart
// is either a registered user (TargetUserID) or known only by PartnerName.
type LedgerEntry struct {
	ID                  uuid.UUID
	CreatorID           uuid.UUID
	TargetUserID        *uuid.UUID
	PartnerName         string
	Amount              string // Display amount, e.g. "$250" or "Gold Ring"
	Money               *Obligation
	Type                EntryType
	Direction           Direction
	Status              EntryStatus
	RequireVerification bool
	DueDate             *time.Time
	Notes               string
	CreatedAt           time.Time
	ConfirmedAt         *time.Time
	ResolvedAt          *time.Time
	Retractions         []RetractionRecord
}

var numericAmountPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ParseDisplayAmount extracts a numeric value out of a display amount such
// as "$250" or "1,200.50 NGN". The second return is false when the string
// carries no usable number.
func ParseDisplayAmount(display string) (decimal.Decimal, bool) {
	cleaned := ""
	for _, r := range display {
		if r == ',' || r == ' ' {
			continue
		}
		cleaned += string(r)
	}
	match := numericAmountPattern.FindString(cleaned)
	if match == "" {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(match)
	if err != nil || value.Sign() <= 0 {
		return decimal.Zero, false
	}
	return value, true
}

// NewLedgerEntry creates a new LedgerEntry. A numeric amount is parsed out
// of the display amount for debts only; trusts stay atomic unless the caller
// supplies a valuation explicitly. When verification is waived the entry is
// born confirmed.
func NewLedgerEntry(
	creatorID uuid.UUID,
	targetUserID *uuid.UUID,
	partnerName string,
	amount string,
	entryType EntryType,
	direction Direction,
	requireVerification bool,
	dueDate *time.Time,
	notes string,
	valuation *decimal.Decimal,
	now time.Time,
) (*LedgerEntry, error) {
	if partnerName == "" {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeMissingPartnerName,
			"partner name is required",
			domainerror.ErrMissingPartnerName,
		)
	}
	if amount == "" {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeMissingAmount,
			"amount is required",
			domainerror.ErrMissingAmount,
		)
	}

	entry := &LedgerEntry{
		ID:                  uuid.New(),
		CreatorID:           creatorID,
		TargetUserID:        targetUserID,
		PartnerName:         partnerName,
		Amount:              amount,
		Type:                entryType,
		Direction:           direction,
		Status:              StatusPending,
		RequireVerification: requireVerification,
		DueDate:             dueDate,
		Notes:               notes,
		CreatedAt:           now,
	}

	var numeric *decimal.Decimal
	if entryType == EntryTypeDebt {
		if parsed, ok := ParseDisplayAmount(amount); ok {
			numeric = &parsed
		}
	}
	if numeric == nil && valuation != nil && valuation.Sign() > 0 {
		numeric = valuation
	}
	if numeric != nil {
		entry.Money = &Obligation{
			Total:     *numeric,
			Remaining: *numeric,
			Payments:  []PaymentRecord{},
		}
	}

	if !requireVerification {
		entry.Status = StatusConfirmed
		confirmedAt := now
		entry.ConfirmedAt = &confirmedAt
	}

	return entry, nil
}

// IsConfirmed reports whether the counterpart has acknowledged the entry.
// It is derived from the status rather than stored separately.
func (e *LedgerEntry) IsConfirmed() bool {
	return e.Status != StatusPending
}

// Resolved reports whether the entry has reached a resolved state.
func (e *LedgerEntry) Resolved() bool {
	return e.Status == StatusFulfilled || e.Status == StatusForgiven || e.Status == StatusCharity
}

// IsParticipant reports whether the given user is a party to the entry.
func (e *LedgerEntry) IsParticipant(userID uuid.UUID) bool {
	if userID == e.CreatorID {
		return true
	}
	return e.TargetUserID != nil && *e.TargetUserID == userID
}

// RoleOf returns the viewer's position relative to the entry. The stored
// direction is the creator's perspective; the counterpart sees the inverse.
// Every screen and rule that needs the flip must go through here.
func (e *LedgerEntry) RoleOf(viewerID uuid.UUID) Role {
	isCreator := viewerID == e.CreatorID
	isCounterpart := e.TargetUserID != nil && *e.TargetUserID == viewerID
	if (isCreator && e.Direction == DirectionOwedToMe) || (isCounterpart && e.Direction == DirectionIOwe) {
		return RoleCreditor
	}
	return RoleDebtor
}

// DebtorUserID returns the registered user responsible for fulfilling the
// obligation, or nil when that party is an unresolved partner.
func (e *LedgerEntry) DebtorUserID() *uuid.UUID {
	if e.RoleOf(e.CreatorID) == RoleDebtor {
		id := e.CreatorID
		return &id
	}
	return e.TargetUserID
}

// CreditorUserID returns the registered user owed the obligation, or nil
// when that party is an unresolved partner.
func (e *LedgerEntry) CreditorUserID() *uuid.UUID {
	if e.RoleOf(e.CreatorID) == RoleCreditor {
		id := e.CreatorID
		return &id
	}
	return e.TargetUserID
}

// CounterpartID returns the other registered party relative to userID, or
// nil when the other side is an unresolved partner.
func (e *LedgerEntry) CounterpartID(userID uuid.UUID) *uuid.UUID {
	if userID == e.CreatorID {
		return e.TargetUserID
	}
	id := e.CreatorID
	return &id
}

// ProgressPercent returns how much of a divisible entry has been settled,
// rounded to a whole percentage. Entries without a positive numeric amount
// report zero.
func (e *LedgerEntry) ProgressPercent() int {
	if e.Money == nil || e.Money.Total.Sign() <= 0 {
		return 0
	}
	settled := e.Money.Total.Sub(e.Money.Remaining)
	pct := settled.Div(e.Money.Total).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

// Confirm records the counterpart's acknowledgment of the entry's terms.
// The creator can never confirm their own entry, whatever the state.
func (e *LedgerEntry) Confirm(actorID uuid.UUID, now time.Time) error {
	if actorID == e.CreatorID {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeCreatorCannotConfirm,
			"creator cannot confirm their own entry",
			domainerror.ErrCreatorCannotConfirm,
		)
	}
	if e.TargetUserID != nil && *e.TargetUserID != actorID {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeNotCounterpart,
			"only the counterpart may confirm this entry",
			domainerror.ErrNotCounterpart,
		)
	}
	if e.Status != StatusPending {
		return domainerror.NewInvalidTransitionError(string(e.Status), string(StatusConfirmed))
	}

	e.Status = StatusConfirmed
	if e.ConfirmedAt == nil {
		confirmedAt := now
		e.ConfirmedAt = &confirmedAt
	}
	return nil
}

// Claim binds a registered user as the counterpart of an entry created
// against an unresolved partner. The binding is permanent.
func (e *LedgerEntry) Claim(userID uuid.UUID) error {
	if userID == e.CreatorID {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeCreatorCannotConfirm,
			"creator cannot claim their own entry",
			domainerror.ErrCreatorCannotConfirm,
		)
	}
	if e.TargetUserID != nil {
		if *e.TargetUserID == userID {
			return nil
		}
		return domainerror.NewLedgerError(
			domainerror.ErrCodeCounterpartBound,
			"entry counterpart is already bound",
			domainerror.ErrCounterpartAlreadyBound,
		)
	}
	id := userID
	e.TargetUserID = &id
	return nil
}

// MarkFulfilled settles the entry completely. Either side may attest.
func (e *LedgerEntry) MarkFulfilled(actorID uuid.UUID, now time.Time) error {
	if !e.IsParticipant(actorID) {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeNotParticipant,
			"actor is not a party to this entry",
			domainerror.ErrNotParticipant,
		)
	}
	if e.Status != StatusConfirmed && e.Status != StatusPartiallyFulfilled {
		return domainerror.NewInvalidTransitionError(string(e.Status), string(StatusFulfilled))
	}

	e.Status = StatusFulfilled
	if e.Money != nil {
		e.Money.Remaining = decimal.Zero
	}
	resolvedAt := now
	e.ResolvedAt = &resolvedAt
	return nil
}

// Forgive releases the debtor from the obligation. Creditor only.
func (e *LedgerEntry) Forgive(actorID uuid.UUID, now time.Time) error {
	if !e.IsParticipant(actorID) || e.RoleOf(actorID) != RoleCreditor {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeNotCreditor,
			"only the creditor may forgive",
			domainerror.ErrNotCreditor,
		)
	}
	if e.Status != StatusConfirmed && e.Status != StatusPartiallyFulfilled {
		return domainerror.NewInvalidTransitionError(string(e.Status), string(StatusForgiven))
	}

	e.Status = StatusForgiven
	resolvedAt := now
	e.ResolvedAt = &resolvedAt
	return nil
}

// ConvertToCharity rededicates the obligation as charity. Creditor only,
// and only from the confirmed state.
func (e *LedgerEntry) ConvertToCharity(actorID uuid.UUID, now time.Time) error {
	if !e.IsParticipant(actorID) || e.RoleOf(actorID) != RoleCreditor {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeNotCreditor,
			"only the creditor may convert to charity",
			domainerror.ErrNotCreditor,
		)
	}
	if e.Status != StatusConfirmed {
		return domainerror.NewInvalidTransitionError(string(e.Status), string(StatusCharity))
	}

	e.Status = StatusCharity
	resolvedAt := now
	e.ResolvedAt = &resolvedAt
	return nil
}

// RecordPayment appends a partial payment and recomputes the outstanding
// balance. Validation happens before any mutation, so a failed call leaves
// the entry untouched.
func (e *LedgerEntry) RecordPayment(amount decimal.Decimal, now time.Time) error {
	if e.Money == nil {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeEntryNotDivisible,
			"entry has no numeric amount",
			domainerror.ErrEntryNotDivisible,
		)
	}
	if e.Status != StatusConfirmed && e.Status != StatusPartiallyFulfilled {
		return domainerror.NewInvalidTransitionError(string(e.Status), string(StatusPartiallyFulfilled))
	}
	if amount.Sign() <= 0 {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"payment amount must be greater than zero",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	if amount.GreaterThan(e.Money.Remaining) {
		return domainerror.NewLedgerError(
			domainerror.ErrCodePaymentExceedsBalance,
			"payment exceeds outstanding balance",
			domainerror.ErrPaymentExceedsBalance,
		)
	}

	e.Money.Payments = append(e.Money.Payments, PaymentRecord{
		ID:     uuid.New(),
		Amount: amount,
		Date:   now,
	})

	remaining := e.Money.Remaining.Sub(amount)
	if remaining.Sign() < 0 {
		remaining = decimal.Zero
	}
	e.Money.Remaining = remaining

	if remaining.IsZero() {
		e.Status = StatusFulfilled
		resolvedAt := now
		e.ResolvedAt = &resolvedAt
	} else {
		e.Status = StatusPartiallyFulfilled
	}
	return nil
}

// RetractResolution reopens a fulfilled or partially fulfilled entry. The
// balance is recomputed from the full payment log rather than undone
// incrementally, which guards against drift. Individual payments are not
// reverted by this operation.
func (e *LedgerEntry) RetractResolution(actorID uuid.UUID, now time.Time) error {
	if !e.IsParticipant(actorID) {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeNotParticipant,
			"actor is not a party to this entry",
			domainerror.ErrNotParticipant,
		)
	}
	if e.Status != StatusFulfilled && e.Status != StatusPartiallyFulfilled {
		return domainerror.NewInvalidTransitionError(string(e.Status), string(StatusConfirmed))
	}

	previous := e.Status
	e.ResolvedAt = nil

	if e.Money == nil {
		e.Status = StatusConfirmed
	} else {
		paid := e.Money.PaidTotal()
		remaining := e.Money.Total.Sub(paid)
		if remaining.Sign() < 0 {
			remaining = decimal.Zero
		}
		e.Money.Remaining = remaining

		switch {
		case remaining.IsZero():
			// Exact payments still cover the whole amount; the entry stays
			// fulfilled and keeps a resolution timestamp.
			e.Status = StatusFulfilled
			resolvedAt := now
			e.ResolvedAt = &resolvedAt
		case paid.Sign() > 0:
			e.Status = StatusPartiallyFulfilled
		default:
			e.Status = StatusConfirmed
		}
	}

	e.Retractions = append(e.Retractions, RetractionRecord{
		ID:             uuid.New(),
		Date:           now,
		PreviousStatus: previous,
		InitiatorID:    actorID,
	})
	return nil
}

// UpdateDetails edits the notes and due date. Creator only; the terms of
// the obligation itself (amount, direction, counterpart) are immutable
// once recorded.
func (e *LedgerEntry) UpdateDetails(actorID uuid.UUID, notes string, dueDate *time.Time) error {
	if actorID != e.CreatorID {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeNotCreator,
			"Only the creator can edit this entry",
			domainerror.ErrNotCreator,
		)
	}
	e.Notes = notes
	e.DueDate = dueDate
	return nil
}
