// Package error defines domain-specific errors for the Amaanah application.
package error

import (
	"errors"
	"fmt"
)

// Ledger domain errors.
var (
	// ErrEntryNotFound is returned when a ledger entry is not found in the system.
	ErrEntryNotFound = errors.New("ledger entry not found")

	// ErrMissingPartnerName is returned when an entry is created without a partner name.
	ErrMissingPartnerName = errors.New("partner name is required")

	// ErrMissingAmount is returned when an entry is created without an amount.
	ErrMissingAmount = errors.New("amount is required")

	// ErrEntryNotDivisible is returned when a partial payment is attempted on an entry without a numeric amount.
	ErrEntryNotDivisible = errors.New("entry has no numeric amount")

	// ErrInvalidPaymentAmount is returned when a payment amount is zero or negative.
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")

	// ErrPaymentExceedsBalance is returned when a payment is larger than the outstanding balance.
	ErrPaymentExceedsBalance = errors.New("payment exceeds outstanding balance")

	// ErrCreatorCannotConfirm is returned when the entry creator tries to confirm their own entry.
	ErrCreatorCannotConfirm = errors.New("creator cannot confirm their own entry")

	// ErrNotCounterpart is returned when someone other than the counterpart tries to confirm.
	ErrNotCounterpart = errors.New("only the counterpart may confirm this entry")

	// ErrNotCreditor is returned when a non-creditor attempts a creditor-only action.
	ErrNotCreditor = errors.New("only the creditor may perform this action")

	// ErrNotParticipant is returned when the actor is neither party to the entry.
	ErrNotParticipant = errors.New("actor is not a party to this entry")

	// ErrNotCreator is returned when a non-creator attempts a creator-only action.
	ErrNotCreator = errors.New("only the creator may perform this action")

	// ErrCounterpartAlreadyBound is returned when claiming an entry whose counterpart is already resolved.
	ErrCounterpartAlreadyBound = errors.New("entry counterpart is already bound")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
// Categories: 01 validation, 02 permission, 03 illegal transition, 04 not found.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingPartnerName    LedgerErrorCode = "LDG-010001"
	ErrCodeMissingAmount         LedgerErrorCode = "LDG-010002"
	ErrCodeEntryNotDivisible     LedgerErrorCode = "LDG-010003"
	ErrCodeInvalidPaymentAmount  LedgerErrorCode = "LDG-010004"
	ErrCodePaymentExceedsBalance LedgerErrorCode = "LDG-010005"
	ErrCodeCounterpartBound      LedgerErrorCode = "LDG-010006"
	ErrCodeMissingEntryFields    LedgerErrorCode = "LDG-010007"

	// Permission errors (02XXXX)
	ErrCodeCreatorCannotConfirm LedgerErrorCode = "LDG-020001"
	ErrCodeNotCounterpart       LedgerErrorCode = "LDG-020002"
	ErrCodeNotCreditor          LedgerErrorCode = "LDG-020003"
	ErrCodeNotParticipant       LedgerErrorCode = "LDG-020004"
	ErrCodeNotCreator           LedgerErrorCode = "LDG-020005"

	// Transition errors (03XXXX)
	ErrCodeIllegalTransition LedgerErrorCode = "LDG-030001"

	// Not found errors (04XXXX)
	ErrCodeEntryNotFound LedgerErrorCode = "LDG-040001"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// InvalidTransitionError is returned when a status change is not legal from
// the entry's current state, regardless of who requested it. It names both
// the current state and the attempted target.
type InvalidTransitionError struct {
	From string
	To   string
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("illegal transition from %q to %q", e.From, e.To)
}

// NewInvalidTransitionError creates a new InvalidTransitionError.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}
