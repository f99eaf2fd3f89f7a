// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/amaanah/backend/internal/domain/error"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestEntry(t *testing.T, creatorID uuid.UUID, targetID *uuid.UUID, amount string, entryType EntryType, direction Direction, requireVerification bool) *LedgerEntry {
	t.Helper()
	entry, err := NewLedgerEntry(creatorID, targetID, "Fatima", amount, entryType, direction, requireVerification, nil, "", nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error creating entry: %v", err)
	}
	return entry
}

func assertLedgerCode(t *testing.T, err error, code domainerror.LedgerErrorCode) {
	t.Helper()
	var ledgerErr *domainerror.LedgerError
	if !errors.As(err, &ledgerErr) {
		t.Fatalf("expected LedgerError, got %v", err)
	}
	if ledgerErr.Code != code {
		t.Errorf("expected code %s, got %s", code, ledgerErr.Code)
	}
}

func assertInvalidTransition(t *testing.T, err error) {
	t.Helper()
	var transitionErr *domainerror.InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}

func TestParseDisplayAmount(t *testing.T) {
	t.Run("extracts numeric value from currency string", func(t *testing.T) {
		value, ok := ParseDisplayAmount("$250")
		if !ok {
			t.Fatal("expected parse to succeed")
		}
		if !value.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected 250, got %s", value)
		}
	})

	t.Run("handles thousands separators and decimals", func(t *testing.T) {
		value, ok := ParseDisplayAmount("1,200.50 NGN")
		if !ok {
			t.Fatal("expected parse to succeed")
		}
		if !value.Equal(decimal.RequireFromString("1200.50")) {
			t.Errorf("expected 1200.50, got %s", value)
		}
	})

	t.Run("rejects non-numeric descriptions", func(t *testing.T) {
		if _, ok := ParseDisplayAmount("Gold Ring"); ok {
			t.Error("expected parse to fail for non-numeric amount")
		}
	})

	t.Run("rejects empty string", func(t *testing.T) {
		if _, ok := ParseDisplayAmount(""); ok {
			t.Error("expected parse to fail for empty string")
		}
	})

	t.Run("rejects negative values", func(t *testing.T) {
		if _, ok := ParseDisplayAmount("-50"); ok {
			t.Error("expected parse to fail for negative amount")
		}
	})
}

func TestNewLedgerEntry(t *testing.T) {
	creatorID := uuid.New()

	t.Run("starts pending when verification is required", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, nil, "$100", EntryTypeDebt, DirectionOwedToMe, true)

		if entry.Status != StatusPending {
			t.Errorf("expected status %s, got %s", StatusPending, entry.Status)
		}
		if entry.ConfirmedAt != nil {
			t.Error("expected ConfirmedAt to be nil for pending entry")
		}
	})

	t.Run("born confirmed when verification is waived", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, nil, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if entry.Status != StatusConfirmed {
			t.Errorf("expected status %s, got %s", StatusConfirmed, entry.Status)
		}
		if entry.ConfirmedAt == nil {
			t.Fatal("expected ConfirmedAt to be set")
		}
		if !entry.ConfirmedAt.Equal(testNow) {
			t.Errorf("expected ConfirmedAt %s, got %s", testNow, entry.ConfirmedAt)
		}
	})

	t.Run("parses numeric amount for debts", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, nil, "$250", EntryTypeDebt, DirectionOwedToMe, false)

		if entry.Money == nil {
			t.Fatal("expected divisible money state for a numeric debt")
		}
		if !entry.Money.Total.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected total 250, got %s", entry.Money.Total)
		}
		if !entry.Money.Remaining.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected remaining 250, got %s", entry.Money.Remaining)
		}
	})

	t.Run("trusts stay atomic without a valuation", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, nil, "$250", EntryTypeAmanah, DirectionOwedToMe, false)

		if entry.Money != nil {
			t.Error("expected trust entry to be indivisible")
		}
	})

	t.Run("caller valuation makes a trust divisible", func(t *testing.T) {
		valuation := decimal.NewFromInt(500)
		entry, err := NewLedgerEntry(creatorID, nil, "Fatima", "Gold Ring", EntryTypeAmanah, DirectionOwedToMe, false, nil, "", &valuation, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if entry.Money == nil {
			t.Fatal("expected valuation to make entry divisible")
		}
		if !entry.Money.Total.Equal(valuation) {
			t.Errorf("expected total %s, got %s", valuation, entry.Money.Total)
		}
	})

	t.Run("non-numeric debt stays atomic", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, nil, "A favor", EntryTypeDebt, DirectionOwedToMe, false)

		if entry.Money != nil {
			t.Error("expected non-numeric debt to be indivisible")
		}
	})

	t.Run("rejects missing partner name", func(t *testing.T) {
		_, err := NewLedgerEntry(creatorID, nil, "", "$100", EntryTypeDebt, DirectionOwedToMe, false, nil, "", nil, testNow)
		if err == nil {
			t.Fatal("expected error for missing partner name")
		}
		assertLedgerCode(t, err, domainerror.ErrCodeMissingPartnerName)
	})

	t.Run("rejects missing amount", func(t *testing.T) {
		_, err := NewLedgerEntry(creatorID, nil, "Fatima", "", EntryTypeDebt, DirectionOwedToMe, false, nil, "", nil, testNow)
		if err == nil {
			t.Fatal("expected error for missing amount")
		}
		assertLedgerCode(t, err, domainerror.ErrCodeMissingAmount)
	})
}

func TestLedgerEntry_Roles(t *testing.T) {
	creatorID := uuid.New()
	targetID := uuid.New()

	t.Run("creator is creditor when owed to me", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if got := entry.RoleOf(creatorID); got != RoleCreditor {
			t.Errorf("expected creator role %s, got %s", RoleCreditor, got)
		}
		if got := entry.RoleOf(targetID); got != RoleDebtor {
			t.Errorf("expected counterpart role %s, got %s", RoleDebtor, got)
		}
	})

	t.Run("creator is debtor when I owe", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionIOwe, false)

		if got := entry.RoleOf(creatorID); got != RoleDebtor {
			t.Errorf("expected creator role %s, got %s", RoleDebtor, got)
		}
		if got := entry.RoleOf(targetID); got != RoleCreditor {
			t.Errorf("expected counterpart role %s, got %s", RoleCreditor, got)
		}
	})

	t.Run("debtor user resolves from direction", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		debtor := entry.DebtorUserID()
		if debtor == nil || *debtor != targetID {
			t.Errorf("expected debtor %s, got %v", targetID, debtor)
		}
		creditor := entry.CreditorUserID()
		if creditor == nil || *creditor != creatorID {
			t.Errorf("expected creditor %s, got %v", creatorID, creditor)
		}
	})

	t.Run("debtor is nil for unresolved partner owing the creator", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, nil, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if entry.DebtorUserID() != nil {
			t.Error("expected nil debtor for unresolved partner")
		}
	})

	t.Run("counterpart lookup flips per viewer", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if got := entry.CounterpartID(creatorID); got == nil || *got != targetID {
			t.Errorf("expected counterpart %s, got %v", targetID, got)
		}
		if got := entry.CounterpartID(targetID); got == nil || *got != creatorID {
			t.Errorf("expected counterpart %s, got %v", creatorID, got)
		}
	})

	t.Run("participant check covers both parties only", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if !entry.IsParticipant(creatorID) || !entry.IsParticipant(targetID) {
			t.Error("expected both parties to be participants")
		}
		if entry.IsParticipant(uuid.New()) {
			t.Error("expected stranger not to be a participant")
		}
	})
}

func TestLedgerEntry_Confirm(t *testing.T) {
	creatorID := uuid.New()
	targetID := uuid.New()

	t.Run("counterpart confirms a pending entry", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, true)

		if err := entry.Confirm(targetID, testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Status != StatusConfirmed {
			t.Errorf("expected status %s, got %s", StatusConfirmed, entry.Status)
		}
		if entry.ConfirmedAt == nil {
			t.Error("expected ConfirmedAt to be set")
		}
	})

	t.Run("creator can never confirm their own entry", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, true)

		err := entry.Confirm(creatorID, testNow)
		if err == nil {
			t.Fatal("expected error")
		}
		assertLedgerCode(t, err, domainerror.ErrCodeCreatorCannotConfirm)
		if entry.Status != StatusPending {
			t.Errorf("expected status unchanged, got %s", entry.Status)
		}
	})

	t.Run("creator rejection takes precedence over state", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		err := entry.Confirm(creatorID, testNow)
		if err == nil {
			t.Fatal("expected error")
		}
		// Permission error, not a transition error, even though the entry
		// is already confirmed.
		assertLedgerCode(t, err, domainerror.ErrCodeCreatorCannotConfirm)
	})

	t.Run("stranger cannot confirm a bound entry", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, true)

		err := entry.Confirm(uuid.New(), testNow)
		if err == nil {
			t.Fatal("expected error")
		}
		assertLedgerCode(t, err, domainerror.ErrCodeNotCounterpart)
	})

	t.Run("confirming twice is an illegal transition", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, true)

		if err := entry.Confirm(targetID, testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := entry.Confirm(targetID, testNow.Add(time.Hour))
		if err == nil {
			t.Fatal("expected error")
		}
		assertInvalidTransition(t, err)
	})
}

func TestLedgerEntry_Claim(t *testing.T) {
	creatorID := uuid.New()

	t.Run("binds a registered user as counterpart", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, nil, "$100", EntryTypeDebt, DirectionOwedToMe, true)
		claimerID := uuid.New()

		if err := entry.Claim(claimerID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.TargetUserID == nil || *entry.TargetUserID != claimerID {
			t.Errorf("expected counterpart %s, got %v", claimerID, entry.TargetUserID)
		}
	})

	t.Run("claiming again with the same user is a no-op", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, nil, "$100", EntryTypeDebt, DirectionOwedToMe, true)
		claimerID := uuid.New()

		if err := entry.Claim(claimerID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := entry.Claim(claimerID); err != nil {
			t.Errorf("expected idempotent claim, got %v", err)
		}
	})

	t.Run("rejects a second user once bound", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, nil, "$100", EntryTypeDebt, DirectionOwedToMe, true)

		if err := entry.Claim(uuid.New()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := entry.Claim(uuid.New())
		if err == nil {
			t.Fatal("expected error")
		}
		assertLedgerCode(t, err, domainerror.ErrCodeCounterpartBound)
	})

	t.Run("creator cannot claim their own entry", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, nil, "$100", EntryTypeDebt, DirectionOwedToMe, true)

		err := entry.Claim(creatorID)
		if err == nil {
			t.Fatal("expected error")
		}
		assertLedgerCode(t, err, domainerror.ErrCodeCreatorCannotConfirm)
	})
}

func TestLedgerEntry_RecordPayment(t *testing.T) {
	creatorID := uuid.New()
	targetID := uuid.New()

	t.Run("partial payment moves entry to partially fulfilled", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if err := entry.RecordPayment(decimal.NewFromInt(40), testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Status != StatusPartiallyFulfilled {
			t.Errorf("expected status %s, got %s", StatusPartiallyFulfilled, entry.Status)
		}
		if !entry.Money.Remaining.Equal(decimal.NewFromInt(60)) {
			t.Errorf("expected remaining 60, got %s", entry.Money.Remaining)
		}
		if len(entry.Money.Payments) != 1 {
			t.Fatalf("expected 1 payment record, got %d", len(entry.Money.Payments))
		}
		if entry.ResolvedAt != nil {
			t.Error("expected no resolution timestamp for partial payment")
		}
	})

	t.Run("payment covering the remainder fulfills the entry", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if err := entry.RecordPayment(decimal.NewFromInt(40), testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := entry.RecordPayment(decimal.NewFromInt(60), testNow.Add(time.Hour)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Status != StatusFulfilled {
			t.Errorf("expected status %s, got %s", StatusFulfilled, entry.Status)
		}
		if !entry.Money.Remaining.IsZero() {
			t.Errorf("expected remaining zero, got %s", entry.Money.Remaining)
		}
		if entry.ResolvedAt == nil {
			t.Error("expected resolution timestamp")
		}
	})

	t.Run("overpayment is rejected and leaves entry untouched", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		err := entry.RecordPayment(decimal.NewFromInt(150), testNow)
		if err == nil {
			t.Fatal("expected error")
		}
		assertLedgerCode(t, err, domainerror.ErrCodePaymentExceedsBalance)
		if entry.Status != StatusConfirmed {
			t.Errorf("expected status unchanged, got %s", entry.Status)
		}
		if !entry.Money.Remaining.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected remaining unchanged, got %s", entry.Money.Remaining)
		}
		if len(entry.Money.Payments) != 0 {
			t.Errorf("expected no payment record, got %d", len(entry.Money.Payments))
		}
	})

	t.Run("zero and negative amounts are rejected", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
			err := entry.RecordPayment(amount, testNow)
			if err == nil {
				t.Fatalf("expected error for amount %s", amount)
			}
			assertLedgerCode(t, err, domainerror.ErrCodeInvalidPaymentAmount)
		}
	})

	t.Run("indivisible entries reject payments", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "Gold Ring", EntryTypeAmanah, DirectionOwedToMe, false)

		err := entry.RecordPayment(decimal.NewFromInt(10), testNow)
		if err == nil {
			t.Fatal("expected error")
		}
		assertLedgerCode(t, err, domainerror.ErrCodeEntryNotDivisible)
	})

	t.Run("pending entries reject payments", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, true)

		err := entry.RecordPayment(decimal.NewFromInt(10), testNow)
		if err == nil {
			t.Fatal("expected error")
		}
		assertInvalidTransition(t, err)
	})
}

func TestLedgerEntry_MarkFulfilled(t *testing.T) {
	creatorID := uuid.New()
	targetID := uuid.New()

	t.Run("either side may attest fulfillment", func(t *testing.T) {
		for _, actorID := range []uuid.UUID{creatorID, targetID} {
			entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

			if err := entry.MarkFulfilled(actorID, testNow); err != nil {
				t.Fatalf("actor %s: unexpected error: %v", actorID, err)
			}
			if entry.Status != StatusFulfilled {
				t.Errorf("expected status %s, got %s", StatusFulfilled, entry.Status)
			}
		}
	})

	t.Run("zeroes the outstanding balance", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if err := entry.RecordPayment(decimal.NewFromInt(30), testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := entry.MarkFulfilled(creatorID, testNow.Add(time.Hour)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !entry.Money.Remaining.IsZero() {
			t.Errorf("expected remaining zero, got %s", entry.Money.Remaining)
		}
		if entry.ResolvedAt == nil {
			t.Error("expected resolution timestamp")
		}
	})

	t.Run("strangers cannot attest", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		err := entry.MarkFulfilled(uuid.New(), testNow)
		if err == nil {
			t.Fatal("expected error")
		}
		assertLedgerCode(t, err, domainerror.ErrCodeNotParticipant)
	})

	t.Run("pending entries cannot be fulfilled", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, true)

		err := entry.MarkFulfilled(creatorID, testNow)
		if err == nil {
			t.Fatal("expected error")
		}
		assertInvalidTransition(t, err)
	})
}

func TestLedgerEntry_Forgive(t *testing.T) {
	creatorID := uuid.New()
	targetID := uuid.New()

	t.Run("creditor forgives a confirmed entry", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if err := entry.Forgive(creatorID, testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Status != StatusForgiven {
			t.Errorf("expected status %s, got %s", StatusForgiven, entry.Status)
		}
		if entry.ResolvedAt == nil {
			t.Error("expected resolution timestamp")
		}
	})

	t.Run("counterpart creditor may forgive when creator owes", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionIOwe, false)

		if err := entry.Forgive(targetID, testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Status != StatusForgiven {
			t.Errorf("expected status %s, got %s", StatusForgiven, entry.Status)
		}
	})

	t.Run("debtor cannot forgive their own debt", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionIOwe, false)

		err := entry.Forgive(creatorID, testNow)
		if err == nil {
			t.Fatal("expected error")
		}
		assertLedgerCode(t, err, domainerror.ErrCodeNotCreditor)
	})

	t.Run("forgiveness works from partially fulfilled", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if err := entry.RecordPayment(decimal.NewFromInt(30), testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := entry.Forgive(creatorID, testNow.Add(time.Hour)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Status != StatusForgiven {
			t.Errorf("expected status %s, got %s", StatusForgiven, entry.Status)
		}
	})

	t.Run("forgiven is terminal", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if err := entry.Forgive(creatorID, testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := entry.RetractResolution(creatorID, testNow.Add(time.Hour)); err == nil {
			t.Error("expected retraction of forgiven entry to fail")
		}
		if err := entry.RecordPayment(decimal.NewFromInt(10), testNow.Add(time.Hour)); err == nil {
			t.Error("expected payment on forgiven entry to fail")
		}
	})
}

func TestLedgerEntry_ConvertToCharity(t *testing.T) {
	creatorID := uuid.New()
	targetID := uuid.New()

	t.Run("creditor converts a confirmed entry", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if err := entry.ConvertToCharity(creatorID, testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Status != StatusCharity {
			t.Errorf("expected status %s, got %s", StatusCharity, entry.Status)
		}
		if entry.ResolvedAt == nil {
			t.Error("expected resolution timestamp")
		}
	})

	t.Run("debtor cannot convert", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		err := entry.ConvertToCharity(targetID, testNow)
		if err == nil {
			t.Fatal("expected error")
		}
		assertLedgerCode(t, err, domainerror.ErrCodeNotCreditor)
	})

	t.Run("partially fulfilled entries cannot be converted", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if err := entry.RecordPayment(decimal.NewFromInt(30), testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := entry.ConvertToCharity(creatorID, testNow.Add(time.Hour))
		if err == nil {
			t.Fatal("expected error")
		}
		assertInvalidTransition(t, err)
	})
}

func TestLedgerEntry_RetractResolution(t *testing.T) {
	creatorID := uuid.New()
	targetID := uuid.New()

	t.Run("retracting an attested fulfillment with partial payments reopens as partially fulfilled", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if err := entry.RecordPayment(decimal.NewFromInt(30), testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := entry.MarkFulfilled(creatorID, testNow.Add(time.Hour)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := entry.RetractResolution(targetID, testNow.Add(2*time.Hour)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if entry.Status != StatusPartiallyFulfilled {
			t.Errorf("expected status %s, got %s", StatusPartiallyFulfilled, entry.Status)
		}
		if !entry.Money.Remaining.Equal(decimal.NewFromInt(70)) {
			t.Errorf("expected remaining recomputed to 70, got %s", entry.Money.Remaining)
		}
		if entry.ResolvedAt != nil {
			t.Error("expected resolution timestamp cleared")
		}
		if len(entry.Retractions) != 1 {
			t.Fatalf("expected 1 retraction record, got %d", len(entry.Retractions))
		}
		if entry.Retractions[0].PreviousStatus != StatusFulfilled {
			t.Errorf("expected previous status %s, got %s", StatusFulfilled, entry.Retractions[0].PreviousStatus)
		}
		if entry.Retractions[0].InitiatorID != targetID {
			t.Errorf("expected initiator %s, got %s", targetID, entry.Retractions[0].InitiatorID)
		}
	})

	t.Run("retraction with no payments reopens as confirmed", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if err := entry.MarkFulfilled(creatorID, testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := entry.RetractResolution(creatorID, testNow.Add(time.Hour)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if entry.Status != StatusConfirmed {
			t.Errorf("expected status %s, got %s", StatusConfirmed, entry.Status)
		}
		if !entry.Money.Remaining.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected remaining restored to 100, got %s", entry.Money.Remaining)
		}
	})

	t.Run("retraction of an indivisible entry reopens as confirmed", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "Gold Ring", EntryTypeAmanah, DirectionOwedToMe, false)

		if err := entry.MarkFulfilled(creatorID, testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := entry.RetractResolution(creatorID, testNow.Add(time.Hour)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Status != StatusConfirmed {
			t.Errorf("expected status %s, got %s", StatusConfirmed, entry.Status)
		}
	})

	t.Run("payments covering the total keep the entry fulfilled", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if err := entry.RecordPayment(decimal.NewFromInt(100), testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		retractedAt := testNow.Add(time.Hour)
		if err := entry.RetractResolution(creatorID, retractedAt); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if entry.Status != StatusFulfilled {
			t.Errorf("expected status to stay %s, got %s", StatusFulfilled, entry.Status)
		}
		if entry.ResolvedAt == nil {
			t.Fatal("expected resolution timestamp re-stamped")
		}
		if !entry.ResolvedAt.Equal(retractedAt) {
			t.Errorf("expected ResolvedAt %s, got %s", retractedAt, entry.ResolvedAt)
		}
		if len(entry.Retractions) != 1 {
			t.Errorf("expected retraction recorded, got %d", len(entry.Retractions))
		}
	})

	t.Run("strangers cannot retract", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		if err := entry.MarkFulfilled(creatorID, testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := entry.RetractResolution(uuid.New(), testNow.Add(time.Hour))
		if err == nil {
			t.Fatal("expected error")
		}
		assertLedgerCode(t, err, domainerror.ErrCodeNotParticipant)
	})

	t.Run("confirmed entries cannot be retracted", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		err := entry.RetractResolution(creatorID, testNow)
		if err == nil {
			t.Fatal("expected error")
		}
		assertInvalidTransition(t, err)
	})
}

func TestLedgerEntry_UpdateDetails(t *testing.T) {
	creatorID := uuid.New()
	targetID := uuid.New()

	t.Run("creator edits notes and due date", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)
		dueDate := testNow.AddDate(0, 1, 0)

		if err := entry.UpdateDetails(creatorID, "updated notes", &dueDate); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Notes != "updated notes" {
			t.Errorf("expected notes updated, got %q", entry.Notes)
		}
		if entry.DueDate == nil || !entry.DueDate.Equal(dueDate) {
			t.Errorf("expected due date %s, got %v", dueDate, entry.DueDate)
		}
	})

	t.Run("counterpart cannot edit", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$100", EntryTypeDebt, DirectionOwedToMe, false)

		err := entry.UpdateDetails(targetID, "sneaky edit", nil)
		if err == nil {
			t.Fatal("expected error")
		}
		assertLedgerCode(t, err, domainerror.ErrCodeNotCreator)
	})
}

func TestLedgerEntry_ProgressPercent(t *testing.T) {
	creatorID := uuid.New()
	targetID := uuid.New()

	t.Run("reports settled share of divisible entries", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "$200", EntryTypeDebt, DirectionOwedToMe, false)

		if got := entry.ProgressPercent(); got != 0 {
			t.Errorf("expected 0%%, got %d", got)
		}
		if err := entry.RecordPayment(decimal.NewFromInt(50), testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := entry.ProgressPercent(); got != 25 {
			t.Errorf("expected 25%%, got %d", got)
		}
		if err := entry.MarkFulfilled(creatorID, testNow.Add(time.Hour)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := entry.ProgressPercent(); got != 100 {
			t.Errorf("expected 100%%, got %d", got)
		}
	})

	t.Run("indivisible entries report zero", func(t *testing.T) {
		entry := newTestEntry(t, creatorID, &targetID, "Gold Ring", EntryTypeAmanah, DirectionOwedToMe, false)

		if got := entry.ProgressPercent(); got != 0 {
			t.Errorf("expected 0%%, got %d", got)
		}
	})
}
