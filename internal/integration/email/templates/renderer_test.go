package templates

import (
	"strings"
	"testing"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}
	return renderer
}

func TestNewRenderer(t *testing.T) {
	newTestRenderer(t)
}

func TestRenderer_Render(t *testing.T) {
	renderer := newTestRenderer(t)

	t.Run("due reminder", func(t *testing.T) {
		html, text, err := renderer.Render("due_reminder", DueReminderData{
			UserName:    "Fatima",
			PartnerName: "Omar",
			Amount:      "$250.00",
			DueDate:     "June 22, 2025",
			DueIn:       "in 7 days",
			EntryURL:    "http://localhost:3000/ledger/abc",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"$250.00", "Omar", "in 7 days", "June 22, 2025"} {
			if !strings.Contains(html, want) {
				t.Errorf("expected HTML output to contain %q", want)
			}
			if !strings.Contains(text, want) {
				t.Errorf("expected text output to contain %q", want)
			}
		}
		if !strings.Contains(text, "Due Date Reminder") {
			t.Error("expected the reminder heading in the text output")
		}
	})

	t.Run("act of grace", func(t *testing.T) {
		html, text, err := renderer.Render("act_of_grace", ActOfGraceData{
			UserName:     "Omar",
			CreditorName: "Fatima",
			Amount:       "$250.00",
			EntryURL:     "http://localhost:3000/ledger/abc",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(text, "has forgiven your commitment of $250.00") {
			t.Errorf("unexpected text output: %q", text)
		}
		if !strings.Contains(html, "Fatima") {
			t.Error("expected the creditor name in the HTML output")
		}
	})

	t.Run("verification request", func(t *testing.T) {
		html, text, err := renderer.Render("verification_request", VerificationRequestData{
			UserName:    "Omar",
			CreatorName: "Fatima",
			Amount:      "$250.00",
			VerifyURL:   "http://localhost:3000/ledger/abc/verify",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(text, "asks you to confirm its terms") {
			t.Errorf("unexpected text output: %q", text)
		}
		if !strings.Contains(text, "http://localhost:3000/ledger/abc/verify") {
			t.Error("expected the verification link in the text output")
		}
		if !strings.Contains(html, "Fatima") {
			t.Error("expected the creator name in the HTML output")
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		if _, err := renderer.RenderHTML("weekly_digest", nil); err == nil {
			t.Error("expected an error for an unknown template")
		}
	})
}
