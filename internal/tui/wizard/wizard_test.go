// ABOUTME: Tests for the compose wizard
// ABOUTME: Validates step flow, gate blocking and the live estimate

package wizard

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/sms"
)

func testCategories() []client.Category {
	return []client.Category{
		{Name: "Customers", Count: 30},
		{Name: "Suppliers", Count: 5},
	}
}

func readyWizard(balance int) *Wizard {
	w := New(testCategories(), []string{"MYSHOP"}, balance, sms.DefaultLimits())
	w.comp.Categories = []string{"Customers"}
	w.comp.RecipientsText = "0241234567"
	w.comp.Message = "Sale today"
	return w
}

func TestWizardPrefillsRecentSender(t *testing.T) {
	w := New(testCategories(), []string{"MYSHOP", "OLDNAME"}, 100, sms.DefaultLimits())
	if w.Composition().SenderID != "MYSHOP" {
		t.Errorf("expected most recent sender, got %q", w.Composition().SenderID)
	}
	if w.Step() != 1 {
		t.Errorf("expected step 1, got %d", w.Step())
	}
}

func TestWizardNoRecentSender(t *testing.T) {
	w := New(nil, nil, 100, sms.DefaultLimits())
	if w.Composition().SenderID != "" {
		t.Errorf("expected empty sender, got %q", w.Composition().SenderID)
	}
}

func TestWizardAdvanceSteps(t *testing.T) {
	w := readyWizard(100)
	w.comp.SenderID = "  MYSHOP "

	w.advanceStep()
	if w.Step() != 2 {
		t.Fatalf("expected step 2, got %d", w.Step())
	}
	if w.comp.SenderID != "MYSHOP" {
		t.Errorf("expected trimmed sender, got %q", w.comp.SenderID)
	}

	w.advanceStep()
	w.advanceStep()
	if w.Step() != 4 {
		t.Fatalf("expected step 4, got %d", w.Step())
	}
	if !w.confirm {
		t.Error("expected review to default to send")
	}
}

func TestWizardCompleteEmitsComposition(t *testing.T) {
	w := readyWizard(100)
	w.step = 4
	w.confirm = true

	_, cmd := w.advanceStep()
	if cmd == nil {
		t.Fatal("expected completion command")
	}
	msg, ok := cmd().(WizardCompleteMsg)
	if !ok {
		t.Fatalf("expected WizardCompleteMsg, got %T", cmd())
	}
	if msg.Composition.SenderID != "MYSHOP" || msg.Composition.Message != "Sale today" {
		t.Errorf("unexpected composition: %+v", msg.Composition)
	}
}

func TestWizardEditRestartsWithValues(t *testing.T) {
	w := readyWizard(100)
	w.step = 4
	w.confirm = false

	w.advanceStep()

	if w.Step() != 1 {
		t.Errorf("expected step 1 after edit, got %d", w.Step())
	}
	if w.comp.Message != "Sale today" || len(w.comp.Categories) != 1 {
		t.Errorf("expected values kept, got %+v", w.comp)
	}
}

func TestWizardEscCancels(t *testing.T) {
	w := readyWizard(100)
	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected command on esc")
	}
	if _, ok := cmd().(WizardCancelledMsg); !ok {
		t.Error("expected WizardCancelledMsg")
	}
}

func TestWizardValidateSend(t *testing.T) {
	w := readyWizard(100)
	if err := w.validateSend(true); err != nil {
		t.Errorf("expected send to be allowed, got %v", err)
	}

	w.SetBalance(10)
	err := w.validateSend(true)
	if !errors.Is(err, sms.ErrInsufficientBalance) {
		t.Errorf("expected insufficient balance, got %v", err)
	}

	if err := w.validateSend(false); err != nil {
		t.Errorf("choosing edit must never be blocked, got %v", err)
	}
}

func TestWizardVerdictCountsBothPools(t *testing.T) {
	w := readyWizard(100)
	v := w.Verdict()
	if v.Resolution.Total != 31 {
		t.Errorf("expected 31 recipients, got %d", v.Resolution.Total)
	}
	if !v.Allowed {
		t.Errorf("expected allowed, got %v", v.Reason)
	}
}

func TestWizardViewShowsEstimateAfterFirstStep(t *testing.T) {
	w := readyWizard(100)
	w.SetWidth(100)

	view := w.View()
	if !strings.Contains(view, "Compose") {
		t.Error("expected progress panel title")
	}
	if strings.Contains(view, "Ready to send") {
		t.Error("expected no estimate on the sender step")
	}

	w.advanceStep()
	view = w.View()
	for _, want := range []string{"Recipients", "31/80", "GHS 0.93", "Ready to send"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q\n%s", want, view)
		}
	}
}

func TestWizardViewShowsGateReason(t *testing.T) {
	w := readyWizard(100)
	w.comp.Message = ""
	w.step = 2
	w.form = w.createStep2Form()

	if !strings.Contains(w.View(), sms.ErrEmptyMessage.Error()) {
		t.Error("expected gate reason in view")
	}
}

func TestWizardSummary(t *testing.T) {
	w := readyWizard(100)
	s := w.summary()
	for _, want := range []string{"MYSHOP", "Customers", "1 typed number(s)", "31 recipient(s)"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected summary to contain %q, got %q", want, s)
		}
	}
}

func TestValidateNumbers(t *testing.T) {
	if err := validateNumbers("0241234567, 233501234567"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validateNumbers(""); err != nil {
		t.Errorf("empty input must be allowed, got %v", err)
	}
	if err := validateNumbers("0241234567 12345"); err == nil {
		t.Error("expected error for invalid number")
	}
}

func TestValidateSenderID(t *testing.T) {
	if err := validateSenderID("MYSHOP"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validateSenderID("AB"); err == nil {
		t.Error("expected error for short sender ID")
	}
}
