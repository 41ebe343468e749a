// ABOUTME: Bulk SMS compose wizard as a bubbletea model
// ABOUTME: Uses huh forms per step with a live recipient, cost and gate panel

package wizard

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/sms"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/icons"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/styles"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/widgets"
)

// WizardCompleteMsg is sent when the composition passed the gate and the
// user confirmed the send
type WizardCompleteMsg struct {
	Composition sms.Composition
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// Wizard manages the compose flow as a bubbletea model
type Wizard struct {
	comp    sms.Composition
	senders []string
	balance int
	limits  sms.Limits
	form    *huh.Form
	step    int
	width   int
	confirm bool
	done    bool
	err     string
}

// Step names for progress indicator
var stepNames = []string{"Sender", "Recipients", "Message", "Review"}

const maxMessageLength = 918

// New creates a wizard over the known categories. senders are recent sender
// IDs, most recent first; the first one prefills the sender field.
func New(categories []client.Category, senders []string, balance int, limits sms.Limits) *Wizard {
	w := &Wizard{
		comp:    sms.Composition{CategoryInfo: categories},
		senders: senders,
		balance: balance,
		limits:  limits,
		step:    1,
	}
	if len(senders) > 0 {
		w.comp.SenderID = senders[0]
	}
	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	input := huh.NewInput().
		Title("Sender ID").
		Description("3-11 letters or digits, shown as the message sender").
		Placeholder("e.g., MYSHOP").
		CharLimit(11).
		Value(&w.comp.SenderID).
		Validate(validateSenderID)
	if len(w.senders) > 0 {
		input = input.Suggestions(w.senders)
	}

	return huh.NewForm(
		huh.NewGroup(input).
			Title("Step 1: Sender").
			Description("Recent sender IDs are suggested as you type"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	var fields []huh.Field

	if len(w.comp.CategoryInfo) > 0 {
		options := make([]huh.Option[string], 0, len(w.comp.CategoryInfo))
		for _, c := range w.comp.CategoryInfo {
			label := fmt.Sprintf("%s (%s)", c.Name, sms.FormatCount(c.Count))
			options = append(options, huh.NewOption(label, c.Name).Selected(w.comp.Selected(c.Name)))
		}
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Contact groups").
			Description("Space to toggle, Enter to continue").
			Options(options...).
			Value(&w.comp.Categories))
	}

	fields = append(fields, huh.NewText().
		Title("Phone numbers").
		Description("Separate with commas, spaces or new lines").
		Placeholder("0241234567, 233501234567").
		Lines(4).
		Value(&w.comp.RecipientsText).
		Validate(validateNumbers))

	return huh.NewForm(
		huh.NewGroup(fields...).
			Title("Step 2: Recipients").
			Description("Pick contact groups, type numbers, or both"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createStep3Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Message").
				CharLimit(maxMessageLength).
				Lines(6).
				Value(&w.comp.Message).
				Validate(validateMessage),
		).Title("Step 3: Message").
			Description("Every recipient receives the same text"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createStep4Form() *huh.Form {
	w.confirm = true
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Send now?").
				Description(w.summary()).
				Affirmative("Send").
				Negative("Edit").
				Value(&w.confirm).
				Validate(w.validateSend),
		).Title("Step 4: Review"),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}
	if w.done {
		return w, nil
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.err = ""
		w.comp.SenderID = strings.TrimSpace(w.comp.SenderID)
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		w.comp.Message = strings.TrimSpace(w.comp.Message)
		w.step = 4
		w.form = w.createStep4Form()
		return w, w.form.Init()

	case 4:
		if !w.confirm {
			// Edit: start over with the entered values kept
			w.step = 1
			w.form = w.createStep1Form()
			return w, w.form.Init()
		}
		w.done = true
		comp := w.comp
		return w, func() tea.Msg {
			return WizardCompleteMsg{Composition: comp}
		}
	}

	return w, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// Reopen returns to the review step after a send was refused, showing why
func (w *Wizard) Reopen(reason string) tea.Cmd {
	w.done = false
	w.err = reason
	w.step = 4
	w.form = w.createStep4Form()
	return w.form.Init()
}

// Done reports whether the wizard handed off its composition
func (w *Wizard) Done() bool {
	return w.done
}

// SetBalance updates the balance the gate checks against
func (w *Wizard) SetBalance(balance int) {
	w.balance = balance
}

// Step returns the current step, starting at 1
func (w *Wizard) Step() int {
	return w.step
}

// Composition returns the values entered so far
func (w *Wizard) Composition() sms.Composition {
	return w.comp
}

// Verdict runs the send gate over the current values
func (w *Wizard) Verdict() sms.Verdict {
	return sms.Evaluate(w.comp, w.balance, w.limits)
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())

	if w.step > 1 {
		sb.WriteString("\n")
		sb.WriteString(w.renderEstimate())
	}
	if w.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorText.Render(w.err))
	}

	return sb.String()
}

// renderEstimate shows who the message reaches, what it costs and whether
// the gate would let it through
func (w *Wizard) renderEstimate() string {
	v := w.Verdict()
	res := v.Resolution

	label := lipgloss.NewStyle().Foreground(styles.Muted).Width(12)

	var sb strings.Builder
	sb.WriteString(label.Render("Recipients"))
	sb.WriteString(widgets.UsageBar(res.Total, w.limits.MaxRecipients, widgets.DefaultProgressBarConfig()))
	sb.WriteString("\n")
	sb.WriteString(label.Render("Cost"))
	sb.WriteString(styles.ValueStyle.Render(sms.FormatCost(res.EstimatedCost)))
	sb.WriteString("\n")
	sb.WriteString(label.Render("Balance"))
	sb.WriteString(widgets.CreditBadge(w.balance, res.Total))
	sb.WriteString("\n")

	if v.Allowed {
		sb.WriteString(widgets.StatusText("Ready to send", widgets.StatusOK))
	} else {
		sb.WriteString(widgets.StatusText(v.Reason.Error(), widgets.StatusCritical))
	}

	return sb.String()
}

// summary describes the pending send for the review step
func (w *Wizard) summary() string {
	res := w.Verdict().Resolution

	var parts []string
	if n := len(w.comp.Categories); n > 0 {
		parts = append(parts, fmt.Sprintf("%d group(s): %s", n, strings.Join(w.comp.Categories, ", ")))
	}
	if res.ManualCount > 0 {
		parts = append(parts, fmt.Sprintf("%d typed number(s)", res.ManualCount))
	}
	if len(parts) == 0 {
		parts = append(parts, "no recipients")
	}

	return fmt.Sprintf("From %s to %s\n%s recipient(s), about %s",
		w.comp.SenderID, strings.Join(parts, " and "),
		sms.FormatCount(res.Total), sms.FormatCost(res.EstimatedCost))
}

// validateSend blocks the Send button while the gate refuses the send
func (w *Wizard) validateSend(send bool) error {
	if !send {
		return nil
	}
	if v := w.Verdict(); !v.Allowed {
		return v.Reason
	}
	return nil
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := max(w.width-1, 60)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// Progress bar line format: "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))

	title := icons.SMS.String() + " Compose"
	styledTitle := titleStyle.Render(title)
	titleWidth := lipgloss.Width(title)

	// Top border: "┌─ " + title + " " + fill + "┐"
	topFillWidth := max(0, width-5-titleWidth)
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	// Steps line: "│ " + content + padding + " │" = 4 chars overhead
	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	progressLinePadded := "│  " + filledBar + emptyBar + " │"
	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

func validateSenderID(s string) error {
	if !sms.ValidSenderID(strings.TrimSpace(s)) {
		return errors.New("sender ID must be 3-11 letters or digits")
	}
	return nil
}

func validateNumbers(s string) error {
	for _, n := range sms.ParseRecipients(s) {
		if !sms.ValidPhone(n) {
			return fmt.Errorf("%q is not a valid phone number", n)
		}
	}
	return nil
}

func validateMessage(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("message cannot be empty")
	}
	return nil
}
