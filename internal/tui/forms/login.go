// ABOUTME: Login form shown when no valid session exists
// ABOUTME: Collects credentials and hands them to the app for the login call

package forms

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/styles"
)

// LoginSubmittedMsg carries the entered credentials
type LoginSubmittedMsg struct {
	Email    string
	Password string
}

// CancelledMsg is sent when a form is dismissed with esc
type CancelledMsg struct{}

// Login wraps the credentials form
type Login struct {
	email     string
	password  string
	notice    string
	err       string
	submitted bool
	form      *huh.Form
}

// NewLogin creates a login form; notice is shown above the fields, e.g.
// why the previous session ended
func NewLogin(email, notice string) *Login {
	l := &Login{email: email, notice: notice}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@business.com").
				Value(&l.email).
				Validate(required("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(required("password")),
		).Title("Sign in").
			Description("Log in to your Nkwabiz account"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// SetError shows a failed attempt and resets the form, keeping the email
func (l *Login) SetError(msg string) tea.Cmd {
	l.err = msg
	l.password = ""
	l.submitted = false
	l.form = l.createForm()
	return l.form.Init()
}

// Err returns the last login error shown
func (l *Login) Err() string {
	return l.err
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return l, func() tea.Msg { return CancelledMsg{} }
	}
	if l.submitted {
		return l, nil
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		out := LoginSubmittedMsg{Email: strings.TrimSpace(l.email), Password: l.password}
		l.err = ""
		l.submitted = true
		return l, func() tea.Msg { return out }
	}

	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder
	if l.notice != "" {
		sb.WriteString(styles.StatusWarning.Render(l.notice))
		sb.WriteString("\n\n")
	}
	sb.WriteString(l.form.View())
	if l.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorText.Render(l.err))
	}
	return sb.String()
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}
