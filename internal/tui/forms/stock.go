// ABOUTME: Stock record form for the inventory service
// ABOUTME: Parses quantities and prices before handing a request to the app

package forms

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/styles"
)

// StockSubmittedMsg carries a parsed stock record
type StockSubmittedMsg struct {
	Request client.StockRecordRequest
}

// Stock wraps the record-stock form
type Stock struct {
	product   string
	quantity  string
	selling   string
	cost      string
	err       string
	submitted bool
	form      *huh.Form
}

// NewStock creates an empty stock form
func NewStock() *Stock {
	s := &Stock{}
	s.form = s.createForm()
	return s
}

func (s *Stock) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Product").
				Value(&s.product).
				Validate(required("product")),
			huh.NewInput().
				Title("Quantity").
				Placeholder("e.g., 12").
				CharLimit(7).
				Value(&s.quantity).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Selling price (GHS)").
				Value(&s.selling).
				Validate(validateAmount),
			huh.NewInput().
				Title("Cost price (GHS)").
				Description("Optional").
				Value(&s.cost).
				Validate(validateOptionalAmount),
		).Title("Record Stock").
			Description("Record a stock movement or sale"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Request builds the request from the current field values
func (s *Stock) Request() client.StockRecordRequest {
	qty, _ := strconv.Atoi(strings.TrimSpace(s.quantity))
	selling, _ := strconv.ParseFloat(strings.TrimSpace(s.selling), 64)
	cost, _ := strconv.ParseFloat(strings.TrimSpace(s.cost), 64)
	return client.StockRecordRequest{
		ProductName:  strings.TrimSpace(s.product),
		Quantity:     qty,
		SellingPrice: selling,
		CostPrice:    cost,
	}
}

// SetError shows a failed submission and reopens the form with its values
func (s *Stock) SetError(msg string) tea.Cmd {
	s.err = msg
	s.submitted = false
	s.form = s.createForm()
	return s.form.Init()
}

// Init implements tea.Model
func (s *Stock) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *Stock) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return s, func() tea.Msg { return CancelledMsg{} }
	}
	if s.submitted {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		out := StockSubmittedMsg{Request: s.Request()}
		s.err = ""
		s.submitted = true
		return s, func() tea.Msg { return out }
	}

	return s, cmd
}

// View implements tea.Model
func (s *Stock) View() string {
	view := s.form.View()
	if s.err != "" {
		view += "\n" + styles.ErrorText.Render(s.err)
	}
	return view
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return errors.New("must be a positive number")
	}
	return nil
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return errors.New("must be an amount of zero or more")
	}
	return nil
}

func validateOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateAmount(s)
}
