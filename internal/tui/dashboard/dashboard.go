// ABOUTME: Account dashboard showing the business, plan, credits and sender IDs
// ABOUTME: Adds a sales and stock alert summary for the inventory service

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/router"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/sms"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/icons"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/styles"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/widgets"
)

// LowBalanceThreshold is the credit level that raises the low balance notice
const LowBalanceThreshold = 20

// Account is everything the dashboard shows
type Account struct {
	Info           *client.UserInfo
	BusinessName   string
	Service        router.Service
	Balance        int
	SenderIDs      []string
	PendingPayment string

	// Inventory summary, loaded only for the inventory service
	Sales  *client.SalesHistory
	Alerts *client.StockAlerts

	// HideLowBalance is set once the user dismissed the notice
	HideLowBalance bool
}

// Dashboard displays account details
type Dashboard struct {
	account *Account
	width   int
	height  int
}

// New creates a dashboard
func New(account *Account, width, height int) *Dashboard {
	return &Dashboard{
		account: account,
		width:   width,
		height:  height,
	}
}

// Update replaces the displayed account
func (d *Dashboard) Update(account *Account) {
	d.account = account
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// ShowsLowBalance reports whether the low balance notice is visible
func (d *Dashboard) ShowsLowBalance() bool {
	a := d.account
	return a != nil && !a.HideLowBalance && a.Balance < LowBalanceThreshold
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.account == nil {
		return styles.Panel.Width(max(d.width, 20)).Render("Loading account...")
	}
	a := d.account

	var sb strings.Builder

	name := a.BusinessName
	if a.Info != nil && a.Info.BusinessName != "" {
		name = a.Info.BusinessName
	}
	if name == "" {
		name = "Your business"
	}
	sb.WriteString(styles.Title.Render(name))
	sb.WriteString("\n")

	if a.Info != nil {
		owner := strings.TrimSpace(a.Info.FirstName + " " + a.Info.LastName)
		if owner != "" {
			sb.WriteString(styles.Subtitle.Render(owner))
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Email: %s\n", a.Info.Email))
		if a.Info.Phone != "" {
			sb.WriteString(fmt.Sprintf("Phone: %s\n", a.Info.Phone))
		}
		sb.WriteString(fmt.Sprintf("Plan:  %s\n", widgets.PlanBadge(a.Info.Premium)))
	}
	sb.WriteString(fmt.Sprintf("Service: %s\n", a.Service))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%s SMS credits: %s\n", icons.Wallet.String(), widgets.CreditBadge(a.Balance, 0)))
	if d.ShowsLowBalance() {
		sb.WriteString(styles.StatusWarning.Render("  Balance is low. Buy a bundle to keep sending."))
		sb.WriteString("\n")
	}
	if a.PendingPayment != "" {
		sb.WriteString(widgets.StatusText("Payment "+a.PendingPayment+" awaiting verification", widgets.StatusInfo))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%s Sender IDs\n", icons.Sender.String()))
	if len(a.SenderIDs) == 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render("  none used yet"))
		sb.WriteString("\n")
	}
	for _, id := range a.SenderIDs {
		sb.WriteString("  " + id + "\n")
	}

	if a.Service == router.ServiceInventory {
		sb.WriteString("\n")
		sb.WriteString(d.renderInventory())
	}

	return lipgloss.NewStyle().
		Width(max(d.width, 20)).
		Render(sb.String())
}

func (d *Dashboard) renderInventory() string {
	a := d.account
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s Inventory\n", icons.Inventory.String()))
	if a.Sales != nil {
		sb.WriteString(fmt.Sprintf("  Sales recorded: %s\n", sms.FormatCount(len(a.Sales.History))))
		sb.WriteString(fmt.Sprintf("  Total sales:    %s\n", sms.FormatCost(a.Sales.TotalSales)))
	}
	if a.Alerts != nil {
		if n := len(a.Alerts.Alerts); n > 0 {
			sb.WriteString("  " + widgets.StatusText(fmt.Sprintf("%d product(s) running low", n), widgets.StatusWarning))
		} else {
			sb.WriteString("  " + widgets.StatusText("Stock levels OK", widgets.StatusOK))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
