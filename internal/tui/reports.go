// ABOUTME: Loaders that turn backend lists into report tables and the dashboard
// ABOUTME: Each loader runs as a tea.Cmd so the UI stays responsive

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/router"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/sms"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/store"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/dashboard"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/report"
	"golang.org/x/sync/errgroup"
)

type reportLoader func(ctx context.Context) (report.Table, error)

// reportLoaders maps menu paths to table loaders
func (a *App) reportLoaders() map[string]reportLoader {
	return map[string]reportLoader{
		"/sms/contacts":     a.contactsReport,
		"/sms/bundles":      a.bundlesReport,
		"/payments":         a.paymentsReport,
		"/sales":            a.salesReport,
		"/inventory/alerts": a.alertsReport,
		"/expenses":         a.expensesReport,
	}
}

func (a *App) loadReport(path string, load reportLoader) tea.Cmd {
	return func() tea.Msg {
		table, err := load(context.Background())
		return reportLoadedMsg{path: path, table: table, err: err}
	}
}

func (a *App) contactsReport(ctx context.Context) (report.Table, error) {
	// Always show the current groups, not a cached copy
	a.sms.InvalidateCategories()
	cats, err := a.sms.Categories(ctx)
	if err != nil {
		return report.Table{}, err
	}

	t := report.Table{
		Title:   "Contact Groups",
		Headers: []string{"Group", "Contacts"},
		Empty:   "No contact groups yet",
	}
	total := 0
	for _, c := range cats {
		t.Rows = append(t.Rows, []string{c.Name, sms.FormatCount(c.Count)})
		total += c.Count
	}
	if len(cats) > 0 {
		t.Footer = fmt.Sprintf("%s contacts in %d groups", sms.FormatCount(total), len(cats))
	}
	return t, nil
}

func (a *App) bundlesReport(ctx context.Context) (report.Table, error) {
	bundles, err := a.api.SMSBundles(ctx)
	if err != nil {
		return report.Table{}, err
	}

	t := report.Table{
		Title:   "SMS Bundles",
		Headers: []string{"ID", "Bundle", "Credits", "Price"},
		Empty:   "No bundles available",
	}
	for _, b := range bundles {
		t.Rows = append(t.Rows, []string{strconv.Itoa(b.ID), b.Name, sms.FormatCount(b.Credits), sms.FormatCost(b.Price)})
	}
	if len(bundles) > 0 {
		t.Footer = "Buy with: nkwabiz payment buy <id>"
	}
	return t, nil
}

func (a *App) paymentsReport(ctx context.Context) (report.Table, error) {
	history, err := a.api.PaymentHistory(ctx)
	if err != nil {
		return report.Table{}, err
	}

	t := report.Table{
		Title:   "Payments",
		Headers: []string{"Date", "Reference", "Bundle", "Amount", "Status"},
		Empty:   "No payments yet",
	}
	for _, p := range history.Payments {
		t.Rows = append(t.Rows, []string{p.CreatedAt, p.Reference, p.Bundle, sms.FormatCost(p.Amount), p.Status})
	}
	if ref, ok, _ := a.kv.Get(store.KeyPendingPaymentRef); ok && ref != "" {
		t.Footer = "Pending verification: " + ref
	}
	return t, nil
}

func (a *App) salesReport(ctx context.Context) (report.Table, error) {
	sales, err := a.api.SalesHistory(ctx)
	if err != nil {
		return report.Table{}, err
	}

	t := report.Table{
		Title:   "Sales History",
		Headers: []string{"Date", "Product", "Qty", "Amount"},
		Empty:   "No sales recorded yet",
	}
	for _, s := range sales.History {
		t.Rows = append(t.Rows, []string{s.CreatedAt, s.ProductName, strconv.Itoa(s.Quantity), sms.FormatCost(s.TotalAmount)})
	}
	t.Footer = "Total sales: " + sms.FormatCost(sales.TotalSales)
	return t, nil
}

func (a *App) alertsReport(ctx context.Context) (report.Table, error) {
	alerts, err := a.api.StockAlerts(ctx)
	if err != nil {
		return report.Table{}, err
	}

	t := report.Table{
		Title:   "Stock Alerts",
		Headers: []string{"Product", "Remaining", "Threshold"},
		Empty:   "All stock levels are above their thresholds",
	}
	for _, al := range alerts.Alerts {
		t.Rows = append(t.Rows, []string{al.ProductName, strconv.Itoa(al.Remaining), strconv.Itoa(al.Threshold)})
	}
	return t, nil
}

func (a *App) expensesReport(ctx context.Context) (report.Table, error) {
	summary, err := a.api.TrackExpenses(ctx, true)
	if err != nil {
		return report.Table{}, err
	}

	t := report.Table{
		Title:   "Expenses",
		Headers: []string{"Date", "Description", "Category", "Amount"},
		Empty:   "No expenses recorded yet",
	}
	for _, e := range summary.Expenses {
		t.Rows = append(t.Rows, []string{e.Date, e.Description, e.Category, sms.FormatCost(e.Amount)})
	}
	t.Footer = "Total: " + sms.FormatCost(summary.Total)
	return t, nil
}

// loadAccount fetches the profile and, for the inventory service, the sales
// and alert summaries. Only the profile is required.
func (a *App) loadAccount() tea.Cmd {
	service := a.router.Current()
	return func() tea.Msg {
		ctx := context.Background()
		account := &dashboard.Account{
			BusinessName:   a.session.BusinessName(),
			Service:        service,
			SenderIDs:      a.senders.Load(),
			HideLowBalance: store.Dismissed(a.kv, lowBalanceNotice),
		}
		if ref, ok, _ := a.kv.Get(store.KeyPendingPaymentRef); ok {
			account.PendingPayment = ref
		}

		var g errgroup.Group
		g.Go(func() error {
			info, err := a.api.UserInfo(ctx)
			if err != nil {
				return err
			}
			account.Info = info
			return nil
		})
		if service == router.ServiceInventory {
			g.Go(func() error {
				sales, err := a.api.SalesHistory(ctx)
				if err != nil {
					slog.Debug("Sales summary unavailable", "error", err)
					return nil
				}
				account.Sales = sales
				return nil
			})
			g.Go(func() error {
				alerts, err := a.api.StockAlerts(ctx)
				if err != nil {
					slog.Debug("Stock alerts unavailable", "error", err)
					return nil
				}
				account.Alerts = alerts
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return accountLoadedMsg{err: err}
		}

		account.Balance = account.Info.SMSBalance
		if err := a.session.SetBalance(account.Balance); err != nil {
			slog.Warn("Failed to store balance", "error", err)
		}
		if account.Info.BusinessName != "" && account.Info.BusinessName != account.BusinessName {
			if err := a.session.SetBusinessName(account.Info.BusinessName); err != nil {
				slog.Warn("Failed to store business name", "error", err)
			}
		}
		return accountLoadedMsg{account: account}
	}
}
