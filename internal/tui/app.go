// ABOUTME: Root bubbletea model for the console TUI
// ABOUTME: Routes between login, service selection, menus and service screens

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/router"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/senderids"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/session"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/sms"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/store"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/dashboard"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/forms"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/history"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/icons"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/ledger"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/menu"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/report"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/styles"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenServices
	ScreenMenu
	ScreenCompose
	ScreenLedger
	ScreenHistory
	ScreenReport
	ScreenDashboard
	ScreenStock
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum frame width
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// Menu values that are actions rather than paths
const (
	actionSwitchService = "switch-service"
	actionLogout        = "logout"
)

// lowBalanceNotice identifies the dismissable low balance notice
const lowBalanceNotice = "low-balance"

const expiredNotice = "Your session has expired. Please log in again."

// API is the backend surface the TUI uses directly; SMS sends go through
// the sms workflow
type API interface {
	Login(ctx context.Context, in *client.LoginRequest) (*client.LoginResponse, error)
	UserInfo(ctx context.Context) (*client.UserInfo, error)
	SMSHistory(ctx context.Context, page, limit int) (*client.SMSHistoryPage, error)
	SMSBundles(ctx context.Context) ([]client.Bundle, error)
	PaymentHistory(ctx context.Context) (*client.PaymentHistory, error)
	SalesHistory(ctx context.Context) (*client.SalesHistory, error)
	StockAlerts(ctx context.Context) (*client.StockAlerts, error)
	TrackExpenses(ctx context.Context, all bool) (*client.ExpenseSummary, error)
	RecordStock(ctx context.Context, in *client.StockRecordRequest) (*client.MessageResponse, error)
}

// Deps are the long-lived components the TUI drives
type Deps struct {
	API     API
	Session *session.Session
	Router  *router.Router
	SMS     *sms.Workflow
	Senders *senderids.List
	KV      store.KV
}

// sessionEventMsg forwards a session transition into the update loop
type sessionEventMsg struct {
	event session.Event
}

// loginResultMsg is sent when the login call returns
type loginResultMsg struct {
	resp *client.LoginResponse
	err  error
}

// categoriesLoadedMsg is sent when contact groups are loaded for compose
type categoriesLoadedMsg struct {
	categories []client.Category
	err        error
}

// sendDoneMsg is sent when a dispatch finishes
type sendDoneMsg struct {
	result *sms.SendResult
	err    error
}

// reportLoadedMsg carries a table for the report screen
type reportLoadedMsg struct {
	path  string
	table report.Table
	err   error
}

// accountLoadedMsg carries the dashboard data
type accountLoadedMsg struct {
	account *dashboard.Account
	err     error
}

// stockSavedMsg is sent when a stock record call returns
type stockSavedMsg struct {
	resp *client.MessageResponse
	err  error
}

// balanceMsg is sent when the SMS balance has been refreshed
type balanceMsg struct {
	balance int
	err     error
}

// App is the root model for the TUI
type App struct {
	api     API
	session *session.Session
	router  *router.Router
	sms     *sms.Workflow
	senders *senderids.List
	kv      store.KV

	screen     Screen
	width      int
	height     int
	err        error
	notice     string
	loading    string
	spinner    spinner.Model
	lastUpdate time.Time
	lastEmail  string
	reportPath string
	lastResult *sms.SendResult

	// Child models
	login     *forms.Login
	stock     *forms.Stock
	services  *menu.Menu
	menu      *menu.Menu
	wizard    *wizard.Wizard
	ledger    *ledger.Ledger
	history   *history.Model
	report    *report.Model
	dashboard *dashboard.Dashboard
}

// New creates the TUI application. A valid stored session skips the login
// screen and restores the last active service.
func New(deps Deps) *App {
	a := &App{
		api:     deps.API,
		session: deps.Session,
		router:  deps.Router,
		sms:     deps.SMS,
		senders: deps.Senders,
		kv:      deps.KV,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	a.spinner.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	if a.session.State() != session.StateAuthenticated {
		a.screen = ScreenLogin
		a.login = forms.NewLogin("", "")
		return a
	}
	a.landing()
	return a
}

// Screen returns the current screen
func (a *App) Screen() Screen {
	return a.screen
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenLogin {
		return a.login.Init()
	}
	return a.refreshBalance()
}

// landing shows the service menu for the restored service, or the service
// picker when none was chosen before
func (a *App) landing() {
	if a.router.Restore() == router.ServiceNone {
		a.showServices()
		return
	}
	a.showMenu()
}

func (a *App) showServices() {
	a.services = menu.New("Choose a service", []menu.Item{
		{Key: "s", Label: icons.SMS.String() + " Bulk SMS", Description: "Send messages to contact groups and numbers", Value: string(router.ServiceSMS)},
		{Key: "i", Label: icons.Inventory.String() + " Inventory", Description: "Track stock, sales and expenses", Value: string(router.ServiceInventory)},
	})
	a.screen = ScreenServices
}

func (a *App) showMenu() {
	service := a.router.Current()
	var items []menu.Item
	for _, it := range router.MenuFor(service) {
		items = append(items, menu.Item{Key: it.Key, Label: it.Label, Value: it.Path})
	}
	items = append(items,
		menu.Item{Key: "x", Label: "Switch service", Value: actionSwitchService},
		menu.Item{Key: "o", Label: "Log out", Value: actionLogout},
	)

	title := "Bulk SMS"
	if service == router.ServiceInventory {
		title = "Inventory"
	}
	a.menu = menu.New(title, items)
	a.screen = ScreenMenu
}

// toLogin drops every screen and shows the login form
func (a *App) toLogin(notice string) tea.Cmd {
	a.clearScreens()
	a.err = nil
	a.loading = ""
	a.screen = ScreenLogin
	a.login = forms.NewLogin(a.lastEmail, notice)
	return a.login.Init()
}

func (a *App) clearScreens() {
	a.stock = nil
	a.wizard = nil
	a.ledger = nil
	a.history = nil
	a.report = nil
	a.dashboard = nil
	a.lastResult = nil
}

// backToMenu returns to the service menu, keeping any notice
func (a *App) backToMenu() (tea.Model, tea.Cmd) {
	a.clearScreens()
	a.err = nil
	a.showMenu()
	return a, nil
}

// fail records err, switching to the login screen for session errors
func (a *App) fail(err error) tea.Cmd {
	a.loading = ""
	if client.IsSessionError(err) {
		return a.toLogin(expiredNotice)
	}
	a.err = err
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeChildren()
		if a.wizard != nil {
			return a.updateWizard(tea.WindowSizeMsg{Width: a.contentWidth(), Height: msg.Height})
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.loading != "" {
			return a, nil
		}
		return a.handleKey(msg)

	case sessionEventMsg:
		if msg.event.State == session.StateUnauthenticated && a.screen != ScreenLogin {
			notice := ""
			if msg.event.Reason == session.ReasonExpired || msg.event.Reason == session.ReasonRevoked {
				notice = expiredNotice
			}
			return a, a.toLogin(notice)
		}
		return a, nil

	case forms.LoginSubmittedMsg:
		a.lastEmail = msg.Email
		a.loading = "Signing in"
		return a, tea.Batch(a.doLogin(msg), a.spinner.Tick)

	case loginResultMsg:
		return a.handleLogin(msg)

	case forms.CancelledMsg:
		if a.screen == ScreenLogin {
			return a, tea.Quit
		}
		return a.backToMenu()

	case menu.SelectedMsg:
		return a.handleSelected(msg.Item)

	case menu.CancelledMsg:
		if a.screen == ScreenServices && a.router.Current() != router.ServiceNone {
			a.showMenu()
			return a, nil
		}
		return a, tea.Quit

	case categoriesLoadedMsg:
		a.loading = ""
		if msg.err != nil {
			return a, a.fail(msg.err)
		}
		a.wizard = wizard.New(msg.categories, a.senders.Load(), a.session.Balance(), a.sms.Limits())
		a.wizard.SetWidth(a.contentWidth())
		a.screen = ScreenCompose
		return a, a.wizard.Init()

	case wizard.WizardCompleteMsg:
		a.loading = "Sending"
		return a, tea.Batch(a.send(msg.Composition), a.spinner.Tick)

	case wizard.WizardCancelledMsg:
		return a.backToMenu()

	case sendDoneMsg:
		return a.handleSendDone(msg)

	case reportLoadedMsg:
		a.loading = ""
		if msg.err != nil {
			return a, a.fail(msg.err)
		}
		a.err = nil
		a.reportPath = msg.path
		a.report = report.New(msg.table)
		a.report.SetSize(a.contentWidth(), a.contentHeight())
		a.lastUpdate = time.Now()
		a.screen = ScreenReport
		return a, nil

	case accountLoadedMsg:
		a.loading = ""
		if msg.err != nil {
			return a, a.fail(msg.err)
		}
		a.err = nil
		a.dashboard = dashboard.New(msg.account, a.dashboardWidth(), a.contentHeight())
		a.lastUpdate = time.Now()
		a.screen = ScreenDashboard
		return a, nil

	case forms.StockSubmittedMsg:
		a.loading = "Saving"
		return a, tea.Batch(a.recordStock(msg.Request), a.spinner.Tick)

	case stockSavedMsg:
		a.loading = ""
		if msg.err != nil {
			if client.IsSessionError(msg.err) {
				return a, a.toLogin(expiredNotice)
			}
			if a.stock != nil {
				return a, a.stock.SetError(msg.err.Error())
			}
			a.err = msg.err
			return a, nil
		}
		a.notice = "Stock recorded"
		if msg.resp != nil && msg.resp.Message != "" {
			a.notice = msg.resp.Message
		}
		return a.backToMenu()

	case balanceMsg:
		if msg.err != nil {
			slog.Debug("Balance refresh failed", "error", msg.err)
			if client.IsSessionError(msg.err) && a.screen != ScreenLogin {
				return a, a.toLogin(expiredNotice)
			}
		}
		return a, nil

	case spinner.TickMsg:
		if a.loading != "" {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		if a.screen == ScreenHistory && a.history != nil {
			return a.updateHistory(msg)
		}
		return a, nil

	case history.PageLoadedMsg:
		if a.history == nil {
			return a, nil
		}
		if msg.Err != nil && client.IsSessionError(msg.Err) {
			return a, a.toLogin(expiredNotice)
		}
		return a.updateHistory(msg)
	}

	// Forward anything else to the active form (needed for huh form internals)
	if a.loading != "" {
		return a, nil
	}
	switch a.screen {
	case ScreenLogin:
		return a.updateLogin(msg)
	case ScreenCompose:
		return a.updateWizard(msg)
	case ScreenStock:
		return a.updateStock(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenLogin:
		return a.updateLogin(msg)
	case ScreenCompose:
		return a.updateWizard(msg)
	case ScreenStock:
		return a.updateStock(msg)
	case ScreenServices:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		model, cmd := a.services.Update(msg)
		a.services = model.(*menu.Menu)
		return a, cmd
	case ScreenMenu:
		if msg.String() == "q" {
			return a, tea.Quit
		}
		a.notice = ""
		a.err = nil
		model, cmd := a.menu.Update(msg)
		a.menu = model.(*menu.Menu)
		return a, cmd
	case ScreenLedger:
		return a.updateLedger(msg)
	case ScreenHistory:
		switch msg.String() {
		case "b", "esc":
			return a.backToMenu()
		case "q":
			return a, tea.Quit
		}
		return a.updateHistory(msg)
	case ScreenReport:
		switch msg.String() {
		case "b", "esc":
			return a.backToMenu()
		case "q":
			return a, tea.Quit
		case "r":
			return a, a.openPath(a.reportPath)
		}
		if a.report != nil {
			a.report.Update(msg)
		}
		return a, nil
	case ScreenDashboard:
		return a.updateDashboard(msg)
	}
	return a, nil
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.login == nil {
		return a, nil
	}
	model, cmd := a.login.Update(msg)
	a.login = model.(*forms.Login)
	return a, cmd
}

func (a *App) updateStock(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.stock == nil {
		return a, nil
	}
	model, cmd := a.stock.Update(msg)
	a.stock = model.(*forms.Stock)
	return a, cmd
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizard == nil {
		return a, nil
	}
	model, cmd := a.wizard.Update(msg)
	a.wizard = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.history == nil {
		return a, nil
	}
	model, cmd := a.history.Update(msg)
	a.history = model.(*history.Model)
	return a, cmd
}

func (a *App) updateLedger(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b", "esc":
		return a.backToMenu()
	case "n":
		return a, a.openPath("/sms/compose")
	case "h":
		var first *client.SMSHistoryPage
		if a.lastResult != nil {
			first = a.lastResult.History
		}
		return a, a.openHistory(first)
	}
	return a, nil
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b", "esc":
		return a.backToMenu()
	case "r":
		return a, a.openPath("/account")
	case "d":
		if a.dashboard != nil && a.dashboard.ShowsLowBalance() {
			if err := store.Dismiss(a.kv, lowBalanceNotice); err != nil {
				slog.Warn("Failed to dismiss notice", "notice", lowBalanceNotice, "error", err)
			}
			return a, a.openPath("/account")
		}
	}
	return a, nil
}

func (a *App) handleLogin(msg loginResultMsg) (tea.Model, tea.Cmd) {
	a.loading = ""
	if msg.err != nil {
		text := msg.err.Error()
		if errors.Is(msg.err, client.ErrSessionExpired) {
			text = "invalid email or password"
		}
		return a, a.login.SetError(text)
	}

	if err := a.session.Login(msg.resp.AccessToken, msg.resp.BusinessName); err != nil {
		return a, a.login.SetError(err.Error())
	}
	slog.Info("Signed in", "business", msg.resp.BusinessName)

	a.login = nil
	a.err = nil
	a.landing()
	return a, a.refreshBalance()
}

func (a *App) handleSelected(item menu.Item) (tea.Model, tea.Cmd) {
	if a.screen == ScreenServices {
		service, err := router.ParseService(item.Value)
		if err != nil {
			a.err = err
			return a, nil
		}
		if err := a.router.Select(service); err != nil {
			slog.Warn("Failed to save active service", "service", service, "error", err)
		}
		a.showMenu()
		return a, nil
	}

	switch item.Value {
	case actionSwitchService:
		a.showServices()
		return a, nil
	case actionLogout:
		a.lastEmail = ""
		a.session.Logout()
		return a, a.toLogin("")
	}
	return a, a.openPath(item.Value)
}

// openPath navigates to path and opens the matching screen
func (a *App) openPath(path string) tea.Cmd {
	d := a.router.Navigate(path)
	if d.Redirect == router.SelectServicePath {
		a.showServices()
		return nil
	}
	a.err = nil

	switch path {
	case "/sms/compose":
		a.loading = "Loading contact groups"
		return tea.Batch(a.loadCategories(), a.spinner.Tick)
	case "/sms/history":
		return a.openHistory(nil)
	case "/stock":
		a.stock = forms.NewStock()
		a.screen = ScreenStock
		return a.stock.Init()
	case "/account", "/dashboard":
		a.loading = "Loading account"
		return tea.Batch(a.loadAccount(), a.spinner.Tick)
	}

	if loader, ok := a.reportLoaders()[path]; ok {
		a.loading = "Loading"
		return tea.Batch(a.loadReport(path, loader), a.spinner.Tick)
	}

	a.err = fmt.Errorf("%s is not available in the console", path)
	return nil
}

func (a *App) openHistory(first *client.SMSHistoryPage) tea.Cmd {
	a.history = history.New(a.api.SMSHistory, first)
	a.history.SetSize(a.contentWidth(), a.contentHeight())
	a.screen = ScreenHistory
	return a.history.Init()
}

func (a *App) handleSendDone(msg sendDoneMsg) (tea.Model, tea.Cmd) {
	a.loading = ""
	if msg.err != nil {
		if client.IsSessionError(msg.err) {
			return a, a.toLogin(expiredNotice)
		}
		// Refused by the gate, e.g. the balance changed; back to review
		if a.wizard != nil {
			a.wizard.SetBalance(a.session.Balance())
			return a, a.wizard.Reopen(msg.err.Error())
		}
		a.err = msg.err
		return a, nil
	}

	a.wizard = nil
	a.lastResult = msg.result
	a.lastUpdate = time.Now()

	if out := msg.result.Outcome; out != nil && client.IsSessionError(out.Aborted) {
		return a, a.toLogin(expiredNotice)
	}

	a.ledger = ledger.New(msg.result, a.ledgerWidth())
	a.screen = ScreenLedger
	return a, nil
}

func (a *App) resizeChildren() {
	if a.dashboard != nil {
		a.dashboard.SetSize(a.dashboardWidth(), a.contentHeight())
	}
	if a.history != nil {
		a.history.SetSize(a.contentWidth(), a.contentHeight())
	}
	if a.report != nil {
		a.report.SetSize(a.contentWidth(), a.contentHeight())
	}
	if a.ledger != nil {
		a.ledger.SetWidth(a.ledgerWidth())
	}
}

// doLogin calls the login endpoint
func (a *App) doLogin(msg forms.LoginSubmittedMsg) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.api.Login(context.Background(), &client.LoginRequest{Email: msg.Email, Password: msg.Password})
		return loginResultMsg{resp: resp, err: err}
	}
}

// refreshBalance refreshes the stored SMS balance in the background
func (a *App) refreshBalance() tea.Cmd {
	return func() tea.Msg {
		balance, err := a.sms.RefreshBalance(context.Background())
		return balanceMsg{balance: balance, err: err}
	}
}

// loadCategories loads contact groups for the compose wizard
func (a *App) loadCategories() tea.Cmd {
	return func() tea.Msg {
		cats, err := a.sms.Categories(context.Background())
		return categoriesLoadedMsg{categories: cats, err: err}
	}
}

// send dispatches a composition through the sms workflow
func (a *App) send(c sms.Composition) tea.Cmd {
	return func() tea.Msg {
		result, err := a.sms.Send(context.Background(), c)
		return sendDoneMsg{result: result, err: err}
	}
}

// recordStock saves a stock record
func (a *App) recordStock(req client.StockRecordRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.api.RecordStock(context.Background(), &req)
		return stockSavedMsg{resp: resp, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch {
	case a.loading != "":
		content = a.spinner.View() + " " + a.loading + "..."
	default:
		content = a.viewScreen()
	}

	if a.err != nil {
		content += "\n" + styles.StatusCritical.Render("Error: "+a.err.Error())
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewScreen() string {
	switch a.screen {
	case ScreenLogin:
		if a.login != nil {
			return a.login.View()
		}
	case ScreenServices:
		if a.services != nil {
			return a.services.View()
		}
	case ScreenMenu:
		view := ""
		if a.menu != nil {
			view = a.menu.View()
		}
		if a.notice != "" {
			view += "\n" + styles.StatusOK.Render(a.notice)
		}
		return view
	case ScreenCompose:
		if a.wizard != nil {
			return a.wizard.View()
		}
	case ScreenLedger:
		if a.ledger != nil {
			return styles.ActivePanel.Width(a.contentWidth() - panelPadding).Render(a.ledger.View())
		}
	case ScreenHistory:
		if a.history != nil {
			return a.history.View()
		}
	case ScreenReport:
		if a.report != nil {
			return a.report.View()
		}
	case ScreenDashboard:
		return a.viewDashboard()
	case ScreenStock:
		if a.stock != nil {
			return a.stock.View()
		}
	}
	return ""
}

// viewDashboard renders the account dashboard with an actions pane
func (a *App) viewDashboard() string {
	leftPane := ""
	if a.dashboard != nil {
		leftPane = styles.ActivePanel.Width(a.dashboardWidth()).Render(a.dashboard.View())
	} else {
		leftPane = styles.Panel.Width(a.dashboardWidth()).Render("Loading...")
	}

	rightContent := styles.Title.Render(icons.Settings.String()+" Actions") + "\n\n"
	rightContent += icons.Refresh.String() + " Refresh account\n"
	if a.dashboard != nil && a.dashboard.ShowsLowBalance() {
		rightContent += icons.Info.String() + " Dismiss low balance notice\n"
	}
	rightContent += icons.Back.String() + " Back to menu\n"
	rightContent += icons.Quit.String() + " Quit application\n"
	rightPane := styles.Panel.Width(a.actionsWidth()).Render(rightContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// frameWidth is the header and footer width. One column is left free so
// terminals that wrap at the last column do not break the frame.
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// contentWidth is the width available inside the frame
func (a *App) contentWidth() int {
	return a.frameWidth() - 1
}

// ledgerWidth is the width inside the results panel
func (a *App) ledgerWidth() int {
	return a.contentWidth() - 2*panelPadding
}

// dashboardWidth calculates the width for the dashboard pane
func (a *App) dashboardWidth() int {
	if a.width < minTerminalWidth {
		return a.contentWidth() - panelPadding
	}
	return (a.contentWidth() - panelPadding) / 2
}

// actionsWidth calculates the width for the actions pane
func (a *App) actionsWidth() int {
	return a.contentWidth() - a.dashboardWidth() - panelPadding
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	// Header, footer, the newlines around content and panel borders
	return a.height - 8
}

// renderHeader creates the header bar with app branding and account context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Nkwabiz"))

	rightText := ""
	if a.screen != ScreenLogin && a.session.State() == session.StateAuthenticated {
		var parts []string
		if name := a.session.BusinessName(); name != "" {
			parts = append(parts, name)
		}
		if service := a.router.Current(); service != router.ServiceNone {
			parts = append(parts, strings.ToUpper(service.String()))
		}
		parts = append(parts, fmt.Sprintf("%d credits", a.session.Balance()))
		rightText = " " + contextStyle.Render(strings.Join(parts, " · ")) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		// Drop the context before overflowing the frame
		rightText = ""
		fillWidth = max(width-4-leftWidth, 0)
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.shortcuts()

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ") + " "
	leftPlainText := " " + strings.Join(shortcuts, "  ") + " "

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && (a.screen == ScreenDashboard || a.screen == ScreenReport || a.screen == ScreenLedger) {
		elapsed := humanize.Time(a.lastUpdate)
		rightText = " " + statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = " Updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		rightText = ""
		fillWidth = max(width-4-leftWidth, 0)
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// shortcuts lists the keys shown in the footer for the current screen
func (a *App) shortcuts() []string {
	switch a.screen {
	case ScreenLogin:
		return []string{"Enter Submit", "Esc Quit"}
	case ScreenServices:
		return []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenMenu:
		return []string{"↑↓ Navigate", "Enter Open", "x Switch", "o Logout", "q Quit"}
	case ScreenCompose:
		return []string{"Tab Next", "Enter Confirm", "Esc Cancel"}
	case ScreenLedger:
		return []string{"n New message", "h History", "b Back", "q Quit"}
	case ScreenHistory:
		return []string{"↑↓ Scroll", "r Reload", "b Back", "q Quit"}
	case ScreenReport:
		return []string{"↑↓ Scroll", "r Reload", "b Back", "q Quit"}
	case ScreenDashboard:
		return []string{"r Refresh", "d Dismiss", "b Back", "q Quit"}
	case ScreenStock:
		return []string{"Tab Next", "Enter Save", "Esc Cancel"}
	}
	return nil
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI and blocks until it exits
func Run(deps Deps) error {
	app := New(deps)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	// Session transitions can fire from inside Update, so forward them
	// without blocking the event loop
	unsubscribe := deps.Session.Subscribe(func(e session.Event) {
		go p.Send(sessionEventMsg{event: e})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}
