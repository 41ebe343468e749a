// ABOUTME: SMS history screen with infinite scroll
// ABOUTME: Loads the next page when the cursor nears the end of what is loaded

package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/sms"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/icons"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/styles"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/widgets"
)

// Fetcher loads one page of history
type Fetcher func(ctx context.Context, page, limit int) (*client.SMSHistoryPage, error)

// PageLoadedMsg delivers a fetched page
type PageLoadedMsg struct {
	Page *client.SMSHistoryPage
	Err  error
	gen  int
}

// prefetchRows is how close to the end the cursor gets before the next page loads
const prefetchRows = 3

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// Model is the history list
type Model struct {
	pager   *sms.HistoryPager
	fetch   Fetcher
	spinner spinner.Model
	cursor  int
	width   int
	height  int
	gen     int
	err     error
}

// New creates a history list. first, when non-nil, seeds page one so the
// list opens without a fetch.
func New(fetch Fetcher, first *client.SMSHistoryPage) *Model {
	m := &Model{
		pager:   sms.NewHistoryPager(sms.HistoryPageSize, prefetchRows),
		fetch:   fetch,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	if first != nil {
		m.pager.Append(first)
	}
	return m
}

// SetSize sets the render area
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Records returns the loaded records
func (m *Model) Records() []client.SMSRecord {
	return m.pager.Records()
}

// Cursor returns the selected row
func (m *Model) Cursor() int {
	return m.cursor
}

// Loading reports whether a page is in flight
func (m *Model) Loading() bool {
	return m.pager.Loading()
}

// Err returns the last load error
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if len(m.pager.Records()) > 0 {
		return nil
	}
	return m.loadNext()
}

// Reload discards loaded pages and fetches page one
func (m *Model) Reload() tea.Cmd {
	m.gen++
	m.pager.Reset()
	m.cursor = 0
	m.err = nil
	return m.loadNext()
}

func (m *Model) loadNext() tea.Cmd {
	page := m.pager.Begin()
	limit := m.pager.Limit
	gen := m.gen
	fetch := m.fetch
	load := func() tea.Msg {
		result, err := fetch(context.Background(), page, limit)
		return PageLoadedMsg{Page: result, Err: err, gen: gen}
	}
	return tea.Batch(load, m.spinner.Tick)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PageLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.Err != nil {
			m.pager.Fail()
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.pager.Append(msg.Page)
		return m, nil

	case spinner.TickMsg:
		if !m.pager.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.pager.Records()) - 1

	switch msg.String() {
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = max(min(m.cursor+1, last), 0)
	case "pgdown":
		m.cursor = max(min(m.cursor+m.pageRows(), last), 0)
	case "pgup":
		m.cursor = max(m.cursor-m.pageRows(), 0)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(last, 0)
	case "r":
		return m, m.Reload()
	default:
		return m, nil
	}

	if m.pager.NeedsMore(m.cursor) {
		return m, m.loadNext()
	}
	return m, nil
}

// pageRows is how many records fit on screen
func (m *Model) pageRows() int {
	// title, column header, status line and spacing
	return max(m.height-4, 5)
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	records := m.pager.Records()
	title := fmt.Sprintf("%s SMS History", icons.History.String())
	if total := m.pager.Total(); total > 0 {
		title += fmt.Sprintf(" (%s)", sms.FormatCount(total))
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")

	if len(records) == 0 {
		switch {
		case m.pager.Loading():
			sb.WriteString(m.spinner.View() + " Loading...")
		case m.err != nil:
			sb.WriteString(styles.ErrorText.Render("Error: " + m.err.Error()))
		default:
			sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render("No messages sent yet"))
		}
		return sb.String()
	}

	header := lipgloss.NewStyle().Foreground(styles.Muted).Bold(true)
	sb.WriteString(header.Render(fmt.Sprintf("  %-14s %-13s %-9s %s", "Sent", "Recipient", "Status", "Message")))
	sb.WriteString("\n")

	start, end := m.window(len(records))
	msgWidth := max(m.width-44, 20)
	for i := start; i < end; i++ {
		r := records[i]
		line := fmt.Sprintf("%-14s %-13s %-9s %s",
			truncate(relativeTime(r.CreatedAt), 14),
			truncate(r.Recipient, 13),
			truncate(r.Status, 9),
			truncate(oneLine(r.Message), msgWidth))
		if i == m.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	switch {
	case m.pager.Loading():
		sb.WriteString(m.spinner.View() + " Loading more...")
	case m.err != nil:
		sb.WriteString(styles.ErrorText.Render("Error: " + m.err.Error() + " (r to retry)"))
	case !m.pager.HasMore():
		sb.WriteString(widgets.StatusText("End of history", widgets.StatusNeutral))
	}

	return sb.String()
}

// window returns the visible slice of rows keeping the cursor on screen
func (m *Model) window(n int) (int, int) {
	rows := m.pageRows()
	start := max(m.cursor-rows+1, 0)
	end := min(start+rows, n)
	return start, end
}

func relativeTime(s string) string {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return humanize.Time(t)
		}
	}
	return s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
