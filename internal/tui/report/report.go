// ABOUTME: Read-only table screen for lists fetched from the backend
// ABOUTME: Renders contact groups, bundles, payments, sales, alerts and expenses

package report

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/styles"
)

// Table is a titled grid of rows
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  string
	Empty   string
}

// Model scrolls a table
type Model struct {
	table  Table
	offset int
	height int
	width  int
}

// New creates a table view
func New(table Table) *Model {
	return &Model{table: table}
}

// Table returns the displayed table
func (m *Model) Table() Table {
	return m.table
}

// SetSize sets the render area
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	last := max(len(m.table.Rows)-m.visibleRows(), 0)
	switch key.String() {
	case "up", "k":
		m.offset = max(m.offset-1, 0)
	case "down", "j":
		m.offset = min(m.offset+1, last)
	case "home", "g":
		m.offset = 0
	case "end", "G":
		m.offset = last
	}
	return m, nil
}

func (m *Model) visibleRows() int {
	// title, header, footer and spacing
	return max(m.height-5, 5)
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(m.table.Title))
	sb.WriteString("\n")

	if len(m.table.Rows) == 0 {
		empty := m.table.Empty
		if empty == "" {
			empty = "Nothing to show"
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render(empty))
		return sb.String()
	}

	widths := m.columnWidths()
	header := lipgloss.NewStyle().Foreground(styles.Muted).Bold(true)
	sb.WriteString(header.Render(formatRow(m.table.Headers, widths)))
	sb.WriteString("\n")

	end := min(m.offset+m.visibleRows(), len(m.table.Rows))
	for _, row := range m.table.Rows[m.offset:end] {
		sb.WriteString(formatRow(row, widths))
		sb.WriteString("\n")
	}

	if end < len(m.table.Rows) || m.offset > 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render(
			fmt.Sprintf("rows %d-%d of %d", m.offset+1, end, len(m.table.Rows))))
		sb.WriteString("\n")
	}

	if m.table.Footer != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ValueStyle.Render(m.table.Footer))
	}
	return sb.String()
}

func (m *Model) columnWidths() []int {
	widths := make([]int, len(m.table.Headers))
	for i, h := range m.table.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range m.table.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
	}
	return "  " + strings.TrimRight(strings.Join(parts, "  "), " ")
}
