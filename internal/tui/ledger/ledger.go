// ABOUTME: Send results view listing every batch of a bulk SMS dispatch
// ABOUTME: Shows sent, failed and skipped batches plus the refreshed balance

package ledger

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/sms"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/styles"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/widgets"
)

// Ledger displays the result of a send
type Ledger struct {
	result *sms.SendResult
	width  int
}

// New creates a results view
func New(result *sms.SendResult, width int) *Ledger {
	return &Ledger{
		result: result,
		width:  width,
	}
}

// SetWidth updates the render width
func (l *Ledger) SetWidth(width int) {
	l.width = width
}

// View renders the ledger
func (l *Ledger) View() string {
	if l.result == nil || l.result.Outcome == nil {
		return "No send results"
	}
	out := l.result.Outcome

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Send Results"))
	sb.WriteString("\n")

	for _, item := range out.Items {
		sb.WriteString("  ")
		sb.WriteString(renderItem(item))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Summary"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Messages accepted: %s\n", styles.ValueStyle.Render(sms.FormatCount(out.Sent()))))
	sb.WriteString(fmt.Sprintf("  Batches: %d sent, %d failed, %d skipped\n",
		len(out.Succeeded()), len(out.Failed()), len(out.Skipped())))

	if out.Aborted != nil {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusCritical.Render("Stopped: " + out.Aborted.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	switch {
	case out.Aborted != nil:
		// Nothing was refreshed after an abort
	case l.result.RefreshErr != nil:
		sb.WriteString(styles.StatusWarning.Render("Could not refresh balance: " + l.result.RefreshErr.Error()))
		sb.WriteString("\n")
	default:
		sb.WriteString(fmt.Sprintf("  Balance now: %s\n", widgets.CreditBadge(l.result.Balance, 0)))
	}

	width := max(l.width, 40)
	return lipgloss.NewStyle().Width(width).Render(sb.String())
}

func renderItem(item sms.ItemResult) string {
	label := item.Batch.Label()
	switch {
	case item.Skipped:
		return widgets.StatusText(label+": skipped", widgets.StatusNeutral)
	case item.Err != nil:
		return widgets.StatusText(label+": "+item.Err.Error(), widgets.StatusCritical)
	default:
		detail := "sent"
		if item.Response != nil {
			detail = fmt.Sprintf("%d sent", item.Response.Sent)
			if item.Response.Failed > 0 {
				detail += fmt.Sprintf(", %d rejected", item.Response.Failed)
			}
		}
		level := widgets.StatusOK
		if item.Response != nil && item.Response.Failed > 0 {
			level = widgets.StatusWarning
		}
		return widgets.StatusText(label+": "+detail, level)
	}
}
