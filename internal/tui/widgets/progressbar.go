// ABOUTME: Usage bar with visual threshold zones
// ABOUTME: Shows green/amber/red regions for recipient and credit usage

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/styles"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width         int
	WarnThreshold float64 // Percentage where warning zone starts (default 80)
	CritThreshold float64 // Percentage where critical zone starts (default 100)
	OKColor       lipgloss.Color
	WarnColor     lipgloss.Color
	CritColor     lipgloss.Color
	EmptyColor    lipgloss.Color
	ShowZones     bool // Show threshold markers in the bar
}

// DefaultProgressBarConfig returns sensible defaults
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:         20,
		WarnThreshold: 80,
		CritThreshold: 100,
		OKColor:       styles.Secondary,
		WarnColor:     styles.Warning,
		CritColor:     styles.Danger,
		EmptyColor:    styles.Surface,
		ShowZones:     true,
	}
}

// ProgressBar renders a progress bar with threshold zones
func ProgressBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}
	percent = min(max(percent, 0), 100)

	filled := min(int(percent/100.0*float64(config.Width)), config.Width)

	warnPos := int(config.WarnThreshold / 100.0 * float64(config.Width))
	critPos := int(config.CritThreshold / 100.0 * float64(config.Width))

	var bar strings.Builder
	bar.WriteString("[")

	for i := 0; i < config.Width; i++ {
		char := "░"
		color := config.EmptyColor

		switch {
		case i < filled && i >= critPos:
			char, color = "█", config.CritColor
		case i < filled && i >= warnPos:
			char, color = "█", config.WarnColor
		case i < filled:
			char, color = "█", config.OKColor
		case config.ShowZones && (i == warnPos || i == critPos):
			char = "│"
		}

		bar.WriteString(lipgloss.NewStyle().Foreground(color).Render(char))
	}

	bar.WriteString("]")
	return bar.String()
}

// UsageBar renders used against limit as a bar followed by "used/limit" and
// a status icon. Anything over the limit is critical.
func UsageBar(used, limit int, config ProgressBarConfig) string {
	var percent float64
	if limit > 0 {
		percent = float64(used) / float64(limit) * 100
	} else if used > 0 {
		percent = 100
	}

	level := StatusFromPercent(percent, config.WarnThreshold, config.CritThreshold)
	if used > limit {
		level = StatusCritical
	} else if level == StatusCritical {
		// exactly at the limit is still allowed
		level = StatusWarning
	}

	var color lipgloss.Color
	switch level {
	case StatusCritical:
		color = config.CritColor
	case StatusWarning:
		color = config.WarnColor
	default:
		color = config.OKColor
	}

	count := lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%d/%d", used, limit))
	return fmt.Sprintf("%s %s %s", ProgressBar(percent, config), count, StatusIcon(level))
}
