// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges for send outcomes and credit levels

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/icons"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/styles"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// lowCreditShare is the share of the balance a send may use before the
// credit badge turns to a warning
const lowCreditShare = 0.8

// tone is the color pair for a level
type tone struct {
	bg, fg lipgloss.Color
}

var tones = map[StatusLevel]tone{
	StatusOK:       {styles.Secondary, styles.Surface},
	StatusWarning:  {styles.Warning, styles.Surface},
	StatusCritical: {styles.Danger, styles.Text},
	StatusInfo:     {styles.Info, styles.Text},
	StatusNeutral:  {styles.Muted, styles.Text},
}

var levelIcons = map[StatusLevel]icons.Icon{
	StatusOK:       icons.CheckOK,
	StatusWarning:  icons.Warning,
	StatusCritical: icons.Critical,
	StatusInfo:     icons.Info,
	StatusNeutral:  icons.Skipped,
}

func toneFor(level StatusLevel) tone {
	if t, ok := tones[level]; ok {
		return t
	}
	return tones[StatusNeutral]
}

// Badge renders text on the level's background
func Badge(text string, level StatusLevel) string {
	t := toneFor(level)
	return lipgloss.NewStyle().
		Background(t.bg).
		Foreground(t.fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// StatusFromPercent returns the appropriate status level for a percentage value
func StatusFromPercent(percent, warnThreshold, critThreshold float64) StatusLevel {
	if percent >= critThreshold {
		return StatusCritical
	}
	if percent >= warnThreshold {
		return StatusWarning
	}
	return StatusOK
}

// StatusIcon returns the level's icon in the level's color
func StatusIcon(level StatusLevel) string {
	icon, ok := levelIcons[level]
	if !ok {
		icon = icons.Skipped
	}
	return lipgloss.NewStyle().Foreground(toneFor(level).bg).Render(icon.String())
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	textStyle := lipgloss.NewStyle().Foreground(toneFor(level).bg)
	return fmt.Sprintf("%s %s", StatusIcon(level), textStyle.Render(text))
}

// CreditLevel grades a balance against what a pending send needs. An empty
// wallet or a send it cannot cover is critical.
func CreditLevel(balance, needed int) StatusLevel {
	switch {
	case balance <= 0, needed > balance:
		return StatusCritical
	case needed > 0 && float64(needed) >= float64(balance)*lowCreditShare:
		return StatusWarning
	default:
		return StatusOK
	}
}

// CreditBadge renders the SMS balance against what the pending send needs
func CreditBadge(balance, needed int) string {
	return Badge(fmt.Sprintf("%d credits", balance), CreditLevel(balance, needed))
}

// PlanBadge renders the account tier
func PlanBadge(premium bool) string {
	if premium {
		return Badge("PREMIUM", StatusInfo)
	}
	return Badge("FREE", StatusNeutral)
}
