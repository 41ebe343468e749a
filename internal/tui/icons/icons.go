// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// nerdFontTerminals commonly ship with a patched font
var nerdFontTerminals = []string{
	"iTerm.app",
	"alacritty",
	"WezTerm",
	"kitty",
	"ghostty",
}

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("NKWABIZ_NERD_FONTS"); env != "" {
		return env == "1" || strings.EqualFold(env, "true")
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")
	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Services
	SMS       = Icon{"󰍡", "✉"} // nf-md-message_text
	Inventory = Icon{"󰏗", "▦"} // nf-md-package_variant
	Contacts  = Icon{"󰀄", "☺"} // nf-md-account_multiple
	Wallet    = Icon{"󰖄", "¤"} // nf-md-wallet
	Sender    = Icon{"󰆍", "@"} // nf-md-card_account_details
	History   = Icon{"󰋚", "≡"} // nf-md-history
	Lock      = Icon{"󰌾", "⚿"} // nf-md-lock

	// Status indicators
	CheckOK  = Icon{"", "✓"}  // nf-oct-check_circle
	Warning  = Icon{"", "⚠"}  // nf-oct-alert
	Critical = Icon{"", "✗"}  // nf-oct-x_circle
	Info     = Icon{"", "ℹ"}  // nf-oct-info
	Skipped  = Icon{"󰒭", "–"} // nf-md-skip_next

	// Actions
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Send    = Icon{"󰒊", "➤"} // nf-md-send
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app

	// Application
	App      = Icon{"󰍩", "◈"} // nf-md-message_processing
	Settings = Icon{"󰒓", "⚙"} // nf-md-cog
)
