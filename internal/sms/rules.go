// ABOUTME: Shared bulk SMS rules: batch limit, unit price, phone and sender ID patterns
// ABOUTME: Used by the compose gate, the CLI and the TUI so they can never disagree

package sms

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// MaxRecipientsPerBatch is the most recipients one send may address
	MaxRecipientsPerBatch = 80

	// UnitPrice is the estimated cost of one message in GHS
	UnitPrice = 0.03

	// PhonePattern matches Ghanaian mobile numbers in local or international form
	PhonePattern = `^0[2-5]\d{8}$|^233[2-5]\d{8}$`

	// SenderIDPattern matches alphanumeric sender IDs of 3 to 11 characters
	SenderIDPattern = `^[A-Za-z0-9]{3,11}$`
)

var (
	phoneRE    = regexp.MustCompile(PhonePattern)
	senderIDRE = regexp.MustCompile(SenderIDPattern)

	separatorRE = regexp.MustCompile(`[,\s]+`)
	phoneStrip  = strings.NewReplacer(" ", "", "-", "")

	printer = message.NewPrinter(language.English)
)

// ParseRecipients splits freeform text on commas, whitespace and newlines.
// Empty entries are dropped and duplicates removed, keeping first occurrence.
func ParseRecipients(text string) []string {
	parts := separatorRE.Split(text, -1)
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// NormalizePhone removes spaces and hyphens
func NormalizePhone(n string) string {
	return phoneStrip.Replace(n)
}

// ValidPhone reports whether n is a Ghanaian mobile number
func ValidPhone(n string) bool {
	return phoneRE.MatchString(NormalizePhone(n))
}

// ValidSenderID reports whether s is an acceptable sender ID
func ValidSenderID(s string) bool {
	return senderIDRE.MatchString(s)
}

// FormatCost renders a GHS amount with grouping, e.g. "GHS 1,234.50"
func FormatCost(amount float64) string {
	return printer.Sprintf("GHS %.2f", amount)
}

// FormatCount renders an integer with grouping separators
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
