// ABOUTME: Output helpers shared by commands
// ABOUTME: JSON rendering and error-to-exit-code mapping

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
)

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

// reportError prints err and returns the matching exit code. Backend
// rejections are business failures; everything else is an error.
func reportError(w io.Writer, err error) int {
	if client.IsSessionError(err) {
		fmt.Fprintf(w, "Error: %v\nRun 'nkwabiz auth login' to sign in.\n", err)
		return exitErrored
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitFailed
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return exitErrored
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// relativeTime renders a backend timestamp as "3 hours ago", falling back to
// the raw value when it cannot be parsed
func relativeTime(s string) string {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return humanize.Time(t)
		}
	}
	return s
}

// truncate shortens s to n runes with an ellipsis
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
