// ABOUTME: SMS commands: send, history, balance, categories, bundles and senders
// ABOUTME: Send runs the same gate and batch dispatch as the TUI compose screen

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/sms"
)

var (
	smsSender      string
	smsMessage     string
	smsCategories  []string
	smsTo          []string
	smsDryRun      bool
	smsInteractive bool

	historyPage  int
	historyLimit int
)

var smsCmd = &cobra.Command{
	Use:   "sms",
	Short: "Bulk SMS: send messages, view history and credits",
}

var smsSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message to contact categories and/or phone numbers",
	Long: `Send an SMS to every contact in one or more categories and/or to a list
of phone numbers. Each category is sent as its own request, followed by one
request for the listed numbers. A failed request does not stop the others.

Exit codes:
  0 - All batches sent
  1 - Send blocked by a check, or one or more batches failed
  2 - Error (connectivity, session expired, invalid input)`,
	Example: `  nkwabiz sms send --sender ACME --message "Sale today" --category Customers
  nkwabiz sms send --sender ACME --message "Hi" --to 0241234567,0551234567
  nkwabiz sms send -i`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if smsInteractive {
			if err := promptSMS(); err != nil {
				fmt.Fprintf(os.Stdout, "Error: %v\n", err)
				os.Exit(exitErrored)
			}
		}

		if exitCode := runSMSSend(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var smsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List sent messages",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runSMSHistory(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var smsBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show SMS credit balance",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runSMSBalance(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var smsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List contact categories and their sizes",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runSMSCategories(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var smsBundlesCmd = &cobra.Command{
	Use:   "bundles",
	Short: "List purchasable SMS credit bundles",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runSMSBundles(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var smsSendersCmd = &cobra.Command{
	Use:   "senders",
	Short: "List recently used sender IDs",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runSMSSenders(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(smsCmd)
	smsCmd.AddCommand(smsSendCmd, smsHistoryCmd, smsBalanceCmd, smsCategoriesCmd, smsBundlesCmd, smsSendersCmd)

	smsSendCmd.Flags().StringVar(&smsSender, "sender", "", "Sender ID (3-11 letters or digits)")
	smsSendCmd.Flags().StringVar(&smsMessage, "message", "", "Message text")
	smsSendCmd.Flags().StringSliceVar(&smsCategories, "category", nil, "Contact category to send to (repeatable)")
	smsSendCmd.Flags().StringSliceVar(&smsTo, "to", nil, "Phone numbers to send to (comma separated or repeatable)")
	smsSendCmd.Flags().BoolVar(&smsDryRun, "dry-run", false, "Run the checks and show the estimate without sending")
	smsSendCmd.Flags().BoolVarP(&smsInteractive, "interactive", "i", false, "Prompt for sender ID and message")

	smsHistoryCmd.Flags().IntVar(&historyPage, "page", 1, "Page number")
	smsHistoryCmd.Flags().IntVar(&historyLimit, "limit", sms.HistoryPageSize, "Messages per page")
}

// promptSMS asks for sender ID and message, suggesting recent sender IDs
func promptSMS() error {
	var recent []string
	if a, err := openApp(); err == nil {
		recent = a.senders.Load()
		a.Close()
	}
	if smsSender == "" && len(recent) > 0 {
		smsSender = recent[0]
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sender ID").
				Suggestions(recent).
				Validate(func(s string) error {
					if !sms.ValidSenderID(s) {
						return sms.ErrInvalidSenderID
					}
					return nil
				}).
				Value(&smsSender),
			huh.NewText().
				Title("Message").
				Value(&smsMessage),
		),
	).Run()
}

// composition builds the compose state from flags
func composition() sms.Composition {
	c := sms.Composition{
		SenderID:       strings.TrimSpace(smsSender),
		Message:        strings.TrimSpace(smsMessage),
		RecipientsText: strings.Join(smsTo, ","),
	}
	for _, name := range smsCategories {
		name = strings.TrimSpace(name)
		if name != "" && !c.Selected(name) {
			c.ToggleCategory(name)
		}
	}
	return c
}

// runSMSSend gates and dispatches a send and returns exit code
func runSMSSend(ctx context.Context, w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	comp := composition()
	if len(comp.Categories) > 0 {
		cats, err := a.sms.Categories(ctx)
		if err != nil {
			return reportError(w, err)
		}
		if missing := unknownCategories(comp.Categories, cats); len(missing) > 0 {
			fmt.Fprintf(w, "Error: unknown category: %s\n", strings.Join(missing, ", "))
			return exitErrored
		}
		comp.CategoryInfo = cats
	}

	if _, err := a.sms.RefreshBalance(ctx); err != nil {
		if client.IsSessionError(err) {
			return reportError(w, err)
		}
		slog.Warn("Using cached SMS balance", "error", err)
	}

	if smsDryRun {
		v := a.sms.Evaluate(comp)
		if IsJSONOutput() {
			writeJSON(w, verdictJSON(v, a.session.Balance()))
		} else {
			fmt.Fprintln(w, formatVerdictHuman(v, a.session.Balance()))
		}
		if !v.Allowed {
			return exitFailed
		}
		return exitOK
	}

	res, err := a.sms.Send(ctx, comp)
	if err != nil {
		if IsJSONOutput() {
			writeJSON(w, verdictJSON(res.Verdict, a.session.Balance()))
		} else {
			fmt.Fprintln(w, formatVerdictHuman(res.Verdict, a.session.Balance()))
		}
		return exitFailed
	}

	if IsJSONOutput() {
		writeJSON(w, sendResultJSON(res))
	} else {
		fmt.Fprintln(w, formatSendHuman(res))
	}

	switch {
	case res.Outcome.Aborted != nil:
		return exitErrored
	case len(res.Outcome.Failed()) > 0:
		return exitFailed
	default:
		return exitOK
	}
}

func unknownCategories(selected []string, known []client.Category) []string {
	names := make(map[string]bool, len(known))
	for _, c := range known {
		names[c.Name] = true
	}
	var missing []string
	for _, s := range selected {
		if !names[s] {
			missing = append(missing, s)
		}
	}
	return missing
}

// formatVerdictHuman formats a gate verdict with the recipient estimate
func formatVerdictHuman(v sms.Verdict, balance int) string {
	r := v.Resolution
	var sb strings.Builder
	fmt.Fprintf(&sb, "Recipients:     %s (%s from categories, %s numbers)\n",
		sms.FormatCount(r.Total), sms.FormatCount(r.CategoryCount), sms.FormatCount(r.ManualCount))
	fmt.Fprintf(&sb, "Estimated cost: %s\n", sms.FormatCost(r.EstimatedCost))
	fmt.Fprintf(&sb, "Balance:        %s credits\n", sms.FormatCount(balance))
	if len(r.Invalid) > 0 {
		fmt.Fprintf(&sb, "Invalid:        %s\n", strings.Join(r.Invalid, ", "))
	}
	if v.Allowed {
		sb.WriteString("\n✓ Ready to send")
	} else {
		fmt.Fprintf(&sb, "\n✗ Blocked: %v", v.Reason)
	}
	return sb.String()
}

func verdictJSON(v sms.Verdict, balance int) map[string]any {
	out := map[string]any{
		"allowed":         v.Allowed,
		"recipients":      v.Resolution.Total,
		"category_count":  v.Resolution.CategoryCount,
		"manual_count":    v.Resolution.ManualCount,
		"invalid_numbers": v.Resolution.Invalid,
		"estimated_cost":  v.Resolution.EstimatedCost,
		"balance":         balance,
	}
	if v.Reason != nil {
		out["reason"] = v.Reason.Error()
	}
	return out
}

// formatSendHuman formats the per-batch ledger of a send
func formatSendHuman(res *sms.SendResult) string {
	var sb strings.Builder
	for _, item := range res.Outcome.Items {
		switch {
		case item.Skipped:
			fmt.Fprintf(&sb, "- %-24s skipped\n", item.Batch.Label())
		case item.Err != nil:
			fmt.Fprintf(&sb, "✗ %-24s %v\n", item.Batch.Label(), item.Err)
		default:
			fmt.Fprintf(&sb, "✓ %-24s %d sent, %d failed\n", item.Batch.Label(), item.Response.Sent, item.Response.Failed)
		}
	}

	o := res.Outcome
	fmt.Fprintf(&sb, "\n%d of %d batches sent (%s messages)", len(o.Succeeded()), len(o.Items), sms.FormatCount(o.Sent()))
	if o.Aborted != nil {
		fmt.Fprintf(&sb, "\nStopped: %v", o.Aborted)
		if client.IsSessionError(o.Aborted) {
			sb.WriteString("\nRun 'nkwabiz auth login' to sign in.")
		}
	} else if res.RefreshErr == nil {
		fmt.Fprintf(&sb, "\nRemaining credits: %s", sms.FormatCount(res.Balance))
	}
	return sb.String()
}

func sendResultJSON(res *sms.SendResult) map[string]any {
	items := make([]map[string]any, 0, len(res.Outcome.Items))
	for _, item := range res.Outcome.Items {
		entry := map[string]any{"batch": item.Batch.Label()}
		switch {
		case item.Skipped:
			entry["status"] = "skipped"
		case item.Err != nil:
			entry["status"] = "failed"
			entry["error"] = item.Err.Error()
		default:
			entry["status"] = "sent"
			entry["sent"] = item.Response.Sent
			entry["failed"] = item.Response.Failed
			entry["message"] = item.Response.Message
		}
		items = append(items, entry)
	}

	status := "sent"
	switch {
	case res.Outcome.Aborted != nil:
		status = "aborted"
	case len(res.Outcome.Failed()) > 0:
		status = "partial"
	}

	out := map[string]any{
		"status":  status,
		"batches": items,
		"sent":    res.Outcome.Sent(),
	}
	if res.RefreshErr == nil {
		out["balance"] = res.Balance
	}
	return out
}

// runSMSHistory lists one page of sent messages and returns exit code
func runSMSHistory(ctx context.Context, w io.Writer) int {
	if historyPage < 1 || historyLimit < 1 {
		fmt.Fprintln(w, "Error: --page and --limit must be at least 1")
		return exitErrored
	}

	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	page, err := a.client.SMSHistory(ctx, historyPage, historyLimit)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		writeJSON(w, page)
		return exitOK
	}

	if len(page.Messages) == 0 {
		fmt.Fprintln(w, "No messages sent yet.")
		return exitOK
	}
	for _, m := range page.Messages {
		to := m.Recipient
		if m.Category != "" {
			to = m.Category
		}
		fmt.Fprintf(w, "%-14s %-12s %-8s %-10s %s\n", relativeTime(m.CreatedAt), to, m.SenderID, m.Status, truncate(m.Message, 40))
	}
	fmt.Fprintf(w, "\nPage %d of %d (%s messages)\n", page.Page, max(page.Pages, 1), sms.FormatCount(page.Total))
	return exitOK
}

// runSMSBalance fetches the credit balance and returns exit code
func runSMSBalance(ctx context.Context, w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	n, err := a.sms.RefreshBalance(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		writeJSON(w, client.Balance{Balance: n})
	} else {
		fmt.Fprintf(w, "SMS credits: %s\n", sms.FormatCount(n))
	}
	return exitOK
}

// runSMSCategories lists contact categories and returns exit code
func runSMSCategories(ctx context.Context, w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	cats, err := a.sms.Categories(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		writeJSON(w, client.CategoryList{Categories: cats})
		return exitOK
	}
	if len(cats) == 0 {
		fmt.Fprintln(w, "No contact categories.")
		return exitOK
	}
	for _, c := range cats {
		fmt.Fprintf(w, "%-24s %s contacts\n", c.Name, sms.FormatCount(c.Count))
	}
	return exitOK
}

// runSMSBundles lists credit bundles and returns exit code
func runSMSBundles(ctx context.Context, w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	bundles, err := a.client.SMSBundles(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		writeJSON(w, client.BundleList{Bundles: bundles})
		return exitOK
	}
	for _, b := range bundles {
		fmt.Fprintf(w, "%3d  %-16s %8s credits  %s\n", b.ID, b.Name, sms.FormatCount(b.Credits), sms.FormatCost(b.Price))
	}
	fmt.Fprintln(w, "\nBuy with: nkwabiz payment buy <id>")
	return exitOK
}

// runSMSSenders lists recently used sender IDs and returns exit code
func runSMSSenders(w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	ids := a.senders.Load()
	if IsJSONOutput() {
		writeJSON(w, map[string][]string{"sender_ids": ids})
		return exitOK
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No sender IDs used yet.")
		return exitOK
	}
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
	return exitOK
}
