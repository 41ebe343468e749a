// ABOUTME: Payment commands for buying SMS credit bundles
// ABOUTME: Tracks the pending payment reference between buy and verify

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/sms"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/store"
)

var errNoReference = errors.New("no payment reference given and none pending")

var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Buy SMS credits and review payments",
}

var paymentBuyCmd = &cobra.Command{
	Use:   "buy <bundle-id>",
	Short: "Start a payment for an SMS bundle",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runPaymentBuy(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var paymentVerifyCmd = &cobra.Command{
	Use:   "verify [reference]",
	Short: "Confirm a payment (defaults to the pending one)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		ref := ""
		if len(args) == 1 {
			ref = args[0]
		}
		if exitCode := runPaymentVerify(ctx, os.Stdout, ref); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var paymentHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past payments",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runPaymentHistory(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(paymentCmd)
	paymentCmd.AddCommand(paymentBuyCmd, paymentVerifyCmd, paymentHistoryCmd)
}

// runPaymentBuy initializes a payment and returns exit code
func runPaymentBuy(ctx context.Context, w io.Writer, bundleArg string) int {
	id, err := strconv.Atoi(bundleArg)
	if err != nil || id <= 0 {
		fmt.Fprintf(w, "Error: bundle id must be a positive number, got %q\n", bundleArg)
		return exitErrored
	}

	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	resp, err := a.client.InitializePayment(ctx, &client.PaymentInitRequest{BundleID: id})
	if err != nil {
		return reportError(w, err)
	}
	if resp.Reference != "" {
		if err := a.db.Set(store.KeyPendingPaymentRef, resp.Reference); err != nil {
			return reportError(w, err)
		}
	}

	if IsJSONOutput() {
		writeJSON(w, resp)
		return exitOK
	}
	fmt.Fprintf(w, `Complete the payment at:
  %s

Reference: %s
Then run: nkwabiz payment verify
`, resp.AuthorizationURL, resp.Reference)
	return exitOK
}

// runPaymentVerify confirms a payment and returns exit code
func runPaymentVerify(ctx context.Context, w io.Writer, ref string) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	pending, _, err := a.db.Get(store.KeyPendingPaymentRef)
	if err != nil {
		return reportError(w, err)
	}
	if ref == "" {
		ref = pending
	}
	if ref == "" {
		fmt.Fprintf(w, "Error: %v\n", errNoReference)
		return exitErrored
	}

	result, err := a.client.VerifyPayment(ctx, ref)
	if err != nil {
		return reportError(w, err)
	}

	success := strings.EqualFold(result.Status, "success")
	if success {
		if ref == pending {
			a.db.Delete(store.KeyPendingPaymentRef)
		}
		a.sms.RefreshBalance(ctx)
	}

	if IsJSONOutput() {
		writeJSON(w, result)
	} else if success {
		fmt.Fprintf(w, "✓ Payment %s confirmed: %s credits added (balance %s)\n",
			ref, sms.FormatCount(result.Credits), sms.FormatCount(a.session.Balance()))
	} else {
		msg := result.Message
		if msg == "" {
			msg = result.Status
		}
		fmt.Fprintf(w, "✗ Payment %s not confirmed: %s\n", ref, msg)
	}

	if !success {
		return exitFailed
	}
	return exitOK
}

// runPaymentHistory lists payments and returns exit code
func runPaymentHistory(ctx context.Context, w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	hist, err := a.client.PaymentHistory(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		writeJSON(w, hist)
		return exitOK
	}
	if len(hist.Payments) == 0 {
		fmt.Fprintln(w, "No payments yet.")
		return exitOK
	}
	for _, p := range hist.Payments {
		fmt.Fprintf(w, "%-14s %-20s %-16s %12s  %s\n", relativeTime(p.CreatedAt), p.Reference, p.Bundle, sms.FormatCost(p.Amount), p.Status)
	}
	return exitOK
}
