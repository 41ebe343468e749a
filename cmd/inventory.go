// ABOUTME: Inventory commands: stock records, sales history, stock alerts and expenses
// ABOUTME: Thin wrappers over the stock_manage and expenses endpoints

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/sms"
)

var (
	stockInput   client.StockRecordRequest
	expenseInput client.ExpenseRequest
	expensesAll  bool
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Record stock and sales, view history and alerts",
}

var stockRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a stock movement or sale",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runStockRecord(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var stockHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show sales history",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runStockHistory(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var stockAlertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show low-stock alerts (premium)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runStockAlerts(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Record and review business expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runExpenseAdd(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runExpenseList(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(stockCmd, expenseCmd)
	stockCmd.AddCommand(stockRecordCmd, stockHistoryCmd, stockAlertsCmd)
	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd)

	stockRecordCmd.Flags().StringVar(&stockInput.ProductName, "product", "", "Product name")
	stockRecordCmd.Flags().IntVar(&stockInput.Quantity, "quantity", 0, "Quantity")
	stockRecordCmd.Flags().Float64Var(&stockInput.SellingPrice, "price", 0, "Selling price per unit (GHS)")
	stockRecordCmd.Flags().Float64Var(&stockInput.CostPrice, "cost", 0, "Cost price per unit (GHS)")

	expenseAddCmd.Flags().StringVar(&expenseInput.Description, "description", "", "What the money was spent on")
	expenseAddCmd.Flags().Float64Var(&expenseInput.Amount, "amount", 0, "Amount (GHS)")
	expenseAddCmd.Flags().StringVar(&expenseInput.Category, "category", "", "Expense category")

	expenseListCmd.Flags().BoolVar(&expensesAll, "all", false, "Include all expenses, not just the current period")
}

func runStockRecord(ctx context.Context, w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	resp, err := a.client.RecordStock(ctx, &stockInput)
	if err != nil {
		return reportError(w, err)
	}
	printMessage(w, resp.Message, fmt.Sprintf("Recorded %d x %s", stockInput.Quantity, stockInput.ProductName))
	return exitOK
}

func runStockHistory(ctx context.Context, w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	hist, err := a.client.SalesHistory(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		writeJSON(w, hist)
		return exitOK
	}
	if len(hist.History) == 0 {
		fmt.Fprintln(w, "No sales recorded yet.")
		return exitOK
	}
	for _, s := range hist.History {
		fmt.Fprintf(w, "%-14s %-24s %5d  %12s\n", relativeTime(s.CreatedAt), truncate(s.ProductName, 24), s.Quantity, sms.FormatCost(s.TotalAmount))
	}
	fmt.Fprintf(w, "\nTotal sales: %s\n", sms.FormatCost(hist.TotalSales))
	return exitOK
}

func runStockAlerts(ctx context.Context, w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	alerts, err := a.client.StockAlerts(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		writeJSON(w, alerts)
	} else if len(alerts.Alerts) == 0 {
		fmt.Fprintln(w, "✓ No low-stock products")
	} else {
		for _, al := range alerts.Alerts {
			fmt.Fprintf(w, "⚠ %-24s %d left (threshold %d)\n", al.ProductName, al.Remaining, al.Threshold)
		}
	}

	if len(alerts.Alerts) > 0 {
		return exitFailed
	}
	return exitOK
}

func runExpenseAdd(ctx context.Context, w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	resp, err := a.client.AddExpense(ctx, &expenseInput)
	if err != nil {
		return reportError(w, err)
	}
	printMessage(w, resp.Message, fmt.Sprintf("Recorded expense of %s", sms.FormatCost(expenseInput.Amount)))
	return exitOK
}

func runExpenseList(ctx context.Context, w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	sum, err := a.client.TrackExpenses(ctx, expensesAll)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		writeJSON(w, sum)
		return exitOK
	}
	for _, e := range sum.Expenses {
		fmt.Fprintf(w, "%-12s %-28s %-14s %12s\n", e.Date, truncate(e.Description, 28), e.Category, sms.FormatCost(e.Amount))
	}
	fmt.Fprintf(w, "\nTotal: %s\n", sms.FormatCost(sum.Total))
	return exitOK
}
