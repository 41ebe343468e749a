// ABOUTME: Service commands for choosing the active product line
// ABOUTME: Shows, selects and resolves the service implied by a path

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/router"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Show or change the active service (sms or inventory)",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runServiceShow(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var serviceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active service",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runServiceShow(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var serviceSelectCmd = &cobra.Command{
	Use:       "select <sms|inventory|none>",
	Short:     "Set the active service",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"sms", "inventory", "none"},
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runServiceSelect(os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var serviceResolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Apply navigation to a path and show the resulting service",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runServiceResolve(os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var serviceMenuCmd = &cobra.Command{
	Use:   "menu",
	Short: "List the navigation menu for the active service",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runServiceMenu(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(serviceCmd)
	serviceCmd.AddCommand(serviceShowCmd, serviceSelectCmd, serviceResolveCmd, serviceMenuCmd)
}

func runServiceShow(w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	current := a.router.Restore()
	if IsJSONOutput() {
		writeJSON(w, map[string]string{"service": current.String()})
	} else {
		fmt.Fprintf(w, "Active service: %s\n", current)
	}
	return exitOK
}

func runServiceSelect(w io.Writer, name string) int {
	svc, err := router.ParseService(name)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitErrored
	}

	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	if err := a.router.Select(svc); err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		writeJSON(w, map[string]string{"service": svc.String()})
	} else {
		fmt.Fprintf(w, "Active service set to %s\n", svc)
	}
	return exitOK
}

func runServiceResolve(w io.Writer, path string) int {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	d := a.router.Navigate(path)
	if IsJSONOutput() {
		writeJSON(w, map[string]string{
			"path":     path,
			"service":  d.Service.String(),
			"redirect": d.Redirect,
		})
		return exitOK
	}

	fmt.Fprintf(w, "Path:     %s\nService:  %s\n", path, d.Service)
	if d.Redirect != "" {
		fmt.Fprintf(w, "Redirect: %s\n", d.Redirect)
	}
	return exitOK
}

func runServiceMenu(w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	current := a.router.Restore()
	items := router.MenuFor(current)
	if IsJSONOutput() {
		out := make([]map[string]string, 0, len(items))
		for _, it := range items {
			out = append(out, map[string]string{"label": it.Label, "path": it.Path})
		}
		writeJSON(w, map[string]any{"service": current.String(), "items": out})
		return exitOK
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "No active service. Run 'nkwabiz service select sms' or 'nkwabiz service select inventory'.")
		return exitFailed
	}
	fmt.Fprintf(w, "%s menu\n", strings.ToUpper(current.String()))
	for _, it := range items {
		fmt.Fprintf(w, "  %-16s %s\n", it.Label, it.Path)
	}
	return exitOK
}
