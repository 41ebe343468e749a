// ABOUTME: Interactive terminal UI command
// ABOUTME: Launches the full-screen console with logs redirected to a file

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/logger"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive console",
	Long: `Open the full-screen console for sending bulk SMS and managing inventory.

Logs are written to debug.log in the config directory so they do not
draw over the screen.`,
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runTUI(os.Stderr); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(w, err)
	}

	log, closer := logger.InitFile(cfg.ConfigDir, cfg.LogLevel, cfg.LogFormat)
	defer closer.Close()

	a, err := newApp(cfg, log)
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	err = tui.Run(tui.Deps{
		API:     a.client,
		Session: a.session,
		Router:  a.router,
		SMS:     a.sms,
		Senders: a.senders,
		KV:      a.db,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitErrored
	}
	return exitOK
}
