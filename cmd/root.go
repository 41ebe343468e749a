// ABOUTME: Root command for the nkwabiz CLI
// ABOUTME: Handles global flags, configuration and logging setup

package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/config"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/logger"
)

var (
	apiURL     string
	jsonOutput bool
)

// Exit codes shared by all commands
const (
	exitOK      = 0
	exitFailed  = 1
	exitErrored = 2
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "nkwabiz",
	Short: "Console client for Nkwabiz bulk SMS and inventory",
	Long: `nkwabiz is a command-line and terminal client for the Nkwabiz platform.

It covers bulk SMS (compose, send, history, credits) and inventory
(stock, sales, expenses) for a signed-in business account.

Exit codes:
  0 - Success
  1 - Business failure (send blocked, partial batch failure, rejected request)
  2 - Error (connectivity, session expired, invalid input)

Environment Variables:
  NKWABIZ_API_URL             Backend API URL (default: http://localhost:5000)
  NKWABIZ_CONFIG_DIR          Local state directory (default: ~/.config/nkwabiz)
  NKWABIZ_HTTP_TIMEOUT        Request timeout, 0 disables (default: 30s)
  NKWABIZ_SOCKS5_PROXY        Route requests through a SOCKS5 proxy (host:port)
  NKWABIZ_SMS_MAX_RECIPIENTS  Recipients allowed per send (default: 80)
  NKWABIZ_SMS_UNIT_PRICE      Estimated GHS cost per message (default: 0.03)
  LOG_LEVEL                   debug, info, warn, error (default: info)
  LOG_FORMAT                  text or json (default: text)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() == tuiCmd.Name() {
			return
		}
		cfg, err := config.Load()
		if err != nil {
			logger.Init(os.Stderr, "info", "text")
			return
		}
		logger.Init(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides NKWABIZ_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadConfig reads configuration and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
	}
	return cfg, nil
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
