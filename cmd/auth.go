// ABOUTME: Auth commands: login, logout, whoami, signup and email verification
// ABOUTME: Login stores the issued token in local state for later commands

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
)

var (
	loginEmail    string
	loginPassword string

	signupInput client.SignupRequest

	verifyToken string
	resendEmail string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in, sign out and manage your account",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	Long: `Sign in with email and password. Missing values are prompted for
interactively.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if loginEmail == "" || loginPassword == "" {
			if err := promptLogin(); err != nil {
				fmt.Fprintf(os.Stdout, "Error: %v\n", err)
				os.Exit(exitErrored)
			}
		}

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runLogout(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runWhoami(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new business account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runSignup(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var verifyEmailCmd = &cobra.Command{
	Use:   "verify-email",
	Short: "Confirm an email address with the emailed token",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runVerifyEmail(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var resendVerificationCmd = &cobra.Command{
	Use:   "resend-verification",
	Short: "Send the verification email again",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runResendVerification(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, signupCmd, verifyEmailCmd, resendVerificationCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")

	signupCmd.Flags().StringVar(&signupInput.BusinessName, "business-name", "", "Business name")
	signupCmd.Flags().StringVar(&signupInput.FirstName, "first-name", "", "First name")
	signupCmd.Flags().StringVar(&signupInput.LastName, "last-name", "", "Last name")
	signupCmd.Flags().StringVar(&signupInput.Email, "email", "", "Email address")
	signupCmd.Flags().StringVar(&signupInput.Phone, "phone", "", "Phone number")
	signupCmd.Flags().StringVar(&signupInput.Password, "password", "", "Password (at least 8 characters)")

	verifyEmailCmd.Flags().StringVar(&verifyToken, "token", "", "Verification token from the email")
	resendVerificationCmd.Flags().StringVar(&resendEmail, "email", "", "Email address")
}

// promptLogin asks for any missing credentials
func promptLogin() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&loginEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&loginPassword),
		),
	).Run()
}

// runLogin signs in and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	resp, err := a.client.Login(ctx, &client.LoginRequest{Email: loginEmail, Password: loginPassword})
	if errors.Is(err, client.ErrSessionExpired) {
		fmt.Fprintln(w, "Error: invalid email or password")
		return exitFailed
	}
	if err != nil {
		return reportError(w, err)
	}
	if resp.AccessToken == "" {
		fmt.Fprintln(w, "Error: backend did not return an access token")
		return exitErrored
	}
	if err := a.session.Login(resp.AccessToken, resp.BusinessName); err != nil {
		return reportError(w, err)
	}

	// Warm the cached balance so the send gate has a value to check against.
	if info, err := a.client.UserInfo(ctx); err == nil {
		a.session.SetBalance(info.SMSBalance)
	}

	if IsJSONOutput() {
		writeJSON(w, map[string]any{
			"status":        "logged_in",
			"business_name": a.session.BusinessName(),
			"sms_balance":   a.session.Balance(),
		})
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", displayName(a.session.BusinessName(), loginEmail))
	}
	return exitOK
}

// runLogout clears the stored session and returns exit code
func runLogout(w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	a.session.Logout()
	if IsJSONOutput() {
		writeJSON(w, map[string]string{"status": "logged_out"})
	} else {
		fmt.Fprintln(w, "Logged out")
	}
	return exitOK
}

// runWhoami shows the current account and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	a, err := openApp()
	if err != nil {
		return reportError(w, err)
	}
	defer a.Close()

	info, err := a.client.UserInfo(ctx)
	if err != nil {
		return reportError(w, err)
	}
	a.session.SetBusinessName(info.BusinessName)
	a.session.SetBalance(info.SMSBalance)

	if IsJSONOutput() {
		writeJSON(w, info)
	} else {
		fmt.Fprintln(w, formatUserHuman(info))
	}
	return exitOK
}

// runSignup registers an account and returns exit code
func runSignup(ctx context.Context, w io.Writer) int {
	c := client.New(resolveAPIURL(), nil)
	resp, err := c.Signup(ctx, &signupInput)
	if err != nil {
		return reportError(w, err)
	}
	printMessage(w, resp.Message, "Account created. Check your email to verify it.")
	return exitOK
}

// runVerifyEmail confirms an email token and returns exit code
func runVerifyEmail(ctx context.Context, w io.Writer) int {
	if verifyToken == "" {
		fmt.Fprintln(w, "Error: --token is required")
		return exitErrored
	}
	c := client.New(resolveAPIURL(), nil)
	resp, err := c.VerifyEmail(ctx, verifyToken)
	if err != nil {
		return reportError(w, err)
	}
	printMessage(w, resp.Message, "Email verified. You can now log in.")
	return exitOK
}

// runResendVerification requests a new verification email and returns exit code
func runResendVerification(ctx context.Context, w io.Writer) int {
	if resendEmail == "" {
		fmt.Fprintln(w, "Error: --email is required")
		return exitErrored
	}
	c := client.New(resolveAPIURL(), nil)
	resp, err := c.ResendVerification(ctx, resendEmail)
	if err != nil {
		return reportError(w, err)
	}
	printMessage(w, resp.Message, "Verification email sent.")
	return exitOK
}

// resolveAPIURL returns the API URL for public calls that need no local state
func resolveAPIURL() string {
	cfg, err := loadConfig()
	if err != nil {
		if apiURL != "" {
			return apiURL
		}
		return "http://localhost:5000"
	}
	return cfg.APIURL
}

func printMessage(w io.Writer, msg, fallback string) {
	if msg == "" {
		msg = fallback
	}
	if IsJSONOutput() {
		writeJSON(w, map[string]string{"message": msg})
		return
	}
	fmt.Fprintln(w, msg)
}

func displayName(businessName, email string) string {
	if businessName != "" {
		return businessName
	}
	return email
}

// formatUserHuman formats account info for human readability
func formatUserHuman(info *client.UserInfo) string {
	plan := "Standard"
	if info.Premium {
		plan = "Premium"
	}
	return fmt.Sprintf(`Business:     %s
Name:         %s %s
Email:        %s
Phone:        %s
Plan:         %s
SMS Credits:  %d`, info.BusinessName, info.FirstName, info.LastName, info.Email, info.Phone, plan, info.SMSBalance)
}
