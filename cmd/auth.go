package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var authCode string

// authCmd groups the sign-in lifecycle commands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Trakt sign-in state",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Trakt via OAuth",
	Long: `Sign in to Trakt. Prints the authorization URL to visit in a browser;
after approving access, paste the authorization code back here (or pass
it directly with --code).`,
	RunE: runLogin,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the access token if it has expired",
	RunE:  runRefresh,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current sign-in state",
	RunE:  runStatus,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear stored credentials",
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVar(&authCode, "code", "", "authorization code from the redirect")

	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(refreshCmd)
	authCmd.AddCommand(statusCmd)
	authCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(authCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	code := strings.TrimSpace(authCode)
	if code == "" {
		fmt.Printf("Visit the following URL and approve access:\n\n  %s\n\n", manager.AuthorizeURL())
		fmt.Printf("Paste the authorization code here: ")
		fmt.Scanln(&code)
		code = strings.TrimSpace(code)
	}
	if code == "" {
		return fmt.Errorf("no authorization code provided")
	}

	if err := manager.ExchangeCode(context.Background(), code); err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	fmt.Println("✓ Signed in successfully!")
	return nil
}

func runRefresh(cmd *cobra.Command, args []string) error {
	if !manager.SignedIn() {
		return fmt.Errorf("not signed in; run 'traktkit auth login' first")
	}

	if !manager.NeedsRefresh() {
		fmt.Println("Access token is still valid.")
		return nil
	}

	if err := manager.Refresh(context.Background()); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	fmt.Println("✓ Access token refreshed.")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	if !manager.SignedIn() {
		fmt.Println("Signed out.")
		return nil
	}

	fmt.Println("Signed in.")
	if manager.NeedsRefresh() {
		fmt.Println("Access token has expired; run 'traktkit auth refresh'.")
	} else {
		fmt.Println("Access token is valid.")
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := manager.SignOut(); err != nil {
		return fmt.Errorf("sign-out failed: %w", err)
	}

	fmt.Println("✓ Signed out.")
	return nil
}
