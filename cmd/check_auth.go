package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"darkstatic/internal/models"
	"darkstatic/internal/session"
	"darkstatic/pkg/utils"
)

var checkAuthCmd = &cobra.Command{
	Use:   "check-auth",
	Short: "Verify credentials against a canvas",
	Long: `Sign in to a canvas and report the session that an upload would use.
Nothing is uploaded. The CSRF token is masked in the output.`,
	Example: `  # Check credentials from the environment
  darkstatic check-auth

  # Check credentials for a specific canvas
  darkstatic check-auth --user alice --canvas demo

  # Verbose output
  darkstatic check-auth --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCheckAuth(cmd); err != nil {
			utils.PrintError(err, "check-auth")
			return err
		}
		return nil
	},
}

func runCheckAuth(cmd *cobra.Command) error {
	host, err := getHostTarget(cmd)
	if err != nil {
		return err
	}
	creds, err := getCredentials(cmd)
	if err != nil {
		return err
	}

	if isVerbose(cmd) {
		cmd.Printf("Checking credentials for %s on canvas: %s\n", creds.Username, host.Canvas)
	}

	sess, err := session.New(session.WithTimeout(cfg.AuthTimeout)).Authenticate(context.Background(), host, creds)
	if err != nil {
		return err
	}

	info := models.SessionInfo{
		Canvas:        host.Canvas,
		AuthURL:       host.AuthURL(),
		CookieName:    cookieName(sess.Cookie),
		CSRFToken:     maskToken(sess.CSRFToken),
		OperationTime: utils.FormatTime(time.Now()),
	}
	if err := utils.PrintJSON(info); err != nil {
		return err
	}

	if isVerbose(cmd) {
		cmd.Printf("Credentials are valid\n")
	}
	return nil
}

func cookieName(cookie string) string {
	name, _, found := strings.Cut(cookie, "=")
	if !found {
		return ""
	}
	return strings.TrimSpace(name)
}

func maskToken(token string) string {
	const visible = 4
	if len(token) <= visible {
		return strings.Repeat("*", len(token))
	}
	return token[:visible] + strings.Repeat("*", len(token)-visible)
}

func init() {
	addAuthFlags(checkAuthCmd)
}
