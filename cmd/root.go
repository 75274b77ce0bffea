package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"darkstatic/config"
	"darkstatic/internal/apperr"
	"darkstatic/internal/models"
)

var (
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "darkstatic",
	Short: "Upload static assets to a Dark canvas",
	Long: `darkstatic is a command-line tool for uploading local files to a Dark canvas
as static assets.
It signs in with your Dark username and password, collects the files under the
given paths and sends them to the canvas in a single multipart upload.
Credentials can also be supplied through a .env file or environment variables
(DARK_USER, DARK_PASSWORD, DARK_CANVAS).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if isVerbose(cmd) {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	},
}

func Execute(config *config.Config) error {
	cfg = config
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(checkAuthCmd)
	rootCmd.AddCommand(listCmd)

	rootCmd.PersistentFlags().Bool("dev", false, "Run against the local development host")
	rootCmd.PersistentFlags().String("host", "", "Override the Dark host URL")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

func addAuthFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("user", "u", "", "Your Dark username (default: $DARK_USER)")
	cmd.Flags().StringP("password", "p", "", "Your Dark password (default: $DARK_PASSWORD, prompted if unset)")
	cmd.Flags().StringP("canvas", "c", "", "Your canvas (default: $DARK_CANVAS)")
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

// readPassword is swapped out in tests.
var readPassword = func(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func flagOrDefault(cmd *cobra.Command, name, fallback string) string {
	value, _ := cmd.Flags().GetString(name)
	if value != "" {
		return value
	}
	return fallback
}

func getCredentials(cmd *cobra.Command) (models.Credentials, error) {
	user := flagOrDefault(cmd, "user", cfg.Username)
	if user == "" {
		return models.Credentials{}, apperr.MissingArgument("user")
	}

	password := flagOrDefault(cmd, "password", cfg.Password)
	if password == "" {
		var err error
		password, err = readPassword(fmt.Sprintf("Password for %s: ", user))
		if err != nil {
			return models.Credentials{}, err
		}
	}
	if password == "" {
		return models.Credentials{}, apperr.MissingArgument("password")
	}

	return models.Credentials{Username: user, Password: password}, nil
}

func getHostTarget(cmd *cobra.Command) (models.HostTarget, error) {
	canvas := flagOrDefault(cmd, "canvas", cfg.Canvas)
	if canvas == "" {
		return models.HostTarget{}, apperr.MissingArgument("canvas")
	}

	override, _ := cmd.Flags().GetString("host")
	dev, _ := cmd.Flags().GetBool("dev")

	return models.NewHostTarget(cfg.ResolveHost(override, dev), canvas), nil
}

func getPathSpecs(args []string) ([]string, error) {
	if len(args) == 0 || strings.TrimSpace(strings.Join(args, "")) == "" {
		return nil, apperr.MissingArgument("paths")
	}
	return args, nil
}
