package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zmknox/traktkit/auth"
	"github.com/zmknox/traktkit/config"
	"github.com/zmknox/traktkit/trakt"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	manager *auth.Manager
	client  *trakt.Client

	appVersion   = "dev"
	appBuildTime = "unknown"

	// Command flags
	filterExpr string
	page       int
	limit      int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "traktkit",
	Short: "A CLI for browsing Trakt.tv and managing your watchlist",
	Long: `traktkit is a CLI client for the Trakt.tv content catalog. It signs in
via OAuth, keeps the access token fresh, and exposes trending lists,
search, comments, credits, and your watchlist.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records the build metadata shown by the version command.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Credential store backing the token lifecycle
	store, err := auth.NewFileStore(cfg.Auth.CredentialsFile)
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}

	manager, err = auth.NewManager(
		cfg.Trakt.ClientID,
		cfg.Trakt.ClientSecret,
		cfg.Trakt.RedirectURI,
		store,
		store,
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	client, err = trakt.NewClient(cfg.Trakt.ClientID, manager, logger,
		trakt.WithUserAgent("traktkit/"+appVersion))
	if err != nil {
		return fmt.Errorf("failed to create Trakt client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; drop color when not writing to a terminal
	useColor := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !useColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
