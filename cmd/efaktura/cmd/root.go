package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rezonia/efaktura/internal/config"
	"github.com/rezonia/efaktura/internal/logger"
	"github.com/rezonia/efaktura/pkg/efaktura"
)

var (
	version = "1.0.0"

	// Global flags
	configPath   string
	envOverride  string
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "efaktura",
	Short: "Work with the Serbian eFaktura e-invoicing API",
	Long: `efaktura is a CLI for the eFaktura (SEF) API of the Serbian Ministry of Finance.

Configuration comes from EFAKTURA_* environment variables, a .env file in the
working directory, and an optional --config file.

Examples:
  # Renew the daily status notification subscription
  efaktura subscribe --force

  # Run the scheduler daemon with the webhook endpoint
  efaktura serve

  # Look up a sales invoice on the demo environment
  efaktura sales get 12345 --env demo

  # Download the PDF of a purchase invoice
  efaktura purchase pdf 678 -o invoice.pdf`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExitError ends the process with Code after the command has already
// reported its outcome.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (yaml, json, toml or env)")
	rootCmd.PersistentFlags().StringVar(&envOverride, "env", "", "Environment to use: production or demo (env: EFAKTURA_ENVIRONMENT)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and request logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
}

// loadConfig reads configuration and applies the global flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if envOverride != "" {
		cfg.Environment = strings.ToLower(strings.TrimSpace(envOverride))
	}
	if verbose {
		cfg.Logging.Enabled = true
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.Setup(cfg.LoggerConfig())
}

// newClient builds the API client and logger for cfg.
func newClient(cfg *config.Config) (*efaktura.Client, zerolog.Logger, error) {
	log, err := setupLogger(cfg)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	client, err := efaktura.New(cfg, efaktura.WithLogger(log))
	if err != nil {
		return nil, log, err
	}
	printVerbose("Using %s (%s)\n", client.BaseURL(), cfg.Environment)
	return client, log, nil
}

// withClient runs fn with a fresh client and closes it afterwards.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, client *efaktura.Client) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(cmd.Context(), client)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
