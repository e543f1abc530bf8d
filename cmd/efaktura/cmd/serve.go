package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/efaktura/internal/logger"
	"github.com/rezonia/efaktura/internal/scheduler"
	"github.com/rezonia/efaktura/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the subscribe scheduler and the webhook HTTP server",
	Long: `Run the efaktura daemon.

When EFAKTURA_SCHEDULER_ENABLED is true the daily subscribe runs at
EFAKTURA_SUBSCRIBE_AT (HH:MM, local time). The HTTP server provides:
  - GET  /health                 - Health check
  - GET  /api/v1/scheduler       - Scheduler status and last result
  - POST /api/v1/scheduler/run   - Run subscribe now
  - POST /api/v1/notifications   - Status change webhook

Examples:
  # Start on the configured address
  efaktura serve

  # Start on a custom port in debug mode
  efaktura serve --address :9090 --debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (env: EFAKTURA_SERVER_ADDRESS)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 30*time.Second, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	spec, err := cfg.Scheduler.CronSpec()
	if err != nil {
		return err
	}

	client, log, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()

	schedLog := logger.WithComponent(log, "scheduler")
	runner := scheduler.NewRunner(client.Public, schedLog, cfg.Scheduler.LogResults)
	sched := scheduler.New(runner, spec, schedLog)
	if cfg.Scheduler.Enabled {
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()
	} else {
		log.Info().Msg("eFaktura subscribe scheduler disabled; manual runs only")
	}

	address := cfg.Server.Address
	if serverAddr != "" {
		address = serverAddr
	}

	httpLog := logger.WithComponent(log, "http")
	srv := server.NewServer(&server.Config{
		Address:      address,
		Environment:  cfg.Environment,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}, sched, server.WithLogger(httpLog))

	return srv.Run(ctx)
}
