package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/efaktura/internal/logger"
	"github.com/rezonia/efaktura/internal/scheduler"
)

var subscribeForce bool

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Renew the daily eFaktura status notification subscription",
	Long: `Subscribe to eFaktura status change notifications for the next day.

Intended to run once a day shortly after midnight, from cron or a similar
orchestrator. Skipped unless EFAKTURA_SCHEDULER_ENABLED is true or --force
is given. Exits 0 on success and 1 on failure.

Examples:
  efaktura subscribe
  efaktura subscribe --force --env demo`,
	Args: cobra.NoArgs,
	RunE: runSubscribe,
}

func init() {
	rootCmd.AddCommand(subscribeCmd)

	subscribeCmd.Flags().BoolVar(&subscribeForce, "force", false, "Run even when the scheduler is disabled in config")
}

func runSubscribe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Scheduler.Enabled && !subscribeForce {
		fmt.Fprintln(cmd.ErrOrStderr(), "eFaktura subscribe skipped: scheduler disabled (use --force to run anyway)")
		return nil
	}

	client, log, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	runner := scheduler.NewRunner(client.Public, logger.WithComponent(log, "subscribe"), cfg.Scheduler.LogResults)
	res := runner.Run(cmd.Context())
	if !res.OK() {
		fmt.Fprintln(os.Stderr, res.Message)
		return &ExitError{Code: res.ExitCode}
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}
