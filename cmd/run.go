package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spiralbot/spiralbot/internal/assets"
	"github.com/spiralbot/spiralbot/internal/element"
	"github.com/spiralbot/spiralbot/internal/history"
	"github.com/spiralbot/spiralbot/internal/output"
	"github.com/spiralbot/spiralbot/internal/workflow"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot workflow: launch, login, enter game",
	Long:  "Execute the core module chain against the configured game client. Exits 0 on success or clean interruption, 1 on the first module failure.",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("skip-launch", false, "Assume the client is already running")
	runCmd.Flags().Bool("no-history", false, "Do not write an execution-history record")
}

func runRun(cmd *cobra.Command, args []string) error {
	skipLaunch, _ := cmd.Flags().GetBool("skip-launch")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	if missing, err := validateAssets(); err != nil {
		logger.Warn().Int("missing", len(missing)).Err(err).
			Msg("template set incomplete, detection will rely on fallbacks")
	}

	s := newStack()
	run := &workflow.Run{
		Ctrl:   s.ctrl,
		Assets: s.registry,
		Log:    logger,
	}

	var probe workflow.ProcessProbe
	if skipLaunch {
		probe = func() (bool, error) { return true, nil }
	} else if cfg.Launcher.ProcessName != "" {
		probe = workflow.ProbeProcessName(cfg.Launcher.ProcessName)
	}

	runner := workflow.NewRunner(run, probe)
	runner.Add(
		&workflow.LaunchModule{
			Path:          cfg.Launcher.Path,
			Args:          cfg.Launcher.Args,
			ReadyTimeout:  cfg.Timing.LoadTimeout,
			ReadyInterval: cfg.Timing.WaitInterval,
		},
		&workflow.LoginModule{
			Username:       cfg.Credentials.Username,
			Password:       cfg.Credentials.Password,
			LoadedTimeout:  cfg.Timing.LoadTimeout,
			LoadedInterval: cfg.Timing.WaitInterval,
		},
		&workflow.EnterGameModule{
			LoadTimeout:  cfg.Timing.LoadTimeout,
			LoadInterval: cfg.Timing.WaitInterval,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var tracker *history.Tracker
	if cfg.History.Enabled && !noHistory {
		tracker = history.NewTracker(cfg.History.Dir)
		runner.Observe(tracker.RecordModule)
	}

	res := runner.Run(ctx)

	result := output.NewRunResult(res)
	if tracker != nil {
		path, err := tracker.Finish(res)
		if err != nil {
			logger.Warn().Err(err).Msg("could not write history record")
		} else {
			result.RunID = tracker.RunID()
			result.History = path
		}
	}

	if err := output.Print(result); err != nil {
		return err
	}
	if res.Status == element.StatusFailure {
		os.Exit(1)
	}
	return nil
}

func validateAssets() ([]string, error) {
	reg := assets.NewRegistry(cfg.Detection.TemplateDir)
	missing, err := reg.Validate()
	names := make([]string, len(missing))
	for i, n := range missing {
		names[i] = string(n)
	}
	return names, err
}
