package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	gopsproc "github.com/shirou/gopsutil/v4/process"

	"github.com/spiralbot/spiralbot/internal/history"
	"github.com/spiralbot/spiralbot/internal/output"
)

// StatusResult is the output of the status command.
type StatusResult struct {
	Running bool         `yaml:"running"        json:"running"`
	Process string       `yaml:"process"        json:"process"`
	PIDs    []int32      `yaml:"pids,omitempty" json:"pids,omitempty"`
	Runs    []RunSummary `yaml:"runs,omitempty" json:"runs,omitempty"`
}

// RunSummary is one line of recent run history.
type RunSummary struct {
	ID      string  `yaml:"id"      json:"id"`
	Started string  `yaml:"started" json:"started"`
	Outcome string  `yaml:"outcome" json:"outcome"`
	Seconds float64 `yaml:"seconds" json:"seconds"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the game client is running and show recent runs",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().Int("runs", 5, "Number of recent runs to include (0 = none)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	maxRuns, _ := cmd.Flags().GetInt("runs")

	result := StatusResult{Process: cfg.Launcher.ProcessName}

	procs, err := gopsproc.Processes()
	if err != nil {
		logger.Warn().Err(err).Msg("could not read process table")
	} else {
		target := strings.ToLower(cfg.Launcher.ProcessName)
		for _, p := range procs {
			name, err := p.Name()
			if err != nil {
				continue
			}
			if target != "" && strings.Contains(strings.ToLower(name), target) {
				result.Running = true
				result.PIDs = append(result.PIDs, p.Pid)
			}
		}
	}

	if maxRuns > 0 {
		records, err := history.List(cfg.History.Dir)
		if err != nil {
			logger.Warn().Err(err).Msg("could not read run history")
		}
		for i, r := range records {
			if i >= maxRuns {
				break
			}
			result.Runs = append(result.Runs, RunSummary{
				ID:      r.ID,
				Started: r.StartedAt.Format("2006-01-02 15:04:05"),
				Outcome: string(r.Outcome),
				Seconds: r.Duration().Seconds(),
			})
		}
	}

	return output.Print(result)
}
