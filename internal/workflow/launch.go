package workflow

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/spiralbot/spiralbot/internal/assets"
	"github.com/spiralbot/spiralbot/internal/element"
)

// LaunchModule spawns the target application and polls for its ready banner.
// If the run's already-running flag is set the spawn is skipped entirely.
type LaunchModule struct {
	// Path is the launcher executable; Args are passed through verbatim.
	Path string
	Args []string

	// ReadyTimeout bounds the post-spawn wait for the ready banner.
	ReadyTimeout  time.Duration
	ReadyInterval time.Duration
}

func (m *LaunchModule) Name() string { return "launch" }

func (m *LaunchModule) Execute(run *Run) element.ActionResult {
	if run.AlreadyRunning {
		return element.SkipResult("target already running, skipping launch")
	}
	if m.Path == "" {
		return element.FailureResult("no launcher path configured",
			fmt.Errorf("%w: launcher path empty", element.ErrConfiguration))
	}

	cmd := exec.Command(m.Path, m.Args...)
	if err := cmd.Start(); err != nil {
		return element.FailureResult(
			fmt.Sprintf("could not start %q", m.Path),
			fmt.Errorf("%w: %v", element.ErrExternalProcess, err))
	}
	// The launcher outlives the run; reap it in the background.
	go func() { _ = cmd.Wait() }()
	run.Log.Info().Str("path", m.Path).Int("pid", cmd.Process.Pid).Msg("launcher started")

	ready := run.Criteria(assets.LauncherReadyBanner, element.KindImage)
	res := run.Ctrl.WaitForElement(ready, m.ReadyTimeout, m.ReadyInterval)
	if !res.Success() {
		return element.FailureResult(
			"launcher never reached its ready signal",
			fmt.Errorf("%w: %v", element.ErrExternalProcess, res.Err))
	}
	return element.SuccessResult("launcher ready", res.Data)
}
