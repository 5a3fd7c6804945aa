// Package workflow models a bot run as an ordered chain of modules. The
// runner executes modules strictly in order and halts at the first failure;
// a module that skips is logged and the chain continues. There is no
// rollback and no mid-run resume.
//
// The automated target exposes no internal state, so every transition guard
// is itself a detection call against the screen.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gopsproc "github.com/shirou/gopsutil/v4/process"

	"github.com/spiralbot/spiralbot/internal/assets"
	"github.com/spiralbot/spiralbot/internal/automate"
	"github.com/spiralbot/spiralbot/internal/element"
)

// Module is a single workflow state with one execute transition.
type Module interface {
	Name() string
	Execute(run *Run) element.ActionResult
}

// Run carries the per-run environment every module executes against.
// AlreadyRunning is computed once by the runner before the first module and
// never recomputed; the launch and enter-game modules branch on it because
// the visual signals differ between a fresh boot and an attach.
type Run struct {
	Ctrl           *automate.Controller
	Assets         *assets.Registry
	Log            zerolog.Logger
	AlreadyRunning bool
}

// Criteria builds search criteria for a registered template asset.
func (r *Run) Criteria(name assets.Name, kind element.Kind) element.SearchCriteria {
	c := element.Criteria(strings.TrimSuffix(string(name), ".png"), kind)
	c.Template = string(name)
	return c
}

// ProcessProbe reports whether the target application is already running.
type ProcessProbe func() (bool, error)

// ProbeProcessName returns a probe that scans the process table for an
// executable whose name contains target (case insensitive).
func ProbeProcessName(target string) ProcessProbe {
	return func() (bool, error) {
		procs, err := gopsproc.Processes()
		if err != nil {
			return false, err
		}
		target := strings.ToLower(target)
		for _, p := range procs {
			name, err := p.Name()
			if err != nil {
				continue
			}
			if strings.Contains(strings.ToLower(name), target) {
				return true, nil
			}
		}
		return false, nil
	}
}

// Runner executes a module chain against a shared Run environment.
type Runner struct {
	run      *Run
	probe    ProcessProbe
	modules  []Module
	observer func(name string, res element.ActionResult, elapsed time.Duration)
	log      zerolog.Logger
}

// NewRunner builds a runner. probe may be nil, in which case the run starts
// with AlreadyRunning false.
func NewRunner(run *Run, probe ProcessProbe) *Runner {
	return &Runner{
		run:   run,
		probe: probe,
		log:   run.Log.With().Str("component", "workflow").Logger(),
	}
}

// Add appends modules to the chain in execution order.
func (r *Runner) Add(modules ...Module) {
	r.modules = append(r.modules, modules...)
}

// Observe registers a callback invoked after every module with its outcome.
// Used by the execution-history tracker.
func (r *Runner) Observe(fn func(name string, res element.ActionResult, elapsed time.Duration)) {
	r.observer = fn
}

// Run executes the chain. It computes the already-running flag once, then
// runs each module in order. The first failure halts the chain and the
// returned result names the failing module. Cancellation of ctx between
// modules stops the run cleanly without reporting failure.
func (r *Runner) Run(ctx context.Context) element.ActionResult {
	start := time.Now()

	if r.probe != nil {
		running, err := r.probe()
		if err != nil {
			r.log.Warn().Err(err).Msg("process probe failed, assuming fresh boot")
		}
		r.run.AlreadyRunning = running
	}
	r.log.Info().
		Int("modules", len(r.modules)).
		Bool("already_running", r.run.AlreadyRunning).
		Msg("run starting")

	for _, m := range r.modules {
		if err := ctx.Err(); err != nil {
			r.log.Info().Str("module", m.Name()).Msg("run interrupted")
			return element.SkipResult(fmt.Sprintf("run interrupted before module %q", m.Name()))
		}

		r.log.Info().Str("module", m.Name()).Msg("module starting")
		moduleStart := time.Now()
		res := m.Execute(r.run)
		if r.observer != nil {
			r.observer(m.Name(), res, time.Since(moduleStart))
		}

		switch {
		case res.Skipped():
			r.log.Info().Str("module", m.Name()).Str("reason", res.Message).Msg("module skipped")
		case !res.Success():
			r.log.Error().
				Str("module", m.Name()).
				Str("message", res.Message).
				Err(res.Err).
				Msg("module failed, halting run")
			return element.ActionResult{
				Status:  element.StatusFailure,
				Message: fmt.Sprintf("module %q failed: %s", m.Name(), res.Message),
				Err:     res.Err,
				Data:    map[string]any{"failed_module": m.Name()},
			}
		default:
			r.log.Info().Str("module", m.Name()).Str("message", res.Message).Msg("module complete")
		}
	}

	elapsed := time.Since(start)
	r.log.Info().Dur("elapsed", elapsed).Msg("run complete")
	return element.SuccessResult(
		fmt.Sprintf("%d modules completed in %s", len(r.modules), elapsed.Round(time.Millisecond)),
		map[string]any{"elapsed": elapsed.Seconds(), "modules": len(r.modules)})
}
