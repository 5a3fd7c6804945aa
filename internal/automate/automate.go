// Package automate layers interaction primitives over the detection core:
// polling waits, detect-then-click and detect-then-type with bounded retries,
// a generic retry combinator, and clipboard-based text sampling with adaptive
// offset correction.
//
// Execution is single threaded. Every suspension is a plain blocking sleep
// inside a polling loop, and no two input events are ever injected
// concurrently.
package automate

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/spiralbot/spiralbot/internal/element"
	"github.com/spiralbot/spiralbot/internal/screen"
)

// Timing defaults used when the caller does not override them.
const (
	DefaultWaitTimeout  = 10 * time.Second
	DefaultWaitInterval = 1 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryDelay   = 2 * time.Second
	DefaultSettleDelay  = 500 * time.Millisecond
)

// Detector is the slice of the detection orchestrator the automation layer
// needs. Probe is the quiet variant used inside polling loops.
type Detector interface {
	Find(criteria element.SearchCriteria) (element.UIElement, bool)
	Probe(criteria element.SearchCriteria) (element.UIElement, bool)
}

// Controller drives the screen through detect-then-act primitives.
type Controller struct {
	detector  Detector
	input     screen.Inputter
	clipboard screen.Clipboard
	log       zerolog.Logger

	MaxRetries  int
	RetryDelay  time.Duration
	SettleDelay time.Duration

	// sleep is swapped out by tests that exercise retry paths.
	sleep func(time.Duration)
}

// New returns a Controller with default timings.
func New(det Detector, input screen.Inputter, clip screen.Clipboard, log zerolog.Logger) *Controller {
	return &Controller{
		detector:    det,
		input:       input,
		clipboard:   clip,
		log:         log.With().Str("component", "automate").Logger(),
		MaxRetries:  DefaultMaxRetries,
		RetryDelay:  DefaultRetryDelay,
		SettleDelay: DefaultSettleDelay,
		sleep:       time.Sleep,
	}
}
