// Package detect orchestrates the detection strategies. Given search
// criteria, the Detector tries each permitted strategy in the order the
// criteria list them and returns the first candidate whose confidence meets
// the threshold.
//
// The first-match rule is deliberate: cheap, reliable strategies (template)
// run before expensive, fuzzy ones (OCR), which bounds average latency. The
// orchestrator never compares candidates across strategies to pick a global
// best, so strategy order in the criteria is part of the contract.
package detect

import (
	"github.com/rs/zerolog"

	"github.com/spiralbot/spiralbot/internal/assets"
	"github.com/spiralbot/spiralbot/internal/element"
	"github.com/spiralbot/spiralbot/internal/ocr"
	"github.com/spiralbot/spiralbot/internal/screen"
)

// Detector routes search criteria to detection strategies.
type Detector struct {
	strategies map[element.Strategy]Strategy
	log        zerolog.Logger
}

// New builds a Detector over the real strategy set. The OCR availability
// report comes from the one-time startup probe; an unavailable engine is
// logged here once and then silently skipped on every detection call.
func New(cap screen.Capturer, reg *assets.Registry, engine ocr.Engine, report ocr.Report, log zerolog.Logger) *Detector {
	log = log.With().Str("component", "detect").Logger()

	if !report.Available {
		log.Warn().AnErr("cause", report.Err).
			Msg("OCR engine unavailable; text detection strategy will be skipped")
	} else {
		log.Debug().Str("version", report.Version).Msg("OCR engine available")
	}

	return NewWithStrategies(log,
		&templateStrategy{cap: cap, reg: reg, log: log},
		&visualStrategy{cap: cap, log: log},
		&ocrStrategy{cap: cap, engine: engine, report: report, log: log},
		&coordinateStrategy{},
	)
}

// NewWithStrategies builds a Detector over an explicit strategy set.
// Tests use this to substitute fakes.
func NewWithStrategies(log zerolog.Logger, strategies ...Strategy) *Detector {
	m := make(map[element.Strategy]Strategy, len(strategies))
	for _, s := range strategies {
		m[s.Kind()] = s
	}
	return &Detector{strategies: m, log: log}
}

// Find locates an element matching the criteria, trying strategies in
// criteria order. A miss is logged at warn level.
func (d *Detector) Find(criteria element.SearchCriteria) (element.UIElement, bool) {
	return d.find(criteria, false)
}

// Probe is Find with misses logged at debug level. Polling loops use it:
// there, "not found yet" is the expected steady state, not an anomaly.
func (d *Detector) Probe(criteria element.SearchCriteria) (element.UIElement, bool) {
	return d.find(criteria, true)
}

// IsPresent reports whether the element is currently detectable.
func (d *Detector) IsPresent(criteria element.SearchCriteria) bool {
	_, ok := d.Probe(criteria)
	return ok
}

func (d *Detector) find(criteria element.SearchCriteria, quiet bool) (element.UIElement, bool) {
	if err := criteria.Validate(); err != nil {
		d.log.Error().Err(err).Msg("invalid search criteria")
		return element.UIElement{}, false
	}

	for _, kind := range criteria.Strategies {
		strategy, known := d.strategies[kind]
		if !known {
			d.log.Debug().Str("element", criteria.Name).Str("strategy", string(kind)).
				Msg("strategy not registered")
			continue
		}

		el, found := strategy.Find(criteria)
		if !found {
			continue
		}
		if el.Confidence >= criteria.Threshold {
			d.log.Debug().Str("element", criteria.Name).
				Str("strategy", string(kind)).
				Float64("confidence", el.Confidence).
				Msg("element found")
			return el, true
		}
		d.log.Debug().Str("element", criteria.Name).
			Str("strategy", string(kind)).
			Float64("confidence", el.Confidence).
			Float64("threshold", criteria.Threshold).
			Msg("candidate below threshold")
	}

	miss := d.log.Warn()
	if quiet {
		miss = d.log.Debug()
	}
	miss.Str("element", criteria.Name).Msg("element not found by any strategy")
	return element.UIElement{}, false
}

// FindAll locates each of the given criteria, skipping the ones that cannot
// be found. The returned slice preserves request order.
func (d *Detector) FindAll(criteriaList []element.SearchCriteria) []element.UIElement {
	found := make([]element.UIElement, 0, len(criteriaList))
	for _, c := range criteriaList {
		if el, ok := d.Find(c); ok {
			found = append(found, el)
		}
	}
	d.log.Info().Int("found", len(found)).Int("requested", len(criteriaList)).
		Msg("batch detection complete")
	return found
}
