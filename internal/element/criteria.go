package element

import "fmt"

// DefaultConfidenceThreshold is applied when criteria leave the threshold unset.
const DefaultConfidenceThreshold = 0.8

// SearchCriteria describes a detection request: which element is wanted and
// which strategies, in order, are permitted to look for it.
type SearchCriteria struct {
	// Name is the logical element name used in logs and results.
	Name string

	// Kind guides kind-specific heuristics (button vs input field rules).
	Kind Kind

	// Template is the logical template asset name, resolved to a PNG path by
	// the asset registry. Empty means the template strategy has nothing to do.
	Template string

	// Text is the string the OCR strategy searches for. Empty means the OCR
	// strategy has nothing to do.
	Text string

	// Threshold is the minimum confidence for a result to be accepted.
	// Must lie in [0, 1].
	Threshold float64

	// Strategies is the ordered list of permitted detection strategies.
	// The orchestrator tries them in exactly this order and returns the first
	// hit meeting Threshold.
	Strategies []Strategy

	// Region restricts the search to a screen area. Nil means full screen.
	Region *BoundingBox

	// Fallback is an optional fixed coordinate used by the coordinates
	// strategy when no visual technique finds the element.
	Fallback *Coordinates
}

// Criteria constructs SearchCriteria with the default threshold and strategy
// order. Callers adjust fields as needed before use.
func Criteria(name string, kind Kind) SearchCriteria {
	return SearchCriteria{
		Name:       name,
		Kind:       kind,
		Threshold:  DefaultConfidenceThreshold,
		Strategies: append([]Strategy(nil), DefaultStrategies...),
	}
}

// Validate checks the criteria invariants: threshold in [0,1] and a non-empty
// strategy list.
func (c SearchCriteria) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("criteria: name is required")
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("criteria %q: threshold %v outside [0,1]", c.Name, c.Threshold)
	}
	if len(c.Strategies) == 0 {
		return fmt.Errorf("criteria %q: at least one detection strategy is required", c.Name)
	}
	return nil
}

// WithThreshold returns a copy of the criteria with the given threshold.
func (c SearchCriteria) WithThreshold(t float64) SearchCriteria {
	c.Threshold = t
	return c
}

// WithStrategies returns a copy of the criteria with the given strategy order.
func (c SearchCriteria) WithStrategies(strategies ...Strategy) SearchCriteria {
	c.Strategies = strategies
	return c
}
