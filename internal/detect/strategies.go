package detect

import (
	"image"
	"os"

	"github.com/rs/zerolog"

	"github.com/spiralbot/spiralbot/internal/assets"
	"github.com/spiralbot/spiralbot/internal/element"
	"github.com/spiralbot/spiralbot/internal/ocr"
	"github.com/spiralbot/spiralbot/internal/screen"
	"github.com/spiralbot/spiralbot/internal/vision"
)

// Strategy is one detection technique. A strategy samples a fresh capture on
// every call and returns at most one candidate. Strategies never return
// errors: any internal failure degrades to "not found" so the orchestrator
// can fall through to the next strategy.
type Strategy interface {
	Kind() element.Strategy
	Find(criteria element.SearchCriteria) (element.UIElement, bool)
}

// sample captures the screen area the criteria restrict the search to.
// It returns the capture plus the offset that converts capture-local boxes
// back to screen coordinates.
func sample(cap screen.Capturer, criteria element.SearchCriteria) (img image.Image, offset element.Coordinates, ok bool) {
	if criteria.Region != nil {
		region, err := cap.CaptureRegion(*criteria.Region)
		if err != nil {
			return nil, element.Coordinates{}, false
		}
		return region, criteria.Region.TopLeft(), true
	}
	full, err := cap.Capture()
	if err != nil {
		return nil, element.Coordinates{}, false
	}
	return full, element.Coordinates{}, true
}

// templateStrategy locates elements by normalized cross-correlation against
// a stored reference image.
type templateStrategy struct {
	cap screen.Capturer
	reg *assets.Registry
	log zerolog.Logger
}

func (s *templateStrategy) Kind() element.Strategy { return element.StrategyTemplate }

func (s *templateStrategy) Find(criteria element.SearchCriteria) (element.UIElement, bool) {
	if criteria.Template == "" {
		return element.UIElement{}, false
	}

	path := s.reg.Path(assets.Name(criteria.Template))
	if _, err := os.Stat(path); err != nil {
		s.log.Warn().Str("element", criteria.Name).Str("template", path).
			Msg("template file not found")
		return element.UIElement{}, false
	}
	tmpl, err := vision.LoadTemplate(path)
	if err != nil {
		s.log.Warn().Err(err).Str("element", criteria.Name).
			Msg("template load failed")
		return element.UIElement{}, false
	}

	capture, offset, ok := sample(s.cap, criteria)
	if !ok {
		s.log.Error().Str("element", criteria.Name).Msg("capture failed for template matching")
		return element.UIElement{}, false
	}

	m, ok := vision.MatchTemplate(capture, tmpl)
	if !ok {
		return element.UIElement{}, false
	}
	s.log.Debug().Str("element", criteria.Name).Float64("score", m.Score).
		Msg("template match scored")
	if m.Score < criteria.Threshold {
		return element.UIElement{}, false
	}

	bounds := m.Bounds
	bounds.X += offset.X
	bounds.Y += offset.Y
	return element.UIElement{
		Name:       criteria.Name,
		Kind:       criteria.Kind,
		Strategy:   element.StrategyTemplate,
		Confidence: m.Score,
		Bounds:     bounds,
		Template:   criteria.Template,
	}, true
}

// visualStrategy proposes elements from layout rules alone, for use when no
// template exists or matching failed.
type visualStrategy struct {
	cap screen.Capturer
	log zerolog.Logger
}

func (s *visualStrategy) Kind() element.Strategy { return element.StrategyVisual }

func (s *visualStrategy) Find(criteria element.SearchCriteria) (element.UIElement, bool) {
	capture, offset, ok := sample(s.cap, criteria)
	if !ok {
		s.log.Error().Str("element", criteria.Name).Msg("capture failed for visual detection")
		return element.UIElement{}, false
	}

	var cand vision.Candidate
	switch criteria.Kind {
	case element.KindButton:
		cand, ok = vision.DetectButton(capture)
	case element.KindInput:
		cand, ok = vision.DetectInputField(capture)
	default:
		cand, ok = vision.DetectGeneric(capture)
	}
	if !ok {
		return element.UIElement{}, false
	}

	bounds := cand.Bounds
	bounds.X += offset.X
	bounds.Y += offset.Y
	return element.UIElement{
		Name:       criteria.Name,
		Kind:       criteria.Kind,
		Strategy:   element.StrategyVisual,
		Confidence: cand.Confidence,
		Bounds:     bounds,
	}, true
}

// ocrStrategy locates elements by recognizing on-screen text and matching
// the requested search string.
type ocrStrategy struct {
	cap    screen.Capturer
	engine ocr.Engine
	report ocr.Report
	log    zerolog.Logger
}

func (s *ocrStrategy) Kind() element.Strategy { return element.StrategyOCR }

func (s *ocrStrategy) Find(criteria element.SearchCriteria) (element.UIElement, bool) {
	if criteria.Text == "" {
		return element.UIElement{}, false
	}
	// Availability was probed once at startup; an unavailable engine was
	// logged there, so the miss here is silent.
	if !s.report.Available {
		return element.UIElement{}, false
	}

	capture, offset, ok := sample(s.cap, criteria)
	if !ok {
		s.log.Error().Str("element", criteria.Name).Msg("capture failed for OCR detection")
		return element.UIElement{}, false
	}

	tokens, err := s.engine.Recognize(vision.EnhanceForOCR(capture))
	if err != nil {
		s.log.Warn().Err(err).Str("element", criteria.Name).Msg("text recognition failed")
		return element.UIElement{}, false
	}

	matched, ok := ocr.MatchTokens(tokens, criteria.Text)
	if !ok {
		return element.UIElement{}, false
	}

	bounds := ocr.MergeBounds(matched)
	bounds.X += offset.X
	bounds.Y += offset.Y
	return element.UIElement{
		Name:       criteria.Name,
		Kind:       criteria.Kind,
		Strategy:   element.StrategyOCR,
		Confidence: ocr.AverageConfidence(matched),
		Bounds:     bounds,
		Metadata:   map[string]string{"matched_text": criteria.Text},
	}, true
}

// coordinateStrategy is the last-ditch fallback: a fixed screen point from
// the criteria, trusted completely because a human calibrated it.
type coordinateStrategy struct{}

// coordinateBoxSize is the edge length of the synthetic box built around a
// fallback point.
const coordinateBoxSize = 20

func (s *coordinateStrategy) Kind() element.Strategy { return element.StrategyCoordinates }

func (s *coordinateStrategy) Find(criteria element.SearchCriteria) (element.UIElement, bool) {
	if criteria.Fallback == nil {
		return element.UIElement{}, false
	}
	p := *criteria.Fallback
	return element.UIElement{
		Name:       criteria.Name,
		Kind:       criteria.Kind,
		Strategy:   element.StrategyCoordinates,
		Confidence: 1.0,
		Bounds: element.BoundingBox{
			X:      p.X - coordinateBoxSize/2,
			Y:      p.Y - coordinateBoxSize/2,
			Width:  coordinateBoxSize,
			Height: coordinateBoxSize,
		},
	}, true
}
