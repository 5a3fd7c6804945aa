package automate

import (
	"strings"

	"github.com/spiralbot/spiralbot/internal/element"
)

// OffsetCorrectionStep is the vertical nudge applied when a dependent row
// read at its nominal offset returns a wrong-read signature. The value
// matches one extra line of wrapped anchor text.
const OffsetCorrectionStep = 30

// OffsetReader reads a sequence of dependent UI fields positioned at fixed
// pixel offsets below an anchor element. When the anchor's content wraps to
// extra lines, every dependent row shifts down; the reader detects the shift
// from the text it gets back and corrects itself.
//
// The correction found for one row carries forward as the baseline for the
// next, so a chain of rows below a two-line anchor pays the probe cost once.
type OffsetReader struct {
	ctrl       *Controller
	anchorText string
	consumed   []string
	correction int
}

// NewOffsetReader returns a reader for rows anchored to an element whose own
// visible text is anchorText. Reads matching that text are treated as
// misses on the anchor rather than row content.
func (c *Controller) NewOffsetReader(anchorText string) *OffsetReader {
	return &OffsetReader{ctrl: c, anchorText: strings.TrimSpace(anchorText)}
}

// Correction returns the accumulated vertical correction in pixels.
func (r *OffsetReader) Correction() int { return r.correction }

// ReadRow samples the text of the dependent row at anchor+offset, applying
// the accumulated correction. If the sample matches a wrong-read signature
// (empty, the anchor's text, or a previously consumed row's text) the reader
// bumps the correction one step and resamples once. The returned text is
// recorded so later rows can recognize it as already consumed.
func (r *OffsetReader) ReadRow(anchor, offset element.Coordinates) (string, error) {
	point := anchor.Add(offset).Add(element.Coordinates{Y: r.correction})
	text, err := r.ctrl.ReadTextAt(point)
	if err != nil {
		return "", err
	}

	if r.wrongRead(text) {
		r.correction += OffsetCorrectionStep
		corrected := point.Add(element.Coordinates{Y: OffsetCorrectionStep})
		r.ctrl.log.Debug().
			Str("sampled", text).
			Str("at", point.String()).
			Int("correction", r.correction).
			Msg("wrong-read signature, resampling")
		if text, err = r.ctrl.ReadTextAt(corrected); err != nil {
			return "", err
		}
	}

	if text != "" && !r.wrongRead(text) {
		r.consumed = append(r.consumed, text)
	}
	return text, nil
}

// wrongRead reports whether sampled text cannot be this row's own content.
func (r *OffsetReader) wrongRead(text string) bool {
	if text == "" {
		return true
	}
	if strings.EqualFold(text, r.anchorText) {
		return true
	}
	for _, prior := range r.consumed {
		if strings.EqualFold(text, prior) {
			return true
		}
	}
	return false
}
