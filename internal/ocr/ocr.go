// Package ocr wraps the Tesseract OCR engine and implements the text-token
// matching used by the OCR detection strategy.
//
// Engine availability is probed once at startup (see Probe); callers branch
// on the resulting report instead of rediscovering a missing engine on every
// detection call.
package ocr

import (
	"errors"
	"image"
	"strings"

	"github.com/spiralbot/spiralbot/internal/element"
)

// ErrUnavailable is returned when no OCR engine is compiled in or the engine
// cannot initialize.
var ErrUnavailable = errors.New("ocr engine unavailable")

// Token is one recognized word with its screen location.
type Token struct {
	Text       string
	Confidence float64 // engine confidence in [0, 1]
	Bounds     element.BoundingBox
}

// Engine extracts text tokens from a capture.
type Engine interface {
	// Recognize returns all text tokens found in the image, in reading order.
	Recognize(img image.Image) ([]Token, error)
}

// Report is the result of the one-time startup capability probe.
type Report struct {
	Available bool
	Version   string
	Err       error
}

// fuzzyWordOverlap is the fraction of query words that must appear among the
// candidate tokens for a fuzzy match.
const fuzzyWordOverlap = 0.8

// FindText locates query among the recognized tokens and returns the merged
// bounding box of the matching token run.
func FindText(tokens []Token, query string) (element.BoundingBox, bool) {
	matched, ok := MatchTokens(tokens, query)
	if !ok {
		return element.BoundingBox{}, false
	}
	return MergeBounds(matched), true
}

// MatchTokens locates query among the recognized tokens and returns the
// matching token run. Match precedence: exact token match, consecutive-token
// phrase match, substring containment, then fuzzy word overlap where at
// least 80% of the query's words are present in a consecutive token run.
func MatchTokens(tokens []Token, query string) ([]Token, bool) {
	if query == "" || len(tokens) == 0 {
		return nil, false
	}
	q := normalize(query)
	qWords := strings.Fields(q)

	// Exact single-token match.
	for _, tok := range tokens {
		if normalize(tok.Text) == q {
			return []Token{tok}, true
		}
	}

	// Multi-word phrases: find a consecutive run of tokens equal to the
	// query words.
	if len(qWords) > 1 {
		if run, ok := matchPhrase(tokens, qWords, true); ok {
			return run, true
		}
	}

	// Substring containment within a single token.
	for _, tok := range tokens {
		if strings.Contains(normalize(tok.Text), q) {
			return []Token{tok}, true
		}
	}

	// Fuzzy word overlap across a token window.
	if len(qWords) > 1 {
		if run, ok := matchPhrase(tokens, qWords, false); ok {
			return run, true
		}
	}
	return nil, false
}

// matchPhrase slides a window of len(words) tokens over the token list. In
// exact mode every window token must equal its query word; in fuzzy mode at
// least fuzzyWordOverlap of the query words must appear in the window.
func matchPhrase(tokens []Token, words []string, exact bool) ([]Token, bool) {
	n := len(words)
	if n > len(tokens) {
		return nil, false
	}

	for start := 0; start+n <= len(tokens); start++ {
		window := tokens[start : start+n]
		if exact {
			all := true
			for i, w := range words {
				if normalize(window[i].Text) != w {
					all = false
					break
				}
			}
			if all {
				return window, true
			}
			continue
		}

		present := make(map[string]bool, n)
		for _, tok := range window {
			present[normalize(tok.Text)] = true
		}
		hits := 0
		for _, w := range words {
			if present[w] {
				hits++
			}
		}
		if float64(hits) >= fuzzyWordOverlap*float64(n) {
			return window, true
		}
	}
	return nil, false
}

// MergeBounds returns the union box of a token run.
func MergeBounds(tokens []Token) element.BoundingBox {
	minX, minY := tokens[0].Bounds.X, tokens[0].Bounds.Y
	maxX := tokens[0].Bounds.X + tokens[0].Bounds.Width
	maxY := tokens[0].Bounds.Y + tokens[0].Bounds.Height

	for _, tok := range tokens[1:] {
		b := tok.Bounds
		if b.X < minX {
			minX = b.X
		}
		if b.Y < minY {
			minY = b.Y
		}
		if b.X+b.Width > maxX {
			maxX = b.X + b.Width
		}
		if b.Y+b.Height > maxY {
			maxY = b.Y + b.Height
		}
	}
	return element.BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// AverageConfidence returns the mean engine confidence of a token run, or 0
// for an empty run.
func AverageConfidence(tokens []Token) float64 {
	if len(tokens) == 0 {
		return 0
	}
	var sum float64
	for _, tok := range tokens {
		sum += tok.Confidence
	}
	return sum / float64(len(tokens))
}

// normalize lowercases and strips punctuation so OCR noise in case and
// trailing marks does not defeat matching.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
