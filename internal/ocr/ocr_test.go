package ocr

import (
	"testing"

	"github.com/spiralbot/spiralbot/internal/element"
)

// row lays out tokens left to right on one text line, 10px apart.
func row(y int, words ...string) []Token {
	tokens := make([]Token, len(words))
	x := 100
	for i, w := range words {
		width := 12 * len(w)
		tokens[i] = Token{
			Text:       w,
			Confidence: 0.9,
			Bounds:     element.BoundingBox{X: x, Y: y, Width: width, Height: 20},
		}
		x += width + 10
	}
	return tokens
}

func TestFindTextExact(t *testing.T) {
	tokens := row(50, "Enter", "the", "Spiral")

	box, ok := FindText(tokens, "Spiral")
	if !ok {
		t.Fatal("exact match not found")
	}
	if box != tokens[2].Bounds {
		t.Errorf("box = %v, want %v", box, tokens[2].Bounds)
	}
}

func TestFindTextCaseAndPunctuation(t *testing.T) {
	tokens := row(50, "PLAY!", "Now")

	if _, ok := FindText(tokens, "play"); !ok {
		t.Error("match should ignore case and punctuation")
	}
}

func TestFindTextPhraseMergesBoxes(t *testing.T) {
	tokens := row(50, "Log", "In", "Here")

	box, ok := FindText(tokens, "Log In")
	if !ok {
		t.Fatal("phrase match not found")
	}
	// Merged box spans from the start of "Log" to the end of "In".
	wantLeft := tokens[0].Bounds.X
	wantRight := tokens[1].Bounds.X + tokens[1].Bounds.Width
	if box.X != wantLeft || box.X+box.Width != wantRight {
		t.Errorf("merged box = %v, want span [%d, %d]", box, wantLeft, wantRight)
	}
	if box.Y != 50 || box.Height != 20 {
		t.Errorf("merged box vertical = %v, want y=50 h=20", box)
	}
}

func TestFindTextSubstring(t *testing.T) {
	tokens := row(50, "Username:")

	if _, ok := FindText(tokens, "Username"); !ok {
		t.Error("substring containment should match")
	}
}

func TestFindTextFuzzyOverlap(t *testing.T) {
	// OCR misread one word of five; 4/5 = 80% still matches.
	tokens := row(50, "Would", "you", "like", "to", "pl4y")

	if _, ok := FindText(tokens, "Would you like to play"); !ok {
		t.Error("80% word overlap should match")
	}

	// Two misreads drop below the 80% bar.
	tokens = row(50, "W0uld", "you", "like", "to", "pl4y")
	if _, ok := FindText(tokens, "Would you like to play"); ok {
		t.Error("60% word overlap should not match")
	}
}

func TestFindTextNotPresent(t *testing.T) {
	tokens := row(50, "Quit", "Options")

	if _, ok := FindText(tokens, "Play"); ok {
		t.Error("unrelated text should not match")
	}
}

func TestFindTextEmptyInputs(t *testing.T) {
	if _, ok := FindText(nil, "Play"); ok {
		t.Error("no tokens should not match")
	}
	if _, ok := FindText(row(50, "Play"), ""); ok {
		t.Error("empty query should not match")
	}
}
