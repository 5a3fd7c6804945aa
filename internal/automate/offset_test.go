package automate

import (
	"testing"

	"github.com/spiralbot/spiralbot/internal/element"
)

// quizScreen simulates a question anchor whose text wrapped to two lines,
// shifting every answer row 30px below its nominal position.
func quizScreen(shift int) func(x, y int) string {
	rows := map[int]string{
		300:         "What is the capital of France?",
		350 + shift: "Paris",
		380 + shift: "London",
		410 + shift: "Berlin",
	}
	return func(x, y int) string { return rows[y] }
}

func TestOffsetReaderNominalLayout(t *testing.T) {
	surface := &fakeSurface{textAt: quizScreen(0)}
	c, _ := newTestController(detectorMiss(), surface)

	r := c.NewOffsetReader("What is the capital of France?")
	anchor := element.Coordinates{X: 400, Y: 300}

	text, err := r.ReadRow(anchor, element.Coordinates{Y: 50})
	if err != nil {
		t.Fatal(err)
	}
	if text != "Paris" {
		t.Errorf("row 1 = %q, want Paris", text)
	}
	if r.Correction() != 0 {
		t.Errorf("correction = %d after a clean read, want 0", r.Correction())
	}
}

func TestOffsetReaderCorrectsAndCarriesForward(t *testing.T) {
	surface := &fakeSurface{textAt: quizScreen(30)}
	c, _ := newTestController(detectorMiss(), surface)

	r := c.NewOffsetReader("What is the capital of France?")
	anchor := element.Coordinates{X: 400, Y: 300}

	// Row 1 at its nominal offset reads empty, triggering one correction.
	text, err := r.ReadRow(anchor, element.Coordinates{Y: 50})
	if err != nil {
		t.Fatal(err)
	}
	if text != "Paris" {
		t.Errorf("row 1 = %q, want Paris", text)
	}
	if r.Correction() != OffsetCorrectionStep {
		t.Errorf("correction = %d, want %d", r.Correction(), OffsetCorrectionStep)
	}

	// Later rows inherit the correction and read clean on the first probe.
	probesBefore := countEvents(surface.events, "tripleclick")
	if text, err = r.ReadRow(anchor, element.Coordinates{Y: 80}); err != nil {
		t.Fatal(err)
	}
	if text != "London" {
		t.Errorf("row 2 = %q, want London", text)
	}
	if probes := countEvents(surface.events, "tripleclick") - probesBefore; probes != 1 {
		t.Errorf("row 2 took %d probes, want 1", probes)
	}
	if r.Correction() != OffsetCorrectionStep {
		t.Errorf("correction grew to %d on a clean row, want %d", r.Correction(), OffsetCorrectionStep)
	}

	if text, err = r.ReadRow(anchor, element.Coordinates{Y: 110}); err != nil {
		t.Fatal(err)
	}
	if text != "Berlin" {
		t.Errorf("row 3 = %q, want Berlin", text)
	}
}

func TestOffsetReaderCorrectedReadIsStable(t *testing.T) {
	surface := &fakeSurface{textAt: quizScreen(30)}
	c, _ := newTestController(detectorMiss(), surface)

	r := c.NewOffsetReader("What is the capital of France?")
	anchor := element.Coordinates{X: 400, Y: 300}

	first, err := r.ReadRow(anchor, element.Coordinates{Y: 50})
	if err != nil {
		t.Fatal(err)
	}

	// With content unchanged, sampling again at the corrected point yields
	// the same text.
	corrected := anchor.Add(element.Coordinates{Y: 50 + r.Correction()})
	again, err := c.ReadTextAt(corrected)
	if err != nil {
		t.Fatal(err)
	}
	if again != first {
		t.Errorf("corrected re-read = %q, want %q", again, first)
	}
}

func TestOffsetReaderAnchorTextIsWrongRead(t *testing.T) {
	// The anchor bleeds into the nominal row position; the reader must not
	// accept the question text as an answer.
	rows := map[int]string{
		350: "What is the capital of France?",
		380: "Paris",
	}
	surface := &fakeSurface{textAt: func(x, y int) string { return rows[y] }}
	c, _ := newTestController(detectorMiss(), surface)

	r := c.NewOffsetReader("What is the capital of France?")
	text, err := r.ReadRow(element.Coordinates{X: 400, Y: 300}, element.Coordinates{Y: 50})
	if err != nil {
		t.Fatal(err)
	}
	if text != "Paris" {
		t.Errorf("row = %q, want Paris", text)
	}
}

func TestOffsetReaderConsumedSiblingIsWrongRead(t *testing.T) {
	// Row 2's nominal position still shows row 1's text.
	rows := map[int]string{
		350: "Paris",
		380: "Paris",
		410: "London",
	}
	surface := &fakeSurface{textAt: func(x, y int) string { return rows[y] }}
	c, _ := newTestController(detectorMiss(), surface)

	r := c.NewOffsetReader("question")
	anchor := element.Coordinates{X: 400, Y: 300}

	if text, _ := r.ReadRow(anchor, element.Coordinates{Y: 50}); text != "Paris" {
		t.Fatalf("row 1 = %q, want Paris", text)
	}
	text, err := r.ReadRow(anchor, element.Coordinates{Y: 80})
	if err != nil {
		t.Fatal(err)
	}
	if text != "London" {
		t.Errorf("row 2 = %q, want London (duplicate of row 1 rejected)", text)
	}
}

func TestReadTextAtTrimsAndClearsClipboard(t *testing.T) {
	surface := &fakeSurface{textAt: func(x, y int) string { return "  Energy: 42  " }}
	surface.clip = "stale"
	c, _ := newTestController(detectorMiss(), surface)

	text, err := c.ReadTextAt(element.Coordinates{X: 10, Y: 20})
	if err != nil {
		t.Fatal(err)
	}
	if text != "Energy: 42" {
		t.Errorf("text = %q, want %q", text, "Energy: 42")
	}
}

func countEvents(events []string, name string) int {
	n := 0
	for _, e := range events {
		if e == name {
			n++
		}
	}
	return n
}
