package vision

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"testing"
)

// texturedImage builds a deterministic pseudo-random RGBA image. Texture is
// needed so correlation peaks are sharp; flat fills correlate everywhere.
func texturedImage(w, h int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

// placeTemplate stamps tmpl onto dst with its top-left corner at (x, y).
func placeTemplate(dst *image.RGBA, tmpl image.Image, x, y int) {
	b := tmpl.Bounds()
	draw.Draw(dst,
		image.Rect(x, y, x+b.Dx(), y+b.Dy()),
		tmpl, b.Min, draw.Src)
}

func TestMatchTemplateRoundTrip(t *testing.T) {
	// Small template takes the exhaustive scan path.
	capture := texturedImage(320, 240, 1)
	tmpl := texturedImage(24, 24, 2)
	placeTemplate(capture, tmpl, 120, 80)

	m, ok := MatchTemplate(capture, tmpl)
	if !ok {
		t.Fatal("MatchTemplate returned no result")
	}
	if m.Bounds.X != 120 || m.Bounds.Y != 80 {
		t.Errorf("match at (%d, %d), want (120, 80)", m.Bounds.X, m.Bounds.Y)
	}
	if m.Bounds.Width != 24 || m.Bounds.Height != 24 {
		t.Errorf("match size %dx%d, want 24x24", m.Bounds.Width, m.Bounds.Height)
	}
	if m.Score < 0.95 {
		t.Errorf("score = %v, want >= 0.95", m.Score)
	}
}

func TestMatchTemplateFullScreenPlacement(t *testing.T) {
	if testing.Short() {
		t.Skip("full-resolution scan")
	}

	// 1920x1080 capture with a 100x50 template at (300, 200); this exercises
	// the coarse-then-refine path.
	capture := texturedImage(1920, 1080, 3)
	tmpl := texturedImage(100, 50, 4)
	placeTemplate(capture, tmpl, 300, 200)

	m, ok := MatchTemplate(capture, tmpl)
	if !ok {
		t.Fatal("MatchTemplate returned no result")
	}
	want := [4]int{300, 200, 100, 50}
	got := [4]int{m.Bounds.X, m.Bounds.Y, m.Bounds.Width, m.Bounds.Height}
	if got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
	if m.Score < 0.95 {
		t.Errorf("score = %v, want >= 0.95", m.Score)
	}
}

func TestMatchTemplateAbsentTemplate(t *testing.T) {
	capture := texturedImage(320, 240, 5)
	tmpl := texturedImage(24, 24, 6) // never placed

	m, ok := MatchTemplate(capture, tmpl)
	if !ok {
		t.Fatal("MatchTemplate returned no result")
	}
	// Independent noise should correlate weakly everywhere.
	if m.Score >= 0.8 {
		t.Errorf("score for absent template = %v, want < 0.8", m.Score)
	}
}

func TestMatchTemplateTooLarge(t *testing.T) {
	capture := texturedImage(50, 50, 7)
	tmpl := texturedImage(100, 100, 8)

	if _, ok := MatchTemplate(capture, tmpl); ok {
		t.Error("expected no match when template exceeds capture size")
	}
}
