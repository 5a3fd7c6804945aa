// Package vision implements the pixel-level detection primitives: template
// matching by normalized cross-correlation, layout-rule heuristics for
// buttons and input fields, and capture preprocessing for OCR.
//
// All functions operate on a single in-memory capture; nothing in this
// package touches the screen or the filesystem except LoadTemplate.
package vision

import (
	"fmt"
	"image"
	"math"
	"os"

	"github.com/disintegration/imaging"

	"github.com/spiralbot/spiralbot/internal/element"
)

// Match is the best template match found in a capture.
type Match struct {
	Bounds element.BoundingBox
	Score  float64 // normalized cross-correlation in [-1, 1]
}

// coarseFactor is the downscale factor for the first matching pass. The
// coarse pass finds the neighborhood; an exact pass refines within it.
const coarseFactor = 4

// LoadTemplate reads a template image from disk.
func LoadTemplate(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode template %s: %w", path, err)
	}
	return img, nil
}

// MatchTemplate locates the single best occurrence of tmpl inside capture
// using normalized cross-correlation on grayscale intensities. The returned
// bounds are sized exactly to the template dimensions. ok is false when the
// template does not fit inside the capture.
//
// Matching is exact-scale only: the on-screen element must render
// pixel-identically to the stored template.
func MatchTemplate(capture, tmpl image.Image) (Match, bool) {
	cw, ch := capture.Bounds().Dx(), capture.Bounds().Dy()
	tw, th := tmpl.Bounds().Dx(), tmpl.Bounds().Dy()
	if tw == 0 || th == 0 || tw > cw || th > ch {
		return Match{}, false
	}

	src := lumaPlane(capture)
	tpl := lumaPlane(tmpl)

	// Small templates are cheap enough to scan exhaustively; larger ones go
	// through a coarse downscaled pass first.
	if tw < coarseFactor*8 || th < coarseFactor*8 {
		x, y, score := scanNCC(src, tpl, 0, 0, cw-tw, ch-th)
		return matchAt(x, y, tw, th, score), true
	}

	coarseSrc := lumaPlane(imaging.Resize(capture, cw/coarseFactor, 0, imaging.Box))
	coarseTpl := lumaPlane(imaging.Resize(tmpl, tw/coarseFactor, 0, imaging.Box))
	cx, cy, _ := scanNCC(coarseSrc, coarseTpl,
		0, 0,
		coarseSrc.w-coarseTpl.w, coarseSrc.h-coarseTpl.h)

	// Refine at full resolution in a window around the coarse hit.
	x0 := clamp(cx*coarseFactor-2*coarseFactor, 0, cw-tw)
	y0 := clamp(cy*coarseFactor-2*coarseFactor, 0, ch-th)
	x1 := clamp(cx*coarseFactor+2*coarseFactor, 0, cw-tw)
	y1 := clamp(cy*coarseFactor+2*coarseFactor, 0, ch-th)
	x, y, score := scanNCC(src, tpl, x0, y0, x1, y1)

	return matchAt(x, y, tw, th, score), true
}

func matchAt(x, y, w, h int, score float64) Match {
	return Match{
		Bounds: element.BoundingBox{X: x, Y: y, Width: w, Height: h},
		Score:  score,
	}
}

// plane is a grayscale intensity buffer.
type plane struct {
	pix  []float64
	w, h int
}

func (p plane) at(x, y int) float64 { return p.pix[y*p.w+x] }

// lumaPlane converts an image to BT.601 luma intensities.
func lumaPlane(img image.Image) plane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	p := plane{pix: make([]float64, w*h), w: w, h: h}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			p.pix[y*w+x] = 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
		}
	}
	return p
}

// scanNCC slides tpl over src within the inclusive top-left range
// [x0,x1]×[y0,y1] and returns the position and score of the best
// mean-subtracted normalized cross-correlation.
func scanNCC(src, tpl plane, x0, y0, x1, y1 int) (bestX, bestY int, bestScore float64) {
	tMean := mean(tpl.pix)
	tDev := make([]float64, len(tpl.pix))
	var tNorm float64
	for i, v := range tpl.pix {
		d := v - tMean
		tDev[i] = d
		tNorm += d * d
	}
	tNorm = math.Sqrt(tNorm)

	bestScore = math.Inf(-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			score := nccAt(src, tpl, tDev, tNorm, x, y)
			if score > bestScore {
				bestScore, bestX, bestY = score, x, y
			}
		}
	}
	return bestX, bestY, bestScore
}

// nccAt computes the normalized cross-correlation of tpl against the capture
// window whose top-left corner is (x, y).
func nccAt(src, tpl plane, tDev []float64, tNorm float64, x, y int) float64 {
	var wSum float64
	for ty := 0; ty < tpl.h; ty++ {
		row := (y+ty)*src.w + x
		for tx := 0; tx < tpl.w; tx++ {
			wSum += src.pix[row+tx]
		}
	}
	wMean := wSum / float64(len(tpl.pix))

	var dot, wNorm float64
	for ty := 0; ty < tpl.h; ty++ {
		row := (y+ty)*src.w + x
		tRow := ty * tpl.w
		for tx := 0; tx < tpl.w; tx++ {
			wd := src.pix[row+tx] - wMean
			dot += wd * tDev[tRow+tx]
			wNorm += wd * wd
		}
	}

	denom := tNorm * math.Sqrt(wNorm)
	if denom == 0 {
		// Flat window or flat template: correlation is undefined, score it as
		// a perfect match only when both are flat with equal means.
		if tNorm == 0 && wNorm == 0 && math.Abs(wMean-mean(tpl.pix)) < 1e-9 {
			return 1
		}
		return 0
	}
	return dot / denom
}

func mean(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
