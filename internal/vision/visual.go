package vision

import (
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/segment"

	"github.com/spiralbot/spiralbot/internal/element"
)

// Candidate is a region proposed by a layout heuristic, with the fixed
// moderate confidence that kind of heuristic earns. The match is structural,
// not content-verified, so confidences stay in the 0.4-0.7 band.
type Candidate struct {
	Bounds     element.BoundingBox
	Confidence float64
}

// Heuristic size and placement rules. Buttons are mid-sized rounded
// rectangles in the lower part of the screen; input fields are light,
// wide-and-short rectangles near the bottom.
const (
	buttonMinW, buttonMaxW = 50, 200
	buttonMinH, buttonMaxH = 20, 60
	buttonRegionTop        = 0.6 // bottom 40% of the screen

	inputMinW, inputMaxW = 100, 300
	inputMinH, inputMaxH = 15, 50
	inputMinAspect       = 3.0
	inputRegionTop       = 0.7 // bottom 30% of the screen
	inputLightLevel      = 200 // gray level above which a pixel counts as "light"

	buttonConfidence  = 0.7
	inputConfidence   = 0.6
	genericConfidence = 0.4

	edgeThreshold  = 30.0
	minContourSize = 10
)

// DetectButton proposes the first button-shaped region in the capture:
// a contour whose bounding box has button proportions and sits in the bottom
// 40% of the screen.
func DetectButton(capture image.Image) (Candidate, bool) {
	w, h := capture.Bounds().Dx(), capture.Bounds().Dy()
	edges := detectEdges(capture)

	for _, box := range contourBoxes(edges, w, h) {
		if box.Width <= buttonMinW || box.Width >= buttonMaxW {
			continue
		}
		if box.Height <= buttonMinH || box.Height >= buttonMaxH {
			continue
		}
		aspect := float64(box.Width) / float64(box.Height)
		if aspect <= 0.3 || aspect >= 5.0 {
			continue
		}
		if float64(box.Y) <= float64(h)*buttonRegionTop {
			continue
		}
		return Candidate{Bounds: box, Confidence: buttonConfidence}, true
	}
	return Candidate{}, false
}

// DetectInputField proposes the first input-field-shaped region: a light
// rectangle much wider than tall in the bottom 30% of the screen.
func DetectInputField(capture image.Image) (Candidate, bool) {
	w, h := capture.Bounds().Dx(), capture.Bounds().Dy()

	light := segment.Threshold(capture, inputLightLevel)
	mask := make([]bool, w*h)
	b := light.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mask[y*w+x] = light.GrayAt(b.Min.X+x, b.Min.Y+y).Y > 0
		}
	}

	for _, box := range componentBoxes(mask, w, h) {
		if box.Width <= inputMinW || box.Width >= inputMaxW {
			continue
		}
		if box.Height <= inputMinH || box.Height >= inputMaxH {
			continue
		}
		if float64(box.Width)/float64(box.Height) <= inputMinAspect {
			continue
		}
		if float64(box.Y) <= float64(h)*inputRegionTop {
			continue
		}
		return Candidate{Bounds: box, Confidence: inputConfidence}, true
	}
	return Candidate{}, false
}

// DetectGeneric proposes the largest edge-dense region anywhere on screen.
// This is a last-resort structural guess and carries the lowest confidence.
func DetectGeneric(capture image.Image) (Candidate, bool) {
	w, h := capture.Bounds().Dx(), capture.Bounds().Dy()
	edges := detectEdges(capture)

	boxes := contourBoxes(edges, w, h)
	if len(boxes) == 0 {
		return Candidate{}, false
	}
	sort.Slice(boxes, func(i, j int) bool {
		return boxes[i].Width*boxes[i].Height > boxes[j].Width*boxes[j].Height
	})
	return Candidate{Bounds: boxes[0], Confidence: genericConfidence}, true
}

// detectEdges marks pixels whose horizontal or vertical grayscale gradient
// exceeds edgeThreshold. Border pixels are never edges.
func detectEdges(img image.Image) []bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gray := lumaPlane(img)

	edges := make([]bool, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := gray.at(x, y)
			dx := math.Abs(c - gray.at(x+1, y))
			dy := math.Abs(c - gray.at(x, y+1))
			if dx > edgeThreshold || dy > edgeThreshold {
				edges[y*w+x] = true
			}
		}
	}
	return edges
}

// contourBoxes groups connected edge pixels and returns their bounding
// boxes, discarding contours smaller than minContourSize pixels.
func contourBoxes(edges []bool, w, h int) []element.BoundingBox {
	return componentBoxes(edges, w, h)
}

// componentBoxes returns bounding boxes of 8-connected components in the
// mask, in raster scan order.
func componentBoxes(mask []bool, w, h int) []element.BoundingBox {
	visited := make([]bool, w*h)
	var boxes []element.BoundingBox

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask[y*w+x] || visited[y*w+x] {
				continue
			}
			box, size := floodComponent(mask, visited, x, y, w, h)
			if size >= minContourSize {
				boxes = append(boxes, box)
			}
		}
	}
	return boxes
}

// floodComponent flood-fills one connected component iteratively and returns
// its bounding box and pixel count. A stack avoids recursion depth limits on
// large regions.
func floodComponent(mask, visited []bool, startX, startY, w, h int) (element.BoundingBox, int) {
	type point struct{ x, y int }
	stack := []point{{startX, startY}}

	minX, minY, maxX, maxY := startX, startY, startX, startY
	size := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.x < 0 || p.x >= w || p.y < 0 || p.y >= h {
			continue
		}
		i := p.y*w + p.x
		if visited[i] || !mask[i] {
			continue
		}
		visited[i] = true
		size++

		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, point{p.x + dx, p.y + dy})
			}
		}
	}

	box := element.BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	return box, size
}
