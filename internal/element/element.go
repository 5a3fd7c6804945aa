// Package element defines the value types shared by the detection and
// automation layers: screen geometry, detected UI elements, search criteria,
// and the uniform ActionResult returned by every automation operation.
package element

import "fmt"

// Kind classifies what sort of UI element a detection result represents.
type Kind string

const (
	KindButton    Kind = "button"
	KindInput     Kind = "input"
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindContainer Kind = "container"
	KindUnknown   Kind = "unknown"
)

// Strategy identifies one detection technique.
type Strategy string

const (
	StrategyTemplate    Strategy = "template"
	StrategyVisual      Strategy = "visual"
	StrategyOCR         Strategy = "ocr"
	StrategyCoordinates Strategy = "coordinates"
)

// DefaultStrategies is the order tried when criteria do not specify one:
// cheap and reliable first, expensive and fuzzy last.
var DefaultStrategies = []Strategy{StrategyTemplate, StrategyVisual, StrategyOCR}

// Coordinates is an integer screen pixel position.
type Coordinates struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Add returns c translated by d.
func (c Coordinates) Add(d Coordinates) Coordinates {
	return Coordinates{X: c.X + d.X, Y: c.Y + d.Y}
}

// Sub returns c translated by -d.
func (c Coordinates) Sub(d Coordinates) Coordinates {
	return Coordinates{X: c.X - d.X, Y: c.Y - d.Y}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// BoundingBox is an axis-aligned screen rectangle. Width and Height are
// non-negative.
type BoundingBox struct {
	X      int `yaml:"x"      json:"x"`
	Y      int `yaml:"y"      json:"y"`
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Center returns the midpoint of the box, the point primitives click on.
func (b BoundingBox) Center() Coordinates {
	return Coordinates{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// TopLeft returns the box origin.
func (b BoundingBox) TopLeft() Coordinates {
	return Coordinates{X: b.X, Y: b.Y}
}

// BottomRight returns the corner opposite the origin.
func (b BoundingBox) BottomRight() Coordinates {
	return Coordinates{X: b.X + b.Width, Y: b.Y + b.Height}
}

// Contains reports whether p falls inside the box, edges included.
func (b BoundingBox) Contains(p Coordinates) bool {
	return p.X >= b.X && p.X <= b.X+b.Width &&
		p.Y >= b.Y && p.Y <= b.Y+b.Height
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("(%d, %d, %dx%d)", b.X, b.Y, b.Width, b.Height)
}

// UIElement is an immutable detection result. A fresh value is constructed on
// every successful detection call and consumed immediately by the caller;
// elements are never cached between captures.
type UIElement struct {
	Name       string            `yaml:"name"                json:"name"`
	Kind       Kind              `yaml:"kind"                json:"kind"`
	Strategy   Strategy          `yaml:"strategy"            json:"strategy"`
	Confidence float64           `yaml:"confidence"          json:"confidence"`
	Bounds     BoundingBox       `yaml:"bounds"              json:"bounds"`
	Template   string            `yaml:"template,omitempty"  json:"template,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty"  json:"metadata,omitempty"`
}

// Center returns the click point for this element.
func (e UIElement) Center() Coordinates {
	return e.Bounds.Center()
}

// Clickable reports whether the element is a sensible click target.
func (e UIElement) Clickable() bool {
	return e.Kind == KindButton || e.Kind == KindInput
}

// HighConfidence reports whether the detection met the given threshold.
func (e UIElement) HighConfidence(threshold float64) bool {
	return e.Confidence >= threshold
}
