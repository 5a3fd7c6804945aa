// Package screen is the boundary to the operating system's screen buffer,
// pointer, keyboard, and clipboard. Detection strategies sample captures
// through Capturer; automation primitives inject input through Inputter.
//
// Every detection call takes a fresh full-screen capture. Captures are never
// cached or shared beyond a single call, which trades capture overhead for
// freedom from stale-image bugs.
package screen

import (
	"image"

	"github.com/spiralbot/spiralbot/internal/element"
)

// MouseButton selects which pointer button an input event uses.
type MouseButton string

const (
	MouseLeft   MouseButton = "left"
	MouseRight  MouseButton = "right"
	MouseCenter MouseButton = "center"
)

// Capturer samples the current screen contents.
type Capturer interface {
	// Capture returns a fresh capture of the primary display.
	Capture() (image.Image, error)

	// CaptureRegion returns a fresh capture of the given screen rectangle.
	CaptureRegion(region element.BoundingBox) (image.Image, error)

	// Size returns the primary display dimensions in pixels.
	Size() (width, height int, err error)
}

// Inputter injects synthetic pointer and keyboard events.
type Inputter interface {
	MoveMouse(x, y int) error
	Click(button MouseButton) error
	DoubleClick(button MouseButton) error
	TripleClick() error
	TypeText(text string) error
	KeyTap(key string, modifiers ...string) error
	MousePosition() (x, y int)
}

// Clipboard reads and writes the system clipboard. The automation layer uses
// it transiently to extract on-screen text via select-all/copy.
type Clipboard interface {
	GetText() (string, error)
	SetText(text string) error
	Clear() error
}

// Provider bundles the OS backends used by the automation layer.
type Provider struct {
	Capturer  Capturer
	Inputter  Inputter
	Clipboard Clipboard
}

// NewProvider returns a Provider backed by the real display, pointer, and
// clipboard.
func NewProvider() *Provider {
	return &Provider{
		Capturer:  NewDisplayCapturer(),
		Inputter:  NewRobotInputter(),
		Clipboard: NewSystemClipboard(),
	}
}
