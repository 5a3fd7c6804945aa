package screen

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/spiralbot/spiralbot/internal/element"
)

// DisplayCapturer captures the primary display.
type DisplayCapturer struct{}

// NewDisplayCapturer returns a Capturer over the primary display.
func NewDisplayCapturer() *DisplayCapturer {
	return &DisplayCapturer{}
}

// Capture returns a fresh full capture of the primary display.
func (c *DisplayCapturer) Capture() (image.Image, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, fmt.Errorf("capture: no active displays")
	}
	img, err := screenshot.CaptureDisplay(0)
	if err != nil {
		return nil, fmt.Errorf("capture display: %w", err)
	}
	return img, nil
}

// CaptureRegion returns a fresh capture of the given screen rectangle.
func (c *DisplayCapturer) CaptureRegion(region element.BoundingBox) (image.Image, error) {
	rect := image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height)
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("capture region %s: %w", region, err)
	}
	return img, nil
}

// Size returns the primary display dimensions.
func (c *DisplayCapturer) Size() (int, int, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return 0, 0, fmt.Errorf("capture: no active displays")
	}
	bounds := screenshot.GetDisplayBounds(0)
	return bounds.Dx(), bounds.Dy(), nil
}
