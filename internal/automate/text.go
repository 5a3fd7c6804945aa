package automate

import (
	"fmt"
	"strings"
	"time"

	"github.com/spiralbot/spiralbot/internal/element"
)

// ReadTextAt samples on-screen text at a point by triple-clicking to select
// the line under it, copying, and reading the clipboard back. The clipboard
// is cleared first so a stale copy can never masquerade as a fresh read.
func (c *Controller) ReadTextAt(point element.Coordinates) (string, error) {
	if err := c.clipboard.Clear(); err != nil {
		return "", fmt.Errorf("%w: clearing clipboard: %v", element.ErrInteraction, err)
	}
	if err := c.input.MoveMouse(point.X, point.Y); err != nil {
		return "", fmt.Errorf("%w: %v", element.ErrInteraction, err)
	}
	if err := c.input.TripleClick(); err != nil {
		return "", fmt.Errorf("%w: %v", element.ErrInteraction, err)
	}
	c.sleep(100 * time.Millisecond)
	if err := c.input.KeyTap("c", "ctrl"); err != nil {
		return "", fmt.Errorf("%w: %v", element.ErrInteraction, err)
	}
	c.sleep(100 * time.Millisecond)

	text, err := c.clipboard.GetText()
	if err != nil {
		return "", fmt.Errorf("%w: reading clipboard: %v", element.ErrInteraction, err)
	}
	return strings.TrimSpace(text), nil
}
