package screen

import (
	"fmt"
	"time"

	"github.com/go-vgo/robotgo"
)

// RobotInputter injects input events through the OS event system.
type RobotInputter struct {
	// TypeDelay is the pause between typed characters. Typing too fast drops
	// characters in some game input fields.
	TypeDelay time.Duration
}

// NewRobotInputter returns an Inputter with the default per-key delay.
func NewRobotInputter() *RobotInputter {
	return &RobotInputter{TypeDelay: 50 * time.Millisecond}
}

// MoveMouse moves the pointer to absolute screen coordinates.
func (r *RobotInputter) MoveMouse(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

// Click presses and releases the given button at the current pointer position.
func (r *RobotInputter) Click(button MouseButton) error {
	robotgo.Click(string(button), false)
	return nil
}

// DoubleClick issues a double click at the current pointer position.
func (r *RobotInputter) DoubleClick(button MouseButton) error {
	robotgo.Click(string(button), true)
	return nil
}

// TripleClick issues three rapid left clicks, which most text widgets treat
// as select-line. Used to select on-screen text before a clipboard copy.
func (r *RobotInputter) TripleClick() error {
	for i := 0; i < 3; i++ {
		robotgo.Click("left", false)
		time.Sleep(30 * time.Millisecond)
	}
	return nil
}

// TypeText types the given string with the configured per-key delay.
func (r *RobotInputter) TypeText(text string) error {
	for _, ch := range text {
		robotgo.TypeStr(string(ch))
		time.Sleep(r.TypeDelay)
	}
	return nil
}

// KeyTap presses a key with optional modifiers, e.g. KeyTap("a", "ctrl").
func (r *RobotInputter) KeyTap(key string, modifiers ...string) error {
	args := make([]interface{}, len(modifiers))
	for i, m := range modifiers {
		args[i] = m
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("key tap %q: %w", key, err)
	}
	return nil
}

// MousePosition returns the current pointer position.
func (r *RobotInputter) MousePosition() (int, int) {
	return robotgo.Location()
}

// SystemClipboard accesses the OS clipboard.
type SystemClipboard struct{}

// NewSystemClipboard returns a Clipboard over the OS clipboard.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// GetText reads the current clipboard text.
func (s *SystemClipboard) GetText() (string, error) {
	text, err := robotgo.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard read: %w", err)
	}
	return text, nil
}

// SetText replaces the clipboard contents with text.
func (s *SystemClipboard) SetText(text string) error {
	if err := robotgo.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

// Clear empties the clipboard.
func (s *SystemClipboard) Clear() error {
	if err := robotgo.WriteAll(""); err != nil {
		return fmt.Errorf("clipboard clear: %w", err)
	}
	return nil
}
