package cmd

import (
	"testing"

	"github.com/spiralbot/spiralbot/internal/element"
)

func TestCriteriaFromFlags(t *testing.T) {
	c, err := criteriaFromFlags("", "game/play_button.png", "", 0.85, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "game/play_button.png" {
		t.Errorf("name defaulted to %q, want the template name", c.Name)
	}
	if c.Threshold != 0.85 {
		t.Errorf("threshold = %v, want 0.85", c.Threshold)
	}
	if c.Fallback != nil {
		t.Error("no fallback flags must mean no fallback point")
	}
}

func TestCriteriaFromFlagsFallback(t *testing.T) {
	c, err := criteriaFromFlags("ok_button", "", "", 0, 640, 480)
	if err != nil {
		t.Fatal(err)
	}
	if c.Fallback == nil || c.Fallback.X != 640 || c.Fallback.Y != 480 {
		t.Fatalf("fallback = %v, want (640, 480)", c.Fallback)
	}
	last := c.Strategies[len(c.Strategies)-1]
	if last != element.StrategyCoordinates {
		t.Errorf("last strategy = %s, want coordinates appended", last)
	}
}

func TestCriteriaFromFlagsRequiresSomething(t *testing.T) {
	if _, err := criteriaFromFlags("", "", "", 0, 0, 0); err == nil {
		t.Error("expected an error with no name, template, or text")
	}
}

func TestParamHelpers(t *testing.T) {
	params := map[string]interface{}{
		"name":      "play_button",
		"timeout":   float64(30),
		"gone":      true,
		"threshold": 0.9,
	}

	if got := StringParam(params, "name", ""); got != "play_button" {
		t.Errorf("StringParam = %q", got)
	}
	if got := StringParam(params, "missing", "dflt"); got != "dflt" {
		t.Errorf("StringParam default = %q", got)
	}
	if got := IntParam(params, "timeout", 10); got != 30 {
		t.Errorf("IntParam = %d", got)
	}
	if got := IntParam(params, "gone", 7); got != 7 {
		t.Errorf("IntParam wrong-type = %d, want default", got)
	}
	if got := BoolParam(params, "gone", false); !got {
		t.Error("BoolParam = false, want true")
	}
	if got := FloatParam(params, "threshold", 0); got != 0.9 {
		t.Errorf("FloatParam = %v", got)
	}
}
