package automate

import (
	"fmt"

	"github.com/spiralbot/spiralbot/internal/element"
	"github.com/spiralbot/spiralbot/internal/screen"
)

// FindAndClick detects the element with bounded retries, moves the pointer to
// its center, lets the UI settle, and clicks.
func (c *Controller) FindAndClick(criteria element.SearchCriteria) element.ActionResult {
	return c.findAndAct(criteria, "click", func(target element.UIElement) error {
		return c.input.Click(screen.MouseLeft)
	})
}

// FindAndType detects the element, clicks it to take focus, selects the
// existing contents, and types the replacement text.
func (c *Controller) FindAndType(criteria element.SearchCriteria, text string) element.ActionResult {
	return c.findAndAct(criteria, "type", func(target element.UIElement) error {
		if err := c.input.Click(screen.MouseLeft); err != nil {
			return err
		}
		c.sleep(c.SettleDelay / 2)
		if err := c.input.KeyTap("a", "ctrl"); err != nil {
			return err
		}
		return c.input.TypeText(text)
	})
}

// findAndAct runs the detect-settle-act sequence shared by the click and type
// primitives. Detection misses consume the retry budget with a fixed delay
// between attempts; a delivered input event never retries.
func (c *Controller) findAndAct(criteria element.SearchCriteria, verb string, act func(element.UIElement) error) element.ActionResult {
	var target element.UIElement
	found := false
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			c.sleep(c.RetryDelay)
		}
		if target, found = c.detector.Find(criteria); found {
			break
		}
	}
	if !found {
		return element.FailureResult(
			fmt.Sprintf("could not %s %q: element not detected", verb, criteria.Name),
			fmt.Errorf("%w: %q after %d attempts", element.ErrDetection, criteria.Name, c.MaxRetries+1))
	}

	center := target.Center()
	if err := c.input.MoveMouse(center.X, center.Y); err != nil {
		return interactionFailure(verb, criteria.Name, err)
	}
	c.sleep(c.SettleDelay)
	if err := act(target); err != nil {
		return interactionFailure(verb, criteria.Name, err)
	}

	c.log.Debug().
		Str("element", criteria.Name).
		Str("action", verb).
		Str("at", center.String()).
		Float64("confidence", target.Confidence).
		Msg("interaction delivered")
	return element.SuccessResult(
		fmt.Sprintf("%s %q at %s", verb, criteria.Name, center),
		map[string]any{
			"x":          center.X,
			"y":          center.Y,
			"confidence": target.Confidence,
			"strategy":   string(target.Strategy),
		})
}

func interactionFailure(verb, name string, err error) element.ActionResult {
	return element.FailureResult(
		fmt.Sprintf("could not %s %q", verb, name),
		fmt.Errorf("%w: %v", element.ErrInteraction, err))
}
