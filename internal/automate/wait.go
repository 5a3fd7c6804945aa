package automate

import (
	"fmt"
	"time"

	"github.com/spiralbot/spiralbot/internal/element"
)

// WaitForElement polls for the element until it appears or timeout elapses.
// Each iteration runs a quiet detection attempt and sleeps interval on a
// miss. On success the result data carries wait_time (seconds) and attempts.
// This is the single suspension point used by every higher-level flow.
func (c *Controller) WaitForElement(criteria element.SearchCriteria, timeout, interval time.Duration) element.ActionResult {
	return c.poll(criteria, timeout, interval, false)
}

// WaitForElementGone polls until the element stops being detected.
func (c *Controller) WaitForElementGone(criteria element.SearchCriteria, timeout, interval time.Duration) element.ActionResult {
	return c.poll(criteria, timeout, interval, true)
}

func (c *Controller) poll(criteria element.SearchCriteria, timeout, interval time.Duration, untilGone bool) element.ActionResult {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	if interval <= 0 {
		interval = DefaultWaitInterval
	}

	start := time.Now()
	attempts := 0
	for {
		attempts++
		_, found := c.detector.Probe(criteria)
		if found != untilGone {
			waited := time.Since(start)
			c.log.Debug().
				Str("element", criteria.Name).
				Dur("waited", waited).
				Int("attempts", attempts).
				Bool("until_gone", untilGone).
				Msg("wait satisfied")
			return element.SuccessResult(
				fmt.Sprintf("element %q %s after %.2fs", criteria.Name, waitVerb(untilGone), waited.Seconds()),
				map[string]any{
					"wait_time": waited.Seconds(),
					"attempts":  attempts,
				})
		}
		if time.Since(start) >= timeout {
			break
		}
		time.Sleep(interval)
	}

	waited := time.Since(start)
	c.log.Warn().
		Str("element", criteria.Name).
		Dur("waited", waited).
		Int("attempts", attempts).
		Bool("until_gone", untilGone).
		Msg("wait timed out")
	r := element.FailureResult(
		fmt.Sprintf("element %q not %s within %s", criteria.Name, waitVerb(untilGone), timeout),
		fmt.Errorf("%w: %q after %d attempts", element.ErrTimeout, criteria.Name, attempts))
	r.Data = map[string]any{
		"wait_time": waited.Seconds(),
		"attempts":  attempts,
	}
	return r
}

func waitVerb(untilGone bool) string {
	if untilGone {
		return "gone"
	}
	return "found"
}
