package automate

import (
	"fmt"
	"time"

	"github.com/spiralbot/spiralbot/internal/element"
)

// Action is any operation the retry combinator can drive.
type Action func() element.ActionResult

// ExecuteWithRetry repeats action while it reports retry and budget remains,
// sleeping delay between attempts. A panic inside the action is converted to
// a retry-eligible failure instead of unwinding past the combinator.
func (c *Controller) ExecuteWithRetry(name string, action Action, maxRetries int, delay time.Duration) element.ActionResult {
	if maxRetries < 0 {
		maxRetries = 0
	}

	var last element.ActionResult
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Debug().
				Str("action", name).
				Int("attempt", attempt+1).
				Int("max", maxRetries+1).
				Msg("retrying")
			c.sleep(delay)
		}

		last = c.runRecovered(name, action)
		last.RetryCount = attempt
		last.MaxRetries = maxRetries

		if last.Status != element.StatusRetry {
			return last
		}
	}

	// Budget exhausted while the action still wanted a retry.
	return element.ActionResult{
		Status:     element.StatusFailure,
		Message:    fmt.Sprintf("%s: retries exhausted: %s", name, last.Message),
		Err:        last.Err,
		RetryCount: maxRetries,
		MaxRetries: maxRetries,
	}
}

func (c *Controller) runRecovered(name string, action Action) (result element.ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Str("action", name).Any("panic", r).Msg("action panicked")
			result = element.ActionResult{
				Status:  element.StatusRetry,
				Message: fmt.Sprintf("%s panicked: %v", name, r),
				Err:     fmt.Errorf("panic in %s: %v", name, r),
			}
		}
	}()
	return action()
}
