package automate

import (
	"testing"
	"time"

	"github.com/spiralbot/spiralbot/internal/element"
)

func TestExecuteWithRetrySucceedsWithinBudget(t *testing.T) {
	c, slept := newTestController(detectorMiss(), &fakeSurface{})

	calls := 0
	res := c.ExecuteWithRetry("plant", func() element.ActionResult {
		calls++
		if calls < 3 {
			return element.RetryResult("slot occupied", calls-1, 3)
		}
		return element.SuccessResult("planted", nil)
	}, 3, 20*time.Millisecond)

	if !res.Success() {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if len(*slept) != 2 {
		t.Errorf("inter-attempt sleeps = %d, want 2", len(*slept))
	}
	if res.RetryCount != 2 {
		t.Errorf("RetryCount = %d, want 2", res.RetryCount)
	}
}

func TestExecuteWithRetryExhaustsBudget(t *testing.T) {
	c, _ := newTestController(detectorMiss(), &fakeSurface{})

	calls := 0
	res := c.ExecuteWithRetry("harvest", func() element.ActionResult {
		calls++
		return element.RetryResult("not ripe", 0, 0)
	}, 2, time.Millisecond)

	if res.Status != element.StatusFailure {
		t.Fatalf("status = %s, want failure", res.Status)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (initial + 2 retries)", calls)
	}
}

func TestExecuteWithRetryConvertsPanicToRetry(t *testing.T) {
	c, _ := newTestController(detectorMiss(), &fakeSurface{})

	calls := 0
	res := c.ExecuteWithRetry("flaky", func() element.ActionResult {
		calls++
		if calls == 1 {
			panic("display went away")
		}
		return element.SuccessResult("recovered", nil)
	}, 2, time.Millisecond)

	if !res.Success() {
		t.Fatalf("expected recovery after panic, got %q (%v)", res.Message, res.Err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestExecuteWithRetryPanicOnLastAttemptFails(t *testing.T) {
	c, _ := newTestController(detectorMiss(), &fakeSurface{})

	res := c.ExecuteWithRetry("doomed", func() element.ActionResult {
		panic("always")
	}, 1, time.Millisecond)

	if res.Status != element.StatusFailure {
		t.Fatalf("status = %s, want failure", res.Status)
	}
	if res.Err == nil {
		t.Error("expected the panic captured as Err")
	}
}

func TestExecuteWithRetryDoesNotRetryFailure(t *testing.T) {
	c, _ := newTestController(detectorMiss(), &fakeSurface{})

	calls := 0
	res := c.ExecuteWithRetry("fatal", func() element.ActionResult {
		calls++
		return element.FailureResult("unrecoverable", nil)
	}, 5, time.Millisecond)

	if res.Status != element.StatusFailure {
		t.Fatalf("status = %s, want failure", res.Status)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (failure is terminal)", calls)
	}
}
