package workflow

import (
	"time"

	"github.com/spiralbot/spiralbot/internal/assets"
	"github.com/spiralbot/spiralbot/internal/element"
)

// EnterGameModule moves the run from the launcher's play screen into the
// game world. The two entry paths show different signals: a fresh boot goes
// launcher play button -> loading spiral -> character bar, while an attach
// to an already-running client only needs the character bar confirmed.
type EnterGameModule struct {
	LoadTimeout  time.Duration
	LoadInterval time.Duration
}

func (m *EnterGameModule) Name() string { return "enter-game" }

func (m *EnterGameModule) Execute(run *Run) element.ActionResult {
	inGame := run.Criteria(assets.GameCharacterBar, element.KindImage)

	if run.AlreadyRunning {
		res := run.Ctrl.WaitForElement(inGame, m.LoadInterval*3, m.LoadInterval)
		if res.Success() {
			return element.SuccessResult("attached to running game", res.Data)
		}
		// Running process but no character bar: the client sits on its own
		// play screen.
		play := run.Criteria(assets.GamePlayButton, element.KindButton)
		if click := run.Ctrl.FindAndClick(play); !click.Success() {
			return click
		}
		return m.awaitWorld(run, inGame)
	}

	play := run.Criteria(assets.LauncherPlayButton, element.KindButton)
	if click := run.Ctrl.FindAndClick(play); !click.Success() {
		return click
	}

	// The loading spiral appearing confirms the click took; it disappearing
	// plus the character bar confirms the world loaded.
	spiral := run.Criteria(assets.GameLoadingSpiral, element.KindImage)
	if res := run.Ctrl.WaitForElement(spiral, m.LoadInterval*5, m.LoadInterval); res.Success() {
		if res := run.Ctrl.WaitForElementGone(spiral, m.LoadTimeout, m.LoadInterval); !res.Success() {
			return element.FailureResult("game stuck on loading screen", res.Err)
		}
	}
	return m.awaitWorld(run, inGame)
}

func (m *EnterGameModule) awaitWorld(run *Run, inGame element.SearchCriteria) element.ActionResult {
	res := run.Ctrl.WaitForElement(inGame, m.LoadTimeout, m.LoadInterval)
	if !res.Success() {
		return element.FailureResult("character bar never appeared", res.Err)
	}
	return element.SuccessResult("in game", res.Data)
}
