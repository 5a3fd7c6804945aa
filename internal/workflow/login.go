package workflow

import (
	"fmt"
	"time"

	"github.com/spiralbot/spiralbot/internal/assets"
	"github.com/spiralbot/spiralbot/internal/element"
)

// Fixed launcher coordinates used when template detection cannot place the
// credential form. Standard launcher window layout at default size.
var (
	usernameFallback = element.Coordinates{X: 960, Y: 480}
	passwordFallback = element.Coordinates{X: 960, Y: 540}
	loginFallback    = element.Coordinates{X: 960, Y: 620}
)

// LoginModule fills the launcher's credential form and waits for the
// post-login loaded signal.
type LoginModule struct {
	Username string
	Password string

	LoadedTimeout  time.Duration
	LoadedInterval time.Duration
}

func (m *LoginModule) Name() string { return "login" }

func (m *LoginModule) Execute(run *Run) element.ActionResult {
	if run.AlreadyRunning {
		return element.SkipResult("target already running, skipping login")
	}
	if m.Username == "" || m.Password == "" {
		return element.FailureResult("missing credentials",
			fmt.Errorf("%w: username or password empty", element.ErrConfiguration))
	}

	userField := m.fieldCriteria(run, assets.LauncherUsernameField, usernameFallback)
	if res := run.Ctrl.FindAndType(userField, m.Username); !res.Success() {
		return res
	}

	passField := m.fieldCriteria(run, assets.LauncherPasswordField, passwordFallback)
	if res := run.Ctrl.FindAndType(passField, m.Password); !res.Success() {
		return res
	}

	login := run.Criteria(assets.LauncherLoginButton, element.KindButton)
	login.Fallback = &loginFallback
	login.Strategies = append(login.Strategies, element.StrategyCoordinates)
	if res := run.Ctrl.FindAndClick(login); !res.Success() {
		return res
	}

	play := run.Criteria(assets.LauncherPlayButton, element.KindButton)
	res := run.Ctrl.WaitForElement(play, m.LoadedTimeout, m.LoadedInterval)
	if !res.Success() {
		return element.FailureResult("login never reached the play screen", res.Err)
	}
	return element.SuccessResult("logged in", res.Data)
}

func (m *LoginModule) fieldCriteria(run *Run, name assets.Name, fallback element.Coordinates) element.SearchCriteria {
	c := run.Criteria(name, element.KindInput)
	c.Fallback = &fallback
	c.Strategies = append(c.Strategies, element.StrategyCoordinates)
	return c
}
