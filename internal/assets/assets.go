// Package assets maps logical template names to PNG files on disk. The
// mapping is a static table checked at startup, so a typo in an asset name
// is a compile error and a missing file surfaces before a run begins rather
// than mid-workflow.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Name is a logical template asset, namespaced by UI surface.
type Name string

// Launcher surface.
const (
	LauncherUsernameField Name = "launcher/username_field.png"
	LauncherPasswordField Name = "launcher/password_field.png"
	LauncherLoginButton   Name = "launcher/login_button.png"
	LauncherPlayButton    Name = "launcher/play_button.png"
	LauncherReadyBanner   Name = "launcher/ready_banner.png"
)

// In-game surface.
const (
	GamePlayButton    Name = "game/play_button.png"
	GameLoadingSpiral Name = "game/loading_spiral.png"
	GameSpellbookIcon Name = "game/spellbook_icon.png"
	GameCharacterBar  Name = "game/character_bar.png"
)

// Gardening surface.
const (
	GardenPlantPopup  Name = "gardening/plant_popup.png"
	GardenNeedsIcon   Name = "gardening/needs_icon.png"
	GardenHarvestGlow Name = "gardening/harvest_glow.png"
	GardenEnergyOrb   Name = "gardening/energy_orb.png"
)

// Trivia surface.
const (
	TriviaQuestionHeader Name = "trivia/question_header.png"
	TriviaSubmitButton   Name = "trivia/submit_button.png"
	TriviaNextButton     Name = "trivia/next_button.png"
)

// all lists every known asset for validation.
var all = []Name{
	LauncherUsernameField, LauncherPasswordField, LauncherLoginButton,
	LauncherPlayButton, LauncherReadyBanner,
	GamePlayButton, GameLoadingSpiral, GameSpellbookIcon, GameCharacterBar,
	GardenPlantPopup, GardenNeedsIcon, GardenHarvestGlow, GardenEnergyOrb,
	TriviaQuestionHeader, TriviaSubmitButton, TriviaNextButton,
}

// All returns every known asset name.
func All() []Name {
	return append([]Name(nil), all...)
}

// Surface returns the UI surface prefix of an asset name.
func (n Name) Surface() string {
	if i := strings.IndexByte(string(n), '/'); i > 0 {
		return string(n)[:i]
	}
	return ""
}

// Registry resolves logical asset names against a template directory.
type Registry struct {
	dir string
}

// NewRegistry returns a Registry rooted at dir.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

// Dir returns the template root directory.
func (r *Registry) Dir() string {
	return r.dir
}

// Path resolves an asset name to an absolute-ish file path. The file may or
// may not exist; the template strategy treats a missing file as "not found".
func (r *Registry) Path(n Name) string {
	return filepath.Join(r.dir, filepath.FromSlash(string(n)))
}

// Validate stats every known asset and returns the missing ones. A non-empty
// result comes with an error summarizing the gap; callers decide whether a
// partial template set is fatal for their workflow.
func (r *Registry) Validate() ([]Name, error) {
	var missing []Name
	for _, n := range all {
		if _, err := os.Stat(r.Path(n)); err != nil {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return missing, fmt.Errorf("assets: %d of %d template files missing under %s", len(missing), len(all), r.dir)
	}
	return nil, nil
}
