package element

import "testing"

func TestCoordinatesAddSub(t *testing.T) {
	a := Coordinates{X: 10, Y: 20}
	b := Coordinates{X: 3, Y: -5}

	sum := a.Add(b)
	if sum.X != 13 || sum.Y != 15 {
		t.Errorf("Add = %v, want (13, 15)", sum)
	}

	diff := a.Sub(b)
	if diff.X != 7 || diff.Y != 25 {
		t.Errorf("Sub = %v, want (7, 25)", diff)
	}
}

func TestBoundingBoxDerived(t *testing.T) {
	box := BoundingBox{X: 300, Y: 200, Width: 100, Height: 50}

	if c := box.Center(); c.X != 350 || c.Y != 225 {
		t.Errorf("Center = %v, want (350, 225)", c)
	}
	if tl := box.TopLeft(); tl.X != 300 || tl.Y != 200 {
		t.Errorf("TopLeft = %v, want (300, 200)", tl)
	}
	if br := box.BottomRight(); br.X != 400 || br.Y != 250 {
		t.Errorf("BottomRight = %v, want (400, 250)", br)
	}
}

func TestBoundingBoxContains(t *testing.T) {
	box := BoundingBox{X: 10, Y: 10, Width: 100, Height: 50}

	tests := []struct {
		name  string
		point Coordinates
		want  bool
	}{
		{"center", Coordinates{X: 60, Y: 35}, true},
		{"top-left corner", Coordinates{X: 10, Y: 10}, true},
		{"bottom-right corner", Coordinates{X: 110, Y: 60}, true},
		{"left of box", Coordinates{X: 9, Y: 35}, false},
		{"below box", Coordinates{X: 60, Y: 61}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestElementClickable(t *testing.T) {
	for _, tt := range []struct {
		kind Kind
		want bool
	}{
		{KindButton, true},
		{KindInput, true},
		{KindText, false},
		{KindImage, false},
		{KindUnknown, false},
	} {
		el := UIElement{Name: "x", Kind: tt.kind}
		if got := el.Clickable(); got != tt.want {
			t.Errorf("Clickable(%s) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestCriteriaDefaults(t *testing.T) {
	c := Criteria("login_button", KindButton)

	if c.Threshold != DefaultConfidenceThreshold {
		t.Errorf("Threshold = %v, want %v", c.Threshold, DefaultConfidenceThreshold)
	}
	want := []Strategy{StrategyTemplate, StrategyVisual, StrategyOCR}
	if len(c.Strategies) != len(want) {
		t.Fatalf("Strategies = %v, want %v", c.Strategies, want)
	}
	for i := range want {
		if c.Strategies[i] != want[i] {
			t.Errorf("Strategies[%d] = %v, want %v", i, c.Strategies[i], want[i])
		}
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() on defaults returned %v", err)
	}
}

func TestCriteriaValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SearchCriteria)
		wantErr bool
	}{
		{"valid", func(c *SearchCriteria) {}, false},
		{"threshold above one", func(c *SearchCriteria) { c.Threshold = 1.5 }, true},
		{"threshold negative", func(c *SearchCriteria) { c.Threshold = -0.1 }, true},
		{"no strategies", func(c *SearchCriteria) { c.Strategies = nil }, true},
		{"no name", func(c *SearchCriteria) { c.Name = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Criteria("play_button", KindButton)
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestActionResultStatus(t *testing.T) {
	ok := SuccessResult("clicked", nil)
	if !ok.Success() || ok.Skipped() || ok.ShouldRetry() {
		t.Errorf("success result misclassified: %+v", ok)
	}

	fail := FailureResult("not found", nil)
	if fail.Success() || fail.ShouldRetry() {
		t.Errorf("failure result misclassified: %+v", fail)
	}

	skip := SkipResult("already running")
	if !skip.Skipped() || skip.Success() {
		t.Errorf("skip result misclassified: %+v", skip)
	}
}

func TestShouldRetryBudget(t *testing.T) {
	for _, tt := range []struct {
		count, max int
		want       bool
	}{
		{0, 3, true},
		{2, 3, true},
		{3, 3, false},
		{5, 3, false},
	} {
		r := RetryResult("transient", tt.count, tt.max)
		if got := r.ShouldRetry(); got != tt.want {
			t.Errorf("ShouldRetry(count=%d, max=%d) = %v, want %v", tt.count, tt.max, got, tt.want)
		}
	}
}
