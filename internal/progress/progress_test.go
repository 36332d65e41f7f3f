package progress

import (
	"testing"
	"time"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/ledger"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	steps := []catalog.FlowchartStep{{ID: "s0"}, {ID: "s1"}, {ID: "s2"}, {ID: "s3"}}
	c, err := catalog.New([]catalog.Role{
		{ID: "a", Situations: []catalog.Situation{{ID: "x"}, {ID: "y"}}, FlowchartSteps: steps},
		{ID: "b", Situations: []catalog.Situation{{ID: "z"}, {ID: "w"}}, FlowchartSteps: steps},
		{ID: "empty"},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func record(l *ledger.Ledger, roleID, sitID string) {
	l.Record(ledger.NewExample(roleID, sitID, sitID, "Learned X", time.Now()))
}

func TestOverall(t *testing.T) {
	l := ledger.New()
	a := New(testCatalog(t), l)
	if got := a.Overall(); got != 0 {
		t.Errorf("Overall() = %v, want 0", got)
	}
	record(l, "a", "x")
	if got := a.Overall(); got != 0.25 {
		t.Errorf("Overall() = %v, want 0.25", got)
	}
}

func TestOverall_NoSituations(t *testing.T) {
	c, err := catalog.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	a := New(c, ledger.New())
	if got := a.Overall(); got != 0 {
		t.Errorf("Overall() = %v, want 0", got)
	}
}

func TestRole_ClampsDuplicates(t *testing.T) {
	l := ledger.New()
	a := New(testCatalog(t), l)
	record(l, "a", "x")
	if got := a.Role("a"); got != 0.5 {
		t.Errorf("Role(a) = %v, want 0.5", got)
	}
	record(l, "a", "x")
	record(l, "a", "x")
	if got := a.Role("a"); got != 1 {
		t.Errorf("Role(a) = %v, want 1 after clamping", got)
	}
	if got := a.CompletedCount("a"); got != 3 {
		t.Errorf("CompletedCount(a) = %d, want 3", got)
	}
	if got := a.DistinctCompleted("a"); got != 1 {
		t.Errorf("DistinctCompleted(a) = %d, want 1", got)
	}
}

func TestRole_ZeroDenominator(t *testing.T) {
	l := ledger.New()
	a := New(testCatalog(t), l)
	record(l, "empty", "ghost")
	if got := a.Role("empty"); got != 0 {
		t.Errorf("Role(empty) = %v, want 0", got)
	}
	if got := a.Role("unknown"); got != 0 {
		t.Errorf("Role(unknown) = %v, want 0", got)
	}
}

func TestRecord_IncrementsCount(t *testing.T) {
	l := ledger.New()
	a := New(testCatalog(t), l)
	for i := 1; i <= 3; i++ {
		record(l, "b", "z")
		if got := a.CompletedCount("b"); got != i {
			t.Errorf("after %d records CompletedCount(b) = %d, want %d", i, got, i)
		}
	}
}

func TestIsSituationCompleted_Idempotent(t *testing.T) {
	l := ledger.New()
	a := New(testCatalog(t), l)
	record(l, "a", "y")
	for i := 0; i < 3; i++ {
		if !a.IsSituationCompleted("a", "y") {
			t.Fatal("IsSituationCompleted(a, y) = false, want true")
		}
	}
	if a.IsSituationCompleted("a", "x") {
		t.Error("IsSituationCompleted(a, x) = true, want false")
	}
}

func TestAchievements(t *testing.T) {
	tests := []struct {
		overall  float64
		unlocked int
	}{
		{0, 0},
		{0.19, 0},
		{0.2, 1},
		{0.5, 2},
		{0.8, 4},
		{1, 5},
	}
	for _, tt := range tests {
		n := 0
		for _, ach := range AchievementsFor(tt.overall) {
			if ach.Unlocked {
				n++
			}
		}
		if n != tt.unlocked {
			t.Errorf("AchievementsFor(%v): %d unlocked, want %d", tt.overall, n, tt.unlocked)
		}
	}
}

func TestUnlocked(t *testing.T) {
	l := ledger.New()
	a := New(testCatalog(t), l)
	record(l, "a", "x")
	record(l, "a", "y")
	got := a.Unlocked()
	if len(got) != 2 {
		t.Fatalf("Unlocked() returned %d badges, want 2", len(got))
	}
	if got[1].Title != "Op weg" {
		t.Errorf("second badge = %q, want %q", got[1].Title, "Op weg")
	}
}

func TestIndicator(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{0, "📈"},
		{0.49, "📈"},
		{0.5, "🚀"},
		{0.75, "🌟"},
		{1, "🏆"},
	}
	for _, tt := range tests {
		if got := Indicator(tt.f); got != tt.want {
			t.Errorf("Indicator(%v) = %q, want %q", tt.f, got, tt.want)
		}
	}
	if got := FlowchartIndicator(0.5); got != "📈" {
		t.Errorf("FlowchartIndicator(0.5) = %q, want 📈", got)
	}
}

func TestSteps_CountTwo(t *testing.T) {
	l := ledger.New()
	a := New(testCatalog(t), l)
	record(l, "a", "x")
	record(l, "a", "y")

	steps := a.Steps("a")
	if len(steps) != 4 {
		t.Fatalf("got %d steps, want 4", len(steps))
	}
	wantDone := []bool{true, true, false, false}
	for i, s := range steps {
		if s.Completed != wantDone[i] {
			t.Errorf("step %d Completed = %v, want %v", i, s.Completed, wantDone[i])
		}
	}
	if !steps[2].Next || steps[3].Next {
		t.Error("step 2 should be the only next step")
	}
	if got := a.NextStep("a"); got != 2 {
		t.Errorf("NextStep(a) = %d, want 2", got)
	}
	if got := a.CompletedSteps("a"); got != 2 {
		t.Errorf("CompletedSteps(a) = %d, want 2", got)
	}
	if got := a.StepFraction("a"); got != 0.5 {
		t.Errorf("StepFraction(a) = %v, want 0.5", got)
	}
	if steps[2].Label() != "Volgende stap" || steps[3].Label() != "Nog niet bereikt" {
		t.Errorf("unexpected labels %q, %q", steps[2].Label(), steps[3].Label())
	}
}

func TestNextStep_AllCompleted(t *testing.T) {
	if got := NextStep(4, 4); got != -1 {
		t.Errorf("NextStep(4, 4) = %d, want -1", got)
	}
	if got := NextStep(4, 9); got != -1 {
		t.Errorf("NextStep(4, 9) = %d, want -1", got)
	}
	if got := NextStep(4, 0); got != 0 {
		t.Errorf("NextStep(4, 0) = %d, want 0", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.666); got != 67 {
		t.Errorf("Percent(0.666) = %d, want 67", got)
	}
}
