package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/ledger"
	"github.com/abhisek/rolwijzer/internal/progress"
	"github.com/abhisek/rolwijzer/internal/router"
)

func testResult(t *testing.T) Result {
	t.Helper()
	cat := catalog.Default()
	role, err := cat.Role("ziener")
	if err != nil {
		t.Fatal(err)
	}
	l := ledger.New()
	agg := progress.New(cat, l)

	before := Take(agg, role.ID)
	ex := l.Record(ledger.NewExample(role.ID, "zelfkennis", "Feedback ontvangen",
		"Ik vraag om concrete tips.", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))
	after := Take(agg, role.ID)

	return Result{
		Role:      *role,
		Situation: role.Situations[0],
		Example:   ex,
		Correct:   1,
		Graded:    1,
		Before:    before,
		After:     after,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult(t))
	if s.Title() != "Situatie afgerond" {
		t.Errorf("Title = %q, want %q", s.Title(), "Situatie afgerond")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	r := testResult(t)
	view := New(r).View(100, 40)

	for _, want := range []string{
		"Situatie afgerond!",
		"1 van 1 goed",
		"concrete tips",
		"0% → 50%",
		"Nieuwe stap bereikt: " + r.Role.FlowchartSteps[0].Title,
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestResult_NewSteps(t *testing.T) {
	r := testResult(t)
	steps := r.NewSteps()
	if len(steps) != 1 || steps[0].ID != r.Role.FlowchartSteps[0].ID {
		t.Errorf("NewSteps() = %+v, want first step", steps)
	}

	r.Before.Steps = len(r.Role.FlowchartSteps)
	r.After.Steps = len(r.Role.FlowchartSteps)
	if got := r.NewSteps(); got != nil {
		t.Errorf("NewSteps() = %+v, want nil when nothing changed", got)
	}
}

func TestResult_NewAchievements(t *testing.T) {
	r := Result{Before: Snapshot{Overall: 0.1}, After: Snapshot{Overall: 0.45}}
	got := r.NewAchievements()
	if len(got) != 2 {
		t.Fatalf("NewAchievements() = %d badges, want 2", len(got))
	}
	if got[0].Threshold != 0.2 || got[1].Threshold != 0.4 {
		t.Errorf("thresholds = %v, %v, want 0.2, 0.4", got[0].Threshold, got[1].Threshold)
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	s := New(testResult(t))
	for _, key := range []rune{tea.KeyEnter, tea.KeyEscape} {
		_, cmd := s.Update(tea.KeyPressMsg{Code: key})
		if cmd == nil {
			t.Fatalf("expected a command on %q", key)
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("got %T, want PopScreenMsg", cmd())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResult(t))
	if got := len(s.KeyHints()); got != 2 {
		t.Errorf("KeyHints length = %d, want 2", got)
	}
}
