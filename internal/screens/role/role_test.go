package role

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/ledger"
	"github.com/abhisek/rolwijzer/internal/router"
	"github.com/abhisek/rolwijzer/internal/screens"
	"github.com/abhisek/rolwijzer/internal/screens/questionflow"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newScreen(t *testing.T, roleID string, l *ledger.Ledger) *RoleScreen {
	t.Helper()
	cat := catalog.Default()
	role, err := cat.Role(roleID)
	if err != nil {
		t.Fatal(err)
	}
	if l == nil {
		l = ledger.New()
	}
	return New(screens.NewEnv(cat, l, nil, nil), *role)
}

func TestTabs_Cycle(t *testing.T) {
	s := newScreen(t, "ziener", nil)

	s.Update(specialKey(tea.KeyTab))
	if s.Tab() != TabFlowchart {
		t.Errorf("Tab() = %v, want %v", s.Tab(), TabFlowchart)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.Tab() != TabFlashcards {
		t.Errorf("Tab() = %v, want %v", s.Tab(), TabFlashcards)
	}
	if !strings.Contains(s.View(100, 40), "Kaart 1 van") {
		t.Error("flashcards tab should render the drill")
	}
}

func TestEnter_PushesQuestionFlow(t *testing.T) {
	s := newScreen(t, "ziener", nil)
	s.Update(specialKey(tea.KeyDown))
	if s.Selected() != 1 {
		t.Fatalf("Selected() = %d, want 1", s.Selected())
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	qf, ok := push.Screen.(*questionflow.QuestionFlowScreen)
	if !ok {
		t.Fatalf("pushed %T, want *questionflow.QuestionFlowScreen", push.Screen)
	}
	if qf.Session().Situation().ID != "falen-leren" {
		t.Errorf("situation = %q, want falen-leren", qf.Session().Situation().ID)
	}
}

func TestSwitchRole_Wraps(t *testing.T) {
	ids := catalog.Default().RoleIDs()
	s := newScreen(t, ids[0], nil)
	s.Update(specialKey(tea.KeyTab))

	_, cmd := s.Update(keyPress('['))
	if cmd == nil {
		t.Fatal("expected replace command")
	}
	rep, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	next := rep.Screen.(*RoleScreen)
	if next.role.ID != ids[len(ids)-1] {
		t.Errorf("role = %q, want %q", next.role.ID, ids[len(ids)-1])
	}
	if next.Tab() != TabFlowchart {
		t.Errorf("Tab() = %v, want tab kept", next.Tab())
	}

	_, cmd = s.Update(keyPress(']'))
	next = cmd().(router.ReplaceScreenMsg).Screen.(*RoleScreen)
	if next.role.ID != ids[1] {
		t.Errorf("role = %q, want %q", next.role.ID, ids[1])
	}
}

func TestView_CompletedSituation(t *testing.T) {
	l := ledger.New()
	l.Record(ledger.NewExample("ziener", "zelfkennis", "Feedback ontvangen", "Geleerd",
		time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))
	s := newScreen(t, "ziener", l)

	out := s.View(100, 40)
	if !strings.Contains(out, "1/2 situaties") {
		t.Errorf("expected role counter:\n%s", out)
	}
	if !strings.Contains(out, "✓") {
		t.Errorf("expected completed mark:\n%s", out)
	}
	if !strings.Contains(out, "Verzamelde voorbeelden (1)") || !strings.Contains(out, "01-03-2025") {
		t.Errorf("expected collected examples:\n%s", out)
	}
}

func TestClose_StopsDrill(t *testing.T) {
	s := newScreen(t, "ziener", nil)
	s.Close()
	if _, ok := s.flashcards.Quiz().RecordAnswer(true); ok {
		t.Error("closed drill should ignore answers")
	}
}

func TestTabString(t *testing.T) {
	tests := []struct {
		tab  Tab
		want string
	}{
		{TabSituations, "Situaties"},
		{TabFlowchart, "Stroomdiagram"},
		{TabFlashcards, "Flashcards"},
	}
	for _, tt := range tests {
		if got := tt.tab.String(); got != tt.want {
			t.Errorf("Tab(%d).String() = %q, want %q", tt.tab, got, tt.want)
		}
	}
}

func TestHeader_ShowsReplays(t *testing.T) {
	l := ledger.New()
	s := newScreen(t, "ziener", l)
	if strings.Contains(s.View(100, 40), "herhalingen") {
		t.Error("no replays yet")
	}

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	l.Record(ledger.NewExample("ziener", "zelfkennis", "Feedback ontvangen", "eerste", at))
	l.Record(ledger.NewExample("ziener", "zelfkennis", "Feedback ontvangen", "tweede", at.Add(time.Hour)))
	if !strings.Contains(s.View(100, 40), "1 verschillende situaties, 1 herhalingen") {
		t.Errorf("replay hint missing:\n%s", s.View(100, 40))
	}
}

func TestStartSituation_SettlesPendingReveal(t *testing.T) {
	cat := catalog.Default()
	role, err := cat.Role("ziener")
	if err != nil {
		t.Fatal(err)
	}
	env := screens.NewEnv(cat, ledger.New(), nil, nil)
	env.RevealDelay = time.Millisecond
	s := New(env, *role)
	r := router.New(s)

	r.Update(specialKey(tea.KeyTab))
	r.Update(specialKey(tea.KeyTab))
	r.Update(keyPress('m'))
	reveal := r.Update(keyPress('y'))
	if reveal == nil {
		t.Fatal("expected reveal tick")
	}

	// Open a situation before the tick fires; the tick then lands on the
	// question flow.
	r.Update(specialKey(tea.KeyTab))
	push := r.Update(specialKey(tea.KeyEnter))
	if push == nil {
		t.Fatal("expected push command")
	}
	r.Update(push())
	r.Update(reveal())
	r.Update(router.PopScreenMsg{})

	q := s.flashcards.Quiz()
	if q.ShowAnswer() {
		t.Error("reveal still showing after returning to the role")
	}
	if _, ok := q.RecordAnswer(true); !ok {
		t.Error("drill should accept the next answer")
	}
	if q.Score().Total != 2 {
		t.Errorf("Score().Total = %d, want 2", q.Score().Total)
	}
}
