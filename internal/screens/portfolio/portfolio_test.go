package portfolio

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/ledger"
	"github.com/abhisek/rolwijzer/internal/screens"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newScreen(t *testing.T) (*PortfolioScreen, *ledger.Ledger) {
	t.Helper()
	l := ledger.New()
	return New(screens.NewEnv(catalog.Default(), l, nil, nil)), l
}

func seed(l *ledger.Ledger) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	l.Record(ledger.NewExample("ziener", "zelfkennis", "Feedback ontvangen", "Ik vraag om concrete tips.", base))
	l.Record(ledger.NewExample("ziener", "falen-leren", "Een project dat mislukt", "Plannen in kleinere stappen.", base.Add(time.Hour)))
}

func TestEmpty(t *testing.T) {
	s, _ := newScreen(t)
	if !strings.Contains(s.View(100, 40), "Nog geen voorbeelden") {
		t.Error("expected empty state")
	}
}

func TestEntries_NewestFirst(t *testing.T) {
	s, l := newScreen(t)
	seed(l)

	got := s.Entries()
	if len(got) != 2 {
		t.Fatalf("len(Entries()) = %d, want 2", len(got))
	}
	if got[0].SituationID != "falen-leren" {
		t.Errorf("first entry = %q, want falen-leren", got[0].SituationID)
	}
}

func TestExpand_ShowsReflection(t *testing.T) {
	s, l := newScreen(t)
	seed(l)

	if strings.Contains(s.View(100, 40), "kleinere stappen") {
		t.Error("reflection should be collapsed")
	}
	s.Update(specialKey(tea.KeyEnter))
	if !strings.Contains(s.View(100, 40), "kleinere stappen") {
		t.Error("expected expanded reflection")
	}

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))
	if !strings.Contains(s.View(100, 40), "concrete tips") {
		t.Error("expected second reflection expanded")
	}
}

func TestFilter(t *testing.T) {
	s, l := newScreen(t)
	seed(l)

	s.Update(keyPress('/'))
	if !s.HandlesBack() {
		t.Fatal("filter should capture esc")
	}
	for _, r := range "project" {
		s.Update(keyPress(r))
	}
	if got := s.Entries(); len(got) != 1 || got[0].SituationID != "falen-leren" {
		t.Errorf("Entries() = %+v, want only falen-leren", got)
	}

	s.Update(specialKey(tea.KeyEnter))
	if s.HandlesBack() {
		t.Error("enter should leave filter mode")
	}
	if len(s.Entries()) != 1 {
		t.Error("filter should stay applied after enter")
	}

	s.Update(keyPress('/'))
	s.Update(specialKey(tea.KeyEscape))
	if len(s.Entries()) != 2 {
		t.Errorf("len(Entries()) = %d, want 2 after clearing", len(s.Entries()))
	}
}

func TestFilter_NoMatch(t *testing.T) {
	s, l := newScreen(t)
	seed(l)

	s.Update(keyPress('/'))
	for _, r := range "xyz" {
		s.Update(keyPress(r))
	}
	if !strings.Contains(s.View(100, 40), "Geen voorbeelden gevonden") {
		t.Error("expected no-match message")
	}
}

func TestFilter_MatchesRoleName(t *testing.T) {
	s, l := newScreen(t)
	seed(l)
	l.Record(ledger.NewExample("empathicus", "x", "Iets anders", "Luisteren", time.Now()))

	s.Update(keyPress('/'))
	for _, r := range "ziener" {
		s.Update(keyPress(r))
	}
	if got := len(s.Entries()); got != 2 {
		t.Errorf("len(Entries()) = %d, want 2", got)
	}
}
