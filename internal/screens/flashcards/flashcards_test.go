package flashcards

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/flashcard"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testRole() catalog.Role {
	return catalog.Role{
		ID:   "ziener",
		Name: "Ziener",
		Concepts: []catalog.Concept{
			{ID: "a", Term: "STARR-methode", Definition: "Structuur", Category: "Modellen"},
			{ID: "b", Term: "Valkuil", Definition: "Doorgeschoten kwaliteit", Category: "Begrippen"},
			{ID: "c", Term: "Kernkwadrant", Definition: "Model van Ofman", Category: "Modellen"},
		},
	}
}

func TestBrowse_Flip(t *testing.T) {
	s := New(testRole(), time.Millisecond)
	if strings.Contains(s.View(100, 30), "Structuur") {
		t.Fatal("definition should be hidden before flipping")
	}
	s.Update(keyPress(' '))
	if !s.Quiz().Flipped() {
		t.Fatal("expected card to be flipped")
	}
	if !strings.Contains(s.View(100, 30), "Structuur") {
		t.Error("definition should show after flipping")
	}
}

func TestQuiz_RevealTick(t *testing.T) {
	s := New(testRole(), time.Millisecond)
	s.Update(keyPress('m'))
	if s.Quiz().Mode() != flashcard.ModeQuiz {
		t.Fatal("expected quiz mode")
	}

	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected reveal tick command")
	}
	if !s.Quiz().ShowAnswer() {
		t.Fatal("expected answer to be revealed")
	}
	if !strings.Contains(s.View(100, 30), "Goed gedaan") {
		t.Error("expected correct feedback in view")
	}

	// Answers are ignored while the reveal is pending.
	if _, again := s.Update(keyPress('n')); again != nil {
		t.Error("expected no command while revealing")
	}

	msg := cmd()
	s.Update(msg)
	if s.Quiz().ShowAnswer() {
		t.Error("expected reveal to end after tick")
	}
	if s.Quiz().Index() != 1 {
		t.Errorf("Index() = %d, want 1", s.Quiz().Index())
	}
}

func TestQuiz_StaleTickIgnored(t *testing.T) {
	s := New(testRole(), time.Millisecond)
	s.Update(keyPress('m'))
	_, cmd := s.Update(keyPress('n'))
	stale := cmd()

	s.Update(specialKey(tea.KeyRight)) // navigation cancels the reveal
	idx := s.Quiz().Index()
	s.Update(stale)
	if s.Quiz().Index() != idx {
		t.Errorf("stale tick moved index from %d to %d", idx, s.Quiz().Index())
	}
}

func TestQuiz_CloseCancelsTick(t *testing.T) {
	s := New(testRole(), time.Millisecond)
	s.Update(keyPress('m'))
	_, cmd := s.Update(keyPress('y'))
	s.Close()
	s.Update(cmd())
	if s.Quiz().Index() != 0 {
		t.Errorf("Index() = %d, want 0 after close", s.Quiz().Index())
	}
}

func TestQuiz_CompletionBanner(t *testing.T) {
	s := New(testRole(), time.Millisecond)
	s.Update(keyPress('m'))
	for _, k := range []rune{'y', 'n', 'y'} {
		_, cmd := s.Update(keyPress(k))
		s.Update(cmd())
	}
	if sc := s.Quiz().Score(); sc.Correct != 2 || sc.Total != 3 {
		t.Fatalf("Score = %+v, want {2 3}", sc)
	}
	if !strings.Contains(s.View(100, 30), "Quiz voltooid! Je score: 67%") {
		t.Errorf("expected completion banner:\n%s", s.View(100, 30))
	}

	s.Update(keyPress('r'))
	if sc := s.Quiz().Score(); sc.Total != 0 || s.Quiz().Index() != 0 {
		t.Errorf("after reset Score = %+v, Index = %d", sc, s.Quiz().Index())
	}
}

func TestCategoryCycle(t *testing.T) {
	s := New(testRole(), time.Millisecond)
	s.Update(keyPress('c'))
	if s.Quiz().Category() != "Modellen" || s.Quiz().Len() != 2 {
		t.Errorf("Category = %q, Len = %d, want Modellen/2", s.Quiz().Category(), s.Quiz().Len())
	}
	s.Update(keyPress('c'))
	s.Update(keyPress('c'))
	if s.Quiz().Category() != flashcard.AllCategories {
		t.Errorf("Category = %q, want all", s.Quiz().Category())
	}
}

func TestJumpAndNavigate(t *testing.T) {
	s := New(testRole(), time.Millisecond)
	s.Update(keyPress('3'))
	if s.Quiz().Index() != 2 {
		t.Fatalf("Index() = %d, want 2", s.Quiz().Index())
	}
	s.Update(keyPress('l'))
	if s.Quiz().Index() != 0 {
		t.Errorf("Index() = %d, want 0 after wrap", s.Quiz().Index())
	}
	s.Update(keyPress('h'))
	if s.Quiz().Index() != 2 {
		t.Errorf("Index() = %d, want 2 after wrap back", s.Quiz().Index())
	}
	s.Update(keyPress('9'))
	if s.Quiz().Index() != 2 {
		t.Error("out-of-range jump should be ignored")
	}
}

func TestEmptyState(t *testing.T) {
	s := New(catalog.Role{ID: "x", Name: "Leeg"}, 0)
	out := s.View(100, 30)
	if !strings.Contains(out, "Geen begrippen") {
		t.Errorf("expected empty state:\n%s", out)
	}
	s.Update(keyPress('m'))
	if _, cmd := s.Update(keyPress('y')); cmd != nil {
		t.Error("answer on empty deck should be ignored")
	}
}
