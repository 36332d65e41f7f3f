package flashcard

import (
	"testing"

	"github.com/abhisek/rolwijzer/internal/catalog"
)

func testConcepts() []catalog.Concept {
	return []catalog.Concept{
		{ID: "a", Term: "A", Category: "Modellen"},
		{ID: "b", Term: "B", Category: "Houding"},
		{ID: "c", Term: "C", Category: "Modellen"},
	}
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	q := New(testConcepts())
	got := q.Categories()
	want := []string{"all", "Modellen", "Houding"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSelectCategory_Filters(t *testing.T) {
	q := New(testConcepts())
	q.Next()
	q.SelectCategory("Modellen")
	if q.Len() != 2 || q.Index() != 0 {
		t.Errorf("got len %d index %d, want 2 and 0", q.Len(), q.Index())
	}
	c, ok := q.Current()
	if !ok || c.ID != "a" {
		t.Errorf("Current() = %v, %v; want a", c.ID, ok)
	}
}

func TestEmptyCategory(t *testing.T) {
	q := New(testConcepts())
	q.SelectCategory("Onbekend")
	if _, ok := q.Current(); ok {
		t.Error("Current() should be empty")
	}
	q.Next()
	q.Prev()
	q.Flip()
	q.SetMode(ModeQuiz)
	if _, ok := q.RecordAnswer(true); ok {
		t.Error("RecordAnswer on an empty deck should be ignored")
	}
	if q.Complete() {
		t.Error("empty deck must not be complete")
	}

	empty := New(nil)
	if _, ok := empty.Current(); ok {
		t.Error("Current() on a quiz without concepts should be empty")
	}
}

func TestFlip_BrowseOnly(t *testing.T) {
	q := New(testConcepts())
	q.Flip()
	if !q.Flipped() {
		t.Error("Flip in browse mode should flip")
	}
	q.SetMode(ModeQuiz)
	if q.Flipped() {
		t.Error("entering quiz mode should clear flipped")
	}
	q.Flip()
	if q.Flipped() {
		t.Error("Flip in quiz mode should be ignored")
	}
}

func TestScoreSequence(t *testing.T) {
	q := New(testConcepts())
	q.SetMode(ModeQuiz)

	for _, correct := range []bool{true, false, true} {
		tok, ok := q.RecordAnswer(correct)
		if !ok {
			t.Fatal("RecordAnswer ignored")
		}
		if !q.Advance(tok) {
			t.Fatal("Advance with a fresh token should apply")
		}
	}
	if q.Score() != (Score{Correct: 2, Total: 3}) {
		t.Errorf("Score() = %+v, want {2 3}", q.Score())
	}
	if !q.Complete() {
		t.Error("Complete() = false, want true")
	}
	if q.Percent() != 67 {
		t.Errorf("Percent() = %d, want 67", q.Percent())
	}

	q.Reset()
	if q.Score() != (Score{}) || q.Index() != 0 {
		t.Errorf("after Reset score %+v index %d, want zero", q.Score(), q.Index())
	}
}

func TestRecordAnswer_IgnoredWhileShowing(t *testing.T) {
	q := New(testConcepts())
	q.SetMode(ModeQuiz)
	_, _ = q.RecordAnswer(true)
	if _, ok := q.RecordAnswer(true); ok {
		t.Error("second answer while revealing should be ignored")
	}
	if q.Score().Total != 1 {
		t.Errorf("Total = %d, want 1", q.Score().Total)
	}
}

func TestRecordAnswer_BrowseIgnored(t *testing.T) {
	q := New(testConcepts())
	if _, ok := q.RecordAnswer(true); ok {
		t.Error("RecordAnswer in browse mode should be ignored")
	}
}

func TestAdvance_StaleTokens(t *testing.T) {
	tests := []struct {
		name      string
		supersede func(q *Quiz)
	}{
		{"next", func(q *Quiz) { q.Next() }},
		{"prev", func(q *Quiz) { q.Prev() }},
		{"jump", func(q *Quiz) { q.Jump(2) }},
		{"reset", func(q *Quiz) { q.Reset() }},
		{"category", func(q *Quiz) { q.SelectCategory("Modellen") }},
		{"mode", func(q *Quiz) { q.SetMode(ModeQuiz) }},
		{"close", func(q *Quiz) { q.Close() }},
	}
	for _, tt := range tests {
		q := New(testConcepts())
		q.SetMode(ModeQuiz)
		tok, ok := q.RecordAnswer(true)
		if !ok {
			t.Fatalf("%s: RecordAnswer ignored", tt.name)
		}
		tt.supersede(q)
		before := q.Index()
		if q.Advance(tok) {
			t.Errorf("%s: stale token applied", tt.name)
		}
		if q.Index() != before {
			t.Errorf("%s: stale token moved index %d -> %d", tt.name, before, q.Index())
		}
	}
}

func TestAdvance_ForeignQuiz(t *testing.T) {
	a := New(testConcepts())
	b := New(testConcepts())
	a.SetMode(ModeQuiz)
	tok, _ := a.RecordAnswer(true)
	if b.Advance(tok) {
		t.Error("token from another quiz should be ignored")
	}
}

func TestAdvance_Wraps(t *testing.T) {
	q := New(testConcepts())
	q.SetMode(ModeQuiz)
	q.Jump(2)
	tok, _ := q.RecordAnswer(false)
	q.Advance(tok)
	if q.Index() != 0 {
		t.Errorf("Index() = %d, want 0 after wrap", q.Index())
	}
	if q.ShowAnswer() {
		t.Error("Advance should clear the reveal")
	}
}

func TestSettle(t *testing.T) {
	q := New(testConcepts())
	q.SetMode(ModeQuiz)
	if q.Settle() {
		t.Error("Settle without a pending reveal should report false")
	}

	tok, _ := q.RecordAnswer(true)
	if !q.Settle() {
		t.Fatal("Settle should finish the pending reveal")
	}
	if q.ShowAnswer() || q.Index() != 1 {
		t.Errorf("ShowAnswer() = %v, Index() = %d, want false/1", q.ShowAnswer(), q.Index())
	}
	if q.Advance(tok) {
		t.Error("the original token should be stale after Settle")
	}
	if _, ok := q.RecordAnswer(false); !ok {
		t.Error("answers should be accepted again after Settle")
	}

	q.Close()
	if q.Settle() {
		t.Error("closed quiz should not settle")
	}
}

func TestNextPrev_Wrap(t *testing.T) {
	q := New(testConcepts())
	q.Prev()
	if q.Index() != 2 {
		t.Errorf("Prev from 0: Index() = %d, want 2", q.Index())
	}
	q.Next()
	if q.Index() != 0 {
		t.Errorf("Next from 2: Index() = %d, want 0", q.Index())
	}
}

func TestNextPrev_SingleCardNoop(t *testing.T) {
	q := New(testConcepts())
	q.SelectCategory("Houding")
	q.Flip()
	q.Next()
	if !q.Flipped() {
		t.Error("Next on a single card should be a no-op")
	}
}

func TestJump_OutOfRange(t *testing.T) {
	q := New(testConcepts())
	q.Jump(1)
	q.Jump(9)
	if q.Index() != 1 {
		t.Errorf("Index() = %d, want 1", q.Index())
	}
}

func TestNextCategory_Cycles(t *testing.T) {
	q := New(testConcepts())
	q.NextCategory()
	q.NextCategory()
	q.NextCategory()
	if q.Category() != AllCategories {
		t.Errorf("Category() = %q, want %q", q.Category(), AllCategories)
	}
}

func TestClose_IgnoresAnswers(t *testing.T) {
	q := New(testConcepts())
	q.SetMode(ModeQuiz)
	q.Close()
	if _, ok := q.RecordAnswer(true); ok {
		t.Error("RecordAnswer after Close should be ignored")
	}
}
