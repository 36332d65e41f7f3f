package flashcard

import (
	"time"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/google/uuid"
)

// AllCategories is the filter value that matches every concept.
const AllCategories = "all"

// DefaultRevealDelay is how long a quiz answer stays visible before the
// deck advances.
const DefaultRevealDelay = 2 * time.Second

// Mode selects between browsing cards and self-scored quizzing.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeQuiz
)

// String returns the mode label.
func (m Mode) String() string {
	if m == ModeQuiz {
		return "🧠 Quiz"
	}
	return "📖 Bladeren"
}

// Score counts self-reported answers in quiz mode.
type Score struct {
	Correct int
	Total   int
}

// AdvanceToken identifies one scheduled auto-advance. It only applies
// while the quiz and generation it was issued for are still current.
type AdvanceToken struct {
	QuizID     string
	Generation uint64
}

// Quiz is a flashcard drill over one role's concepts. It never touches
// the ledger.
type Quiz struct {
	id         string
	concepts   []catalog.Concept
	categories []string

	category   string
	filtered   []catalog.Concept
	mode       Mode
	index      int
	flipped    bool
	showAnswer bool
	score      Score
	generation uint64
	closed     bool
}

// New creates a quiz in browse mode over all concepts.
func New(concepts []catalog.Concept) *Quiz {
	q := &Quiz{
		id:       uuid.New().String(),
		concepts: concepts,
		category: AllCategories,
	}
	q.categories = categoriesOf(concepts)
	q.refilter()
	return q
}

func categoriesOf(concepts []catalog.Concept) []string {
	out := []string{AllCategories}
	seen := make(map[string]bool)
	for _, c := range concepts {
		if seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		out = append(out, c.Category)
	}
	return out
}

func (q *Quiz) refilter() {
	q.filtered = q.filtered[:0]
	for _, c := range q.concepts {
		if q.category == AllCategories || c.Category == q.category {
			q.filtered = append(q.filtered, c)
		}
	}
}

// ID returns the quiz instance ID.
func (q *Quiz) ID() string { return q.id }

// Categories returns "all" followed by the unique categories in
// first-seen order.
func (q *Quiz) Categories() []string {
	out := make([]string, len(q.categories))
	copy(out, q.categories)
	return out
}

func (q *Quiz) Category() string { return q.category }

func (q *Quiz) Mode() Mode { return q.mode }

func (q *Quiz) Index() int { return q.index }

// Len returns the number of cards matching the category filter.
func (q *Quiz) Len() int { return len(q.filtered) }

func (q *Quiz) Flipped() bool { return q.flipped }

// ShowAnswer reports whether a quiz answer is being revealed.
func (q *Quiz) ShowAnswer() bool { return q.showAnswer }

func (q *Quiz) Score() Score { return q.score }

// Current returns the card at the current index. ok is false when the
// filtered list is empty.
func (q *Quiz) Current() (catalog.Concept, bool) {
	if len(q.filtered) == 0 {
		return catalog.Concept{}, false
	}
	return q.filtered[q.index], true
}

// cancel invalidates any outstanding advance token.
func (q *Quiz) cancel() {
	q.generation++
}

// SelectCategory filters the deck and starts from its first card.
func (q *Quiz) SelectCategory(name string) {
	q.category = name
	q.refilter()
	q.index = 0
	q.flipped = false
	q.showAnswer = false
	q.cancel()
}

// NextCategory cycles to the following category.
func (q *Quiz) NextCategory() {
	i := 0
	for j, c := range q.categories {
		if c == q.category {
			i = j
			break
		}
	}
	q.SelectCategory(q.categories[(i+1)%len(q.categories)])
}

// Flip turns the current card over. It only applies in browse mode.
func (q *Quiz) Flip() {
	if q.mode != ModeBrowse || len(q.filtered) == 0 {
		return
	}
	q.flipped = !q.flipped
}

// RecordAnswer scores the current card and reveals its definition. The
// returned token must be passed to Advance once the reveal delay elapses.
// ok is false when the answer was ignored.
func (q *Quiz) RecordAnswer(correct bool) (tok AdvanceToken, ok bool) {
	if q.closed || q.mode != ModeQuiz || len(q.filtered) == 0 || q.showAnswer {
		return AdvanceToken{}, false
	}
	q.score.Total++
	if correct {
		q.score.Correct++
	}
	q.showAnswer = true
	q.cancel()
	return AdvanceToken{QuizID: q.id, Generation: q.generation}, true
}

// Advance moves to the next card after a reveal. Stale tokens are ignored
// and reported as false.
func (q *Quiz) Advance(tok AdvanceToken) bool {
	if q.closed || tok.QuizID != q.id || tok.Generation != q.generation {
		return false
	}
	if len(q.filtered) > 0 {
		q.index = (q.index + 1) % len(q.filtered)
	}
	q.showAnswer = false
	q.cancel()
	return true
}

// Settle finishes a pending reveal at once, as if its delay had elapsed.
// Callers use it when the reveal tick can no longer reach the quiz. It
// reports whether a reveal was pending.
func (q *Quiz) Settle() bool {
	if q.closed || !q.showAnswer {
		return false
	}
	return q.Advance(AdvanceToken{QuizID: q.id, Generation: q.generation})
}

func (q *Quiz) move(i int) {
	q.index = i
	q.flipped = false
	q.showAnswer = false
	q.cancel()
}

// Next moves to the following card, wrapping at the end.
func (q *Quiz) Next() {
	n := len(q.filtered)
	if n <= 1 {
		return
	}
	q.move((q.index + 1) % n)
}

// Prev moves to the previous card, wrapping at the start.
func (q *Quiz) Prev() {
	n := len(q.filtered)
	if n <= 1 {
		return
	}
	q.move((q.index - 1 + n) % n)
}

// Jump moves to card i. Out-of-range indexes are ignored.
func (q *Quiz) Jump(i int) {
	if i < 0 || i >= len(q.filtered) {
		return
	}
	q.move(i)
}

// Reset clears the score and returns to the first card.
func (q *Quiz) Reset() {
	q.score = Score{}
	q.index = 0
	q.showAnswer = false
	q.cancel()
}

// SetMode switches between browse and quiz mode and resets the drill.
func (q *Quiz) SetMode(m Mode) {
	q.mode = m
	switch m {
	case ModeBrowse:
		q.showAnswer = false
	case ModeQuiz:
		q.flipped = false
	}
	q.Reset()
}

// ToggleMode switches to the other mode.
func (q *Quiz) ToggleMode() {
	if q.mode == ModeBrowse {
		q.SetMode(ModeQuiz)
		return
	}
	q.SetMode(ModeBrowse)
}

// Complete reports whether every card in the deck has been answered.
func (q *Quiz) Complete() bool {
	return len(q.filtered) > 0 && q.score.Total >= len(q.filtered)
}

// Percent returns the score as a whole percentage.
func (q *Quiz) Percent() int {
	if q.score.Total == 0 {
		return 0
	}
	return (q.score.Correct*100 + q.score.Total/2) / q.score.Total
}

// Close invalidates all outstanding tokens. The quiz ignores answers
// afterwards.
func (q *Quiz) Close() {
	q.closed = true
	q.cancel()
}
