package situation

import "github.com/abhisek/rolwijzer/internal/catalog"

// Grade is the outcome of checking a multiple-choice answer.
type Grade int

const (
	GradeUngraded Grade = iota
	GradeCorrect
	GradeIncorrect
)

// GradeAnswer checks a chosen option. Questions without a single correct
// option are never marked incorrect.
func GradeAnswer(q catalog.Question, choice int) Grade {
	idx, ok := q.Correct()
	if !ok {
		return GradeUngraded
	}
	if choice == idx {
		return GradeCorrect
	}
	return GradeIncorrect
}

// Grade grades the recorded answer to a question of this session.
func (s *Session) Grade(q catalog.Question) Grade {
	a, ok := s.answers[q.ID]
	if !ok || a.Choice < 0 {
		return GradeUngraded
	}
	return GradeAnswer(q, a.Choice)
}

// Score counts the graded multiple-choice answers of the session and how
// many of them were correct. Ungraded questions are left out of both.
func (s *Session) Score() (correct, graded int) {
	if s.outcome != nil {
		return s.outcome.correct, s.outcome.graded
	}
	for _, q := range s.situation.Questions {
		switch s.Grade(q) {
		case GradeCorrect:
			correct++
			graded++
		case GradeIncorrect:
			graded++
		}
	}
	return correct, graded
}
