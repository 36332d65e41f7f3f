package situation

import (
	"errors"
	"strings"
	"time"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/ledger"
)

var (
	ErrWrongPhase       = errors.New("action not valid in current phase")
	ErrQuestionMismatch = errors.New("answer is not for the current question")
	ErrInvalidChoice    = errors.New("choice is not a valid option")
	ErrEmptyAnswer      = errors.New("answer text is empty")
)

// Phase is the current state of a situation session.
type Phase int

const (
	PhaseAsking            Phase = iota // Waiting for an answer to Index()
	PhaseFeedback                       // Showing the explanation for Index()
	PhaseReflectionPending              // All questions answered, final reflection due
	PhaseDone                           // Reflection submitted, entry produced
	PhaseAbandoned                      // Discarded without an entry
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAsking:
		return "asking"
	case PhaseFeedback:
		return "feedback"
	case PhaseReflectionPending:
		return "reflection-pending"
	case PhaseDone:
		return "done"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Answer is the recorded response to one question.
type Answer struct {
	Choice int // option index, -1 for free-text answers
	Text   string
}

// Session walks one situation's questions in order and produces at most
// one CompletedExample.
type Session struct {
	roleID    string
	situation catalog.Situation
	phase     Phase
	index     int
	answers   map[string]Answer
	emitted   bool
	now       func() time.Time

	// outcome is what survives the answers once the session is done.
	outcome *outcome
}

type outcome struct {
	correct, graded int
	reflections     []string
}

// Start begins a session at the first question. A situation without
// questions goes straight to the final reflection.
func Start(roleID string, s catalog.Situation) *Session {
	sess := &Session{
		roleID:    roleID,
		situation: s,
		phase:     PhaseAsking,
		answers:   make(map[string]Answer),
		now:       time.Now,
	}
	if len(s.Questions) == 0 {
		sess.phase = PhaseReflectionPending
	}
	return sess
}

func (s *Session) RoleID() string { return s.roleID }

func (s *Session) Situation() catalog.Situation { return s.situation }

func (s *Session) Phase() Phase { return s.phase }

// Index returns the position of the current question.
func (s *Session) Index() int { return s.index }

// Current returns the question being asked or explained. ok is false once
// all questions are behind the session.
func (s *Session) Current() (q catalog.Question, ok bool) {
	if s.phase != PhaseAsking && s.phase != PhaseFeedback {
		return catalog.Question{}, false
	}
	return s.situation.Questions[s.index], true
}

// AnswerFor returns the recorded answer for a question.
func (s *Session) AnswerFor(questionID string) (Answer, bool) {
	a, ok := s.answers[questionID]
	return a, ok
}

// QuestionProgress returns how many questions are behind the session and
// the total number of questions.
func (s *Session) QuestionProgress() (answered, total int) {
	total = len(s.situation.Questions)
	switch s.phase {
	case PhaseAsking:
		return s.index, total
	case PhaseFeedback:
		return s.index + 1, total
	default:
		return total, total
	}
}

// AnswerChoice records a multiple-choice answer for the current question.
func (s *Session) AnswerChoice(questionID string, choice int) error {
	q, err := s.expect(questionID)
	if err != nil {
		return err
	}
	if q.Type != catalog.QuestionMultipleChoice || choice < 0 || choice >= len(q.Options) {
		return ErrInvalidChoice
	}
	s.answers[q.ID] = Answer{Choice: choice}
	if q.HasFeedback() {
		s.phase = PhaseFeedback
		return nil
	}
	s.step()
	return nil
}

// AnswerText records a reflection or STARR answer for the current question.
func (s *Session) AnswerText(questionID, text string) error {
	q, err := s.expect(questionID)
	if err != nil {
		return err
	}
	if !q.IsFreeText() {
		return ErrInvalidChoice
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyAnswer
	}
	s.answers[q.ID] = Answer{Choice: -1, Text: text}
	s.step()
	return nil
}

func (s *Session) expect(questionID string) (catalog.Question, error) {
	if s.phase != PhaseAsking {
		return catalog.Question{}, ErrWrongPhase
	}
	q := s.situation.Questions[s.index]
	if q.ID != questionID {
		return catalog.Question{}, ErrQuestionMismatch
	}
	return q, nil
}

// Advance leaves the feedback view for the next question or the final
// reflection.
func (s *Session) Advance() error {
	if s.phase != PhaseFeedback {
		return ErrWrongPhase
	}
	s.step()
	return nil
}

func (s *Session) step() {
	if s.index+1 < len(s.situation.Questions) {
		s.index++
		s.phase = PhaseAsking
		return
	}
	s.phase = PhaseReflectionPending
}

// SubmitReflection finishes the session. It returns the completed example
// exactly once; empty text and repeat calls return (nil, false). The
// per-question answers are dropped; only the score and reflections remain.
func (s *Session) SubmitReflection(text string) (*ledger.CompletedExample, bool) {
	if s.phase != PhaseReflectionPending || s.emitted {
		return nil, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	s.phase = PhaseDone
	s.emitted = true
	correct, graded := s.Score()
	s.outcome = &outcome{correct: correct, graded: graded, reflections: s.Reflections()}
	s.answers = make(map[string]Answer)
	e := ledger.NewExample(s.roleID, s.situation.ID, s.situation.Title, text, s.now())
	return &e, true
}

// Abandon discards all answers. No entry is produced afterwards.
func (s *Session) Abandon() {
	s.answers = make(map[string]Answer)
	s.phase = PhaseAbandoned
}

// Reflections returns the free-text answers in question order.
func (s *Session) Reflections() []string {
	if s.outcome != nil {
		return s.outcome.reflections
	}
	var out []string
	for _, q := range s.situation.Questions {
		if a, ok := s.answers[q.ID]; ok && a.Text != "" {
			out = append(out, a.Text)
		}
	}
	return out
}
