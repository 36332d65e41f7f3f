package questionflow

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/coach"
	"github.com/abhisek/rolwijzer/internal/router"
	"github.com/abhisek/rolwijzer/internal/screen"
	"github.com/abhisek/rolwijzer/internal/screens"
	"github.com/abhisek/rolwijzer/internal/screens/summary"
	"github.com/abhisek/rolwijzer/internal/situation"
	"github.com/abhisek/rolwijzer/internal/ui/components"
	"github.com/abhisek/rolwijzer/internal/ui/layout"
)

const (
	defaultEditorWidth  = 60
	defaultEditorHeight = 6
)

// QuestionFlowScreen walks the user through one situation and records the
// completed example in the ledger.
type QuestionFlowScreen struct {
	env  *screens.Env
	role catalog.Role
	sess *situation.Session

	mc     components.MultiChoice
	editor components.TextArea

	confirmAbandon bool
	notice         string

	coachGen     int
	coachLoading bool
	feedback     *coach.Feedback
	coachErr     string
}

var _ screen.Screen = (*QuestionFlowScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionFlowScreen)(nil)
var _ screen.BackHandler = (*QuestionFlowScreen)(nil)

// New starts a session for situation s of role.
func New(env *screens.Env, role catalog.Role, s catalog.Situation) *QuestionFlowScreen {
	qf := &QuestionFlowScreen{
		env:    env,
		role:   role,
		sess:   situation.Start(role.ID, s),
		editor: components.NewTextArea("", defaultEditorWidth, defaultEditorHeight),
	}
	qf.prepare()
	return qf
}

// Session exposes the underlying state machine.
func (s *QuestionFlowScreen) Session() *situation.Session { return s.sess }

func (s *QuestionFlowScreen) Init() tea.Cmd {
	return s.editor.Focus()
}

func (s *QuestionFlowScreen) Title() string {
	return s.sess.Situation().Title
}

// HandlesBack keeps esc inside the screen so it can ask for confirmation.
func (s *QuestionFlowScreen) HandlesBack() bool { return true }

func (s *QuestionFlowScreen) KeyHints() []layout.KeyHint {
	if s.confirmAbandon {
		return []layout.KeyHint{{Key: "y", Description: "Abandon"}, {Key: "n", Description: "Continue"}}
	}

	var hints []layout.KeyHint
	switch s.sess.Phase() {
	case situation.PhaseFeedback:
		hints = append(hints, layout.KeyHint{Key: "Any key", Description: "Continue"})
	case situation.PhaseAsking:
		if q, _ := s.sess.Current(); !q.IsFreeText() {
			hints = append(hints,
				layout.KeyHint{Key: "A-D", Description: "Answer"},
				layout.KeyHint{Key: "↑↓ Enter", Description: "Select"})
			break
		}
		fallthrough
	case situation.PhaseReflectionPending:
		hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Submit"})
		if s.env.Coach.Enabled() {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+G", Description: "Coach"})
		}
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Abandon"})
}

// prepare resets the input widgets for the current phase and drops any
// coach result that belongs to the previous question.
func (s *QuestionFlowScreen) prepare() tea.Cmd {
	s.notice = ""
	s.coachGen++
	s.coachLoading = false
	s.feedback = nil
	s.coachErr = ""

	switch s.sess.Phase() {
	case situation.PhaseAsking:
		q, _ := s.sess.Current()
		if !q.IsFreeText() {
			correct := catalog.NoCorrectAnswer
			if idx, ok := q.Correct(); ok {
				correct = idx
			}
			s.mc = components.NewMultiChoice(q.Options, correct)
			return nil
		}
		s.editor.Reset()
		s.editor.Model.Placeholder = "Typ je antwoord..."
		return s.editor.Focus()
	case situation.PhaseReflectionPending:
		s.editor.Reset()
		s.editor.Model.Placeholder = "Wat neem je mee uit deze situatie?"
		return s.editor.Focus()
	}
	return nil
}

func (s *QuestionFlowScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.editor.SetSize(components.ContentWidth(msg.Width)-2, defaultEditorHeight)
		return s, nil
	case coachResultMsg:
		s.handleCoachResult(msg)
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.editorActive() {
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuestionFlowScreen) editorActive() bool {
	switch s.sess.Phase() {
	case situation.PhaseAsking:
		q, _ := s.sess.Current()
		return q.IsFreeText()
	case situation.PhaseReflectionPending:
		return true
	}
	return false
}

func (s *QuestionFlowScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmAbandon {
		switch key {
		case "y", "Y":
			s.sess.Abandon()
			s.coachGen++
			s.env.Log.Info("situation abandoned", "role", s.role.ID, "situation", s.sess.Situation().ID)
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmAbandon = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmAbandon = true
		return s, nil
	}

	switch s.sess.Phase() {
	case situation.PhaseFeedback:
		if err := s.sess.Advance(); err != nil {
			return s, nil
		}
		return s, s.prepare()

	case situation.PhaseAsking:
		q, _ := s.sess.Current()
		if q.IsFreeText() {
			return s.handleEditorKey(msg, &q)
		}
		return s.handleChoiceKey(msg, q)

	case situation.PhaseReflectionPending:
		return s.handleEditorKey(msg, nil)
	}
	return s, nil
}

func (s *QuestionFlowScreen) handleChoiceKey(msg tea.KeyMsg, q catalog.Question) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if !s.mc.Submitted {
		return s, cmd
	}

	if err := s.sess.AnswerChoice(q.ID, s.mc.ChosenIndex); err != nil {
		// Rejected answers are disabled actions; start the choice over.
		s.mc = components.NewMultiChoice(q.Options, s.mc.CorrectIndex)
		return s, nil
	}
	if s.sess.Phase() == situation.PhaseFeedback {
		return s, nil
	}
	return s, s.prepare()
}

// handleEditorKey serves both free-text questions (q set) and the closing
// reflection (q nil).
func (s *QuestionFlowScreen) handleEditorKey(msg tea.KeyMsg, q *catalog.Question) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if q != nil {
			if err := s.sess.AnswerText(q.ID, s.editor.Value()); err != nil {
				if errors.Is(err, situation.ErrEmptyAnswer) {
					s.notice = "Schrijf eerst een antwoord."
				}
				return s, nil
			}
			return s, s.prepare()
		}
		return s.submitReflection()

	case "ctrl+g":
		return s, s.requestCoach(q)
	}

	s.notice = ""
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

func (s *QuestionFlowScreen) submitReflection() (screen.Screen, tea.Cmd) {
	ex, ok := s.sess.SubmitReflection(s.editor.Value())
	if !ok {
		s.notice = "Schrijf eerst je reflectie."
		return s, nil
	}

	before := summary.Take(s.env.Progress, s.role.ID)
	rec := s.env.Ledger.Record(*ex)
	s.coachGen++
	s.env.Log.Info("situation completed",
		"role", rec.RoleID, "situation", rec.SituationID, "example_id", rec.ID)

	correct, graded := s.sess.Score()
	result := summary.Result{
		Role:      s.role,
		Situation: s.sess.Situation(),
		Example:   rec,
		Correct:   correct,
		Graded:    graded,
		Before:    before,
		After:     summary.Take(s.env.Progress, s.role.ID),
	}
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: summary.New(result)} }
}

func (s *QuestionFlowScreen) requestCoach(q *catalog.Question) tea.Cmd {
	if !s.env.Coach.Enabled() {
		s.coachErr = "De coach is niet geconfigureerd."
		return nil
	}
	if s.coachLoading {
		return nil
	}
	if s.editor.Blank() {
		s.notice = "Schrijf eerst iets om feedback op te krijgen."
		return nil
	}

	s.coachLoading = true
	s.feedback = nil
	s.coachErr = ""

	svc := s.env.Coach
	timeout := s.env.CoachTimeout
	gen := s.coachGen
	in := coach.Input{
		Role:      s.role,
		Situation: s.sess.Situation(),
		Question:  q,
		Text:      s.editor.Value(),
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		fb, err := svc.Review(ctx, in)
		return coachResultMsg{gen: gen, feedback: fb, err: err}
	}
}

func (s *QuestionFlowScreen) handleCoachResult(msg coachResultMsg) {
	if msg.gen != s.coachGen {
		return
	}
	s.coachLoading = false
	if msg.err != nil {
		s.env.Log.Warn("coach review failed", "role", s.role.ID, "situation", s.sess.Situation().ID, "error", msg.err)
		s.coachErr = "De coach is nu niet bereikbaar. Probeer het later opnieuw."
		return
	}
	s.feedback = msg.feedback
}
