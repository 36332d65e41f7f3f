package questionflow

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/situation"
	"github.com/abhisek/rolwijzer/internal/ui/components"
	"github.com/abhisek/rolwijzer/internal/ui/layout"
	"github.com/abhisek/rolwijzer/internal/ui/theme"
)

func (s *QuestionFlowScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	accent := theme.RoleAccent(s.role.Color)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(
		fmt.Sprintf("%s %s · %s", s.role.Icon, s.role.Name, s.sess.Situation().Title)))
	b.WriteString("\n\n")

	if s.confirmAbandon {
		b.WriteString(s.viewConfirm(cw))
		return centered(b.String(), width)
	}

	answered, total := s.sess.QuestionProgress()
	if total > 0 {
		frac := float64(answered) / float64(total)
		bar := components.NewProgressBar("", frac, false, cw-16).
			WithColor(accent).
			WithSuffix(fmt.Sprintf("%d/%d", answered, total))
		b.WriteString(bar.View())
		b.WriteString("\n\n")
	}

	switch s.sess.Phase() {
	case situation.PhaseAsking:
		b.WriteString(s.viewAsking(cw))
	case situation.PhaseFeedback:
		b.WriteString(s.viewFeedback(cw))
	case situation.PhaseReflectionPending:
		b.WriteString(s.viewReflection(cw))
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.notice))
		b.WriteString("\n")
	}

	return centered(b.String(), width)
}

func centered(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		PaddingLeft(max((width-components.ContentWidth(width))/2, 0)).
		Render(content)
}

func (s *QuestionFlowScreen) viewConfirm(cw int) string {
	body := theme.Title.Render("Situatie afbreken?") + "\n\n" +
		theme.Body.Render("Je antwoorden en reflecties gaan verloren.") + "\n\n" +
		theme.Incorrect.Render("[Y] Ja, afbreken") + "   " +
		theme.Selected.Render("[N] Nee, doorgaan")
	return components.Card(body, cw, theme.Error)
}

func (s *QuestionFlowScreen) viewScenario(cw int) string {
	sit := s.sess.Situation()
	if sit.Scenario == "" {
		return ""
	}
	return components.Card(layout.Wrap(sit.Scenario, cw-4), cw, theme.RoleAccent(s.role.Color)) + "\n\n"
}

func (s *QuestionFlowScreen) viewQuestion(q catalog.Question, cw int) string {
	idx := s.sess.Index()
	_, total := s.sess.QuestionProgress()
	label := theme.Subtitle.Render(fmt.Sprintf("Vraag %d van %d", idx+1, total))
	return label + "\n" + theme.Body.Bold(true).Render(layout.Wrap(q.Text, cw)) + "\n\n"
}

func (s *QuestionFlowScreen) viewAsking(cw int) string {
	q, ok := s.sess.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.viewScenario(cw))
	b.WriteString(s.viewQuestion(q, cw))

	if !q.IsFreeText() {
		b.WriteString(s.mc.View())
		return b.String()
	}

	if q.Type == catalog.QuestionSTARR {
		b.WriteString(s.viewSTARRPrompts())
		b.WriteString("\n")
	}
	b.WriteString(s.viewEditor("Opslaan"))
	b.WriteString(s.viewCoach(cw))
	return b.String()
}

// viewSTARRPrompts lists the STARR parts, highlighting those the coach
// reported as missing.
func (s *QuestionFlowScreen) viewSTARRPrompts() string {
	missing := make(map[string]bool)
	if s.feedback != nil {
		for _, p := range s.feedback.MissingSTARR {
			missing[p.Key] = true
		}
	}

	var b strings.Builder
	for _, p := range catalog.STARRParts {
		line := fmt.Sprintf("  %s  %-10s %s", p.Label[:1], p.Label, p.Prompt)
		if missing[p.Key] {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(line + "  ← ontbreekt"))
		} else {
			b.WriteString(theme.Dimmed.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *QuestionFlowScreen) viewEditor(action string) string {
	return s.editor.View() + "\n" + components.KeyButton(action, "ctrl+s", !s.editor.Blank()) + "\n"
}

func (s *QuestionFlowScreen) viewFeedback(cw int) string {
	q, ok := s.sess.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.viewQuestion(q, cw))
	b.WriteString(s.mc.View())
	b.WriteString("\n")

	switch s.sess.Grade(q) {
	case situation.GradeCorrect:
		b.WriteString(theme.Correct.Render("✓ Goed gekozen!"))
	case situation.GradeIncorrect:
		idx, _ := q.Correct()
		b.WriteString(theme.Incorrect.Render(
			fmt.Sprintf("✗ Niet helemaal. Het beste antwoord is %s.", components.Letter(idx))))
	default:
		b.WriteString(theme.Selected.Render("Er is geen fout antwoord: het gaat om jouw keuze."))
	}
	b.WriteString("\n\n")

	if q.Explanation != "" {
		b.WriteString(components.Card(layout.Wrap(q.Explanation, cw-4), cw, theme.Secondary))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Hint.Render("Druk op een toets om verder te gaan."))
	b.WriteString("\n")
	return b.String()
}

func (s *QuestionFlowScreen) viewReflection(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Correct.Render("Alle vragen beantwoord!"))
	b.WriteString("\n\n")

	if tips := s.sess.Situation().Tips; len(tips) > 0 {
		b.WriteString(theme.Title.Render("💡 Tips"))
		b.WriteString("\n")
		for _, tip := range tips {
			b.WriteString(theme.Body.Render(layout.Wrap("• "+tip, cw)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Body.Bold(true).Render("Wat neem je mee uit deze situatie?"))
	b.WriteString("\n\n")
	b.WriteString(s.viewEditor("Afronden"))
	b.WriteString(s.viewCoach(cw))
	return b.String()
}

func (s *QuestionFlowScreen) viewCoach(cw int) string {
	switch {
	case s.coachLoading:
		return "\n" + theme.Hint.Render("🤔 De coach leest mee...") + "\n"
	case s.coachErr != "":
		return "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.coachErr) + "\n"
	case s.feedback == nil:
		if s.env.Coach.Enabled() {
			return "\n" + theme.Hint.Render("Ctrl+G vraagt feedback van de coach.") + "\n"
		}
		return ""
	}

	fb := s.feedback
	var b strings.Builder
	b.WriteString(theme.Title.Render("🧑‍🏫 Coach"))
	b.WriteString("\n")
	b.WriteString(layout.Wrap(fb.Summary, cw-4))
	b.WriteString("\n")
	if len(fb.Strengths) > 0 {
		b.WriteString("\n" + theme.Correct.Render("Sterk:") + "\n")
		for _, st := range fb.Strengths {
			b.WriteString(layout.Wrap("• "+st, cw-4) + "\n")
		}
	}
	if len(fb.Suggestions) > 0 {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Probeer ook:") + "\n")
		for _, sg := range fb.Suggestions {
			b.WriteString(layout.Wrap("• "+sg, cw-4) + "\n")
		}
	}
	return "\n" + components.Card(strings.TrimRight(b.String(), "\n"), cw, theme.Primary) + "\n"
}
