package flashcards

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/flashcard"
	"github.com/abhisek/rolwijzer/internal/screen"
	"github.com/abhisek/rolwijzer/internal/ui/components"
	"github.com/abhisek/rolwijzer/internal/ui/layout"
	"github.com/abhisek/rolwijzer/internal/ui/theme"
)

// revealDoneMsg fires when a quiz answer has been visible long enough.
type revealDoneMsg struct {
	token flashcard.AdvanceToken
}

// FlashcardsScreen drills a role's concepts.
type FlashcardsScreen struct {
	role  catalog.Role
	quiz  *flashcard.Quiz
	delay time.Duration
	// lastCorrect is the answer being revealed.
	lastCorrect bool
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)
var _ screen.Closer = (*FlashcardsScreen)(nil)

// New creates a FlashcardsScreen. A non-positive delay uses the default.
func New(role catalog.Role, delay time.Duration) *FlashcardsScreen {
	if delay <= 0 {
		delay = flashcard.DefaultRevealDelay
	}
	return &FlashcardsScreen{
		role:  role,
		quiz:  flashcard.New(role.Concepts),
		delay: delay,
	}
}

// Quiz exposes the underlying drill.
func (s *FlashcardsScreen) Quiz() *flashcard.Quiz { return s.quiz }

func (s *FlashcardsScreen) Init() tea.Cmd { return nil }

func (s *FlashcardsScreen) Title() string {
	return s.role.Name + " · Flashcards"
}

// Close stops pending reveals.
func (s *FlashcardsScreen) Close() {
	s.quiz.Close()
}

func (s *FlashcardsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Card"},
		{Key: "c", Description: "Category"},
		{Key: "m", Description: "Mode"},
	}
	if s.quiz.Mode() == flashcard.ModeQuiz {
		hints = append(hints, layout.KeyHint{Key: "y/n", Description: "Knew it / didn't"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Flip"})
	}
	return append(hints, layout.KeyHint{Key: "r", Description: "Reset"})
}

func (s *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case revealDoneMsg:
		s.quiz.Advance(msg.token)
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *FlashcardsScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "c":
		s.quiz.NextCategory()
	case "m":
		s.quiz.ToggleMode()
	case "space", " ":
		s.quiz.Flip()
	case "y", "n":
		if tok, ok := s.quiz.RecordAnswer(key == "y"); ok {
			s.lastCorrect = key == "y"
			return s, s.scheduleReveal(tok)
		}
	case "right", "l":
		s.quiz.Next()
	case "left", "h":
		s.quiz.Prev()
	case "r":
		s.quiz.Reset()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			s.quiz.Jump(int(key[0] - '1'))
		}
	}
	return s, nil
}

func (s *FlashcardsScreen) scheduleReveal(tok flashcard.AdvanceToken) tea.Cmd {
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return revealDoneMsg{token: tok}
	})
}

func (s *FlashcardsScreen) View(width, height int) string {
	var b strings.Builder
	accent := theme.RoleAccent(s.role.Color)
	cw := components.ContentWidth(width)

	b.WriteString(s.renderCategories())
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(s.quiz.Mode().String()))
	if s.quiz.Mode() == flashcard.ModeQuiz {
		sc := s.quiz.Score()
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("   Score: %d/%d", sc.Correct, sc.Total)))
	}
	b.WriteString("\n\n")

	c, ok := s.quiz.Current()
	if !ok {
		b.WriteString(theme.Hint.Render("Geen begrippen in deze categorie."))
		return b.String()
	}

	b.WriteString(theme.Dimmed.Render(fmt.Sprintf("Kaart %d van %d", s.quiz.Index()+1, s.quiz.Len())))
	b.WriteString("\n")
	b.WriteString(components.Card(s.renderCard(c, cw), cw, accent))
	b.WriteString("\n")

	if s.quiz.Complete() {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(
			fmt.Sprintf("🎉 Quiz voltooid! Je score: %d%%", s.quiz.Percent())))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Druk op r om opnieuw te beginnen."))
	}

	return b.String()
}

func (s *FlashcardsScreen) renderCategories() string {
	parts := make([]string, 0, len(s.quiz.Categories()))
	for _, cat := range s.quiz.Categories() {
		label := cat
		if cat == flashcard.AllCategories {
			label = "Alle"
		}
		if cat == s.quiz.Category() {
			parts = append(parts, theme.Selected.Render("["+label+"]"))
		} else {
			parts = append(parts, theme.Dimmed.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (s *FlashcardsScreen) renderCard(c catalog.Concept, width int) string {
	var b strings.Builder
	b.WriteString(theme.Dimmed.Render(c.Category))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(c.Term))
	b.WriteString("\n\n")

	reveal := s.quiz.Flipped() || s.quiz.ShowAnswer()
	if !reveal {
		if s.quiz.Mode() == flashcard.ModeQuiz {
			b.WriteString(theme.Hint.Render("Weet je wat dit betekent? y = ja, n = nee"))
		} else {
			b.WriteString(theme.Hint.Render("Druk op spatie om de kaart om te draaien."))
		}
		return b.String()
	}

	b.WriteString(layout.Wrap(c.Definition, width-4))
	if c.Example != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(layout.Wrap("Voorbeeld: "+c.Example, width-4)))
	}
	if s.quiz.ShowAnswer() {
		b.WriteString("\n\n")
		if s.lastCorrect {
			b.WriteString(theme.Correct.Render("✓ Goed gedaan!"))
		} else {
			b.WriteString(theme.Incorrect.Render("✗ Volgende keer beter."))
		}
	}
	return b.String()
}
