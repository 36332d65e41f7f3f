package components

import (
	"strings"
	"unicode"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rolwijzer/internal/ui/theme"
)

const optionLetters = "ABCDEFGH"

// Letter labels option i, or "?" past the last letter.
func Letter(i int) string {
	if i < 0 || i >= len(optionLetters) {
		return "?"
	}
	return optionLetters[i : i+1]
}

var choiceKeys = struct {
	Up, Down, Submit key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Submit: key.NewBinding(key.WithKeys("enter")),
}

// MultiChoice asks one question with lettered options. A letter answers at
// once; the arrows move the cursor and enter answers with it. After the
// answer the component ignores input.
type MultiChoice struct {
	Options []string
	// CorrectIndex is -1 for reflective questions without a right answer.
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{Options: options, CorrectIndex: correctIndex, ChosenIndex: -1}
}

func (m MultiChoice) submit(i int) MultiChoice {
	m.Selected, m.ChosenIndex, m.Submitted = i, i, true
	return m
}

func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if m.Submitted || !ok || len(m.Options) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, choiceKeys.Up):
		m.Selected = max(m.Selected-1, 0)
	case key.Matches(kmsg, choiceKeys.Down):
		m.Selected = min(m.Selected+1, len(m.Options)-1)
	case key.Matches(kmsg, choiceKeys.Submit):
		m = m.submit(m.Selected)
	default:
		if r := []rune(kmsg.String()); len(r) == 1 {
			i := strings.IndexRune(optionLetters, unicode.ToUpper(r[0]))
			if i >= 0 && i < len(m.Options) {
				m = m.submit(i)
			}
		}
	}
	return m, nil
}

func (m MultiChoice) style(i int) lipgloss.Style {
	if !m.Submitted {
		if i == m.Selected {
			return theme.Selected
		}
		return theme.Unselected
	}
	switch {
	case i == m.CorrectIndex:
		return theme.Correct
	case i == m.ChosenIndex && m.CorrectIndex >= 0:
		return theme.Incorrect
	case i == m.ChosenIndex:
		return theme.Selected
	}
	return theme.Dimmed
}

func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		cursor := "  "
		if !m.Submitted && i == m.Selected {
			cursor = "▸ "
		}
		b.WriteString(m.style(i).Render(cursor + Letter(i) + ")  " + opt))
		b.WriteByte('\n')
	}
	return b.String()
}

// IsCorrect reports a submitted, graded, right answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.CorrectIndex >= 0 && m.ChosenIndex == m.CorrectIndex
}
