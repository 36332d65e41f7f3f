package role

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/progress"
	"github.com/abhisek/rolwijzer/internal/router"
	"github.com/abhisek/rolwijzer/internal/screen"
	"github.com/abhisek/rolwijzer/internal/screens"
	"github.com/abhisek/rolwijzer/internal/screens/flashcards"
	"github.com/abhisek/rolwijzer/internal/screens/flowchart"
	"github.com/abhisek/rolwijzer/internal/screens/questionflow"
	"github.com/abhisek/rolwijzer/internal/ui/components"
	"github.com/abhisek/rolwijzer/internal/ui/layout"
	"github.com/abhisek/rolwijzer/internal/ui/theme"
)

// Tab is a section of the role screen.
type Tab int

const (
	TabSituations Tab = iota
	TabFlowchart
	TabFlashcards
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabSituations:
		return "Situaties"
	case TabFlowchart:
		return "Stroomdiagram"
	case TabFlashcards:
		return "Flashcards"
	default:
		return ""
	}
}

// RoleScreen shows one role with its situations, development path and
// flashcards.
type RoleScreen struct {
	env      *screens.Env
	role     catalog.Role
	tab      Tab
	selected int

	flowchart  *flowchart.FlowchartScreen
	flashcards *flashcards.FlashcardsScreen
}

var _ screen.Screen = (*RoleScreen)(nil)
var _ screen.KeyHintProvider = (*RoleScreen)(nil)
var _ screen.Closer = (*RoleScreen)(nil)

// New creates the screen for role.
func New(env *screens.Env, role catalog.Role) *RoleScreen {
	return &RoleScreen{
		env:        env,
		role:       role,
		flowchart:  flowchart.New(env, role),
		flashcards: flashcards.New(role, env.RevealDelay),
	}
}

func (s *RoleScreen) Init() tea.Cmd { return nil }

func (s *RoleScreen) Title() string {
	return s.role.Icon + " " + s.role.Name
}

// Tab returns the active tab.
func (s *RoleScreen) Tab() Tab { return s.tab }

// Selected returns the highlighted situation.
func (s *RoleScreen) Selected() int { return s.selected }

// Close stops the flashcard drill.
func (s *RoleScreen) Close() {
	s.flashcards.Close()
}

func (s *RoleScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Section"}}
	switch s.tab {
	case TabSituations:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Situation"},
			layout.KeyHint{Key: "Enter", Description: "Start"})
	case TabFlowchart:
		hints = append(hints, s.flowchart.KeyHints()...)
	case TabFlashcards:
		hints = append(hints, s.flashcards.KeyHints()...)
	}
	return append(hints,
		layout.KeyHint{Key: "[ ]", Description: "Role"},
		layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *RoleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// Reveal ticks keep flowing to the drill while another tab is shown.
		_, cmd := s.flashcards.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "tab":
		s.tab = (s.tab + 1) % tabCount
		return s, nil
	case "shift+tab":
		s.tab = (s.tab + tabCount - 1) % tabCount
		return s, nil
	case "[":
		return s, s.switchRole(-1)
	case "]":
		return s, s.switchRole(1)
	}

	switch s.tab {
	case TabFlowchart:
		_, cmd := s.flowchart.Update(msg)
		return s, cmd
	case TabFlashcards:
		_, cmd := s.flashcards.Update(msg)
		return s, cmd
	}
	return s.updateSituations(kmsg)
}

func (s *RoleScreen) updateSituations(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	n := len(s.role.Situations)
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < n-1 {
			s.selected++
		}
	case "enter":
		if n == 0 {
			return s, nil
		}
		// The drill's reveal tick would reach the question flow instead.
		s.flashcards.Quiz().Settle()
		qf := questionflow.New(s.env, s.role, s.role.Situations[s.selected])
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: qf} }
	}
	return s, nil
}

// switchRole replaces this screen with the neighbouring role in catalogue
// order, wrapping at both ends.
func (s *RoleScreen) switchRole(delta int) tea.Cmd {
	ids := s.env.Catalog.RoleIDs()
	if len(ids) < 2 {
		return nil
	}
	cur := 0
	for i, id := range ids {
		if id == s.role.ID {
			cur = i
			break
		}
	}
	next, err := s.env.Catalog.Role(ids[(cur+delta+len(ids))%len(ids)])
	if err != nil {
		return nil
	}
	ns := New(s.env, *next)
	ns.tab = s.tab
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: ns} }
}

func (s *RoleScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.viewHeader(cw))
	b.WriteString("\n")
	b.WriteString(s.viewTabs())
	b.WriteString("\n\n")

	switch s.tab {
	case TabSituations:
		b.WriteString(s.viewSituations(cw))
	case TabFlowchart:
		b.WriteString(s.flowchart.View(cw, height))
	case TabFlashcards:
		b.WriteString(s.flashcards.View(cw, height))
	}

	return lipgloss.NewStyle().
		Width(width).
		PaddingLeft(max((width-cw)/2, 0)).
		Render(b.String())
}

func (s *RoleScreen) viewHeader(cw int) string {
	accent := theme.RoleAccent(s.role.Color)
	p := s.env.Progress

	frac := p.Role(s.role.ID)
	title := lipgloss.NewStyle().Foreground(accent).Bold(true).
		Render(fmt.Sprintf("%s %s", s.role.Icon, s.role.Name))
	ind := progress.Indicator(frac)

	desc := s.role.FullDescription
	if desc == "" {
		desc = s.role.Description
	}

	done, distinct := p.CompletedCount(s.role.ID), p.DistinctCompleted(s.role.ID)
	bar := components.NewProgressBar("", frac, false, cw-24).
		WithColor(accent).
		WithSuffix(fmt.Sprintf("%d/%d situaties %s", done, s.env.Catalog.SituationCount(s.role.ID), ind))

	body := title + "\n\n" + theme.Body.Render(layout.Wrap(desc, cw-4)) + "\n\n" + bar.View()
	// Replays count toward progress; show how many situations are really new.
	if done > distinct {
		body += "\n" + theme.Hint.Render(fmt.Sprintf("%d verschillende situaties, %d herhalingen", distinct, done-distinct))
	}
	return components.Card(body, cw, accent)
}

func (s *RoleScreen) viewTabs() string {
	parts := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		if t == s.tab {
			parts = append(parts, theme.TabActive.
				Foreground(theme.RoleAccent(s.role.Color)).Render(t.String()))
		} else {
			parts = append(parts, theme.TabInactive.Render(t.String()))
		}
	}
	return strings.Join(parts, " ")
}

func (s *RoleScreen) viewSituations(cw int) string {
	if len(s.role.Situations) == 0 {
		return theme.Hint.Render("Deze rol heeft nog geen situaties.")
	}

	var b strings.Builder
	for i, sit := range s.role.Situations {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		mark := "○"
		if s.env.Progress.IsSituationCompleted(s.role.ID, sit.ID) {
			mark = theme.Correct.Render("✓")
		}
		b.WriteString(style.Render(prefix) + mark + " " + style.Render(sit.Title))
		b.WriteString("\n")
		if sit.Description != "" {
			b.WriteString(theme.Dimmed.Render(layout.Wrap("    "+sit.Description, cw)))
			b.WriteString("\n")
		}
	}

	entries := s.env.Ledger.ForRole(s.role.ID)
	if len(entries) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(theme.Title.Render(fmt.Sprintf("Verzamelde voorbeelden (%d)", len(entries))))
	b.WriteString("\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			theme.Dimmed.Render(e.CompletedAt.Format("02-01-2006")), e.Title))
	}
	return b.String()
}
