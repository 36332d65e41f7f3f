package flowchart

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/progress"
	"github.com/abhisek/rolwijzer/internal/screen"
	"github.com/abhisek/rolwijzer/internal/screens"
	"github.com/abhisek/rolwijzer/internal/ui/layout"
	"github.com/abhisek/rolwijzer/internal/ui/theme"
)

// FlowchartScreen shows a role's development steps. Step state is derived
// from the ledger on every render.
type FlowchartScreen struct {
	env      *screens.Env
	role     catalog.Role
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*FlowchartScreen)(nil)
var _ screen.KeyHintProvider = (*FlowchartScreen)(nil)

// New creates a FlowchartScreen for role.
func New(env *screens.Env, role catalog.Role) *FlowchartScreen {
	return &FlowchartScreen{env: env, role: role, expanded: map[int]bool{}}
}

func (s *FlowchartScreen) Init() tea.Cmd { return nil }

func (s *FlowchartScreen) Title() string {
	return s.role.Name + " · Stroomdiagram"
}

func (s *FlowchartScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Step"},
		{Key: "Enter", Description: "Details"},
	}
}

// Selected returns the highlighted step index.
func (s *FlowchartScreen) Selected() int { return s.selected }

// Expanded reports whether step i shows its requirements.
func (s *FlowchartScreen) Expanded(i int) bool { return s.expanded[i] }

func (s *FlowchartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	n := len(s.role.FlowchartSteps)
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < n-1 {
			s.selected++
		}
	case "enter", "space", " ":
		if n > 0 {
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *FlowchartScreen) View(width, height int) string {
	steps := s.env.Progress.Steps(s.role.ID)
	if len(steps) == 0 {
		return theme.Hint.Render("Deze rol heeft geen stroomdiagram.")
	}

	var b strings.Builder
	accent := theme.RoleAccent(s.role.Color)
	count := s.env.Progress.CompletedCount(s.role.ID)
	frac := s.env.Progress.StepFraction(s.role.ID)

	b.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(
		fmt.Sprintf("%s Ontwikkelpad: %d/%d stappen", progress.FlowchartIndicator(frac),
			s.env.Progress.CompletedSteps(s.role.ID), len(steps))))
	b.WriteString("\n\n")

	for i, st := range steps {
		b.WriteString(renderStep(st, i == s.selected))
		if s.expanded[i] {
			b.WriteString(renderDetails(st, count, width))
		}
		if i < len(steps)-1 {
			b.WriteString(theme.Dimmed.Render("   │") + "\n")
		}
	}

	return b.String()
}

func renderStep(st progress.StepStatus, selected bool) string {
	icon := "○"
	style := theme.Dimmed
	switch {
	case st.Completed:
		icon = "✓"
		style = theme.Correct
	case st.Next:
		icon = "▶"
		style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	line := fmt.Sprintf("%s%s Stap %d: %s", cursor, icon, st.Index+1, st.Step.Title)
	label := theme.Hint.Render("  " + st.Label())
	return style.Render(line) + label + "\n"
}

func renderDetails(st progress.StepStatus, count, width int) string {
	var b strings.Builder
	indent := "      "
	if st.Step.Description != "" {
		b.WriteString(indent + layout.Wrap(st.Step.Description, width-len(indent)) + "\n")
	}
	if len(st.Step.Requirements) > 0 {
		b.WriteString(indent + theme.Subtitle.Render("Vereisten:") + "\n")
		for _, r := range st.Step.Requirements {
			b.WriteString(indent + "• " + r + "\n")
		}
	}
	if !st.Completed {
		missing := st.Index + 1 - count
		b.WriteString(indent + theme.Hint.Render(fmt.Sprintf(
			"💡 Voltooi nog %d situatie(s) om deze stap te bereiken.", missing)) + "\n")
	}
	return b.String()
}
