package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/ledger"
	"github.com/abhisek/rolwijzer/internal/progress"
	"github.com/abhisek/rolwijzer/internal/router"
	"github.com/abhisek/rolwijzer/internal/screen"
	"github.com/abhisek/rolwijzer/internal/ui/components"
	"github.com/abhisek/rolwijzer/internal/ui/layout"
	"github.com/abhisek/rolwijzer/internal/ui/theme"
)

// Snapshot is the progress of one role at a point in time.
type Snapshot struct {
	Role    float64
	Steps   int
	Overall float64
}

// Take captures the current progress of roleID.
func Take(a *progress.Aggregator, roleID string) Snapshot {
	return Snapshot{
		Role:    a.Role(roleID),
		Steps:   a.CompletedSteps(roleID),
		Overall: a.Overall(),
	}
}

// Result describes a finished situation.
type Result struct {
	Role      catalog.Role
	Situation catalog.Situation
	Example   ledger.CompletedExample
	// Correct and Graded count multiple-choice answers with a right option.
	Correct int
	Graded  int
	Before  Snapshot
	After   Snapshot
}

// NewAchievements returns the badges unlocked by this completion.
func (r Result) NewAchievements() []progress.Achievement {
	before := progress.AchievementsFor(r.Before.Overall)
	var out []progress.Achievement
	for i, a := range progress.AchievementsFor(r.After.Overall) {
		if a.Unlocked && !before[i].Unlocked {
			out = append(out, a)
		}
	}
	return out
}

// NewSteps returns the development path steps reached by this completion.
func (r Result) NewSteps() []catalog.FlowchartStep {
	if r.After.Steps <= r.Before.Steps || r.Before.Steps >= len(r.Role.FlowchartSteps) {
		return nil
	}
	return r.Role.FlowchartSteps[r.Before.Steps:min(r.After.Steps, len(r.Role.FlowchartSteps))]
}

// SummaryScreen displays the outcome of a completed situation.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Situatie afgerond"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	cw := components.ContentWidth(width)
	accent := theme.RoleAccent(r.Role.Color)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render("🎉 Situatie afgerond!")))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(accent).
		Render(fmt.Sprintf("%s %s · %s", r.Role.Icon, r.Role.Name, r.Situation.Title))))
	b.WriteString("\n\n")

	if r.Graded > 0 {
		b.WriteString(center(theme.Body.Render(
			fmt.Sprintf("Meerkeuzevragen: %d van %d goed", r.Correct, r.Graded))))
		b.WriteString("\n\n")
	}

	b.WriteString(center(components.Card(
		theme.Subtitle.Render("Jouw reflectie")+"\n"+layout.Wrap(r.Example.Reflection, cw-4),
		cw, accent)))
	b.WriteString("\n\n")

	bar := components.NewProgressBar(r.Role.Name, r.After.Role, false, cw-30).
		WithColor(accent).
		WithSuffix(fmt.Sprintf("%d%% → %d%% %s",
			progress.Percent(r.Before.Role), progress.Percent(r.After.Role), progress.Indicator(r.After.Role)))
	b.WriteString(center(bar.View()))
	b.WriteString("\n")

	for _, st := range r.NewSteps() {
		b.WriteString("\n")
		b.WriteString(center(theme.Correct.Render("✓ Nieuwe stap bereikt: " + st.Title)))
	}
	for _, a := range r.NewAchievements() {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("%s Prestatie ontgrendeld: %s", a.Icon, a.Title))))
	}

	return b.String()
}
