package portfolio

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rolwijzer/internal/ledger"
	"github.com/abhisek/rolwijzer/internal/screen"
	"github.com/abhisek/rolwijzer/internal/screens"
	"github.com/abhisek/rolwijzer/internal/ui/components"
	"github.com/abhisek/rolwijzer/internal/ui/layout"
	"github.com/abhisek/rolwijzer/internal/ui/theme"
)

// PortfolioScreen lists the completed examples of this session, newest
// first.
type PortfolioScreen struct {
	env       *screens.Env
	selected  int
	expanded  map[string]bool
	filter    components.TextInput
	filtering bool
}

var _ screen.Screen = (*PortfolioScreen)(nil)
var _ screen.KeyHintProvider = (*PortfolioScreen)(nil)
var _ screen.BackHandler = (*PortfolioScreen)(nil)

// New creates a new PortfolioScreen.
func New(env *screens.Env) *PortfolioScreen {
	return &PortfolioScreen{
		env:      env,
		expanded: make(map[string]bool),
		filter:   components.NewTextInput("zoek op rol, titel of reflectie", 64),
	}
}

func (s *PortfolioScreen) Init() tea.Cmd { return nil }

func (s *PortfolioScreen) Title() string {
	return "Portfolio"
}

// HandlesBack reports whether esc should close the filter instead of the
// screen.
func (s *PortfolioScreen) HandlesBack() bool { return s.filtering }

func (s *PortfolioScreen) KeyHints() []layout.KeyHint {
	if s.filtering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Reflection"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "/", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

// Entries returns the visible entries, newest first.
func (s *PortfolioScreen) Entries() []ledger.CompletedExample {
	all := s.env.Ledger.Entries()
	out := make([]ledger.CompletedExample, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if s.matches(all[i]) {
			out = append(out, all[i])
		}
	}
	return out
}

func (s *PortfolioScreen) matches(e ledger.CompletedExample) bool {
	roleName := e.RoleID
	if r, err := s.env.Catalog.Role(e.RoleID); err == nil {
		roleName = r.Name
	}
	return s.filter.Matches(roleName + "\n" + e.Title + "\n" + e.Reflection)
}

func (s *PortfolioScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.filtering {
			var cmd tea.Cmd
			s.filter, cmd = s.filter.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.filtering {
		switch kmsg.String() {
		case "esc":
			s.filtering = false
			s.filter.Model.SetValue("")
			s.selected = 0
			return s, nil
		case "enter":
			s.filtering = false
			return s, nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.selected = 0
		return s, cmd
	}

	entries := s.Entries()
	switch kmsg.String() {
	case "/":
		s.filtering = true
		return s, s.filter.Model.Focus()
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(entries)-1 {
			s.selected++
		}
	case "enter":
		if s.selected < len(entries) {
			id := entries[s.selected].ID
			s.expanded[id] = !s.expanded[id]
		}
	}
	return s, nil
}

func (s *PortfolioScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	entries := s.Entries()

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("📚 Portfolio · %d voorbeelden", s.env.Ledger.Len())))
	b.WriteString("\n")

	if s.filtering || s.filter.Value() != "" {
		b.WriteString(s.filter.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case s.env.Ledger.Len() == 0:
		b.WriteString(theme.Hint.Render("Nog geen voorbeelden. Rond een situatie af om je portfolio te vullen."))
	case len(entries) == 0:
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Geen voorbeelden gevonden voor %q.", s.filter.Value())))
	default:
		for i, e := range entries {
			b.WriteString(s.renderEntry(e, i == s.selected, cw))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		PaddingLeft(max((width-cw)/2, 0)).
		Render(b.String())
}

func (s *PortfolioScreen) renderEntry(e ledger.CompletedExample, selected bool, cw int) string {
	icon, name, accent := "", e.RoleID, theme.RoleAccent("")
	if r, err := s.env.Catalog.Role(e.RoleID); err == nil {
		icon, name, accent = r.Icon, r.Name, theme.RoleAccent(r.Color)
	}

	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		prefix = "> "
		style = style.Foreground(theme.Primary).Bold(true)
	}

	line := style.Render(prefix+e.CompletedAt.Format("02-01-2006 15:04")+"  ") +
		lipgloss.NewStyle().Foreground(accent).Render(icon+" "+name) +
		style.Render("  "+e.Title)

	if !s.expanded[e.ID] {
		return line + "\n"
	}
	return line + "\n" + components.Card(layout.Wrap(e.Reflection, cw-4), cw, accent) + "\n"
}
