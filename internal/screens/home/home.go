package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/router"
	"github.com/abhisek/rolwijzer/internal/screen"
	"github.com/abhisek/rolwijzer/internal/screens"
	"github.com/abhisek/rolwijzer/internal/screens/portfolio"
	"github.com/abhisek/rolwijzer/internal/screens/role"
	"github.com/abhisek/rolwijzer/internal/ui/components"
	"github.com/abhisek/rolwijzer/internal/ui/layout"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	env       *screens.Env
	menu      components.Menu
	roleIDs   []string
	latestVer string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen listing every role of the catalogue.
func New(env *screens.Env) *HomeScreen {
	roles := env.Catalog.AllRoles()

	items := make([]components.MenuItem, 0, len(roles)+2)
	ids := make([]string, 0, len(roles))
	for _, r := range roles {
		items = append(items, components.MenuItem{
			Label:  r.Icon + " " + r.Name,
			Action: pushRole(env, r),
		})
		ids = append(ids, r.ID)
	}

	items = append(items,
		components.MenuItem{Label: "📚 Portfolio", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: portfolio.New(env)}
			}
		}},
		components.MenuItem{Label: "Afsluiten", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	h := &HomeScreen{
		env:     env,
		menu:    components.NewMenu(items),
		roleIDs: ids,
	}
	h.refreshBadges()
	return h
}

func pushRole(env *screens.Env, r catalog.Role) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: role.New(env, r)}
		}
	}
}

// SetLatestVersion shows an update note for version v.
func (h *HomeScreen) SetLatestVersion(v string) {
	h.latestVer = v
}

// refreshBadges recomputes the per-role counters from the ledger.
func (h *HomeScreen) refreshBadges() {
	p := h.env.Progress
	for i, id := range h.roleIDs {
		done := p.CompletedCount(id)
		total := h.env.Catalog.SituationCount(id)
		badge := fmt.Sprintf("%d/%d", done, total)
		if p.Role(id) >= 1 {
			badge += " ✓"
		}
		h.menu.Items[i].Badge = badge
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-9", Description: "Jump"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to estimate
	// the terminal height.
	termHeight := height + 8
	compact := termHeight < 30 || width < 90

	cw := components.ContentWidth(width)
	h.refreshBadges()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderTracker(h.env, cw, compact))
	sections = append(sections, h.menu.View())
	if h.latestVer != "" {
		sections = append(sections, renderUpdateNote(h.latestVer, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
