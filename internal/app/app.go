package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/coach"
	"github.com/abhisek/rolwijzer/internal/ledger"
	"github.com/abhisek/rolwijzer/internal/logging"
	"github.com/abhisek/rolwijzer/internal/progress"
	"github.com/abhisek/rolwijzer/internal/router"
	"github.com/abhisek/rolwijzer/internal/screen"
	"github.com/abhisek/rolwijzer/internal/screens"
	"github.com/abhisek/rolwijzer/internal/screens/home"
	"github.com/abhisek/rolwijzer/internal/selfupdate"
	"github.com/abhisek/rolwijzer/internal/ui/layout"
)

const updateCheckTimeout = 5 * time.Second

// Options holds the dependencies for the TUI. Only Catalog and Ledger are
// required.
type Options struct {
	Catalog      *catalog.Catalog
	Ledger       *ledger.Ledger
	Coach        *coach.Service
	Logger       *logging.Logger
	RevealDelay  time.Duration
	CoachTimeout time.Duration

	// Version is the running build. Updates are only checked when both
	// Version and UpdateChecker are set.
	Version       string
	UpdateChecker UpdateChecker
}

// UpdateChecker looks up the latest release.
type UpdateChecker interface {
	Check(ctx context.Context, in *selfupdate.CheckInput) (*selfupdate.CheckResult, error)
}

type updateCheckedMsg struct {
	result *selfupdate.CheckResult
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	env     *screens.Env
	home    *home.HomeScreen
	checker UpdateChecker
	version string
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	env := screens.NewEnv(opts.Catalog, opts.Ledger, opts.Coach, opts.Logger)
	if opts.RevealDelay > 0 {
		env.RevealDelay = opts.RevealDelay
	}
	if opts.CoachTimeout > 0 {
		env.CoachTimeout = opts.CoachTimeout
	}

	homeScreen := home.New(env)
	return AppModel{
		router:  router.New(homeScreen),
		env:     env,
		home:    homeScreen,
		checker: opts.UpdateChecker,
		version: opts.Version,
	}
}

func (m AppModel) Init() tea.Cmd {
	if m.checker == nil || m.version == "" || m.version == "(devel)" {
		return nil
	}
	checker, version, log := m.checker, m.version, m.env.Log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), updateCheckTimeout)
		defer cancel()
		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			log.Debug("update check failed", "error", err)
			return nil
		}
		return updateCheckedMsg{result: res}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Screens with editors size them from the window.
		return m, m.router.Update(msg)

	case updateCheckedMsg:
		if msg.result != nil && msg.result.UpdateAvailable {
			m.home.SetLatestVersion(msg.result.LatestVersion)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.Close()
			m.env.Log.Info("quit", "completed", m.env.Ledger.Len())
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status builds the header summary from the ledger.
func (m AppModel) status() layout.Status {
	overall := m.env.Progress.Overall()
	return layout.Status{
		Indicator: progress.Indicator(overall),
		Percent:   progress.Percent(overall),
		Completed: m.env.Ledger.Len(),
	}
}

// hints are the footer entries: the active screen's own, or a default
// for the stack depth. Ctrl+C is listed once the user has left home.
func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	nested := m.router.Depth() > 1

	var hints []layout.KeyHint
	switch hp, ok := active.(screen.KeyHintProvider); {
	case ok:
		hints = hp.KeyHints()
	case nested:
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	default:
		hints = []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}}
	}
	if nested {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	return hints
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	switch {
	case m.width == 0 || m.height == 0:
		return v
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title string
	if active != nil {
		title = active.Title()
	}
	header := layout.RenderHeader(title, m.status(), m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	room := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	v.SetContent(layout.RenderFrame(header, m.router.View(m.width, room), footer, m.width, m.height))
	return v
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if _, err := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
