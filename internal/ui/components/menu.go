package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/rolwijzer/internal/ui/theme"
)

// MenuItem is one line of a Menu. Badge is rendered dimmed after the label,
// e.g. "2/2 ✓".
type MenuItem struct {
	Label    string
	Badge    string
	Action   func() tea.Cmd
	Disabled bool
}

type menuKeys struct {
	Prev, Next, Choose key.Binding
}

var defaultMenuKeys = menuKeys{
	Prev:   key.NewBinding(key.WithKeys("up", "k")),
	Next:   key.NewBinding(key.WithKeys("down", "j")),
	Choose: key.NewBinding(key.WithKeys("enter")),
}

// Menu is a vertical list of actions. The cursor wraps around and skips
// disabled items; the digits 1-9 choose an item directly.
type Menu struct {
	Items    []MenuItem
	Selected int
	keys     menuKeys
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1, keys: defaultMenuKeys}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move steps the cursor by dir until it lands on an enabled item. It leaves
// the cursor alone when every item is disabled.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) choose(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	it := m.Items[i]
	if it.Disabled || it.Action == nil {
		return nil
	}
	return it.Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.keys.Prev):
		m.move(-1)
	case key.Matches(kmsg, m.keys.Next):
		m.move(1)
	case key.Matches(kmsg, m.keys.Choose):
		return m, m.choose(m.Selected)
	default:
		if d, err := strconv.Atoi(kmsg.String()); err == nil && d >= 1 && d <= 9 {
			if d-1 < len(m.Items) && !m.Items[d-1].Disabled {
				m.Selected = d - 1
				return m, m.choose(m.Selected)
			}
		}
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, it := range m.Items {
		cursor, style := "    ", theme.Unselected
		switch {
		case it.Disabled:
			style = theme.Dimmed
		case i == m.Selected:
			cursor, style = "  ▸ ", theme.Selected
		}
		b.WriteString(style.Render(cursor + it.Label))
		if it.Badge != "" {
			b.WriteString("  " + theme.Dimmed.Render(it.Badge))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
