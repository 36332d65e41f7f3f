package router

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/rolwijzer/internal/screen"
)

// traced records its lifecycle into a shared log.
type traced struct {
	name string
	log  *[]string
}

func (s *traced) Init() tea.Cmd {
	*s.log = append(*s.log, "init "+s.name)
	return nil
}

func (s *traced) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	*s.log = append(*s.log, "update "+s.name)
	return s, nil
}

func (s *traced) View(int, int) string { return s.name }
func (s *traced) Title() string        { return s.name }
func (s *traced) Close()               { *s.log = append(*s.log, "close "+s.name) }

type bare struct{ name string }

func (b bare) Init() tea.Cmd                            { return nil }
func (b bare) Update(tea.Msg) (screen.Screen, tea.Cmd) { return b, nil }
func (b bare) View(int, int) string                     { return b.name }
func (b bare) Title() string                            { return b.name }

func TestRouter(t *testing.T) {
	tests := []struct {
		name   string
		steps  func(r *Router, mk func(string) screen.Screen)
		depth  int
		active string
		log    string
	}{
		{
			name:   "push",
			steps:  func(r *Router, mk func(string) screen.Screen) { r.Update(PushScreenMsg{Screen: mk("b")}) },
			depth:  2,
			active: "b",
			log:    "init b",
		},
		{
			name: "pop",
			steps: func(r *Router, mk func(string) screen.Screen) {
				r.Update(PushScreenMsg{Screen: mk("b")})
				r.Update(PopScreenMsg{})
			},
			depth:  1,
			active: "a",
			log:    "init b, close b",
		},
		{
			name:   "pop keeps root",
			steps:  func(r *Router, mk func(string) screen.Screen) { r.Update(PopScreenMsg{}) },
			depth:  1,
			active: "a",
		},
		{
			name: "replace keeps depth",
			steps: func(r *Router, mk func(string) screen.Screen) {
				r.Update(PushScreenMsg{Screen: mk("b")})
				r.Update(ReplaceScreenMsg{Screen: mk("c")})
			},
			depth:  2,
			active: "c",
			log:    "init b, close b, init c",
		},
		{
			name:   "other messages reach the top",
			steps:  func(r *Router, mk func(string) screen.Screen) { r.Update(tea.KeyPressMsg{Code: 'x'}) },
			depth:  1,
			active: "a",
			log:    "update a",
		},
		{
			name: "close all, top first",
			steps: func(r *Router, mk func(string) screen.Screen) {
				r.Push(mk("b"))
				r.Close()
			},
			depth:  2,
			active: "b",
			log:    "init b, close b, close a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			mk := func(n string) screen.Screen { return &traced{name: n, log: &log} }
			r := New(mk("a"))
			tt.steps(r, mk)

			if r.Depth() != tt.depth {
				t.Errorf("Depth() = %d, want %d", r.Depth(), tt.depth)
			}
			if got := r.View(80, 24); got != tt.active {
				t.Errorf("active = %q, want %q", got, tt.active)
			}
			if got := strings.Join(log, ", "); got != tt.log {
				t.Errorf("log = %q, want %q", got, tt.log)
			}
		})
	}
}

func TestRouter_ScreensWithoutClose(t *testing.T) {
	r := New(bare{"a"})
	r.Push(bare{"b"})
	r.Replace(bare{"c"})
	r.Pop()
	r.Close()
	if r.Active().Title() != "a" {
		t.Errorf("Active() = %q, want a", r.Active().Title())
	}
}
