package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/rolwijzer/internal/ui/theme"
)

const minBarCells = 4

// ProgressBar is a one-line bar: optional label, the bar itself, then either
// Suffix or the rounded percentage.
type ProgressBar struct {
	Label       string
	Percent     float64
	Suffix      string
	ShowPercent bool
	Width       int
	Color       color.Color
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width, Color: theme.Secondary}
}

func (p ProgressBar) WithColor(c color.Color) ProgressBar {
	p.Color = c
	return p
}

// WithSuffix shows s, e.g. "1/2", in place of the percentage.
func (p ProgressBar) WithSuffix(s string) ProgressBar {
	p.Suffix = s
	return p
}

func (p ProgressBar) tail() string {
	switch {
	case p.Suffix != "":
		return "  " + p.Suffix
	case p.ShowPercent:
		return fmt.Sprintf("  %d%%", int(p.Percent*100+0.5))
	}
	return ""
}

func (p ProgressBar) View() string {
	var head string
	if p.Label != "" {
		head = theme.Body.Render(p.Label) + "  "
	}
	tail := p.tail()

	cells := max(p.Width-lipgloss.Width(head)-lipgloss.Width(tail), minBarCells)
	filled := min(max(int(float64(cells)*p.Percent), 0), cells)

	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}
	bar := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", cells-filled))

	return head + bar + theme.Dimmed.Render(tail)
}
