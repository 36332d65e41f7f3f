package components

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// ContentWidth returns the inner width used for cards and editors.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded border in the given accent color.
func Card(content string, width int, accent color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(width).
		Padding(0, 1).
		Render(content)
}
