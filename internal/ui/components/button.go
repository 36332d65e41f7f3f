package components

import "github.com/abhisek/rolwijzer/internal/ui/theme"

// KeyButton renders a button labelled with the key that triggers it. The
// owning screen handles the key itself.
func KeyButton(label, key string, enabled bool) string {
	if key != "" {
		label += " (" + key + ")"
	}
	if !enabled {
		return theme.ButtonInactive.Render(label)
	}
	return theme.ButtonActive.Render("▸ " + label)
}
