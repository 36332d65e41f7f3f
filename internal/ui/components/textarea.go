package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/rolwijzer/internal/ui/theme"
)

// TextArea wraps bubbles/textarea for reflections.
type TextArea struct {
	Model textarea.Model
}

// NewTextArea creates a focused multi-line editor.
func NewTextArea(placeholder string, width, height int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.Focus()
	return TextArea{Model: ta}
}

// Focus returns the cursor blink command.
func (t *TextArea) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// SetSize resizes the editor.
func (t *TextArea) SetSize(width, height int) {
	t.Model.SetWidth(width)
	t.Model.SetHeight(height)
}

// Value returns the raw text.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// Blank reports whether the text is empty after trimming.
func (t TextArea) Blank() bool {
	return strings.TrimSpace(t.Model.Value()) == ""
}

// Reset clears the text.
func (t *TextArea) Reset() {
	t.Model.Reset()
}

// View renders the editor in a rounded border.
func (t TextArea) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(t.Model.View())
}
