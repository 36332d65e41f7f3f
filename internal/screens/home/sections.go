package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/rolwijzer/internal/progress"
	"github.com/abhisek/rolwijzer/internal/screens"
	"github.com/abhisek/rolwijzer/internal/ui/components"
	"github.com/abhisek/rolwijzer/internal/ui/theme"
)

const (
	titleFull    = "R O L W I J Z E R"
	titleCompact = "Rolwijzer"
	tagline      = "Ontdek en ontwikkel je rollen als leraar in opleiding"
)

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	if compact {
		return center.Render(style.Render(titleCompact))
	}
	return center.Render(style.Render(titleFull)) + "\n" +
		center.Render(theme.Subtitle.Render(tagline))
}

// renderTracker renders overall and per-role progress.
func renderTracker(env *screens.Env, cw int, compact bool) string {
	p := env.Progress
	overall := p.Overall()

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("%s Jouw voortgang", progress.Indicator(overall))))
	b.WriteString("\n")

	barWidth := cw - 30
	b.WriteString(components.NewProgressBar("Totaal     ", overall, false, barWidth).
		WithSuffix(fmt.Sprintf("%d/%d  %d%%", p.TotalCompleted(), p.TotalSituations(), progress.Percent(overall))).
		View())
	b.WriteString("\n")

	if !compact {
		for _, r := range env.Catalog.AllRoles() {
			frac := p.Role(r.ID)
			label := fmt.Sprintf("%s %-8s", r.Icon, r.Name)
			b.WriteString(components.NewProgressBar(label, frac, false, barWidth).
				WithColor(theme.RoleAccent(r.Color)).
				WithSuffix(fmt.Sprintf("%d/%d  %s",
					p.CompletedCount(r.ID), env.Catalog.SituationCount(r.ID), progress.Indicator(frac))).
				View())
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(renderAchievements(p.Achievements()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))
}

// renderAchievements shows earned badges in color and locked ones dimmed.
func renderAchievements(achs []progress.Achievement) string {
	parts := make([]string, 0, len(achs))
	for _, a := range achs {
		if a.Unlocked {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
				Render(a.Icon+" "+a.Title))
		} else {
			parts = append(parts, theme.Dimmed.Render("🔒 "+a.Title))
		}
	}
	return strings.Join(parts, "  ")
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	text := fmt.Sprintf("Nieuwe versie %s beschikbaar (rolwijzer update)", latestVersion)
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderFrame centers content in the available area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
