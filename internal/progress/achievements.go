package progress

// Achievement is a badge earned at an overall progress threshold.
type Achievement struct {
	Threshold float64
	Icon      string
	Title     string
	Unlocked  bool
}

var achievementDefs = []Achievement{
	{Threshold: 0.2, Icon: "🌱", Title: "Eerste stappen"},
	{Threshold: 0.4, Icon: "🚀", Title: "Op weg"},
	{Threshold: 0.6, Icon: "⭐", Title: "Goed bezig"},
	{Threshold: 0.8, Icon: "🌟", Title: "Bijna klaar"},
	{Threshold: 1.0, Icon: "🏆", Title: "Voltooid!"},
}

// AchievementsFor returns every badge with Unlocked set for the given
// overall fraction.
func AchievementsFor(overall float64) []Achievement {
	out := make([]Achievement, len(achievementDefs))
	for i, def := range achievementDefs {
		def.Unlocked = overall >= def.Threshold
		out[i] = def
	}
	return out
}

// Achievements returns every badge for the current overall progress.
func (a *Aggregator) Achievements() []Achievement {
	return AchievementsFor(a.Overall())
}

// Unlocked returns only the earned badges.
func (a *Aggregator) Unlocked() []Achievement {
	var out []Achievement
	for _, ach := range a.Achievements() {
		if ach.Unlocked {
			out = append(out, ach)
		}
	}
	return out
}
