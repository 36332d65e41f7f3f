package progress

import (
	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/ledger"
)

// Aggregator derives progress views from the catalogue and the ledger.
// It holds no state of its own.
type Aggregator struct {
	Catalog *catalog.Catalog
	Ledger  *ledger.Ledger
}

// New returns an Aggregator over the given catalogue and ledger.
func New(c *catalog.Catalog, l *ledger.Ledger) *Aggregator {
	return &Aggregator{Catalog: c, Ledger: l}
}

// Overall returns total entries divided by total situations, clamped to [0,1].
func (a *Aggregator) Overall() float64 {
	return Fraction(a.TotalCompleted(), a.TotalSituations())
}

// Role returns a role's entries divided by its situation count, clamped to
// [0,1]. Unknown roles and roles without situations report 0.
func (a *Aggregator) Role(roleID string) float64 {
	return Fraction(a.CompletedCount(roleID), a.Catalog.SituationCount(roleID))
}

// IsSituationCompleted reports whether at least one entry exists for the
// situation.
func (a *Aggregator) IsSituationCompleted(roleID, situationID string) bool {
	return a.Ledger.Has(roleID, situationID)
}

// CompletedCount returns the raw number of entries for a role. Repeat
// completions of the same situation each count.
func (a *Aggregator) CompletedCount(roleID string) int {
	return a.Ledger.CountForRole(roleID)
}

// DistinctCompleted returns how many different situations of a role have
// at least one entry.
func (a *Aggregator) DistinctCompleted(roleID string) int {
	seen := make(map[string]bool)
	for _, e := range a.Ledger.ForRole(roleID) {
		seen[e.SituationID] = true
	}
	return len(seen)
}

// TotalCompleted returns the number of ledger entries.
func (a *Aggregator) TotalCompleted() int {
	return a.Ledger.Len()
}

// TotalSituations returns the number of situations in the catalogue.
func (a *Aggregator) TotalSituations() int {
	return a.Catalog.TotalSituations()
}

// Fraction returns n/d clamped to [0,1], or 0 when d is not positive.
func Fraction(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	f := float64(n) / float64(d)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// Indicator returns the emoji shown next to a progress fraction.
func Indicator(f float64) string {
	switch {
	case f >= 1:
		return "🏆"
	case f >= 0.75:
		return "🌟"
	case f >= 0.5:
		return "🚀"
	default:
		return "📈"
	}
}

// Percent converts a fraction to a whole percentage.
func Percent(f float64) int {
	return int(f*100 + 0.5)
}
