package progress

import "github.com/abhisek/rolwijzer/internal/catalog"

// StepStatus is a flowchart step with its derived state.
type StepStatus struct {
	Step      catalog.FlowchartStep
	Index     int
	Completed bool
	Next      bool
}

// Label returns the Dutch status label shown in the flowchart.
func (s StepStatus) Label() string {
	switch {
	case s.Completed:
		return "Voltooid"
	case s.Next:
		return "Volgende stap"
	default:
		return "Nog niet bereikt"
	}
}

// StepCompleted reports whether step k is unlocked by count completions.
func StepCompleted(k, count int) bool {
	return count > k
}

// NextStep returns the index of the first incomplete step, or -1 when all
// steps are completed.
func NextStep(steps, count int) int {
	for k := 0; k < steps; k++ {
		if !StepCompleted(k, count) {
			return k
		}
	}
	return -1
}

// Steps returns the flowchart of a role with completion derived from the
// ledger. Unknown roles return nil.
func (a *Aggregator) Steps(roleID string) []StepStatus {
	r, err := a.Catalog.Role(roleID)
	if err != nil {
		return nil
	}
	count := a.CompletedCount(roleID)
	next := NextStep(len(r.FlowchartSteps), count)
	out := make([]StepStatus, len(r.FlowchartSteps))
	for i, st := range r.FlowchartSteps {
		out[i] = StepStatus{
			Step:      st,
			Index:     i,
			Completed: StepCompleted(i, count),
			Next:      i == next,
		}
	}
	return out
}

// NextStep returns the next step index for a role, or -1.
func (a *Aggregator) NextStep(roleID string) int {
	r, err := a.Catalog.Role(roleID)
	if err != nil {
		return -1
	}
	return NextStep(len(r.FlowchartSteps), a.CompletedCount(roleID))
}

// CompletedSteps returns how many flowchart steps of a role are completed.
func (a *Aggregator) CompletedSteps(roleID string) int {
	n := 0
	for _, s := range a.Steps(roleID) {
		if s.Completed {
			n++
		}
	}
	return n
}

// StepFraction returns completed steps divided by total steps.
func (a *Aggregator) StepFraction(roleID string) float64 {
	r, err := a.Catalog.Role(roleID)
	if err != nil {
		return 0
	}
	return Fraction(a.CompletedSteps(roleID), len(r.FlowchartSteps))
}

// FlowchartIndicator returns the emoji shown next to flowchart progress.
func FlowchartIndicator(f float64) string {
	switch {
	case f >= 1:
		return "🏆"
	case f >= 0.75:
		return "🌟"
	default:
		return "📈"
	}
}
