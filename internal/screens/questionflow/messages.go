package questionflow

import "github.com/abhisek/rolwijzer/internal/coach"

// coachResultMsg carries a finished coach review. gen ties the result to
// the question it was requested for; results for an earlier question are
// dropped.
type coachResultMsg struct {
	gen      int
	feedback *coach.Feedback
	err      error
}
