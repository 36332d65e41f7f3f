package catalog

import (
	"fmt"
	"strings"
)

// validateRoles performs structural checks that the schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateRoles(roles []Role) error {
	var errs []string

	roleIDs := make(map[string]bool, len(roles))
	for _, r := range roles {
		if r.ID == "" {
			errs = append(errs, "role with empty ID")
		}
		if roleIDs[r.ID] {
			errs = append(errs, fmt.Sprintf("duplicate role ID: %q", r.ID))
		}
		roleIDs[r.ID] = true

		sitIDs := make(map[string]bool, len(r.Situations))
		for _, s := range r.Situations {
			if sitIDs[s.ID] {
				errs = append(errs, fmt.Sprintf("role %q: duplicate situation ID: %q", r.ID, s.ID))
			}
			sitIDs[s.ID] = true
			errs = append(errs, validateQuestions(r.ID, s)...)
		}

		stepIDs := make(map[string]bool, len(r.FlowchartSteps))
		for _, st := range r.FlowchartSteps {
			if stepIDs[st.ID] {
				errs = append(errs, fmt.Sprintf("role %q: duplicate flowchart step ID: %q", r.ID, st.ID))
			}
			stepIDs[st.ID] = true
		}

		conceptIDs := make(map[string]bool, len(r.Concepts))
		for _, c := range r.Concepts {
			if conceptIDs[c.ID] {
				errs = append(errs, fmt.Sprintf("role %q: duplicate concept ID: %q", r.ID, c.ID))
			}
			conceptIDs[c.ID] = true
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateQuestions(roleID string, s Situation) []string {
	var errs []string
	qIDs := make(map[string]bool, len(s.Questions))
	for _, q := range s.Questions {
		prefix := fmt.Sprintf("role %q situation %q question %q", roleID, s.ID, q.ID)
		if qIDs[q.ID] {
			errs = append(errs, prefix+": duplicate question ID")
		}
		qIDs[q.ID] = true

		switch q.Type {
		case QuestionMultipleChoice:
			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("%s: needs at least 2 options, got %d", prefix, len(q.Options)))
			}
			if q.CorrectAnswer != nil {
				idx := *q.CorrectAnswer
				if idx != NoCorrectAnswer && (idx < 0 || idx >= len(q.Options)) {
					errs = append(errs, fmt.Sprintf("%s: correct answer %d out of range [0, %d)", prefix, idx, len(q.Options)))
				}
			}
		case QuestionReflection, QuestionSTARR:
			if len(q.Options) > 0 {
				errs = append(errs, prefix+": free-text question must not have options")
			}
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown question type %q", prefix, q.Type))
		}
	}
	return errs
}
