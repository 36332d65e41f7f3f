package catalog

// QuestionType identifies the answer shape of a Question.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionReflection     QuestionType = "reflection"
	QuestionSTARR          QuestionType = "starr"
)

// NoCorrectAnswer marks a multiple-choice question that has no single right
// option (self-knowledge questions). Such questions are never graded.
const NoCorrectAnswer = -1

// Role is a professional competency persona.
type Role struct {
	ID              string          `yaml:"id"`
	Name            string          `yaml:"name"`
	Icon            string          `yaml:"icon"`
	Color           string          `yaml:"color"` // hex accent, e.g. "#EF4444"
	Description     string          `yaml:"description"`
	FullDescription string          `yaml:"full_description"`
	Situations      []Situation     `yaml:"situations"`
	FlowchartSteps  []FlowchartStep `yaml:"flowchart_steps"`
	Concepts        []Concept       `yaml:"concepts"`
}

// Situation returns the situation with the given ID.
func (r *Role) Situation(id string) (*Situation, bool) {
	for i := range r.Situations {
		if r.Situations[i].ID == id {
			return &r.Situations[i], true
		}
	}
	return nil, false
}

// Situation is a scenario with an ordered list of questions.
type Situation struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Scenario    string     `yaml:"scenario"`
	Questions   []Question `yaml:"questions"`
	Tips        []string   `yaml:"tips"`
}

// Question is a single prompt inside a situation.
type Question struct {
	ID      string       `yaml:"id"`
	Text    string       `yaml:"text"`
	Type    QuestionType `yaml:"type"`
	Options []string     `yaml:"options,omitempty"`

	// CorrectAnswer is nil when the question declares no answer at all.
	// NoCorrectAnswer means "no single right answer".
	CorrectAnswer *int   `yaml:"correct_answer,omitempty"`
	Explanation   string `yaml:"explanation,omitempty"`
}

// IsFreeText reports whether the question expects a written answer.
func (q Question) IsFreeText() bool {
	return q.Type == QuestionReflection || q.Type == QuestionSTARR
}

// HasFeedback reports whether answering shows an explanation before moving on.
func (q Question) HasFeedback() bool {
	return q.Type == QuestionMultipleChoice && q.Explanation != ""
}

// Correct returns the index of the correct option. ok is false for
// questions that carry no correctness semantics.
func (q Question) Correct() (index int, ok bool) {
	if q.Type != QuestionMultipleChoice || q.CorrectAnswer == nil {
		return 0, false
	}
	idx := *q.CorrectAnswer
	if idx == NoCorrectAnswer || idx < 0 || idx >= len(q.Options) {
		return 0, false
	}
	return idx, true
}

// FlowchartStep is one stage of a role's development path. Whether it is
// completed is always derived from the ledger.
type FlowchartStep struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Requirements []string `yaml:"requirements"`
}

// Concept is a flashcard unit.
type Concept struct {
	ID         string `yaml:"id"`
	Term       string `yaml:"term"`
	Definition string `yaml:"definition"`
	Example    string `yaml:"example"`
	Category   string `yaml:"category"`
}

// STARRPart is one prompt of the STARR reflection structure.
type STARRPart struct {
	Key    string
	Label  string
	Prompt string
}

// STARRParts lists the five STARR prompts in order.
var STARRParts = []STARRPart{
	{Key: "situation", Label: "Situatie", Prompt: "Wat was de context?"},
	{Key: "task", Label: "Taak", Prompt: "Wat moest er gebeuren?"},
	{Key: "action", Label: "Actie", Prompt: "Wat heb je gedaan?"},
	{Key: "result", Label: "Resultaat", Prompt: "Wat was het resultaat?"},
	{Key: "reflection", Label: "Reflectie", Prompt: "Wat heb je geleerd?"},
}
