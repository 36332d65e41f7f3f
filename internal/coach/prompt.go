package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/rolwijzer/internal/catalog"
)

const systemPrompt = `Je bent een ervaren praktijkbegeleider op een pabo. Een student reflecteert op een situatie uit de beroepspraktijk aan de hand van een professionele rol. Geef korte, concrete en bemoedigende feedback in het Nederlands.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Rol: %s\n", in.Role.Name))
	b.WriteString(fmt.Sprintf("Rolbeschrijving: %s\n", in.Role.Description))
	b.WriteString(fmt.Sprintf("Situatie: %s\n", in.Situation.Title))
	b.WriteString(fmt.Sprintf("Scenario: %s\n", in.Situation.Scenario))

	if in.Question != nil {
		b.WriteString(fmt.Sprintf("\nVraag (%s): %s\n", in.Question.Type, in.Question.Text))
	}

	b.WriteString("\nReflectie van de student:\n")
	b.WriteString(strings.TrimSpace(in.Text))
	b.WriteString("\n")

	b.WriteString("\nInstructies:\n")
	b.WriteString("1. Vat de reflectie samen in 1-2 zinnen.\n")
	b.WriteString("2. Noem 1-3 sterke punten die echt in de tekst staan.\n")
	b.WriteString("3. Geef 1-3 suggesties om de reflectie te verdiepen vanuit deze rol.\n")
	b.WriteString("4. Controleer de STARR-opbouw:\n")
	for _, p := range catalog.STARRParts {
		b.WriteString(fmt.Sprintf("   - %s (%s): %s\n", p.Key, p.Label, p.Prompt))
	}
	b.WriteString("   Zet de sleutels van ontbrekende of te dunne onderdelen in missing_starr.\n")

	return b.String()
}
