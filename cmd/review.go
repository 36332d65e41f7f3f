package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/coach"
	"github.com/abhisek/rolwijzer/internal/logging"
)

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Ask the coach for feedback on a written reflection (no database)",
	Long: `Send a reflection to the coach and print its feedback.

The text is read from file, or from stdin when no file is given. This is a
stateless tool: nothing is recorded in the portfolio or the LLM event log.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().String("role", "", "Role ID (required)")
	reviewCmd.Flags().String("situation", "", "Situation ID (required)")
	reviewCmd.Flags().String("question", "", "Question ID the text answers")
	_ = reviewCmd.MarkFlagRequired("role")
	_ = reviewCmd.MarkFlagRequired("situation")
}

func runReview(cmd *cobra.Command, args []string) error {
	roleID, _ := cmd.Flags().GetString("role")
	situationID, _ := cmd.Flags().GetString("situation")
	questionID, _ := cmd.Flags().GetString("question")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	role, err := cat.Role(roleID)
	if err != nil {
		return err
	}
	sit, ok := role.Situation(situationID)
	if !ok {
		return fmt.Errorf("situation %q not found in role %q", situationID, roleID)
	}

	in := coach.Input{Role: *role, Situation: *sit}
	if questionID != "" {
		for i := range sit.Questions {
			if sit.Questions[i].ID == questionID {
				in.Question = &sit.Questions[i]
			}
		}
		if in.Question == nil {
			return fmt.Errorf("question %q not found in situation %q", questionID, situationID)
		}
	}

	text, err := readReviewText(args)
	if err != nil {
		return err
	}
	in.Text = text

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Coach.Timeout())
	defer cancel()

	svc := buildCoach(ctx, cfg, nil, logging.Nop())
	if !svc.Enabled() {
		return fmt.Errorf("coach is not configured: set coach.provider and an API key, or export GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY")
	}

	fb, err := svc.Review(ctx, in)
	if err != nil {
		return fmt.Errorf("review: %w", err)
	}
	printFeedback(fb)
	return nil
}

func readReviewText(args []string) (string, error) {
	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return string(data), nil
}

func printFeedback(fb *coach.Feedback) {
	sep := strings.Repeat("─", 60)

	fmt.Println(fb.Summary)
	if len(fb.Strengths) > 0 {
		fmt.Println()
		fmt.Println("STRENGTHS")
		fmt.Println(sep)
		for _, s := range fb.Strengths {
			fmt.Println("  •", s)
		}
	}
	if len(fb.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("SUGGESTIONS")
		fmt.Println(sep)
		for _, s := range fb.Suggestions {
			fmt.Println("  •", s)
		}
	}
	if len(fb.MissingSTARR) > 0 {
		labels := make([]string, len(fb.MissingSTARR))
		for i, p := range fb.MissingSTARR {
			labels[i] = p.Label
		}
		fmt.Printf("\nMissing STARR parts: %s\n", strings.Join(labels, ", "))
	}
}
