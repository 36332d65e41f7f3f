package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the exported portfolio",
	Long: `Delete every exported example from the database. With --llm the recorded
coach requests are removed as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		withLLM, _ := cmd.Flags().GetBool("llm")

		if !yes {
			fmt.Print("This deletes your exported portfolio. Type 'yes' to continue: ")
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(strings.ToLower(answer)) != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		n, err := s.CompletionRepo().Clear(ctx)
		if err != nil {
			return fmt.Errorf("clear portfolio: %w", err)
		}
		fmt.Printf("Deleted %d examples.\n", n)

		if withLLM {
			m, err := s.EventRepo().ClearLLMEvents(ctx)
			if err != nil {
				return fmt.Errorf("clear LLM events: %w", err)
			}
			fmt.Printf("Deleted %d LLM events.\n", m)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	resetCmd.Flags().Bool("llm", false, "Also delete recorded LLM requests")
}
