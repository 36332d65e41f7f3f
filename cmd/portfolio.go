package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/rolwijzer/internal/store"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Inspect the exported portfolio",
}

var portfolioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exported examples, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		role, _ := cmd.Flags().GetString("role")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := s.CompletionRepo().ListCompletions(cmd.Context(), store.QueryOpts{Limit: limit, RoleID: role})
		if err != nil {
			return fmt.Errorf("query portfolio: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No examples exported yet.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-14s  %-20s  %s\n", "Seq", "Completed", "Role", "Situation", "Title")
		fmt.Println(strings.Repeat("─", 90))
		for _, r := range recs {
			fmt.Printf("%-5d  %-16s  %-14s  %-20s  %s\n",
				r.Sequence,
				r.CompletedAt.Local().Format("2006-01-02 15:04"),
				r.RoleID,
				truncate(r.SituationID, 20),
				r.Title,
			)
		}
		return nil
	},
}

var portfolioShowCmd = &cobra.Command{
	Use:   "show <seq>",
	Short: "Show one exported example with its reflection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sequence %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.CompletionRepo().GetCompletion(cmd.Context(), seq)
		if err != nil {
			return fmt.Errorf("get example: %w", err)
		}
		if r == nil {
			return fmt.Errorf("example %d not found", seq)
		}

		sep := strings.Repeat("─", 60)
		fmt.Printf("Seq:        %d\n", r.Sequence)
		fmt.Printf("Completed:  %s\n", r.CompletedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Role:       %s\n", r.RoleID)
		fmt.Printf("Situation:  %s (%s)\n", r.Title, r.SituationID)
		fmt.Printf("Example ID: %s\n", r.ExampleID)
		fmt.Println()
		fmt.Println(sep)
		fmt.Println("REFLECTION")
		fmt.Println(sep)
		fmt.Println(r.Reflection)
		return nil
	},
}

var portfolioExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the exported portfolio as YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		role, _ := cmd.Flags().GetString("role")

		if format != "yaml" && format != "json" {
			return fmt.Errorf("invalid format %q: must be yaml or json", format)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := s.CompletionRepo().ListCompletions(cmd.Context(), store.QueryOpts{RoleID: role})
		if err != nil {
			return fmt.Errorf("query portfolio: %w", err)
		}
		if recs == nil {
			recs = []store.CompletionRecord{}
		}

		var w io.Writer = os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		return writePortfolio(w, format, recs)
	},
}

func writePortfolio(w io.Writer, format string, recs []store.CompletionRecord) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(recs)
}

func init() {
	portfolioListCmd.Flags().IntP("limit", "n", 20, "Number of examples to show")
	portfolioListCmd.Flags().StringP("role", "r", "", "Filter by role ID")
	portfolioExportCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
	portfolioExportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	portfolioExportCmd.Flags().StringP("role", "r", "", "Filter by role ID")

	portfolioCmd.AddCommand(portfolioListCmd)
	portfolioCmd.AddCommand(portfolioShowCmd)
	portfolioCmd.AddCommand(portfolioExportCmd)
}
