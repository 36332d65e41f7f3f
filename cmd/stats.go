package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/rolwijzer/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress per role from the exported portfolio",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		counts, err := s.CompletionRepo().CountByRole(cmd.Context())
		if err != nil {
			return fmt.Errorf("count completions: %w", err)
		}
		byRole := make(map[string]int, len(counts))
		for _, c := range counts {
			byRole[c.RoleID] = c.Count
		}

		fmt.Printf("%-4s  %-14s  %10s  %8s  %s\n", "", "Role", "Completed", "Progress", "")
		fmt.Println(strings.Repeat("─", 50))

		var done int
		for _, r := range cat.AllRoles() {
			n := byRole[r.ID]
			total := len(r.Situations)
			frac := progress.Fraction(n, total)
			done += n
			fmt.Printf("%-4s  %-14s  %10s  %7d%%  %s\n",
				r.Icon, r.Name, fmt.Sprintf("%d/%d", n, total), progress.Percent(frac), progress.Indicator(frac))
		}

		overall := progress.Fraction(done, cat.TotalSituations())
		fmt.Println(strings.Repeat("─", 50))
		fmt.Printf("%-4s  %-14s  %10s  %7d%%  %s\n",
			"", "TOTAL", fmt.Sprintf("%d/%d", done, cat.TotalSituations()),
			progress.Percent(overall), progress.Indicator(overall))

		var unlocked []string
		for _, a := range progress.AchievementsFor(overall) {
			if a.Unlocked {
				unlocked = append(unlocked, a.Icon+" "+a.Title)
			}
		}
		if len(unlocked) > 0 {
			fmt.Printf("\nAchievements: %s\n", strings.Join(unlocked, "  "))
		}
		return nil
	},
}
