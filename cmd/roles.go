package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Browse the role catalogue",
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("%-14s  %-4s  %-14s  %10s  %6s  %8s\n",
			"ID", "", "Name", "Situations", "Steps", "Concepts")
		fmt.Println(strings.Repeat("─", 66))

		for _, r := range cat.AllRoles() {
			fmt.Printf("%-14s  %-4s  %-14s  %10d  %6d  %8d\n",
				r.ID, r.Icon, r.Name, len(r.Situations), len(r.FlowchartSteps), len(r.Concepts))
		}

		fmt.Printf("\n%d roles, %d situations\n", len(cat.RoleIDs()), cat.TotalSituations())
		return nil
	},
}

var rolesShowCmd = &cobra.Command{
	Use:   "show <role-id>",
	Short: "Show the situations, development path and concepts of a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		r, err := cat.Role(args[0])
		if err != nil {
			return err
		}

		sep := strings.Repeat("─", 60)

		fmt.Printf("%s %s\n\n", r.Icon, r.Name)
		if r.FullDescription != "" {
			fmt.Println(r.FullDescription)
		} else {
			fmt.Println(r.Description)
		}

		fmt.Println()
		fmt.Println("SITUATIONS")
		fmt.Println(sep)
		for _, s := range r.Situations {
			fmt.Printf("%-16s  %s (%d questions)\n", s.ID, s.Title, len(s.Questions))
		}

		fmt.Println()
		fmt.Println("DEVELOPMENT PATH")
		fmt.Println(sep)
		for i, st := range r.FlowchartSteps {
			fmt.Printf("%d. %s\n", i+1, st.Title)
		}

		fmt.Println()
		fmt.Println("CONCEPTS")
		fmt.Println(sep)
		for _, c := range r.Concepts {
			fmt.Printf("%-24s  %s\n", c.Term, c.Category)
		}
		return nil
	},
}

func init() {
	rolesCmd.AddCommand(rolesListCmd)
	rolesCmd.AddCommand(rolesShowCmd)
}
