package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edututor/edututor/internal/quizgen"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List the subjects quizzes can be generated for",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for i, c := range quizgen.Catalog {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, c.Name)
			for _, s := range c.Subjects {
				fmt.Fprintf(out, "  %s\n", s)
			}
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Difficulties:")
		for _, d := range quizgen.Difficulties {
			fmt.Fprintf(out, "  %-7s %s (%s)\n", d, d.Label(), d.Description())
		}
	},
}
