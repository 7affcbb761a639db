package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogniq/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the embedded assessment catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the embedded catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-12s  %-32s  %9s  %s\n", "Kind", "Title", "Questions", "Policy")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, kind := range []catalog.Kind{catalog.KindTechnical, catalog.KindBehavioral} {
			c, err := catalog.Load(kind)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-12s  %-32s  %9d  %s\n", c.Kind, truncate(c.Title, 32), c.Set.Len(), c.Policy)
		}
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:       "show <technical|behavioral>",
	Short:     "Show the questions of a catalog",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(catalog.KindTechnical), string(catalog.KindBehavioral)},
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")

		c, err := catalog.Load(catalog.Kind(args[0]))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s, %s)\n\n", c.Title, c.Kind, c.Policy)
		for i, q := range c.Set.All() {
			fmt.Fprintf(out, "%2d. [%s] %s\n", i+1, q.ID, q.Prompt)
			for _, o := range q.Options {
				marker := " "
				switch {
				case answers && q.Weighted:
					marker = fmt.Sprintf("%g", o.Weight)
				case answers && o.ID == q.CorrectAnswer:
					marker = "✓"
				}
				fmt.Fprintf(out, "      %s %s) %s\n", marker, o.ID, o.Text)
			}
		}
		fmt.Fprintf(out, "\n%d questions\n", c.Set.Len())
		return nil
	},
}

func init() {
	catalogShowCmd.Flags().Bool("answers", false, "Mark correct answers and option weights")

	catalogCmd.AddCommand(catalogListCmd, catalogShowCmd)
}
