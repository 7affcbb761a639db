package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogniq/internal/screens/history"
	"github.com/abhisek/cogniq/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past assessment sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		pending, _ := cmd.Flags().GetBool("pending")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.EventRepo().QuerySessionSummaries(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %s\n", "Session", "Summary")
		fmt.Fprintln(out, strings.Repeat("─", 120))
		shown := 0
		for _, s := range sessions {
			if pending && s.Failed == 0 {
				continue
			}
			status := ""
			if s.Failed > 0 {
				status = fmt.Sprintf("  [%d to resubmit]", s.Failed)
			}
			fmt.Fprintf(out, "%-36s  %s%s\n", s.SessionID, history.SummaryLine(s), status)
			shown++
		}
		if pending && shown == 0 {
			fmt.Fprintln(out, "Nothing to resubmit.")
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	historyCmd.Flags().Bool("pending", false, "Only sessions with failed submissions")
}
