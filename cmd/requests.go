package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogniq/internal/store"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List recent platform API requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryAPIRequests(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No API requests recorded.")
			return nil
		}

		// Header.
		fmt.Fprintf(out, "%-5s  %-19s  %-18s  %-6s  %-28s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Method", "Path", "Status", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			if failed && e.Success {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗ " + truncate(e.ErrorMessage, 40)
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-18s  %-6s  %-28s  %-6d  %-7d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.Purpose, 18),
				e.Method,
				truncate(e.Path, 28),
				e.StatusCode,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

func init() {
	requestsCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	requestsCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. login, courses, submit-technical)")
	requestsCmd.Flags().Bool("failed", false, "Only failed requests")
}
