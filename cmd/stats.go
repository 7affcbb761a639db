package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogniq/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show assessment statistics from the local log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.EventRepo().QuerySessionSummaries(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		printStats(cmd.OutOrStdout(), aggregateStats(sessions))
		return nil
	},
}

// kindStats aggregates finished sessions of one kind.
type kindStats struct {
	Kind      string
	Sessions  int
	Abandoned int
	Questions int
	Correct   int
	Score     float64
	Pending   int
}

func (k kindStats) accuracy() float64 {
	if k.Questions == 0 {
		return 0
	}
	return float64(k.Correct) / float64(k.Questions)
}

func aggregateStats(sessions []store.SessionSummary) []kindStats {
	byKind := make(map[string]*kindStats)
	for _, s := range sessions {
		k, ok := byKind[s.Kind]
		if !ok {
			k = &kindStats{Kind: s.Kind}
			byKind[s.Kind] = k
		}
		k.Pending += s.Failed
		switch s.LastAction {
		case store.ActionComplete, store.ActionSubmit:
			k.Sessions++
			k.Questions += s.Questions
			k.Correct += s.Correct
			k.Score += s.ScoreTotal
		case store.ActionAbandon:
			k.Abandoned++
		}
	}

	out := make([]kindStats, 0, len(byKind))
	for _, k := range byKind {
		out = append(out, *k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

func printStats(out io.Writer, stats []kindStats) {
	if len(stats) == 0 {
		fmt.Fprintln(out, "No sessions yet. Run cogniq to take an assessment.")
		return
	}

	fmt.Fprintf(out, "%-12s  %8s  %9s  %9s  %8s  %7s\n",
		"Kind", "Finished", "Abandoned", "Questions", "Result", "Pending")
	fmt.Fprintln(out, strings.Repeat("─", 64))
	for _, k := range stats {
		result := fmt.Sprintf("%.0f%%", k.accuracy()*100)
		if k.Kind == "behavioral" {
			result = fmt.Sprintf("%.1f", k.Score)
		}
		fmt.Fprintf(out, "%-12s  %8d  %9d  %9d  %8s  %7d\n",
			k.Kind, k.Sessions, k.Abandoned, k.Questions, result, k.Pending)
	}
}
