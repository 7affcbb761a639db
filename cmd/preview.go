package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogniq/internal/assessment"
	"github.com/abhisek/cogniq/internal/catalog"
)

var previewCmd = &cobra.Command{
	Use:   "preview <technical|behavioral>",
	Short: "Answer an embedded catalog on stdin (no login, nothing recorded)",
	Long: `Run an assessment line by line without the terminal UI.

This is a stateless tool: no database, no submissions, no events.
Useful for checking catalog content and retry behavior.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(catalog.KindTechnical), string(catalog.KindBehavioral)},
	RunE:      runPreview,
}

func init() {
	previewCmd.Flags().Int("count", 0, "Only ask the first N questions (0 = all)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")

	c, err := catalog.Load(catalog.Kind(args[0]))
	if err != nil {
		return err
	}
	set := c.Set
	if count > 0 && count < set.Len() {
		if set, err = assessment.NewQuestionSet(set.All()[:count]); err != nil {
			return err
		}
	}

	s, err := assessment.NewSession(set, c.Policy)
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%d questions, %s)\n\n", c.Title, set.Len(), c.Policy)

	if err := previewLoop(cmd, s, bufio.NewScanner(cmd.InOrStdin()), out); err != nil {
		return err
	}

	t := s.Tracker()
	if c.Kind == catalog.KindBehavioral {
		fmt.Fprintf(out, "── Summary: score %.1f over %d questions ──\n", t.ScoreWeightedTotal(), t.DistinctQuestions())
	} else {
		fmt.Fprintf(out, "── Summary: %d/%d correct in %d attempts, mean %.1fs ──\n",
			t.CorrectQuestions(), t.DistinctQuestions(), t.TotalAttempts(), t.MeanResponseSeconds())
	}
	return nil
}

func previewLoop(cmd *cobra.Command, s *assessment.Session, scanner *bufio.Scanner, out io.Writer) error {
	total := s.Questions().Len()
	for s.Phase() != assessment.PhaseCompleted {
		q, ok := s.CurrentQuestion()
		if !ok {
			return s.Err()
		}
		st := s.State()

		// Display question.
		fmt.Fprintf(out, "── Question %d/%d ──\n", st.QuestionIndex+1, total)
		if st.AttemptNumber > 1 {
			fmt.Fprintf(out, "(attempt %d)\n", st.AttemptNumber)
		}
		fmt.Fprintln(out, q.Prompt)
		for _, o := range q.Options {
			fmt.Fprintf(out, "  %s) %s\n", o.ID, o.Text)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return s.Abandon()
		}
		answer := strings.TrimSpace(scanner.Text())

		rec, err := s.SubmitAnswer(answer)
		if errors.Is(err, assessment.ErrInvalidAnswer) {
			fmt.Fprintf(out, "Pick one of the listed options.\n\n")
			continue
		}
		if err != nil {
			return err
		}

		switch {
		case rec.Weighted:
			fmt.Fprintln(out, "Recorded.")
		case rec.IsCorrect:
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		default:
			fmt.Fprintln(out, "\033[31m✗ Wrong.\033[0m")
		}
		if q.Explanation != "" && (rec.IsCorrect || !s.Policy().Retries()) {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)

		switch s.Phase() {
		case assessment.PhaseFeedback:
			if err := s.WaitFeedback(cmd.Context()); err != nil {
				return err
			}
		case assessment.PhaseAdvancing:
			if err := s.Advance(); err != nil {
				return err
			}
		}
	}
	return nil
}
