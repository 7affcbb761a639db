package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/assessment"
	"github.com/abhisek/cogniq/internal/store"
)

var resubmitCmd = &cobra.Command{
	Use:   "resubmit <session-id>",
	Short: "Retry the failed submissions of a session",
	Long: `Re-dispatch every record of a session whose latest submission failed.

Records already accepted by the platform are never sent again.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		report, err := resubmit(cmd, sess, args[0])
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), report)
		if !report.OK() {
			return fmt.Errorf("%d of %d records still failing", len(report.Failed), report.Total())
		}
		return nil
	},
}

// resubmit dispatches a session's failed records through the coordinator.
// An empty report means nothing was pending.
func resubmit(cmd *cobra.Command, sess *session, sessionID string) (assessment.Report, error) {
	repo := sess.store.EventRepo()
	failed, err := repo.FailedSubmissions(cmd.Context(), sessionID)
	if err != nil {
		return assessment.Report{}, fmt.Errorf("load failed submissions: %w", err)
	}
	if len(failed) == 0 {
		return assessment.Report{}, nil
	}

	kind := failed[0].Kind
	submit, err := sess.client.SubmitterFor(kind)
	if err != nil {
		return assessment.Report{}, err
	}
	submit = api.WithSubmissionLog(submit, repo, sessionID, kind)

	records := make([]assessment.AttemptRecord, len(failed))
	for i, e := range failed {
		records[i] = api.RecordFromEvent(e)
	}
	slog.Debug("resubmitting", "session", sessionID, "kind", kind, "records", len(records))

	report := assessment.NewCoordinator(sess.cfg.SubmitConcurrency).Submit(cmd.Context(), records, submit)

	err = repo.AppendSessionEvent(cmd.Context(), store.SessionEventData{
		SessionID: sessionID,
		Kind:      kind,
		Action:    store.ActionSubmit,
		Questions: report.Total(),
		Detail:    fmt.Sprintf("resubmit: %d saved, %d failed", len(report.Succeeded), len(report.Failed)),
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to log session event: %v\n", err)
	}
	return report, nil
}

func printReport(out io.Writer, report assessment.Report) {
	if report.Total() == 0 {
		fmt.Fprintln(out, "Nothing to resubmit.")
		return
	}
	for _, s := range report.Succeeded {
		fmt.Fprintf(out, "✓ %-16s  attempt %d  %s\n", s.Record.QuestionID, s.Record.AttemptNumber, s.Ack.Reference)
	}
	for _, f := range report.Failed {
		fmt.Fprintf(out, "✗ %-16s  attempt %d  %v\n", f.Record.QuestionID, f.Record.AttemptNumber, f.Err)
	}
	fmt.Fprintf(out, "\n%d saved, %d failed\n", len(report.Succeeded), len(report.Failed))
}
