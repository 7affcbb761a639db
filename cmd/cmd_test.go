package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cogniq/internal/screen/screentest"
	"github.com/abhisek/cogniq/internal/store"
)

// testCommand returns a bare command reading from in and writing to out.
// Callers add the flags the command under test reads.
func testCommand(in string, out *bytes.Buffer) *cobra.Command {
	c := &cobra.Command{}
	c.SetContext(context.Background())
	c.SetIn(strings.NewReader(in))
	c.SetOut(out)
	return c
}

func seedSubmission(t *testing.T, repo store.EventRepo, qid string, attempt int, ok bool) {
	t.Helper()
	data := store.SubmissionEventData{
		SessionID:      "sess-1",
		Kind:           "technical",
		QuestionID:     qid,
		SelectedAnswer: "42",
		CorrectAnswer:  "42",
		AttemptNumber:  attempt,
		ResponseMs:     1200,
		IsCorrect:      true,
		Success:        ok,
	}
	if !ok {
		data.ErrorMessage = "platform unavailable"
	}
	require.NoError(t, repo.AppendSubmission(context.Background(), data))
}

func TestResubmitSendsOnlyFailedRecords(t *testing.T) {
	env := screentest.New(t)
	env.Login(t, "ada@example.com")
	repo := env.Store.EventRepo()

	seedSubmission(t, repo, "1", 1, true)
	seedSubmission(t, repo, "2", 1, false)
	seedSubmission(t, repo, "3", 2, false)

	sess := &session{cfg: env.Deps.Config, store: env.Store, client: env.Deps.Client}
	report, err := resubmit(testCommand("", &bytes.Buffer{}), sess, "sess-1")
	require.NoError(t, err)

	assert.True(t, report.OK())
	assert.Equal(t, 2, report.Total())
	assert.Equal(t, "2", report.Succeeded[0].Record.QuestionID)
	assert.Equal(t, "3", report.Succeeded[1].Record.QuestionID)
	assert.Equal(t, 2, report.Succeeded[1].Record.AttemptNumber)

	failed, err := repo.FailedSubmissions(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, failed)
}

func TestResubmitNothingPending(t *testing.T) {
	env := screentest.New(t)
	sess := &session{cfg: env.Deps.Config, store: env.Store, client: env.Deps.Client}

	report, err := resubmit(testCommand("", &bytes.Buffer{}), sess, "unknown")
	require.NoError(t, err)
	assert.Zero(t, report.Total())

	var out bytes.Buffer
	printReport(&out, report)
	assert.Contains(t, out.String(), "Nothing to resubmit.")
}

func TestResubmitNotLoggedInKeepsFailures(t *testing.T) {
	env := screentest.New(t)
	repo := env.Store.EventRepo()
	seedSubmission(t, repo, "2", 1, false)

	sess := &session{cfg: env.Deps.Config, store: env.Store, client: env.Deps.Client}
	report, err := resubmit(testCommand("", &bytes.Buffer{}), sess, "sess-1")
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Len(t, report.Failed, 1)

	failed, err := repo.FailedSubmissions(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Len(t, failed, 1)
}

func TestAggregateStats(t *testing.T) {
	sessions := []store.SessionSummary{
		{Kind: "technical", LastAction: store.ActionSubmit, Questions: 10, Correct: 7, Failed: 1},
		{Kind: "technical", LastAction: store.ActionComplete, Questions: 10, Correct: 9},
		{Kind: "technical", LastAction: store.ActionAbandon, Questions: 3},
		{Kind: "behavioral", LastAction: store.ActionSubmit, Questions: 10, ScoreTotal: 64},
		{Kind: "quiz", LastAction: store.ActionStart},
	}

	stats := aggregateStats(sessions)
	require.Len(t, stats, 3)

	assert.Equal(t, "behavioral", stats[0].Kind)
	assert.Equal(t, 64.0, stats[0].Score)

	assert.Equal(t, "quiz", stats[1].Kind)
	assert.Zero(t, stats[1].Sessions)

	tech := stats[2]
	assert.Equal(t, 2, tech.Sessions)
	assert.Equal(t, 1, tech.Abandoned)
	assert.Equal(t, 20, tech.Questions)
	assert.InDelta(t, 0.8, tech.accuracy(), 1e-9)
	assert.Equal(t, 1, tech.Pending)

	var out bytes.Buffer
	printStats(&out, stats)
	assert.Contains(t, out.String(), "80%")
	assert.Contains(t, out.String(), "64.0")
}

func TestPrintStatsEmpty(t *testing.T) {
	var out bytes.Buffer
	printStats(&out, nil)
	assert.Contains(t, out.String(), "No sessions yet")
}

func TestCatalogShowMarksAnswers(t *testing.T) {
	var out bytes.Buffer
	c := testCommand("", &out)
	c.Flags().Bool("answers", true, "")

	require.NoError(t, catalogShowCmd.RunE(c, []string{"technical"}))
	assert.Contains(t, out.String(), "Technical Assessment")
	assert.Contains(t, out.String(), "✓ 42)")
}

func TestCatalogShowUnknownKind(t *testing.T) {
	c := testCommand("", &bytes.Buffer{})
	c.Flags().Bool("answers", false, "")
	assert.Error(t, catalogShowCmd.RunE(c, []string{"astrology"}))
}

func TestPreviewBehavioralScoresWeights(t *testing.T) {
	var out bytes.Buffer
	c := testCommand("z\nd\na\n", &out)
	c.Flags().Int("count", 2, "")

	require.NoError(t, runPreview(c, []string{"behavioral"}))
	assert.Contains(t, out.String(), "Pick one of the listed options.")
	assert.Contains(t, out.String(), "score 11.0 over 2 questions")
}

func TestPreviewTechnicalCorrectAnswers(t *testing.T) {
	var out bytes.Buffer
	c := testCommand("Yes\n42\n", &out)
	c.Flags().Int("count", 2, "")

	require.NoError(t, runPreview(c, []string{"technical"}))
	assert.Contains(t, out.String(), "2/2 correct in 2 attempts")
}

func TestPreviewInputClosedAbandons(t *testing.T) {
	var out bytes.Buffer
	c := testCommand("Yes\n", &out)
	c.Flags().Int("count", 3, "")

	require.NoError(t, runPreview(c, []string{"technical"}))
	assert.Contains(t, out.String(), "(input closed)")
}

func TestReadPasswordPipedKeepsSpaces(t *testing.T) {
	var out bytes.Buffer
	c := testCommand(" pa ss \r\n", &out)
	c.Flags().String("password", "", "")
	t.Setenv("COGNIQ_PASSWORD", "")

	p, err := readPassword(c)
	require.NoError(t, err)
	assert.Equal(t, " pa ss ", p)
}

func TestReadPasswordEmptyInput(t *testing.T) {
	var out bytes.Buffer
	c := testCommand("\n", &out)
	c.Flags().String("password", "", "")
	t.Setenv("COGNIQ_PASSWORD", "")

	_, err := readPassword(c)
	assert.EqualError(t, err, "password is required")
}

func TestReadPasswordFlagWins(t *testing.T) {
	var out bytes.Buffer
	c := testCommand("typed\n", &out)
	c.Flags().String("password", "", "")
	require.NoError(t, c.Flags().Set("password", "flagged"))
	t.Setenv("COGNIQ_PASSWORD", "env")

	p, err := readPassword(c)
	require.NoError(t, err)
	assert.Equal(t, "flagged", p)
}
