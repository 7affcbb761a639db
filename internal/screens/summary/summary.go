// Package summary shows the outcome of a completed assessment and submits
// its records to the platform.
package summary

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cogniq/internal/api"
	asmt "github.com/abhisek/cogniq/internal/assessment"
	"github.com/abhisek/cogniq/internal/catalog"
	"github.com/abhisek/cogniq/internal/router"
	"github.com/abhisek/cogniq/internal/screen"
	"github.com/abhisek/cogniq/internal/store"
	"github.com/abhisek/cogniq/internal/ui/components"
	"github.com/abhisek/cogniq/internal/ui/layout"
)

// submitTimeout bounds one submission batch.
const submitTimeout = 2 * time.Minute

// Result is a completed assessment.
type Result struct {
	Session *asmt.Session
	Kind    catalog.Kind
	Title   string
}

// submittedMsg carries the report of one submission batch.
type submittedMsg struct {
	Report asmt.Report
	Err    error
	Retry  bool
}

// SummaryScreen displays session metrics and submission status.
type SummaryScreen struct {
	deps    screen.Deps
	result  Result
	tracker asmt.Tracker
	retake  func() screen.Screen

	loading    components.Loading
	submitting bool
	submitted  bool
	report     asmt.Report
	errMsg     string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. retake, when non-nil, builds a fresh
// assessment for the Retake action.
func New(deps screen.Deps, result Result, retake func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{
		deps:    deps,
		result:  result,
		tracker: result.Session.Tracker(),
		retake:  retake,
		loading: components.NewLoading("Saving your responses..."),
	}
}

// submits reports whether this kind of result is sent to the platform.
// Course quizzes are scored locally only.
func (s *SummaryScreen) submits() bool {
	return s.result.Kind != catalog.KindQuiz
}

func (s *SummaryScreen) Init() tea.Cmd {
	if !s.submits() || s.submitted || s.submitting {
		return nil
	}
	s.submitting = true
	return tea.Batch(s.loading.Tick(), s.submitCmd(nil))
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	if s.canRetry() {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry failed"})
	}
	if s.retake != nil && !s.submits() {
		hints = append(hints, layout.KeyHint{Key: "T", Description: "Retake"})
	}
	return hints
}

func (s *SummaryScreen) canRetry() bool {
	return s.submits() && s.submitted && !s.submitting && !s.report.OK()
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		return s.handleSubmitted(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			if s.submitting {
				return s, nil
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r", "R":
			if s.canRetry() {
				s.submitting = true
				return s, tea.Batch(s.loading.Tick(), s.submitCmd(s.report.FailedRecords()))
			}
		case "t", "T":
			if s.retake != nil && !s.submits() {
				next := s.retake()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
		return s, nil
	}

	if s.submitting {
		var cmd tea.Cmd
		s.loading, cmd = s.loading.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SummaryScreen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.submitted = true
	if msg.Retry {
		// Earlier successes stand; failures are replaced by this round's.
		s.report.Succeeded = append(s.report.Succeeded, msg.Report.Succeeded...)
		s.report.Failed = msg.Report.Failed
	} else {
		s.report = msg.Report
	}

	s.deps.LogSessionEvent(context.Background(), store.SessionEventData{
		SessionID: s.result.Session.ID(),
		Kind:      string(s.result.Kind),
		Action:    store.ActionSubmit,
		Questions: s.result.Session.Questions().Len(),
		Attempts:  s.tracker.TotalAttempts(),
		Correct:   s.tracker.CorrectQuestions(),
		Detail:    fmt.Sprintf("%d/%d saved", len(s.report.Succeeded), s.report.Total()),
	})
	return s, nil
}

// submitCmd dispatches the session's records, or only records when
// retrying. Every outcome is logged so that failures can be resubmitted
// later from the command line.
func (s *SummaryScreen) submitCmd(records []asmt.AttemptRecord) tea.Cmd {
	deps := s.deps
	res := s.result
	return func() tea.Msg {
		submit, err := deps.Client.SubmitterFor(string(res.Kind))
		if err != nil {
			return submittedMsg{Err: err}
		}
		if deps.EventRepo != nil {
			submit = api.WithSubmissionLog(submit, deps.EventRepo, res.Session.ID(), string(res.Kind))
		}

		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		coord := asmt.NewCoordinator(deps.Config.SubmitConcurrency)
		if records != nil {
			return submittedMsg{Report: coord.Submit(ctx, records, submit), Retry: true}
		}
		report, err := coord.SubmitSession(ctx, res.Session, submit)
		return submittedMsg{Report: report, Err: err}
	}
}
