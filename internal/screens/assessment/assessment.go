// Package assessment is the screen that walks a learner through a question
// set: technical, behavioral or a course quiz.
package assessment

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	asmt "github.com/abhisek/cogniq/internal/assessment"
	"github.com/abhisek/cogniq/internal/catalog"
	"github.com/abhisek/cogniq/internal/router"
	"github.com/abhisek/cogniq/internal/screen"
	"github.com/abhisek/cogniq/internal/screens/summary"
	"github.com/abhisek/cogniq/internal/store"
	"github.com/abhisek/cogniq/internal/ui/components"
	"github.com/abhisek/cogniq/internal/ui/layout"
)

// tickInterval is how often the elapsed time display refreshes.
const tickInterval = 100 * time.Millisecond

// AssessmentScreen implements screen.Screen for a running session.
type AssessmentScreen struct {
	deps    screen.Deps
	cat     *catalog.Catalog
	detail  string
	session *asmt.Session
	clock   asmt.Clock

	choices     components.ChoiceList
	last        *asmt.AttemptRecord
	notice      string
	elapsed     time.Duration
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*AssessmentScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentScreen)(nil)
var _ screen.BackHandler = (*AssessmentScreen)(nil)

// New creates an AssessmentScreen over cat. detail labels the session in
// history, e.g. a course title.
func New(deps screen.Deps, cat *catalog.Catalog, detail string) *AssessmentScreen {
	s := &AssessmentScreen{deps: deps, cat: cat, detail: detail}
	if detail == "" {
		s.detail = cat.Title
	}

	policy := cat.WithFeedbackDelay(deps.Config.FeedbackDelay)
	s.clock = asmt.SystemClock{}
	if deps.Clock != nil {
		s.clock = deps.Clock
	}
	opts := []asmt.SessionOption{asmt.WithClock(s.clock)}

	sess, err := asmt.NewSession(cat.Set, policy, opts...)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.session = sess
	return s
}

// Session exposes the underlying session.
func (s *AssessmentScreen) Session() *asmt.Session {
	return s.session
}

func (s *AssessmentScreen) Init() tea.Cmd {
	if s.session == nil {
		return nil
	}
	if err := s.session.Start(); err != nil {
		s.fail(err)
		return nil
	}
	s.logEvent(store.ActionStart, "")
	s.resetChoices()
	return tickCmd()
}

func (s *AssessmentScreen) Title() string {
	return s.cat.Title
}

func (s *AssessmentScreen) HandlesBack() bool {
	return true
}

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Discard answers"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.session.Phase() {
	case asmt.PhaseAdvancing:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	case asmt.PhaseFeedback:
		return []layout.KeyHint{{Key: "Esc", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Answer"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick()

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case components.ChosenMsg:
		return s.answer(msg.Index)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *AssessmentScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.session == nil || s.session.Phase().Terminal() {
		return s, nil
	}
	s.elapsed = s.session.Elapsed()
	return s, tickCmd()
}

// handleFeedbackDone unlocks the question for another attempt once the
// hold is over.
func (s *AssessmentScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	switch s.session.Phase() {
	case asmt.PhaseAwaitingAnswer:
		s.notice = "Try again."
		s.resetChoices()
	case asmt.PhaseFailed:
		s.fail(s.session.Err())
	}
	return s, nil
}

func (s *AssessmentScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s.abandon()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	switch s.session.Phase() {
	case asmt.PhaseAwaitingAnswer:
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		return s, cmd
	case asmt.PhaseAdvancing:
		if key == "enter" || key == "space" || key == "n" {
			return s.advance()
		}
	}
	return s, nil
}

// answer submits the option at index i for the current question.
func (s *AssessmentScreen) answer(i int) (screen.Screen, tea.Cmd) {
	q, ok := s.session.CurrentQuestion()
	if !ok || i < 0 || i >= len(q.Options) {
		return s, nil
	}

	rec, err := s.session.SubmitAnswer(q.Options[i].ID)
	if err != nil {
		if s.session.Phase() == asmt.PhaseFailed {
			s.fail(err)
			return s, nil
		}
		// Protocol errors (a stray key during the hold) leave state unchanged.
		return s, nil
	}

	s.last = &rec
	s.notice = ""
	s.choices.Locked = true
	if rec.Weighted {
		return s.advance()
	}

	if rec.IsCorrect {
		s.choices.Marks[i] = components.MarkCorrect
	} else {
		s.choices.Marks[i] = components.MarkIncorrect
		// Without retries the right answer is revealed.
		if !s.session.Policy().Retries() {
			for j, opt := range q.Options {
				if opt.ID == q.CorrectAnswer {
					s.choices.Marks[j] = components.MarkCorrect
				}
			}
		}
	}

	switch s.session.Phase() {
	case asmt.PhaseFeedback:
		return s, waitFeedback(s.session)
	case asmt.PhaseAwaitingAnswer:
		// Zero hold: the question reopens at once.
		return s.handleFeedbackDone()
	}
	return s, nil
}

// advance moves to the next question, or to the summary after the last.
func (s *AssessmentScreen) advance() (screen.Screen, tea.Cmd) {
	if err := s.session.Advance(); err != nil {
		if s.session.Phase() == asmt.PhaseFailed {
			s.fail(err)
		}
		return s, nil
	}

	if s.session.Phase() == asmt.PhaseCompleted {
		s.logEvent(store.ActionComplete, "")
		next := summary.New(s.deps, summary.Result{
			Session: s.session,
			Kind:    s.cat.Kind,
			Title:   s.cat.Title,
		}, s.retake)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	s.last = nil
	s.notice = ""
	s.resetChoices()
	return s, nil
}

// retake builds a fresh screen over the same catalog.
func (s *AssessmentScreen) retake() screen.Screen {
	return New(s.deps, s.cat, s.detail)
}

func (s *AssessmentScreen) abandon() (screen.Screen, tea.Cmd) {
	s.confirmQuit = false
	if err := s.session.Abandon(); err == nil {
		s.logEvent(store.ActionAbandon, "")
	}
	return s, func() tea.Msg { return router.PopScreenMsg{} }
}

// fail records a fatal session error. The session cannot continue.
func (s *AssessmentScreen) fail(err error) {
	if err == nil {
		err = errors.New("session failed")
	}
	s.errMsg = err.Error()
	s.logEvent(store.ActionFail, err.Error())
}

func (s *AssessmentScreen) resetChoices() {
	q, ok := s.session.CurrentQuestion()
	if !ok {
		return
	}
	labels := make([]string, len(q.Options))
	for i, opt := range q.Options {
		labels[i] = opt.Text
	}
	s.choices = components.NewChoiceList(labels)
}

// logEvent appends a lifecycle event for the session.
func (s *AssessmentScreen) logEvent(action, detail string) {
	if s.session == nil {
		return
	}
	if detail == "" {
		detail = s.detail
	}
	tr := s.session.Tracker()
	s.deps.LogSessionEvent(context.Background(), store.SessionEventData{
		SessionID:      s.session.ID(),
		Kind:           string(s.cat.Kind),
		Action:         action,
		Questions:      s.cat.Set.Len(),
		Attempts:       tr.TotalAttempts(),
		Correct:        tr.CorrectQuestions(),
		MeanResponseMs: tr.MeanResponseTime().Milliseconds(),
		ScoreTotal:     tr.ScoreWeightedTotal(),
		Detail:         detail,
	})
}

// waitFeedback blocks until the session's feedback hold ends.
func waitFeedback(sess *asmt.Session) tea.Cmd {
	done := sess.FeedbackDone()
	return func() tea.Msg {
		<-done
		return feedbackDoneMsg{}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
