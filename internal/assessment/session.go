package assessment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Phase is the state of a Session.
type Phase int

const (
	PhaseIdle           Phase = iota // Constructed, Start not called
	PhaseAwaitingAnswer              // Timer running, accepting an answer
	PhaseFeedback                    // Incorrect answer under retry; hold in progress
	PhaseAdvancing                   // Question resolved; waiting for Advance
	PhaseCompleted                   // All questions resolved; records frozen
	PhaseAbandoned                   // Discarded by the caller
	PhaseFailed                      // Clock failure
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseFeedback:
		return "feedback"
	case PhaseAdvancing:
		return "advancing"
	case PhaseCompleted:
		return "completed"
	case PhaseAbandoned:
		return "abandoned"
	case PhaseFailed:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseAbandoned || p == PhaseFailed
}

// State is a point-in-time snapshot of a Session.
type State struct {
	Phase          Phase
	QuestionIndex  int
	AttemptNumber  int
	TimerStartedAt time.Time

	// LastCorrect is the outcome of the most recent answer.
	LastCorrect bool

	// HoldUntil is when the current feedback hold ends. Zero outside
	// PhaseFeedback.
	HoldUntil time.Time

	Records []AttemptRecord
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock sets the session clock. Defaults to SystemClock.
func WithClock(c Clock) SessionOption {
	return func(s *Session) { s.clock = c }
}

// WithID sets the session id. Defaults to a random UUID.
func WithID(id string) SessionOption {
	return func(s *Session) { s.id = id }
}

// closedCh is returned by FeedbackDone when no hold is active.
var closedCh = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Session drives one learner through a QuestionSet. It has a single owner;
// the mutex only protects against the feedback-hold callback, which fires
// on the clock's goroutine.
type Session struct {
	mu sync.Mutex

	id     string
	set    *QuestionSet
	policy RetryPolicy
	clock  Clock
	timer  *Timer

	phase       Phase
	index       int
	attempt     int
	records     []AttemptRecord
	resolved    int
	lastCorrect bool
	failure     error

	holdUntil time.Time
	hold      Stopper
	holdDone  chan struct{}
	holdGen   int
}

// NewSession creates an idle session over set.
func NewSession(set *QuestionSet, policy RetryPolicy, opts ...SessionOption) (*Session, error) {
	if set.Len() == 0 {
		return nil, ErrEmptySet
	}
	s := &Session{
		set:    set,
		policy: policy,
		clock:  SystemClock{},
		phase:  PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}
	s.timer = NewTimer(s.clock)
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Policy returns the session's retry policy.
func (s *Session) Policy() RetryPolicy {
	return s.policy
}

// Questions returns the session's question set.
func (s *Session) Questions() *QuestionSet {
	return s.set
}

// Start presents the first question and starts its timer.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseIdle {
		return ErrAlreadyStarted
	}
	s.index = 0
	s.attempt = 1
	if err := s.timer.Start(); err != nil {
		return s.fail(err)
	}
	s.phase = PhaseAwaitingAnswer
	return nil
}

// SubmitAnswer records an answer for the current question. answer is an
// option ID.
func (s *Session) SubmitAnswer(answer string) (AttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPhase(PhaseAwaitingAnswer); err != nil {
		return AttemptRecord{}, err
	}

	q := s.set.questions[s.index]
	opt, ok := q.Option(answer)
	if !ok {
		return AttemptRecord{}, fmt.Errorf("%w: %q for question %s", ErrInvalidAnswer, answer, q.ID)
	}

	elapsed, now, err := s.timer.Stop()
	if err != nil {
		return AttemptRecord{}, s.fail(err)
	}

	correct := q.Weighted || answer == q.CorrectAnswer
	rec := AttemptRecord{
		QuestionID:     q.ID,
		SelectedAnswer: answer,
		CorrectAnswer:  q.CorrectAnswer,
		AttemptNumber:  s.attempt,
		ResponseTime:   elapsed,
		IsCorrect:      correct,
		Weighted:       q.Weighted,
	}
	if q.Weighted {
		rec.ScoreWeight = opt.Weight
	}
	s.records = append(s.records, rec)
	s.lastCorrect = correct
	s.phase = PhaseFeedback

	if correct || !s.policy.Retries() {
		s.resolved++
		s.phase = PhaseAdvancing
		return rec, nil
	}

	s.beginHold(now)
	return rec, nil
}

// beginHold schedules the return to PhaseAwaitingAnswer for the same
// question. Must be called with s.mu held.
func (s *Session) beginHold(now time.Time) {
	delay := s.policy.FeedbackDelay()
	s.holdGen++
	s.holdDone = make(chan struct{})
	s.holdUntil = now.Add(delay)
	if delay <= 0 {
		s.endHoldLocked()
		return
	}
	gen := s.holdGen
	s.hold = s.clock.AfterFunc(delay, func() { s.endHold(gen) })
}

func (s *Session) endHold(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseFeedback || gen != s.holdGen {
		return
	}
	s.endHoldLocked()
}

func (s *Session) endHoldLocked() {
	s.hold = nil
	s.holdUntil = time.Time{}
	s.attempt++
	if err := s.timer.Start(); err != nil {
		_ = s.fail(err)
		return
	}
	s.phase = PhaseAwaitingAnswer
	s.closeHold()
}

func (s *Session) closeHold() {
	if s.holdDone != nil {
		close(s.holdDone)
		s.holdDone = nil
	}
}

// FeedbackDone returns a channel that is closed when the current feedback
// hold ends. Outside a hold the channel is already closed.
func (s *Session) FeedbackDone() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseFeedback || s.holdDone == nil {
		return closedCh
	}
	return s.holdDone
}

// WaitFeedback blocks until the current feedback hold ends or ctx is done.
func (s *Session) WaitFeedback(ctx context.Context) error {
	select {
	case <-s.FeedbackDone():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Advance moves past a resolved question. After the last question the
// session is Completed.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseAdvancing {
		if err := s.closedErr(); err != nil {
			return err
		}
		return fmt.Errorf("%w: session is %s", ErrNotAdvancing, s.phase)
	}

	s.index++
	if s.index >= len(s.set.questions) {
		s.index = len(s.set.questions)
		s.phase = PhaseCompleted
		return nil
	}

	s.attempt = 1
	if err := s.timer.Start(); err != nil {
		return s.fail(err)
	}
	s.phase = PhaseAwaitingAnswer
	return nil
}

// Abandon discards the session and its records. Nothing is submitted.
func (s *Session) Abandon() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.Terminal() {
		return ErrSessionClosed
	}
	s.stopHold()
	s.records = nil
	s.phase = PhaseAbandoned
	return nil
}

// CurrentQuestion returns the question being answered, or false when the
// session is idle or terminal.
func (s *Session) CurrentQuestion() (Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseIdle || s.phase.Terminal() {
		return Question{}, false
	}
	return s.set.questions[s.index].clone(), true
}

// ProgressFraction is resolved questions over total. Under retry a question
// is resolved only by its correct answer.
func (s *Session) ProgressFraction() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.resolved) / float64(len(s.set.questions))
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Err returns the fatal error that moved the session to PhaseFailed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// Records returns a copy of the committed records in submission order.
func (s *Session) Records() []AttemptRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AttemptRecord(nil), s.records...)
}

// Tracker returns metrics over the committed records.
func (s *Session) Tracker() Tracker {
	return NewTracker(s.Records())
}

// Elapsed returns the running attempt's elapsed time for display. It is
// zero when no attempt is being timed.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.timer.Elapsed()
	if err != nil {
		return 0
	}
	return d
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Phase:         s.phase,
		QuestionIndex: s.index,
		AttemptNumber: s.attempt,
		LastCorrect:   s.lastCorrect,
		HoldUntil:     s.holdUntil,
		Records:       append([]AttemptRecord(nil), s.records...),
	}
	if s.timer.Running() {
		st.TimerStartedAt = s.timer.StartedAt()
	}
	return st
}

func (s *Session) checkPhase(want Phase) error {
	if s.phase == want {
		return nil
	}
	if err := s.closedErr(); err != nil {
		return err
	}
	switch s.phase {
	case PhaseIdle:
		return ErrNotStarted
	case PhaseFeedback:
		return ErrFeedbackHold
	}
	return fmt.Errorf("%w: session is %s", ErrNotAwaitingAnswer, s.phase)
}

func (s *Session) closedErr() error {
	switch s.phase {
	case PhaseFailed:
		return s.failure
	case PhaseCompleted, PhaseAbandoned:
		return ErrSessionClosed
	}
	return nil
}

// fail moves the session to PhaseFailed. Must be called with s.mu held.
func (s *Session) fail(err error) error {
	s.stopHold()
	s.failure = err
	s.phase = PhaseFailed
	return err
}

func (s *Session) stopHold() {
	if s.hold != nil {
		s.hold.Stop()
		s.hold = nil
	}
	s.holdGen++
	s.holdUntil = time.Time{}
	s.closeHold()
}
