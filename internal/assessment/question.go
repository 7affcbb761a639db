package assessment

import (
	"fmt"
	"slices"
)

// Option is one candidate answer. ID is what the learner submits; Text is
// what is displayed. Weight is only meaningful for weighted questions.
type Option struct {
	ID     string
	Text   string
	Weight float64
}

// Question is a single immutable catalog entry.
type Question struct {
	ID     string
	Prompt string

	// Options are in presentation order.
	Options []Option

	// CorrectAnswer is the ID of the correct option. Empty for weighted
	// questions, where every option is accepted.
	CorrectAnswer string

	Explanation string

	// Weighted marks survey-style questions whose options carry a score
	// weight instead of a right/wrong outcome.
	Weighted bool
}

// Option returns the option with the given ID.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// CorrectOption returns the correct option for non-weighted questions.
func (q Question) CorrectOption() (Option, bool) {
	if q.Weighted {
		return Option{}, false
	}
	return q.Option(q.CorrectAnswer)
}

func (q Question) clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}

func (q Question) validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidQuestion)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: question %s has no options", ErrInvalidQuestion, q.ID)
	}
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if seen[o.ID] {
			return fmt.Errorf("%w: question %s has duplicate option %q", ErrInvalidQuestion, q.ID, o.ID)
		}
		seen[o.ID] = true
	}
	if !q.Weighted && !seen[q.CorrectAnswer] {
		return fmt.Errorf("%w: question %s correct answer %q is not an option", ErrInvalidQuestion, q.ID, q.CorrectAnswer)
	}
	return nil
}

// QuestionSet is an ordered, read-only catalog of questions.
type QuestionSet struct {
	questions []Question
	index     map[string]int
}

// NewQuestionSet validates and copies questions into a QuestionSet.
func NewQuestionSet(questions []Question) (*QuestionSet, error) {
	if len(questions) == 0 {
		return nil, ErrEmptySet
	}

	qs := &QuestionSet{
		questions: make([]Question, 0, len(questions)),
		index:     make(map[string]int, len(questions)),
	}
	for i, q := range questions {
		if _, dup := qs.index[q.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, q.ID)
		}
		if err := q.validate(); err != nil {
			return nil, err
		}
		qs.index[q.ID] = i
		qs.questions = append(qs.questions, q.clone())
	}
	return qs, nil
}

// Len returns the number of questions.
func (qs *QuestionSet) Len() int {
	if qs == nil {
		return 0
	}
	return len(qs.questions)
}

// Get returns a copy of the question at index i. It panics if i is out of
// range, like a slice index.
func (qs *QuestionSet) Get(i int) Question {
	return qs.questions[i].clone()
}

// IndexOf returns the position of the question with the given id.
func (qs *QuestionSet) IndexOf(id string) (int, error) {
	i, ok := qs.index[id]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrQuestionNotFound, id)
	}
	return i, nil
}

// All returns a copy of every question in canonical order.
func (qs *QuestionSet) All() []Question {
	out := make([]Question, len(qs.questions))
	for i, q := range qs.questions {
		out[i] = q.clone()
	}
	return out
}
