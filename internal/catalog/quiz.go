package catalog

import (
	"errors"
	"strconv"
	"strings"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/assessment"
)

// ErrNoQuiz means the course has no quiz or the quiz has no questions.
var ErrNoQuiz = errors.New("course has no quiz")

// NoQuizMessage is the empty state shown for ErrNoQuiz.
const NoQuizMessage = "No quiz available for this course yet."

// FromQuiz builds a single-attempt catalog from a course quiz. Options come
// as a comma-separated string; each trimmed option is its own id.
func FromQuiz(quiz *api.Quiz) (*Catalog, error) {
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, ErrNoQuiz
	}

	questions := make([]assessment.Question, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		question := assessment.Question{
			ID:            strconv.Itoa(q.ID),
			Prompt:        q.Text,
			CorrectAnswer: strings.TrimSpace(q.CorrectAnswer),
			Explanation:   q.Explanation,
		}
		for _, opt := range SplitOptions(q.Options) {
			question.Options = append(question.Options, assessment.Option{ID: opt, Text: opt})
		}
		questions = append(questions, question)
	}

	set, err := assessment.NewQuestionSet(questions)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		Version: 1,
		Kind:    KindQuiz,
		Title:   quiz.Title,
		Policy:  assessment.SingleAttempt(),
		Set:     set,
	}, nil
}

// SplitOptions splits a comma-separated option list, dropping blanks.
func SplitOptions(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
