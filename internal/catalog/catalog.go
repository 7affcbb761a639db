// Package catalog loads question sets: the embedded technical and
// behavioral assessments, and course quizzes fetched from the platform.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/cogniq/internal/assessment"
)

//go:embed data/*.yaml data/catalog.schema.json
var dataFS embed.FS

// Kind names an assessment.
type Kind string

const (
	KindTechnical  Kind = "technical"
	KindBehavioral Kind = "behavioral"
	KindQuiz       Kind = "quiz"
)

// ErrUnknownCatalog is returned by Load for a name that is not embedded.
var ErrUnknownCatalog = errors.New("unknown catalog")

// Catalog is a validated question set with its retry policy.
type Catalog struct {
	Version int
	Kind    Kind
	Title   string
	Policy  assessment.RetryPolicy
	Set     *assessment.QuestionSet
}

// WithFeedbackDelay returns the catalog's policy with the feedback delay
// replaced. SingleAttempt policies are returned unchanged.
func (c *Catalog) WithFeedbackDelay(d time.Duration) assessment.RetryPolicy {
	if !c.Policy.Retries() {
		return c.Policy
	}
	return assessment.RetryUntilCorrect(d)
}

// file is the YAML document layout.
type file struct {
	Version   int            `yaml:"version"`
	Kind      Kind           `yaml:"kind"`
	Title     string         `yaml:"title"`
	Retry     retrySpec      `yaml:"retry"`
	Questions []questionSpec `yaml:"questions"`
}

type retrySpec struct {
	Mode          string `yaml:"mode"`
	FeedbackDelay string `yaml:"feedback_delay"`
}

type questionSpec struct {
	ID          string       `yaml:"id"`
	Prompt      string       `yaml:"prompt"`
	Options     []optionSpec `yaml:"options"`
	Correct     string       `yaml:"correct"`
	Explanation string       `yaml:"explanation"`
}

// optionSpec accepts either a bare string, used as both id and text, or a
// mapping with id, text and weight.
type optionSpec struct {
	ID     string
	Text   string
	Weight float64
}

func (o *optionSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		o.ID, o.Text = node.Value, node.Value
		return nil
	}
	var m struct {
		ID     string  `yaml:"id"`
		Text   string  `yaml:"text"`
		Weight float64 `yaml:"weight"`
	}
	if err := node.Decode(&m); err != nil {
		return err
	}
	o.ID, o.Text, o.Weight = m.ID, m.Text, m.Weight
	return nil
}

// Technical returns the embedded technical assessment.
func Technical() (*Catalog, error) {
	return Load(KindTechnical)
}

// Behavioral returns the embedded behavioral assessment.
func Behavioral() (*Catalog, error) {
	return Load(KindBehavioral)
}

// Load returns an embedded catalog by kind.
func Load(kind Kind) (*Catalog, error) {
	data, err := dataFS.ReadFile("data/" + string(kind) + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCatalog, kind)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", kind, err)
	}
	return c, nil
}

// Parse validates a YAML catalog document and builds its question set.
func Parse(data []byte) (*Catalog, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	policy, err := f.Retry.policy()
	if err != nil {
		return nil, err
	}

	weighted := f.Kind == KindBehavioral
	questions := make([]assessment.Question, len(f.Questions))
	for i, q := range f.Questions {
		questions[i] = assessment.Question{
			ID:            q.ID,
			Prompt:        q.Prompt,
			CorrectAnswer: q.Correct,
			Explanation:   q.Explanation,
			Weighted:      weighted,
		}
		for _, o := range q.Options {
			questions[i].Options = append(questions[i].Options, assessment.Option{
				ID:     o.ID,
				Text:   o.Text,
				Weight: o.Weight,
			})
		}
	}

	set, err := assessment.NewQuestionSet(questions)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		Version: f.Version,
		Kind:    f.Kind,
		Title:   f.Title,
		Policy:  policy,
		Set:     set,
	}, nil
}

func (r retrySpec) policy() (assessment.RetryPolicy, error) {
	switch r.Mode {
	case "", "single-attempt":
		return assessment.SingleAttempt(), nil
	case "retry-until-correct":
		var d time.Duration
		if r.FeedbackDelay != "" {
			var err error
			if d, err = time.ParseDuration(r.FeedbackDelay); err != nil {
				return assessment.RetryPolicy{}, fmt.Errorf("feedback_delay: %w", err)
			}
		}
		return assessment.RetryUntilCorrect(d), nil
	}
	return assessment.RetryPolicy{}, fmt.Errorf("unknown retry mode %q", r.Mode)
}
