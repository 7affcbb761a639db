package devserver

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/cogniq/internal/api"
)

//go:embed data/courses.yaml
var coursesYAML []byte

type courseSeed struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Difficulty  string       `yaml:"difficulty"`
	Instructor  string       `yaml:"instructor"`
	ImageURL    string       `yaml:"image_url"`
	Modules     []moduleSeed `yaml:"modules"`
	Quiz        *quizSeed    `yaml:"quiz"`
}

type moduleSeed struct {
	Title       string `yaml:"title"`
	Theoretical string `yaml:"theoretical"`
	Practical   string `yaml:"practical"`
	Visual      string `yaml:"visual"`
	VideoURL    string `yaml:"video_url"`
}

type quizSeed struct {
	Title     string `yaml:"title"`
	Questions []struct {
		Text          string `yaml:"text"`
		Options       string `yaml:"options"`
		CorrectAnswer string `yaml:"correct_answer"`
		Explanation   string `yaml:"explanation"`
	} `yaml:"questions"`
}

// loadCourses parses a YAML course list and assigns ids.
func loadCourses(data []byte) ([]api.Course, error) {
	var seeds []courseSeed
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse course seed: %w", err)
	}

	var moduleID, quizID, questionID int
	courses := make([]api.Course, len(seeds))
	for i, s := range seeds {
		c := api.Course{
			ID:          i + 1,
			Title:       s.Title,
			Description: s.Description,
			Difficulty:  s.Difficulty,
			Instructor:  s.Instructor,
			ImageURL:    s.ImageURL,
			Modules:     []api.Module{},
		}
		for j, m := range s.Modules {
			moduleID++
			c.Modules = append(c.Modules, api.Module{
				ID:                 moduleID,
				CourseID:           c.ID,
				Title:              m.Title,
				ContentTheoretical: strings.TrimSpace(m.Theoretical),
				ContentPractical:   strings.TrimSpace(m.Practical),
				ContentVisual:      strings.TrimSpace(m.Visual),
				VideoURL:           m.VideoURL,
				Order:              j + 1,
			})
		}
		if s.Quiz != nil {
			quizID++
			q := &api.Quiz{ID: quizID, CourseID: c.ID, Title: s.Quiz.Title, Questions: []api.QuizQuestion{}}
			for _, qs := range s.Quiz.Questions {
				questionID++
				q.Questions = append(q.Questions, api.QuizQuestion{
					ID:            questionID,
					QuizID:        q.ID,
					Text:          qs.Text,
					Options:       qs.Options,
					CorrectAnswer: qs.CorrectAnswer,
					Explanation:   qs.Explanation,
				})
			}
			c.Quiz = q
		}
		courses[i] = c
	}
	return courses, nil
}
