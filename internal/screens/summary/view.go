package summary

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/catalog"
	"github.com/abhisek/cogniq/internal/ui/components"
	"github.com/abhisek/cogniq/internal/ui/theme"
)

func (s *SummaryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render(s.result.Title+" complete"))
	sections = append(sections, components.TitledCard("Your results", s.renderMetrics(), cw))

	switch {
	case !s.submits():
		sections = append(sections, theme.Hint.Render("Quiz scores stay on this device."))
	case s.submitting:
		sections = append(sections, s.loading.View(cw))
	case s.errMsg != "":
		sections = append(sections, theme.ErrorText.Render("Could not submit: "+s.errMsg))
	case s.submitted:
		sections = append(sections, components.TitledCard("Submission", s.renderReport(), cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n\n"))
}

type metric struct {
	label, value string
	style        lipgloss.Style
}

func (s *SummaryScreen) renderMetrics() string {
	tr := s.tracker
	plain := theme.Body.Bold(true)
	accuracy := metric{"Accuracy", fmt.Sprintf("%.0f%%", tr.Accuracy()*100), theme.Score(tr.Accuracy())}

	var rows []metric
	switch s.result.Kind {
	case catalog.KindBehavioral:
		rows = append(rows,
			metric{"Questions answered", fmt.Sprintf("%d", tr.DistinctQuestions()), plain},
			metric{"Total score", fmt.Sprintf("%.0f", tr.ScoreWeightedTotal()), plain},
		)
	case catalog.KindQuiz:
		rows = append(rows,
			metric{"Score", fmt.Sprintf("%d / %d", tr.CorrectQuestions(), tr.DistinctQuestions()), plain},
			accuracy,
		)
	default:
		rows = append(rows,
			metric{"Questions", fmt.Sprintf("%d", tr.DistinctQuestions()), plain},
			metric{"Attempts", fmt.Sprintf("%d", tr.TotalAttempts()), plain},
			metric{"Correct", fmt.Sprintf("%d", tr.CorrectQuestions()), plain},
			accuracy,
		)
	}
	rows = append(rows, metric{"Mean response", fmt.Sprintf("%.2fs", tr.MeanResponseSeconds()), plain})

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(theme.Muted.Width(22).Render(r.label))
		b.WriteString(r.style.Render(r.value))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *SummaryScreen) renderReport() string {
	r := s.report
	if r.OK() {
		return theme.Correct.Render(fmt.Sprintf("All %d responses saved.", r.Total()))
	}

	var b strings.Builder
	b.WriteString(theme.Incorrect.Render(fmt.Sprintf("%d of %d responses could not be saved.", len(r.Failed), r.Total())))
	b.WriteString("\n")
	if api.IsUnauthorized(r.Err()) {
		b.WriteString(theme.Muted.Render("You are not logged in, or your session expired. Log in, then run"))
	} else {
		b.WriteString(theme.Muted.Render("Press R to retry now, or later run"))
	}
	b.WriteString("\n")
	b.WriteString(theme.Body.Render("  cogniq resubmit " + s.result.Session.ID()))
	if first := firstCause(r.Failed[0].Err); first != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(first))
	}
	return b.String()
}

// firstCause unwraps a record's transport error for display.
func firstCause(err error) string {
	if u := errors.Unwrap(err); u != nil {
		return u.Error()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
