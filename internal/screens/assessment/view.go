package assessment

import (
	"fmt"
	"math"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	asmt "github.com/abhisek/cogniq/internal/assessment"
	"github.com/abhisek/cogniq/internal/ui/components"
	"github.com/abhisek/cogniq/internal/ui/theme"
)

func (s *AssessmentScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	return s.renderQuestion(width)
}

func (s *AssessmentScreen) renderQuestion(width int) string {
	q, ok := s.session.CurrentQuestion()
	if !ok {
		return ""
	}
	st := s.session.State()
	total := s.cat.Set.Len()
	cw := components.ContentWidth(width)

	var b strings.Builder

	info := fmt.Sprintf("Question %d of %d", st.QuestionIndex+1, total)
	if s.session.Policy().Retries() && st.AttemptNumber > 1 {
		info += fmt.Sprintf("  ·  attempt %d", st.AttemptNumber)
	}
	timer := fmt.Sprintf("⏱ %.1fs", s.elapsed.Seconds())
	gap := max(cw-lipgloss.Width(info)-lipgloss.Width(timer), 1)
	b.WriteString(theme.Muted.Render(info) + strings.Repeat(" ", gap) +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(timer))
	b.WriteString("\n")

	done := int(math.Round(s.session.ProgressFraction() * float64(total)))
	b.WriteString(components.ProgressBar{Done: done, Total: total, Width: cw}.View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.choices.View())
	b.WriteString("\n")
	b.WriteString(s.renderFeedback(st, q))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// holdRemaining is the time left in the feedback hold, for display only.
func (s *AssessmentScreen) holdRemaining(st asmt.State) time.Duration {
	if st.HoldUntil.IsZero() {
		return 0
	}
	now, err := s.clock.Now()
	if err != nil {
		return 0
	}
	return st.HoldUntil.Sub(now)
}

// renderFeedback describes the outcome of the last answer.
func (s *AssessmentScreen) renderFeedback(st asmt.State, q asmt.Question) string {
	switch st.Phase {
	case asmt.PhaseFeedback:
		msg := theme.Incorrect.Render("Not quite.") + " " +
			theme.Muted.Render("Take a moment, then try again.")
		if left := s.holdRemaining(st); left > 0 {
			msg += "\n" + theme.Hint.Render(fmt.Sprintf("Next try in %.1fs", left.Seconds()))
		}
		return msg

	case asmt.PhaseAdvancing:
		if s.last == nil {
			return ""
		}
		var b strings.Builder
		if s.last.IsCorrect {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Incorrect."))
			if opt, ok := q.CorrectOption(); ok {
				b.WriteString(" " + theme.Muted.Render("The answer is "+opt.Text+"."))
			}
		}
		if q.Explanation != "" {
			b.WriteString("\n\n" + theme.Body.Render(q.Explanation))
		}
		b.WriteString("\n\n" + theme.Hint.Render("Press Enter to continue"))
		return b.String()
	}

	if s.notice != "" {
		return theme.Hint.Render(s.notice)
	}
	return ""
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "Quit this assessment?"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(theme.Muted, width, "Your answers so far will be discarded."))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, "[Y] Yes, quit"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return theme.Centered(theme.ErrorText, width,
		fmt.Sprintf("\n\n\nThe assessment stopped: %s\n\nPress any key to go back.", errMsg))
}
