package assessment

import "time"

// tickMsg refreshes the response timer display.
type tickMsg time.Time

// feedbackDoneMsg is sent when a retry feedback hold ends.
type feedbackDoneMsg struct{}
