package assessment

import "time"

// Tracker derives read-only metrics from committed records.
type Tracker struct {
	records []AttemptRecord
}

// NewTracker returns a Tracker over a copy of records.
func NewTracker(records []AttemptRecord) Tracker {
	return Tracker{records: append([]AttemptRecord(nil), records...)}
}

// TotalAttempts counts every record, including failed retries.
func (t Tracker) TotalAttempts() int {
	return len(t.records)
}

// finalAttempts returns the last record per question, in order of first
// appearance.
func (t Tracker) finalAttempts() []AttemptRecord {
	pos := make(map[string]int)
	var finals []AttemptRecord
	for _, r := range t.records {
		if i, ok := pos[r.QuestionID]; ok {
			if r.AttemptNumber >= finals[i].AttemptNumber {
				finals[i] = r
			}
			continue
		}
		pos[r.QuestionID] = len(finals)
		finals = append(finals, r)
	}
	return finals
}

// DistinctQuestions is the number of questions with at least one record.
func (t Tracker) DistinctQuestions() int {
	return len(t.finalAttempts())
}

// CorrectQuestions counts questions whose final attempt is correct. Each
// question counts at most once regardless of retries.
func (t Tracker) CorrectQuestions() int {
	n := 0
	for _, r := range t.finalAttempts() {
		if r.IsCorrect {
			n++
		}
	}
	return n
}

// Accuracy is CorrectQuestions / DistinctQuestions, or 0 with no records.
func (t Tracker) Accuracy() float64 {
	distinct := t.DistinctQuestions()
	if distinct == 0 {
		return 0
	}
	return float64(t.CorrectQuestions()) / float64(distinct)
}

// MeanResponseTime averages the response time of every record, failed
// attempts included.
func (t Tracker) MeanResponseTime() time.Duration {
	if len(t.records) == 0 {
		return 0
	}
	var total time.Duration
	for _, r := range t.records {
		total += r.ResponseTime
	}
	return total / time.Duration(len(t.records))
}

// MeanResponseSeconds is MeanResponseTime in seconds.
func (t Tracker) MeanResponseSeconds() float64 {
	return t.MeanResponseTime().Seconds()
}

// ScoreWeightedTotal sums the score weight of weighted records.
func (t Tracker) ScoreWeightedTotal() float64 {
	var total float64
	for _, r := range t.records {
		if r.Weighted {
			total += r.ScoreWeight
		}
	}
	return total
}
