package assessment

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// Ack is the collaborator's confirmation for one record.
type Ack struct {
	// Reference is an opaque receipt, e.g. the server-assigned id.
	Reference  string
	AcceptedAt time.Time
}

// SubmitFunc dispatches one record. Retrying transient failures is the
// collaborator's concern; the coordinator calls it exactly once per record.
type SubmitFunc func(ctx context.Context, rec AttemptRecord) (Ack, error)

// Success pairs a record with its acknowledgement.
type Success struct {
	Record AttemptRecord
	Ack    Ack
}

// Failure pairs a record with the error its dispatch returned. Err is a
// *TransportError.
type Failure struct {
	Record AttemptRecord
	Err    error
}

// Report is the outcome of a batch submission. Every submitted record is in
// exactly one of Succeeded or Failed, both in original submission order.
type Report struct {
	Succeeded []Success
	Failed    []Failure
}

// OK reports whether every record was accepted.
func (r Report) OK() bool {
	return len(r.Failed) == 0
}

// Total is the number of records dispatched.
func (r Report) Total() int {
	return len(r.Succeeded) + len(r.Failed)
}

// SucceededKeys returns the set of accepted records.
func (r Report) SucceededKeys() map[RecordKey]Ack {
	keys := make(map[RecordKey]Ack, len(r.Succeeded))
	for _, s := range r.Succeeded {
		keys[s.Record.Key()] = s.Ack
	}
	return keys
}

// FailedRecords returns the records that were not accepted.
func (r Report) FailedRecords() []AttemptRecord {
	out := make([]AttemptRecord, len(r.Failed))
	for i, f := range r.Failed {
		out[i] = f.Record
	}
	return out
}

// Err joins every failure, or returns nil when all records succeeded.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f.Err
	}
	return errors.Join(errs...)
}

// DefaultConcurrency bounds the number of in-flight dispatches.
const DefaultConcurrency = 4

// Coordinator dispatches committed records through a SubmitFunc.
type Coordinator struct {
	concurrency int
}

// NewCoordinator returns a Coordinator running at most concurrency
// dispatches at once. Values below 1 use DefaultConcurrency.
func NewCoordinator(concurrency int) *Coordinator {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Coordinator{concurrency: concurrency}
}

// Submit dispatches every record exactly once. A failing record never stops
// the others, and failed records are not retried.
func (c *Coordinator) Submit(ctx context.Context, records []AttemptRecord, submit SubmitFunc) Report {
	type outcome struct {
		ack Ack
		err error
	}
	outcomes := make([]outcome, len(records))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, rec := range records {
		g.Go(func() error {
			ack, err := submit(ctx, rec)
			outcomes[i] = outcome{ack: ack, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var report Report
	for i, rec := range records {
		o := outcomes[i]
		if o.err != nil {
			report.Failed = append(report.Failed, Failure{
				Record: rec,
				Err:    &TransportError{Key: rec.Key(), Err: o.err},
			})
			continue
		}
		report.Succeeded = append(report.Succeeded, Success{Record: rec, Ack: o.ack})
	}
	return report
}

// SubmitSession submits the records of a completed session.
func (c *Coordinator) SubmitSession(ctx context.Context, s *Session, submit SubmitFunc) (Report, error) {
	if s.Phase() != PhaseCompleted {
		return Report{}, ErrNotCompleted
	}
	return c.Submit(ctx, s.Records(), submit), nil
}
