package approval

import (
	"context"
	"errors"

	"github.com/viant/visitgate/model"
	"github.com/viant/visitgate/service/messaging"
)

// Reporter receives terminal outcomes
type Reporter interface {
	Report(ctx context.Context, r *Report) error
}

// Observer optionally receives intermediate state changes. A Reporter that
// also implements Observer is notified about resets and decisions.
type Observer interface {
	OnReset(ctx context.Context, r *StateReset) error
	OnDecision(ctx context.Context, d *Decision) error
}

// ReporterFunc adapts an onOutcome(approved, authority) callback. authority
// is nil for fallback actions and all-denied outcomes.
type ReporterFunc func(approved bool, authority *model.Authority)

// Report calls fn
func (fn ReporterFunc) Report(_ context.Context, r *Report) error {
	fn(r.Approved, r.Authority)
	return nil
}

// QueueReporter publishes resets, decisions and outcomes as events
type QueueReporter struct {
	queue   messaging.Queue[Event]
	headers map[string]string
}

// NewQueueReporter creates a reporter publishing onto queue. headers are
// copied onto every event.
func NewQueueReporter(queue messaging.Queue[Event], headers map[string]string) *QueueReporter {
	return &QueueReporter{queue: queue, headers: headers}
}

// Queue returns underlying queue
func (q *QueueReporter) Queue() messaging.Queue[Event] { return q.queue }

func (q *QueueReporter) Report(ctx context.Context, r *Report) error {
	return q.publish(ctx, TopicOutcomeReported, r)
}

func (q *QueueReporter) OnReset(ctx context.Context, r *StateReset) error {
	return q.publish(ctx, TopicStateReset, r)
}

func (q *QueueReporter) OnDecision(ctx context.Context, d *Decision) error {
	return q.publish(ctx, TopicDecisionRecorded, d)
}

func (q *QueueReporter) publish(ctx context.Context, topic string, data interface{}) error {
	event := &Event{Topic: topic, Data: data}
	if len(q.headers) > 0 {
		event.Headers = make(map[string]string, len(q.headers))
		for k, v := range q.headers {
			event.Headers[k] = v
		}
	}
	return q.queue.Publish(ctx, event)
}

// MultiReporter fans out to every reporter, joining errors
type MultiReporter []Reporter

func (m MultiReporter) Report(ctx context.Context, r *Report) error {
	var errs []error
	for _, reporter := range m {
		if reporter == nil {
			continue
		}
		if err := reporter.Report(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiReporter) OnReset(ctx context.Context, r *StateReset) error {
	var errs []error
	for _, reporter := range m {
		if observer, ok := reporter.(Observer); ok {
			if err := observer.OnReset(ctx, r); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (m MultiReporter) OnDecision(ctx context.Context, d *Decision) error {
	var errs []error
	for _, reporter := range m {
		if observer, ok := reporter.(Observer); ok {
			if err := observer.OnDecision(ctx, d); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

var (
	_ Reporter = ReporterFunc(nil)
	_ Observer = (*QueueReporter)(nil)
	_ Observer = MultiReporter(nil)
)
