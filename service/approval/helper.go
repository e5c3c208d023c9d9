package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/visitgate/service/messaging"
)

// Listen starts a goroutine consuming events from queue and passing them to
// handler. An event the handler fails on is nacked, so the queue redelivers it
// until its retries run out. It returns stop; call it or cancel ctx to exit.
func Listen(ctx context.Context, queue messaging.Queue[Event], handler func(*Event) error) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		for {
			msg, err := queue.Consume(ctx)
			if err != nil {
				return
			}
			if hErr := handler(msg.T()); hErr != nil {
				_ = msg.Nack(hErr)
				continue
			}
			_ = msg.Ack()
		}
	}()
	return cancel
}

// WaitForOutcome consumes events until an outcome report arrives or timeout
// elapses. Non-outcome events are acknowledged and skipped.
func WaitForOutcome(ctx context.Context, queue messaging.Queue[Event], timeout time.Duration) (*Report, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	for {
		msg, err := queue.Consume(ctx)
		if err != nil {
			return nil, fmt.Errorf("waiting for outcome: %w", err)
		}
		event := msg.T()
		_ = msg.Ack()
		if event.Topic != TopicOutcomeReported {
			continue
		}
		report, ok := event.Data.(*Report)
		if !ok {
			return nil, fmt.Errorf("unexpected outcome payload %T", event.Data)
		}
		return report, nil
	}
}
