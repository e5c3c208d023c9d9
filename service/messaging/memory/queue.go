package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viant/visitgate/internal/clock"
	"github.com/viant/visitgate/internal/idgen"
	"github.com/viant/visitgate/service/messaging"
)

// ErrProcessed is returned when a message is acked or nacked twice.
var ErrProcessed = errors.New("message already processed")

// Config for memory queue implementation
type Config struct {
	// MaxRetries is the number of times a nacked message is redelivered
	MaxRetries int
	// DeadLetter keeps messages that exhausted their retries
	DeadLetter bool
	// QueueBuffer is the channel capacity; Publish blocks when it is full
	QueueBuffer int
}

// DefaultConfig returns a standard configuration for memory queue
func DefaultConfig() Config {
	return Config{
		MaxRetries:  3,
		DeadLetter:  true,
		QueueBuffer: 100,
	}
}

// Message is an in-memory queue message
type Message[T any] struct {
	id        string
	payload   T
	queue     *Queue[T]
	attempt   int
	createdAt time.Time
	mu        sync.Mutex
	processed bool
	err       error
}

// ID returns message id
func (m *Message[T]) ID() string { return m.id }

// T returns the message payload
func (m *Message[T]) T() *T { return &m.payload }

// Attempt returns zero based delivery attempt
func (m *Message[T]) Attempt() int { return m.attempt }

// CreatedAt returns time message was enqueued
func (m *Message[T]) CreatedAt() time.Time { return m.createdAt }

// Err returns the error the message was last nacked with
func (m *Message[T]) Err() error { return m.err }

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return ErrProcessed
	}
	m.processed = true
	return nil
}

// Nack redelivers the message while retries remain, otherwise moves it to the
// dead letter list when enabled.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return ErrProcessed
	}
	m.processed = true
	m.err = err
	if m.attempt < m.queue.config.MaxRetries {
		next := &Message[T]{
			id:        m.id,
			payload:   m.payload,
			queue:     m.queue,
			attempt:   m.attempt + 1,
			createdAt: clock.Now(),
			err:       err,
		}
		select {
		case m.queue.messages <- next:
			return nil
		default:
			// buffer full, fall through to dead letter
		}
	}
	if m.queue.config.DeadLetter {
		m.queue.dlqMu.Lock()
		m.queue.dlq = append(m.queue.dlq, m)
		m.queue.dlqMu.Unlock()
	}
	return nil
}

// Queue implements an in-memory messaging.Queue
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config
	dlq      []*Message[T]
	dlqMu    sync.Mutex
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
	}
}

// Publish adds a copy of t to the queue
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	if t == nil {
		return errors.New("nil payload")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := &Message[T]{
		id:        idgen.New(),
		payload:   *t,
		queue:     q,
		createdAt: clock.Now(),
	}
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the current number of messages in the queue
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// DeadLetters returns payloads of messages that exhausted their retries
func (q *Queue[T]) DeadLetters() []*T {
	q.dlqMu.Lock()
	defer q.dlqMu.Unlock()
	ret := make([]*T, 0, len(q.dlq))
	for _, m := range q.dlq {
		ret = append(ret, m.T())
	}
	return ret
}

var _ messaging.Queue[any] = (*Queue[any])(nil)
