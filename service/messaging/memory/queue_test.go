package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testPayload struct {
	ID    string
	Count int
}

func TestQueue(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx := context.Background()
	payload := testPayload{ID: "test-1", Count: 1}

	assert.NoError(t, queue.Publish(ctx, &payload))
	assert.Equal(t, 1, queue.Size())

	// payload is copied on publish
	payload.Count = 2

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, message.ID())
	assert.Equal(t, 0, queue.Size())
	assert.EqualValues(t, &testPayload{ID: "test-1", Count: 1}, message.T())

	assert.NoError(t, message.Ack())
	assert.ErrorIs(t, message.Ack(), ErrProcessed)
	assert.ErrorIs(t, message.Nack(nil), ErrProcessed)
	assert.Error(t, queue.Publish(ctx, nil))
}

func TestQueueRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 2
	queue := NewQueue[testPayload](config)
	ctx := context.Background()

	assert.NoError(t, queue.Publish(ctx, &testPayload{ID: "retry"}))
	cause := errors.New("failed")
	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		message, err := queue.Consume(ctx)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, attempt, message.(*Message[testPayload]).Attempt())
		assert.NoError(t, message.Nack(cause))
	}
	assert.Equal(t, 0, queue.Size())
	assert.EqualValues(t, []*testPayload{{ID: "retry"}}, queue.DeadLetters())
}

func TestQueueConsumeCancelled(t *testing.T) {
	queue := NewQueue[testPayload](Config{})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	assert.ErrorIs(t, queue.Publish(cancelled, &testPayload{}), context.Canceled)
}

func TestQueueConcurrency(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	producers, perProducer := 5, 10
	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(producer int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				assert.NoError(t, queue.Publish(ctx, &testPayload{ID: fmt.Sprintf("p%d-m%d", producer, j)}))
			}
		}(i)
	}

	seen := map[string]bool{}
	for i := 0; i < producers*perProducer; i++ {
		message, err := queue.Consume(ctx)
		if !assert.NoError(t, err) {
			return
		}
		seen[message.T().ID] = true
		assert.NoError(t, message.Ack())
	}
	wg.Wait()
	assert.Len(t, seen, producers*perProducer)
}
