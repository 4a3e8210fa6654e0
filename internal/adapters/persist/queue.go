// Package persist decouples timeline mutations from the storage fallback
// chain. Mutations enqueue a save request and return immediately; a single
// worker drains the queue so saves for one video run strictly sequentially.
package persist

import (
	"sync"

	"github.com/kou-isk/youcoder/internal/domain/model"
	"github.com/kou-isk/youcoder/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Request carries one pending save: the video and the timeline snapshot
// taken at mutation time.
type Request struct {
	VideoID string
	Actions []model.Action
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics
// for save requests.
type Queue struct {
	requests chan Request
	mu       sync.RWMutex
	closed   bool
}

// NewQueue creates a bounded in-memory save queue.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{}
	capacity := defaultQueueCapacity
	for _, opt := range opts {
		capacity = opt(capacity)
	}
	q.requests = make(chan Request, capacity)
	metrics.UpdateSaveQueueDepth(0)
	return q
}

// QueueOption adjusts queue construction.
type QueueOption func(capacity int) int

// WithCapacity bounds the number of pending save requests.
func WithCapacity(n int) QueueOption {
	return func(capacity int) int {
		if n > 0 {
			return n
		}
		return capacity
	}
}

// Enqueue adds a save request. Returns false if the queue is full or closed;
// the caller treats that as a dropped fire-and-forget save, not an error.
func (q *Queue) Enqueue(r Request) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}
	select {
	case q.requests <- r:
		metrics.UpdateSaveQueueDepth(len(q.requests))
		return true
	default:
		return false
	}
}

// Dequeue exposes the request channel for the worker. The channel is closed
// when the queue is closed.
func (q *Queue) Dequeue() <-chan Request {
	return q.requests
}

// Len returns the current number of pending requests.
func (q *Queue) Len() int {
	return len(q.requests)
}

// Close stops accepting requests and lets the worker drain what remains.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.requests)
}
