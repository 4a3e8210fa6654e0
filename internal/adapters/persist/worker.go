package persist

import (
	"context"

	"github.com/kou-isk/youcoder/internal/domain/model"
	"github.com/kou-isk/youcoder/pkg/logger"
	"github.com/kou-isk/youcoder/pkg/metrics"
)

// Saver runs one save through the storage fallback chain. It reports whether
// the data landed somewhere; with a terminal memory tier that is always true
// once the chain is reached.
type Saver interface {
	Save(ctx context.Context, videoID string, actions []model.Action) bool
}

// Worker drains the save queue with a single goroutine. One worker is
// deliberate: it preserves the serialized-mutation guarantee the tracker
// relies on, so two saves for the same video never interleave.
type Worker struct {
	queue *Queue
	saver Saver

	done   chan struct{}
	logger logger.Logger
}

// NewWorker wires a queue to a saver.
func NewWorker(queue *Queue, saver Saver) *Worker {
	return &Worker{
		queue:  queue,
		saver:  saver,
		done:   make(chan struct{}),
		logger: logger.Get().Named("persist"),
	}
}

// Run processes save requests until the queue closes or ctx is canceled.
// An in-flight save always runs its full fallback chain to completion; there
// is no cancellation of a started save.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-w.queue.Dequeue():
			if !ok {
				return
			}
			w.saver.Save(context.WithoutCancel(ctx), r.VideoID, r.Actions)
			metrics.UpdateSaveQueueDepth(w.queue.Len())
		}
	}
}

// Shutdown closes the queue and waits for the worker to finish draining, or
// for ctx to expire.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.queue.Close()
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "persist worker shutdown timed out")
		return ctx.Err()
	}
}

// Scheduler adapts the queue to the tracker's fire-and-forget interface.
type Scheduler struct {
	queue  *Queue
	logger logger.Logger
}

// NewScheduler wraps a queue as a tracker.SaveScheduler.
func NewScheduler(queue *Queue) *Scheduler {
	return &Scheduler{
		queue:  queue,
		logger: logger.Get().Named("persist"),
	}
}

// Schedule enqueues a save request without blocking the mutating caller.
// A full queue drops the request with a warning; the next mutation's save
// carries the full timeline anyway.
func (s *Scheduler) Schedule(videoID string, actions []model.Action) {
	if !s.queue.Enqueue(Request{VideoID: videoID, Actions: actions}) {
		s.logger.Warn(context.Background(), "save queue full, dropping request",
			logger.String("videoID", videoID),
		)
	}
}
