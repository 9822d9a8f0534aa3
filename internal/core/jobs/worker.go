package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrNoJobsAvailable is returned when no jobs are available
var ErrNoJobsAvailable = fmt.Errorf("no jobs available")

// Worker processes jobs from a queue
type Worker struct {
	queue    *Queue
	config   WorkerConfig
	handlers map[string]JobHandler
	mu       sync.RWMutex
	stopped  bool
	wg       sync.WaitGroup
}

// NewWorker creates a new job worker
func NewWorker(queue *Queue, config WorkerConfig) *Worker {
	return &Worker{
		queue:    queue,
		config:   config,
		handlers: make(map[string]JobHandler),
	}
}

// RegisterHandler registers a job handler for a specific job type
func (w *Worker) RegisterHandler(handler JobHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[handler.GetType()] = handler
	log.Printf("✅ Registered job handler: %s", handler.GetType())
}

// Start starts the worker goroutines
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("worker is stopped, cannot restart")
	}
	w.mu.Unlock()

	log.Printf("🚀 Starting job worker for queue '%s' with %d workers", w.config.Queue, w.config.Concurrency)

	for i := 0; i < w.config.Concurrency; i++ {
		w.wg.Add(1)
		go w.runWorker(ctx, i+1)
	}
	return nil
}

// Stop gracefully stops the worker and waits for in-flight jobs
func (w *Worker) Stop() {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()

	log.Printf("🛑 Stopping job worker for queue '%s'...", w.config.Queue)
	w.wg.Wait()
	log.Printf("✅ Job worker stopped")
}

func (w *Worker) runWorker(ctx context.Context, workerID int) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker #%d stopping due to context cancellation", workerID)
			return

		case <-ticker.C:
			w.mu.RLock()
			if w.stopped {
				w.mu.RUnlock()
				return
			}
			w.mu.RUnlock()

			if err := w.processNextJob(ctx, workerID); err != nil && err != ErrNoJobsAvailable {
				log.Printf("⚠️ Worker #%d error: %v", workerID, err)
			}
		}
	}
}

// processNextJob claims and runs the next available job
func (w *Worker) processNextJob(ctx context.Context, workerID int) error {
	job, err := w.queue.Dequeue(ctx, w.config.Queue)
	if err != nil {
		return fmt.Errorf("failed to dequeue job: %w", err)
	}
	if job == nil {
		return ErrNoJobsAvailable
	}

	log.Printf("🔨 Worker #%d processing job %s (type: %s, attempt: %d)", workerID, job.ID, job.Type, job.Attempts)

	w.mu.RLock()
	handler, exists := w.handlers[job.Type]
	w.mu.RUnlock()

	if !exists {
		w.queue.MarkFailed(ctx, job.ID, fmt.Errorf("no handler registered for job type: %s", job.Type))
		return nil
	}

	jobCtx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	startTime := time.Now()
	err = handler.Handle(jobCtx, job)
	duration := time.Since(startTime)

	if err != nil {
		log.Printf("❌ Worker #%d: job %s failed after %v: %v", workerID, job.ID, duration, err)
		if markErr := w.queue.MarkFailed(ctx, job.ID, err); markErr != nil {
			log.Printf("⚠️ Worker #%d: failed to mark job as failed: %v", workerID, markErr)
		}
		return nil
	}

	log.Printf("✅ Worker #%d: job %s completed in %v", workerID, job.ID, duration)
	if err := w.queue.MarkCompleted(ctx, job.ID, nil); err != nil {
		log.Printf("⚠️ Worker #%d: failed to mark job as completed: %v", workerID, err)
	}
	return nil
}
