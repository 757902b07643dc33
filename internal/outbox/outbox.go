package outbox

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/peakspace-dev/peakspace/internal/metrics"
)

// Job is one best-effort side effect. Failures are retried, never
// surfaced to the request that enqueued them.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher accepts fan-out jobs for background delivery.
type Dispatcher interface {
	Enqueue(job Job) bool
}

// Outbox is a bounded in-memory queue with a background dispatcher.
type Outbox struct {
	jobs        chan Job
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	maxAttempts int
	backoff     time.Duration

	mu      sync.Mutex
	stopped bool
}

func New(queueSize, maxAttempts int, backoff time.Duration) *Outbox {
	ctx, cancel := context.WithCancel(context.Background())
	return &Outbox{
		jobs:        make(chan Job, queueSize),
		ctx:         ctx,
		cancel:      cancel,
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

// Start launches the dispatcher goroutine
func (o *Outbox) Start() {
	o.wg.Add(1)
	go o.dispatch()
	log.Println("Outbox dispatcher started")
}

// Stop rejects new jobs, drains the queue, and waits for the dispatcher.
// Queued jobs run with a live context during the drain; the context is
// only canceled once the queue is empty.
func (o *Outbox) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	close(o.jobs)
	o.mu.Unlock()

	o.wg.Wait()
	o.cancel()
	log.Println("Outbox dispatcher stopped")
}

// Enqueue adds a job without blocking. A full queue drops the job.
func (o *Outbox) Enqueue(job Job) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stopped {
		log.Printf("Outbox stopped, dropping job %s", job.Name)
		metrics.OutboxJobs.WithLabelValues(job.Name, "dropped").Inc()
		return false
	}

	select {
	case o.jobs <- job:
		metrics.OutboxQueueDepth.Set(float64(len(o.jobs)))
		return true
	default:
		log.Printf("Outbox queue full, dropping job %s", job.Name)
		metrics.OutboxJobs.WithLabelValues(job.Name, "dropped").Inc()
		return false
	}
}

func (o *Outbox) dispatch() {
	defer o.wg.Done()

	for job := range o.jobs {
		metrics.OutboxQueueDepth.Set(float64(len(o.jobs)))
		o.run(job)
	}
}

// run executes a job with bounded retries and linear backoff
func (o *Outbox) run(job Job) {
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		err := job.Run(o.ctx)
		if err == nil {
			metrics.OutboxJobs.WithLabelValues(job.Name, "success").Inc()
			return
		}

		log.Printf("Outbox job %s failed (attempt %d/%d): %v", job.Name, attempt, o.maxAttempts, err)
		metrics.OutboxJobs.WithLabelValues(job.Name, "failure").Inc()

		if attempt == o.maxAttempts {
			break
		}

		select {
		case <-o.ctx.Done():
			log.Printf("Outbox shutting down, abandoning job %s", job.Name)
			return
		case <-time.After(o.backoff * time.Duration(attempt)):
		}
	}

	log.Printf("Outbox job %s exhausted retries", job.Name)
	metrics.OutboxJobs.WithLabelValues(job.Name, "exhausted").Inc()
}
