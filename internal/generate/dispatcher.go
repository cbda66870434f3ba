package generate

import (
	"context"
	"sync"
	"time"

	"github.com/msanchezgrice/vibecockpit-sub001/internal/logger"
	"github.com/msanchezgrice/vibecockpit-sub001/internal/model"
)

const generateTimeout = 2 * time.Minute

// Dispatcher reacts to project status transitions by enqueueing generation
// jobs for a background worker. Delivery is at-most-once: the enqueue is
// fire-and-forget, failures are logged and never surfaced to the caller
// that changed the status.
type Dispatcher struct {
	generator *Generator
	queue     chan string
	wg        sync.WaitGroup

	closeOnce sync.Once
}

// NewDispatcher creates a dispatcher with the given queue capacity and
// starts its worker.
func NewDispatcher(g *Generator, capacity int) *Dispatcher {
	if capacity <= 0 {
		capacity = 16
	}

	d := &Dispatcher{
		generator: g,
		queue:     make(chan string, capacity),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// Notify enqueues a generation job when the status change enters
// prep_launch. Re-saving prep_launch does not re-fire. If the queue is
// full the job is dropped with a warning.
func (d *Dispatcher) Notify(projectID string, prev, next model.Status) {
	if !model.EntersPrepLaunch(prev, next) {
		return
	}

	select {
	case d.queue <- projectID:
		logger.Info("Queued checklist generation",
			logger.F("project_id", projectID),
			logger.F("from", prev),
			logger.F("to", next))
	default:
		logger.Warn("Generation queue full, dropping job",
			logger.F("project_id", projectID))
	}
}

// run drains the queue until Close
func (d *Dispatcher) run() {
	defer d.wg.Done()

	for projectID := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		if _, err := d.generator.Generate(ctx, projectID); err != nil {
			// The project stays in prep_launch with no items; the UI
			// surfaces that state and offers a manual re-trigger.
			logger.Warn("Checklist generation failed",
				logger.F("project_id", projectID),
				logger.F("error", err))
		}
		cancel()
	}
}

// Close stops accepting jobs and waits for in-flight generation to finish
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}
