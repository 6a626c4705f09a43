package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"pucksight/internal/report"
	"pucksight/internal/storage"

	"golang.org/x/sync/errgroup"
)

// Queue is the job-claiming surface of the store.
type Queue interface {
	ClaimNextJob(ctx context.Context) (*storage.Job, error)
	CompleteJob(ctx context.Context, jobID, reportID string) error
	FailJob(ctx context.Context, jobID string, cause error) error
}

// Runner executes one report generation.
type Runner interface {
	GenerateReport(ctx context.Context, p report.GenerateParams) (*storage.Report, error)
}

// Dispatcher drains the report-job queue on a bounded worker pool. A failed
// job is marked failed and never blocks the rest of the queue.
type Dispatcher struct {
	queue    Queue
	runner   Runner
	workers  int
	Interval time.Duration // poll delay when the queue is empty
}

func NewDispatcher(queue Queue, runner Runner, workers int) *Dispatcher {
	if workers <= 0 {
		workers = 2
	}
	return &Dispatcher{
		queue:    queue,
		runner:   runner,
		workers:  workers,
		Interval: 2 * time.Second,
	}
}

// Run blocks until ctx is canceled, processing jobs as they appear.
func (d *Dispatcher) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		worker := i
		g.Go(func() error {
			return d.workLoop(ctx, worker)
		})
	}
	return g.Wait()
}

func (d *Dispatcher) workLoop(ctx context.Context, worker int) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		job, err := d.queue.ClaimNextJob(ctx)
		if err != nil {
			log.Printf("⚠️ worker %d: claim failed: %v", worker, err)
			job = nil
		}
		if job == nil {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(d.Interval):
			}
			continue
		}

		d.process(ctx, worker, job)
	}
}

func (d *Dispatcher) process(ctx context.Context, worker int, job *storage.Job) {
	rec, err := d.runner.GenerateReport(ctx, report.GenerateParams{
		ExplicitMode:     job.Mode,
		TemplateID:       job.TemplateID,
		ReportType:       job.ReportType,
		Subject:          job.Subject,
		PlayerID:         job.PlayerID,
		BaseInstructions: job.BaseInstructions,
		Level:            job.Level,
		DataDepth:        job.DataDepth,
		Audience:         job.Audience,
	})
	if err != nil {
		log.Printf("⚠️ worker %d: job %s failed: %v", worker, job.ID, err)
		if failErr := d.queue.FailJob(ctx, job.ID, err); failErr != nil {
			log.Printf("⚠️ worker %d: could not mark job %s failed: %v", worker, job.ID, failErr)
		}
		return
	}

	if err := d.queue.CompleteJob(ctx, job.ID, rec.ID); err != nil {
		log.Printf("⚠️ worker %d: could not mark job %s done: %v", worker, job.ID, err)
		return
	}
	fmt.Printf("✅ job %s -> report %s (%s)\n", job.ID, rec.ID, job.Subject)
}
