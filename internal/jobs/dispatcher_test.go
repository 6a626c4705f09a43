package jobs

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"pucksight/internal/report"
	"pucksight/internal/storage"

	"github.com/stretchr/testify/assert"
)

type memQueue struct {
	mu        sync.Mutex
	pending   []*storage.Job
	completed map[string]string
	failed    map[string]string
}

func newMemQueue(jobs ...*storage.Job) *memQueue {
	return &memQueue{
		pending:   jobs,
		completed: map[string]string{},
		failed:    map[string]string{},
	}
}

func (q *memQueue) ClaimNextJob(ctx context.Context) (*storage.Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil, nil
	}
	job := q.pending[0]
	q.pending = q.pending[1:]
	return job, nil
}

func (q *memQueue) CompleteJob(ctx context.Context, jobID, reportID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.completed[jobID] = reportID
	return nil
}

func (q *memQueue) FailJob(ctx context.Context, jobID string, cause error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.failed[jobID] = cause.Error()
	return nil
}

func (q *memQueue) settled() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.completed) + len(q.failed)
}

type memRunner struct {
	mu   sync.Mutex
	seen []report.GenerateParams
}

func (r *memRunner) GenerateReport(ctx context.Context, p report.GenerateParams) (*storage.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, p)
	if p.Subject == "explode" {
		return nil, fmt.Errorf("synthetic failure")
	}
	return &storage.Report{ID: "rep-" + p.Subject}, nil
}

func TestDispatcher_DrainsQueue(t *testing.T) {
	queue := newMemQueue(
		&storage.Job{ID: "j-1", Mode: "scout", Subject: "A"},
		&storage.Job{ID: "j-2", Mode: "coach", Subject: "B"},
		&storage.Job{ID: "j-3", Mode: "analyst", Subject: "explode"},
	)
	runner := &memRunner{}

	d := NewDispatcher(queue, runner, 2)
	d.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	assert.Eventually(t, func() bool { return queue.settled() == 3 },
		2*time.Second, 10*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)

	assert.Equal(t, "rep-A", queue.completed["j-1"])
	assert.Equal(t, "rep-B", queue.completed["j-2"])
	assert.Contains(t, queue.failed["j-3"], "synthetic failure")
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	queue := newMemQueue()
	d := NewDispatcher(queue, &memRunner{}, 3)
	d.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after cancel")
	}
}

func TestNewDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(newMemQueue(), &memRunner{}, 0)
	assert.Equal(t, 2, d.workers)
}
