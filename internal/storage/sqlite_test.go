package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetReport(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := &Report{
		ID:              "r-1",
		CreatedAt:       time.Now().UTC(),
		Mode:            "scout",
		TemplateID:      "pro_skater",
		ReportType:      "pro_skater",
		Subject:         "Artyom Volkov",
		Prompt:          "assembled prompt",
		Content:         "## Player Overview\n...",
		Valid:           false,
		Warnings:        []string{"no CONFIDENCE tags found"},
		MissingSections: []string{"Projection"},
	}
	require.NoError(t, store.SaveReport(ctx, report))

	got, err := store.GetReport(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, report.Subject, got.Subject)
	assert.Equal(t, report.Warnings, got.Warnings)
	assert.Equal(t, report.MissingSections, got.MissingSections)
	assert.False(t, got.Valid)
}

func TestSaveReport_UpsertsOnID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := &Report{ID: "r-1", CreatedAt: time.Now().UTC(), Mode: "scout", Content: "v1"}
	require.NoError(t, store.SaveReport(ctx, report))

	report.Content = "v2"
	report.Valid = true
	require.NoError(t, store.SaveReport(ctx, report))

	got, err := store.GetReport(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)
	assert.True(t, got.Valid)

	reports, err := store.ListReports(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestJobLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &Job{ID: "j-1", CreatedAt: time.Now().UTC().Add(-time.Minute), Mode: "scout", Subject: "A"}
	second := &Job{ID: "j-2", Mode: "coach", Subject: "B"}
	require.NoError(t, store.EnqueueJob(ctx, first))
	require.NoError(t, store.EnqueueJob(ctx, second))

	claimed, err := store.ClaimNextJob(ctx)
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, "j-1", claimed.ID, "oldest job claims first")
	assert.Equal(t, JobRunning, claimed.Status)

	require.NoError(t, store.CompleteJob(ctx, claimed.ID, "r-9"))
	done, err := store.GetJob(ctx, claimed.ID)
	require.NoError(t, err)
	assert.Equal(t, JobDone, done.Status)
	assert.Equal(t, "r-9", done.ReportID)

	claimed, err = store.ClaimNextJob(ctx)
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, "j-2", claimed.ID)

	require.NoError(t, store.FailJob(ctx, claimed.ID, assert.AnError))
	failed, err := store.GetJob(ctx, claimed.ID)
	require.NoError(t, err)
	assert.Equal(t, JobFailed, failed.Status)
	assert.NotEmpty(t, failed.Error)
}

func TestClaimNextJob_EmptyQueue(t *testing.T) {
	store := newTestStore(t)

	job, err := store.ClaimNextJob(context.Background())
	require.NoError(t, err)
	assert.Nil(t, job)
}
