package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsix/g6/pkg/logger"
)

// stubJob runs a caller-provided function on a fixed schedule string.
type stubJob struct {
	name string
	run  func(ctx context.Context) error
	done chan struct{}
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return "@every 1h" }
func (j *stubJob) Run(ctx context.Context) error {
	defer close(j.done)
	return j.run(ctx)
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := New(logger.Nop())

	job := &stubJob{name: "dup", run: func(context.Context) error { return nil }, done: make(chan struct{})}
	require.NoError(t, s.AddJob(job))

	again := &stubJob{name: "dup", run: func(context.Context) error { return nil }, done: make(chan struct{})}
	assert.Error(t, s.AddJob(again))
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := New(logger.Nop())

	job := &stubJob{name: "bad", run: func(context.Context) error { return nil }, done: make(chan struct{})}
	// Break the schedule through a wrapper type.
	assert.Error(t, s.AddJob(badScheduleJob{job}))
}

type badScheduleJob struct{ Job }

func (badScheduleJob) Schedule() string { return "not a cron expression" }

func TestRunJobRecordsHistory(t *testing.T) {
	s := New(logger.Nop())

	job := &stubJob{name: "ok", run: func(context.Context) error { return nil }, done: make(chan struct{})}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("ok"))
	select {
	case <-job.done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}

	// runJob finishes writing history right after Run returns; poll briefly.
	assert.Eventually(t, func() bool {
		history, err := s.GetJobHistory("ok")
		return err == nil && len(history.Results) == 1 && history.Results[0].Success
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRunJobFailureRecorded(t *testing.T) {
	s := New(logger.Nop())

	job := &stubJob{name: "boom", run: func(context.Context) error { return errors.New("fetch failed") }, done: make(chan struct{})}
	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RunJob("boom"))
	<-job.done

	assert.Eventually(t, func() bool {
		history, err := s.GetJobHistory("boom")
		if err != nil || len(history.Results) != 1 {
			return false
		}
		r := history.Results[0]
		return !r.Success && r.Error == "fetch failed"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRunJobUnknown(t *testing.T) {
	s := New(logger.Nop())
	assert.Error(t, s.RunJob("missing"))
}

func TestGetJobStats(t *testing.T) {
	s := New(logger.Nop())

	job := &stubJob{name: "stats", run: func(context.Context) error { return nil }, done: make(chan struct{})}
	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RunJob("stats"))
	<-job.done

	assert.Eventually(t, func() bool {
		stats, ok := s.GetJobStats()["stats"]
		return ok && stats.TotalRuns == 1 && stats.SuccessCount == 1 && stats.SuccessRate == 1.0
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"stats"}, s.GetAllJobs())
}

func TestJobHistoryCapped(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "x", Success: true})
	}
	assert.Len(t, h.Results, 100)

	latest := h.GetLatestResults(10)
	assert.Len(t, latest, 10)

	assert.Equal(t, 1.0, h.GetSuccessRate())
	assert.Empty(t, h.GetFailedResults())
}
