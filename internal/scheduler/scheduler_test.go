package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aristath/eurogenius/internal/modules/genetic"
	testingpkg "github.com/aristath/eurogenius/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run() error {
	j.runs.Add(1)
	return j.err
}

type fakeTrainer struct {
	err      error
	deadline bool
}

func (f *fakeTrainer) Train(ctx context.Context) (*genetic.Snapshot, error) {
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return &genetic.Snapshot{DrawCount: 42, TrainedAt: time.Now()}, nil
}

func TestScheduler_AddJob(t *testing.T) {
	s := New(zerolog.Nop())

	require.NoError(t, s.AddJob("0 0 3 * * *", &countingJob{}))
	assert.Equal(t, 1, s.Entries())

	err := s.AddJob("not a schedule", &countingJob{})
	assert.Error(t, err)
	assert.Equal(t, 1, s.Entries())
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{}

	require.NoError(t, s.AddJob("@every 1s", job))
	s.Start()
	assert.Eventually(t, func() bool { return job.runs.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
	s.Stop()
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{err: errors.New("boom")}

	assert.EqualError(t, s.RunNow(job), "boom")
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestRetrainJob(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		trainer := &fakeTrainer{}
		job := NewRetrainJob(trainer, time.Minute, zerolog.Nop())

		assert.Equal(t, "retrain_optimizer", job.Name())
		assert.NoError(t, job.Run())
		assert.True(t, trainer.deadline)
	})

	t.Run("failure is wrapped", func(t *testing.T) {
		boom := errors.New("store offline")
		job := NewRetrainJob(&fakeTrainer{err: boom}, time.Minute, zerolog.Nop())

		err := job.Run()
		assert.ErrorIs(t, err, boom)
	})
}

func TestDatabaseMaintenanceJob(t *testing.T) {
	db, cleanup := testingpkg.NewTestDB(t, "draws")
	defer cleanup()

	job := NewDatabaseMaintenanceJob(db, zerolog.Nop())
	assert.Equal(t, "database_maintenance", job.Name())
	assert.NoError(t, job.Run())

	assert.NoError(t, NewDatabaseMaintenanceJob(nil, zerolog.Nop()).Run())
}
