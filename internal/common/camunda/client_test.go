// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/common/metrics"
	"career-assessment-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

// ==========================
// Retry
// ==========================

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, logger.NewTestLogger(t), "dial", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, logger.NewNoOpLogger(), "dial", func(context.Context) error {
		calls++
		return errors.New("authentication failed")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, logger.NewNoOpLogger(), "dial", func(context.Context) error {
		calls++
		return errors.New("service unavailable")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, RetryConfig{MaxRetries: 5, BaseDelay: time.Hour}, logger.NewNoOpLogger(), "dial", func(context.Context) error {
		return errors.New("i/o timeout")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err      string
		expected bool
	}{
		{"dial tcp 127.0.0.1:26500: connect: connection refused", true},
		{"context deadline exceeded", true},
		{"rpc error: code = Unavailable desc = transport is closing", true},
		{"lookup zeebe: no such host", true},
		{"invalid credentials", false},
		{"pq: relation \"users\" does not exist", false},
	}

	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransient(errors.New(tt.err)))
		})
	}
}

// ==========================
// Instrument
// ==========================

type fakeJobClient struct {
	worker.JobClient
	failCalls int
}

func (f *fakeJobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	f.failCalls++
	return nil
}

func TestInstrument_RecordsOutcome(t *testing.T) {
	const taskType = "instrument-test"
	obs := observability.NewNoOp()

	ok := Instrument(taskType, func(worker.JobClient, entities.Job) {}, obs)
	ok(&fakeJobClient{}, entities.Job{})
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(taskType)))

	client := &fakeJobClient{}
	failing := Instrument(taskType, func(c worker.JobClient, _ entities.Job) {
		c.NewFailJobCommand()
	}, obs)
	failing(client, entities.Job{})

	assert.Equal(t, 1, client.failCalls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, "JOB_FAILED")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
}
