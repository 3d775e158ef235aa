// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"career-assessment-workers/internal/common/config"
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/common/metrics"
	"career-assessment-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// HandlerFunc is the signature every job handler exposes.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// StartWorker opens a job worker for taskType. It returns nil when the
// worker is disabled.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler HandlerFunc, obs *observability.Observability, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(Instrument(taskType, handler, obs))).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jobWorker
}

// Instrument wraps a handler with active-job, duration and outcome metrics.
// A job counts as failed when the handler issued a fail or throw-error
// command.
func Instrument(taskType string, handler HandlerFunc, obs *observability.Observability) HandlerFunc {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer active.Dec()

		tracked := &outcomeClient{JobClient: client}
		handler(tracked, job)

		elapsed := time.Since(start)
		metrics.ObserveJob(taskType, tracked.errorCode(), elapsed)
		status := observability.StatusCompleted
		if tracked.failed {
			status = observability.StatusFailed
		}
		obs.RecordJob(context.Background(), taskType, elapsed, status)
	}
}

type outcomeClient struct {
	worker.JobClient
	failed bool
	code   string
}

func (c *outcomeClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	c.failed = true
	if c.code == "" {
		c.code = "JOB_FAILED"
	}
	return c.JobClient.NewFailJobCommand()
}

func (c *outcomeClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	c.failed = true
	c.code = "BPMN_ERROR"
	return c.JobClient.NewThrowErrorCommand()
}

func (c *outcomeClient) errorCode() string {
	if !c.failed {
		return ""
	}
	return c.code
}
