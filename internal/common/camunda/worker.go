// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"sync"
	"time"

	"scheme-finder/internal/common/config"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Job outcomes reported to the jobs.processed and jobs.duration instruments.
const (
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
	JobStatusError     = "bpmn_error"
	JobStatusUnhandled = "unhandled"
)

// JobObserver receives a span and the outcome of every job. It is satisfied
// by *observability.Observability.
type JobObserver interface {
	StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span)
	RecordJobProcessed(ctx context.Context, taskType, status string)
	RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string)
}

// HandlerFunc is the signature every worker's Handle method satisfies.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// Registry opens job workers and closes them together on shutdown.
type Registry struct {
	client  zbc.Client
	obs     JobObserver
	logger  logger.Logger
	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

// NewRegistry builds a registry. obs may be nil, in which case jobs only feed
// the prometheus worker_* instruments.
func NewRegistry(client zbc.Client, obs JobObserver, log logger.Logger) *Registry {
	return &Registry{
		client:  client,
		obs:     obs,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a worker for taskType unless wcfg disables it. Handlers are
// wrapped with the worker_* prometheus instruments and a span per job.
func (r *Registry) Start(taskType string, wcfg config.WorkerConfig, handler HandlerFunc) {
	if !wcfg.Enabled {
		r.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return
	}

	jw := r.client.NewJobWorker().
		JobType(taskType).
		Handler(instrument(taskType, r.obs, handler)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	r.mu.Lock()
	r.workers[taskType] = jw
	r.mu.Unlock()

	r.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
}

// Running lists the task types with an open worker.
func (r *Registry) Running() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.workers))
	for t := range r.workers {
		out = append(out, t)
	}
	return out
}

// Close stops every worker and waits for in-flight jobs.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for taskType, jw := range r.workers {
		jw.Close()
		jw.AwaitClose()
		r.logger.Info("worker stopped", map[string]interface{}{"taskType": taskType})
	}
	r.workers = make(map[string]worker.JobWorker)
}

// outcomeClient remembers which terminal command a handler asked for.
type outcomeClient struct {
	worker.JobClient
	status string
}

func (c *outcomeClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	c.status = JobStatusCompleted
	return c.JobClient.NewCompleteJobCommand()
}

func (c *outcomeClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	c.status = JobStatusFailed
	return c.JobClient.NewFailJobCommand()
}

func (c *outcomeClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	c.status = JobStatusError
	return c.JobClient.NewThrowErrorCommand()
}

func instrument(taskType string, obs JobObserver, handler HandlerFunc) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		start := time.Now()

		oc := &outcomeClient{JobClient: client, status: JobStatusUnhandled}
		ctx := context.Background()
		var span trace.Span
		if obs != nil {
			ctx, span = obs.StartSpan(ctx, "job "+taskType,
				attribute.String("task_type", taskType),
				attribute.Int64("job_key", job.GetKey()),
				attribute.Int64("process_instance_key", job.GetProcessInstanceKey()),
			)
		}

		defer func() {
			elapsed := time.Since(start)
			metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
			if obs == nil {
				return
			}
			obs.RecordJobProcessed(ctx, taskType, oc.status)
			obs.RecordJobDuration(ctx, taskType, elapsed, oc.status)
			span.SetAttributes(attribute.String("status", oc.status))
			if oc.status == JobStatusFailed || oc.status == JobStatusUnhandled {
				span.SetStatus(codes.Error, oc.status)
			}
			span.End()
		}()
		handler(oc, job)
	}
}
