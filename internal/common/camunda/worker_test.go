package camunda

import (
	"context"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// nopJobClient hands out nil commands; the handlers below never send them.
type nopJobClient struct{}

func (nopJobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 { return nil }
func (nopJobClient) NewFailJobCommand() commands.FailJobCommandStep1 { return nil }
func (nopJobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 { return nil }

type recordedJob struct {
	taskType string
	status   string
	duration time.Duration
}

type recordingObserver struct {
	tracer    trace.Tracer
	processed []recordedJob
	durations []recordedJob
}

func newRecordingObserver() (*recordingObserver, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return &recordingObserver{tracer: tp.Tracer("test")}, sr
}

func (o *recordingObserver) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *recordingObserver) RecordJobProcessed(_ context.Context, taskType, status string) {
	o.processed = append(o.processed, recordedJob{taskType: taskType, status: status})
}

func (o *recordingObserver) RecordJobDuration(_ context.Context, taskType string, d time.Duration, status string) {
	o.durations = append(o.durations, recordedJob{taskType: taskType, status: status, duration: d})
}

func testJob(key int64) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: key, Type: "recommend-schemes", ProcessInstanceKey: 7}}
}

func TestInstrument_RecordsOutcome(t *testing.T) {
	tests := []struct {
		name      string
		handler   HandlerFunc
		status    string
		spanError bool
	}{
		{"complete", func(c worker.JobClient, _ entities.Job) { c.NewCompleteJobCommand() }, JobStatusCompleted, false},
		{"fail", func(c worker.JobClient, _ entities.Job) { c.NewFailJobCommand() }, JobStatusFailed, true},
		{"bpmn error", func(c worker.JobClient, _ entities.Job) { c.NewThrowErrorCommand() }, JobStatusError, false},
		{"no command", func(worker.JobClient, entities.Job) {}, JobStatusUnhandled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, sr := newRecordingObserver()

			instrument("recommend-schemes", obs, tt.handler)(nopJobClient{}, testJob(42))

			require.Len(t, obs.processed, 1)
			assert.Equal(t, recordedJob{taskType: "recommend-schemes", status: tt.status}, obs.processed[0])
			require.Len(t, obs.durations, 1)
			assert.Equal(t, tt.status, obs.durations[0].status)
			assert.GreaterOrEqual(t, obs.durations[0].duration, time.Duration(0))

			spans := sr.Ended()
			require.Len(t, spans, 1)
			span := spans[0]
			assert.Equal(t, "job recommend-schemes", span.Name())
			assert.Contains(t, span.Attributes(), attribute.Int64("job_key", 42))
			assert.Contains(t, span.Attributes(), attribute.Int64("process_instance_key", 7))
			assert.Contains(t, span.Attributes(), attribute.String("status", tt.status))
			if tt.spanError {
				assert.Equal(t, codes.Error, span.Status().Code)
			} else {
				assert.NotEqual(t, codes.Error, span.Status().Code)
			}
		})
	}
}

func TestInstrument_LastCommandWins(t *testing.T) {
	obs, _ := newRecordingObserver()
	handler := func(c worker.JobClient, _ entities.Job) {
		c.NewCompleteJobCommand()
		c.NewFailJobCommand()
	}

	instrument("track-application", obs, handler)(nopJobClient{}, testJob(1))

	require.Len(t, obs.processed, 1)
	assert.Equal(t, JobStatusFailed, obs.processed[0].status)
}

func TestInstrument_NilObserver(t *testing.T) {
	var called bool
	handler := func(c worker.JobClient, _ entities.Job) {
		called = true
		c.NewCompleteJobCommand()
	}

	assert.NotPanics(t, func() {
		instrument("validate-profile", nil, handler)(nopJobClient{}, testJob(3))
	})
	assert.True(t, called)
}
