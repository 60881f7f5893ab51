package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-readiness-funnel/internal/common/logger"
	"ai-readiness-funnel/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

type stubHandler struct {
	err   error
	calls int
}

func (s *stubHandler) Handle(worker.JobClient, entities.Job) error {
	s.calls++
	return s.err
}

func testJob(key int64) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: key, Type: "test"}}
}

func TestInstrument_CountsOutcomes(t *testing.T) {
	const taskType = "test.instrument"
	log := logger.NewTestLogger(t)

	ok := &stubHandler{}
	Instrument(taskType, ok, log, nil)(nil, testJob(1))
	Instrument(taskType, ok, log, nil)(nil, testJob(2))

	bad := &stubHandler{err: errors.New("boom")}
	Instrument(taskType, bad, log, nil)(nil, testJob(3))

	assert.Equal(t, 2, ok.calls)
	assert.Equal(t, 1, bad.calls)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(taskType)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
}

func TestInstrument_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	Instrument("test.span", &stubHandler{err: errors.New("boom")}, logger.NewNoOpLogger(), nil)(nil, testJob(7))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "test.span", spans[0].Name())
	assert.Equal(t, trace.SpanKindConsumer, spans[0].SpanKind())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(errors.New("rpc error: code = Unavailable desc = connection refused")))
	assert.True(t, isRetryableZeebeError(errors.New("context deadline exceeded")))
	assert.False(t, isRetryableZeebeError(errors.New("Expected to find process definition with process ID 'x', but none found")))
}

func TestMapZeebeError(t *testing.T) {
	err := mapZeebeError(errors.New("process definition not found"), "create-instance:x", 0)
	assert.Contains(t, err.Error(), "PROCESS_NOT_FOUND")

	err = mapZeebeError(errors.New("code = Unavailable"), "create-instance:x", 2)
	assert.Contains(t, err.Error(), "WORKFLOW_UNAVAILABLE")
	assert.Contains(t, err.Error(), "after 3 attempts")

	err = mapZeebeError(errors.New("invalid variables"), "create-instance:x", 0)
	assert.Contains(t, err.Error(), "WORKFLOW_START_FAILED")
}

func TestExecuteWithRetry(t *testing.T) {
	c := &Client{config: &ClientConfig{RetryConfig: &RetryConfig{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
	}}}

	attempts := 0
	result, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("unavailable")
		}
		return int64(42), nil
	}, "op")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), result)
	assert.Equal(t, 3, attempts)

	attempts = 0
	_, err = c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		attempts++
		return nil, errors.New("bad request")
	}, "op")
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestBackoffCapped(t *testing.T) {
	retry := &RetryConfig{BaseDelay: time.Second, MaxDelay: 3 * time.Second}
	assert.Equal(t, time.Second, backoff(retry, 0))
	assert.Equal(t, 2*time.Second, backoff(retry, 1))
	assert.Equal(t, 3*time.Second, backoff(retry, 2))
}
