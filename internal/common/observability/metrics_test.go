package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_RecordJob(t *testing.T) {
	o, err := New("ai-readiness-funnel-test", "test")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		o.RecordJob(context.Background(), "assessment.score", "completed", 15*time.Millisecond)
	})
	assert.NoError(t, o.Shutdown(context.Background()))
}

func TestObservability_NilSafe(t *testing.T) {
	var o *Observability
	assert.NotPanics(t, func() {
		o.RecordJob(context.Background(), "x", "failed", time.Second)
	})
	assert.NoError(t, o.Shutdown(context.Background()))
}
