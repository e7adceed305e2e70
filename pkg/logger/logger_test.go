package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appctx "procurement/internal/core/context"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &Logger{zap.New(core).Sugar()}, logs
}

func TestFromContext_AddsRequestFields(t *testing.T) {
	base, logs := observed()

	ctx := appctx.WithTrace(context.Background(), &appctx.TraceContext{TraceID: "t-1", RequestID: "r-1"})
	ctx = appctx.WithUser(ctx, &appctx.UserContext{UserID: "u-1"})
	ctx = WithLogger(ctx, base)

	Info(ctx, "acquisition created", "provider", "Acme")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "t-1", fields[FieldTraceID])
	assert.Equal(t, "r-1", fields[FieldRequestID])
	assert.Equal(t, "u-1", fields[FieldUserID])
	assert.Equal(t, "Acme", fields["provider"])
}

func TestWithContext_NoRequestFields(t *testing.T) {
	base, logs := observed()

	base.WithContext(context.Background()).Infow("startup")

	require.Equal(t, 1, logs.Len())
	assert.Empty(t, logs.All()[0].ContextMap())
}

func TestWithAcquisitionAndComponent(t *testing.T) {
	base, logs := observed()

	base.WithComponent("acquisition").WithAcquisition(7).Warnw("hook failed")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "acquisition", fields[FieldComponent])
	assert.EqualValues(t, 7, fields[FieldAcquisitionID])
}

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "warn", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zap.WarnLevel))
	assert.False(t, l.Desugar().Core().Enabled(zap.InfoLevel))

	l, err = New(Config{OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zap.InfoLevel))

	_, err = New(Config{Level: "loud"})
	assert.ErrorContains(t, err, "loud")
}
