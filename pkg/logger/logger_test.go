package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContextAddsRequestFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{Logger: zap.New(core)}

	ctx := context.WithValue(context.Background(), RequestIdKey, "abc123")
	ctx = WithClientName(ctx, "test1")
	l.WithContext(ctx).Info("handled")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "abc123", fields["request_id"])
	assert.Equal(t, "test1", fields["client_name"])
}

func TestWithContextWithoutValues(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{Logger: zap.New(core)}

	l.WithContext(context.Background()).Info("bare")

	require.Equal(t, 1, logs.Len())
	assert.Empty(t, logs.All()[0].ContextMap())
}

func TestOrDefault(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	SetGlobalLogger(nil)
	assert.NotNil(t, OrDefault(nil))

	global := NewNop()
	SetGlobalLogger(global)
	assert.Same(t, global, OrDefault(nil))

	explicit := NewNop()
	assert.Same(t, explicit, OrDefault(explicit))
}

func TestNewModes(t *testing.T) {
	assert.NotNil(t, New(ProductionMode).Logger)
	assert.NotNil(t, New(DevelopmentMode).Logger)
}
