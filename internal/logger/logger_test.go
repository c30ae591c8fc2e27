package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	defer func() { require.NoError(t, New("NOOP")) }()

	require.NoError(t, New("warn"))
	assert.True(t, Sugar.Desugar().Core().Enabled(zapcore.WarnLevel))
	assert.False(t, Sugar.Desugar().Core().Enabled(zapcore.InfoLevel))

	require.NoError(t, New("TEST"))
	assert.True(t, Sugar.Desugar().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, New("noop"))
	assert.False(t, Sugar.Desugar().Core().Enabled(zapcore.ErrorLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	before := Sugar
	assert.Error(t, New("chatty"))
	assert.Same(t, before, Sugar)
}

func TestWithServiceName(t *testing.T) {
	child := Sugar.WithServiceName("dispatcher")
	require.NotNil(t, child)
	assert.NotSame(t, Sugar, child)
	child.Infow("started")
	OnExit()
}
