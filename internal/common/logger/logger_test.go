package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestZapWrapper_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "sync-application-records"})

	log.WithError(errors.New("disk full")).Warn("persist failed", map[string]interface{}{
		"recordCount": 3,
		"cause":       errors.New("io"),
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "persist failed", entries[0].Message)
		assert.Equal(t, "sync-application-records", ctx["taskType"])
		assert.Equal(t, "disk full", ctx["error"])
		assert.Equal(t, "io", ctx["cause"])
		assert.EqualValues(t, 3, ctx["recordCount"])
	}
}

func TestNew_BuildsLogger(t *testing.T) {
	l, err := New("debug", "json", "stderr")
	assert.NoError(t, err)
	assert.NotNil(t, l)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
