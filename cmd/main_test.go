package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type syncRecorder struct {
	bytes.Buffer
	synced bool
}

func (s *syncRecorder) Sync() error {
	s.synced = true
	return nil
}

func TestExitFlushesLogger(t *testing.T) {
	code := -1
	osExit = func(c int) { code = c }
	t.Cleanup(func() { osExit = os.Exit })

	out := &syncRecorder{}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), out, zapcore.InfoLevel)
	logger := zap.New(core)

	logger.Error("load model", zap.String("path", "missing.ply"))
	exit(logger)

	assert.Equal(t, 1, code)
	assert.True(t, out.synced)
	assert.Contains(t, out.String(), "missing.ply")
}
