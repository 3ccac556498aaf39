package main

import (
	"errors"
	"fractal-renderer/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseJob(t *testing.T) {
	job, err := parseJob([]string{"j.in", "j.pgm", "m.in", "m.pgm", "8"})
	require.NoError(t, err)
	assert.Equal(t, domain.Job{
		JuliaInput:       "j.in",
		JuliaOutput:      "j.pgm",
		MandelbrotInput:  "m.in",
		MandelbrotOutput: "m.pgm",
		Workers:          8,
	}, job)
}

func TestParseJobUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"j.in", "j.pgm", "m.in", "m.pgm"},
		{"j.in", "j.pgm", "m.in", "m.pgm", "zero"},
		{"j.in", "j.pgm", "m.in", "m.pgm", "0"},
		{"j.in", "j.pgm", "m.in", "m.pgm", "-3"},
	} {
		_, err := parseJob(args)
		assert.ErrorIs(t, err, domain.ErrUsage, "%v", args)
	}
}

func TestInitLoggerLevels(t *testing.T) {
	for level, enabled := range map[string]bool{"debug": true, "info": false, "warn": false, "error": false} {
		logger := initLogger(level)
		require.NotNil(t, logger)
		assert.Equal(t, enabled, logger.Core().Enabled(-1), level)
	}
}

func TestExitCode(t *testing.T) {
	failed := &domain.RunReport{RunID: "r1", OutputErr: errors.New("write julia.pgm: disk full")}
	clean := &domain.RunReport{RunID: "r2"}

	for name, tc := range map[string]struct {
		report *domain.RunReport
		strict bool
		code   int
		level  zapcore.Level
	}{
		"clean lenient":  {clean, false, 0, zapcore.InfoLevel},
		"clean strict":   {clean, true, 0, zapcore.InfoLevel},
		"output lenient": {failed, false, 0, zapcore.WarnLevel},
		"output strict":  {failed, true, 1, zapcore.ErrorLevel},
	} {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)

			assert.Equal(t, tc.code, exitCode(zap.New(core), tc.report, tc.strict))
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tc.level, logs.All()[0].Level)
		})
	}
}
