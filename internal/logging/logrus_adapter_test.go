package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newBufferedLogger(level logrus.Level) (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logrusLogger := logrus.New()
	logrusLogger.SetOutput(buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	})
	return logrusLogger, buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
		want   logrus.Level
	}{
		{"debug text", "debug", "text", logrus.DebugLevel},
		{"info json", "info", "json", logrus.InfoLevel},
		{"upper case level", "WARN", "text", logrus.WarnLevel},
		{"invalid level falls back to info", "loud", "text", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			adapter, ok := logger.(*LogrusAdapter)
			assert.True(t, ok)
			assert.Equal(t, tt.want, adapter.logger.GetLevel())
		})
	}
}

func TestNewLogrus_JSONFormatter(t *testing.T) {
	logger := NewLogrus("info", "json")
	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestLogrusAdapter_LevelsAndFields(t *testing.T) {
	logrusLogger, buf := newBufferedLogger(logrus.DebugLevel)
	logger := NewLogrusAdapterFromLogger(logrusLogger)

	logger.Debug("loading dataset", F(FieldDataset, "sales"))
	logger.Info("rows loaded", F(FieldRows, 100))
	logger.Warn("future membership date")
	logger.Error("write failed", F(FieldOutputFile, "out.csv"))

	output := buf.String()
	assert.Contains(t, output, "level=debug")
	assert.Contains(t, output, "dataset=sales")
	assert.Contains(t, output, "rows=100")
	assert.Contains(t, output, "level=warning")
	assert.Contains(t, output, "output_file=out.csv")
}

func TestLogrusAdapter_RespectsLevel(t *testing.T) {
	logrusLogger, buf := newBufferedLogger(logrus.WarnLevel)
	logger := NewLogrusAdapterFromLogger(logrusLogger)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogrusAdapter_Chaining(t *testing.T) {
	logrusLogger, buf := newBufferedLogger(logrus.InfoLevel)
	logger := NewLogrusAdapterFromLogger(logrusLogger)

	logger.
		WithField(FieldStage, "clean").
		WithFields(F(FieldDataset, "customers")).
		WithError(errors.New("bad row")).
		Error("stage failed")

	output := buf.String()
	assert.Contains(t, output, "stage failed")
	assert.Contains(t, output, "stage=clean")
	assert.Contains(t, output, "dataset=customers")
	assert.Contains(t, output, "bad row")
}

func TestLogrusAdapter_DerivedDoesNotLeakFields(t *testing.T) {
	logrusLogger, buf := newBufferedLogger(logrus.InfoLevel)
	logger := NewLogrusAdapterFromLogger(logrusLogger)

	_ = logger.WithField("only_child", true)
	logger.Info("parent message")

	assert.NotContains(t, buf.String(), "only_child")
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	assert.NotNil(t, NewLogrusAdapterFromLogger(nil))
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}

func TestMockLogger_SharesEntriesWithChildren(t *testing.T) {
	mock := NewMockLogger()
	child := mock.WithField(FieldStage, "load").WithError(errors.New("boom"))

	mock.Info("root")
	child.Warn("child", F(FieldCount, 3))

	entries := mock.GetEntries()
	assert.Len(t, entries, 2)
	assert.True(t, mock.HasEntry("WARN", "child"))
	assert.True(t, mock.HasEntryContaining("INFO", "ro"))

	warn := mock.GetEntriesByLevel("WARN")[0]
	assert.EqualError(t, warn.Error, "boom")
	stage, ok := warn.FieldValue(FieldStage)
	assert.True(t, ok)
	assert.Equal(t, "load", stage)
	count, ok := warn.FieldValue(FieldCount)
	assert.True(t, ok)
	assert.Equal(t, 3, count)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}
