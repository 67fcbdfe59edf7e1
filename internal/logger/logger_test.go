package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferLoggerCaptures(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("sampled %d processes", 42)
	l.Info("dashboard started")
	l.Warn("disk %s unreadable", "/mnt/backup")
	l.Error("speed test failed: %v", "timeout")

	assert.Len(t, l.Messages, 4)
	assert.Equal(t, "debug", l.Messages[0].Level)
	assert.Equal(t, "sampled 42 processes", l.Messages[0].Message)
	assert.Equal(t, "disk /mnt/backup unreadable", l.Messages[2].Message)
}

func TestBufferLoggerHasLevel(t *testing.T) {
	l := NewBufferLogger()
	l.Warn("something")

	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))
}

func TestBufferLoggerClear(t *testing.T) {
	l := NewBufferLogger()
	l.Info("one")
	l.Info("two")
	l.Clear()

	assert.Empty(t, l.Messages)
}

func TestNoopLoggerDiscards(t *testing.T) {
	l := Noop()

	// Should not panic and produce no observable output
	l.Debug("debug %d", 1)
	l.Info("info")
	l.Warn("warn")
	l.Error("error")
}

func TestSetDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	buf := NewBufferLogger()
	SetDefault(buf)

	Default().Info("routed to buffer")
	assert.Len(t, buf.Messages, 1)
}
