package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions("test", Options{Level: "info", Output: &buf})

	l.Debug("hidden %d", 1)
	l.Info("task %s added", "abc")
	l.Error("boom: %v", "reason")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "task abc added")
	assert.Contains(t, out, "boom: reason")
	assert.Contains(t, out, "test")
}

func TestDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions("test", Options{Level: "debug", Output: &buf})

	l.Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions("test", Options{Level: "verbose", Output: &buf})

	l.Debug("hidden")
	l.Info("visible")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.Info("a")
		l.Error("b")
		l.Debug("c")
	})
}
