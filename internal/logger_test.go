package internal

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestGetLoggerIsSingleton(t *testing.T) {
	assert.Same(t, GetLogger(), GetLogger())
}

func TestLeveledLogrusFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})

	leveled := NewLeveledLogrus(l)
	leveled.Info("performing request", "method", "POST", "url", "http://engine", "dangling")

	out := buf.String()
	assert.Contains(t, out, "performing request")
	assert.Contains(t, out, "method=POST")
	assert.Contains(t, out, "url=\"http://engine\"")
	assert.NotContains(t, out, "dangling")
}

func TestLeveledLogrusRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf)
	l.SetLevel(logrus.InfoLevel)

	NewLeveledLogrus(l).Debug("retrying", "attempt", 1)

	assert.Empty(t, buf.String())
}
