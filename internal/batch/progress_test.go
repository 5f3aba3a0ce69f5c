package batch

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleProgressCallback(t *testing.T) {
	buf := new(bytes.Buffer)
	cb := NewConsoleProgressCallback(buf, "Analyzing: ").WithUpdateInterval(0)

	cb.OnStart(4)
	cb.OnProgress(2, 4)
	cb.OnProgress(4, 4)
	cb.OnComplete()

	out := buf.String()
	assert.Contains(t, out, "Analyzing: 0/4 (0.0%)")
	assert.Contains(t, out, "2/4 (50.0%)")
	assert.Contains(t, out, "4/4 (100.0%)")
	assert.Contains(t, out, "Completed in")
}

func TestConsoleProgressCallback_OnError(t *testing.T) {
	buf := new(bytes.Buffer)
	cb := NewConsoleProgressCallback(buf, "")

	cb.OnStart(1)
	cb.OnError(1, errors.New("unreadable image"))

	assert.Contains(t, buf.String(), "Error at item 1: unreadable image")
}

func TestConsoleProgressCallback_ThrottlesUpdates(t *testing.T) {
	buf := new(bytes.Buffer)
	cb := NewConsoleProgressCallback(buf, "").WithUpdateInterval(time.Hour)

	cb.OnStart(10)
	cb.OnProgress(1, 10)
	after := buf.Len()
	cb.OnProgress(2, 10)
	assert.Equal(t, after, buf.Len(), "intermediate update inside the interval is skipped")

	// The final update always draws.
	cb.OnProgress(10, 10)
	assert.Greater(t, buf.Len(), after)
}

func TestNoOpProgressCallback(t *testing.T) {
	var cb ProgressCallback = NoOpProgressCallback{}
	cb.OnStart(1)
	cb.OnProgress(1, 1)
	cb.OnError(1, errors.New("x"))
	cb.OnComplete()
}
