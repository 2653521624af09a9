package notify

import (
	"bytes"
	"testing"

	"gatesim/internal/service"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConsoleNotify(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, nil)

	c.Notify(service.KindSuccess, "Saved the simulation default")
	c.Notify(service.KindError, "simulation not found: nope")

	assert.Equal(t, "✓ Saved the simulation default\n✗ simulation not found: nope\n", buf.String())
}

func TestConsoleLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	var buf bytes.Buffer
	c := NewConsole(&buf, zap.New(core))

	c.Notify(service.KindError, "boom")

	entries := logs.FilterMessage("error notification").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "boom", entries[0].ContextMap()["message"])
		assert.Equal(t, "notify", entries[0].LoggerName)
	}
}
