package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zerolog.InfoLevel)

	l.Info("inpaint", "volume assembled", map[string]interface{}{"depth": 4})

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "inpaint", event["component"])
	assert.Equal(t, "volume assembled", event["message"])
	assert.Equal(t, float64(4), event["depth"])
	assert.Equal(t, "info", event["level"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelFor(false))

	l.Debug("dissolve", "hidden", nil)
	assert.Zero(t, buf.Len())

	l.Error("dissolve", errors.New("boom"), nil)
	assert.True(t, strings.Contains(buf.String(), "boom"))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Warn("x", "y", map[string]interface{}{"k": 1})
	})
}
