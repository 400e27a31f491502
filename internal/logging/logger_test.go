package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type countHook struct{ n map[zerolog.Level]int }

func (h *countHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) { h.n[level]++ }

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"bogus":   zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range tests {
		require.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestInitJSONComponentAndHooks(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	hook := &countHook{n: map[zerolog.Level]int{}}
	Init(Config{Level: "debug", Format: "json", Output: &buf, Hooks: []zerolog.Hook{hook}})

	l := Component("poller")
	l.Error().Str("endpoint", "http://x").Msg("poll failed")
	l.Debug().Msg("tick")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	require.Equal(t, "poller", entry["component"])
	require.Equal(t, "error", entry["level"])
	require.Equal(t, "poll failed", entry["message"])

	require.Equal(t, 1, hook.n[zerolog.ErrorLevel])
	require.Equal(t, 1, hook.n[zerolog.DebugLevel])
}

func TestInitRespectsLevel(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	Init(Config{Level: "error", Format: "json", Output: &buf})
	Logger.Info().Msg("hidden")
	require.Zero(t, buf.Len())
}

func TestComponentOf(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	l := ComponentOf(&base, "renderer")
	l.Error().Msg("table missing")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "renderer", entry["component"])

	nop := ComponentOf(nil, "renderer")
	require.Equal(t, zerolog.Disabled, nop.GetLevel())
}
