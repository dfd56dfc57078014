package tvinput

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	logger().Debug("hello")
	require.Contains(t, buf.String(), "component=tvinput")
	require.Contains(t, buf.String(), "msg=hello")

	SetLogger(nil)
	require.NotPanics(t, func() { logger().Warn("dropped") })
}

func TestResultStrings(t *testing.T) {
	require.Equal(t, "Rejected", Rejected.String())
	require.Equal(t, "Accepted", Accepted.String())
	require.Equal(t, "Ignored", Ignored.String())
	require.Equal(t, "ready", PollReady.String())
}
