package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/config"
)

func TestInit_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timetable.log")
	require.NoError(t, Init(&config.LoggerConfig{Level: "info", Format: "json", OutputPath: path}, false))

	NewLogger().Infow("schedule resolved", "membership_id", 7)
	NewLogger().Debugw("hidden at info level")
	require.NoError(t, Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(raw), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "schedule resolved", rec["msg"])
	assert.Equal(t, float64(7), rec["membership_id"])
}

func TestSync_WithoutFile(t *testing.T) {
	require.NoError(t, Init(&config.LoggerConfig{Level: "info", OutputPath: "stderr"}, false))
	assert.NoError(t, Sync())
}

func TestWith_CarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(slog.New(slog.NewJSONHandler(&buf, nil))).With("rpm_id", 3)

	log.Warnw("recurrence rule unusable")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, float64(3), rec["rpm_id"])
	assert.Equal(t, "WARN", rec["level"])
}
