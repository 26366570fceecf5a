package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, float32(0.003), cfg.Sensitivity)
	assert.Equal(t, float32(1.35), cfg.PitchLimit)
	assert.True(t, cfg.Fullscreen)
	assert.Equal(t, "Oxy Handheld Viewer", cfg.WindowTitle)
	assert.Equal(t, 720, cfg.WindowWidth)
	assert.Equal(t, 1280, cfg.WindowHeight)
	assert.True(t, cfg.TouchEmulation)
	assert.False(t, cfg.Profiler)
	assert.Len(t, cfg.ControllerOptions(), 3)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OXY_POSE_SENSITIVITY", "0.01")
	t.Setenv("OXY_POSE_FULLSCREEN", "false")
	t.Setenv("OXY_WINDOW_TITLE", "kiosk")
	t.Setenv("OXY_PROFILER", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, float32(0.01), cfg.Sensitivity)
	assert.False(t, cfg.Fullscreen)
	assert.Equal(t, "kiosk", cfg.WindowTitle)
	assert.True(t, cfg.Profiler)
}

func TestLoadRejectsUnparsable(t *testing.T) {
	t.Setenv("OXY_WINDOW_WIDTH", "wide")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	t.Setenv("OXY_POSE_SENSITIVITY", "0")
	t.Setenv("OXY_POSE_PITCH_LIMIT", "2")
	t.Setenv("OXY_WINDOW_HEIGHT", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OXY_POSE_SENSITIVITY")
	assert.Contains(t, err.Error(), "OXY_POSE_PITCH_LIMIT")
	assert.Contains(t, err.Error(), "window size")
}

func TestLoadRejectsNonFinite(t *testing.T) {
	for _, v := range []string{"Inf", "+Inf", "-Inf", "NaN"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("OXY_POSE_SENSITIVITY", v)
			t.Setenv("OXY_POSE_PITCH_LIMIT", v)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "OXY_POSE_SENSITIVITY")
			assert.Contains(t, err.Error(), "OXY_POSE_PITCH_LIMIT")
		})
	}
}
