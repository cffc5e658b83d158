package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 800, cfg.Canvas.Width)
	require.Equal(t, 988, cfg.Canvas.Height)
	require.Equal(t, 1024, cfg.Canvas.FinalHeight)
	require.Equal(t, 8.0, cfg.Axis.FontSize)
	require.Equal(t, 1, cfg.Axis.TickInterval)
	require.Equal(t, 3, cfg.CalibrationBar.Divisions)
	require.Equal(t, 1, cfg.CalibrationBar.Decimals)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hyperstack.yaml")

	cfg := DefaultConfig()
	cfg.Canvas.Width = 640
	cfg.Axis.TickInterval = 2
	cfg.Raster.Smooth = false
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("axis:\n  fontSize: 12\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 12.0, cfg.Axis.FontSize)
	require.Equal(t, 800, cfg.Canvas.Width)
	require.Equal(t, "white", cfg.Axis.LabelColor)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"tick interval": "axis:\n  tickInterval: 0\n",
		"canvas":        "canvas:\n  width: 0\n",
		"final height":  "canvas:\n  height: 1100\n",
		"divisions":     "calibrationBar:\n  divisions: 1\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			_, err := LoadConfig(path)
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("canvas: [1, 2\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, CreateDefaultConfigFile(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), loaded)
}
