package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir(t *testing.T) {
	t.Run("linux XDG_CONFIG_HOME", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("linux only")
		}
		t.Setenv("XDG_CONFIG_HOME", "/custom/xdg")

		dir, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/custom/xdg/scoutbase", dir)
	})

	t.Run("linux home fallback", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("linux only")
		}
		t.Setenv("XDG_CONFIG_HOME", "")

		orig := platformDir.homeDir
		platformDir.homeDir = func() (string, error) { return "/home/scout", nil }
		t.Cleanup(func() { platformDir.homeDir = orig })

		dir, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/scout/.config/scoutbase", dir)
	})

	t.Run("darwin application support", func(t *testing.T) {
		if runtime.GOOS != "darwin" {
			t.Skip("darwin only")
		}
		dir, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Contains(t, dir, filepath.Join("Library", "Application Support", "scoutbase"))
	})
}

func TestResolveConfigDir(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/from/env")

		dir, err := ResolveConfigDir("/from/flag")
		require.NoError(t, err)
		assert.Equal(t, "/from/flag", dir)
	})

	t.Run("env over default", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/from/env")

		dir, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, "/from/env", dir)
	})

	t.Run("relative flag made absolute", func(t *testing.T) {
		dir, err := ResolveConfigDir("relative/dir")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(dir))
	})
}

func TestResolveDataDir(t *testing.T) {
	t.Run("flag wins over everything", func(t *testing.T) {
		t.Setenv(EnvDataDir, "/from/env")

		dir, err := ResolveDataDir("/from/flag", "/from/config")
		require.NoError(t, err)
		assert.Equal(t, "/from/flag", dir)
	})

	t.Run("config value over env", func(t *testing.T) {
		t.Setenv(EnvDataDir, "/from/env")

		dir, err := ResolveDataDir("", "/from/config")
		require.NoError(t, err)
		assert.Equal(t, "/from/config", dir)
	})

	t.Run("env over cwd default", func(t *testing.T) {
		t.Setenv(EnvDataDir, "/from/env")

		dir, err := ResolveDataDir("", "")
		require.NoError(t, err)
		assert.Equal(t, "/from/env", dir)
	})

	t.Run("cwd default", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")

		dir, err := ResolveDataDir("", "")
		require.NoError(t, err)
		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cwd, DefaultDataDirName), dir)
	})
}
