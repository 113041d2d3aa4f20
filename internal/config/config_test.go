package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/fxnet/internal/observability/log"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, log.LevelInfo, cfg.Log.Level)
	require.Equal(t, 0, cfg.Runner.Workers)
	require.Equal(t, 16, cfg.Runner.IterationLimit)
	require.Equal(t, 10000, cfg.Report.Samples)
	require.Empty(t, cfg.Tables.Path)
	require.Equal(t, runtime.GOMAXPROCS(0), cfg.RunnerWorkers())

	fp, err := cfg.ExpectedFingerprint()
	require.NoError(t, err)
	require.Zero(t, fp)
}

func TestLoad_Overlay(t *testing.T) {
	path := writeFile(t, `
log:
  level: debug
runner:
  workers: 3
tables:
  fingerprint: 00000000deadbeef
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, log.LevelDebug, cfg.Log.Level)
	require.Equal(t, 3, cfg.RunnerWorkers())
	// Keys absent from the file keep their defaults.
	require.Equal(t, 16, cfg.Runner.IterationLimit)

	fp, err := cfg.ExpectedFingerprint()
	require.NoError(t, err)
	require.Equal(t, uint64(0xdeadbeef), fp)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"NegativeWorkers": "runner:\n  workers: -1\n",
		"ZeroLimit":       "runner:\n  iteration_limit: 0\n",
		"FewSamples":      "report:\n  samples: 1\n",
		"ShortHash":       "tables:\n  fingerprint: abc\n",
		"NotHex":          "tables:\n  fingerprint: zzzzzzzzzzzzzzzz\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, content))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("UnknownLevel", func(t *testing.T) {
		_, err := Load(writeFile(t, "log:\n  level: loud\n"))
		require.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = log.LevelWarn
	cfg.Report.Workers = 2

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
