package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestLocalComputation_ModernKey(t *testing.T) {
	for _, want := range []bool{true, false} {
		v := viper.New()
		v.Set("model.local-computation", want)
		v.Set("model.local", !want)

		logger, logs := observed()
		assert.Equal(t, want, LocalComputation(v, logger))
		assert.Zero(t, logs.Len(), "no deprecation warning when the modern key is set")
	}
}

func TestLocalComputation_DeprecatedFallback(t *testing.T) {
	v := viper.New()
	v.Set("model.local", true)

	logger, logs := observed()
	assert.True(t, LocalComputation(v, logger))

	entries := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "model.local is deprecated; use model.local-data and model.local-computation", entries[0].Message)
}

func TestLocalComputation_NothingSet(t *testing.T) {
	assert.False(t, LocalComputation(viper.New(), nil))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model:\n  local-computation: true\n"), 0o644))

	v, err := Load(path)
	require.NoError(t, err)

	assert.True(t, v.IsSet("model.local-computation"))
	assert.True(t, LocalComputation(v, nil))
}

func TestLoad_DeprecatedDefault(t *testing.T) {
	v, err := Load("")
	require.NoError(t, err)

	assert.False(t, v.IsSet("model.local-computation"))
	assert.False(t, LocalComputation(v, nil))
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CONFPATCH_MODEL_LOCAL_COMPUTATION", "true")

	v, err := Load("")
	require.NoError(t, err)

	assert.True(t, LocalComputation(v, nil))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
