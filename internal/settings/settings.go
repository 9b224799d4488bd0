// Package settings reads the application settings that decide whether the
// Hadoop cluster configuration is layered in at all.
package settings

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/aescanero/confpatch/internal/config"
)

// Snapshot is a read-only hierarchical settings source.
// *viper.Viper satisfies it.
type Snapshot interface {
	IsSet(key string) bool
	GetBool(key string) bool
}

// Load builds a snapshot from the settings file at path, which may be empty,
// overlaid with CONFPATCH_* environment variables. Dots and dashes in keys
// map to underscores, so model.local-computation is read from
// CONFPATCH_MODEL_LOCAL_COMPUTATION.
func Load(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(config.SettingsEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// model.local-computation deliberately has no default: its absence is
	// what selects the deprecated key.
	v.SetDefault(config.SettingLocalDeprecated, false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings %s: %w", path, err)
		}
	}

	return v, nil
}

// LocalComputation reports whether computation runs locally, in which case
// no cluster configuration is needed. It prefers model.local-computation
// and falls back to the deprecated model.local with a warning.
func LocalComputation(s Snapshot, logger *zap.Logger) bool {
	if s.IsSet(config.SettingLocalComputation) {
		return s.GetBool(config.SettingLocalComputation)
	}

	if logger != nil {
		logger.Warn("model.local is deprecated; use model.local-data and model.local-computation")
	}
	return s.GetBool(config.SettingLocalDeprecated)
}
