package patcher

import (
	"go.uber.org/zap"

	"github.com/aescanero/confpatch/pkg/hadoopconf"
)

// reconcileDefaultFS fills fs.defaultFS from fs.default.name when the
// former is unset or still holds the built-in file:/// default. Older
// generated configs only set the legacy key.
//
// When the legacy key is unset too, nothing is written and the store keeps
// running against the local filesystem.
func reconcileDefaultFS(store *hadoopconf.Configuration, logger *zap.Logger) (string, bool) {
	value, ok := store.Get(hadoopconf.KeyDefaultFS)
	if !ok || value == hadoopconf.DefaultFSDefault {
		if legacy, found := store.Get(hadoopconf.KeyDefaultFSLegacy); found {
			store.Set(hadoopconf.KeyDefaultFS, legacy)
		}
		value, ok = store.Get(hadoopconf.KeyDefaultFS)
	}

	if ok {
		logger.Info(hadoopconf.KeyDefaultFS+" = "+value,
			zap.String("key", hadoopconf.KeyDefaultFS),
			zap.String("value", value))
	} else {
		logger.Info(hadoopconf.KeyDefaultFS+" is unset",
			zap.String("key", hadoopconf.KeyDefaultFS),
			zap.String("legacy_key", hadoopconf.KeyDefaultFSLegacy))
	}
	return value, ok
}
