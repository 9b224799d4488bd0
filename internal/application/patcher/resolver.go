package patcher

import (
	"os"

	"github.com/aescanero/confpatch/internal/config"
)

var defaultLookupEnv = os.LookupEnv

// ResolveConfDir returns the Hadoop configuration directory: explicit if
// non-empty, else HADOOP_CONF_DIR, else /etc/hadoop/conf. The directory
// must exist.
func ResolveConfDir(explicit string, lookupEnv func(string) (string, bool)) (string, error) {
	dir := explicit
	if dir == "" && lookupEnv != nil {
		dir, _ = lookupEnv(config.HadoopConfDirEnv)
	}
	if dir == "" {
		dir = config.DefaultHadoopConfDir
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", &ConfigDirectoryError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return "", &ConfigDirectoryError{Path: dir, Err: ErrNotDirectory}
	}
	return dir, nil
}
