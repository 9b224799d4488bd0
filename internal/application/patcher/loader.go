package patcher

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/aescanero/confpatch/pkg/hadoopconf"
)

// loadResources merges each configured resource found in dir, in order.
// Missing files are skipped; the first unreadable or malformed file stops
// the load.
func (p *Patcher) loadResources(store *hadoopconf.Configuration, dir string, logger *zap.Logger) (loaded, skipped []string, err error) {
	for _, name := range p.resources {
		path := filepath.Join(dir, name)

		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("resource not found, skipping", zap.String("path", path))
				p.metrics.RecordResource(name, ResourceSkipped)
				skipped = append(skipped, name)
				continue
			}
			p.metrics.RecordResource(name, ResourceFailed)
			return loaded, skipped, &ResourceLoadError{Path: path, Err: err}
		}

		if err := store.AddResource(path); err != nil {
			p.metrics.RecordResource(name, ResourceFailed)
			return loaded, skipped, &ResourceLoadError{Path: path, Err: err}
		}

		logger.Debug("resource loaded", zap.String("path", path))
		p.metrics.RecordResource(name, ResourceLoaded)
		loaded = append(loaded, name)
	}

	return loaded, skipped, nil
}
