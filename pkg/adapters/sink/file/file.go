// Package file implements sink.Sink by writing an encoded configuration to
// a file on disk.
package file

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/aescanero/confpatch/pkg/adapters/sink"
	"github.com/aescanero/confpatch/pkg/hadoopconf"
)

// Sink writes the configuration to path in a fixed format
type Sink struct {
	path   string
	format string
	logger *zap.Logger
}

// New creates a file sink. format is one of sink.Formats.
func New(path, format string, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{
		path:   path,
		format: format,
		logger: logger,
	}
}

// Write encodes conf and replaces the file atomically
func (s *Sink) Write(ctx context.Context, conf *hadoopconf.Configuration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := sink.Encode(&buf, conf, s.format); err != nil {
		return err
	}

	if err := atomicWrite(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}

	s.logger.Info("configuration written",
		zap.String("path", s.path),
		zap.String("format", s.format),
		zap.Int("keys", conf.Len()))
	return nil
}

// atomicWrite writes data to a temporary file in the target directory and
// renames it over path.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName) // best effort cleanup
		return err
	}
	return nil
}

// Compile-time check that Sink implements sink.Sink.
var _ sink.Sink = (*Sink)(nil)
