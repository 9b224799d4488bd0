package patcher

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aescanero/confpatch/internal/config"
	"github.com/aescanero/confpatch/internal/settings"
	"github.com/aescanero/confpatch/pkg/hadoopconf"
)

// ErrNilConfiguration is returned by Apply when no store is given.
var ErrNilConfiguration = errors.New("configuration is nil")

// Patcher layers the Hadoop cluster configuration onto a store
type Patcher struct {
	settings settings.Snapshot
	logger   *zap.Logger
	metrics  Metrics

	confDir   string
	lookupEnv func(string) (string, bool)
	resources []string
}

// Result describes what a single Apply did
type Result struct {
	RunID string

	// LocalComputation is true when the store was left untouched
	LocalComputation bool

	ConfDir string
	Loaded  []string
	Skipped []string

	// DefaultFS is the resolved fs.defaultFS; DefaultFSSet is false when
	// neither it nor fs.default.name was available.
	DefaultFS    string
	DefaultFSSet bool

	RemovedCodecs []string
}

// Option configures a Patcher
type Option func(*Patcher)

// WithMetrics sets the metrics collector
func WithMetrics(m Metrics) Option {
	return func(p *Patcher) {
		if m != nil {
			p.metrics = m
		}
	}
}

// WithConfDir sets a directory that takes precedence over HADOOP_CONF_DIR
func WithConfDir(dir string) Option {
	return func(p *Patcher) {
		p.confDir = dir
	}
}

// WithLookupEnv replaces the environment lookup, os.LookupEnv by default
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(p *Patcher) {
		if lookup != nil {
			p.lookupEnv = lookup
		}
	}
}

// WithResources replaces the ordered resource file list
func WithResources(names []string) Option {
	return func(p *Patcher) {
		p.resources = append([]string(nil), names...)
	}
}

// NewPatcher creates a patcher reading the local computation flag from snapshot
func NewPatcher(snapshot settings.Snapshot, logger *zap.Logger, opts ...Option) *Patcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Patcher{
		settings:  snapshot,
		logger:    logger,
		metrics:   nopMetrics{},
		lookupEnv: defaultLookupEnv,
		resources: append([]string(nil), config.ResourceFiles...),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply patches store in place. In local computation mode it returns
// without touching store or the filesystem.
func (p *Patcher) Apply(store *hadoopconf.Configuration) (*Result, error) {
	if store == nil {
		return nil, ErrNilConfiguration
	}

	start := time.Now()
	res := &Result{RunID: uuid.New().String()}
	logger := p.logger.With(zap.String("run_id", res.RunID))

	if settings.LocalComputation(p.settings, logger) {
		res.LocalComputation = true
		logger.Debug("local computation, skipping hadoop configuration")
		p.metrics.RecordRun(ModeLocal, OutcomeSuccess, time.Since(start))
		return res, nil
	}

	if err := p.patch(store, res, logger); err != nil {
		logger.Error("hadoop configuration patch failed", zap.Error(err))
		p.metrics.RecordRun(ModeCluster, OutcomeError, time.Since(start))
		return nil, err
	}

	logger.Debug("hadoop configuration patched",
		zap.String("conf_dir", res.ConfDir),
		zap.Strings("loaded", res.Loaded),
		zap.Int("skipped", len(res.Skipped)),
		zap.Duration("duration", time.Since(start)))
	p.metrics.RecordRun(ModeCluster, OutcomeSuccess, time.Since(start))
	return res, nil
}

func (p *Patcher) patch(store *hadoopconf.Configuration, res *Result, logger *zap.Logger) error {
	dir, err := ResolveConfDir(p.confDir, p.lookupEnv)
	if err != nil {
		return err
	}
	res.ConfDir = dir

	res.Loaded, res.Skipped, err = p.loadResources(store, dir, logger)
	if err != nil {
		return err
	}

	res.DefaultFS, res.DefaultFSSet = reconcileDefaultFS(store, logger)

	res.RemovedCodecs = SanitizeCodecs(store)
	if len(res.RemovedCodecs) > 0 {
		logger.Debug("removed lzo codecs", zap.Strings("codecs", res.RemovedCodecs))
		p.metrics.RecordCodecsRemoved(len(res.RemovedCodecs))
	}

	return nil
}

// NewConfiguration clones base, or starts empty when base is nil, and
// applies the patch to the clone. base itself is never modified.
func NewConfiguration(base *hadoopconf.Configuration, snapshot settings.Snapshot, logger *zap.Logger, opts ...Option) (*hadoopconf.Configuration, *Result, error) {
	var store *hadoopconf.Configuration
	if base == nil {
		store = hadoopconf.New(hadoopconf.WithLogger(logger))
	} else {
		store = base.Clone()
	}

	res, err := NewPatcher(snapshot, logger, opts...).Apply(store)
	if err != nil {
		return nil, nil, err
	}
	return store, res, nil
}
