package patcher

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aescanero/confpatch/pkg/hadoopconf"
)

type recordingMetrics struct {
	resources map[string]string
	removed   int
	runs      []string
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{resources: make(map[string]string)}
}

func (m *recordingMetrics) RecordResource(name, outcome string) { m.resources[name] = outcome }
func (m *recordingMetrics) RecordCodecsRemoved(n int)           { m.removed += n }
func (m *recordingMetrics) RecordRun(mode, outcome string, _ time.Duration) {
	m.runs = append(m.runs, mode+"/"+outcome)
}

func snapshot(local bool) *viper.Viper {
	v := viper.New()
	v.Set("model.local-computation", local)
	return v
}

func envWith(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func property(name, value string) string {
	return "<property><name>" + name + "</name><value>" + value + "</value></property>"
}

func writeConf(t *testing.T, dir, name string, props ...string) {
	t.Helper()
	body := "<?xml version=\"1.0\"?>\n<configuration>" + strings.Join(props, "") + "</configuration>\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func baseStore() *hadoopconf.Configuration {
	c := hadoopconf.New()
	c.Set("fs.default.name", "hdfs://x:8020")
	c.Set("io.compression.codecs", "org.apache.hadoop.io.compress.lzo.LzoCodec,org.apache.hadoop.io.compress.GzipCodec")
	c.Set("base.only", "yes")
	return c
}

// P1
func TestApply_LocalComputationLeavesStoreUntouched(t *testing.T) {
	store := baseStore()
	before := store.Clone()
	metrics := newRecordingMetrics()

	// The directory does not exist; local mode must never look at it.
	p := NewPatcher(snapshot(true), nil,
		WithMetrics(metrics),
		WithConfDir(filepath.Join(t.TempDir(), "absent")))

	res, err := p.Apply(store)
	require.NoError(t, err)

	assert.True(t, res.LocalComputation)
	assert.NotEmpty(t, res.RunID)
	assert.Empty(t, res.ConfDir)
	assert.True(t, before.Equal(store))
	assert.Equal(t, before.Keys(), store.Keys())
	assert.Empty(t, metrics.resources)
	assert.Equal(t, []string{"local/success"}, metrics.runs)
}

// P2
func TestApply_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	metrics := newRecordingMetrics()

	p := NewPatcher(snapshot(false), nil,
		WithMetrics(metrics),
		WithLookupEnv(envWith(map[string]string{"HADOOP_CONF_DIR": missing})))

	res, err := p.Apply(baseStore())
	assert.Nil(t, res)

	var dirErr *ConfigDirectoryError
	require.ErrorAs(t, err, &dirErr)
	assert.Equal(t, missing, dirErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, []string{"cluster/error"}, metrics.runs)
}

// P3
func TestApply_OnlyCoreSite(t *testing.T) {
	dir := t.TempDir()
	writeConf(t, dir, "core-site.xml",
		property("fs.defaultFS", "hdfs://nn:8020"),
		property("hadoop.tmp.dir", "/data/tmp"))
	metrics := newRecordingMetrics()

	store := baseStore()
	res, err := NewPatcher(snapshot(false), nil, WithConfDir(dir), WithMetrics(metrics)).Apply(store)
	require.NoError(t, err)

	assert.False(t, res.LocalComputation)
	assert.Equal(t, dir, res.ConfDir)
	assert.Equal(t, []string{"core-site.xml"}, res.Loaded)
	assert.Len(t, res.Skipped, 7)

	v, _ := store.Get("hadoop.tmp.dir")
	assert.Equal(t, "/data/tmp", v)
	v, _ = store.Get("fs.defaultFS")
	assert.Equal(t, "hdfs://nn:8020", v, "a real fs.defaultFS is not replaced by the legacy key")
	assert.Equal(t, filepath.Join(dir, "core-site.xml"), store.Source("hadoop.tmp.dir"))

	assert.Equal(t, ResourceLoaded, metrics.resources["core-site.xml"])
	assert.Equal(t, ResourceSkipped, metrics.resources["yarn-site.xml"])
	assert.Equal(t, 1, metrics.removed)
	assert.Equal(t, []string{"cluster/success"}, metrics.runs)
}

func TestApply_ResourceOrder(t *testing.T) {
	dir := t.TempDir()
	writeConf(t, dir, "core-site.xml", property("k", "core-site"), property("a", "1"))
	writeConf(t, dir, "core-default.xml", property("k", "core-default"), property("b", "2"))
	writeConf(t, dir, "hdfs-site.xml", property("k", "hdfs-site"))
	writeConf(t, dir, "yarn-default.xml", property("k", "yarn-default"))

	store := hadoopconf.New()
	store.Set("k", "base")
	res, err := NewPatcher(snapshot(false), nil, WithConfDir(dir)).Apply(store)
	require.NoError(t, err)

	assert.Equal(t, []string{"core-site.xml", "core-default.xml", "hdfs-site.xml", "yarn-default.xml"}, res.Loaded)
	v, _ := store.Get("k")
	assert.Equal(t, "yarn-default", v)
	assert.Equal(t, []string{"k", "a", "b"}, store.Keys())
}

func TestApply_MalformedResourceIsFatal(t *testing.T) {
	for name, body := range map[string]string{
		"truncated":        "<configuration><property>",
		"trailing garbage": "<configuration>" + property("from.hdfs", "yes") + "</configuration><property><name>b",
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeConf(t, dir, "core-site.xml", property("from.core", "yes"))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "hdfs-site.xml"), []byte(body), 0o644))
			writeConf(t, dir, "yarn-site.xml", property("from.yarn", "yes"))
			metrics := newRecordingMetrics()

			store := hadoopconf.New()
			res, err := NewPatcher(snapshot(false), nil, WithConfDir(dir), WithMetrics(metrics)).Apply(store)
			assert.Nil(t, res)

			var loadErr *ResourceLoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, filepath.Join(dir, "hdfs-site.xml"), loadErr.Path)

			_, ok := store.Get("from.core")
			assert.True(t, ok, "resources before the failure stay merged")
			_, ok = store.Get("from.hdfs")
			assert.False(t, ok, "the malformed resource is not merged")
			_, ok = store.Get("from.yarn")
			assert.False(t, ok, "resources after the failure are not loaded")
			assert.Equal(t, ResourceFailed, metrics.resources["hdfs-site.xml"])
		})
	}
}

func TestApply_NilStore(t *testing.T) {
	_, err := NewPatcher(snapshot(false), nil).Apply(nil)
	assert.ErrorIs(t, err, ErrNilConfiguration)
}

func TestApply_Logs(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zapcore.InfoLevel)
	v := viper.New()
	v.Set("model.local", false)

	_, err := NewPatcher(v, zap.New(core), WithConfDir(dir)).Apply(baseStore())
	require.NoError(t, err)

	warn := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warn, 1)
	assert.Equal(t, "model.local is deprecated; use model.local-data and model.local-computation", warn[0].Message)

	info := logs.FilterMessage("fs.defaultFS = hdfs://x:8020").All()
	require.Len(t, info, 1)
	assert.Equal(t, "hdfs://x:8020", info[0].ContextMap()["value"])
	assert.NotEmpty(t, info[0].ContextMap()["run_id"])
}

func TestApply_WithResources(t *testing.T) {
	dir := t.TempDir()
	writeConf(t, dir, "extra.xml", property("extra", "1"))
	writeConf(t, dir, "core-site.xml", property("core", "1"))

	store := hadoopconf.New()
	res, err := NewPatcher(snapshot(false), nil, WithConfDir(dir), WithResources([]string{"extra.xml"})).Apply(store)
	require.NoError(t, err)

	assert.Equal(t, []string{"extra.xml"}, res.Loaded)
	_, ok := store.Get("core")
	assert.False(t, ok)
}

func TestNewConfiguration(t *testing.T) {
	dir := t.TempDir()
	writeConf(t, dir, "core-site.xml", property("from.core", "yes"))

	base := baseStore()
	before := base.Clone()

	store, res, err := NewConfiguration(base, snapshot(false), nil, WithConfDir(dir))
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, before.Equal(base), "base is cloned, not patched")
	v, _ := store.Get("fs.defaultFS")
	assert.Equal(t, "hdfs://x:8020", v)
	assert.Equal(t, "org.apache.hadoop.io.compress.GzipCodec", store.GetOrDefault("io.compression.codecs", ""))

	empty, _, err := NewConfiguration(nil, snapshot(true), nil)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())

	_, _, err = NewConfiguration(nil, snapshot(false), nil, WithConfDir(filepath.Join(dir, "absent")))
	var dirErr *ConfigDirectoryError
	assert.True(t, errors.As(err, &dirErr))
}
