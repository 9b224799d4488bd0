package hadoopconf

import (
	"os"

	"go.uber.org/zap"
)

// Entry is a single property as stored, before variable expansion.
type Entry struct {
	Key    string
	Value  string
	Source string
	Final  bool
}

// Configuration is an ordered key/value store.
// Keys keep the position of their first Set; overriding a key does not
// move it.
type Configuration struct {
	keys  []string
	props map[string]*Entry

	logger    *zap.Logger
	lookupEnv func(string) (string, bool)
}

// Option configures a Configuration
type Option func(*Configuration)

// WithLogger sets the logger used to report ignored overrides of final keys
func WithLogger(logger *zap.Logger) Option {
	return func(c *Configuration) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLookupEnv sets the environment used to expand ${env.NAME} references
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(c *Configuration) {
		if lookup != nil {
			c.lookupEnv = lookup
		}
	}
}

// New creates an empty configuration
func New(opts ...Option) *Configuration {
	c := &Configuration{
		props:     make(map[string]*Entry),
		logger:    zap.NewNop(),
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromMap creates a configuration holding m. Keys are added in map
// iteration order, so callers that care about order should use Set.
func FromMap(m map[string]string, opts ...Option) *Configuration {
	c := New(opts...)
	for k, v := range m {
		c.Set(k, v)
	}
	return c
}

// Get returns the expanded value for key and whether it was set
func (c *Configuration) Get(key string) (string, bool) {
	e, ok := c.props[key]
	if !ok {
		return "", false
	}
	return c.expand(e.Value), true
}

// GetOrDefault returns the expanded value for key, or def when unset
func (c *Configuration) GetOrDefault(key, def string) string {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// GetRaw returns the stored value for key without expansion
func (c *Configuration) GetRaw(key string) (string, bool) {
	e, ok := c.props[key]
	if !ok {
		return "", false
	}
	return e.Value, true
}

// Set writes key=value. Programmatic writes override final keys.
func (c *Configuration) Set(key, value string) {
	c.put(key, value, SourceProgrammatic, false)
}

// Unset removes key
func (c *Configuration) Unset(key string) {
	if _, ok := c.props[key]; !ok {
		return
	}
	delete(c.props, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

// Source returns the name of the resource that last wrote key, or
// SourceProgrammatic for Set. It returns "" for unset keys.
func (c *Configuration) Source(key string) string {
	if e, ok := c.props[key]; ok {
		return e.Source
	}
	return ""
}

// IsFinal reports whether a resource marked key as final
func (c *Configuration) IsFinal(key string) bool {
	e, ok := c.props[key]
	return ok && e.Final
}

// Len returns the number of keys
func (c *Configuration) Len() int {
	return len(c.keys)
}

// Keys returns the keys in order
func (c *Configuration) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Entries returns a copy of every entry in key order
func (c *Configuration) Entries() []Entry {
	out := make([]Entry, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, *c.props[k])
	}
	return out
}

// Map returns the raw values keyed by name
func (c *Configuration) Map() map[string]string {
	out := make(map[string]string, len(c.keys))
	for k, e := range c.props {
		out[k] = e.Value
	}
	return out
}

// Clone returns a deep copy sharing the logger and environment lookup
func (c *Configuration) Clone() *Configuration {
	clone := &Configuration{
		keys:      make([]string, len(c.keys)),
		props:     make(map[string]*Entry, len(c.props)),
		logger:    c.logger,
		lookupEnv: c.lookupEnv,
	}
	copy(clone.keys, c.keys)
	for k, e := range c.props {
		cp := *e
		clone.props[k] = &cp
	}
	return clone
}

// Equal reports whether both configurations hold the same raw values.
// Order, sources and final flags are not compared.
func (c *Configuration) Equal(other *Configuration) bool {
	if other == nil || len(c.props) != len(other.props) {
		return false
	}
	for k, e := range c.props {
		o, ok := other.props[k]
		if !ok || o.Value != e.Value {
			return false
		}
	}
	return true
}

func (c *Configuration) put(key, value, source string, final bool) {
	if e, ok := c.props[key]; ok {
		e.Value = value
		e.Source = source
		e.Final = e.Final || final
		return
	}
	c.keys = append(c.keys, key)
	c.props[key] = &Entry{Key: key, Value: value, Source: source, Final: final}
}
