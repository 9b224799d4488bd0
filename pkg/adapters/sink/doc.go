// Package sink provides destinations for a resolved configuration.
//
// Implementations:
//   - file: XML, YAML or properties file written atomically
//   - redis: Redis hash, one field per key
package sink
