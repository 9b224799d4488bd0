package hadoopconf

// Well-known keys.
const (
	// KeyDefaultFS is the canonical default filesystem key.
	KeyDefaultFS = "fs.defaultFS"
	// KeyDefaultFSLegacy is the pre-2.x name of KeyDefaultFS.
	KeyDefaultFSLegacy = "fs.default.name"
	// KeyCompressionCodecs lists codec class names, comma separated.
	KeyCompressionCodecs = "io.compression.codecs"
)

// DefaultFSDefault is the value Hadoop ships for KeyDefaultFS when nothing
// overrides it.
const DefaultFSDefault = "file:///"

// SourceProgrammatic is recorded as the source of keys written with Set.
const SourceProgrammatic = "programmatic"
