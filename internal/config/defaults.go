package config

// HadoopConfDirEnv names the environment variable holding the Hadoop
// configuration directory.
const HadoopConfDirEnv = "HADOOP_CONF_DIR"

// DefaultHadoopConfDir is used when HadoopConfDirEnv is unset or empty.
const DefaultHadoopConfDir = "/etc/hadoop/conf"

// ResourceFiles lists the resources merged from the configuration
// directory. Later files override earlier ones.
var ResourceFiles = []string{
	"core-site.xml",
	"core-default.xml",
	"hdfs-default.xml",
	"hdfs-site.xml",
	"mapred-default.xml",
	"mapred-site.xml",
	"yarn-default.xml",
	"yarn-site.xml",
}

// Settings keys read from the settings snapshot.
const (
	SettingLocalComputation = "model.local-computation"

	// SettingLocalDeprecated is consulted only when SettingLocalComputation
	// is absent.
	SettingLocalDeprecated = "model.local"
)

// SettingsEnvPrefix prefixes environment overrides of settings keys.
const SettingsEnvPrefix = "CONFPATCH"
