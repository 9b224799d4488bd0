// Package config provides configuration management for confpatch.
//
// Runtime settings of the tool itself are loaded from environment variables
// using the env package, then overlaid with command-line flag values.
// The package also names the process-wide defaults used when patching:
// the Hadoop configuration directory variable, its fallback path and the
// ordered list of resource files.
//
// Example usage:
//
//	cfg, err := config.Load(config.Config{LogLevel: "debug"})
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
