// Package patcher layers a Hadoop cluster configuration on top of a base
// configuration store.
//
// Apply decides, from the application settings, whether computation is
// local. When it is not, the patcher:
//   - Resolves the Hadoop configuration directory
//   - Merges the site and default resources found there, in a fixed order
//   - Copies fs.default.name into fs.defaultFS when the latter is missing
//   - Drops LZO codecs from io.compression.codecs
//
// Every step is synchronous and runs once; the first failure ends the run.
package patcher
