// Command confpatch resolves a Hadoop client configuration from
// HADOOP_CONF_DIR and prints or exports it.
package main

import (
	"fmt"
	"os"

	"github.com/aescanero/confpatch/internal/cli"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := cli.Execute(Version, BuildTime, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "confpatch: %v\n", err)
		os.Exit(1)
	}
}
