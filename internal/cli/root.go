// Package cli implements the confpatch command line.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aescanero/confpatch/internal/application/patcher"
	"github.com/aescanero/confpatch/internal/config"
	"github.com/aescanero/confpatch/internal/settings"
	"github.com/aescanero/confpatch/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/confpatch/pkg/hadoopconf"
)

// App holds the state shared by all commands
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *prometheus.Collector
	Out     io.Writer
	Err     io.Writer
}

// Execute runs confpatch with args. Metrics are written even when the
// command fails.
func Execute(version, buildTime string, args []string, out, errOut io.Writer) error {
	root, app := newRootCommand(version, buildTime, out, errOut)
	root.SetArgs(args)

	err := root.Execute()
	if finishErr := app.finish(); finishErr != nil && err == nil {
		err = finishErr
	}
	return err
}

func newRootCommand(version, buildTime string, out, errOut io.Writer) (*cobra.Command, *App) {
	var (
		overrides config.Config
		app       = &App{Out: out, Err: errOut}
	)

	root := &cobra.Command{
		Use:   "confpatch",
		Short: "Resolve a Hadoop client configuration",
		Long: `confpatch layers the Hadoop configuration found in HADOOP_CONF_DIR
(default /etc/hadoop/conf) on top of an empty base configuration, unless the
application settings select local computation. It copies fs.default.name
into fs.defaultFS when needed and drops LZO codecs from io.compression.codecs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}

			cfg, err := config.Load(overrides)
			if err != nil {
				return err
			}
			app.Config = cfg
			app.Logger = newLogger(cfg.LogLevel, errOut)
			app.Metrics = prometheus.NewCollector()
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&overrides.SettingsFile, "settings", "", "application settings file (yaml, json or toml)")
	flags.StringVar(&overrides.ConfDir, "conf-dir", "", "hadoop configuration directory, overrides HADOOP_CONF_DIR")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&overrides.MetricsFile, "metrics-file", "", "write prometheus metrics to this textfile")

	root.AddCommand(
		newDumpCommand(app),
		newGetCommand(app),
		newExportCommand(app, &overrides),
		newDiffCommand(app, &overrides),
		newVersionCommand(version, buildTime),
	)
	return root, app
}

// resolve patches an empty configuration according to the loaded settings
func (a *App) resolve() (*hadoopconf.Configuration, *patcher.Result, error) {
	snapshot, err := settings.Load(a.Config.SettingsFile)
	if err != nil {
		return nil, nil, err
	}

	return patcher.NewConfiguration(nil, snapshot, a.Logger,
		patcher.WithConfDir(a.Config.ConfDir),
		patcher.WithMetrics(a.Metrics))
}

// finish writes the metrics textfile, if configured, and flushes the logger
func (a *App) finish() error {
	if a.Logger == nil {
		return nil
	}
	defer a.Logger.Sync() //nolint:errcheck

	if a.Config.MetricsFile == "" {
		return nil
	}
	if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
		return err
	}
	a.Logger.Debug("metrics written", zap.String("path", a.Config.MetricsFile))
	return nil
}

func newVersionCommand(version, buildTime string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "confpatch %s (built %s)\n", version, buildTime)
			return err
		},
	}
}
