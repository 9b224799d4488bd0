package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aescanero/confpatch/internal/config"
	"github.com/aescanero/confpatch/pkg/adapters/sink/redis"
)

// ErrDrift is returned by diff --exit-code when the published hash differs
// from the resolved configuration.
var ErrDrift = errors.New("published configuration differs from resolved configuration")

func newDiffCommand(app *App, overrides *config.Config) *cobra.Command {
	var (
		name     string
		timeout  time.Duration
		exitCode bool
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare the resolved configuration with the one published to Redis",
		Long: `diff resolves the configuration and compares its raw values with the
hash written by "export --to redis". Lines start with + for keys only in the
resolved configuration, - for keys only in the published hash and ~ for
changed values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, _, err := app.resolve()
			if err != nil {
				return err
			}

			client := newRedisClient(app.Config.Redis)
			defer func() {
				if err := client.Close(); err != nil {
					app.Logger.Warn("redis close error", zap.Error(err))
				}
			}()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			published, err := redis.New(client, name, 0, app.Logger).Read(ctx)
			if err != nil {
				return err
			}

			old := published.Map()
			changes := 0
			for _, e := range conf.Entries() {
				prev, ok := old[e.Key]
				delete(old, e.Key)
				switch {
				case !ok:
					fmt.Fprintf(app.Out, "+ %s=%s\n", e.Key, e.Value)
				case prev != e.Value:
					fmt.Fprintf(app.Out, "~ %s: %s -> %s\n", e.Key, prev, e.Value)
				default:
					continue
				}
				changes++
			}
			for _, k := range published.Keys() {
				if prev, ok := old[k]; ok {
					fmt.Fprintf(app.Out, "- %s=%s\n", k, prev)
					changes++
				}
			}

			if changes > 0 && exitCode {
				return ErrDrift
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "key", "default", "configuration name, read from confpatch:conf:<key>")
	flags.DurationVar(&timeout, "timeout", 10*time.Second, "time limit for the redis read")
	flags.BoolVar(&exitCode, "exit-code", false, "fail when the configurations differ")
	flags.StringVar(&overrides.Redis.Addr, "redis-addr", "", "redis address, overrides REDIS_ADDR")
	return cmd
}
