package cli

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aescanero/confpatch/internal/config"
	"github.com/aescanero/confpatch/pkg/adapters/sink"
	"github.com/aescanero/confpatch/pkg/adapters/sink/file"
	"github.com/aescanero/confpatch/pkg/adapters/sink/redis"
)

const (
	targetFile  = "file"
	targetRedis = "redis"
)

func newExportCommand(app *App, overrides *config.Config) *cobra.Command {
	var (
		target  string
		out     string
		format  string
		name    string
		ttl     time.Duration
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the resolved configuration to a file or Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				dst     sink.Sink
				closeFn func() error
			)
			switch target {
			case targetFile:
				if out == "" {
					return fmt.Errorf("--out is required with --to %s", targetFile)
				}
				dst = file.New(out, format, app.Logger)
			case targetRedis:
				client := newRedisClient(app.Config.Redis)
				closeFn = client.Close
				dst = redis.New(client, name, ttl, app.Logger)
			default:
				return fmt.Errorf("unknown export target %q (must be %s or %s)", target, targetFile, targetRedis)
			}
			if closeFn != nil {
				defer func() {
					if err := closeFn(); err != nil {
						app.Logger.Warn("redis close error", zap.Error(err))
					}
				}()
			}

			conf, _, err := app.resolve()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return dst.Write(ctx, conf)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&target, "to", targetFile, "export target: file or redis")
	flags.StringVarP(&out, "out", "o", "", "output path for --to file")
	flags.StringVarP(&format, "format", "f", sink.FormatXML, "file format: xml, yaml or properties")
	flags.StringVar(&name, "key", "default", "configuration name for --to redis, stored at confpatch:conf:<key>")
	flags.DurationVar(&ttl, "ttl", 0, "expiry of the redis hash, 0 keeps it forever")
	flags.DurationVar(&timeout, "timeout", 10*time.Second, "time limit for the export")
	flags.StringVar(&overrides.Redis.Addr, "redis-addr", "", "redis address, overrides REDIS_ADDR")
	return cmd
}

func newRedisClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
}
