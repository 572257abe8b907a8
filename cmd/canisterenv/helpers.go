package main

import (
	"github.com/spf13/cobra"

	"github.com/icpkit/canisterenv"
	"github.com/icpkit/canisterenv/internal/cache"
	cacheredis "github.com/icpkit/canisterenv/internal/cache/redis"
	"github.com/icpkit/canisterenv/internal/cli"
	"github.com/icpkit/canisterenv/internal/config"
)

// setup loads the project config, applies flag overrides, and builds
// the Tool every command works through.
func setup(cmd *cobra.Command) (*canisterenv.Tool, config.Config, error) {
	dir, _ := cmd.Flags().GetString("dir")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, cfg, err
	}

	if network, _ := cmd.Flags().GetString("network"); network != "" {
		cfg.Network = network
	}

	logger := cli.NewLogger(debug)

	opts := []canisterenv.Option{
		canisterenv.WithLogger(logger),
		canisterenv.WithHost(cfg.Host),
		canisterenv.WithPrefix(cfg.Prefix),
		canisterenv.WithExtraVars(cfg.Extra),
	}
	if c := buildCache(cfg); c != nil {
		opts = append(opts, canisterenv.WithCache(c, cfg.CacheTTL.Std()))
	}

	tool, err := canisterenv.New(dir, opts...)
	if err != nil {
		return nil, cfg, err
	}

	return tool, cfg, nil
}

// buildCache returns the Redis cache when configured, nil otherwise.
// Commands that want in-process caching construct it themselves; the
// one-shot commands run uncached by default.
func buildCache(cfg config.Config) cache.Cache {
	if cfg.RedisAddr == "" {
		return nil
	}
	return cacheredis.New(cfg.RedisAddr, "", 0)
}
