package canisterenv

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/icpkit/canisterenv/internal/cache"
	"github.com/icpkit/canisterenv/internal/envsynth"
	"github.com/icpkit/canisterenv/internal/resolver"
)

// Version is the release version reported by the CLI.
const Version = "0.3.0"

// Mapping is a resolved canister name -> canister ID (principal text).
type Mapping = resolver.Mapping

// Vars is a synthesized environment variable set.
type Vars = envsynth.Vars

// Tool is the high-level entry point for the canisterenv library.
// It wraps the internal resolver and synthesis pipeline behind a
// simplified API for consumers.
type Tool struct {
	dir      string
	resolver *resolver.Resolver
	logger   *slog.Logger
	host     string
	prefix   string
	extra    map[string]string
	cache    cache.Cache
	cacheTTL time.Duration
}

// Option defines a functional option for configuring the Tool.
type Option func(*Tool)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tool) {
		t.logger = logger
	}
}

// WithHost sets the replica host emitted as HOST.
func WithHost(host string) Option {
	return func(t *Tool) {
		t.host = host
	}
}

// WithPrefix mirrors every variable under a framework prefix.
func WithPrefix(prefix string) Option {
	return func(t *Tool) {
		t.prefix = prefix
	}
}

// WithExtraVars merges additional variables into every synthesis.
// They win over synthesized values.
func WithExtraVars(extra map[string]string) Option {
	return func(t *Tool) {
		t.extra = extra
	}
}

// WithCache caches resolved mappings, keyed by network.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(t *Tool) {
		t.cache = c
		t.cacheTTL = ttl
	}
}

// New initializes a Tool for the given dfx project directory.
func New(dir string, opts ...Option) (*Tool, error) {
	if dir == "" {
		return nil, fmt.Errorf("project dir is required")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	t := &Tool{
		dir:    absDir,
		prefix: envsynth.DefaultPrefix,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.logger == nil {
		t.logger = slog.Default()
	}

	rOpts := []resolver.Option{resolver.WithLogger(t.logger)}
	if t.cache != nil {
		rOpts = append(rOpts, resolver.WithCache(t.cache, t.cacheTTL))
	}
	t.resolver = resolver.New(absDir, rOpts...)

	return t, nil
}

// Dir returns the absolute project directory.
func (t *Tool) Dir() string {
	return t.dir
}

// Resolve returns the raw canister name -> ID mapping for a network.
func (t *Tool) Resolve(ctx context.Context, network string) (Mapping, error) {
	return t.resolver.Resolve(ctx, network)
}

// Generate resolves the mapping and synthesizes the variable set.
func (t *Tool) Generate(ctx context.Context, network string) (Vars, error) {
	mapping, err := t.resolver.Resolve(ctx, network)
	if err != nil {
		return nil, err
	}

	return envsynth.Synthesize(mapping, envsynth.Options{
		Network: network,
		Host:    t.host,
		Prefix:  t.prefix,
		Extra:   t.extra,
	}), nil
}
