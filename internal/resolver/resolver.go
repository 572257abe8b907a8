// Package resolver turns dfx deployment metadata into a canister
// name -> ID mapping for one network.
//
// Resolution is best-effort: a missing or malformed metadata file is
// logged and contributes nothing, it never fails the overall result.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/icpkit/canisterenv/internal/cache"
	"github.com/icpkit/canisterenv/internal/dfx"
)

// Mapping is a resolved canister name -> canister ID (principal text).
type Mapping map[string]string

// principalPattern matches the textual principal shape: lowercase
// base32 groups of up to five characters separated by dashes, e.g.
// "rrkah-fqaaa-aaaaa-aaaaq-cai".
var principalPattern = regexp.MustCompile(`^([a-z2-7]{1,5}-)+[a-z2-7]{1,5}$`)

// Resolver resolves canister IDs for a project directory.
type Resolver struct {
	dir    string
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Resolver)

// WithCache enables caching of resolved mappings, keyed by network.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(r *Resolver) {
		r.cache = c
		r.ttl = ttl
	}
}

// WithLogger sets the logger used for best-effort warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver for the given project directory.
func New(dir string, opts ...Option) *Resolver {
	r := &Resolver{
		dir:    dir,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the canister mapping for a network.
//
// Precedence, highest first:
//  1. .dfx/<network>/canister_ids.json (local deploy state)
//  2. canister_ids.json at the project root
//  3. remote.id.<network> entries in dfx.json
//
// The returned mapping may be empty; that is a valid result, not an
// error. The error return is reserved for context cancellation.
func (r *Resolver) Resolve(ctx context.Context, network string) (Mapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, network); err == nil {
			return Mapping(cached), nil
		} else if !errors.Is(err, cache.ErrMiss) {
			r.logger.Warn("Cache lookup failed, resolving from disk", "network", network, "err", err)
		}
	}

	mapping := make(Mapping)

	// Lowest precedence first; later sources overwrite.
	r.mergeProject(mapping, network)
	r.mergeRegistry(mapping, dfx.RootIDsPath(r.dir), network)
	r.mergeRegistry(mapping, dfx.StatePath(r.dir, network), network)

	if r.cache != nil {
		if err := r.cache.Set(ctx, network, mapping, r.ttl); err != nil {
			r.logger.Warn("Failed to cache resolved mapping", "network", network, "err", err)
		}
	}

	return mapping, nil
}

func (r *Resolver) mergeProject(mapping Mapping, network string) {
	project, err := dfx.LoadProject(r.dir)
	if err != nil {
		r.warnLoad(dfx.ProjectFile, err)
		return
	}

	for name, canister := range project.Canisters {
		id, ok := canister.Remote.ID[network]
		if !ok {
			continue
		}
		r.put(mapping, name, id)
	}
}

func (r *Resolver) mergeRegistry(mapping Mapping, path, network string) {
	ids, err := dfx.LoadCanisterIDs(path)
	if err != nil {
		r.warnLoad(path, err)
		return
	}

	for name, networks := range ids {
		id, ok := networks[network]
		if !ok {
			continue
		}
		r.put(mapping, name, id)
	}
}

func (r *Resolver) put(mapping Mapping, name, id string) {
	if !principalPattern.MatchString(id) {
		r.logger.Warn("Dropping malformed canister ID", "canister", name, "id", id)
		return
	}
	mapping[name] = id
}

func (r *Resolver) warnLoad(source string, err error) {
	if errors.Is(err, dfx.ErrNotFound) {
		// Absent files are normal (e.g. no local deploy yet); keep the
		// log quiet at warn level.
		r.logger.Debug("Metadata file absent", "source", source)
		return
	}
	r.logger.Warn("Skipping unreadable metadata file", "source", source, "err", err)
}
