// Package envsynth turns a resolved canister mapping into the
// environment variables a frontend build consumes.
package envsynth

import (
	"fmt"
	"sort"
	"strings"

	"github.com/icpkit/canisterenv/internal/resolver"
)

// DefaultPrefix is the framework prefix variables are mirrored under.
const DefaultPrefix = "VITE_"

// Options control synthesis.
type Options struct {
	// Network is emitted as DFX_NETWORK when non-empty.
	Network string
	// Host is emitted as HOST when non-empty.
	Host string
	// Prefix mirrors every synthesized variable under an additional
	// framework prefix (e.g. "VITE_"). Empty disables mirroring.
	Prefix string
	// Extra variables merge last and win, including over mirrored
	// keys. They are emitted verbatim, never mirrored.
	Extra map[string]string
}

// Vars is the synthesized variable set.
type Vars map[string]string

// Synthesize builds the environment variable set for a mapping.
// Each canister name becomes CANISTER_ID_<NAME> with the name
// uppercased and dashes replaced by underscores.
func Synthesize(mapping resolver.Mapping, opts Options) Vars {
	vars := make(Vars, 2*(len(mapping)+len(opts.Extra)+2))

	for name, id := range mapping {
		vars["CANISTER_ID_"+VarName(name)] = id
	}

	if opts.Network != "" {
		vars["DFX_NETWORK"] = opts.Network
	}
	if opts.Host != "" {
		vars["HOST"] = opts.Host
	}

	if opts.Prefix != "" {
		mirrored := make(Vars, 2*len(vars))
		for key, value := range vars {
			mirrored[key] = value
			mirrored[opts.Prefix+key] = value
		}
		vars = mirrored
	}

	// Extras merge after mirroring so they deterministically win,
	// even when one targets a mirrored key.
	for key, value := range opts.Extra {
		vars[key] = value
	}

	return vars
}

// VarName converts a canister name to its environment variable form:
// uppercase, with dashes replaced by underscores.
func VarName(canister string) string {
	return strings.ToUpper(strings.ReplaceAll(canister, "-", "_"))
}

// Keys returns the variable names in sorted order. All renderers
// iterate through this so output is deterministic.
func (v Vars) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Dotenv renders the variables as KEY=value lines, sorted by key.
func (v Vars) Dotenv() string {
	var b strings.Builder
	for _, key := range v.Keys() {
		fmt.Fprintf(&b, "%s=%s\n", key, v[key])
	}
	return b.String()
}

// Exports renders the variables as shell export statements with
// single-quoted values, sorted by key.
func (v Vars) Exports() string {
	var b strings.Builder
	for _, key := range v.Keys() {
		fmt.Fprintf(&b, "export %s='%s'\n", key, strings.ReplaceAll(v[key], "'", `'\''`))
	}
	return b.String()
}
