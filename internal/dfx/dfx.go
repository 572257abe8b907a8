// Package dfx reads the on-disk metadata a local dfx deployment leaves
// behind: the project manifest (dfx.json) and the canister ID registries
// (canister_ids.json at the project root and under .dfx/<network>/).
package dfx

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
)

// ErrNotFound is returned when a metadata file does not exist.
var ErrNotFound = errors.New("metadata file not found")

const (
	// ProjectFile is the dfx project manifest name.
	ProjectFile = "dfx.json"
	// IDsFile is the canister ID registry name.
	IDsFile = "canister_ids.json"
	// StateDir is the directory holding per-network local deploy state.
	StateDir = ".dfx"
)

// Canister is one canister declaration from dfx.json. dfx allows many
// more fields per canister; we decode only what resolution needs and
// keep the rest in Extra.
type Canister struct {
	Type string `mapstructure:"type"`

	// Remote maps network name -> canister ID for canisters that are
	// not deployed locally but referenced by ID.
	Remote struct {
		ID map[string]string `mapstructure:"id"`
	} `mapstructure:"remote"`

	Extra map[string]any `mapstructure:",remain"`
}

// ProjectConfig is the decoded dfx.json manifest.
type ProjectConfig struct {
	Canisters map[string]Canister
}

// CanisterIDs is the decoded canister_ids.json registry:
// canister name -> network name -> canister ID.
type CanisterIDs map[string]map[string]string

// LoadProject reads and decodes dfx.json from the given project directory.
func LoadProject(dir string) (*ProjectConfig, error) {
	raw, err := readJSON(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	// dfx.json is loosely typed; decode the canisters block through
	// mapstructure so unknown per-canister fields survive in Extra.
	canistersRaw, _ := raw["canisters"].(map[string]any)
	canisters := make(map[string]Canister, len(canistersRaw))
	for name, entry := range canistersRaw {
		var c Canister
		if err := mapstructure.Decode(entry, &c); err != nil {
			return nil, fmt.Errorf("failed to decode canister %q: %w", name, err)
		}
		canisters[name] = c
	}

	return &ProjectConfig{Canisters: canisters}, nil
}

// LoadCanisterIDs reads and decodes a canister_ids.json registry.
func LoadCanisterIDs(path string) (CanisterIDs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var ids CanisterIDs
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// dfx writes a "__Candid_UI" helper entry on local deploys; it is
	// not a project canister.
	delete(ids, "__Candid_UI")

	return ids, nil
}

// StatePath returns the path of the local deploy registry for a network.
func StatePath(dir, network string) string {
	return filepath.Join(dir, StateDir, network, IDsFile)
}

// RootIDsPath returns the path of the project-root registry.
func RootIDsPath(dir string) string {
	return filepath.Join(dir, IDsFile)
}

// MetadataPaths lists every file resolution reads for a project/network
// pair, in precedence order (highest first). Used by watch mode.
func MetadataPaths(dir, network string) []string {
	return []string{
		StatePath(dir, network),
		RootIDsPath(dir),
		filepath.Join(dir, ProjectFile),
	}
}

func readJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return raw, nil
}
