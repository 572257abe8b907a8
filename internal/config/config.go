// Package config loads tool configuration from an optional
// canisterenv.yaml in the project directory. Flags override file values
// at the CLI layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file.
const FileName = "canisterenv.yaml"

// Duration wraps time.Duration so yaml files can use "30s" notation.
type Duration time.Duration

// UnmarshalYAML parses Go duration strings ("5s", "1m30s").
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the tool settings.
type Config struct {
	// Network is the dfx network to resolve against.
	Network string `yaml:"network"`
	// Host is the replica host URL emitted as HOST.
	Host string `yaml:"host"`
	// Prefix mirrors variables under a framework prefix.
	Prefix string `yaml:"prefix"`
	// Output is the dotenv file path, relative to the project dir.
	Output string `yaml:"output"`
	// Extra variables merged into every synthesis.
	Extra map[string]string `yaml:"extra"`

	// ActiveInterval is the sync cadence while the host is busy.
	ActiveInterval Duration `yaml:"active_interval"`
	// CacheTTL bounds cached mappings. When unset it follows
	// ActiveInterval, so a configured cache can never outlive a sync
	// cycle and serve stale metadata forever.
	CacheTTL Duration `yaml:"cache_ttl"`
	// RedisAddr enables the Redis cache adapter when non-empty.
	RedisAddr string `yaml:"redis_addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Network:        "local",
		Host:           "http://127.0.0.1:4943",
		Prefix:         "VITE_",
		Output:         ".env",
		ActiveInterval: Duration(5 * time.Second),
	}
}

// Load reads canisterenv.yaml from dir, falling back to defaults when
// the file is absent. A present but unparsable file is an error.
func Load(dir string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return normalize(cfg), nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return normalize(cfg), nil
}

func normalize(cfg Config) Config {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = cfg.ActiveInterval
	}
	return cfg
}
