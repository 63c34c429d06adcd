package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configFile is the name looked up in the working directory when no
// --config flag is given.
const configFile = "panelkit.toml"

// Config holds the CLI settings read from panelkit.toml.
type Config struct {
	// Precision is the number of decimal places shown for geometry
	// values.
	Precision int `toml:"precision"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig controls the solve cache.
type CacheConfig struct {
	// Enabled turns the cache on. Off by default.
	Enabled bool `toml:"enabled"`

	// Dir is the cache directory; defaults to panelkit/ under the
	// user cache directory.
	Dir string `toml:"dir"`

	// TTLHours bounds an entry's age; zero means entries never expire.
	TTLHours int `toml:"ttl_hours"`
}

func defaultConfig() Config {
	return Config{Precision: 3}
}

// loadConfig reads the config at path, or panelkit.toml in the working
// directory when path is empty. A missing default file is not an
// error; a missing explicit path is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = configFile
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Precision < 0 {
		return cfg, fmt.Errorf("config %s: precision must be >= 0", path)
	}
	return cfg, nil
}

// cacheDir resolves the configured cache directory, defaulting to
// panelkit/ under the user cache directory.
func (c Config) cacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(base, "panelkit"), nil
}
