// Package file loads Coin Maker configuration from a TOML file.
// Every field has a working default, so a missing file yields a usable
// configuration.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	Mesher   MesherConfig   `toml:"mesher"`
	Storage  StorageConfig  `toml:"storage"`
	Queue    QueueConfig    `toml:"queue"`
	Limits   LimitsConfig   `toml:"limits"`
	Geometry GeometryConfig `toml:"geometry"`
}

// MesherConfig configures the external heightmap mesher.
type MesherConfig struct {
	// Binary is the hmm executable name or path.
	Binary string `toml:"binary"`

	// TimeoutSeconds bounds one mesher invocation.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Timeout returns the mesher timeout as a duration.
func (m MesherConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// StorageConfig configures where generation data lives.
type StorageConfig struct {
	// DataDir holds the generation database. Empty means
	// ~/.coinmaker/data.
	DataDir string `toml:"data_dir"`

	// FilesDir holds uploaded heightmaps and generated STLs. Empty
	// means ~/.coinmaker/files.
	FilesDir string `toml:"files_dir"`

	// MaxFileAgeHours is the age after which generation files are
	// eligible for cleanup.
	MaxFileAgeHours int `toml:"max_file_age_hours"`
}

// MaxFileAge returns the cleanup threshold as a duration.
func (s StorageConfig) MaxFileAge() time.Duration {
	return time.Duration(s.MaxFileAgeHours) * time.Hour
}

// QueueConfig configures the background worker pool.
type QueueConfig struct {
	// Workers is the number of concurrent generations.
	Workers int `toml:"workers"`

	// Capacity is the queued-task backlog before Enqueue blocks.
	Capacity int `toml:"capacity"`
}

// LimitsConfig configures per-client rate limiting. Zero values
// disable limiting, the right setting for a single-user desktop.
type LimitsConfig struct {
	// GenerationsPerMinute is the sustained per-client rate.
	GenerationsPerMinute int `toml:"generations_per_minute"`

	// Burst is the short-term allowance above the sustained rate.
	Burst int `toml:"burst"`
}

// GeometryConfig configures the boolean-mesh kernel.
type GeometryConfig struct {
	// Resolution is the marching-cubes cell count used when remeshing
	// boolean results.
	Resolution int `toml:"resolution"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Mesher: MesherConfig{
			Binary:         "hmm",
			TimeoutSeconds: 60,
		},
		Storage: StorageConfig{
			MaxFileAgeHours: 24,
		},
		Queue: QueueConfig{
			Workers:  2,
			Capacity: 8,
		},
		Geometry: GeometryConfig{
			Resolution: 128,
		},
	}
}

// Load reads the configuration at path, filling unset fields with
// defaults. An empty path means ~/.coinmaker/config.toml; a missing
// file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".coinmaker", "config.toml")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Mesher.Binary == "" {
		return fmt.Errorf("mesher.binary must not be empty")
	}
	if c.Mesher.TimeoutSeconds <= 0 {
		return fmt.Errorf("mesher.timeout_seconds must be positive")
	}
	if c.Queue.Workers <= 0 {
		return fmt.Errorf("queue.workers must be positive")
	}
	if c.Geometry.Resolution <= 0 {
		return fmt.Errorf("geometry.resolution must be positive")
	}
	return nil
}
