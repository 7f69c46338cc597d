package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// #region runtime-config
// RuntimeConfig holds the operator-tunable thresholds shared by the
// stability and energy guards. Readers receive copies; the live value is
// only replaced whole through Store.Update.
type RuntimeConfig struct {
	RhoMax           float64 `yaml:"rho_max"`           // spectral radius ceiling, (0, 1)
	EnergyMultiplier float64 `yaml:"energy_multiplier"` // budget headroom factor, (0, 4]
}

// DefaultRuntimeConfig returns the charter defaults.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		RhoMax:           0.9,
		EnergyMultiplier: 2.0,
	}
}

// Validate rejects out-of-range values without mutating anything.
func (c RuntimeConfig) Validate() error {
	if c.RhoMax <= 0 || c.RhoMax >= 1 {
		return fmt.Errorf("rho_max must be in (0, 1), got %v", c.RhoMax)
	}
	if c.EnergyMultiplier <= 0 || c.EnergyMultiplier > 4 {
		return fmt.Errorf("energy_multiplier must be in (0, 4], got %v", c.EnergyMultiplier)
	}
	return nil
}

// #endregion runtime-config

// #region versioned
// Versioned pairs a config snapshot with the monotonic version it was
// published under.
type Versioned struct {
	Config  RuntimeConfig
	Version uint64
	Updated time.Time
}

// #endregion versioned

// #region store
// Store is the single-writer-many-reader home of the live RuntimeConfig.
// Cycle code calls Current once per cycle; the external control surface
// calls Update asynchronously. Readers never observe a torn value.
type Store struct {
	mu      sync.RWMutex
	current Versioned
	path    string // empty disables persistence
}

// NewStore creates a store seeded with cfg. path, if non-empty, is where
// updates are persisted as YAML.
func NewStore(cfg RuntimeConfig, path string) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		current: Versioned{Config: cfg, Version: 1, Updated: time.Now().UTC()},
		path:    path,
	}, nil
}

// Load reads a YAML config file and returns a store backed by it. A missing
// file is not an error: defaults are used and will be written on the first
// update.
func Load(path string) (*Store, error) {
	cfg := DefaultRuntimeConfig()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return NewStore(cfg, path)
}

// Current returns the live config snapshot with its version.
func (s *Store) Current() Versioned {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates and publishes a new config, bumping the version and
// persisting to the backing file when one is configured. The old value
// stays live if validation or persistence fails.
func (s *Store) Update(cfg RuntimeConfig) (Versioned, error) {
	if err := cfg.Validate(); err != nil {
		return Versioned{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Versioned{
		Config:  cfg,
		Version: s.current.Version + 1,
		Updated: time.Now().UTC(),
	}
	if s.path != "" {
		if err := persist(s.path, cfg); err != nil {
			return Versioned{}, err
		}
	}
	s.current = next
	return next, nil
}

// #endregion store

// #region persist
func persist(path string, cfg RuntimeConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// #endregion persist
