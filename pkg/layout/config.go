package layout

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/caspian-labs/roomcraft/pkg/constraints"
	"github.com/caspian-labs/roomcraft/pkg/grid"
)

// Default solve budget and worker count. pkg/solver carries the same
// defaults for direct callers; they are restated here rather than imported
// because pkg/solver depends on this package for its Placement types.
const (
	defaultTimeBudgetSeconds = 30
	defaultWorkers           = 4
)

// Config specifies the job-independent tunables a deployment of the layout
// pipeline holds constant across jobs: solver grid resolution, time/worker
// budget, and a constraints block. It supports YAML parsing and validation.
type Config struct {
	// Seed is the master seed used to derive every stage's RNG. Use 0 to
	// auto-generate from current time.
	Seed uint64 `yaml:"seed" json:"seed"`

	// ResolutionCM is the solver grid's cell size in centimeters.
	ResolutionCM int `yaml:"resolution_cm" json:"resolution_cm"`

	// TimeBudgetSeconds bounds each strategy's solve.
	TimeBudgetSeconds float64 `yaml:"time_budget_seconds" json:"time_budget_seconds"`

	// Workers is the number of parallel restart workers per strategy solve.
	Workers int `yaml:"workers" json:"workers"`

	// Constraints is parsed, serialized, and hashed with the rest of the
	// config. The pipeline does not read it: a job's constraints come from
	// its own record, with zero fields falling back to constraints.Defaults().
	Constraints ConstraintsCfg `yaml:"constraints" json:"constraints"`
}

// ConstraintsCfg mirrors constraints.Constraints for YAML loading; zero
// fields fall back to constraints.Defaults() via ToConstraints.
type ConstraintsCfg struct {
	MinWalkwayWidthM      float64 `yaml:"min_walkway_width_m,omitempty" json:"min_walkway_width_m,omitempty"`
	MinDoorClearanceM     float64 `yaml:"min_door_clearance_m,omitempty" json:"min_door_clearance_m,omitempty"`
	MinWindowAccessM      float64 `yaml:"min_window_access_m,omitempty" json:"min_window_access_m,omitempty"`
	TVViewingDistanceMinM float64 `yaml:"tv_viewing_distance_min_m,omitempty" json:"tv_viewing_distance_min_m,omitempty"`
	TVViewingDistanceMaxM float64 `yaml:"tv_viewing_distance_max_m,omitempty" json:"tv_viewing_distance_max_m,omitempty"`
	TVViewingAngleMaxDeg  float64 `yaml:"tv_viewing_angle_max_deg,omitempty" json:"tv_viewing_angle_max_deg,omitempty"`
}

// ToConstraints converts the YAML-loaded overrides into a
// constraints.Constraints value, falling back to constraints.Defaults() for
// any zero field.
func (c ConstraintsCfg) ToConstraints() constraints.Constraints {
	return constraints.Constraints{
		MinWalkwayWidthM:      c.MinWalkwayWidthM,
		MinDoorClearanceM:     c.MinDoorClearanceM,
		MinWindowAccessM:      c.MinWindowAccessM,
		TVViewingDistanceMinM: c.TVViewingDistanceMinM,
		TVViewingDistanceMaxM: c.TVViewingDistanceMaxM,
		TVViewingAngleMaxDeg:  c.TVViewingAngleMaxDeg,
	}.WithDefaults()
}

// DefaultConfig returns the pipeline's out-of-the-box tunables.
func DefaultConfig() Config {
	return Config{
		ResolutionCM:      grid.DefaultResolutionCM,
		TimeBudgetSeconds: defaultTimeBudgetSeconds,
		Workers:           defaultWorkers,
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML configuration from a byte slice.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = generateSeed()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration's invariants.
func (c *Config) Validate() error {
	if c.ResolutionCM <= 0 {
		return errors.New("resolution_cm must be > 0")
	}
	if c.TimeBudgetSeconds <= 0 {
		return errors.New("time_budget_seconds must be > 0")
	}
	if c.Workers <= 0 {
		return errors.New("workers must be > 0")
	}
	return nil
}

// TimeBudget returns the configured solve time budget as a time.Duration.
func (c *Config) TimeBudget() time.Duration {
	return time.Duration(c.TimeBudgetSeconds * float64(time.Second))
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic hash of the configuration, used as the
// configHash input to pkg/rng's per-stage seed derivation so that a job
// produces the same variants for a fixed master seed and config.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		h := sha256.New()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], c.Seed)
		h.Write(buf[:])
		return h.Sum(nil)
	}
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}

// generateSeed derives a seed from the current time when none is configured.
func generateSeed() uint64 {
	now := time.Now().UnixNano()
	if now < 0 {
		now = -now
	}
	seed := uint64(now)
	if seed == 0 {
		seed = 1
	}
	return seed
}
