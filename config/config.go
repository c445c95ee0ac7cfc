// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/biogenesis/environment"
	"github.com/pthm-cable/biogenesis/genome"
	"github.com/pthm-cable/biogenesis/organism"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Genome      GenomeConfig      `yaml:"genome"`
	Environment EnvironmentConfig `yaml:"environment"`
	Survival    SurvivalConfig    `yaml:"survival"`
	Population  PopulationConfig  `yaml:"population"`
	Controller  ControllerConfig  `yaml:"controller"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
}

// GenomeConfig holds sequence parameters.
type GenomeConfig struct {
	Length int `yaml:"length"` // bases per random genome
}

// EnvironmentConfig holds the starting conditions and drift limits.
type EnvironmentConfig struct {
	Name        string  `yaml:"name"`
	IdealRatio  float64 `yaml:"ideal_ratio"` // starting GC target
	Temperature float64 `yaml:"temperature"` // starting temperature
	RatioMin    float64 `yaml:"ratio_min"`
	RatioMax    float64 `yaml:"ratio_max"`
	RatioStep   float64 `yaml:"ratio_step"` // max ratio drift per generation
	TempMin     float64 `yaml:"temp_min"`
	TempMax     float64 `yaml:"temp_max"`
	TempStep    float64 `yaml:"temp_step"` // max temperature drift per generation
}

// SurvivalConfig holds fitness and death hazard parameters.
type SurvivalConfig struct {
	OptimalTemperature float64 `yaml:"optimal_temperature"`
	TemperaturePenalty float64 `yaml:"temperature_penalty"` // fitness per degree off optimal
	FitnessThreshold   float64 `yaml:"fitness_threshold"`
	FitnessHazard      float64 `yaml:"fitness_hazard"` // death chance below threshold
	MaxSafeAge         int     `yaml:"max_safe_age"`
	AgeHazard          float64 `yaml:"age_hazard"` // death chance past max_safe_age
}

// PopulationConfig holds founder parameters.
type PopulationConfig struct {
	Initial    int      `yaml:"initial"`     // random founders when Founders is empty
	NamePrefix string   `yaml:"name_prefix"` // founders are named prefix + 1-based index
	Founders   []string `yaml:"founders"`    // literal founder sequences (optional)
}

// ControllerConfig holds per-generation controller parameters.
type ControllerConfig struct {
	EditBudget              int     `yaml:"edit_budget"`
	SpontaneousMutationRate float64 `yaml:"spontaneous_mutation_rate"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogGenerations bool `yaml:"log_generations"`
	HallOfFameSize int  `yaml:"hall_of_fame_size"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Genome.Length >= 1, "genome.length must be >= 1, got %d", c.Genome.Length)

	e := c.Environment
	check(e.RatioMin <= e.RatioMax, "environment.ratio_min %v > ratio_max %v", e.RatioMin, e.RatioMax)
	check(e.TempMin <= e.TempMax, "environment.temp_min %v > temp_max %v", e.TempMin, e.TempMax)
	check(e.RatioStep >= 0, "environment.ratio_step must be >= 0, got %v", e.RatioStep)
	check(e.TempStep >= 0, "environment.temp_step must be >= 0, got %v", e.TempStep)

	s := c.Survival
	check(s.TemperaturePenalty >= 0, "survival.temperature_penalty must be >= 0, got %v", s.TemperaturePenalty)
	check(probability(s.FitnessHazard), "survival.fitness_hazard must be in [0,1], got %v", s.FitnessHazard)
	check(probability(s.AgeHazard), "survival.age_hazard must be in [0,1], got %v", s.AgeHazard)
	check(s.MaxSafeAge >= 0, "survival.max_safe_age must be >= 0, got %d", s.MaxSafeAge)

	check(c.Population.Initial >= 1 || len(c.Population.Founders) > 0,
		"population.initial must be >= 1 when no founders are given")
	for i, seq := range c.Population.Founders {
		if _, err := genome.Parse(seq); err != nil {
			errs = append(errs, fmt.Errorf("%w: population.founders[%d]: %w", ErrInvalid, i, err))
		}
	}

	check(c.Controller.EditBudget >= 0, "controller.edit_budget must be >= 0, got %d", c.Controller.EditBudget)
	check(probability(c.Controller.SpontaneousMutationRate),
		"controller.spontaneous_mutation_rate must be in [0,1], got %v", c.Controller.SpontaneousMutationRate)

	return errors.Join(errs...)
}

func probability(p float64) bool {
	return p >= 0 && p <= 1
}

// Rules converts the survival section into organism rules.
func (c *Config) Rules() organism.Rules {
	s := c.Survival
	return organism.Rules{
		OptimalTemperature: s.OptimalTemperature,
		TemperaturePenalty: s.TemperaturePenalty,
		FitnessThreshold:   s.FitnessThreshold,
		FitnessHazard:      s.FitnessHazard,
		MaxSafeAge:         s.MaxSafeAge,
		AgeHazard:          s.AgeHazard,
	}
}

// Bounds converts the environment section into drift bounds.
func (c *Config) Bounds() environment.Bounds {
	e := c.Environment
	return environment.Bounds{
		RatioMin:  e.RatioMin,
		RatioMax:  e.RatioMax,
		RatioStep: e.RatioStep,
		TempMin:   e.TempMin,
		TempMax:   e.TempMax,
		TempStep:  e.TempStep,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
