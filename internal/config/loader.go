package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrIncompletePreset is returned when a preset in the file does not set
// every difficulty field. Presets replace built-ins whole or not at all.
var ErrIncompletePreset = errors.New("incomplete preset")

type rawDifficulty struct {
	ElfSpeed       *float64 `yaml:"elf_speed"`
	VelocityMin    *float64 `yaml:"velocity_min"`
	VelocityMax    *float64 `yaml:"velocity_max"`
	VelocityGrowth *float64 `yaml:"velocity_growth"`
	MaxObjects     *int     `yaml:"max_objects"`
	EnemyFraction  *float64 `yaml:"enemy_fraction"`
}

type rawTuning struct {
	MaxDuration         *string  `yaml:"max_duration"`
	InitialHealth       *int     `yaml:"initial_health"`
	TornadoPulse        *string  `yaml:"tornado_pulse"`
	TornadoMinRounds    *float64 `yaml:"tornado_min_rounds"`
	TornadoMaxRounds    *float64 `yaml:"tornado_max_rounds"`
	TornadoAcceleration *float64 `yaml:"tornado_acceleration"`
}

type rawConfig struct {
	Tuning  rawTuning                `yaml:"tuning"`
	Presets map[string]rawDifficulty `yaml:"presets"`
}

// Load reads a YAML override file on top of Default. An empty path or a
// missing file is not an error and yields the built-in configuration.
//
//	tuning:
//	  max_duration: 90s
//	presets:
//	  nightmare:
//	    elf_speed: 0.04
//	    velocity_min: 2
//	    velocity_max: 5
//	    velocity_growth: 6
//	    max_objects: 14
//	    enemy_fraction: 0.8
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := readYAML(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := validateRaw(raw); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return merge(Default(), raw), nil
}

// readYAML returns the zero rawConfig for a missing file.
func readYAML(path string) (rawConfig, error) {
	var cfg rawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rawConfig{}, nil
		}
		return rawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return rawConfig{}, err
	}
	return cfg, nil
}

// validateRaw collects every problem in the file instead of stopping at
// the first.
func validateRaw(raw rawConfig) error {
	var errs []error

	for name, p := range raw.Presets {
		if missing := p.missing(); len(missing) > 0 {
			errs = append(errs, fmt.Errorf("preset %q: %w: missing %v", name, ErrIncompletePreset, missing))
			continue
		}
		if err := p.resolve().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("preset %q: %w", name, err))
		}
	}

	t := raw.Tuning
	for field, s := range map[string]*string{"max_duration": t.MaxDuration, "tornado_pulse": t.TornadoPulse} {
		if s == nil {
			continue
		}
		if d, err := time.ParseDuration(*s); err != nil {
			errs = append(errs, fmt.Errorf("tuning.%s: %w", field, err))
		} else if d <= 0 {
			errs = append(errs, fmt.Errorf("tuning.%s: %s must be positive", field, d))
		}
	}
	if t.InitialHealth != nil && *t.InitialHealth < 1 {
		errs = append(errs, fmt.Errorf("tuning.initial_health: %d must be at least 1", *t.InitialHealth))
	}
	if t.TornadoAcceleration != nil && *t.TornadoAcceleration < 1 {
		errs = append(errs, fmt.Errorf("tuning.tornado_acceleration: %v must be at least 1", *t.TornadoAcceleration))
	}
	lo, hi := DefaultTuning().TornadoMinRounds, DefaultTuning().TornadoMaxRounds
	if t.TornadoMinRounds != nil {
		lo = *t.TornadoMinRounds
	}
	if t.TornadoMaxRounds != nil {
		hi = *t.TornadoMaxRounds
	}
	if lo < 0 || hi < lo {
		errs = append(errs, fmt.Errorf("tuning: tornado rounds [%v, %v] are invalid", lo, hi))
	}

	return errors.Join(errs...)
}

func (p rawDifficulty) missing() []string {
	var out []string
	if p.ElfSpeed == nil {
		out = append(out, "elf_speed")
	}
	if p.VelocityMin == nil {
		out = append(out, "velocity_min")
	}
	if p.VelocityMax == nil {
		out = append(out, "velocity_max")
	}
	if p.VelocityGrowth == nil {
		out = append(out, "velocity_growth")
	}
	if p.MaxObjects == nil {
		out = append(out, "max_objects")
	}
	if p.EnemyFraction == nil {
		out = append(out, "enemy_fraction")
	}
	return out
}

// resolve must only be called once missing() is empty.
func (p rawDifficulty) resolve() Difficulty {
	return Difficulty{
		ElfSpeed:       *p.ElfSpeed,
		VelocityMin:    *p.VelocityMin,
		VelocityMax:    *p.VelocityMax,
		VelocityGrowth: *p.VelocityGrowth,
		MaxObjects:     *p.MaxObjects,
		EnemyFraction:  *p.EnemyFraction,
	}
}

// merge applies a validated raw file on top of base.
func merge(base Config, raw rawConfig) Config {
	out := base
	out.Presets = make(map[string]Difficulty, len(base.Presets)+len(raw.Presets))
	for n, d := range base.Presets {
		out.Presets[n] = d
	}
	for n, p := range raw.Presets {
		out.Presets[n] = p.resolve()
	}

	t := raw.Tuning
	if t.MaxDuration != nil {
		out.Tuning.MaxDuration, _ = time.ParseDuration(*t.MaxDuration)
	}
	if t.TornadoPulse != nil {
		out.Tuning.TornadoPulse, _ = time.ParseDuration(*t.TornadoPulse)
	}
	if t.InitialHealth != nil {
		out.Tuning.InitialHealth = *t.InitialHealth
	}
	if t.TornadoMinRounds != nil {
		out.Tuning.TornadoMinRounds = *t.TornadoMinRounds
	}
	if t.TornadoMaxRounds != nil {
		out.Tuning.TornadoMaxRounds = *t.TornadoMaxRounds
	}
	if t.TornadoAcceleration != nil {
		out.Tuning.TornadoAcceleration = *t.TornadoAcceleration
	}
	return out
}
