// Package config holds the difficulty presets and the fixed tuning of a
// round. Built-in values can be overridden from a YAML file (see Load).
package config

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Difficulty is one named preset. All fields are always set together.
type Difficulty struct {
	ElfSpeed       float64 // proportional gain of the elf controller
	VelocityMin    float64 // launch speed range
	VelocityMax    float64
	VelocityGrowth float64 // extra speed multiplier reached at the end of the round
	MaxObjects     int     // live objects at the peak of a tornado pulse
	EnemyFraction  float64 // target share of enemies among live objects
}

// Validate checks the semantic constraints of a preset.
func (d Difficulty) Validate() error {
	switch {
	case d.ElfSpeed < 0:
		return fmt.Errorf("elf_speed %v must not be negative", d.ElfSpeed)
	case d.VelocityMin < 0 || d.VelocityMax < d.VelocityMin:
		return fmt.Errorf("velocity range [%v, %v] is invalid", d.VelocityMin, d.VelocityMax)
	case d.VelocityGrowth < 0:
		return fmt.Errorf("velocity_growth %v must not be negative", d.VelocityGrowth)
	case d.MaxObjects < 1:
		return fmt.Errorf("max_objects %d must be at least 1", d.MaxObjects)
	case d.EnemyFraction < 0 || d.EnemyFraction > 1:
		return fmt.Errorf("enemy_fraction %v must be within [0, 1]", d.EnemyFraction)
	}
	return nil
}

// Tuning is the part of the game rules that does not change with difficulty.
type Tuning struct {
	MaxDuration         time.Duration
	InitialHealth       int
	TornadoPulse        time.Duration
	TornadoMinRounds    float64 // full turns per pulse, before velocity scaling
	TornadoMaxRounds    float64
	TornadoAcceleration float64 // velocity factor per tick spent inside the tornado
	LaunchSpreadY       float64 // vertical launch direction is uniform in ±LaunchSpreadY
	ElfSentinelX        float64 // elf target x when no gift is live
}

// Config is everything a session needs besides its seed.
type Config struct {
	Tuning  Tuning
	Presets map[string]Difficulty
}

// Built-in preset names.
const (
	Easy   = "easy"
	Normal = "normal"
	Hard   = "hard"
)

// DefaultDifficulty is used for unknown preset names.
func DefaultDifficulty() Difficulty {
	return Difficulty{
		ElfSpeed:       0.0025,
		VelocityMin:    1,
		VelocityMax:    3,
		VelocityGrowth: 3,
		MaxObjects:     7,
		EnemyFraction:  0.3,
	}
}

func DefaultTuning() Tuning {
	return Tuning{
		MaxDuration:         120 * time.Second,
		InitialHealth:       3,
		TornadoPulse:        7 * time.Second,
		TornadoMinRounds:    8,
		TornadoMaxRounds:    25,
		TornadoAcceleration: 1.01,
		LaunchSpreadY:       1.2,
		ElfSentinelX:        -10000,
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tuning: DefaultTuning(),
		Presets: map[string]Difficulty{
			Easy:   {ElfSpeed: 0.005, VelocityMin: 1, VelocityMax: 3, VelocityGrowth: 1, MaxObjects: 7, EnemyFraction: 0.3},
			Normal: {ElfSpeed: 0.01, VelocityMin: 1, VelocityMax: 3, VelocityGrowth: 3, MaxObjects: 9, EnemyFraction: 0.4},
			Hard:   {ElfSpeed: 0.02, VelocityMin: 1, VelocityMax: 4, VelocityGrowth: 5, MaxObjects: 12, EnemyFraction: 0.7},
		},
	}
}

// Lookup returns the named preset. Unknown names yield DefaultDifficulty
// and false; starting a round never fails on a bad name.
func (c Config) Lookup(name string) (Difficulty, bool) {
	d, ok := c.Presets[name]
	if !ok {
		return DefaultDifficulty(), false
	}
	return d, true
}

// Names lists the presets easiest first (by elf speed, then name).
func (c Config) Names() []string {
	names := make([]string, 0, len(c.Presets))
	for n := range c.Presets {
		names = append(names, n)
	}
	slices.SortFunc(names, func(a, b string) int {
		if r := cmp.Compare(c.Presets[a].ElfSpeed, c.Presets[b].ElfSpeed); r != 0 {
			return r
		}
		return cmp.Compare(a, b)
	})
	return names
}
