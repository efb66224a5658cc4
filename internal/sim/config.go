package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AiConfig holds the process-wide behavior tunables. It is created once at
// startup, validated, and read-only for the lifetime of a World — tick code
// receives it by pointer and never writes through it.
type AiConfig struct {
	// Magnetism.
	CohesionStrength   float64 `yaml:"cohesion_strength"`
	SeparationStrength float64 `yaml:"separation_strength"`
	VisionRadius       float64 `yaml:"vision_radius"`
	SeparationDistance float64 `yaml:"separation_distance"`

	// Boundary avoidance.
	AvoidanceMargin   float64 `yaml:"avoidance_margin"`
	AvoidanceStrength float64 `yaml:"avoidance_strength"`

	// Rage charge sequence.
	RageAimDuration    float64 `yaml:"rage_aim_duration"`
	RageChargeDuration float64 `yaml:"rage_charge_duration"`
	RageCooldownMin    float64 `yaml:"rage_cooldown_min"`
	RageCooldownMax    float64 `yaml:"rage_cooldown_max"`
	RageBurnoutHits    int     `yaml:"rage_burnout_hits"`

	// Mood transition engine.
	MoodCheckPeriod     float64 `yaml:"mood_check_period"`
	MoodCyclePeriod     float64 `yaml:"mood_cycle_period"`
	MoodStabilityWindow float64 `yaml:"mood_stability_window"`

	// Sad wander pause resampling range.
	SadPauseMin float64 `yaml:"sad_pause_min"`
	SadPauseMax float64 `yaml:"sad_pause_max"`
}

// DefaultAiConfig returns the baseline tuning.
func DefaultAiConfig() AiConfig {
	return AiConfig{
		CohesionStrength:   0.05,
		SeparationStrength: 0.01,
		VisionRadius:       150.0,
		SeparationDistance: 60.0,

		AvoidanceMargin:   100.0,
		AvoidanceStrength: 2.0,

		RageAimDuration:    0.75,
		RageChargeDuration: 1.5,
		RageCooldownMin:    5.0,
		RageCooldownMax:    8.0,
		RageBurnoutHits:    3,

		MoodCheckPeriod:     0.5,
		MoodCyclePeriod:     8.0,
		MoodStabilityWindow: 1.5,

		SadPauseMin: 3.0,
		SadPauseMax: 6.0,
	}
}

// Validate rejects malformed tuning before the simulation starts. A config
// that passes Validate can never fail during a tick.
func (c *AiConfig) Validate() error {
	pos := func(name string, v float64) error {
		if v <= 0 {
			return fmt.Errorf("ai config: %s must be > 0, got %g", name, v)
		}
		return nil
	}
	checks := []struct {
		name string
		v    float64
	}{
		{"vision_radius", c.VisionRadius},
		{"separation_distance", c.SeparationDistance},
		{"avoidance_margin", c.AvoidanceMargin},
		{"avoidance_strength", c.AvoidanceStrength},
		{"rage_aim_duration", c.RageAimDuration},
		{"rage_charge_duration", c.RageChargeDuration},
		{"rage_cooldown_min", c.RageCooldownMin},
		{"mood_check_period", c.MoodCheckPeriod},
		{"mood_cycle_period", c.MoodCyclePeriod},
		{"mood_stability_window", c.MoodStabilityWindow},
		{"sad_pause_min", c.SadPauseMin},
	}
	for _, ch := range checks {
		if err := pos(ch.name, ch.v); err != nil {
			return err
		}
	}
	if c.CohesionStrength < 0 || c.SeparationStrength < 0 {
		return fmt.Errorf("ai config: magnetism strengths must be >= 0")
	}
	if c.RageCooldownMax < c.RageCooldownMin {
		return fmt.Errorf("ai config: rage cooldown range inverted (min %g > max %g)",
			c.RageCooldownMin, c.RageCooldownMax)
	}
	if c.SadPauseMax < c.SadPauseMin {
		return fmt.Errorf("ai config: sad pause range inverted (min %g > max %g)",
			c.SadPauseMin, c.SadPauseMax)
	}
	if c.RageBurnoutHits < 1 {
		return fmt.Errorf("ai config: rage_burnout_hits must be >= 1, got %d", c.RageBurnoutHits)
	}
	return nil
}

// LoadAiConfig reads a YAML tuning file over the defaults. Unknown keys are
// rejected so a typo'd tunable fails loudly at startup.
func LoadAiConfig(path string) (AiConfig, error) {
	cfg := DefaultAiConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read ai config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse ai config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
