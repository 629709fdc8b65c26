package audio

import (
	"os"
	"strconv"
)

// EnvSampleRate overrides the output sample rate
const EnvSampleRate = "PROJECTILE_SAMPLE_RATE"

// Config holds audio settings
type Config struct {
	Enabled    bool
	Volume     float64 // master, 0.0-1.0
	SampleRate int
}

// DefaultConfig returns audio disabled at half volume, 44.1kHz
func DefaultConfig() *Config {
	return &Config{
		Enabled:    false,
		Volume:     0.5,
		SampleRate: 44100,
	}
}

// NewConfig builds a config from scenario-level settings, applying env overrides
func NewConfig(enabled bool, volume float64) *Config {
	cfg := DefaultConfig()
	cfg.Enabled = enabled
	cfg.Volume = clamp01(volume)

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}
	return cfg
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
