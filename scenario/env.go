package scenario

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvPosition    = "PROJECTILE_POSITION" // "x,y,z"
	EnvVelocity    = "PROJECTILE_VELOCITY" // "x,y,z"
	EnvSpeed       = "PROJECTILE_SPEED"
	EnvGravity     = "PROJECTILE_GRAVITY" // "x,y,z"
	EnvWind        = "PROJECTILE_WIND"    // "x,y,z"
	EnvTickDelayMs = "PROJECTILE_TICK_DELAY_MS"
	EnvMaxTicks    = "PROJECTILE_MAX_TICKS"
	EnvAudio       = "PROJECTILE_AUDIO_ENABLED"
	EnvVolume      = "PROJECTILE_VOLUME" // 0-100
)

// ApplyEnv overrides fields from PROJECTILE_* variables
// Unparseable values are ignored, volume is clamped
func (s *Scenario) ApplyEnv() {
	if v, ok := envVec(EnvPosition); ok {
		s.Launch.Position = v
	}
	if v, ok := envVec(EnvVelocity); ok {
		s.Launch.Velocity = v
	}
	if speed := os.Getenv(EnvSpeed); speed != "" {
		if val, err := strconv.ParseFloat(speed, 64); err == nil {
			s.Launch.Speed = val
		}
	}
	if v, ok := envVec(EnvGravity); ok {
		s.World.Gravity = v
	}
	if v, ok := envVec(EnvWind); ok {
		s.World.Wind = v
	}

	if delay := os.Getenv(EnvTickDelayMs); delay != "" {
		if val, err := strconv.Atoi(delay); err == nil && val >= 0 {
			s.Run.TickDelayMs = val
		}
	}
	if maxTicks := os.Getenv(EnvMaxTicks); maxTicks != "" {
		if val, err := strconv.Atoi(maxTicks); err == nil && val >= 0 {
			s.Run.MaxTicks = val
		}
	}

	if enabled := os.Getenv(EnvAudio); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			s.Audio.Enabled = val
		}
	}
	// 0-100 converted to 0.0-1.0
	if volume := os.Getenv(EnvVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			s.Audio.Volume = float64(val) / 100.0
			if s.Audio.Volume < 0 {
				s.Audio.Volume = 0
			}
			if s.Audio.Volume > 1 {
				s.Audio.Volume = 1
			}
		}
	}
}

// envVec parses "x,y,z"
func envVec(name string) ([3]float64, bool) {
	var out [3]float64
	raw := os.Getenv(name)
	if raw == "" {
		return out, false
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return out, false
	}
	for i, p := range parts {
		val, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, false
		}
		out[i] = val
	}
	return out, true
}
