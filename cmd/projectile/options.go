package main

import (
	"flag"
	"io"

	"github.com/pkg/errors"

	"github.com/lixenwraith/raytracer/scenario"
)

type options struct {
	configPath string
	delayMs    int
	maxTicks   int
	tui        bool
	sound      bool
	debug      bool
	dumpConfig bool
	quiet      bool

	// names of flags given explicitly, so zero values still override the file
	set map[string]bool
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	o := &options{set: make(map[string]bool)}

	// Flag defaults mirror the scenario defaults for -h; only explicitly set flags are applied
	defaults := scenario.Default()

	fs := flag.NewFlagSet("projectile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "Scenario TOML file")
	fs.IntVar(&o.delayMs, "delay", defaults.Run.TickDelayMs, "Delay between ticks in milliseconds (overrides run.tick_delay_ms)")
	fs.IntVar(&o.maxTicks, "max-ticks", defaults.Run.MaxTicks, "Tick limit, 0 = unbounded (overrides run.max_ticks)")
	fs.BoolVar(&o.tui, "tui", false, "Plot the flight live in the terminal")
	fs.BoolVar(&o.sound, "sound", defaults.Audio.Enabled, "Play launch and landing cues (overrides audio.enabled)")
	fs.BoolVar(&o.debug, "debug", false, "Write debug log to logs/projectile.log")
	fs.BoolVar(&o.dumpConfig, "dump-config", false, "Print the effective scenario as TOML and exit")
	fs.BoolVar(&o.quiet, "quiet", false, "Print only the final tick count")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// resolveScenario layers defaults, the config file, PROJECTILE_* variables and flags, in that order
func resolveScenario(o *options) (*scenario.Scenario, error) {
	sc := scenario.Default()
	if o.configPath != "" {
		loaded, err := scenario.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		sc = loaded
	}

	sc.ApplyEnv()

	if o.set["delay"] {
		sc.Run.TickDelayMs = o.delayMs
	}
	if o.set["max-ticks"] {
		sc.Run.MaxTicks = o.maxTicks
	}
	if o.set["sound"] {
		sc.Audio.Enabled = o.sound
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}
