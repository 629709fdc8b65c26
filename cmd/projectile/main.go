package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lixenwraith/raytracer/audio"
	"github.com/lixenwraith/raytracer/physics"
)

// exitInterrupted follows the shell convention for SIGINT
const exitInterrupted = 130

func main() {
	// Panic Recovery: deferred screen teardown in run has already restored the terminal
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPROJECTILE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if logFile := setupLogging(o.debug); logFile != nil {
		defer logFile.Close()
	}

	runID := uuid.New()
	log.Printf("run %s: starting, args %q", runID, args)

	sc, err := resolveScenario(o)
	if err != nil {
		return fail(stderr, runID, err)
	}

	if o.dumpConfig {
		data, err := sc.Marshal()
		if err != nil {
			return fail(stderr, runID, err)
		}
		if _, err := stdout.Write(data); err != nil {
			return fail(stderr, runID, err)
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player := audio.NewPlayer(audio.NewConfig(sc.Audio.Enabled, sc.Audio.Volume))
	if err := player.Initialize(); err != nil {
		log.Printf("run %s: audio initialization failed: %v", runID, err)
		fmt.Fprintf(stderr, "Audio initialization failed: %v (continuing without audio)\n", err)
	}
	defer player.Close()
	log.Printf("run %s: audio enabled %v", runID, player.Enabled())

	start := sc.Projectile()
	log.Printf("run %s: launch position %v velocity %v, gravity %v wind %v, delay %v, max ticks %d",
		runID, start.Position, start.Velocity, sc.Environment().Gravity, sc.Environment().Wind, sc.TickDelay(), sc.Run.MaxTicks)

	var sum physics.Summary
	if o.tui {
		sum, err = runTerminal(ctx, sc, player)
		if err == nil {
			fmt.Fprintf(stdout, "Number of ticks: %d\n", sum.Ticks)
		}
	} else {
		sum, err = runText(ctx, stdout, sc, o.quiet, player)
	}

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		log.Printf("run %s: interrupted after %d ticks at %v", runID, sum.Ticks, sum.Landing)
		fmt.Fprintf(stderr, "Interrupted after %d ticks\n", sum.Ticks)
		return exitInterrupted
	default:
		return fail(stderr, runID, err)
	}

	log.Printf("run %s: landed after %d ticks at %v, apex %v, distance %.6f",
		runID, sum.Ticks, sum.Landing, sum.Apex, sum.Distance)
	if o.debug {
		fmt.Fprintf(stderr, "run %s: landing %v, apex %v, distance %.6f\n", runID, sum.Landing, sum.Apex, sum.Distance)
	}
	return 0
}

// fail reports err to the user and, with a stack where available, to the debug log
func fail(stderr io.Writer, runID uuid.UUID, err error) int {
	log.Printf("run %s: %+v", runID, err)
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
