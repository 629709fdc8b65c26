package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/raytracer/audio"
	"github.com/lixenwraith/raytracer/physics"
	"github.com/lixenwraith/raytracer/render"
	"github.com/lixenwraith/raytracer/scenario"
)

// landingWait bounds how long the landing cue may hold up exit
const landingWait = time.Second

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// runText prints one line per tick, then the tick count
func runText(ctx context.Context, out io.Writer, sc *scenario.Scenario, quiet bool, player *audio.Player) (physics.Summary, error) {
	player.PlayLaunch()

	sum, err := sc.Simulator().Run(ctx, sc.Projectile(), func(st physics.Step) error {
		if quiet {
			return nil
		}
		_, err := fmt.Fprintf(out, "Projectile position: %s - %s after %d ticks\n",
			formatCoord(st.Position.X), formatCoord(st.Position.Y), st.Tick)
		return err
	})
	if err != nil {
		return sum, err
	}

	player.PlayLanding(landingWait)
	if _, err := fmt.Fprintf(out, "Number of ticks: %d\n", sum.Ticks); err != nil {
		return sum, err
	}
	return sum, nil
}

type flightResult struct {
	sum physics.Summary
	err error
}

// runTUI plots the flight on screen as it happens
// After landing the plot stays up until the user quits
func runTUI(ctx context.Context, screen tcell.Screen, sc *scenario.Scenario, player *audio.Player) (physics.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := sc.Projectile()
	plotter := render.NewPlotter(screen)
	plotter.Reset(start)

	last := physics.Step{Projectile: start}
	redraw := func() {
		plotter.Draw(render.StatusLine(last, !physics.Airborne(last.Projectile)))
	}
	redraw()

	// Event pump; PollEvent returns nil once the screen is finalized
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	steps := make(chan physics.Step)
	done := make(chan flightResult, 1)
	player.PlayLaunch()
	go func() {
		sum, err := sc.Simulator().Run(ctx, start, func(st physics.Step) error {
			select {
			case steps <- st:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		done <- flightResult{sum: sum, err: err}
	}()

	var landed *flightResult
	stop := func() (physics.Summary, error) {
		if landed != nil {
			return landed.sum, nil
		}
		cancel()
		r := <-done
		return r.sum, r.err
	}

	for {
		select {
		case st := <-steps:
			last = st
			plotter.Push(st)
			redraw()

		case r := <-done:
			done = nil
			if r.err != nil {
				return r.sum, r.err
			}
			landed = &r
			player.PlayLanding(0)

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuitKey(ev) {
					return stop()
				}
			case *tcell.EventResize:
				screen.Sync()
				redraw()
			}

		case <-ctx.Done():
			return stop()
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// runTerminal owns the tcell screen for the duration of a TUI run
func runTerminal(ctx context.Context, sc *scenario.Scenario, player *audio.Player) (physics.Summary, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return physics.Summary{}, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return physics.Summary{}, fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	return runTUI(ctx, screen, sc, player)
}
