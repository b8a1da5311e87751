// Command wheel-tui spins the prize wheel in a terminal.
//
// Usage:
//
//	go run ./cmd/wheel-tui [flags]
//
// Controls:
//
//	Space/Enter   - Spin
//	q/Escape      - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/device"
	"github.com/decker502/prizewheel/pkg/frame"
	"github.com/decker502/prizewheel/pkg/provider"
	"github.com/decker502/prizewheel/pkg/render/tui"
	"github.com/decker502/prizewheel/pkg/utils"
	"github.com/decker502/prizewheel/pkg/wheel"
)

var (
	configFlag   = flag.String("config", "", "Wheel config YAML (default: built-in)")
	providerFlag = flag.String("provider-url", "", "Prize server URL (default: local random)")
	tierFlag     = flag.String("tier", "", "Force tier: low / medium / high")
	repeatFlag   = flag.Bool("repeat", false, "Allow more than one spin per session")
	logFlag      = flag.String("log", "", "Write logs to this file (terminal output is reserved for the wheel)")
)

type tuiWheel struct {
	screen     tcell.Screen
	surface    *tui.Surface
	frames     *frame.Scheduler
	controller *wheel.Controller
	ctx        context.Context

	status string
	total  int
}

func newTUIWheel(ctx context.Context, screen tcell.Screen, cfg *config.WheelConfig, profile device.Profile, p wheel.ResultProvider) (*tuiWheel, error) {
	surface := tui.NewSurface(screen, cfg)
	frames := frame.NewScheduler(frame.NewMonotonicClock())
	controller, err := wheel.NewController(wheel.ControllerOptions{
		Config:         cfg,
		Tier:           profile.Tier,
		ReducedMotion:  profile.ReducedMotion,
		Frames:         frames,
		Rand:           utils.NewRand(uint64(time.Now().UnixNano())),
		Provider:       p,
		Sink:           surface,
		HaloCanvas:     surface.HaloCanvas(),
		ConfettiCanvas: surface.ConfettiCanvas(),
	})
	if err != nil {
		return nil, err
	}

	w := &tuiWheel{
		screen:     screen,
		surface:    surface,
		frames:     frames,
		controller: controller,
		ctx:        ctx,
		status:     "Space: spin   q: quit",
	}
	controller.OnSpinComplete = func(r wheel.SpinResult) {
		w.total += r.Prize
		w.status = fmt.Sprintf("Won %s (total %s)", humanize.Comma(int64(r.Prize)), humanize.Comma(int64(w.total)))
		if !controller.CanSpin() {
			w.status += "   q: quit"
		}
	}
	controller.OnAbort = func(err error) {
		w.status = fmt.Sprintf("Spin failed: %v (Space to retry)", err)
	}
	if err := controller.Start(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *tuiWheel) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
			if _, err := w.controller.RequestSpin(w.ctx); err != nil {
				w.status = err.Error()
			} else {
				w.status = "Spinning..."
			}
		}
	case *tcell.EventResize:
		w.screen.Sync()
	}
	return true
}

func (w *tuiWheel) frame() {
	w.controller.Update()
	w.frames.Tick()
	w.surface.SetPointerAngle(w.controller.PointerAngle())
	w.surface.Draw(w.status, w.controller.Reveal())
}

func (w *tuiWheel) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := w.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !w.handleInput(ev) {
				return
			}
		case <-ticker.C:
			w.frame()
		}
	}
}

func loadConfig() (*config.WheelConfig, error) {
	if *configFlag == "" {
		return config.DefaultWheelConfig(), nil
	}
	return config.LoadWheelConfig(*configFlag)
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.Create(*logFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *repeatFlag {
		cfg.SingleSpin = false
	}

	var force *config.Tier
	if *tierFlag != "" {
		tier, err := config.ParseTier(*tierFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		force = &tier
	}
	profile := device.Init(cfg.Probe, force)

	var p wheel.ResultProvider = provider.NewRandom(utils.NewRand(uint64(time.Now().UnixNano())), cfg.SectorCount(), 300*time.Millisecond)
	if *providerFlag != "" {
		p = provider.NewHTTP(*providerFlag, 5*time.Second)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := newTUIWheel(ctx, screen, cfg, profile, p)
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer w.controller.Close()
	w.run()
}
