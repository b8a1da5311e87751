// Package main provides a particle effect viewer for the wheel's halo and
// win confetti, for tuning emitter parameters per device tier.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--config <path>   Wheel config YAML (default: data/wheel.yaml)
//	--tier <name>     Initial tier: low / medium / high (default: high)
//	--auto-play       Fire a confetti burst every 3 seconds
//	--verbose         Enable verbose logging
//
// Controls:
//
//	1 / 2 / 3         - Switch tier to low / medium / high
//	Space             - Fire confetti burst
//	D                 - Toggle dimmed halo (after-spin alpha)
//	P                 - Toggle pause
//	R                 - Restart both effects
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/frame"
	"github.com/decker502/prizewheel/pkg/particle"
	"github.com/decker502/prizewheel/pkg/render"
	"github.com/decker502/prizewheel/pkg/utils"
)

var (
	configFlag   = flag.String("config", "data/wheel.yaml", "Wheel config YAML")
	tierFlag     = flag.String("tier", "high", "Initial tier: low / medium / high")
	autoPlayFlag = flag.Bool("auto-play", false, "Fire a confetti burst every 3 seconds")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit requested")

// ParticleViewerGame implements ebiten.Game for the particle viewer
type ParticleViewerGame struct {
	cfg    *config.WheelConfig
	layout render.Layout
	clock  *frame.ManualClock
	frames *frame.Scheduler
	rng    utils.Rand

	tier     config.Tier
	halo     *particle.Simulation
	confetti *particle.Simulation

	haloCanvas     *render.EbitenCanvas
	confettiCanvas *render.EbitenCanvas

	autoPlay  bool
	lastBurst time.Time
	paused    bool
	dimmed    bool
	bursts    int

	statusMessage string
}

// NewParticleViewerGame creates the viewer with both simulations running
func NewParticleViewerGame(cfg *config.WheelConfig, tier config.Tier) (*ParticleViewerGame, error) {
	haloPalette, err := render.ParsePalette(cfg.Halo.Palette)
	if err != nil {
		return nil, err
	}
	confettiPalette, err := render.ParsePalette(cfg.Confetti.Palette)
	if err != nil {
		return nil, err
	}

	layout := render.DefaultLayout()
	hx, hy := layout.HaloOffset()
	clock := frame.NewManualClock(0)
	g := &ParticleViewerGame{
		cfg:            cfg,
		layout:         layout,
		clock:          clock,
		frames:         frame.NewScheduler(clock),
		rng:            utils.NewRand(uint64(time.Now().UnixNano())),
		haloCanvas:     render.NewEbitenCanvas(haloPalette, hx, hy, true),
		confettiCanvas: render.NewEbitenCanvas(confettiPalette, 0, 0, false),
		autoPlay:       *autoPlayFlag,
		lastBurst:      time.Now(),
	}
	if err := g.setTier(tier); err != nil {
		return nil, err
	}
	return g, nil
}

// setTier rebuilds both simulations for tier
func (g *ParticleViewerGame) setTier(tier config.Tier) error {
	if g.halo != nil {
		g.halo.Stop()
		g.confetti.Stop()
	}

	tierCfg := config.TierConfigFor(tier)
	halo, err := particle.NewSimulation(g.frames, g.cfg.Halo, tierCfg, g.rng, g.haloCanvas)
	if err != nil {
		return fmt.Errorf("halo: %w", err)
	}
	if g.cfg.Halo.TurbulenceAmp > 0 && tier != config.TierLow {
		halo.SetTurbulence(particle.NewSimplexTurbulence(time.Now().UnixNano(), g.cfg.Halo.TurbulenceAmp))
	}
	burstTier := config.TierConfig{MaxParticles: g.cfg.ConfettiBudget.For(tier), RenderScale: tierCfg.RenderScale}
	confetti, err := particle.NewSimulation(g.frames, g.cfg.Confetti, burstTier, g.rng, g.confettiCanvas)
	if err != nil {
		return fmt.Errorf("confetti: %w", err)
	}
	confetti.OnDrained(func() {
		g.statusMessage = fmt.Sprintf("Burst #%d drained", g.bursts)
	})

	g.tier = tier
	g.halo = halo
	g.confetti = confetti
	g.applyDim()
	if err := g.halo.Start(); err != nil {
		return err
	}
	g.statusMessage = fmt.Sprintf("Tier %s: halo %s, confetti %s", tier,
		humanize.Comma(int64(tierCfg.MaxParticles)), humanize.Comma(int64(burstTier.MaxParticles)))
	log.Printf("[ParticleViewer] %s", g.statusMessage)
	return nil
}

func (g *ParticleViewerGame) applyDim() {
	alpha := g.cfg.Halo.AlphaScale
	if g.dimmed {
		alpha *= g.cfg.DimmedHalo
	}
	g.halo.SetAlphaScale(alpha)
}

func (g *ParticleViewerGame) burst() {
	if err := g.confetti.Start(); err != nil {
		g.statusMessage = fmt.Sprintf("Burst failed: %v", err)
		return
	}
	g.bursts++
	g.lastBurst = time.Now()
}

// Update handles input and advances the fixed-step clock
func (g *ParticleViewerGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	for key, tier := range map[ebiten.Key]config.Tier{
		ebiten.Key1: config.TierLow,
		ebiten.Key2: config.TierMedium,
		ebiten.Key3: config.TierHigh,
	} {
		if inpututil.IsKeyJustPressed(key) && tier != g.tier {
			if err := g.setTier(tier); err != nil {
				return err
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.burst()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.dimmed = !g.dimmed
		g.applyDim()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.setTier(g.tier); err != nil {
			return err
		}
	}
	if g.autoPlay && time.Since(g.lastBurst) > 3*time.Second {
		g.burst()
	}

	if !g.paused {
		g.clock.Advance(time.Second / time.Duration(ebiten.TPS()))
		g.frames.Tick()
	}
	return nil
}

// Draw renders both effects and the stats overlay
func (g *ParticleViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x1a, G: 0x0b, B: 0x2e, A: 0xff})
	g.haloCanvas.Render(screen)
	g.confettiCanvas.Render(screen)

	info := fmt.Sprintf("Tier: %s  Halo: %d/%d  Confetti: %d/%d  Bursts: %d  Dimmed: %v",
		g.tier,
		g.halo.ActiveCount(), g.halo.Pool().Capacity(),
		g.confetti.ActiveCount(), g.confetti.Pool().Capacity(),
		g.bursts, g.dimmed)
	if g.paused {
		info += "  [PAUSED]"
	}
	ebitenutil.DebugPrintAt(screen, info, 10, 10)
	ebitenutil.DebugPrintAt(screen, g.statusMessage, 10, 30)
	ebitenutil.DebugPrintAt(screen, "1/2/3 tier  Space burst  D dim  P pause  R restart  Q quit", 10, int(g.layout.Size)-24)
}

// Layout returns the logical screen size
func (g *ParticleViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.layout.Size), int(g.layout.Size)
}

func main() {
	flag.Parse()

	// 默认静音运行；如需详细调试，传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadWheelConfig(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}
	tier, err := config.ParseTier(*tierFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	game, err := NewParticleViewerGame(cfg, tier)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize viewer:", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(int(game.layout.Size), int(game.layout.Size))
	ebiten.SetWindowTitle("Prize Wheel Particle Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Println("Particle viewer closed")
}
