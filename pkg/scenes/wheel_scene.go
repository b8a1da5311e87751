package scenes

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/device"
	"github.com/decker502/prizewheel/pkg/frame"
	"github.com/decker502/prizewheel/pkg/game"
	"github.com/decker502/prizewheel/pkg/render"
	"github.com/decker502/prizewheel/pkg/utils"
	"github.com/decker502/prizewheel/pkg/wheel"
)

// StatusBarHeight 转盘下方状态栏高度
const StatusBarHeight = 48

// 状态栏文案
const (
	statusReady    = "SPACE / click SPIN to play    M: sound on/off"
	statusWaiting  = "Contacting prize server..."
	statusSpinning = "Good luck!"
	statusDone     = "Thanks for playing!"
	statusRetry    = "Prize server unavailable, press SPACE to retry"
)

var background = color.RGBA{R: 0x1a, G: 0x0b, B: 0x2e, A: 0xff}

// WheelSceneOptions 转盘场景依赖
type WheelSceneOptions struct {
	Config   *config.WheelConfig
	Profile  device.Profile
	Frames   *frame.Scheduler
	Rand     utils.Rand
	Provider wheel.ResultProvider
	Settings *game.SettingsManager // 可为 nil
	Audio    wheel.Feedback        // 可为 nil
	Layout   render.Layout
}

// WheelScene 转盘场景
//
// 每帧先消费上游结果（Controller.Update），再推进帧调度器，
// 动画和粒子回调都在这里运行。
type WheelScene struct {
	frames     *frame.Scheduler
	controller *wheel.Controller
	renderer   *render.WheelRenderer
	settings   *game.SettingsManager
	layout     render.Layout

	halo          *render.EbitenCanvas
	confetti      *render.EbitenCanvas
	haloLayer     *ebiten.Image
	confettiLayer *ebiten.Image
	renderScale   float64

	ctx    context.Context
	cancel context.CancelFunc

	status string
	last   *wheel.SpinResult
}

// NewWheelScene 创建转盘场景并启动光环
func NewWheelScene(opts WheelSceneOptions) (*WheelScene, error) {
	if opts.Config == nil || opts.Frames == nil {
		return nil, fmt.Errorf("%w: wheel scene needs config and frames", config.ErrInvalidConfiguration)
	}
	renderer, err := render.NewWheelRenderer(opts.Config, opts.Layout)
	if err != nil {
		return nil, err
	}
	haloPalette, err := render.ParsePalette(opts.Config.Halo.Palette)
	if err != nil {
		return nil, fmt.Errorf("halo palette: %w", err)
	}
	confettiPalette, err := render.ParsePalette(opts.Config.Confetti.Palette)
	if err != nil {
		return nil, fmt.Errorf("confetti palette: %w", err)
	}

	scale := opts.Profile.TierConfig().RenderScale
	if scale <= 0 {
		scale = 1
	}
	halo := render.NewEbitenCanvas(haloPalette, 0, 0, true)
	halo.SetTransform(0, 0, scale)
	confetti := render.NewEbitenCanvas(confettiPalette, 0, 0, false)
	confetti.SetTransform(0, 0, scale)

	controller, err := wheel.NewController(wheel.ControllerOptions{
		Config:         opts.Config,
		Tier:           opts.Profile.Tier,
		ReducedMotion:  opts.Profile.ReducedMotion,
		Frames:         opts.Frames,
		Rand:           opts.Rand,
		Provider:       opts.Provider,
		Sink:           renderer,
		HaloCanvas:     halo,
		ConfettiCanvas: confetti,
		Feedback:       opts.Audio,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &WheelScene{
		frames:      opts.Frames,
		controller:  controller,
		renderer:    renderer,
		settings:    opts.Settings,
		layout:      opts.Layout,
		halo:        halo,
		confetti:    confetti,
		renderScale: scale,
		ctx:         ctx,
		cancel:      cancel,
		status:      statusReady,
	}
	controller.OnSpinComplete = s.onSpinComplete
	controller.OnAbort = s.onAbort

	if err := controller.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start halo: %w", err)
	}
	log.Printf("[WheelScene] Ready (tier %s, render scale %.1f)", opts.Profile.Tier, scale)
	return s, nil
}

// Controller 返回转盘控制器
func (s *WheelScene) Controller() *wheel.Controller {
	return s.controller
}

// Status 当前状态栏文字
func (s *WheelScene) Status() string {
	return s.status
}

// LastResult 最近一次完成的旋转
func (s *WheelScene) LastResult() *wheel.SpinResult {
	return s.last
}

// Trigger 发起一次旋转请求
// 返回 wheel.ErrSpinInProgress 或 wheel.ErrAlreadySpun 时状态不变
func (s *WheelScene) Trigger() error {
	if _, err := s.controller.RequestSpin(s.ctx); err != nil {
		return err
	}
	s.status = statusWaiting
	return nil
}

// handleTrigger 处理玩家输入（按键、点击或触摸）触发的旋转，返回是否已发起
// 旋转进行中的重复点击属于正常情况，不记日志
func (s *WheelScene) handleTrigger() bool {
	err := s.Trigger()
	switch {
	case err == nil:
		return true
	case errors.Is(err, wheel.ErrSpinInProgress):
		return false
	default:
		log.Printf("[WheelScene] Spin request rejected: %v", err)
		return false
	}
}

// Step 推进一帧：消费上游结果，然后运行本帧的动画回调
func (s *WheelScene) Step() {
	s.controller.Update()
	if s.controller.Spinning() && s.controller.Phase() != wheel.PhaseIdle {
		s.status = statusSpinning
	}
	s.frames.Tick()
	s.renderer.SetPointerAngle(s.controller.PointerAngle())
}

// Update 实现 game.Scene
func (s *WheelScene) Update(deltaTime float64) {
	if s.triggerPressed() {
		s.handleTrigger()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.toggleSound()
	}
	s.Step()
}

func (s *WheelScene) triggerPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if s.layout.InButton(float64(x), float64(y)) {
			return true
		}
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		if s.layout.InButton(float64(x), float64(y)) {
			return true
		}
	}
	return false
}

func (s *WheelScene) toggleSound() {
	if s.settings == nil {
		return
	}
	enabled := !s.settings.GetSettings().SoundEnabled
	s.settings.SetSoundEnabled(enabled)
	if err := s.settings.Save(); err != nil {
		log.Printf("[WheelScene] Warning: Failed to save settings: %v", err)
	}
	log.Printf("[WheelScene] Sound enabled: %v", enabled)
}

func (s *WheelScene) onSpinComplete(r wheel.SpinResult) {
	s.last = &r
	if s.controller.CanSpin() {
		s.status = statusReady
	} else {
		s.status = statusDone
	}
}

func (s *WheelScene) onAbort(err error) {
	log.Printf("[WheelScene] Spin aborted: %v", err)
	s.status = statusRetry
}

// Draw 实现 game.Scene
func (s *WheelScene) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	s.renderer.Draw(screen, s.controller.CanSpin())

	hx, hy := s.layout.HaloOffset()
	s.haloLayer = s.drawLayer(screen, s.haloLayer, s.halo, s.layout.ButtonSize, hx, hy, true)
	s.confettiLayer = s.drawLayer(screen, s.confettiLayer, s.confetti, s.layout.Size, 0, 0, false)

	s.renderer.DrawReveal(screen, s.controller.Reveal())
	ebitenutil.DebugPrintAt(screen, s.status, 12, int(s.layout.Size)+StatusBarHeight/3)
}

// drawLayer 粒子先画到按分级缩放的离屏图层，再放大叠加到屏幕
func (s *WheelScene) drawLayer(screen, layer *ebiten.Image, canvas *render.EbitenCanvas, size, x, y float64, additive bool) *ebiten.Image {
	px := int(math.Ceil(size * s.renderScale))
	if layer == nil {
		layer = ebiten.NewImage(px, px)
	}
	layer.Clear()
	canvas.Render(layer)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/s.renderScale, 1/s.renderScale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	if additive {
		op.Blend = ebiten.BlendLighter
	}
	screen.DrawImage(layer, op)
	return layer
}

// SaveOnExit 实现 game.Saveable：退出时保存设置并停止所有动画
func (s *WheelScene) SaveOnExit() bool {
	s.cancel()
	s.controller.Close()
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[WheelScene] Warning: Failed to save settings on exit: %v", err)
		return false
	}
	return true
}
