// Package app 提供转盘应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/device"
	"github.com/decker502/prizewheel/pkg/embedded"
	"github.com/decker502/prizewheel/pkg/frame"
	"github.com/decker502/prizewheel/pkg/game"
	"github.com/decker502/prizewheel/pkg/provider"
	"github.com/decker502/prizewheel/pkg/render"
	"github.com/decker502/prizewheel/pkg/scenes"
	"github.com/decker502/prizewheel/pkg/sound"
	"github.com/decker502/prizewheel/pkg/utils"
)

// DefaultConfigPath 嵌入的默认转盘配置
const DefaultConfigPath = "data/wheel.yaml"

// appName gdata 存储目录名
const appName = "prizewheel"

// 本地随机奖品源的模拟网络延迟
const localProviderLatency = 400 * time.Millisecond

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部 YAML 配置文件；为空使用嵌入的 data/wheel.yaml
	ConfigPath string
	// ProviderURL 奖品服务地址（POST 返回 {"spinId","winnerIndex"}）；为空使用本地随机源
	ProviderURL string
	// Tier 强制画质分级（low/medium/high）；为空读取玩家设置或自动探测
	Tier string
	// Seed 随机种子，0 表示使用当前时间
	Seed uint64
}

// App 是转盘应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	frames                   *frame.Scheduler
	layout                   render.Layout
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化转盘应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	wheelCfg, err := loadWheelConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("转盘配置加载失败: %w", err)
	}

	// 玩家设置（gdata 不可用时降级为内存设置）
	if err := utils.EnsureStorageDir(appName); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)

	// 设备分级：命令行 > 玩家设置 > 自动探测
	force := settings.ForcedTier()
	if cfg.Tier != "" {
		tier, err := config.ParseTier(cfg.Tier)
		if err != nil {
			return nil, err
		}
		force = &tier
	}
	profile := device.Init(wheelCfg.Probe, force)
	log.Printf("[App] Device tier: %s (probe %d, forced %v)", profile.Tier, profile.ProbeCount, profile.Forced)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := utils.NewRand(seed)

	var spinProvider provider.Provider
	if cfg.ProviderURL != "" {
		spinProvider = provider.NewHTTP(cfg.ProviderURL, 5*time.Second)
		log.Printf("[App] Using prize server %s", cfg.ProviderURL)
	} else {
		spinProvider = provider.NewRandom(utils.NewRand(seed^0x5bd1e995), wheelCfg.SectorCount(), localProviderLatency)
		log.Printf("[App] Using local random prize source")
	}

	// 初始化音频（合成音效，失败时静音运行）
	audioManager := newAudioManager(wheelCfg.Sound, settings)

	frames := frame.NewScheduler(frame.NewMonotonicClock())
	layout := render.DefaultLayout()
	scene, err := scenes.NewWheelScene(scenes.WheelSceneOptions{
		Config:   wheelCfg,
		Profile:  profile,
		Frames:   frames,
		Rand:     rng,
		Provider: spinProvider,
		Settings: settings,
		Audio:    audioManager,
		Layout:   layout,
	})
	if err != nil {
		return nil, fmt.Errorf("转盘场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		frames:       frames,
		layout:       layout,
		verbose:      cfg.Verbose,
	}, nil
}

func loadWheelConfig(path string) (*config.WheelConfig, error) {
	if path != "" {
		return config.LoadWheelConfig(path)
	}
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return config.ParseWheelConfig(data)
}

func newAudioManager(cfg config.SoundConfig, settings *game.SettingsManager) *game.AudioManager {
	bank, err := sound.NewBank(cfg)
	if err != nil {
		log.Printf("[App] Warning: Failed to synthesize sounds: %v", err)
		return game.NewAudioManager(nil, nil, settings)
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(cfg.SampleRate)
	}
	return game.NewAudioManager(ctx, bank, settings)
}

// Update 更新转盘逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.Layout(0, 0)
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(ebiten.IsFullscreen())
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸：转盘加下方状态栏
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.layout.Size), int(a.layout.Size) + scenes.StatusBarHeight
}

// Fullscreen 玩家上次保存的全屏设置
func (a *App) Fullscreen() bool {
	return a.settings.GetSettings().Fullscreen
}

// Shutdown 保存设置并停止所有帧回调
func (a *App) Shutdown() {
	if !a.sceneManager.Shutdown() {
		fmt.Fprintln(os.Stderr, "warning: settings were not saved")
	}
	a.frames.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
