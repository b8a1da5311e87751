package wheel

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/frame"
	"github.com/decker502/prizewheel/pkg/particle"
	"github.com/decker502/prizewheel/pkg/utils"
)

// ResultProvider 决定中奖扇区
// 在独立 goroutine 中调用，允许阻塞
type ResultProvider interface {
	RequestSpinResult(ctx context.Context) (int, error)
}

// Feedback 次要反馈（通常是音效）
type Feedback interface {
	Tick()
	Win(prize int)
}

// SpinResult 一次完成的旋转
type SpinResult struct {
	AttemptID   string
	WinnerIndex int
	Prize       int
	Rotation    float64
}

// ControllerOptions 控制器依赖
// Config、Frames、Rand、Provider 必填
type ControllerOptions struct {
	Config        *config.WheelConfig
	Tier          config.Tier
	ReducedMotion bool

	Frames   frame.Requester
	Rand     utils.Rand
	Provider ResultProvider

	Sink           RotationSink
	HaloCanvas     particle.Canvas
	ConfettiCanvas particle.Canvas
	Feedback       Feedback
}

type providerResult struct {
	attempt string
	index   int
	err     error
}

// Controller 转盘控制器
// 职责：
//   - 请求上游结果，规划并驱动旋转动画
//   - 刻度检测、指针抖动、光环和中奖彩带、奖金揭晓
//
// RequestSpin 可在输入处理中调用；其余逻辑都在 Update 和帧回调中执行，
// 全部位于游戏主 goroutine。
type Controller struct {
	cfg      *config.WheelConfig
	tier     config.Tier
	rng      utils.Rand
	provider ResultProvider
	feedback Feedback

	planner  *Planner
	animator *Animator
	halo     *particle.Simulation
	confetti *particle.Simulation
	kick     *PointerKick
	reveal   *PrizeReveal

	results chan providerResult
	cancel  context.CancelFunc
	attempt string
	ticks   TickState

	spinning bool
	hasSpun  bool
	closed   bool

	// OnSpinComplete 转盘停在中奖扇区后调用
	OnSpinComplete func(SpinResult)
	// OnAbort 旋转在开始动画前失败时调用
	OnAbort func(error)
}

// NewController 校验配置并创建所有组件
// Start 之前不会注册任何帧回调
func NewController(opts ControllerOptions) (*Controller, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("%w: wheel config is required", config.ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Provider == nil || opts.Rand == nil {
		return nil, fmt.Errorf("%w: provider and random source are required", config.ErrInvalidConfiguration)
	}

	planner, err := NewPlanner(cfg.SectorCount(), cfg.FullSpinsFor(opts.Tier), opts.Rand)
	if err != nil {
		return nil, err
	}
	animCfg, err := AnimatorConfigFrom(cfg.Spin)
	if err != nil {
		return nil, err
	}
	animator, err := NewAnimator(opts.Frames, animCfg, opts.Rand, InitialRotation(cfg.SectorCount()), opts.Sink)
	if err != nil {
		return nil, err
	}

	tierCfg := config.TierConfigFor(opts.Tier)
	halo, err := particle.NewSimulation(opts.Frames, cfg.Halo, tierCfg, opts.Rand, opts.HaloCanvas)
	if err != nil {
		return nil, fmt.Errorf("halo: %w", err)
	}
	if cfg.Halo.TurbulenceAmp > 0 && opts.Tier != config.TierLow {
		halo.SetTurbulence(particle.NewSimplexTurbulence(int64(opts.Rand.IntN(1<<31)), cfg.Halo.TurbulenceAmp))
	}

	burstTier := config.TierConfig{
		MaxParticles: cfg.ConfettiBudget.For(opts.Tier),
		RenderScale:  tierCfg.RenderScale,
	}
	confetti, err := particle.NewSimulation(opts.Frames, cfg.Confetti, burstTier, opts.Rand, opts.ConfettiCanvas)
	if err != nil {
		return nil, fmt.Errorf("confetti: %w", err)
	}

	c := &Controller{
		cfg:      cfg,
		tier:     opts.Tier,
		rng:      opts.Rand,
		provider: opts.Provider,
		feedback: opts.Feedback,
		planner:  planner,
		animator: animator,
		halo:     halo,
		confetti: confetti,
		kick:     NewPointerKick(opts.Frames, cfg.Pointer.KickDegrees, cfg.Pointer.KickDuration, opts.ReducedMotion),
		reveal:   NewPrizeReveal(opts.Frames, cfg.Reveal),
		results:  make(chan providerResult, 1),
		ticks:    NewTickState(animator.Rotation(), cfg.AngleStep()),
	}

	log.Printf("[Controller] wheel ready: %d sectors, tier %s, halo %s particles, confetti %s particles",
		cfg.SectorCount(), opts.Tier, humanize.Comma(int64(tierCfg.MaxParticles)), humanize.Comma(int64(burstTier.MaxParticles)))
	return c, nil
}

// Start 启动空闲光环
func (c *Controller) Start() error {
	if c.closed {
		return frame.ErrSchedulerClosed
	}
	return c.halo.Start()
}

// RequestSpin 向上游请求中奖扇区
// 结果由之后的 Update 处理；返回本次尝试的 ID（用于日志和 SpinResult）
func (c *Controller) RequestSpin(ctx context.Context) (string, error) {
	switch {
	case c.closed:
		return "", frame.ErrSchedulerClosed
	case c.spinning:
		return "", ErrSpinInProgress
	case c.cfg.SingleSpin && c.hasSpun:
		return "", ErrAlreadySpun
	}

	c.spinning = true
	c.hasSpun = true
	c.attempt = uuid.NewString()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	attempt := c.attempt
	log.Printf("[Controller] spin %s requested", attempt)

	go func() {
		index, err := c.provider.RequestSpinResult(ctx)
		c.results <- providerResult{attempt: attempt, index: index, err: err}
	}()
	return attempt, nil
}

// Update 处理已到达的上游结果
// 每帧调用一次，在 Scheduler.Tick 之前
func (c *Controller) Update() {
	select {
	case r := <-c.results:
		c.handleResult(r)
	default:
	}
}

// Await 阻塞等待上游结果并处理
// 无界面工具用它代替轮询 Update
func (c *Controller) Await(ctx context.Context) error {
	if !c.spinning || c.animator.Active() {
		return nil
	}
	select {
	case r := <-c.results:
		c.handleResult(r)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) handleResult(r providerResult) {
	if c.closed || r.attempt != c.attempt {
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if r.err != nil {
		c.abort(fmt.Errorf("%w: %v", ErrUpstreamFailure, r.err))
		return
	}

	plan, err := c.planner.Plan(r.index, c.animator.Rotation())
	if err != nil {
		if errors.Is(err, ErrWinnerOutOfRange) {
			err = fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
		}
		c.abort(err)
		return
	}

	c.ticks = NewTickState(c.animator.Rotation(), c.cfg.AngleStep())
	overshoot := utils.RandomInRange(c.rng, c.cfg.Spin.Overshoot.Min, c.cfg.Spin.Overshoot.Max)
	index := r.index
	log.Printf("[Controller] spin %s: sector %d, %d full spins, target %.2f°", r.attempt, index, plan.FullSpins, plan.TargetRotation)

	err = c.animator.Start(SpinRequest{
		Plan:             plan,
		OvershootDegrees: overshoot,
		Observer:         c.observe,
		OnComplete:       func() { c.complete(r.attempt, index) },
	})
	if err != nil {
		c.abort(err)
	}
}

func (c *Controller) abort(err error) {
	log.Printf("[Controller] spin %s aborted: %v", c.attempt, err)
	c.spinning = false
	c.hasSpun = false
	if c.OnAbort != nil {
		c.OnAbort(err)
	}
}

func (c *Controller) observe(rotation, _ float64) {
	var crossed int
	c.ticks, crossed = c.ticks.Advance(rotation)
	if crossed == 0 {
		return
	}
	c.kick.Kick()
	if c.feedback != nil {
		c.feedback.Tick()
	}
}

func (c *Controller) complete(attempt string, index int) {
	c.spinning = false
	prize := c.cfg.Sectors[index]
	log.Printf("[Controller] spin %s settled on sector %d (prize %s)", attempt, index, humanize.Comma(int64(prize)))

	if c.cfg.SingleSpin {
		c.halo.SetAlphaScale(c.cfg.Halo.AlphaScale * c.cfg.DimmedHalo)
	}
	if err := c.confetti.Start(); err != nil {
		log.Printf("[Controller] confetti unavailable: %v", err)
	}
	c.reveal.Start(prize, nil)
	if c.feedback != nil {
		c.feedback.Win(prize)
	}
	if c.OnSpinComplete != nil {
		c.OnSpinComplete(SpinResult{
			AttemptID:   attempt,
			WinnerIndex: index,
			Prize:       prize,
			Rotation:    c.animator.Rotation(),
		})
	}
}

// Close 取消所有帧回调和未完成的上游请求
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.animator.Cancel()
	c.halo.Stop()
	c.confetti.Stop()
	c.kick.Stop()
	c.reveal.Stop()
	c.spinning = false
}

// Spinning 是否正在等待上游或播放动画
func (c *Controller) Spinning() bool { return c.spinning }

// CanSpin RequestSpin 是否会被接受
func (c *Controller) CanSpin() bool {
	return !c.closed && !c.spinning && !(c.cfg.SingleSpin && c.hasSpun)
}

// Rotation 当前转角
func (c *Controller) Rotation() float64 { return c.animator.Rotation() }

// Phase 动画器阶段
func (c *Controller) Phase() Phase { return c.animator.Phase() }

// PointerAngle 指针倾斜角度（度）
func (c *Controller) PointerAngle() float64 { return c.kick.Angle() }

// Reveal 奖金揭晓状态
func (c *Controller) Reveal() *PrizeReveal { return c.reveal }

// Halo 空闲光环粒子模拟
func (c *Controller) Halo() *particle.Simulation { return c.halo }

// Confetti 中奖彩带粒子模拟
func (c *Controller) Confetti() *particle.Simulation { return c.confetti }

// Config 转盘配置
func (c *Controller) Config() *config.WheelConfig { return c.cfg }

// Tier 创建控制器时使用的画质等级
func (c *Controller) Tier() config.Tier { return c.tier }
