package wheel

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/frame"
	"github.com/decker502/prizewheel/pkg/utils"
)

// Phase 动画器状态
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSpinning
	PhaseBouncing
)

func (p Phase) String() string {
	switch p {
	case PhaseSpinning:
		return "spinning"
	case PhaseBouncing:
		return "bouncing"
	default:
		return "idle"
	}
}

// Observer 每个渲染帧调用一次，调用时转角已写入 sink
// 旋转阶段 progress ∈ [0,1]，回弹阶段 progress ∈ (1,2]
type Observer func(rotation, progress float64)

// RotationSink 接收转盘主体的角度（度）
type RotationSink interface {
	SetRotation(deg float64)
}

// RotationSinkFunc 把函数适配为 RotationSink
type RotationSinkFunc func(deg float64)

// SetRotation 调用 f(deg)
func (f RotationSinkFunc) SetRotation(deg float64) { f(deg) }

// AnimatorConfig 两个阶段解析后的时间参数
type AnimatorConfig struct {
	SpinDuration   config.DurationRange
	BounceDuration time.Duration
	Ease           utils.Easing
	BounceEase     utils.Easing
}

// AnimatorConfigFrom 从 SpinConfig 解析缓动曲线名称
func AnimatorConfigFrom(c config.SpinConfig) (AnimatorConfig, error) {
	ease, err := utils.EasingByName(c.Easing)
	if err != nil {
		return AnimatorConfig{}, fmt.Errorf("%w: spin easing: %v", config.ErrInvalidConfiguration, err)
	}
	bounce, err := utils.EasingByName(c.BounceEasing)
	if err != nil {
		return AnimatorConfig{}, fmt.Errorf("%w: bounce easing: %v", config.ErrInvalidConfiguration, err)
	}
	cfg := AnimatorConfig{
		SpinDuration:   c.Duration,
		BounceDuration: c.BounceDuration,
		Ease:           ease,
		BounceEase:     bounce,
	}
	return cfg, cfg.Validate()
}

// Validate 拒绝非正时长和缺失的缓动曲线
func (c AnimatorConfig) Validate() error {
	if c.SpinDuration.Min <= 0 || c.SpinDuration.Max < c.SpinDuration.Min {
		return fmt.Errorf("%w: spin duration [%v, %v] must be positive and ordered",
			config.ErrInvalidConfiguration, c.SpinDuration.Min, c.SpinDuration.Max)
	}
	if c.BounceDuration <= 0 {
		return fmt.Errorf("%w: bounce duration %v must be positive", config.ErrInvalidConfiguration, c.BounceDuration)
	}
	if c.Ease == nil || c.BounceEase == nil {
		return fmt.Errorf("%w: easing curves must be set", config.ErrInvalidConfiguration)
	}
	return nil
}

// SpinRequest 一次旋转的参数
type SpinRequest struct {
	Plan             SpinPlan
	OvershootDegrees float64
	Observer         Observer
	OnComplete       func()
}

// spinRun 一次 Start 调用的运行状态
// Animator.run 指向它时才是当前运行，每一帧先检查这一点
type spinRun struct {
	req        SpinRequest
	phase      Phase
	phaseStart time.Duration
	duration   time.Duration

	startRotation float64
	totalDelta    float64
	overshoot     float64
	shortStop     float64
}

// Animator 旋转动画器：Idle → Spinning → Bouncing → Idle
//
// 转角不做取模，只在这里写入。
// 所有方法都必须在帧回调所在的 goroutine 上调用。
type Animator struct {
	frames   frame.Requester
	task     *frame.Task
	cfg      AnimatorConfig
	rng      utils.Rand
	sink     RotationSink
	rotation float64
	run      *spinRun
}

// NewAnimator 校验配置并把初始转角写入 sink
func NewAnimator(frames frame.Requester, cfg AnimatorConfig, rng utils.Rand, initialRotation float64, sink RotationSink) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: animator needs a random source", config.ErrInvalidConfiguration)
	}
	a := &Animator{
		frames:   frames,
		task:     frame.NewTask(frames),
		cfg:      cfg,
		rng:      rng,
		sink:     sink,
		rotation: initialRotation,
	}
	a.apply(initialRotation)
	return a, nil
}

// Rotation 当前转角
func (a *Animator) Rotation() float64 {
	return a.rotation
}

// Phase 当前运行所处阶段，空闲时为 PhaseIdle
func (a *Animator) Phase() Phase {
	if a.run == nil {
		return PhaseIdle
	}
	return a.run.phase
}

// Active 是否有动画在运行
func (a *Animator) Active() bool {
	return a.run != nil
}

// Start 从当前转角开始新的旋转
// 已有运行会先被取消，且不会触发其完成回调。
//
// 无法注册帧回调时直接吸附到目标角度并同步完成（无动画降级）。
func (a *Animator) Start(req SpinRequest) error {
	if req.OvershootDegrees < 0 {
		return fmt.Errorf("%w: overshoot %v must not be negative", config.ErrInvalidConfiguration, req.OvershootDegrees)
	}
	// 计划必须基于当前转角计算，否则最终吸附会让转盘倒转
	if req.Plan.TargetRotation < a.rotation {
		return fmt.Errorf("%w: target %.2f is behind rotation %.2f", config.ErrInvalidConfiguration, req.Plan.TargetRotation, a.rotation)
	}
	a.Cancel()

	start := a.rotation
	travel := float64(req.Plan.FullSpins)*360 + NormalizeDegrees(req.Plan.TargetRotation-start)
	overshoot := min(req.OvershootDegrees, travel)

	run := &spinRun{
		req:           req,
		phase:         PhaseSpinning,
		duration:      a.sampleDuration(),
		startRotation: start,
		totalDelta:    travel - overshoot,
		overshoot:     overshoot,
	}
	if a.frames != nil {
		run.phaseStart = a.frames.Now()
	}
	a.run = run

	if err := a.task.Schedule(a.step(run)); err != nil {
		log.Printf("[SpinAnimator] frame callback unavailable (%v), snapping to %.2f", err, req.Plan.TargetRotation)
		a.complete(run)
	}
	return nil
}

// Cancel 停止当前运行
// 转角保持在当前值，完成回调不会触发
func (a *Animator) Cancel() {
	a.task.Cancel()
	a.run = nil
}

func (a *Animator) sampleDuration() time.Duration {
	lo, hi := a.cfg.SpinDuration.Min, a.cfg.SpinDuration.Max
	return lo + time.Duration(utils.RandomInRange(a.rng, 0, float64(hi-lo)))
}

func (a *Animator) apply(rot float64) {
	a.rotation = rot
	if a.sink != nil {
		a.sink.SetRotation(rot)
	}
}

func (a *Animator) notify(run *spinRun, progress float64) {
	if run.req.Observer != nil {
		run.req.Observer(a.rotation, progress)
	}
}

func (a *Animator) step(run *spinRun) frame.Callback {
	return func(now time.Duration) {
		if a.run != run {
			return
		}
		elapsed := now - run.phaseStart

		switch run.phase {
		case PhaseSpinning:
			p := min(float64(elapsed)/float64(run.duration), 1)
			if p < 0 {
				p = 0
			}
			a.apply(run.startRotation + a.cfg.Ease(p)*run.totalDelta)
			a.notify(run, p)
			// 观察者回调里可能启动或取消了运行
			if a.run != run {
				return
			}
			if p >= 1 {
				run.phase = PhaseBouncing
				run.phaseStart = now
				run.shortStop = a.rotation
			}

		case PhaseBouncing:
			tb := min(float64(elapsed)/float64(a.cfg.BounceDuration), 1)
			if tb < 0 {
				tb = 0
			}
			if tb >= 1 {
				a.complete(run)
				return
			}
			a.apply(run.shortStop + a.cfg.BounceEase(tb)*run.overshoot)
			a.notify(run, 1+tb)
			if a.run != run {
				return
			}
		}

		if err := a.task.Schedule(a.step(run)); err != nil {
			log.Printf("[SpinAnimator] lost frame callback mid-run (%v), snapping", err)
			a.complete(run)
		}
	}
}

// complete 精确吸附到目标角度，上报最后一帧，并触发一次 OnComplete
func (a *Animator) complete(run *spinRun) {
	a.task.Finish()
	run.phase = PhaseIdle
	a.apply(run.req.Plan.TargetRotation)
	a.notify(run, 2)
	if a.run != run {
		return
	}
	a.run = nil
	if run.req.OnComplete != nil {
		run.req.OnComplete()
	}
}
