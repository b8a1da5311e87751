// Package particle 实现容量受限的粒子循环（按钮火焰光环和中奖彩带）
package particle

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/frame"
	"github.com/decker502/prizewheel/pkg/utils"
)

// Simulation 在帧循环上用一个发射器驱动一个粒子池
//
// 持续模式：低于容量时每帧生成新粒子。
// 爆发模式：Start 时一次性填满，之后不再生成，粒子池清空后自行停止。
type Simulation struct {
	cfg     config.EmitterConfig
	tier    config.TierConfig
	rng     utils.Rand
	canvas  Canvas
	pool    *Pool
	emitter *Emitter
	task    *frame.Task

	alphaScale float64
	clock      float64 // 已模拟帧数，驱动湍流
	lastNow    time.Duration
	hasLast    bool
	running    bool
	drained    bool
	onDrained  func()
}

// NewSimulation 校验配置，并按 tier.MaxParticles 设置粒子池容量
func NewSimulation(frames frame.Requester, cfg config.EmitterConfig, tier config.TierConfig, rng utils.Rand, canvas Canvas) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tier.MaxParticles < 0 || tier.SpawnPerFrame < 0 {
		return nil, fmt.Errorf("%w: tier budget %+v must not be negative", config.ErrInvalidConfiguration, tier)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: simulation needs a random source", config.ErrInvalidConfiguration)
	}
	alpha := cfg.AlphaScale
	if alpha == 0 {
		alpha = 1
	}
	return &Simulation{
		cfg:        cfg,
		tier:       tier,
		rng:        rng,
		canvas:     canvas,
		pool:       NewPool(tier.MaxParticles),
		emitter:    NewEmitter(cfg, rng),
		task:       frame.NewTask(frames),
		alphaScale: alpha,
	}, nil
}

// SetTurbulence 设置速度场，nil 表示关闭
func (s *Simulation) SetTurbulence(t Turbulence) {
	s.emitter.turbulence = t
}

// OnDrained 爆发模式粒子全部消失时调用一次 fn
func (s *Simulation) OnDrained(fn func()) {
	s.onDrained = fn
}

// SetAlphaScale 修改全局透明度乘数
func (s *Simulation) SetAlphaScale(a float64) {
	s.alphaScale = utils.Clamp(a, 0, 1)
}

// AlphaScale 全局透明度乘数
func (s *Simulation) AlphaScale() float64 {
	return s.alphaScale
}

// Pool 暴露粒子池（用于检查）
func (s *Simulation) Pool() *Pool {
	return s.pool
}

// ActiveCount 存活粒子数
func (s *Simulation) ActiveCount() int {
	return s.pool.Len()
}

// Running 帧循环是否已注册
func (s *Simulation) Running() bool {
	return s.running
}

// Start 按发射策略填充粒子池并注册帧循环
// 对运行中的模拟调用会重新开始；容量为 0 时不做任何事
func (s *Simulation) Start() error {
	s.Stop()
	if s.pool.Capacity() == 0 {
		return nil
	}

	if s.cfg.Policy == config.SpawnBurst || s.cfg.Prefill {
		s.prefill()
	}
	s.running = true
	s.drained = false
	log.Printf("[ParticleSimulation] start %s: %s/%s particles",
		s.cfg.Policy, humanize.Comma(int64(s.pool.Len())), humanize.Comma(int64(s.pool.Capacity())))

	if err := s.task.Schedule(s.step); err != nil {
		// 没有帧循环，永远不会绘制
		log.Printf("[ParticleSimulation] frame callback unavailable: %v", err)
		s.Stop()
		return err
	}
	return nil
}

// Stop 取消帧循环并清空粒子池
func (s *Simulation) Stop() {
	s.task.Cancel()
	s.pool.Clear()
	s.running = false
	s.hasLast = false
}

// prefill 以 [0, maxAge) 内的随机年龄填满所有槽位
func (s *Simulation) prefill() {
	for !s.pool.Full() {
		p, ok := s.pool.Acquire()
		if !ok {
			return
		}
		s.emitter.Reset(p)
		p.Age = s.rng.Float64() * p.MaxAge
	}
}

// SpawnCount 持续发射模式下一帧应新增的粒子数（未做容量检查）
// 追赶帧数同时受 maxCatchUp 与 config.MaxCatchUpLimit 限制。
func SpawnCount(spawnPerFrame int, deltaMs, targetFrameMs, maxCatchUp float64) int {
	dt := utils.Clamp(deltaMs/targetFrameMs, 0, min(maxCatchUp, config.MaxCatchUpLimit))
	return int(math.Ceil(float64(spawnPerFrame) * dt))
}

func (s *Simulation) step(now time.Duration) {
	delta := s.cfg.TargetFrameMs
	if s.hasLast {
		delta = float64(now-s.lastNow) / float64(time.Millisecond)
	}
	s.lastNow = now
	s.hasLast = true

	s.Advance(delta)
	if !s.running {
		return
	}
	if err := s.task.Schedule(s.step); err != nil {
		log.Printf("[ParticleSimulation] lost frame callback: %v", err)
		s.Stop()
	}
}

// Advance 模拟一帧（deltaMs 毫秒）并发出绘制命令
// 返回本帧生成的粒子数
func (s *Simulation) Advance(deltaMs float64) int {
	if s.pool.Capacity() == 0 || !s.running {
		return 0
	}
	dt := utils.Clamp(deltaMs/s.cfg.TargetFrameMs, 0, s.cfg.MaxCatchUp)
	s.clock += dt

	spawned := 0
	if s.cfg.Policy == config.SpawnContinuous {
		want := SpawnCount(s.tier.SpawnPerFrame, deltaMs, s.cfg.TargetFrameMs, s.cfg.MaxCatchUp)
		for spawned < want {
			p, ok := s.pool.Acquire()
			if !ok {
				break
			}
			s.emitter.Reset(p)
			spawned++
		}
	}

	if s.canvas != nil {
		s.canvas.BeginFrame()
	}
	for i := s.pool.Len() - 1; i >= 0; i-- {
		p := s.pool.At(i)
		if !s.emitter.Update(p, dt, s.clock) {
			s.pool.ReleaseAt(i)
			continue
		}
		if s.canvas != nil {
			s.canvas.Draw(s.emitter.Command(p, s.alphaScale))
		}
	}

	if s.cfg.Policy == config.SpawnBurst && s.pool.Len() == 0 && !s.drained {
		s.drained = true
		s.task.Cancel()
		s.running = false
		s.pool.Clear()
		log.Printf("[ParticleSimulation] burst drained")
		if s.onDrained != nil {
			s.onDrained()
		}
	}
	return spawned
}
