// Package device 每个进程只做一次的设备画质分级
package device

import (
	"log"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/frame"
	"github.com/decker502/prizewheel/pkg/utils"
)

// ConnectionEnv 网络类型环境变量（slow-2g、2g、3g、4g……）
// 桌面端没有其他来源
const ConnectionEnv = "PRIZEWHEEL_CONNECTION"

// Signals 从宿主收集的能力信号
// 零值表示未知，不会触发降级
type Signals struct {
	Connection string
	MemoryGB   float64
	Cores      int
	Mobile     bool
}

// Profile 分级结果（只读）
type Profile struct {
	Tier          config.Tier
	ReducedMotion bool
	ProbeCount    int
	Signals       Signals
	Forced        bool
}

// TierConfig 当前等级的粒子预算
func (p Profile) TierConfig() config.TierConfig {
	return config.TierConfigFor(p.Tier)
}

// DetectSignals 读取核心数、内存、移动端构建标记和网络类型
func DetectSignals() Signals {
	return Signals{
		Connection: strings.ToLower(strings.TrimSpace(os.Getenv(ConnectionEnv))),
		MemoryGB:   float64(totalMemory()) / (1 << 30),
		Cores:      runtime.NumCPU(),
		Mobile:     utils.IsMobile(),
	}
}

// Probe 在 clock 上忙循环 budget 时长，返回迭代次数
func Probe(clock frame.Clock, budget time.Duration) int {
	start := clock.Now()
	count := 0
	for clock.Now()-start < budget {
		count++
	}
	return count
}

// ClassifyCount 仅按阈值把迭代次数映射为等级
func ClassifyCount(cfg config.ProbeConfig, count int) config.Tier {
	switch {
	case count < cfg.LowBelow:
		return config.TierLow
	case count < cfg.MediumBelow:
		return config.TierMedium
	default:
		return config.TierHigh
	}
}

// Classify 在探测结果上叠加宿主信号
//   - 慢速网络、内存小或核心少：降为低档
//   - 内存较小的移动设备：最高中档
func Classify(cfg config.ProbeConfig, s Signals, count int) config.Tier {
	tier := ClassifyCount(cfg, count)

	if s.Connection != "" && slices.Contains(cfg.SlowConnections, s.Connection) {
		return config.TierLow
	}
	if s.MemoryGB > 0 && s.MemoryGB <= cfg.LowMemoryGB {
		return config.TierLow
	}
	if s.Cores > 0 && s.Cores <= cfg.LowCores {
		return config.TierLow
	}
	if s.Mobile && s.MemoryGB > 0 && s.MemoryGB <= cfg.MobileMediumMemoryGB && tier > config.TierMedium {
		return config.TierMedium
	}
	return tier
}

// Detect 运行探测并分级
func Detect(cfg config.ProbeConfig, clock frame.Clock, s Signals) Profile {
	count := Probe(clock, cfg.Budget)
	tier := Classify(cfg, s, count)
	log.Printf("[DeviceTier] %s iterations in %v, %d cores, %s RAM, connection %q, mobile=%v → %s",
		humanize.Comma(int64(count)), cfg.Budget, s.Cores,
		humanize.IBytes(uint64(s.MemoryGB*(1<<30))), s.Connection, s.Mobile, tier)
	return Profile{
		Tier:          tier,
		ReducedMotion: tier == config.TierLow,
		ProbeCount:    count,
		Signals:       s,
	}
}

// Forced 为玩家或命令行指定的等级构造 Profile
func Forced(t config.Tier) Profile {
	return Profile{Tier: t, ReducedMotion: t == config.TierLow, Forced: true}
}

var session struct {
	once    sync.Once
	profile Profile
	ready   bool
}

// Init 首次调用时分级并缓存结果，之后直接返回缓存
// force 非 nil 时跳过探测
func Init(cfg config.ProbeConfig, force *config.Tier) Profile {
	session.once.Do(func() {
		if force != nil {
			session.profile = Forced(*force)
			log.Printf("[DeviceTier] tier forced to %s", *force)
		} else {
			session.profile = Detect(cfg, frame.NewMonotonicClock(), DetectSignals())
		}
		session.ready = true
	})
	return session.profile
}

// Session 返回 Init 计算的结果
func Session() (Profile, bool) {
	return session.profile, session.ready
}
