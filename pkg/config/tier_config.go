package config

import (
	"fmt"
	"strings"
)

// Tier 设备性能分级
// 由 device 包在启动时探测一次，之后只读。
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// String 返回分级名称（low / medium / high）
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier 解析分级名称，大小写不敏感
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return TierLow, nil
	case "medium":
		return TierMedium, nil
	case "high":
		return TierHigh, nil
	}
	return TierLow, fmt.Errorf("%w: unknown tier %q", ErrInvalidConfiguration, s)
}

// TierConfig 每个分级对应的粒子资源预算
type TierConfig struct {
	MaxParticles  int     // 粒子池容量
	SpawnPerFrame int     // 持续发射模式下每帧（16.67ms）生成数量
	RenderScale   float64 // 离屏画布分辨率缩放
}

// TierTable 分级 → 粒子预算静态表
// 运行期间不会重新计算。
var TierTable = map[Tier]TierConfig{
	TierLow:    {MaxParticles: 50, SpawnPerFrame: 1, RenderScale: 0.6},
	TierMedium: {MaxParticles: 90, SpawnPerFrame: 2, RenderScale: 0.8},
	TierHigh:   {MaxParticles: 140, SpawnPerFrame: 3, RenderScale: 1.0},
}

// TierConfigFor 查询分级对应的预算，未知分级按 low 处理
func TierConfigFor(t Tier) TierConfig {
	if cfg, ok := TierTable[t]; ok {
		return cfg
	}
	return TierTable[TierLow]
}

// TierBudgets 按分级配置的单个整数预算（例如中奖彩带粒子数）
type TierBudgets struct {
	Low    int `yaml:"low"`
	Medium int `yaml:"medium"`
	High   int `yaml:"high"`
}

// For 返回指定分级的预算
func (b TierBudgets) For(t Tier) int {
	switch t {
	case TierHigh:
		return b.High
	case TierMedium:
		return b.Medium
	default:
		return b.Low
	}
}
