package wheel

import (
	"fmt"
	"math"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/utils"
)

// SpinPlan 一次旋转的目标
type SpinPlan struct {
	TargetRotation float64
	FullSpins      int
}

// NormalizeDegrees 把任意角度映射到 [0, 360)
func NormalizeDegrees(a float64) float64 {
	return math.Mod(math.Mod(a, 360)+360, 360)
}

// SectorCenter 扇区 i 中心相对扇区 0 起点的角度
func SectorCenter(index, sectorCount int) float64 {
	step := 360 / float64(sectorCount)
	return float64(index)*step + step/2
}

// InitialRotation 转盘初始角度
// 后退半个扇区，使扇区 0 正好居中于指针下方
func InitialRotation(sectorCount int) float64 {
	if sectorCount <= 0 {
		return 0
	}
	return -180 / float64(sectorCount)
}

// SectorAtPointer 转盘处于 rotation 时指针下方的扇区
func SectorAtPointer(rotation float64, sectorCount int) int {
	if sectorCount <= 0 {
		return -1
	}
	step := 360 / float64(sectorCount)
	i := int(math.Floor(NormalizeDegrees(-rotation) / step))
	return i % sectorCount
}

// ComputeSpinPlan 计算让 winnerIndex 在额外旋转 fullSpins 圈后停在指针（0°）下方的转角
//
// 结果满足：
//
//	target-current ∈ [fullSpins*360, (fullSpins+1)*360)
//	target ≡ -SectorCenter(winnerIndex) (mod 360)
func ComputeSpinPlan(winnerIndex, sectorCount int, currentRotation float64, fullSpins int) (SpinPlan, error) {
	if sectorCount <= 0 {
		return SpinPlan{}, fmt.Errorf("%w: sector count %d must be positive", config.ErrInvalidConfiguration, sectorCount)
	}
	if fullSpins < 0 {
		return SpinPlan{}, fmt.Errorf("%w: full spins %d must not be negative", config.ErrInvalidConfiguration, fullSpins)
	}
	if winnerIndex < 0 || winnerIndex >= sectorCount {
		return SpinPlan{}, fmt.Errorf("%w: %d not in [0, %d)", ErrWinnerOutOfRange, winnerIndex, sectorCount)
	}

	desiredEnd := -SectorCenter(winnerIndex, sectorCount)
	norm := NormalizeDegrees(desiredEnd - currentRotation)
	// math.Mod 可能把极小的负余数舍入为 360
	if norm >= 360 {
		norm = 0
	}
	return SpinPlan{
		TargetRotation: currentRotation + float64(fullSpins)*360 + norm,
		FullSpins:      fullSpins,
	}, nil
}

// Planner 旋转规划器
// 从配置区间抽取整圈数，扇区表固定
type Planner struct {
	sectorCount int
	fullSpins   config.IntRange
	rng         utils.Rand
}

// NewPlanner 校验扇区数和整圈数区间
func NewPlanner(sectorCount int, fullSpins config.IntRange, rng utils.Rand) (*Planner, error) {
	if sectorCount <= 0 {
		return nil, fmt.Errorf("%w: sector count %d must be positive", config.ErrInvalidConfiguration, sectorCount)
	}
	if fullSpins.Min < 0 || fullSpins.Max < fullSpins.Min {
		return nil, fmt.Errorf("%w: full spin range [%d, %d] invalid", config.ErrInvalidConfiguration, fullSpins.Min, fullSpins.Max)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: planner needs a random source", config.ErrInvalidConfiguration)
	}
	return &Planner{sectorCount: sectorCount, fullSpins: fullSpins, rng: rng}, nil
}

// SectorCount 扇区数
func (p *Planner) SectorCount() int {
	return p.sectorCount
}

// Plan 计算从 currentRotation 出发、停在 winnerIndex 的旋转计划
func (p *Planner) Plan(winnerIndex int, currentRotation float64) (SpinPlan, error) {
	spins := utils.RandomIntInclusive(p.rng, p.fullSpins.Min, p.fullSpins.Max)
	return ComputeSpinPlan(winnerIndex, p.sectorCount, currentRotation, spins)
}
