package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSectors 转盘的 31 个扇区奖金（索引 0 为大奖）
var DefaultSectors = []int{
	1000, 50, 100, 150, 200, 250, 300, 50, 100, 150, 200, 250, 300, 50, 100, 150,
	200, 250, 300, 50, 100, 150, 200, 250, 300, 50, 100, 150, 200, 250, 300,
}

// JackpotValue 大奖扇区的奖金值
const JackpotValue = 1000

// SectorColor 扇区底色：大奖绿色，其余黑红交替
func SectorColor(value, index int) string {
	if value == JackpotValue {
		return "#1b8f3a"
	}
	if index%2 == 0 {
		return "#111111"
	}
	return "#c62828"
}

// DurationRange 闭区间时长范围
type DurationRange struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

// SpinConfig 旋转动画配置
//
// 时长与回弹幅度均作为范围配置，每次旋转随机取值。
type SpinConfig struct {
	FullSpins        IntRange      `yaml:"fullSpins"`        // 额外整圈数
	LowTierFullSpins IntRange      `yaml:"lowTierFullSpins"` // 低端设备使用的整圈数
	Duration         DurationRange `yaml:"duration"`         // 主旋转阶段时长
	BounceDuration   time.Duration `yaml:"bounceDuration"`   // 回弹阶段时长
	Overshoot        FloatRange    `yaml:"overshoot"`        // 回弹角度（度）
	Easing           string        `yaml:"easing"`           // 主旋转缓动
	BounceEasing     string        `yaml:"bounceEasing"`     // 回弹缓动
}

// PointerConfig 指针拨动配置（扇区边界经过指针时触发）
type PointerConfig struct {
	KickDegrees  float64       `yaml:"kickDegrees"`
	KickDuration time.Duration `yaml:"kickDuration"`
}

// RevealConfig 中奖展示配置
type RevealConfig struct {
	CounterDuration time.Duration `yaml:"counterDuration"` // 奖金数字滚动时长（四次方缓出）
	TitleDuration   time.Duration `yaml:"titleDuration"`   // 标题弹出时长（回弹缓出）
	TitleTension    float64       `yaml:"titleTension"`    // 标题回弹张力
}

// ProbeConfig 设备性能探测配置
type ProbeConfig struct {
	Budget               time.Duration `yaml:"budget"`               // 空转计数时长
	LowBelow             int           `yaml:"lowBelow"`             // 计数低于此值为 low
	MediumBelow          int           `yaml:"mediumBelow"`          // 计数低于此值为 medium
	LowMemoryGB          float64       `yaml:"lowMemoryGB"`          // 内存不超过此值强制 low
	LowCores             int           `yaml:"lowCores"`             // 核心数不超过此值强制 low
	MobileMediumMemoryGB float64       `yaml:"mobileMediumMemoryGB"` // 移动端内存不超过此值最高 medium
	SlowConnections      []string      `yaml:"slowConnections"`      // 视为弱网的网络类型
}

// SoundConfig 音效配置
type SoundConfig struct {
	SampleRate int     `yaml:"sampleRate"`
	TickVolume float64 `yaml:"tickVolume"`
	WinVolume  float64 `yaml:"winVolume"`
}

// WheelConfig 转盘完整静态配置
// 构造时提供，运行期间不变。
type WheelConfig struct {
	Sectors        []int         `yaml:"sectors"`
	SingleSpin     bool          `yaml:"singleSpin"` // 每次会话只允许旋转一次
	Spin           SpinConfig    `yaml:"spin"`
	Pointer        PointerConfig `yaml:"pointer"`
	Reveal         RevealConfig  `yaml:"reveal"`
	Probe          ProbeConfig   `yaml:"probe"`
	Halo           EmitterConfig `yaml:"halo"`
	Confetti       EmitterConfig `yaml:"confetti"`
	ConfettiBudget TierBudgets   `yaml:"confettiBudget"`
	DimmedHalo     float64       `yaml:"dimmedHalo"` // 旋转后光环透明度
	Sound          SoundConfig   `yaml:"sound"`
}

// DefaultWheelConfig 返回默认配置
func DefaultWheelConfig() *WheelConfig {
	sectors := make([]int, len(DefaultSectors))
	copy(sectors, DefaultSectors)
	return &WheelConfig{
		Sectors:    sectors,
		SingleSpin: true,
		Spin: SpinConfig{
			FullSpins:        IntRange{Min: 5, Max: 7},
			LowTierFullSpins: IntRange{Min: 3, Max: 4},
			Duration:         DurationRange{Min: 4 * time.Second, Max: 6 * time.Second},
			BounceDuration:   800 * time.Millisecond,
			Overshoot:        FloatRange{Min: 3, Max: 5},
			Easing:           "cubic-out",
			BounceEasing:     "quad-out",
		},
		Pointer: PointerConfig{
			KickDegrees:  -8,
			KickDuration: 120 * time.Millisecond,
		},
		Reveal: RevealConfig{
			CounterDuration: 1500 * time.Millisecond,
			TitleDuration:   600 * time.Millisecond,
			TitleTension:    1.70158,
		},
		Probe: ProbeConfig{
			Budget:               5 * time.Millisecond,
			LowBelow:             1000,
			MediumBelow:          2000,
			LowMemoryGB:          2,
			LowCores:             2,
			MobileMediumMemoryGB: 4,
			SlowConnections:      []string{"slow-2g", "2g"},
		},
		Halo:           DefaultHaloConfig(),
		Confetti:       DefaultConfettiConfig(),
		ConfettiBudget: TierBudgets{Low: 40, Medium: 70, High: 100},
		DimmedHalo:     0.2,
		Sound: SoundConfig{
			SampleRate: 48000,
			TickVolume: 0.35,
			WinVolume:  0.6,
		},
	}
}

// SectorCount 扇区数量
func (c *WheelConfig) SectorCount() int {
	return len(c.Sectors)
}

// AngleStep 每个扇区的角度
func (c *WheelConfig) AngleStep() float64 {
	return 360 / float64(len(c.Sectors))
}

// FullSpinsFor 根据设备分级选择整圈数范围
func (c *WheelConfig) FullSpinsFor(t Tier) IntRange {
	if t == TierLow {
		return c.Spin.LowTierFullSpins
	}
	return c.Spin.FullSpins
}

// Validate 检查配置，所有错误都包装 ErrInvalidConfiguration
func (c *WheelConfig) Validate() error {
	if len(c.Sectors) == 0 {
		return fmt.Errorf("%w: sector count must be positive", ErrInvalidConfiguration)
	}
	for name, r := range map[string]IntRange{"fullSpins": c.Spin.FullSpins, "lowTierFullSpins": c.Spin.LowTierFullSpins} {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("%w: %s range [%d, %d] invalid", ErrInvalidConfiguration, name, r.Min, r.Max)
		}
	}
	if c.Spin.Duration.Min <= 0 || c.Spin.Duration.Max < c.Spin.Duration.Min {
		return fmt.Errorf("%w: spin duration [%v, %v] must be positive and ordered", ErrInvalidConfiguration, c.Spin.Duration.Min, c.Spin.Duration.Max)
	}
	if c.Spin.BounceDuration <= 0 {
		return fmt.Errorf("%w: bounce duration %v must be positive", ErrInvalidConfiguration, c.Spin.BounceDuration)
	}
	if c.Spin.Overshoot.Min < 0 || c.Spin.Overshoot.Max < c.Spin.Overshoot.Min {
		return fmt.Errorf("%w: overshoot [%v, %v] invalid", ErrInvalidConfiguration, c.Spin.Overshoot.Min, c.Spin.Overshoot.Max)
	}
	if c.Pointer.KickDuration <= 0 {
		return fmt.Errorf("%w: pointer kick duration %v must be positive", ErrInvalidConfiguration, c.Pointer.KickDuration)
	}
	if c.Reveal.CounterDuration <= 0 || c.Reveal.TitleDuration <= 0 {
		return fmt.Errorf("%w: reveal durations must be positive", ErrInvalidConfiguration)
	}
	if c.Probe.Budget <= 0 || c.Probe.LowBelow > c.Probe.MediumBelow {
		return fmt.Errorf("%w: probe budget/thresholds invalid", ErrInvalidConfiguration)
	}
	if c.ConfettiBudget.Low < 0 || c.ConfettiBudget.Medium < 0 || c.ConfettiBudget.High < 0 {
		return fmt.Errorf("%w: confetti budgets must not be negative", ErrInvalidConfiguration)
	}
	if c.Sound.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfiguration, c.Sound.SampleRate)
	}
	if err := c.Halo.Validate(); err != nil {
		return fmt.Errorf("halo: %w", err)
	}
	if err := c.Confetti.Validate(); err != nil {
		return fmt.Errorf("confetti: %w", err)
	}
	return nil
}

// ParseWheelConfig 将 YAML 覆盖到默认配置之上并校验
// YAML 中未出现的字段保持默认值。
func ParseWheelConfig(data []byte) (*WheelConfig, error) {
	cfg := DefaultWheelConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse wheel config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWheelConfig 从文件加载转盘配置
func LoadWheelConfig(path string) (*WheelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wheel config %s: %w", path, err)
	}
	return ParseWheelConfig(data)
}
