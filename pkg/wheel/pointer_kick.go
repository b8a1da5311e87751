package wheel

import (
	"time"

	"github.com/decker502/prizewheel/pkg/frame"
	"github.com/decker502/prizewheel/pkg/utils"
)

// PointerKick 指针抖动
// 每次扇区边界经过指针时，指针倾斜后回弹；新的抖动从零开始
type PointerKick struct {
	task     *frame.Task
	frames   frame.Requester
	degrees  float64
	duration time.Duration
	disabled bool

	start time.Duration
	angle float64
}

// NewPointerKick 创建幅度为 degrees、时长为 duration 的抖动
// disabled 为 true 时（减少动画）忽略所有 Kick
func NewPointerKick(frames frame.Requester, degrees float64, duration time.Duration, disabled bool) *PointerKick {
	return &PointerKick{
		task:     frame.NewTask(frames),
		frames:   frames,
		degrees:  degrees,
		duration: duration,
		disabled: disabled || duration <= 0 || frames == nil,
	}
}

// Angle 当前倾斜角度（度）
func (k *PointerKick) Angle() float64 {
	return k.angle
}

// Active 是否正在抖动
func (k *PointerKick) Active() bool {
	return k.task.Active()
}

// Kick 重新开始抖动
func (k *PointerKick) Kick() {
	if k.disabled {
		return
	}
	k.task.Cancel()
	k.start = k.frames.Now()
	k.angle = 0
	if err := k.task.Schedule(k.step); err != nil {
		k.angle = 0
	}
}

// Stop 取消抖动并复位指针
func (k *PointerKick) Stop() {
	k.task.Cancel()
	k.angle = 0
}

func (k *PointerKick) step(now time.Duration) {
	t := utils.Clamp(float64(now-k.start)/float64(k.duration), 0, 1)
	k.angle = KickAngle(t, k.degrees)
	if t >= 1 {
		k.angle = 0
		k.task.Finish()
		return
	}
	if err := k.task.Schedule(k.step); err != nil {
		k.angle = 0
	}
}

// KickAngle 关键帧曲线 0 → 峰值 → 0
func KickAngle(t, peak float64) float64 {
	if t <= 0 || t >= 1 {
		return 0
	}
	if t < 0.5 {
		return peak * utils.EaseInOutCubic(t*2)
	}
	return peak * (1 - utils.EaseInOutCubic((t-0.5)*2))
}
