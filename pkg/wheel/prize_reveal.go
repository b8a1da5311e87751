package wheel

import (
	"math"
	"time"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/frame"
	"github.com/decker502/prizewheel/pkg/utils"
)

// PrizeReveal 中奖面板动画
//   - 奖金数字从 0 滚动到奖金
//   - 标题弹出，短暂超过原始尺寸后回落
type PrizeReveal struct {
	task *frame.Task
	now  func() time.Duration
	cfg  config.RevealConfig

	prize      int
	start      time.Duration
	counter    int
	titleScale float64
	done       func()
}

// NewPrizeReveal 绑定到帧循环
func NewPrizeReveal(frames frame.Requester, cfg config.RevealConfig) *PrizeReveal {
	r := &PrizeReveal{task: frame.NewTask(frames), cfg: cfg}
	if frames != nil {
		r.now = frames.Now
	}
	return r
}

// Start 显示奖金，两个动画都结束后调用一次 done
func (r *PrizeReveal) Start(prize int, done func()) {
	r.task.Cancel()
	r.prize = prize
	r.counter = 0
	r.titleScale = 0
	r.done = done
	if r.now != nil {
		r.start = r.now()
	}
	if err := r.task.Schedule(r.step); err != nil {
		r.finish()
	}
}

// Stop 隐藏面板，不触发 done
func (r *PrizeReveal) Stop() {
	r.task.Cancel()
	r.done = nil
	r.prize = 0
	r.counter = 0
	r.titleScale = 0
}

// Active 是否仍在播放
func (r *PrizeReveal) Active() bool {
	return r.task.Active()
}

// Prize 正在揭晓的奖金
func (r *PrizeReveal) Prize() int {
	return r.prize
}

// Counter 当前显示的数字
func (r *PrizeReveal) Counter() int {
	return r.counter
}

// TitleScale 标题缩放（会短暂超过 1）
func (r *PrizeReveal) TitleScale() float64 {
	return r.titleScale
}

func (r *PrizeReveal) step(now time.Duration) {
	elapsed := now - r.start
	tc := utils.Clamp(float64(elapsed)/float64(r.cfg.CounterDuration), 0, 1)
	tt := utils.Clamp(float64(elapsed)/float64(r.cfg.TitleDuration), 0, 1)

	r.counter = int(math.Round(utils.EaseOutQuart(tc) * float64(r.prize)))
	r.titleScale = utils.EaseOutBack(tt, r.cfg.TitleTension)

	if tc >= 1 && tt >= 1 {
		r.finish()
		return
	}
	if err := r.task.Schedule(r.step); err != nil {
		r.finish()
	}
}

func (r *PrizeReveal) finish() {
	r.task.Finish()
	r.counter = r.prize
	r.titleScale = 1
	if done := r.done; done != nil {
		r.done = nil
		done()
	}
}
