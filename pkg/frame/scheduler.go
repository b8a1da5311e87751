// Package frame 按显示帧调度回调
//
// 模型与浏览器 requestAnimationFrame 一致：第 N 帧中请求的回调在第 N+1 帧执行一次，
// 需要继续运行时必须再次请求。Scheduler.Tick 由游戏循环（ebiten Update）或测试驱动，
// 这里不启动 goroutine，也不阻塞。
package frame

import (
	"errors"
	"time"
)

// ErrSchedulerClosed Close 之后请求回调
var ErrSchedulerClosed = errors.New("frame scheduler closed")

// Callback 参数为所在帧的单调时间戳
type Callback func(now time.Duration)

// Handle 待执行回调的标识，零值不会被分配
type Handle uint64

// Requester 动画依赖的最小接口
type Requester interface {
	RequestFrame(cb Callback) (Handle, error)
	CancelFrame(h Handle)
	Now() time.Duration
}

type pending struct {
	handle Handle
	cb     Callback
}

// Scheduler 每次 Tick 执行一批已请求的回调
type Scheduler struct {
	clock  Clock
	next   Handle
	queue  []pending
	live   map[Handle]struct{}
	frames uint64
	closed bool
}

// NewScheduler 创建从 clock 读取时间的调度器
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{
		clock: clock,
		live:  make(map[Handle]struct{}),
	}
}

// Now 调度器时钟的当前读数
func (s *Scheduler) Now() time.Duration {
	return s.clock.Now()
}

// RequestFrame 把 cb 排到下一次 Tick
func (s *Scheduler) RequestFrame(cb Callback) (Handle, error) {
	if s.closed {
		return 0, ErrSchedulerClosed
	}
	s.next++
	h := s.next
	s.queue = append(s.queue, pending{handle: h, cb: cb})
	s.live[h] = struct{}{}
	return h, nil
}

// CancelFrame 取消待执行回调，未知或已执行的 handle 被忽略
func (s *Scheduler) CancelFrame(h Handle) {
	delete(s.live, h)
}

// Pending 等待下一次 Tick 的回调数
func (s *Scheduler) Pending() int {
	return len(s.live)
}

// Frames 已执行的 Tick 次数
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Tick 按请求顺序执行本次调用之前请求的所有回调
//   - Tick 过程中新请求的回调等到下一次 Tick
//   - 被同一批中更早回调取消的回调会被跳过
func (s *Scheduler) Tick() {
	s.frames++
	if len(s.queue) == 0 {
		return
	}
	now := s.clock.Now()
	batch := s.queue
	s.queue = nil

	for _, p := range batch {
		if _, ok := s.live[p.handle]; !ok {
			continue
		}
		delete(s.live, p.handle)
		p.cb(now)
	}
}

// Close 丢弃所有待执行回调，并拒绝新的请求
func (s *Scheduler) Close() {
	s.closed = true
	s.queue = nil
	clear(s.live)
}
