package frame

import "time"

// Task 带显式活跃标记的自重排帧循环
//
// 每一步执行前都会检查任务的代数：Cancel 使代数加一，
// 已经为旧代数排队的回调即使被执行也只是空操作。
type Task struct {
	frames Requester
	handle Handle
	gen    uint64
	active bool
}

// NewTask 绑定帧请求器
func NewTask(frames Requester) *Task {
	return &Task{frames: frames}
}

// Active 是否有步骤已排队或正在执行
func (t *Task) Active() bool {
	return t.active
}

// Schedule 为下一帧请求 step，替换已排队的步骤
// 注册失败时任务保持非活跃
func (t *Task) Schedule(step Callback) error {
	if t.frames == nil {
		t.active = false
		return ErrSchedulerClosed
	}
	if t.handle != 0 {
		t.frames.CancelFrame(t.handle)
		t.handle = 0
	}
	gen := t.gen
	h, err := t.frames.RequestFrame(func(now time.Duration) {
		if !t.active || t.gen != gen {
			return
		}
		t.handle = 0
		step(now)
	})
	if err != nil {
		t.active = false
		return err
	}
	t.handle = h
	t.active = true
	return nil
}

// Cancel 同步丢弃已排队的步骤，并使旧回调失效
func (t *Task) Cancel() {
	if t.handle != 0 && t.frames != nil {
		t.frames.CancelFrame(t.handle)
	}
	t.handle = 0
	t.gen++
	t.active = false
}

// Finish 在最后一步中把任务标记为空闲
// 每一步要么 Schedule 下一步，要么 Finish
func (t *Task) Finish() {
	t.handle = 0
	t.active = false
}
