package frame

import (
	"sync"
	"time"
)

// Clock 从某个固定起点开始的单调时间
// 不受系统时间调整影响
type Clock interface {
	Now() time.Duration
}

// MonotonicClock 使用运行时单调时钟
type MonotonicClock struct {
	origin time.Time
}

// NewMonotonicClock 以调用时刻为起点
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{origin: time.Now()}
}

// Now 自创建以来经过的时间
func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock 手动推进的时钟（测试和固定步长工具使用）
type ManualClock struct {
	mu  sync.RWMutex
	now time.Duration
}

// NewManualClock 从 start 开始
func NewManualClock(start time.Duration) *ManualClock {
	return &ManualClock{now: start}
}

// Now 当前手动时间
func (c *ManualClock) Now() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set 把时钟设为 t
func (c *ManualClock) Set(t time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance 时钟前进 d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}
