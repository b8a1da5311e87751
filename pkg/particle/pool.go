package particle

// Particle 粒子池中的一条记录
// 除槽位外没有身份，每次复用都由发射器完全重置
type Particle struct {
	X, Y   float64
	VX, VY float64

	Age    float64 // 已存活帧数
	MaxAge float64 // 到期帧数

	SizeClass  int
	ColorClass int
}

// Pool 固定容量的粒子存储
//   - active: 无序的活跃列表
//   - free: 空闲栈
//
// 槽位按需分配，从未分配过的槽位视为空闲，
// 因此 Len()+FreeLen() == Capacity() 始终成立。
type Pool struct {
	capacity  int
	allocated int
	active    []*Particle
	free      []*Particle
}

// NewPool 创建最多容纳 capacity 个粒子的池
// 负容量按 0 处理
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{
		capacity: capacity,
		active:   make([]*Particle, 0, capacity),
	}
}

// Capacity 固定槽位预算
func (p *Pool) Capacity() int { return p.capacity }

// Len 活跃粒子数
func (p *Pool) Len() int { return len(p.active) }

// FreeLen 可供 Acquire 的槽位数
func (p *Pool) FreeLen() int { return len(p.free) + (p.capacity - p.allocated) }

// Full 是否所有槽位都处于活跃状态
func (p *Pool) Full() bool { return len(p.active) >= p.capacity }

// At 第 i 个活跃粒子
func (p *Pool) At(i int) *Particle { return p.active[i] }

// Acquire 把一个槽位移入活跃列表并返回
// 粒子仍保留上一次生命的数据；池满时 ok 为 false
func (p *Pool) Acquire() (pt *Particle, ok bool) {
	if n := len(p.free); n > 0 {
		pt = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else if p.allocated < p.capacity {
		pt = &Particle{}
		p.allocated++
	} else {
		return nil, false
	}
	p.active = append(p.active, pt)
	return pt, true
}

// ReleaseAt 把第 i 个活跃粒子移入空闲栈
// 最后一个活跃粒子会占据它的位置，遍历时应从后往前
func (p *Pool) ReleaseAt(i int) {
	last := len(p.active) - 1
	pt := p.active[i]
	p.active[i] = p.active[last]
	p.active[last] = nil
	p.active = p.active[:last]
	p.free = append(p.free, pt)
}

// Clear 清空两个列表（释放内存，容量不变）
func (p *Pool) Clear() {
	clear(p.active)
	p.active = p.active[:0]
	p.free = nil
	p.allocated = 0
}
