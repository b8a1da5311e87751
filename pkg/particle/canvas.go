package particle

// DrawCommand 本帧要绘制的一个粒子（逻辑坐标）
type DrawCommand struct {
	X, Y       float64
	Radius     float64
	Alpha      float64
	ColorClass int
}

// Canvas 每次接收一帧的绘制命令
type Canvas interface {
	BeginFrame()
	Draw(cmd DrawCommand)
}

// Recorder 把最近一帧保存在内存中的 Canvas（测试和 ebiten 画布共用）
type Recorder struct {
	Frames   int
	Commands []DrawCommand
}

// BeginFrame 丢弃上一帧
func (r *Recorder) BeginFrame() {
	r.Frames++
	r.Commands = r.Commands[:0]
}

// Draw 记录 cmd
func (r *Recorder) Draw(cmd DrawCommand) {
	r.Commands = append(r.Commands, cmd)
}
