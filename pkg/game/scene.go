package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可更新、可绘制的画面（转盘、粒子查看器等）
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为距上一次更新的秒数
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 场景退出时需要持久化状态（玩家设置）并停止帧回调时实现此接口
//
// SaveOnExit 在以下时机被调用：
//   - SceneManager 切换到其他场景
//   - 窗口关闭或进程收到退出信号
//
// 返回 false 表示保存失败，程序仍会继续退出。
type Saveable interface {
	SaveOnExit() bool
}
