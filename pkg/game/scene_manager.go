package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 保证同一时刻只有一个场景在更新和绘制
// 场景被替换或应用退出时，实现 Saveable 的旧场景会先保存并停止。
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager 创建没有活动场景的管理器，用 SwitchTo 设置初始场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 切换活动场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	sm.release()
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Shutdown 释放当前场景；返回保存是否成功
func (sm *SceneManager) Shutdown() bool {
	ok := sm.release()
	sm.currentScene = nil
	return ok
}

func (sm *SceneManager) release() bool {
	s, ok := sm.currentScene.(Saveable)
	if !ok {
		return true
	}
	if !s.SaveOnExit() {
		log.Printf("[SceneManager] Warning: scene %T failed to save on exit", sm.currentScene)
		return false
	}
	return true
}
