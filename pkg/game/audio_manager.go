package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/prizewheel/pkg/sound"
)

// AudioManager 音频管理器
// 职责：
//   - 播放转盘的刻度点击音和中奖音
//   - 从 SettingsManager 读取音效开关和音量
//
// audio.Context 为 nil 时进入静音降级模式，所有播放调用直接返回。
// 实现 wheel.Feedback 接口。
type AudioManager struct {
	settingsManager *SettingsManager
	tickPlayer      *audio.Player
	winPlayer       *audio.Player
}

// NewAudioManager 基于合成好的音效创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，采样率必须与 bank 一致；可为 nil
//   - bank: 预渲染的 PCM 音效
//   - sm: 设置管理器，可为 nil（始终播放，音量 1.0）
func NewAudioManager(ctx *audio.Context, bank *sound.Bank, sm *SettingsManager) *AudioManager {
	am := &AudioManager{settingsManager: sm}
	if ctx == nil || bank == nil {
		log.Printf("[AudioManager] No audio context, sound disabled")
		return am
	}
	if ctx.SampleRate() != bank.SampleRate {
		log.Printf("[AudioManager] Warning: context rate %d != bank rate %d, sound disabled", ctx.SampleRate(), bank.SampleRate)
		return am
	}
	am.tickPlayer = ctx.NewPlayerFromBytes(bank.TickPCM)
	am.winPlayer = ctx.NewPlayerFromBytes(bank.WinPCM)
	return am
}

// Enabled 音效当前是否会播放
func (am *AudioManager) Enabled() bool {
	if am.tickPlayer == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}
	return true
}

// Tick 播放刻度点击音（每经过一个扇区边界）
func (am *AudioManager) Tick() {
	am.play(am.tickPlayer, "tick")
}

// Win 播放中奖音
func (am *AudioManager) Win(prize int) {
	if am.play(am.winPlayer, "win") {
		log.Printf("[AudioManager] Playing win chime for prize %d", prize)
	}
}

func (am *AudioManager) play(player *audio.Player, name string) bool {
	if player == nil || !am.Enabled() {
		return false
	}
	player.SetVolume(am.volume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind %s: %v", name, err)
	}
	player.Play()
	return true
}

func (am *AudioManager) volume() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	return am.settingsManager.GetSettings().SoundVolume
}
