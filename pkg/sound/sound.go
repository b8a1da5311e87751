// Package sound 合成转盘的刻度点击音和中奖音，并渲染为 16 位小端立体声 PCM
package sound

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/decker502/prizewheel/pkg/config"
)

const (
	tickFreq     = 1800.0
	tickDuration = 25 * time.Millisecond
	noteDuration = 110 * time.Millisecond
	chordLength  = 450 * time.Millisecond
)

// 中奖音音符：C6 E6 G6
var chimeNotes = []float64{1046.50, 1318.51, 1567.98}

// decay 让音频流在其长度内按指数衰减到静音
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func newDecay(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, total: rate.N(d)}
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := math.Exp(-5 * float64(d.position) / float64(d.total))
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// volume 把线性增益映射为 effects.Volume，小于等于 0 为静音
func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

func tone(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("sine %.1f Hz: %w", freq, err)
	}
	return newDecay(beep.Take(rate.N(d), sine), d, rate), nil
}

// Tick 每个扇区边界播放的短促点击音
func Tick(cfg config.SoundConfig) (beep.Streamer, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	click, err := tone(rate, tickFreq, tickDuration)
	if err != nil {
		return nil, err
	}
	return volume(click, cfg.TickVolume), nil
}

// Chime 中奖时播放的上行琶音和和弦
func Chime(cfg config.SoundConfig) (beep.Streamer, error) {
	rate := beep.SampleRate(cfg.SampleRate)

	var seq []beep.Streamer
	for _, f := range chimeNotes {
		note, err := tone(rate, f, noteDuration)
		if err != nil {
			return nil, err
		}
		seq = append(seq, note)
	}

	var chord []beep.Streamer
	for _, f := range chimeNotes {
		note, err := tone(rate, f, chordLength)
		if err != nil {
			return nil, err
		}
		chord = append(chord, volume(note, 1.0/float64(len(chimeNotes))))
	}
	seq = append(seq, beep.Mix(chord...))

	return volume(beep.Seq(seq...), cfg.WinVolume), nil
}

// Render 把 s 渲染为交错的 16 位小端立体声 PCM
func Render(s beep.Streamer) ([]byte, error) {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to render sound: %w", err)
	}
	return out, nil
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}

// Bank 所有音效渲染好的 PCM
type Bank struct {
	SampleRate int
	TickPCM    []byte
	WinPCM     []byte
}

// NewBank 一次性合成并渲染所有音效
func NewBank(cfg config.SoundConfig) (*Bank, error) {
	tick, err := Tick(cfg)
	if err != nil {
		return nil, err
	}
	tickPCM, err := Render(tick)
	if err != nil {
		return nil, err
	}
	chime, err := Chime(cfg)
	if err != nil {
		return nil, err
	}
	winPCM, err := Render(chime)
	if err != nil {
		return nil, err
	}
	return &Bank{SampleRate: cfg.SampleRate, TickPCM: tickPCM, WinPCM: winPCM}, nil
}
