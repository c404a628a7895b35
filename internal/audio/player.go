// Package audio plays the game's cues through the system speaker. When no
// audio device is available the Player stays silent and the game runs the
// same.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gift-tornado/internal/present"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player turns presentation cues into sound. It satisfies render.Speaker.
type Player struct {
	mu    sync.Mutex
	live  bool
	mixer *beep.Mixer

	music     *beep.Ctrl
	resampler *beep.Resampler
	tempo     float64
	playing   bool
}

// Silent returns a Player that tracks state but makes no sound.
func Silent() *Player {
	return &Player{mixer: &beep.Mixer{}, tempo: 1}
}

// New opens the speaker. If it cannot, the error is logged and a silent
// Player is returned.
func New(log *slog.Logger) *Player {
	p := Silent()
	if err := p.init(); err != nil {
		log.Warn("audio disabled", "err", err)
		return p
	}
	return p
}

func (p *Player) init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.live = true
	return nil
}

// Live reports whether sound reaches a device.
func (p *Player) Live() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// Play starts a cue. One-shot cues overlap freely; music restarts the
// background loop.
func (p *Player) Play(c present.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch c {
	case present.CueMusic:
		p.stopMusic()
		p.startMusic()
	case present.CueMusicStop:
		p.stopMusic()
	default:
		if !p.live {
			return
		}
		if s := CueStreamer(c, sampleRate); s != nil {
			p.add(s)
		}
	}
}

// SetTempo changes the music playback rate; 1 is normal speed.
func (p *Player) SetTempo(rate float64) {
	if rate <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tempo = rate
	if p.resampler == nil {
		return
	}
	p.locked(func() { p.resampler.SetRatio(rate) })
}

// Playing reports whether the background loop is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) Tempo() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tempo
}

// Close silences everything.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopMusic()
	p.locked(p.mixer.Clear)
}

func (p *Player) startMusic() {
	p.playing = true
	p.resampler = beep.ResampleRatio(4, p.tempo, NewJingleGenerator(sampleRate))
	p.music = &beep.Ctrl{Streamer: newVolume(p.resampler, musicVolume)}
	if p.live {
		p.add(p.music)
	}
}

// stopMusic detaches the loop; the mixer drops a Ctrl with no streamer.
func (p *Player) stopMusic() {
	p.playing = false
	if p.music == nil {
		return
	}
	music := p.music
	p.locked(func() {
		music.Paused = true
		music.Streamer = nil
	})
	p.music = nil
	p.resampler = nil
}

func (p *Player) add(s beep.Streamer) {
	p.locked(func() { p.mixer.Add(s) })
}

// locked runs fn while holding the speaker lock, if the speaker is open.
func (p *Player) locked(fn func()) {
	if !p.live {
		fn()
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	fn()
}
