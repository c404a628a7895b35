package audio

import (
	"math"
	"time"

	"gift-tornado/internal/present"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const sampleRate = beep.SampleRate(44100)

// musicVolume is the level of the background loop relative to the cues.
const musicVolume = 0.3

// CueStreamer builds the sound for a one-shot cue. Music cues are not
// one-shots and return nil.
func CueStreamer(c present.Cue, sr beep.SampleRate) beep.Streamer {
	switch c {
	case present.CueHit:
		return beep.Take(sr.N(250*time.Millisecond), NewGrowlGenerator(sr, 90, 0))
	case present.CueDefeat:
		return beep.Take(sr.N(700*time.Millisecond), NewGrowlGenerator(sr, 110, 60))
	case present.CuePickup:
		return beep.Seq(
			beep.Take(sr.N(90*time.Millisecond), NewBellGenerator(sr, 1318.5)),
			beep.Take(sr.N(220*time.Millisecond), NewBellGenerator(sr, 1975.5)),
		)
	default:
		return nil
	}
}

// newVolume scales s by vol; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// GrowlGenerator is a rough low buzz whose pitch falls by drop Hz per second.
type GrowlGenerator struct {
	sr   beep.SampleRate
	freq float64
	drop float64
	pos  int
}

func NewGrowlGenerator(sr beep.SampleRate, freq, drop float64) *GrowlGenerator {
	return &GrowlGenerator{sr: sr, freq: freq, drop: drop}
}

func (g *GrowlGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		f := math.Max(g.freq-g.drop*t, 30)

		s := 0.3*math.Sin(2*math.Pi*f*t) +
			0.15*math.Sin(2*math.Pi*f*2*t) +
			0.075*math.Sin(2*math.Pi*f*3*t)
		s *= math.Min(t/0.02, 1) * 0.4

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *GrowlGenerator) Err() error { return nil }

// BellGenerator is a sine tone with a fast exponential decay.
type BellGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewBellGenerator(sr beep.SampleRate, freq float64) *BellGenerator {
	return &BellGenerator{sr: sr, freq: freq}
}

func (g *BellGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		s := 0.35 * math.Exp(-t*9) * (math.Sin(2*math.Pi*g.freq*t) + 0.3*math.Sin(2*math.Pi*g.freq*2.76*t))
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *BellGenerator) Err() error { return nil }

// note is a pitch in Hz held for a number of eighth notes. Zero Hz rests.
type note struct {
	hz     float64
	eighth int
}

const (
	e5 = 659.25
	g5 = 783.99
	c5 = 523.25
	d5 = 587.33
	f5 = 698.46
)

// jingle is the first phrase of "Jingle Bells".
var jingle = []note{
	{e5, 2}, {e5, 2}, {e5, 4},
	{e5, 2}, {e5, 2}, {e5, 4},
	{e5, 2}, {g5, 2}, {c5, 3}, {d5, 1}, {e5, 6}, {0, 2},
	{f5, 2}, {f5, 2}, {f5, 3}, {f5, 1},
	{f5, 2}, {e5, 2}, {e5, 2}, {e5, 1}, {e5, 1},
	{e5, 2}, {d5, 2}, {d5, 2}, {e5, 2}, {d5, 4}, {g5, 4},
}

// JingleGenerator plays the jingle phrase forever. Tempo is applied by
// resampling its output.
type JingleGenerator struct {
	sr     beep.SampleRate
	eighth int // samples per eighth note
	idx    int // current note
	pos    int // samples into the current note
	phase  float64
}

func NewJingleGenerator(sr beep.SampleRate) *JingleGenerator {
	return &JingleGenerator{sr: sr, eighth: sr.N(180 * time.Millisecond)}
}

func (g *JingleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		nt := jingle[g.idx]
		length := nt.eighth * g.eighth

		var s float64
		if nt.hz > 0 {
			t := float64(g.pos) / float64(g.sr)
			env := math.Exp(-t*4) * math.Min(t/0.005, 1)
			s = 0.5 * env * math.Sin(2*math.Pi*g.phase)
			g.phase += nt.hz / float64(g.sr)
			g.phase -= math.Floor(g.phase)
		}
		samples[i][0] = s
		samples[i][1] = s

		g.pos++
		if g.pos >= length {
			g.pos = 0
			g.phase = 0
			g.idx = (g.idx + 1) % len(jingle)
		}
	}
	return len(samples), true
}

func (g *JingleGenerator) Err() error { return nil }
