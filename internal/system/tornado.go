package system

import (
	"math"
	"time"

	"gift-tornado/internal/config"
)

// Tornado is the spawn source's animation: a series of pulses, each a
// spin of several full turns with eased rotation and a grow-then-shrink
// scale. Pulse progress drives the spawner.
type Tornado struct {
	pulse     time.Duration
	minRounds float64
	maxRounds float64

	running bool
	t       time.Duration // time into the current pulse
	from    float64       // rotation at the start of the pulse
	delta   float64       // rotation change over the pulse
	pulses  int
}

func NewTornado(tune config.Tuning) *Tornado {
	return &Tornado{
		pulse:     tune.TornadoPulse,
		minRounds: tune.TornadoMinRounds,
		maxRounds: tune.TornadoMaxRounds,
	}
}

// Start resets the rotation and begins the first pulse.
func (tw *Tornado) Start(rng *RNG, scale float64) {
	tw.from, tw.delta, tw.t, tw.pulses = 0, 0, 0, 0
	tw.running = true
	tw.begin(rng, scale)
}

// Stop freezes the tornado where it is.
func (tw *Tornado) Stop() { tw.running = false }

func (tw *Tornado) Running() bool { return tw.running }

// Pulses counts pulses begun since Start.
func (tw *Tornado) Pulses() int { return tw.pulses }

// begin starts a new pulse from the current rotation. The spin direction
// alternates so the rotation stays near zero.
func (tw *Tornado) begin(rng *RNG, scale float64) {
	tw.from += tw.delta
	sign := 1.0
	if tw.from > 0 {
		sign = -1
	}
	tw.delta = sign * rng.Range(360*tw.minRounds, 360*tw.maxRounds) * scale
	tw.pulses++
}

// Advance moves the animation forward by dt and returns the progress of
// the current pulse. A pulse reports progress 1 on the tick it completes;
// the next one begins on the following Advance.
func (tw *Tornado) Advance(dt time.Duration, rng *RNG, scale float64) float64 {
	if !tw.running || tw.pulse <= 0 {
		return tw.Progress()
	}
	for tw.t >= tw.pulse {
		tw.t -= tw.pulse
		tw.begin(rng, scale)
	}
	tw.t += dt
	return tw.Progress()
}

// Progress is the linear time progress of the current pulse in [0, 1].
func (tw *Tornado) Progress() float64 {
	if tw.pulse <= 0 {
		return 1
	}
	return math.Min(float64(tw.t)/float64(tw.pulse), 1)
}

// Rotation is the current angle in degrees.
func (tw *Tornado) Rotation() float64 {
	return tw.from + tw.delta*EaseInOut(tw.Progress())
}

// Scale is the current size factor.
func (tw *Tornado) Scale() float64 { return PulseScale(tw.Progress()) }

// PulseScale grows from 0.5 to 2 at mid pulse and back to 0.5.
func PulseScale(q float64) float64 {
	return 1.5*(1-math.Abs(2*q-1)) + 0.5
}

// EaseInOut is the quadratic in-out curve.
func EaseInOut(q float64) float64 {
	if q < 0.5 {
		return 2 * q * q
	}
	return 1 - math.Pow(-2*q+2, 2)/2
}
