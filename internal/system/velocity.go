package system

import (
	"gift-tornado/internal/config"
	"gift-tornado/internal/geom"
)

// RandomVelocity picks a launch velocity: a coin flip between the player's
// and the elf's side, a vertical component uniform in ±spreadY, and a speed
// uniform in the difficulty's range, all scaled by scale.
func RandomVelocity(rng *RNG, d config.Difficulty, spreadY, scale float64) geom.Vec2 {
	dir := geom.Vec2{X: -1}
	if rng.Float64() >= 0.5 {
		dir.X = 1
	}
	dir.Y = rng.Range(-spreadY, spreadY)
	speed := rng.Range(d.VelocityMin, d.VelocityMax)
	return dir.Mul(speed * scale)
}
