package odometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ReckonerConfig tunes the linear stride-to-motion model. ForwardGain
// scales the mean fore-aft stride into forward displacement; TurnGain
// scales the left/right stride asymmetry into heading change. LeftLegs
// marks which end-effector rows belong to the agent's left side.
type ReckonerConfig struct {
	ForwardGain float64
	TurnGain    float64
	LeftLegs    []bool
}

// DefaultReckonerConfig matches the six-legged body layout: first three
// rows left, last three right. The turn gain is the reciprocal of the
// summed lateral mount offsets (2 * (0.8 + 1.0 + 0.8)), which recovers
// unit yaw from the rigid-rotation sweep of that layout.
func DefaultReckonerConfig() ReckonerConfig {
	return ReckonerConfig{
		ForwardGain: 1.0,
		TurnGain:    1.0 / 5.2,
		LeftLegs:    []bool{true, true, true, false, false, false},
	}
}

// DeadReckoner accumulates stride differences into an estimated pose.
// Stance legs sweep backwards in the agent frame as the body advances, so
// forward displacement is the negated mean fore-aft stride; turning shows
// up as left/right sweep asymmetry.
type DeadReckoner struct {
	cfg ReckonerConfig

	heading float64
	pos     [2]float64
	// Accumulated per-side fore-aft sweep, kept for the summary.
	totalLeft  float64
	totalRight float64
}

func NewDeadReckoner(cfg ReckonerConfig) *DeadReckoner {
	return &DeadReckoner{cfg: cfg}
}

// Observe feeds one tick's stride-difference matrix into the estimate.
// Rows beyond the configured leg layout are ignored.
func (d *DeadReckoner) Observe(strideDiff *mat.Dense) {
	rows, _ := strideDiff.Dims()
	var left, right float64
	var nLeft, nRight int
	for i := 0; i < rows && i < len(d.cfg.LeftLegs); i++ {
		sweep := strideDiff.At(i, 0)
		if d.cfg.LeftLegs[i] {
			left += sweep
			nLeft++
		} else {
			right += sweep
			nRight++
		}
	}
	if nLeft == 0 || nRight == 0 {
		return
	}

	d.totalLeft += left
	d.totalRight += right

	forward := -d.cfg.ForwardGain * (left + right) / float64(nLeft+nRight)
	// A left turn sweeps left-side stance feet forward in the agent
	// frame, so the asymmetry enters with the left side positive.
	d.heading += d.cfg.TurnGain * (left - right)
	d.pos[0] += forward * math.Cos(d.heading)
	d.pos[1] += forward * math.Sin(d.heading)
}

// Estimate returns the dead-reckoned position and heading angle.
func (d *DeadReckoner) Estimate() ([2]float64, float64) {
	return d.pos, d.heading
}

// TotalSweep reports the accumulated fore-aft sweep per side.
func (d *DeadReckoner) TotalSweep() (left, right float64) {
	return d.totalLeft, d.totalRight
}
