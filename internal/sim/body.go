package sim

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"

	"strider/internal/frame"
	"strider/internal/locomotion"
)

// BodyConfig parameterizes the kinematic tripod body. Gains convert the
// descending drive pair into forward speed and yaw rate; the stride
// fields shape the fore-aft leg oscillation.
type BodyConfig struct {
	DT              float64
	GainForward     float64
	GainTurn        float64
	StrideAmplitude float64
	StrideFrequency float64
	// LegMounts are agent-frame anchor points, one row per leg. Legs with
	// positive y are the left side.
	LegMounts [][2]float64
}

// DefaultBodyConfig returns a six-legged body at a 10 ms tick with mounts
// laid out front/mid/hind on both sides.
func DefaultBodyConfig() BodyConfig {
	return BodyConfig{
		DT:              0.01,
		GainForward:     10.0,
		GainTurn:        4.0,
		StrideAmplitude: 0.4,
		StrideFrequency: 8.0,
		LegMounts: [][2]float64{
			{1.0, 0.8}, {0.0, 1.0}, {-1.0, 0.8},
			{1.0, -0.8}, {0.0, -1.0}, {-1.0, -0.8},
		},
	}
}

// TripodBody is a deterministic differential-drive body: the drive mean
// scales forward speed, the drive asymmetry scales yaw rate, and the six
// end effectors swing fore-aft in two alternating tripod groups.
type TripodBody struct {
	cfg   BodyConfig
	pos   [2]float64
	theta float64
	phase float64
}

func NewTripodBody(cfg BodyConfig) *TripodBody {
	return &TripodBody{cfg: cfg}
}

func (b *TripodBody) Step(ctx context.Context, drive locomotion.Drive) (Observation, error) {
	if err := ctx.Err(); err != nil {
		return Observation{}, err
	}

	speed := b.cfg.GainForward * (drive.Left + drive.Right) / 2
	// A weaker left drive steers left, matching the asymmetric turn
	// drives of the exploration controller.
	yawRate := b.cfg.GainTurn * (drive.Right - drive.Left)

	b.theta += yawRate * b.cfg.DT
	b.pos[0] += speed * math.Cos(b.theta) * b.cfg.DT
	b.pos[1] += speed * math.Sin(b.theta) * b.cfg.DT
	b.phase += 2 * math.Pi * b.cfg.StrideFrequency * b.cfg.DT

	legs := len(b.cfg.LegMounts)
	local := mat.NewDense(legs, 2, nil)
	for i, mount := range b.cfg.LegMounts {
		// Standard tripod grouping: front/hind of one side swing with the
		// middle leg of the other side.
		group := float64((i%3+i/3)%2) * math.Pi
		swing := b.cfg.StrideAmplitude * math.Sin(b.phase+group)
		local.Set(i, 0, mount[0]+swing)
		local.Set(i, 1, mount[1])
	}

	heading := [2]float64{math.Cos(b.theta), math.Sin(b.theta)}
	return Observation{
		Position:     b.pos,
		Heading:      heading,
		EndEffectors: frame.FromAgentFrame(local, b.pos, heading),
	}, nil
}

// Pose reports the body's current world position and heading angle.
func (b *TripodBody) Pose() ([2]float64, float64) {
	return b.pos, b.theta
}
