// Package sim defines the stepping-service contract the locomotion
// pipeline is driven against, plus a kinematic reference body.
package sim

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"strider/internal/locomotion"
)

// Observation is the per-tick output of a stepping service. EndEffectors
// holds absolute world-frame (x, y) positions, one row per leg.
// StrideDiff is nil until a path integrator attaches the agent-frame
// per-leg displacement since the previous tick.
type Observation struct {
	Position     [2]float64
	Heading      [2]float64
	EndEffectors *mat.Dense
	StrideDiff   *mat.Dense
	Terminated   bool
	Truncated    bool
}

// Stepper advances the physical state of the agent by one tick under a
// descending-drive command. Implementations are opaque to the callers in
// this module; errors are surfaced, never retried.
type Stepper interface {
	Step(ctx context.Context, drive locomotion.Drive) (Observation, error)
}
