// Package frame converts planar point sets between the world frame and an
// agent-centric frame anchored at the agent's position and aligned with
// its heading.
package frame

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Heading returns the angle of a heading vector in radians. The vector
// must be non-degenerate; a zero vector is an unchecked precondition
// violation.
func Heading(heading [2]float64) float64 {
	norm := math.Hypot(heading[0], heading[1])
	return math.Atan2(heading[1]/norm, heading[0]/norm)
}

// ToAgentFrame re-expresses world-frame points (one row per point) in the
// frame translated to origin and rotated so heading aligns with the local
// +x axis. Row ordering is preserved. The transform is stateless and
// pure; the input matrix is not modified.
func ToAgentFrame(points *mat.Dense, origin, heading [2]float64) *mat.Dense {
	return rotateRows(points, origin, -Heading(heading), true)
}

// FromAgentFrame is the inverse of ToAgentFrame: agent-frame points are
// rotated by the heading angle and translated back to the world frame.
func FromAgentFrame(points *mat.Dense, origin, heading [2]float64) *mat.Dense {
	return rotateRows(points, origin, Heading(heading), false)
}

func rotateRows(points *mat.Dense, origin [2]float64, theta float64, translateFirst bool) *mat.Dense {
	rows, _ := points.Dims()
	cos, sin := math.Cos(theta), math.Sin(theta)
	out := mat.NewDense(rows, 2, nil)
	for i := 0; i < rows; i++ {
		x := points.At(i, 0)
		y := points.At(i, 1)
		if translateFirst {
			x -= origin[0]
			y -= origin[1]
		}
		rx := cos*x - sin*y
		ry := sin*x + cos*y
		if !translateFirst {
			rx += origin[0]
			ry += origin[1]
		}
		out.Set(i, 0, rx)
		out.Set(i, 1, ry)
	}
	return out
}
