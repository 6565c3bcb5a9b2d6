// Package arena provides the world-side bookkeeping around a stepped
// agent: the tracking camera that follows it and, optionally, a moving
// target the agent can be asked to pursue.
package arena

import (
	"fmt"
	"math"
	"math/rand"
)

// Target motion directions. "random" resolves to left or right using the
// arena's own random source.
const (
	DirectionLeft   = "left"
	DirectionRight  = "right"
	DirectionRandom = "random"
)

// Config parameterizes an arena. An unrecognized Direction fails fast at
// construction.
type Config struct {
	// CamOffset is added to the agent position when the camera follows it.
	CamOffset [2]float64
	// Target motion. Speed zero disables the moving target.
	TargetStart      [2]float64
	TargetSpeed      float64
	Direction        string
	LateralMagnitude float64
}

// DefaultConfig mirrors the original moving-target arena: speed 10,
// rightward first, lateral magnitude 2.
func DefaultConfig() Config {
	return Config{
		TargetStart:      [2]float64{5, 0},
		TargetSpeed:      10,
		Direction:        DirectionRight,
		LateralMagnitude: 2,
	}
}

// Arena tracks the camera position and advances the moving target. It is
// driven by the path integrator (camera) and the episode runner (target).
type Arena struct {
	cfg       Config
	yMult     float64
	camPos    [2]float64
	targetPos [2]float64
	time      float64
}

// New validates the discrete direction option and builds the arena. The
// random source is consulted only for DirectionRandom, so deterministic
// arenas may pass a source they share with nothing else.
func New(cfg Config, rng *rand.Rand) (*Arena, error) {
	a := &Arena{cfg: cfg, targetPos: cfg.TargetStart}
	switch cfg.Direction {
	case DirectionLeft:
		a.yMult = 1
	case DirectionRight:
		a.yMult = -1
	case DirectionRandom:
		if rng.Intn(2) == 0 {
			a.yMult = 1
		} else {
			a.yMult = -1
		}
	default:
		return nil, fmt.Errorf("invalid target direction: %q", cfg.Direction)
	}
	return a, nil
}

// UpdateCamPos moves the tracking camera to follow the agent. Called once
// per wrapped step.
func (a *Arena) UpdateCamPos(agentXY [2]float64) {
	a.camPos[0] = agentXY[0] + a.cfg.CamOffset[0]
	a.camPos[1] = agentXY[1] + a.cfg.CamOffset[1]
}

// CamPos returns the current tracking camera position.
func (a *Arena) CamPos() [2]float64 {
	return a.camPos
}

// StepTarget advances the moving target by dt seconds along a heading
// that oscillates laterally around +x.
func (a *Arena) StepTarget(dt float64) {
	if a.cfg.TargetSpeed == 0 {
		a.time += dt
		return
	}
	hx := 1.0
	hy := a.cfg.LateralMagnitude * math.Cos(a.time*3) * a.yMult
	norm := math.Hypot(hx, hy)
	a.targetPos[0] += a.cfg.TargetSpeed * hx / norm * dt
	a.targetPos[1] += a.cfg.TargetSpeed * hy / norm * dt
	a.time += dt
}

// TargetPos returns the moving target's current position.
func (a *Arena) TargetPos() [2]float64 {
	return a.targetPos
}

// SpawnPosition passes the requested spawn pose through unchanged; the
// flat arena places the agent exactly where asked.
func (a *Arena) SpawnPosition(relPos [2]float64, relAngle float64) ([2]float64, float64) {
	return relPos, relAngle
}
