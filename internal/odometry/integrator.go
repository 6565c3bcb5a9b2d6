// Package odometry derives dead-reckoning signals from leg kinematics:
// the PathIntegrator turns end-effector positions into per-tick stride
// differences, and the DeadReckoner integrates those into a pose estimate.
package odometry

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"strider/internal/frame"
	"strider/internal/locomotion"
	"strider/internal/sim"
)

// CameraNotifier receives the agent position once per wrapped step. The
// arena implements it; a nil notifier disables the callback.
type CameraNotifier interface {
	UpdateCamPos(agentXY [2]float64)
}

// PathIntegrator wraps a stepping service and attaches the agent-frame
// per-leg stride difference to every observation. It owns only its
// one-slot history; the wrapped service's state is never touched.
type PathIntegrator struct {
	stepper sim.Stepper
	camera  CameraNotifier

	// lastRel is the previous tick's agent-frame end-effector matrix;
	// nil means no previous frame exists yet.
	lastRel *mat.Dense
}

func NewPathIntegrator(stepper sim.Stepper, camera CameraNotifier) *PathIntegrator {
	return &PathIntegrator{stepper: stepper, camera: camera}
}

// Step delegates to the wrapped service, then post-processes its
// observation. The first call yields an all-zero stride matrix; there is
// no odometry signal until two frames exist.
func (p *PathIntegrator) Step(ctx context.Context, drive locomotion.Drive) (sim.Observation, error) {
	obs, err := p.stepper.Step(ctx, drive)
	if err != nil {
		return sim.Observation{}, err
	}

	if p.camera != nil {
		p.camera.UpdateCamPos(obs.Position)
	}

	rel := frame.ToAgentFrame(obs.EndEffectors, obs.Position, obs.Heading)
	rows, cols := rel.Dims()
	diff := mat.NewDense(rows, cols, nil)
	if p.lastRel != nil {
		diff.Sub(rel, p.lastRel)
	}
	p.lastRel = rel

	obs.StrideDiff = diff
	return obs, nil
}
