package odometry

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"strider/internal/locomotion"
	"strider/internal/sim"
)

// scriptedStepper replays a fixed sequence of observations.
type scriptedStepper struct {
	observations []sim.Observation
	calls        int
	err          error
}

func (s *scriptedStepper) Step(_ context.Context, _ locomotion.Drive) (sim.Observation, error) {
	if s.err != nil {
		return sim.Observation{}, s.err
	}
	obs := s.observations[s.calls]
	s.calls++
	return obs, nil
}

type recordingCamera struct {
	positions [][2]float64
}

func (c *recordingCamera) UpdateCamPos(agentXY [2]float64) {
	c.positions = append(c.positions, agentXY)
}

func stationaryObs(ee []float64) sim.Observation {
	return sim.Observation{
		Position:     [2]float64{0, 0},
		Heading:      [2]float64{1, 0},
		EndEffectors: mat.NewDense(len(ee)/2, 2, ee),
	}
}

func TestPathIntegratorFirstStrideIsZero(t *testing.T) {
	stepper := &scriptedStepper{observations: []sim.Observation{
		{
			Position:     [2]float64{4, -2},
			Heading:      [2]float64{0, 1},
			EndEffectors: mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}),
		},
	}}
	p := NewPathIntegrator(stepper, nil)

	obs, err := p.Step(context.Background(), locomotion.Drive{})
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	rows, cols := obs.StrideDiff.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("stride matrix %dx%d, want 3x2", rows, cols)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if obs.StrideDiff.At(i, j) != 0 {
				t.Fatalf("first stride not zero at (%d,%d): %f", i, j, obs.StrideDiff.At(i, j))
			}
		}
	}
}

func TestPathIntegratorStrideEqualsRawDiffForStationaryAgent(t *testing.T) {
	first := []float64{1, 1, 2, 2}
	second := []float64{1.5, 0.75, 2.25, 2}
	stepper := &scriptedStepper{observations: []sim.Observation{
		stationaryObs(first),
		stationaryObs(second),
	}}
	p := NewPathIntegrator(stepper, nil)

	if _, err := p.Step(context.Background(), locomotion.Drive{}); err != nil {
		t.Fatalf("first step: %v", err)
	}
	obs, err := p.Step(context.Background(), locomotion.Drive{})
	if err != nil {
		t.Fatalf("second step: %v", err)
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := second[i*2+j] - first[i*2+j]
			if got := obs.StrideDiff.At(i, j); math.Abs(got-want) > 1e-12 {
				t.Fatalf("stride (%d,%d): got %f, want %f", i, j, got, want)
			}
		}
	}
}

func TestPathIntegratorStrideIsAgentFrame(t *testing.T) {
	// The agent translates while its feet stay pinned in the world: the
	// agent-frame stride must be the negated translation for every leg.
	obs1 := sim.Observation{
		Position:     [2]float64{0, 0},
		Heading:      [2]float64{1, 0},
		EndEffectors: mat.NewDense(2, 2, []float64{1, 1, 2, -1}),
	}
	obs2 := sim.Observation{
		Position:     [2]float64{0.5, 0},
		Heading:      [2]float64{1, 0},
		EndEffectors: mat.NewDense(2, 2, []float64{1, 1, 2, -1}),
	}
	stepper := &scriptedStepper{observations: []sim.Observation{obs1, obs2}}
	p := NewPathIntegrator(stepper, nil)

	ctx := context.Background()
	if _, err := p.Step(ctx, locomotion.Drive{}); err != nil {
		t.Fatalf("first step: %v", err)
	}
	obs, err := p.Step(ctx, locomotion.Drive{})
	if err != nil {
		t.Fatalf("second step: %v", err)
	}
	for i := 0; i < 2; i++ {
		if got := obs.StrideDiff.At(i, 0); math.Abs(got-(-0.5)) > 1e-12 {
			t.Fatalf("leg %d fore-aft stride: got %f, want -0.5", i, got)
		}
		if got := obs.StrideDiff.At(i, 1); math.Abs(got) > 1e-12 {
			t.Fatalf("leg %d lateral stride: got %f, want 0", i, got)
		}
	}
}

func TestPathIntegratorNotifiesCameraEveryStep(t *testing.T) {
	stepper := &scriptedStepper{observations: []sim.Observation{
		stationaryObs([]float64{0, 0}),
		stationaryObs([]float64{0, 0}),
		stationaryObs([]float64{0, 0}),
	}}
	camera := &recordingCamera{}
	p := NewPathIntegrator(stepper, camera)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := p.Step(ctx, locomotion.Drive{}); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if len(camera.positions) != 3 {
		t.Fatalf("camera notified %d times, want 3", len(camera.positions))
	}
}

func TestPathIntegratorPropagatesStepperError(t *testing.T) {
	wantErr := errors.New("actuation fault")
	p := NewPathIntegrator(&scriptedStepper{err: wantErr}, nil)
	if _, err := p.Step(context.Background(), locomotion.Drive{}); !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want actuation fault", err)
	}
}
