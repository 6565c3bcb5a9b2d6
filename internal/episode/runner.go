// Package episode composes the exploration controller, the stepping
// body, the arena and the path integrator into recorded runs.
package episode

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"strider/internal/arena"
	"strider/internal/frame"
	"strider/internal/locomotion"
	"strider/internal/model"
	"strider/internal/odometry"
	"strider/internal/sim"
	"strider/internal/storage"
)

// Request describes one exploration episode. A zero EpisodeID gets a
// generated uuid; RecordEvery zero defaults to recording every tick.
type Request struct {
	EpisodeID   string
	Seed        int64
	Steps       int
	RecordEvery int
	Controller  locomotion.Config
	Body        sim.BodyConfig
	Arena       arena.Config
	Reckoner    odometry.ReckonerConfig
}

// DefaultRequest returns a one-thousand-step episode with the default
// component parameters.
func DefaultRequest() Request {
	return Request{
		Seed:        0,
		Steps:       1000,
		RecordEvery: 1,
		Controller:  locomotion.DefaultConfig(),
		Body:        sim.DefaultBodyConfig(),
		Arena:       arena.DefaultConfig(),
		Reckoner:    odometry.DefaultReckonerConfig(),
	}
}

// Result summarizes a finished episode.
type Result struct {
	EpisodeID       string
	Steps           int
	SimTime         float64
	TurnCount       int
	FinalPosition   [2]float64
	FinalHeading    float64
	EstimatePose    [2]float64
	EstimateHeading float64
	Drift           float64
	HeadingErr      float64
}

// Runner drives episodes and persists them.
type Runner struct {
	store storage.Store
}

func NewRunner(store storage.Store) *Runner {
	return &Runner{store: store}
}

// Run executes one episode tick loop: controller advance, wrapped step,
// dead-reckoning update, optional trajectory sampling. Each stochastic
// component owns its own random source; the arena's is derived from the
// episode seed so instances never share a generator.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	if req.Steps <= 0 {
		return Result{}, errors.New("episode requires a positive step count")
	}
	if req.RecordEvery <= 0 {
		req.RecordEvery = 1
	}
	episodeID := req.EpisodeID
	if episodeID == "" {
		episodeID = uuid.NewString()
	}

	controller := locomotion.NewExplorationController(req.Controller, rand.New(rand.NewSource(req.Seed)))
	body := sim.NewTripodBody(req.Body)
	world, err := arena.New(req.Arena, rand.New(rand.NewSource(req.Seed+1)))
	if err != nil {
		return Result{}, err
	}
	integrator := odometry.NewPathIntegrator(body, world)
	reckoner := odometry.NewDeadReckoner(req.Reckoner)

	var samples []model.TrajectorySample
	var lastObs sim.Observation
	turns := 0
	stepsRun := 0
	prevState := locomotion.Forward

	for step := 0; step < req.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		state, drive := controller.Advance()
		obs, err := integrator.Step(ctx, drive)
		if err != nil {
			return Result{}, err
		}
		world.StepTarget(req.Controller.DT)
		reckoner.Observe(obs.StrideDiff)

		if state != prevState && (state == locomotion.TurnLeft || state == locomotion.TurnRight) {
			turns++
		}
		prevState = state
		lastObs = obs
		stepsRun++

		if step%req.RecordEvery == 0 {
			samples = append(samples, sampleFrom(step, controller.Time(), state, drive, obs))
		}

		if obs.Terminated || obs.Truncated {
			break
		}
	}

	estimate, estimateHeading := reckoner.Estimate()
	finalHeading := frame.Heading(lastObs.Heading)
	result := Result{
		EpisodeID:       episodeID,
		Steps:           stepsRun,
		SimTime:         controller.Time(),
		TurnCount:       turns,
		FinalPosition:   lastObs.Position,
		FinalHeading:    finalHeading,
		EstimatePose:    estimate,
		EstimateHeading: estimateHeading,
		Drift: math.Hypot(
			lastObs.Position[0]-estimate[0],
			lastObs.Position[1]-estimate[1],
		),
		HeadingErr: angleDiff(finalHeading, estimateHeading),
	}

	if r.store != nil {
		if err := r.persist(ctx, episodeID, req, result, samples); err != nil {
			return Result{}, err
		}
	}
	return result, nil
}

func (r *Runner) persist(ctx context.Context, episodeID string, req Request, result Result, samples []model.TrajectorySample) error {
	episode := model.Episode{
		VersionedRecord: currentVersion(),
		ID:              episodeID,
		Seed:            req.Seed,
		DT:              req.Controller.DT,
		Steps:           result.Steps,
		SimTime:         result.SimTime,
		TurnCount:       result.TurnCount,
		CreatedUnix:     time.Now().Unix(),
	}
	if err := r.store.SaveEpisode(ctx, episode); err != nil {
		return err
	}
	if err := r.store.SaveTrajectory(ctx, episodeID, samples); err != nil {
		return err
	}
	summary := model.OdometrySummary{
		VersionedRecord: currentVersion(),
		EpisodeID:       episodeID,
		FinalX:          result.FinalPosition[0],
		FinalY:          result.FinalPosition[1],
		EstimateX:       result.EstimatePose[0],
		EstimateY:       result.EstimatePose[1],
		Drift:           result.Drift,
		HeadingErr:      result.HeadingErr,
	}
	return r.store.SaveOdometrySummary(ctx, summary)
}

func sampleFrom(step int, simTime float64, state locomotion.WalkingState, drive locomotion.Drive, obs sim.Observation) model.TrajectorySample {
	legs, _ := obs.StrideDiff.Dims()
	stride := make([]float64, 0, legs*2)
	for i := 0; i < legs; i++ {
		stride = append(stride, obs.StrideDiff.At(i, 0), obs.StrideDiff.At(i, 1))
	}
	return model.TrajectorySample{
		Step:       step,
		Time:       simTime,
		State:      state.String(),
		DriveLeft:  drive.Left,
		DriveRight: drive.Right,
		X:          obs.Position[0],
		Y:          obs.Position[1],
		HeadingX:   obs.Heading[0],
		HeadingY:   obs.Heading[1],
		Legs:       legs,
		Stride:     stride,
	}
}

func currentVersion() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}
}

// angleDiff folds the signed difference between two angles into (-pi, pi].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
