package locomotion

import (
	"math"
	"math/rand"
)

// Config holds the exploration parameters. None of the fields are
// validated; a non-positive TurnDurationStd simply degenerates the
// duration samples.
type Config struct {
	DT               float64
	Drives           DriveTable
	TurnDurationMean float64
	TurnDurationStd  float64
	LambdaTurn       float64
	SettleTime       float64
}

// DefaultConfig returns the exploration parameters of the original
// random-walk controller at a 10 ms tick.
func DefaultConfig() Config {
	return Config{
		DT:               0.01,
		Drives:           DefaultDriveTable(),
		TurnDurationMean: 0.4,
		TurnDurationStd:  0.1,
		LambdaTurn:       1.0,
		SettleTime:       0.1,
	}
}

// ExplorationController advances a stochastic walk/turn cycle one tick at
// a time. Turn onset is a Poisson process with rate LambdaTurn; turn
// durations are normal samples around TurnDurationMean. The controller
// owns its random source exclusively, so equal seeds reproduce equal
// state sequences.
type ExplorationController struct {
	cfg    Config
	rng    *rand.Rand
	drives DriveTable

	time       float64
	state      WalkingState
	stateStart float64
	// pendingTurn is meaningful only while turning; it is overwritten at
	// every forward-to-turn transition.
	pendingTurn float64
}

// NewExplorationController builds a controller around cfg and an
// explicitly owned random source. The drive table is copied; callers
// cannot mutate it afterwards.
func NewExplorationController(cfg Config, rng *rand.Rand) *ExplorationController {
	drives := make(DriveTable, len(cfg.Drives))
	for state, drive := range cfg.Drives {
		drives[state] = drive
	}
	return &ExplorationController{
		cfg:    cfg,
		rng:    rng,
		drives: drives,
		state:  Forward,
	}
}

// Advance runs one simulation tick and returns the resulting state and
// its descending drive. Both transition checks see the pre-advance time;
// the clock moves by DT at the end of the tick.
func (c *ExplorationController) Advance() (WalkingState, Drive) {
	// Walk straight for SettleTime after spawning so the startup
	// kinematics do not depend on the seed. No random draw happens here.
	if c.time < c.cfg.SettleTime {
		c.time += c.cfg.DT
		return Forward, c.drives[Forward]
	}

	if c.state == Forward {
		pNoChange := math.Exp(-c.cfg.LambdaTurn * c.cfg.DT)
		if c.rng.Float64() > pNoChange {
			// Duration is not clamped: a negative sample reverts the
			// turn on the next tick.
			c.pendingTurn = c.cfg.TurnDurationMean + c.cfg.TurnDurationStd*c.rng.NormFloat64()
			if c.rng.Intn(2) == 0 {
				c.state = TurnLeft
			} else {
				c.state = TurnRight
			}
			c.stateStart = c.time
		}
	}

	if c.state == TurnLeft || c.state == TurnRight {
		if c.time-c.stateStart > c.pendingTurn {
			c.state = Forward
			c.stateStart = c.time
		}
	}

	c.time += c.cfg.DT
	return c.state, c.drives[c.state]
}

// Time reports the elapsed simulation time in seconds.
func (c *ExplorationController) Time() float64 {
	return c.time
}

// State reports the current walking state without advancing the clock.
func (c *ExplorationController) State() WalkingState {
	return c.state
}
