package locomotion

// WalkingState is the discrete locomotion state of the agent.
type WalkingState int

const (
	Forward WalkingState = iota
	TurnLeft
	TurnRight
	// Stop is reserved for a future manual-stop command. No transition
	// currently produces or consumes it.
	Stop
)

func (s WalkingState) String() string {
	switch s {
	case Forward:
		return "forward"
	case TurnLeft:
		return "turn_left"
	case TurnRight:
		return "turn_right"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Drive is a pair of descending-drive intensities commanding the left and
// right halves of the locomotor pattern generator. It is passed and
// returned by value.
type Drive struct {
	Left  float64
	Right float64
}

// DriveTable maps walking states to their descending drives. The table is
// copied at controller construction and immutable afterwards.
type DriveTable map[WalkingState]Drive

// DefaultDriveTable mirrors the original exploration parameters: symmetric
// forward drive and asymmetric turning drives.
func DefaultDriveTable() DriveTable {
	return DriveTable{
		Forward:   {Left: 1.0, Right: 1.0},
		TurnLeft:  {Left: -0.4, Right: 1.2},
		TurnRight: {Left: 1.2, Right: -0.4},
		Stop:      {},
	}
}
