package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Episode summarizes one recorded exploration run.
type Episode struct {
	VersionedRecord
	ID          string  `json:"id"`
	Seed        int64   `json:"seed"`
	DT          float64 `json:"dt"`
	Steps       int     `json:"steps"`
	SimTime     float64 `json:"sim_time"`
	TurnCount   int     `json:"turn_count"`
	CreatedUnix int64   `json:"created_unix"`
}

// TrajectorySample is one recorded tick of an episode. Stride holds the
// agent-frame per-leg displacement matrix flattened row-major; Legs gives
// the row count needed to recover its shape.
type TrajectorySample struct {
	Step       int       `json:"step"`
	Time       float64   `json:"time"`
	State      string    `json:"state"`
	DriveLeft  float64   `json:"drive_left"`
	DriveRight float64   `json:"drive_right"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	HeadingX   float64   `json:"heading_x"`
	HeadingY   float64   `json:"heading_y"`
	Legs       int       `json:"legs"`
	Stride     []float64 `json:"stride"`
}

// OdometrySummary compares the dead-reckoned pose of an episode against
// the ground truth reported by the stepping service.
type OdometrySummary struct {
	VersionedRecord
	EpisodeID  string  `json:"episode_id"`
	FinalX     float64 `json:"final_x"`
	FinalY     float64 `json:"final_y"`
	EstimateX  float64 `json:"estimate_x"`
	EstimateY  float64 `json:"estimate_y"`
	Drift      float64 `json:"drift"`
	HeadingErr float64 `json:"heading_err"`
}
