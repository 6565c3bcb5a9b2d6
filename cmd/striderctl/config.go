package main

import (
	"encoding/json"
	"math"
	"os"

	"strider/internal/episode"
	"strider/internal/locomotion"
)

// loadRequestFromConfig reads an episode request from a JSON file. Every
// key is optional; unset keys keep the defaults. Numeric keys tolerate
// both integer and float JSON encodings.
func loadRequestFromConfig(path string) (episode.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return episode.Request{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return episode.Request{}, err
	}

	req := episode.DefaultRequest()
	if v, ok := asString(raw["episode_id"]); ok {
		req.EpisodeID = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asInt(raw["steps"]); ok {
		req.Steps = v
	}
	if v, ok := asInt(raw["record_every"]); ok {
		req.RecordEvery = v
	}

	if v, ok := asFloat64(raw["dt"]); ok {
		req.Controller.DT = v
		req.Body.DT = v
	}
	if v, ok := asFloat64(raw["settle_time"]); ok {
		req.Controller.SettleTime = v
	}
	if v, ok := asFloat64(raw["lambda_turn"]); ok {
		req.Controller.LambdaTurn = v
	}
	if v, ok := asFloat64(raw["turn_duration_mean"]); ok {
		req.Controller.TurnDurationMean = v
	}
	if v, ok := asFloat64(raw["turn_duration_std"]); ok {
		req.Controller.TurnDurationStd = v
	}
	if v, ok := asDrive(raw["forward_drive"]); ok {
		req.Controller.Drives[locomotion.Forward] = v
	}
	if v, ok := asDrive(raw["left_turn_drive"]); ok {
		req.Controller.Drives[locomotion.TurnLeft] = v
	}
	if v, ok := asDrive(raw["right_turn_drive"]); ok {
		req.Controller.Drives[locomotion.TurnRight] = v
	}

	if v, ok := asFloat64(raw["gain_forward"]); ok {
		req.Body.GainForward = v
	}
	if v, ok := asFloat64(raw["gain_turn"]); ok {
		req.Body.GainTurn = v
	}
	if v, ok := asFloat64(raw["stride_amplitude"]); ok {
		req.Body.StrideAmplitude = v
	}
	if v, ok := asFloat64(raw["stride_frequency"]); ok {
		req.Body.StrideFrequency = v
	}

	if v, ok := asString(raw["target_direction"]); ok {
		req.Arena.Direction = v
	}
	if v, ok := asFloat64(raw["target_speed"]); ok {
		req.Arena.TargetSpeed = v
	}

	return req, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asFloat64(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asInt(v any) (int, bool) {
	f, ok := asFloat64(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func asInt64(v any) (int64, bool) {
	f, ok := asFloat64(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func asDrive(v any) (locomotion.Drive, bool) {
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return locomotion.Drive{}, false
	}
	left, okL := asFloat64(pair[0])
	right, okR := asFloat64(pair[1])
	if !okL || !okR {
		return locomotion.Drive{}, false
	}
	return locomotion.Drive{Left: left, Right: right}, true
}
