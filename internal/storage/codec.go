package storage

import (
	"encoding/json"
	"errors"

	"strider/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeEpisode(e model.Episode) ([]byte, error) {
	return json.Marshal(e)
}

func DecodeEpisode(data []byte) (model.Episode, error) {
	var episode model.Episode
	if err := json.Unmarshal(data, &episode); err != nil {
		return model.Episode{}, err
	}
	if err := checkVersion(episode.VersionedRecord); err != nil {
		return model.Episode{}, err
	}
	return episode, nil
}

func EncodeTrajectory(samples []model.TrajectorySample) ([]byte, error) {
	return json.Marshal(samples)
}

func DecodeTrajectory(data []byte) ([]model.TrajectorySample, error) {
	var samples []model.TrajectorySample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, err
	}
	return samples, nil
}

func EncodeOdometrySummary(s model.OdometrySummary) ([]byte, error) {
	return json.Marshal(s)
}

func DecodeOdometrySummary(data []byte) (model.OdometrySummary, error) {
	var summary model.OdometrySummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return model.OdometrySummary{}, err
	}
	if err := checkVersion(summary.VersionedRecord); err != nil {
		return model.OdometrySummary{}, err
	}
	return summary, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
