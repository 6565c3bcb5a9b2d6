package storage

import (
	"context"

	"strider/internal/model"
)

// Store defines persistence operations for recorded exploration episodes.
type Store interface {
	Init(ctx context.Context) error
	SaveEpisode(ctx context.Context, episode model.Episode) error
	GetEpisode(ctx context.Context, id string) (model.Episode, bool, error)
	ListEpisodes(ctx context.Context) ([]model.Episode, error)
	SaveTrajectory(ctx context.Context, episodeID string, samples []model.TrajectorySample) error
	GetTrajectory(ctx context.Context, episodeID string) ([]model.TrajectorySample, bool, error)
	SaveOdometrySummary(ctx context.Context, summary model.OdometrySummary) error
	GetOdometrySummary(ctx context.Context, episodeID string) (model.OdometrySummary, bool, error)
}

// Resetter is implemented by stores that can drop all persisted episodes.
type Resetter interface {
	Reset(ctx context.Context) error
}
