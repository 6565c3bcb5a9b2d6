package storage

import (
	"context"
	"sort"
	"sync"

	"strider/internal/model"
)

type MemoryStore struct {
	mu           sync.RWMutex
	initialized  bool
	episodes     map[string]model.Episode
	trajectories map[string][]model.TrajectorySample
	summaries    map[string]model.OdometrySummary
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.episodes = make(map[string]model.Episode)
	s.trajectories = make(map[string][]model.TrajectorySample)
	s.summaries = make(map[string]model.OdometrySummary)
	return nil
}

func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.episodes = make(map[string]model.Episode)
	s.trajectories = make(map[string][]model.TrajectorySample)
	s.summaries = make(map[string]model.OdometrySummary)
	return nil
}

func (s *MemoryStore) SaveEpisode(_ context.Context, episode model.Episode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.episodes[episode.ID] = episode
	return nil
}

func (s *MemoryStore) GetEpisode(_ context.Context, id string) (model.Episode, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	episode, ok := s.episodes[id]
	return episode, ok, nil
}

func (s *MemoryStore) ListEpisodes(_ context.Context) ([]model.Episode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	episodes := make([]model.Episode, 0, len(s.episodes))
	for _, episode := range s.episodes {
		episodes = append(episodes, episode)
	}
	sort.Slice(episodes, func(i, j int) bool {
		if episodes[i].CreatedUnix != episodes[j].CreatedUnix {
			return episodes[i].CreatedUnix < episodes[j].CreatedUnix
		}
		return episodes[i].ID < episodes[j].ID
	})
	return episodes, nil
}

func (s *MemoryStore) SaveTrajectory(_ context.Context, episodeID string, samples []model.TrajectorySample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trajectories[episodeID] = append([]model.TrajectorySample(nil), samples...)
	return nil
}

func (s *MemoryStore) GetTrajectory(_ context.Context, episodeID string) ([]model.TrajectorySample, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	samples, ok := s.trajectories[episodeID]
	if !ok {
		return nil, false, nil
	}
	return append([]model.TrajectorySample(nil), samples...), true, nil
}

func (s *MemoryStore) SaveOdometrySummary(_ context.Context, summary model.OdometrySummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries[summary.EpisodeID] = summary
	return nil
}

func (s *MemoryStore) GetOdometrySummary(_ context.Context, episodeID string) (model.OdometrySummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.summaries[episodeID]
	return summary, ok, nil
}
