// Package strider exposes the exploration pipeline for embedding: run
// recorded episodes, inspect them, and export their artifacts.
package strider

import (
	"context"
	"fmt"
	"time"

	"strider/internal/episode"
	"strider/internal/model"
	"strider/internal/stats"
	"strider/internal/storage"
)

const (
	defaultDBPath     = "strider.db"
	defaultExportsDir = "exports"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
}

type Client struct {
	store      storage.Store
	runner     *episode.Runner
	exportsDir string

	initialized bool
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		runner:     episode.NewRunner(store),
		exportsDir: exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) ensureInit(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Reset drops every persisted episode. Stores without reset support
// report an error instead of silently keeping data.
func (c *Client) Reset(ctx context.Context) error {
	if err := c.ensureInit(ctx); err != nil {
		return err
	}
	resetter, ok := c.store.(storage.Resetter)
	if !ok {
		return fmt.Errorf("store does not support reset")
	}
	return resetter.Reset(ctx)
}

// RunExploration executes one episode and persists it.
func (c *Client) RunExploration(ctx context.Context, req episode.Request) (episode.Result, error) {
	if err := c.ensureInit(ctx); err != nil {
		return episode.Result{}, err
	}
	return c.runner.Run(ctx, req)
}

// Episodes lists persisted episodes, oldest first.
func (c *Client) Episodes(ctx context.Context) ([]model.Episode, error) {
	if err := c.ensureInit(ctx); err != nil {
		return nil, err
	}
	return c.store.ListEpisodes(ctx)
}

// Trajectory returns the recorded samples of one episode.
func (c *Client) Trajectory(ctx context.Context, episodeID string) ([]model.TrajectorySample, error) {
	if err := c.ensureInit(ctx); err != nil {
		return nil, err
	}
	samples, ok, err := c.store.GetTrajectory(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no trajectory recorded for episode %s", episodeID)
	}
	return samples, nil
}

// Export writes the episode's artifacts under the exports directory and
// returns the artifact directory.
func (c *Client) Export(ctx context.Context, episodeID string) (string, error) {
	if err := c.ensureInit(ctx); err != nil {
		return "", err
	}

	ep, ok, err := c.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("unknown episode %s", episodeID)
	}
	samples, ok, err := c.store.GetTrajectory(ctx, episodeID)
	if err != nil {
		return "", err
	}
	if !ok {
		samples = nil
	}
	summary, _, err := c.store.GetOdometrySummary(ctx, episodeID)
	if err != nil {
		return "", err
	}

	dir, err := stats.WriteEpisodeArtifacts(c.exportsDir, stats.EpisodeArtifacts{
		Episode:    ep,
		Summary:    summary,
		Trajectory: samples,
	})
	if err != nil {
		return "", err
	}

	entry := stats.EpisodeIndexEntry{
		EpisodeID:    ep.ID,
		Seed:         ep.Seed,
		Steps:        ep.Steps,
		SimTime:      ep.SimTime,
		TurnCount:    ep.TurnCount,
		Drift:        summary.Drift,
		CreatedAtUTC: time.Unix(ep.CreatedUnix, 0).UTC().Format(time.RFC3339),
	}
	if err := stats.AppendEpisodeIndex(c.exportsDir, entry); err != nil {
		return "", err
	}
	return dir, nil
}
