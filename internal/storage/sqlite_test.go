//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"strider/internal/model"
)

func TestSQLiteStoreEpisodeRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "strider.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer store.Close()

	input := model.Episode{
		VersionedRecord: versioned(),
		ID:              "ep-sqlite",
		Seed:            9,
		DT:              0.01,
		Steps:           100,
		SimTime:         1.0,
		TurnCount:       2,
		CreatedUnix:     1700000456,
	}
	if err := store.SaveEpisode(ctx, input); err != nil {
		t.Fatalf("save episode: %v", err)
	}

	output, ok, err := store.GetEpisode(ctx, "ep-sqlite")
	if err != nil {
		t.Fatalf("get episode: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted episode")
	}
	if output != input {
		t.Fatalf("round trip changed the episode: %+v", output)
	}

	episodes, err := store.ListEpisodes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(episodes) != 1 || episodes[0].ID != "ep-sqlite" {
		t.Fatalf("unexpected listing: %+v", episodes)
	}
}

func TestSQLiteStoreTrajectoryAndSummary(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "strider.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer store.Close()

	samples := []model.TrajectorySample{
		{Step: 1, Time: 0.01, State: "forward", Legs: 6, Stride: make([]float64, 12)},
	}
	if err := store.SaveTrajectory(ctx, "ep-1", samples); err != nil {
		t.Fatalf("save trajectory: %v", err)
	}
	got, ok, err := store.GetTrajectory(ctx, "ep-1")
	if err != nil || !ok {
		t.Fatalf("get trajectory: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].State != "forward" {
		t.Fatalf("unexpected trajectory: %+v", got)
	}

	summary := model.OdometrySummary{
		VersionedRecord: versioned(),
		EpisodeID:       "ep-1",
		Drift:           0.5,
	}
	if err := store.SaveOdometrySummary(ctx, summary); err != nil {
		t.Fatalf("save summary: %v", err)
	}
	gotSummary, ok, err := store.GetOdometrySummary(ctx, "ep-1")
	if err != nil || !ok {
		t.Fatalf("get summary: ok=%v err=%v", ok, err)
	}
	if gotSummary != summary {
		t.Fatalf("round trip changed the summary: %+v", gotSummary)
	}
}

func TestSQLiteStoreUninitializedFails(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "strider.db"))
	if err := store.SaveEpisode(context.Background(), model.Episode{ID: "x"}); err == nil {
		t.Fatal("expected error before Init")
	}
}
