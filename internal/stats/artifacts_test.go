package stats

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"strider/internal/model"
)

func sampleArtifacts(id string) EpisodeArtifacts {
	return EpisodeArtifacts{
		Episode: model.Episode{ID: id, Seed: 4, Steps: 2, SimTime: 0.02, TurnCount: 1},
		Summary: model.OdometrySummary{EpisodeID: id, Drift: 0.12},
		Trajectory: []model.TrajectorySample{
			{Step: 0, Time: 0.01, State: "forward", Legs: 2, Stride: []float64{0, 0, 0, 0}},
			{Step: 1, Time: 0.02, State: "turn_left", DriveLeft: -0.4, DriveRight: 1.2, Legs: 2, Stride: []float64{-0.1, 0, -0.1, 0}},
		},
	}
}

func TestWriteEpisodeArtifactsLayout(t *testing.T) {
	baseDir := t.TempDir()

	dir, err := WriteEpisodeArtifacts(baseDir, sampleArtifacts("ep-art"))
	if err != nil {
		t.Fatalf("write artifacts: %v", err)
	}
	if dir != filepath.Join(baseDir, "ep-art") {
		t.Fatalf("unexpected artifact dir %s", dir)
	}

	if _, err := os.Stat(filepath.Join(dir, "summary.json")); err != nil {
		t.Fatalf("summary.json missing: %v", err)
	}

	file, err := os.Open(filepath.Join(dir, "trajectory.csv"))
	if err != nil {
		t.Fatalf("trajectory.csv missing: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("csv has %d rows, want header plus 2 samples", len(rows))
	}
	// 9 fixed columns plus two (x, y) pairs for the two legs.
	if len(rows[0]) != 13 {
		t.Fatalf("header has %d columns, want 13", len(rows[0]))
	}
	if rows[2][2] != "turn_left" {
		t.Fatalf("second sample state %q, want turn_left", rows[2][2])
	}
}

func TestWriteEpisodeArtifactsRequiresID(t *testing.T) {
	if _, err := WriteEpisodeArtifacts(t.TempDir(), EpisodeArtifacts{}); err == nil {
		t.Fatal("expected error for missing episode id")
	}
}

func TestEpisodeIndexUpsert(t *testing.T) {
	baseDir := t.TempDir()

	first := EpisodeIndexEntry{EpisodeID: "ep-1", Seed: 1, CreatedAtUTC: "2026-08-30T10:00:00Z"}
	if err := AppendEpisodeIndex(baseDir, first); err != nil {
		t.Fatalf("append: %v", err)
	}
	second := EpisodeIndexEntry{EpisodeID: "ep-2", Seed: 2, CreatedAtUTC: "2026-08-30T11:00:00Z"}
	if err := AppendEpisodeIndex(baseDir, second); err != nil {
		t.Fatalf("append: %v", err)
	}

	updated := first
	updated.Drift = 0.9
	if err := AppendEpisodeIndex(baseDir, updated); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	entries, err := ListEpisodeIndex(baseDir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("index has %d entries, want 2", len(entries))
	}
	if entries[0].EpisodeID != "ep-1" || entries[0].Drift != 0.9 {
		t.Fatalf("upsert did not replace entry: %+v", entries[0])
	}
}

func TestListEpisodeIndexMissingFile(t *testing.T) {
	entries, err := ListEpisodeIndex(t.TempDir())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty index, got %d entries", len(entries))
	}
}
