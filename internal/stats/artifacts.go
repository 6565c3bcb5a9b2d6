// Package stats writes episode artifacts: a summary JSON, the trajectory
// as CSV, and an index of exported episodes.
package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"strider/internal/model"
)

const episodeIndexFile = "episode_index.json"

// EpisodeArtifacts bundles everything exported for one episode.
type EpisodeArtifacts struct {
	Episode    model.Episode            `json:"episode"`
	Summary    model.OdometrySummary    `json:"summary"`
	Trajectory []model.TrajectorySample `json:"-"`
}

// EpisodeIndexEntry is one line of the export index.
type EpisodeIndexEntry struct {
	EpisodeID    string  `json:"episode_id"`
	Seed         int64   `json:"seed"`
	Steps        int     `json:"steps"`
	SimTime      float64 `json:"sim_time"`
	TurnCount    int     `json:"turn_count"`
	Drift        float64 `json:"drift"`
	CreatedAtUTC string  `json:"created_at_utc"`
}

// WriteEpisodeArtifacts writes summary.json and trajectory.csv under
// baseDir/<episode id> and returns the episode directory.
func WriteEpisodeArtifacts(baseDir string, artifacts EpisodeArtifacts) (string, error) {
	if artifacts.Episode.ID == "" {
		return "", fmt.Errorf("episode id is required")
	}

	episodeDir := filepath.Join(baseDir, artifacts.Episode.ID)
	if err := os.MkdirAll(episodeDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(episodeDir, "summary.json"), map[string]any{
		"episode": artifacts.Episode,
		"summary": artifacts.Summary,
	}); err != nil {
		return "", err
	}
	if err := writeTrajectoryCSV(filepath.Join(episodeDir, "trajectory.csv"), artifacts.Trajectory); err != nil {
		return "", err
	}

	return episodeDir, nil
}

// AppendEpisodeIndex upserts an entry in baseDir's episode index.
func AppendEpisodeIndex(baseDir string, entry EpisodeIndexEntry) error {
	if entry.EpisodeID == "" {
		return fmt.Errorf("episode id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListEpisodeIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].EpisodeID == entry.EpisodeID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, episodeIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, episodeIndexFile), index)
}

// ListEpisodeIndex reads the export index, oldest first. A missing index
// file is an empty index, not an error.
func ListEpisodeIndex(baseDir string) ([]EpisodeIndexEntry, error) {
	path := filepath.Join(baseDir, episodeIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []EpisodeIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []EpisodeIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAtUTC < entries[j].CreatedAtUTC
	})
	return entries, nil
}

func writeTrajectoryCSV(path string, samples []model.TrajectorySample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	legs := 0
	if len(samples) > 0 {
		legs = samples[0].Legs
	}
	header := []string{"step", "time", "state", "drive_left", "drive_right", "x", "y", "heading_x", "heading_y"}
	for i := 0; i < legs; i++ {
		header = append(header,
			fmt.Sprintf("stride_%d_x", i),
			fmt.Sprintf("stride_%d_y", i),
		)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Step),
			formatFloat(s.Time),
			s.State,
			formatFloat(s.DriveLeft),
			formatFloat(s.DriveRight),
			formatFloat(s.X),
			formatFloat(s.Y),
			formatFloat(s.HeadingX),
			formatFloat(s.HeadingY),
		}
		for _, v := range s.Stride {
			row = append(row, formatFloat(v))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
