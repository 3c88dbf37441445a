package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gridmdp/internal/env"
)

var csvHeader = []string{"episode", "seed", "steps", "total_reward", "outcome", "final_row", "final_column"}

// EpisodeLog writes one CSV row and one JSON line per finished episode.
// Either path may be empty to skip that output.
type EpisodeLog struct {
	csvFile   *os.File
	csvWriter *csv.Writer
	jsonFile  *os.File
	episodes  []env.EpisodeStats
}

// OpenEpisodeLog creates the output files, including parent directories
func OpenEpisodeLog(csvPath, jsonPath string) (*EpisodeLog, error) {
	l := &EpisodeLog{}

	if csvPath != "" {
		if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
			return nil, err
		}
		f, err := os.Create(csvPath)
		if err != nil {
			return nil, err
		}
		l.csvFile = f
		l.csvWriter = csv.NewWriter(f)
		if err := l.csvWriter.Write(csvHeader); err != nil {
			l.Close()
			return nil, err
		}
	}

	if jsonPath != "" {
		if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
			l.Close()
			return nil, err
		}
		f, err := os.OpenFile(jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			l.Close()
			return nil, err
		}
		l.jsonFile = f
	}

	return l, nil
}

// Log records a finished episode
func (l *EpisodeLog) Log(stats env.EpisodeStats) error {
	l.episodes = append(l.episodes, stats)

	if l.csvWriter != nil {
		row := []string{
			strconv.Itoa(stats.Episode),
			strconv.FormatInt(stats.Seed, 10),
			strconv.Itoa(stats.Steps),
			fmt.Sprintf("%.4f", stats.TotalReward),
			stats.Outcome.String(),
			strconv.Itoa(stats.Final.Row),
			strconv.Itoa(stats.Final.Column),
		}
		if err := l.csvWriter.Write(row); err != nil {
			return err
		}
		l.csvWriter.Flush()
		if err := l.csvWriter.Error(); err != nil {
			return err
		}
	}

	if l.jsonFile != nil {
		line, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if _, err := l.jsonFile.Write(append(line, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Episodes returns everything logged so far
func (l *EpisodeLog) Episodes() []env.EpisodeStats {
	return l.episodes
}

// Close flushes and closes all log files
func (l *EpisodeLog) Close() error {
	var firstErr error
	if l.csvWriter != nil {
		l.csvWriter.Flush()
		firstErr = l.csvWriter.Error()
	}
	if l.csvFile != nil {
		if err := l.csvFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if l.jsonFile != nil {
		if err := l.jsonFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
