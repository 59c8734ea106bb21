package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/springsim/internal/physics"
)

var ErrRunNotFound = errors.New("run not found")

var csvHeader = []string{"time", "x", "theta", "x_prime", "theta_prime", "energy", "dragging"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Scenario      string             `json:"scenario"`
	Preset        string             `json:"preset,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
	Params        physics.Params     `json:"params"`
	FrameInterval float64            `json:"frame_interval"`
	Duration      float64            `json:"duration"`
	Frames        int                `json:"frames"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Sample is one recorded frame.
type Sample struct {
	Time     float64
	State    physics.PhaseState
	Energy   float64
	Dragging bool
}

// Save writes metadata.json and frames.csv into a new run directory and
// returns the run ID. The ID and timestamp of meta are filled in here.
func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	name := meta.Scenario
	if name == "" {
		name = "run"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = len(samples)

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, samples); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(s.FramesPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		sample, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", runID, err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func (s *Store) FramesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "frames.csv")
}

func parseRecord(record []string) (Sample, error) {
	if len(record) != len(csvHeader) {
		return Sample{}, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(record))
	}
	var vals [6]float64
	for i := range vals {
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return Sample{}, fmt.Errorf("column %s: %w", csvHeader[i], err)
		}
		vals[i] = v
	}
	dragging, err := strconv.ParseBool(record[6])
	if err != nil {
		return Sample{}, fmt.Errorf("column dragging: %w", err)
	}
	return Sample{
		Time:     vals[0],
		State:    physics.PhaseState{X: vals[1], Theta: vals[2], XPrime: vals[3], ThetaPrime: vals[4]},
		Energy:   vals[5],
		Dragging: dragging,
	}, nil
}
