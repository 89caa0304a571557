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
	"strings"
	"time"

	"github.com/san-kum/uwvdyn/internal/config"
	"github.com/san-kum/uwvdyn/internal/dynamo"
	"github.com/san-kum/uwvdyn/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
	vehicleFile  = "vehicle.yaml"
)

// ErrInvalidRunID is returned for an ID that does not name a single
// directory inside the store.
var ErrInvalidRunID = errors.New("storage: invalid run id")

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
	ID        string             `json:"id"`
	Vehicle   string             `json:"vehicle"`
	ModelType string             `json:"model_type"`
	Timestamp time.Time          `json:"timestamp"`
	Axis      string             `json:"axis"`
	From      float64            `json:"from"`
	To        float64            `json:"to"`
	Samples   int                `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the sweep into a new run directory holding the metadata, the
// samples and a snapshot of the vehicle, and returns the run ID.
func (s *Store) Save(vehicle *config.Vehicle, cfg sweep.Config, result *sweep.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%d", runName(vehicle.Name), cfg.Axis, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Vehicle:   vehicle.Name,
		ModelType: vehicle.ModelType.String(),
		Timestamp: now,
		Axis:      cfg.Axis.String(),
		From:      cfg.From,
		To:        cfg.To,
		Samples:   len(result.Efforts),
		Metrics:   result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, vehicleFile), vehicle); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), result); err != nil {
		return "", err
	}

	return runID, nil
}

// runName reduces a vehicle name to [A-Za-z0-9_-] so a run ID is always a
// single directory below the store.
func runName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
	if strings.Trim(clean, "_") == "" {
		return "vehicle"
	}
	return clean
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, result *sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"speed"}
	for i := 0; i < dynamo.DOF; i++ {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	for i := 0; i < dynamo.DOF; i++ {
		header = append(header, fmt.Sprintf("tau%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.Efforts {
		row := []string{strconv.FormatFloat(result.Speeds[i], 'g', -1, 64)}
		for _, val := range result.Velocities[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		for _, val := range result.Efforts[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns stored runs, oldest first. Directories without readable
// metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRunID, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadVehicle reads the vehicle snapshot taken when the run was saved.
func (s *Store) LoadVehicle(runID string) (*config.Vehicle, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	return config.Load(filepath.Join(dir, vehicleFile))
}

// LoadSamples reads back the sweep samples of a run.
func (s *Store) LoadSamples(runID string) (*sweep.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	axis, err := sweep.ParseAxis(meta.Axis)
	if err != nil {
		return nil, err
	}

	// Load has already checked runID.
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 1 + 2*dynamo.DOF

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &sweep.Result{Axis: axis, Metrics: meta.Metrics}
	for n, record := range records {
		if n == 0 {
			continue
		}

		vals := make([]float64, len(record))
		for j, field := range record {
			vals[j], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", samplesFile, n+1, err)
			}
		}

		var v, e dynamo.Vector6
		copy(v[:], vals[1:1+dynamo.DOF])
		copy(e[:], vals[1+dynamo.DOF:])
		result.Speeds = append(result.Speeds, vals[0])
		result.Velocities = append(result.Velocities, v)
		result.Efforts = append(result.Efforts, e)
	}

	return result, nil
}
