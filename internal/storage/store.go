package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/partsim/internal/sim"
)

var (
	ErrRunNotFound  = errors.New("storage: run not found")
	ErrAmbiguousRun = errors.New("storage: run id prefix is ambiguous")
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

// Store keeps run records, one directory per run under baseDir.
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
	ID          string             `json:"id"`
	Effect      string             `json:"effect"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        uint64             `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Completed   bool               `json:"completed"`
	Controllers []string           `json:"controllers"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes the metadata and the per-frame live counts of a run and
// returns the new run id.
func (s *Store) Save(effect string, cfg sim.Config, result *sim.Result) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Effect:      effect,
		Timestamp:   time.Now(),
		Seed:        cfg.Seed,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Steps:       result.StepsTaken,
		Completed:   result.Completed,
		Controllers: result.Controllers,
		Metrics:     result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result); err != nil {
		return "", err
	}
	return runID, nil
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

func writeFrames(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"time", "alive"}, result.Controllers...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := []string{
			strconv.FormatFloat(t, 'f', 6, 64),
			strconv.Itoa(result.Alive(i)),
		}
		for _, n := range result.Counts[i] {
			row = append(row, strconv.Itoa(n))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
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

	slices.SortFunc(runs, func(a, b RunMetadata) int { return a.Timestamp.Compare(b.Timestamp) })
	return runs, nil
}

// Resolve expands a unique run id prefix to the full id.
func (s *Store) Resolve(prefix string) (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	match := ""
	for _, r := range runs {
		if r.ID == prefix {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %q", ErrAmbiguousRun, prefix)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrRunNotFound, prefix)
	}
	return match, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadResult rebuilds the recorded part of a run's result: times, per-controller
// counts and metrics.
func (s *Store) LoadResult(runID string) (*sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &sim.Result{
		Controllers: meta.Controllers,
		Metrics:     meta.Metrics,
		StepsTaken:  meta.Steps,
		Completed:   meta.Completed,
	}
	if len(records) < 2 {
		return result, nil
	}

	result.Times = make([]float64, 0, len(records)-1)
	result.Counts = make([][]int, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		counts := make([]int, 0, len(record)-2)
		for _, field := range record[2:] {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
			}
			counts = append(counts, n)
		}
		result.Times = append(result.Times, t)
		result.Counts = append(result.Counts, counts)
	}
	return result, nil
}
