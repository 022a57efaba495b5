package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/odeivp/internal/experiment"
	"github.com/san-kum/odeivp/internal/ivp"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

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
	Problem   string             `json:"problem"`
	Method    string             `json:"method"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	A         float64            `json:"a"`
	B         float64            `json:"b"`
	X0        float64            `json:"x0"`
	Steps     int                `json:"steps,omitempty"`
	Tolerance float64            `json:"tolerance,omitempty"`
	HMin      float64            `json:"hmin,omitempty"`
	HMax      float64            `json:"hmax,omitempty"`
	Samples   int                `json:"samples"`
	Stats     ivp.Stats          `json:"stats"`
	Partial   bool               `json:"partial,omitempty"`
	Warning   string             `json:"warning,omitempty"`
	ElapsedMS float64            `json:"elapsed_ms"`
	Metrics   map[string]float64 `json:"metrics"`
}

func metadataFor(id string, now time.Time, res *experiment.Result) RunMetadata {
	meta := RunMetadata{
		ID:        id,
		Problem:   res.Problem,
		Method:    res.Method,
		Kind:      res.Kind.String(),
		Timestamp: now,
		A:         res.Params.A,
		B:         res.Params.B,
		X0:        res.Params.X0,
		Partial:   res.Partial,
		ElapsedMS: float64(res.Elapsed) / float64(time.Millisecond),
		Metrics:   res.Metrics,
	}
	if res.Trajectory != nil {
		meta.Samples = res.Trajectory.Len()
		meta.Stats = res.Trajectory.Stats
	}
	if res.Diagnostic != nil {
		meta.Warning = res.Diagnostic.Error()
	}
	if res.Kind == experiment.AdaptiveStep {
		meta.Tolerance = res.Params.Tolerance
		meta.HMin = res.Params.HMin
		meta.HMax = res.Params.HMax
	} else {
		meta.Steps = res.Params.Steps
	}
	return meta
}

// Save writes the run under <base>/<problem>_<method>_<unixnano>/ and returns
// its id.
func (s *Store) Save(res *experiment.Result) (string, error) {
	if res == nil || res.Trajectory == nil {
		return "", fmt.Errorf("save: empty result")
	}
	if !res.Trajectory.IsValid() {
		return "", fmt.Errorf("save %s/%s: %w", res.Problem, res.Method, ivp.ErrNonFinite)
	}

	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%d", res.Problem, res.Method, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(metadataFor(runID, now, res)); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, res.Trajectory, res.Exact); err != nil {
		return "", err
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes t,x rows, plus an exact column when exact has one value per
// sample.
func WriteCSV(w io.Writer, tr *ivp.Trajectory, exact []float64) error {
	cw := csv.NewWriter(w)

	withExact := len(exact) == tr.Len()
	header := []string{"t", "x"}
	if withExact {
		header = append(header, "exact")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range tr.T {
		row := []string{formatFloat(tr.T[i]), formatFloat(tr.X[i])}
		if withExact {
			row = append(row, formatFloat(exact[i]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadTrajectory reads a stored run back. The exact column is returned when
// present and nil otherwise.
func (s *Store) LoadTrajectory(runID string) (*ivp.Trajectory, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	tr := &ivp.Trajectory{}
	if len(records) < 2 {
		return tr, nil, nil
	}

	withExact := len(records[0]) > 2
	var exact []float64
	if withExact {
		exact = make([]float64, 0, len(records)-1)
	}
	tr.T = make([]float64, 0, len(records)-1)
	tr.X = make([]float64, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) < 2 {
			return nil, nil, fmt.Errorf("run %s: row %d: short record", runID, i+1)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("run %s: row %d: %w", runID, i+1, err)
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("run %s: row %d: %w", runID, i+1, err)
		}
		tr.Append(t, x)

		if withExact && len(record) > 2 {
			e, err := strconv.ParseFloat(record[2], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s: row %d: %w", runID, i+1, err)
			}
			exact = append(exact, e)
		}
	}

	if meta, err := s.Load(runID); err == nil {
		tr.Stats = meta.Stats
	}

	return tr, exact, nil
}
