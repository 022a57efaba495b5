package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Times []float64 `json:"times"`
	X     []float64 `json:"x"`
	Exact []float64 `json:"exact,omitempty"`
}

// ExportJSON writes a stored run, metadata and samples, as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	tr, exact, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Times:       tr.T,
		X:           tr.X,
		Exact:       exact,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV copies a stored run's samples to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	tr, exact, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	return WriteCSV(w, tr, exact)
}
