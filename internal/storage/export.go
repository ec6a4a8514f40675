package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/partsim/internal/sim"
)

type ExportData struct {
	RunMetadata
	Times  []float64 `json:"times"`
	Alive  []float64 `json:"alive"`
	Counts [][]int   `json:"counts"`
}

func NewExportData(meta *RunMetadata, result *sim.Result) ExportData {
	return ExportData{
		RunMetadata: *meta,
		Times:       result.Times,
		Alive:       result.AliveSeries(),
		Counts:      result.Counts,
	}
}

// ExportJSON writes a run record as one JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, result))
}

func ExportJSONFile(path string, meta *RunMetadata, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, result)
}
