package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteCSV writes samples with the frames.csv header.
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			formatFloat(s.Time),
			formatFloat(s.State.X),
			formatFloat(s.State.Theta),
			formatFloat(s.State.XPrime),
			formatFloat(s.State.ThetaPrime),
			formatFloat(s.Energy),
			strconv.FormatBool(s.Dragging),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	Meta    RunMetadata  `json:"meta"`
	Times   []float64    `json:"times"`
	States  [][4]float64 `json:"states"`
	Energy  []float64    `json:"energy"`
	Dragged []bool       `json:"dragging"`
}

func exportData(meta RunMetadata, samples []Sample) ExportData {
	data := ExportData{
		Meta:    meta,
		Times:   make([]float64, len(samples)),
		States:  make([][4]float64, len(samples)),
		Energy:  make([]float64, len(samples)),
		Dragged: make([]bool, len(samples)),
	}
	for i, s := range samples {
		data.Times[i] = s.Time
		data.States[i] = [4]float64{s.State.X, s.State.Theta, s.State.XPrime, s.State.ThetaPrime}
		data.Energy[i] = s.Energy
		data.Dragged[i] = s.Dragging
	}
	return data
}

// ExportJSON writes the run as a single JSON document to w.
func ExportJSON(w io.Writer, meta RunMetadata, samples []Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, samples))
}

// ExportCSVFile copies a run's frames to path.
func (s *Store) ExportCSVFile(runID, path string) error {
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, samples)
}
