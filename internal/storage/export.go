package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/orbsim/internal/sim"
)

type ExportData struct {
	ID       string             `json:"id"`
	Scene    string             `json:"scene"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Seed     int64              `json:"seed"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	States   [][]float64        `json:"states"`
	Contacts []int              `json:"contacts"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run as a single JSON document, suitable for
// feeding external plotting tools.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		ID:       meta.ID,
		Scene:    meta.Scene,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Seed:     meta.Seed,
		Steps:    len(result.Times),
		Times:    result.Times,
		States:   result.States,
		Contacts: result.ContactCounts,
		Metrics:  meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
