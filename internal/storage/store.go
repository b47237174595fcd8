// Package storage records completed runs as directories holding JSON
// metadata and a CSV state history. Run artifacts are recordings for
// later plotting and analysis, not resumable simulation state.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/orbsim/internal/sim"
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
	Scene     string             `json:"scene"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	G         float64            `json:"g"`
	Bodies    int                `json:"bodies"`
	Contacts  int                `json:"contacts"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata.json plus states.csv with a
// row per sampled snapshot (time, contact count, then px,py,pz,vx,vy,vz
// per body in registry order).
func (s *Store) Save(scene string, dt, duration float64, seed int64, g float64, bodies int, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scene, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     scene,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Duration:  duration,
		G:         g,
		Bodies:    bodies,
		Contacts:  result.TotalContacts,
		Metrics:   result.Metrics,
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.States) == 0 {
		return runID, nil
	}

	header := []string{"time", "contacts"}
	for i := 0; i < len(result.States[0])/6; i++ {
		for _, c := range []string{"px", "py", "pz", "vx", "vy", "vz"} {
			header = append(header, fmt.Sprintf("%s%d", c, i))
		}
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.States {
		row := make([]string, 0, len(result.States[i])+2)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))

		// SnapshotContacts is aligned with States; ContactCounts is
		// per step and lands on the wrong row once sampling strides.
		contacts := 0
		if i < len(result.SnapshotContacts) {
			contacts = result.SnapshotContacts[i]
		}
		row = append(row, strconv.Itoa(contacts))

		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads back a run's CSV history: per-snapshot times,
// contact counts, and flattened body states.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, []int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, []int{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	contacts := make([]int, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		tv, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		cv, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}

		state := make([]float64, 0, len(record)-2)
		for _, field := range record[2:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}

		times = append(times, tv)
		contacts = append(contacts, cv)
		states = append(states, state)
	}

	return states, times, contacts, nil
}
