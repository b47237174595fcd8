package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/orbsim/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		States: [][]float64{
			{0, 5, 0, -0.75, 0, 0, 0, -5, 0, 0.75, 0, 0},
			{-0.0075, 5, 0, -0.75, -0.0004, 0, 0.0075, -5, 0, 0.75, 0.0004, 0},
		},
		Times:            []float64{0, 0.01},
		ContactCounts:    []int{0},
		SnapshotContacts: []int{0, 0},
		Metrics:          map[string]float64{"contacts": 0},
		StepsTaken:       1,
	}
}

// sampledResult mimics a run recorded with SampleEvery = 3: six steps
// with contact counts 1..6, snapshots after steps 3 and 6.
func sampledResult() *sim.Result {
	return &sim.Result{
		States: [][]float64{
			{0, 0, 0, 1, 0, 0},
			{0.03, 0, 0, 1, 0, 0},
			{0.06, 0, 0, 1, 0, 0},
		},
		Times:            []float64{0, 0.03, 0.06},
		ContactCounts:    []int{1, 2, 3, 4, 5, 6},
		SnapshotContacts: []int{0, 3, 6},
		StepsTaken:       6,
		TotalContacts:    21,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runID, err := st.Save("binary", 0.01, 1.0, 42, 1.0, 2, sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if runID == "" || !strings.HasPrefix(runID, "binary_") {
		t.Fatalf("run id: got %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Scene != "binary" || meta.Seed != 42 || meta.Bodies != 2 || meta.Dt != 0.01 {
		t.Errorf("metadata mismatch: %+v", meta)
	}

	states, times, contacts, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states: %v", err)
	}
	if len(states) != 2 || len(times) != 2 || len(contacts) != 2 {
		t.Fatalf("row counts: %d states, %d times, %d contacts", len(states), len(times), len(contacts))
	}
	if len(states[0]) != 12 {
		t.Errorf("snapshot width: got %d, want 12", len(states[0]))
	}
	if times[1] != 0.01 {
		t.Errorf("time roundtrip: got %f", times[1])
	}
	if contacts[0] != 0 {
		t.Errorf("initial snapshot should report 0 contacts, got %d", contacts[0])
	}
}

func TestStoreSaveSampledContacts(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("impact", 0.01, 0.06, 42, 1.0, 1, sampledResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	_, times, contacts, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states: %v", err)
	}

	// each row's contact count must belong to the step its time was
	// sampled at, not to the row index
	wantTimes := []float64{0, 0.03, 0.06}
	wantContacts := []int{0, 3, 6}
	for i := range wantContacts {
		if times[i] != wantTimes[i] {
			t.Errorf("row %d time: got %g, want %g", i, times[i], wantTimes[i])
		}
		if contacts[i] != wantContacts[i] {
			t.Errorf("row %d contacts: got %d, want %d", i, contacts[i], wantContacts[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list empty store: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}

	if _, err := st.Save("impact", 0.01, 1.0, 1, 1.0, 2, sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || runs[0].Scene != "impact" {
		t.Errorf("list contents: %+v", runs)
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New("/nonexistent/orbsim-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("missing base dir should list empty, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{ID: "binary_1", Scene: "binary", Dt: 0.01, Duration: 1.0, Seed: 42}
	result := sampleResult()

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, result); err != nil {
		t.Fatalf("export: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("exported JSON unparsable: %v", err)
	}
	if data.ID != "binary_1" || data.Steps != 2 || len(data.States) != 2 {
		t.Errorf("export contents: %+v", data)
	}
}
