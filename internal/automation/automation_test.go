package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbsim/internal/storage"
)

func writeBatch(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBatchRejectsEmpty(t *testing.T) {
	path := writeBatch(t, "name: empty\nruns: []\n")
	if _, err := LoadBatch(path); err == nil {
		t.Fatal("expected error for batch without runs")
	}
}

func TestRunBatchSavesEachRun(t *testing.T) {
	path := writeBatch(t, `
name: smoke
runs:
  - save_as: tiny
    seed: 7
    config:
      dt: 0.01
      duration: 0.05
      g: 1.0
      min_separation: 1e-9
      sample_every: 1
      scene:
        bodies: 3
        spread: 5.0
        speed: 1.0
        min_radius: 0.01
        max_radius: 0.11
        planets: true
  - save_as: pair
    seed: 7
    config:
      dt: 0.01
      duration: 0.05
      g: 1.0
      min_separation: 1e-9
      sample_every: 1
      scene:
        bodies: 0
        spread: 5.0
        speed: 0
        min_radius: 0.01
        max_radius: 0.11
        planets: true
`)

	batch, err := LoadBatch(path)
	if err != nil {
		t.Fatal(err)
	}

	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	ids, err := RunBatch(context.Background(), batch, st)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("run ids = %v, want 2 entries", ids)
	}

	meta, err := st.Load(ids[0])
	if err != nil {
		t.Fatal(err)
	}
	if meta.Scene != "tiny" {
		t.Errorf("scene = %q, want tiny", meta.Scene)
	}
	if meta.Bodies != 5 {
		t.Errorf("bodies = %d, want 5", meta.Bodies)
	}

	pair, err := st.Load(ids[1])
	if err != nil {
		t.Fatal(err)
	}
	if pair.Bodies != 2 {
		t.Errorf("bodies = %d, want 2", pair.Bodies)
	}
}

func TestRunBatchUnknownPreset(t *testing.T) {
	path := writeBatch(t, `
name: bad
runs:
  - preset: nope
`)
	batch, err := LoadBatch(path)
	if err != nil {
		t.Fatal(err)
	}

	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := RunBatch(context.Background(), batch, st); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}
