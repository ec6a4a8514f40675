package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/san-kum/partsim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Controllers: []string{"jet", "mist"},
		Times:       []float64{0, 0.5, 1},
		Counts:      [][]int{{0, 0}, {12, 3}, {20, 7}},
		Metrics:     map[string]float64{"peak_alive": 27},
		StepsTaken:  2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := sim.Config{Dt: 0.5, Duration: 1, Seed: 42}
	runID, err := st.Save("fountain", cfg, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := uuid.Parse(runID); err != nil {
		t.Errorf("run id %q is not a uuid: %v", runID, err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Effect != "fountain" {
		t.Errorf("expected effect 'fountain', got '%s'", meta.Effect)
	}
	if meta.Seed != 42 || meta.Steps != 2 {
		t.Errorf("seed %d steps %d", meta.Seed, meta.Steps)
	}
	if meta.Metrics["peak_alive"] != 27 {
		t.Errorf("expected peak_alive 27, got %f", meta.Metrics["peak_alive"])
	}

	got, err := st.LoadResult(runID)
	if err != nil {
		t.Fatalf("load result failed: %v", err)
	}
	if diff := cmp.Diff(testResult(), got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"smoke", "sparks"} {
		if _, err := st.Save(name, sim.Config{Dt: 0.1, Duration: 1}, testResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Timestamp.After(runs[1].Timestamp) {
		t.Error("runs should be listed oldest first")
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("test", sim.Config{Dt: 0.5, Duration: 1}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "frames.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	data, err := os.ReadFile(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "time,alive,jet,mist\n0.000000,0,0,0\n0.500000,15,12,3\n1.000000,27,20,7\n"
	if string(data) != want {
		t.Errorf("frames.csv:\n%s\nwant:\n%s", data, want)
	}
}

func TestStoreResolve(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save("test", sim.Config{Dt: 0.5, Duration: 1}, testResult())
	if err != nil {
		t.Fatal(err)
	}

	got, err := st.Resolve(runID[:8])
	if err != nil || got != runID {
		t.Errorf("Resolve(prefix) = %q, %v", got, err)
	}
	if _, err := st.Resolve("zzzz"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.Load("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{ID: "abc", Effect: "smoke", Controllers: []string{"jet", "mist"}}
	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, testResult()); err != nil {
		t.Fatal(err)
	}

	var got struct {
		ID     string    `json:"id"`
		Effect string    `json:"effect"`
		Alive  []float64 `json:"alive"`
		Counts [][]int   `json:"counts"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "abc" || got.Effect != "smoke" {
		t.Errorf("metadata = %+v", got)
	}
	if diff := cmp.Diff([]float64{0, 15, 27}, got.Alive); diff != "" {
		t.Errorf("alive mismatch (-want +got):\n%s", diff)
	}
}
