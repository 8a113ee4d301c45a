package store

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/chartbridge/pkg/chart"
	"github.com/matzehuels/chartbridge/pkg/options"
)

func sampleInstance(id string) *Instance {
	now := time.Now().UTC().Truncate(time.Second)
	return &Instance{
		ID:        id,
		ChartType: chart.TypeLine,
		Meta:      chart.Meta{LabelColumn: "month", ValueColumns: []string{"revenue"}},
		Data: &chart.Data{
			Labels:   []string{"Jan", "Feb"},
			Datasets: []chart.Dataset{{Label: "revenue", Data: []float64{120, 95.5}}},
		},
		Options:   options.Tree{"responsive": true},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// storeUnderTest runs the shared contract checks against a backend.
func storeUnderTest(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	// Unknown ids are nil, nil.
	got, err := s.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get(missing): %v", err)
	}
	if got != nil {
		t.Fatalf("Get(missing) = %+v, want nil", got)
	}

	inst := sampleInstance("inst-1")
	if err := s.Set(ctx, inst); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err = s.Get(ctx, "inst-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for a stored instance")
	}
	if got.ChartType != chart.TypeLine {
		t.Errorf("ChartType = %q, want %q", got.ChartType, chart.TypeLine)
	}
	if got.Meta.LabelColumn != "month" {
		t.Errorf("Meta.LabelColumn = %q, want %q", got.Meta.LabelColumn, "month")
	}
	if got.Data == nil || len(got.Data.Datasets) != 1 {
		t.Errorf("Data = %+v, want one dataset", got.Data)
	}
	if got.Options["responsive"] != true {
		t.Errorf("Options = %+v, want responsive true", got.Options)
	}

	// Set replaces.
	inst2 := sampleInstance("inst-1")
	inst2.ChartType = chart.TypeRadar
	if err := s.Set(ctx, inst2); err != nil {
		t.Fatalf("Set (replace): %v", err)
	}
	got, err = s.Get(ctx, "inst-1")
	if err != nil {
		t.Fatalf("Get after replace: %v", err)
	}
	if got.ChartType != chart.TypeRadar {
		t.Errorf("ChartType after replace = %q, want %q", got.ChartType, chart.TypeRadar)
	}

	// Delete, then deleting again is fine.
	if err := s.Delete(ctx, "inst-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = s.Get(ctx, "inst-1")
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got != nil {
		t.Errorf("Get after delete = %+v, want nil", got)
	}
	if err := s.Delete(ctx, "inst-1"); err != nil {
		t.Errorf("Delete of unknown id: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	storeUnderTest(t, s)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Set(ctx, sampleInstance("inst-1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "inst-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.ChartType = chart.TypePie

	again, err := s.Get(ctx, "inst-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.ChartType != chart.TypeLine {
		t.Error("mutating a returned instance must not affect the stored record")
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()
	storeUnderTest(t, s)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s1, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s1.Set(ctx, sampleInstance("inst-1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s1.Close()

	s2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	got, err := s2.Get(ctx, "inst-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ID != "inst-1" {
		t.Fatalf("instance not persisted, got %+v", got)
	}
}

func TestInstanceEncodeRoundTrip(t *testing.T) {
	inst := sampleInstance("inst-1")
	data, err := encodeInstance(inst)
	if err != nil {
		t.Fatalf("encodeInstance: %v", err)
	}
	back, err := decodeInstance(data)
	if err != nil {
		t.Fatalf("decodeInstance: %v", err)
	}
	if back.ID != inst.ID || back.ChartType != inst.ChartType {
		t.Errorf("round trip = %+v, want %+v", back, inst)
	}
	if back.Options["responsive"] != true {
		t.Errorf("Options lost in round trip: %+v", back.Options)
	}
}
