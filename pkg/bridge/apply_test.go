package bridge

import (
	"testing"
	"time"

	"github.com/matzehuels/chartbridge/pkg/bridge/store"
	"github.com/matzehuels/chartbridge/pkg/chart"
	"github.com/matzehuels/chartbridge/pkg/errors"
	"github.com/matzehuels/chartbridge/pkg/options"
)

func storedInstance() *store.Instance {
	return &store.Instance{
		ID:        "inst-1",
		ChartType: chart.TypeBar,
		Meta:      chart.Meta{LabelColumn: "month", ValueColumns: []string{"revenue"}},
		Data: &chart.Data{
			Labels: []string{"Jan", "Feb"},
			Datasets: []chart.Dataset{
				{Label: "revenue", Data: []float64{120, 95.5}},
				{Label: "cost", Data: []float64{80, 70}},
			},
		},
		Options:   options.Tree{"responsive": true},
		CreatedAt: time.Now().UTC(),
	}
}

func TestApplyMessageNilInstance(t *testing.T) {
	err := ApplyMessage(nil, Message{Kind: KindUpdateOptions, ID: "x", Options: options.Tree{}})
	if errors.GetCode(err) != errors.ErrCodeInvalidProxyState {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidProxyState)
	}
}

func TestApplyMessageInvalidMessage(t *testing.T) {
	inst := storedInstance()
	err := ApplyMessage(inst, Message{Kind: "bogus", ID: "inst-1"})
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestApplyUpdateData(t *testing.T) {
	inst := storedInstance()
	newData := &chart.Data{
		Labels:   []string{"Mar"},
		Datasets: []chart.Dataset{{Label: "cost", Data: []float64{90}}},
	}
	newMeta := &chart.Meta{LabelColumn: "month", ValueColumns: []string{"cost"}}

	err := ApplyMessage(inst, Message{
		Kind: KindUpdateData, ID: inst.ID, Data: newData, Meta: newMeta,
	})
	if err != nil {
		t.Fatalf("ApplyMessage: %v", err)
	}

	if len(inst.Data.Datasets) != 1 || inst.Data.Datasets[0].Label != "cost" {
		t.Errorf("data not replaced: %+v", inst.Data)
	}
	if len(inst.Meta.ValueColumns) != 1 || inst.Meta.ValueColumns[0] != "cost" {
		t.Errorf("meta not replaced: %+v", inst.Meta)
	}
	if inst.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestApplyUpdateOptionsMerges(t *testing.T) {
	inst := storedInstance()
	err := ApplyMessage(inst, Message{
		Kind:    KindUpdateOptions,
		ID:      inst.ID,
		Options: options.Tree{"plugins": options.Tree{"legend": options.Tree{"display": false}}},
	})
	if err != nil {
		t.Fatalf("ApplyMessage: %v", err)
	}

	if inst.Options["responsive"] != true {
		t.Error("existing option keys should survive the merge")
	}
	plugins, _ := inst.Options["plugins"].(options.Tree)
	legend, _ := plugins["legend"].(options.Tree)
	if legend["display"] != false {
		t.Errorf("legend.display = %v, want false", legend["display"])
	}
}

func TestApplyAddDataset(t *testing.T) {
	inst := storedInstance()
	err := ApplyMessage(inst, Message{
		Kind:    KindAddDataset,
		ID:      inst.ID,
		Dataset: &chart.Dataset{Label: "forecast", Data: []float64{1, 2}},
	})
	if err != nil {
		t.Fatalf("ApplyMessage: %v", err)
	}
	if len(inst.Data.Datasets) != 3 || inst.Data.Datasets[2].Label != "forecast" {
		t.Errorf("dataset not appended: %+v", inst.Data.Datasets)
	}
}

func TestApplyRemoveDataset(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		wantLeft  int
		wantFirst string
	}{
		{"in range", 0, 1, "cost"},
		{"negative is a no-op", -1, 2, "revenue"},
		{"past the end is a no-op", 5, 2, "revenue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := storedInstance()
			err := ApplyMessage(inst, Message{
				Kind: KindRemoveDataset, ID: inst.ID, Index: &tt.index,
			})
			if err != nil {
				t.Fatalf("ApplyMessage: %v", err)
			}
			if len(inst.Data.Datasets) != tt.wantLeft {
				t.Fatalf("datasets left = %d, want %d", len(inst.Data.Datasets), tt.wantLeft)
			}
			if inst.Data.Datasets[0].Label != tt.wantFirst {
				t.Errorf("first dataset = %q, want %q", inst.Data.Datasets[0].Label, tt.wantFirst)
			}
		})
	}
}
