package bridge

import (
	"encoding/json"

	"github.com/matzehuels/chartbridge/pkg/chart"
	"github.com/matzehuels/chartbridge/pkg/errors"
	"github.com/matzehuels/chartbridge/pkg/options"
)

// Kind identifies a message sent across the update boundary.
type Kind string

// The four update boundary message kinds.
const (
	KindUpdateData    Kind = "update-data"
	KindUpdateOptions Kind = "update-options"
	KindAddDataset    Kind = "add-dataset"
	KindRemoveDataset Kind = "remove-dataset"
)

// Message is one update addressed to a rendered chart instance. Exactly the
// fields belonging to the kind are populated:
//
//	update-data:    Data, Meta
//	update-options: Options
//	add-dataset:    Dataset
//	remove-dataset: Index
type Message struct {
	Kind    Kind           `json:"kind"`
	ID      string         `json:"id"`
	Data    *chart.Data    `json:"data,omitempty"`
	Meta    *chart.Meta    `json:"meta,omitempty"`
	Options options.Tree   `json:"options,omitempty"`
	Dataset *chart.Dataset `json:"dataset,omitempty"`
	Index   *int           `json:"index,omitempty"`
}

// Validate checks that the message carries a known kind, a well-formed
// instance id, and the payload fields its kind requires.
func (m Message) Validate() error {
	if err := errors.ValidateInstanceID(m.ID); err != nil {
		return err
	}

	switch m.Kind {
	case KindUpdateData:
		if m.Data == nil || m.Meta == nil {
			return errors.New(errors.ErrCodeInvalidInput,
				"%s message requires data and meta", m.Kind)
		}
	case KindUpdateOptions:
		if m.Options == nil {
			return errors.New(errors.ErrCodeInvalidInput,
				"%s message requires options", m.Kind)
		}
	case KindAddDataset:
		if m.Dataset == nil {
			return errors.New(errors.ErrCodeInvalidInput,
				"%s message requires a dataset", m.Kind)
		}
	case KindRemoveDataset:
		if m.Index == nil {
			return errors.New(errors.ErrCodeInvalidInput,
				"%s message requires an index", m.Kind)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown message kind %q", m.Kind)
	}
	return nil
}

// ClickEvent is the typed record for a click forwarded from the rendered
// chart back to the host application.
type ClickEvent struct {
	DatasetIndex int     `json:"datasetIndex"`
	Index        int     `json:"index"`
	Value        float64 `json:"value"`
	Label        string  `json:"label"`
}

// DecodeClickEvent parses a click event payload received from the rendering
// side of the boundary.
func DecodeClickEvent(raw []byte) (ClickEvent, error) {
	var ev ClickEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return ClickEvent{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed click event")
	}
	return ev, nil
}
