package bridge

import (
	"time"

	"github.com/matzehuels/chartbridge/pkg/bridge/store"
	"github.com/matzehuels/chartbridge/pkg/errors"
	"github.com/matzehuels/chartbridge/pkg/options"
)

// ApplyMessage applies one update message to a stored instance record. It is
// the remote half of the proxy protocol: the server validates the incoming
// message, loads the instance, applies the update here, and persists the
// result.
//
// Kinds are applied as follows:
//
//	update-data:    replaces the instance's data block and column mapping
//	update-options: deep-merges the delta into the instance's options tree
//	add-dataset:    appends the dataset to the instance's data block
//	remove-dataset: drops the dataset at the index; out-of-range is a no-op
func ApplyMessage(inst *store.Instance, msg Message) error {
	if inst == nil {
		return errors.New(errors.ErrCodeInvalidProxyState,
			"cannot apply %s message to an unbound instance", msg.Kind)
	}
	if err := msg.Validate(); err != nil {
		return err
	}

	switch msg.Kind {
	case KindUpdateData:
		inst.Data = msg.Data
		inst.Meta = *msg.Meta

	case KindUpdateOptions:
		inst.Options = options.Merge(inst.Options, msg.Options)

	case KindAddDataset:
		if inst.Data == nil {
			return errors.New(errors.ErrCodeInvalidProxyState,
				"cannot add a dataset before the instance has data")
		}
		inst.Data.Datasets = append(inst.Data.Datasets, *msg.Dataset)

	case KindRemoveDataset:
		if inst.Data == nil {
			break
		}
		i := *msg.Index
		// Removing an index that no longer exists is not an error; the
		// rendered chart simply stays as it is.
		if i < 0 || i >= len(inst.Data.Datasets) {
			break
		}
		inst.Data.Datasets = append(inst.Data.Datasets[:i], inst.Data.Datasets[i+1:]...)
	}

	inst.UpdatedAt = time.Now().UTC()
	return nil
}
