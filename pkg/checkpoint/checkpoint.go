// Package checkpoint persists and restores branch-and-bound solver state,
// a versioned JSON record written atomically so a process
// killed mid-write never leaves a corrupt checkpoint behind.
package checkpoint

import (
	"encoding/json"
	"os"
	"path/filepath"

	bberrors "github.com/nmrtools/bbsbbu/pkg/errors"
	"github.com/nmrtools/bbsbbu/pkg/instance"
)

// CurrentVersion is the schema version written by Save. Load rejects any
// other version, since the field layout is not guaranteed compatible.
const CurrentVersion = 1

// CounterEntry records the number of confirmed-prefix edges covering a
// segment, keyed explicitly rather than by a JSON object (whose keys must
// be strings) so segment ids round-trip without reparsing.
type CounterEntry struct {
	Segment instance.SegmentID `json:"segment"`
	Count   int                `json:"count"`
}

// Checkpoint is the resumable state of a branch-and-bound search: the
// confirmed prefix, the best complete order found so far, the coverage
// counters for that prefix, and the still-uncovered segments.
type Checkpoint struct {
	Version   int                  `json:"version"`
	Idx       int                  `json:"idx"`
	Order     []instance.EdgeID    `json:"order"`
	OrderOpt  []instance.EdgeID    `json:"order_opt"`
	CostUB    string               `json:"cost_ub"` // decimal big.Int
	Counters  []CounterEntry       `json:"counters"`
	Uncovered []instance.SegmentID `json:"uncovered"`
}

// Save writes ck to path atomically: it marshals to a temp file in the
// same directory, then renames over path, so a reader never observes a
// partially written checkpoint.
func Save(path string, ck Checkpoint) error {
	ck.Version = CurrentVersion
	data, err := json.MarshalIndent(ck, "", "  ")
	if err != nil {
		return bberrors.Wrap(bberrors.ErrCodeInternal, err, "marshal checkpoint")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return bberrors.Wrap(bberrors.ErrCodeInternal, err, "write checkpoint temp file %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return bberrors.Wrap(bberrors.ErrCodeInternal, err, "rename checkpoint into place at %s", path)
	}
	return nil
}

// Load reads and validates a checkpoint from path. A missing file yields
// ErrCodeCheckpointMissing; a present but unreadable or version-mismatched
// file yields ErrCodeCheckpointInvalid. Both are non-fatal: callers fall
// back to a fresh solve.
func Load(path string) (Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Checkpoint{}, bberrors.Wrap(bberrors.ErrCodeCheckpointMissing, err, "checkpoint %s not found", path)
		}
		return Checkpoint{}, bberrors.Wrap(bberrors.ErrCodeCheckpointInvalid, err, "read checkpoint %s", path)
	}

	var ck Checkpoint
	if err := json.Unmarshal(data, &ck); err != nil {
		return Checkpoint{}, bberrors.Wrap(bberrors.ErrCodeCheckpointInvalid, err, "parse checkpoint %s", path)
	}
	if ck.Version != CurrentVersion {
		return Checkpoint{}, bberrors.New(bberrors.ErrCodeCheckpointInvalid, "checkpoint %s has version %d, want %d", path, ck.Version, CurrentVersion)
	}
	return ck, nil
}

// DefaultPath returns the conventional checkpoint path for a given .nmr
// input: the same basename with a .ckpt.json extension, alongside it.
func DefaultPath(nmrPath string) string {
	ext := filepath.Ext(nmrPath)
	return nmrPath[:len(nmrPath)-len(ext)] + ".ckpt.json"
}
