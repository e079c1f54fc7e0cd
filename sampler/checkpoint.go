package sampler

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Checkpoint is everything needed to continue a chain bit-for-bit: the state
// after Iteration sweeps, the MH tuning state, and the random stream position.
type Checkpoint struct {
	Chain     int        `json:"chain"`
	Iteration int        `json:"iteration"`
	State     *State     `json:"state"`
	Tuner     *StepTuner `json:"tuner"`
	SeedKey   []uint64   `json:"seed_key"`
	Draws     uint64     `json:"draws"`
}

// WriteCheckpoints writes one checkpoint per chain as JSON
func WriteCheckpoints(w io.Writer, cps []*Checkpoint) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(cps), "Could not write checkpoints")
}

// ReadCheckpoints reads checkpoints written by WriteCheckpoints
func ReadCheckpoints(r io.Reader) ([]*Checkpoint, error) {
	var cps []*Checkpoint
	if err := json.NewDecoder(r).Decode(&cps); err != nil {
		return nil, errors.Wrap(err, "Could not read checkpoints")
	}

	for i, cp := range cps {
		if cp == nil || cp.State == nil || cp.Tuner == nil || len(cp.SeedKey) < 1 {
			return nil, errors.Errorf("Checkpoint %d is incomplete", i)
		}
		if err := cp.State.Check(); err != nil {
			return nil, errors.Wrapf(err, "Checkpoint %d has an invalid state", i)
		}
	}
	return cps, nil
}
