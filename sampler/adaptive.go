package sampler

import (
	"math"
)

// Step size bounds for the Beta random walk
const (
	MinStep = 1e-4
	MaxStep = 10.0

	// TargetAcceptance is the optimal acceptance rate for a 1-d random walk
	TargetAcceptance = 0.44
)

// StepTuner holds the per-edge random walk SD for the Beta update and adapts
// it while the chain burns in. Once adaptation stops the steps are fixed, so
// the retained part of the chain is an ordinary MH chain.
type StepTuner struct {
	Steps    []float64 `json:"steps"`    // Current proposal SD per edge
	Accepted []int     `json:"accepted"` // Accepts since the last adjustment
	Proposed []int     `json:"proposed"` // Proposals since the last adjustment
	Interval int       `json:"interval"` // Proposals between adjustments
}

// NewStepTuner starts every edge at the same step
func NewStepTuner(num int, initial float64, interval int) *StepTuner {
	t := &StepTuner{
		Steps:    make([]float64, num),
		Accepted: make([]int, num),
		Proposed: make([]int, num),
		Interval: interval,
	}
	for k := range t.Steps {
		t.Steps[k] = initial
	}
	return t
}

// Record notes one proposal for edge k. When adapting and the interval is
// reached the step is rescaled toward TargetAcceptance.
func (t *StepTuner) Record(k int, accepted bool, adapting bool) {
	if !adapting {
		return
	}

	t.Proposed[k]++
	if accepted {
		t.Accepted[k]++
	}

	if t.Proposed[k] >= t.Interval {
		rate := float64(t.Accepted[k]) / float64(t.Proposed[k])
		t.Steps[k] = adjustStep(t.Steps[k], rate)
		t.Accepted[k] = 0
		t.Proposed[k] = 0
	}
}

// adjustStep scales step by tan(pi/2 * rate) / tan(pi/2 * target), which
// shrinks the step when too few proposals are accepted and grows it when too
// many are.
func adjustStep(step, rate float64) float64 {
	s := math.Pi / 2.
	next := step * (math.Tan(s*rate) / math.Tan(s*TargetAcceptance))
	if math.IsNaN(next) || next < MinStep {
		return MinStep
	}
	if next > MaxStep {
		return MaxStep
	}
	return next
}
