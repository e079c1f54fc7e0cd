package sampler

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/CraigKelly/carnet/buffer"
)

// Divergence thresholds: a warning is raised when every sweep in a full
// window of DivergenceWindow sweeps is past the threshold.
const (
	DivergenceWindow = 50
	TauFloor         = 1e-6
	BetaCeiling      = 1e3
)

// Diagnostics collects the non-fatal problems seen by one chain. Nothing here
// stops the chain: the chain is always returned with its warnings attached.
type Diagnostics struct {
	Warnings       []string // Human readable, in the order raised
	NumericRejects int64    // MH proposals rejected for a NaN/overflow ratio
	TauRejects     int64    // Non-finite tau draws that were discarded

	logger     *slog.Logger
	rejectSeen map[int]bool
	tauWindow  *buffer.Circular[float64]
	betaWindow *buffer.Circular[float64]
}

// NewDiagnostics creates an empty collector that also logs to logger
func NewDiagnostics(logger *slog.Logger) *Diagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Diagnostics{
		logger:     logger,
		rejectSeen: make(map[int]bool),
		tauWindow:  buffer.NewCircular[float64](DivergenceWindow),
		betaWindow: buffer.NewCircular[float64](DivergenceWindow),
	}
}

// Warn records and logs a warning
func (d *Diagnostics) Warn(sweep int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	d.Warnings = append(d.Warnings, fmt.Sprintf("sweep %d: %s", sweep, msg))
	d.logger.Warn(msg, slog.Int("sweep", sweep))
}

// NumericFailure notes a rejected MH proposal on edge k (0-based). Only the
// first failure per edge produces a warning; the rest are counted.
func (d *Diagnostics) NumericFailure(sweep, k int, logRatio float64) {
	d.NumericRejects++
	if d.rejectSeen[k] {
		return
	}
	d.rejectSeen[k] = true
	d.Warn(sweep, "edge %d: Beta proposal rejected on non-finite acceptance ratio %v", k+1, logRatio)
}

// TauFailure notes a discarded tau draw
func (d *Diagnostics) TauFailure(sweep int, draw float64) {
	d.TauRejects++
	d.Warn(sweep, "tau draw %v rejected, previous value kept", draw)
}

// Observe checks the end-of-sweep state for divergence
func (d *Diagnostics) Observe(sweep int, st *State) {
	maxBeta := 0.0
	for _, b := range st.Beta {
		maxBeta = math.Max(maxBeta, math.Abs(b))
	}

	d.tauWindow.Add(st.Tau)
	d.betaWindow.Add(maxBeta)

	if windowAll(d.tauWindow, func(v float64) bool { return v < TauFloor }) {
		d.Warn(sweep, "tau below %g for %d consecutive sweeps: noise precision is collapsing", TauFloor, d.tauWindow.BufSize)
		d.tauWindow.Reset()
	}
	if windowAll(d.betaWindow, func(v float64) bool { return v > BetaCeiling }) {
		d.Warn(sweep, "max |Beta| above %g for %d consecutive sweeps: effect sizes are diverging", BetaCeiling, d.betaWindow.BufSize)
		d.betaWindow.Reset()
	}
}

// windowAll is true when the window is full and pred holds for every value
func windowAll(w *buffer.Circular[float64], pred func(float64) bool) bool {
	if !w.Full() {
		return false
	}
	for _, iter := range []*buffer.CircularIterator[float64]{w.FirstHalf(), w.SecondHalf()} {
		for iter.Next() {
			if !pred(iter.Value()) {
				return false
			}
		}
	}
	return true
}
