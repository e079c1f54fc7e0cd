package sampler

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticsDivergence(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	diag := NewDiagnostics(slog.New(slog.NewTextHandler(&buf, nil)))

	st := &State{Beta: []float64{0.1, -0.2}, Tau: 1e-9}
	for sweep := 1; sweep < DivergenceWindow; sweep++ {
		diag.Observe(sweep, st)
	}
	assert.Empty(diag.Warnings)

	diag.Observe(DivergenceWindow, st)
	assert.Len(diag.Warnings, 1)
	assert.Contains(diag.Warnings[0], "tau below")
	assert.Contains(buf.String(), "level=WARN")

	// One healthy sweep in the window is enough to stay quiet
	st.Tau = 1
	st.Beta[1] = 5e3
	for sweep := 1; sweep < DivergenceWindow; sweep++ {
		diag.Observe(sweep, st)
	}
	st.Beta[1] = 0
	diag.Observe(DivergenceWindow, st)
	assert.Len(diag.Warnings, 1)
}

func TestDiagnosticsNumericFailure(t *testing.T) {
	assert := assert.New(t)

	diag := NewDiagnostics(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	diag.NumericFailure(1, 0, 0)
	diag.NumericFailure(2, 0, 0)
	diag.NumericFailure(2, 3, 0)

	assert.Equal(int64(3), diag.NumericRejects)
	assert.Len(diag.Warnings, 2)

	diag.TauFailure(5, -1)
	assert.Equal(int64(1), diag.TauRejects)
	assert.Len(diag.Warnings, 3)
}
