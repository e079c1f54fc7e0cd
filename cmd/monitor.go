package cmd

import (
	"expvar"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/CraigKelly/carnet/sampler"
)

// monitor publishes sampler progress through expvar at /debug/vars
type monitor struct {
	Addr string

	info    *expvar.Map
	stopped chan struct{}
	server  *http.Server
	start   time.Time

	Iterations  *expvar.Int
	BurnIn      *expvar.Int
	Thin        *expvar.Int
	TotalChains *expvar.Int
	Sweeps      *expvar.Int
	Samples     *expvar.Int
	RunTime     *expvar.Float
	Phase       *expvar.String

	LastTau     *expvar.Float
	LastEdgeInc *expvar.Float // Fraction of edges with Gamma=1 at the last sweep
}

var publishOnce sync.Once
var published *monitor

// newMonitor returns the process-wide monitor. expvar names can only be
// registered once, so there is only ever one.
func newMonitor(addr string) *monitor {
	publishOnce.Do(func() {
		m := &monitor{}
		m.info = expvar.NewMap("carnet-progress")
		m.Iterations = expvar.NewInt("Iterations")
		m.BurnIn = expvar.NewInt("Burn-In")
		m.Thin = expvar.NewInt("Thin")
		m.TotalChains = expvar.NewInt("Total-Chain-Count")
		m.Sweeps = expvar.NewInt("Total-Sweeps")
		m.Samples = expvar.NewInt("Total-Samples")
		m.RunTime = expvar.NewFloat("Run-Time")
		m.Phase = expvar.NewString("Phase")
		m.LastTau = expvar.NewFloat("Last-Tau")
		m.LastEdgeInc = expvar.NewFloat("Last-Edge-Inclusion")
		published = m
	})
	published.Addr = addr
	return published
}

// Configure records the run settings
func (m *monitor) Configure(cfg sampler.Config) {
	m.Iterations.Set(int64(cfg.Iterations))
	m.BurnIn.Set(int64(cfg.BurnIn))
	m.Thin.Set(int64(cfg.Thin))
	m.TotalChains.Set(int64(cfg.Chains))
	m.Sweeps.Set(0)
	m.Samples.Set(0)
	m.start = time.Now()

	seed := new(expvar.Int)
	seed.Set(cfg.Seed)
	m.info.Set("Seed", seed)
	prior := new(expvar.String)
	prior.Set(fmt.Sprintf("%v", cfg.PriorOnly))
	m.info.Set("Prior-Only", prior)
}

// Progress is a sampler.ProgressFunc. It is safe to call from every chain.
func (m *monitor) Progress(cfg sampler.Config) sampler.ProgressFunc {
	return func(chain int, sweep int, phase sampler.Phase, st *sampler.State) {
		m.Sweeps.Add(1)
		if cfg.Recorded(sweep) {
			m.Samples.Add(1)
		}
		m.Phase.Set(phase.String())
		m.LastTau.Set(st.Tau)

		inc := 0
		for _, g := range st.Gamma {
			inc += g
		}
		m.LastEdgeInc.Set(float64(inc) / float64(len(st.Gamma)))
		m.RunTime.Set(time.Since(m.start).Seconds())
	}
}

// handler serves expvar and redirects everything else to it
func (m *monitor) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/debug/vars", http.StatusTemporaryRedirect)
	})
	return mux
}

// Start begins serving over HTTP
func (m *monitor) Start() error {
	if m.server != nil {
		return errors.Errorf("BUG: You may only start the process monitor once")
	}

	m.stopped = make(chan struct{})

	m.server = &http.Server{
		Addr:    m.Addr,
		Handler: m.handler(),
	}

	// Actual server that will close the stopped channel on exit
	started := make(chan struct{})
	go func() {
		defer close(m.stopped)
		fmt.Fprintf(os.Stderr, "HTTP now available at %v (see debug/vars/)\n", m.server.Addr)
		close(started)
		m.server.ListenAndServe()
	}()

	<-started
	return nil
}

func (m *monitor) Stop() {
	if m.server == nil {
		return
	}

	m.server.Close()

	select {
	case <-m.stopped:
		fmt.Fprintf(os.Stderr, "HTTP Info Stopped\n")
	case <-time.After(2 * time.Second):
		fmt.Fprintf(os.Stderr, "HTTP would NOT stop: just continuing on\n")
	}
	m.server = nil
}
