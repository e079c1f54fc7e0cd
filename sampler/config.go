package sampler

import (
	"strings"

	"github.com/CraigKelly/carnet/model"
)

// Monitored parameter names
const (
	ParamBeta  = "Beta"
	ParamGamma = "Gamma"
	ParamP     = "p"
	ParamTau   = "tau"
)

// Monitor is the set of parameters recorded into a chain
type Monitor struct {
	Beta  bool
	Gamma bool
	P     bool
	Tau   bool
}

// DefaultMonitor records Beta and Gamma
var DefaultMonitor = Monitor{Beta: true, Gamma: true}

// ParseMonitor builds a Monitor from parameter names. An empty list gives
// DefaultMonitor. Any name outside {Beta, Gamma, p, tau} is an
// ErrConfiguration.
func ParseMonitor(names []string) (Monitor, error) {
	if len(names) < 1 {
		return DefaultMonitor, nil
	}

	var m Monitor
	for _, raw := range names {
		switch name := strings.TrimSpace(raw); name {
		case ParamBeta:
			m.Beta = true
		case ParamGamma:
			m.Gamma = true
		case ParamP:
			m.P = true
		case ParamTau:
			m.Tau = true
		default:
			return Monitor{}, model.ConfigErrorf("Unknown monitored parameter %q: must be one of Beta, Gamma, p, tau", raw)
		}
	}
	return m, nil
}

// Names lists the monitored parameters in canonical order
func (m Monitor) Names() []string {
	var names []string
	if m.Beta {
		names = append(names, ParamBeta)
	}
	if m.Gamma {
		names = append(names, ParamGamma)
	}
	if m.P {
		names = append(names, ParamP)
	}
	if m.Tau {
		names = append(names, ParamTau)
	}
	return names
}

// Config is the run configuration for a Driver
type Config struct {
	Iterations    int      `yaml:"iterations"`     // Total sweeps per chain, burn-in included
	BurnIn        int      `yaml:"burnin"`         // Sweeps discarded before recording starts
	Thin          int      `yaml:"thin"`           // Record every Thin-th sweep after burn-in
	Chains        int      `yaml:"chains"`         // Independent chains run in parallel
	Monitor       []string `yaml:"monitor"`        // Parameter names to record
	Seed          int64    `yaml:"seed"`           // Base seed: chain c uses key (Seed, c)
	PriorOnly     bool     `yaml:"prior_only"`     // Drop the likelihood term (prior check)
	AdaptInterval int      `yaml:"adapt_interval"` // MH proposals between step size updates (burn-in only)
	InitialStep   float64  `yaml:"initial_step"`   // Starting random walk SD for Beta
}

// DefaultConfig is a reasonable single chain run
func DefaultConfig() Config {
	return Config{
		Iterations:    10000,
		BurnIn:        5000,
		Thin:          10,
		Chains:        1,
		Monitor:       []string{ParamBeta, ParamGamma},
		Seed:          1,
		AdaptInterval: 50,
		InitialStep:   0.5,
	}
}

// Check returns an ErrConfiguration if the config can not be run
func (c Config) Check() error {
	if c.Iterations < 1 {
		return model.ConfigErrorf("Invalid iteration count %d", c.Iterations)
	}
	if c.BurnIn < 0 {
		return model.ConfigErrorf("Invalid burn-in %d", c.BurnIn)
	}
	if c.BurnIn >= c.Iterations {
		return model.ConfigErrorf("Burn-in %d must be less than iteration count %d", c.BurnIn, c.Iterations)
	}
	if c.Thin < 1 {
		return model.ConfigErrorf("Invalid thinning interval %d", c.Thin)
	}
	if c.Chains < 1 {
		return model.ConfigErrorf("Invalid chain count %d", c.Chains)
	}
	if c.AdaptInterval < 1 {
		return model.ConfigErrorf("Invalid adaptation interval %d", c.AdaptInterval)
	}
	if !(c.InitialStep > 0) {
		return model.ConfigErrorf("Invalid initial step size %v", c.InitialStep)
	}
	if _, err := ParseMonitor(c.Monitor); err != nil {
		return err
	}
	return nil
}

// ChainLength is the number of snapshots a complete chain holds
func (c Config) ChainLength() int {
	if c.Thin < 1 || c.Iterations <= c.BurnIn {
		return 0
	}
	return (c.Iterations - c.BurnIn) / c.Thin
}

// Recorded is true when the given 1-based sweep should be kept
func (c Config) Recorded(sweep int) bool {
	s := sweep - c.BurnIn
	return s > 0 && s%c.Thin == 0
}
