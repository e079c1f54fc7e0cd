package cmd

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cfgFile string
var verbose bool
var problemFile string
var traceFile string
var randomSeed int64

// startupParams is everything a subcommand needs from the command line
type startupParams struct {
	problemFile string
	randomSeed  int64
	traceFile   string
	out         *log.Logger
	trace       *log.Logger
}

func newStartupParams() (*startupParams, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	sp := &startupParams{
		problemFile: problemFile,
		randomSeed:  randomSeed,
		traceFile:   traceFile,
		out:         log.New(os.Stdout, "", log.Ltime),
	}

	if len(traceFile) > 0 {
		f, err := os.Create(traceFile)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not create trace file %s", traceFile)
		}
		sp.trace = log.New(f, "", 0)
	}

	return sp, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "carnet",
	Short: "Bayesian partial-correlation network sampling",
	Long: `carnet infers the structure and strength of a partial-correlation network
with a spike-and-slab prior over the edges of a conditional autoregressive
(CAR) model.

  - run:      MCMC over edge inclusion, effect size and noise precision
  - dot:      graphviz output of the edges a chain supports
  - simulate: write a synthetic problem from a known sparse network
`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML run config file (flags override it)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging (default is much more parsimonious)")
	rootCmd.PersistentFlags().StringVarP(&problemFile, "model", "m", "", "Network problem file to read")
	rootCmd.PersistentFlags().StringVarP(&traceFile, "trace", "t", "", "Optional trace file for detailed output")
	rootCmd.PersistentFlags().Int64VarP(&randomSeed, "seed", "r", 1, "Random seed to use")

	rootCmd.MarkPersistentFlagRequired("model")

	rootCmd.AddCommand(runCmd, dotCmd, simulateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
