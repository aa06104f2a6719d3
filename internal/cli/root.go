// Package cli wires the simulator, the converters and the editor into the
// qsim command tree.
package cli

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"qsim/internal/config"
	"qsim/internal/logging"
	"qsim/internal/sim"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "text" | "json" | "msgpack"
	Precision int

	cfg *config.Config
	log zerolog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "msgpack"}

// NewRootCommand creates the root command. A nil cfg means defaults from
// the environment.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	if cfg == nil {
		cfg = config.FromEnv()
	}
	opts := &RootOptions{cfg: cfg, log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "qsim",
		Short: "qsim - state-vector quantum circuit simulator",
		Long: `Simulate quantum circuits on a dense state vector.

Circuits are read from OpenQASM 2.0 files or YAML/JSON circuit documents.
Results report the probability of every computational basis state.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.Precision < 0 || opts.Precision > 15 {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid precision %d: must be between 0 and 15", opts.Precision))
			}
			lc := cfg.Logging()
			if opts.Verbose {
				lc.Level = "debug"
			}
			lc.Out = cmd.ErrOrStderr()
			opts.log = logging.New(lc)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|msgpack)")
	cmd.PersistentFlags().IntVar(&opts.Precision, "precision", cfg.Precision, "decimal places in text output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewQASMCommand(opts))
	cmd.AddCommand(NewGatesCommand(opts))
	cmd.AddCommand(NewViewCommand(opts))

	return cmd
}

// simulator builds a Simulator from the loaded configuration.
func (o *RootOptions) simulator() *sim.Simulator {
	return sim.New(
		sim.WithLogger(o.log),
		sim.WithMaxQubits(o.cfg.MaxQubits),
		sim.WithWorkers(o.cfg.Workers),
	)
}
