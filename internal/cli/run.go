package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"qsim/internal/circuit"
	"qsim/internal/render"
	"qsim/internal/sim"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	QASM       bool
	UpTo       int
	All        bool
	Amplitudes bool
	Marginals  bool
	QSphere    bool
}

// RunEntry is one simulated file in structured output.
type RunEntry struct {
	File   string     `json:"file" msgpack:"file"`
	Result sim.Export `json:"result" msgpack:"result"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <file>...",
		Short: "Simulate circuits and print their measurement distributions",
		Long: `Simulate one or more circuit files from |0...0>.

Files ending in .qasm are parsed as OpenQASM 2.0, everything else as a
YAML or JSON circuit document. Multiple files are simulated in parallel.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.QASM, "qasm", false, "parse every file as OpenQASM regardless of extension")
	cmd.Flags().IntVar(&opts.UpTo, "upto", -1, "apply columns 0 through N only (-1 for all)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "show zero-probability states")
	cmd.Flags().BoolVar(&opts.Amplitudes, "amplitudes", false, "print the amplitude table")
	cmd.Flags().BoolVar(&opts.Marginals, "marginals", false, "print per-qubit probabilities")
	cmd.Flags().BoolVar(&opts.QSphere, "qsphere", false, "print populated states by Hamming weight")

	return cmd
}

func runRun(rootOpts *RootOptions, opts *RunOptions, files []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	circuits := make([]*circuit.Circuit, len(files))
	for i, f := range files {
		c, err := loadCircuit(f, opts.QASM)
		if err != nil {
			return formatter.Fail(GetExitCode(err), "load "+f, unwrapExit(err))
		}
		circuits[i] = c
	}

	s := rootOpts.simulator()
	var (
		results []*sim.Result
		err     error
	)
	if opts.UpTo >= 0 {
		results = make([]*sim.Result, len(circuits))
		for i, c := range circuits {
			if results[i], err = s.SimulateUpTo(c, opts.UpTo); err != nil {
				err = fmt.Errorf("circuit %d: %w", i, err)
				break
			}
		}
	} else {
		results, err = s.SimulateAll(cmd.Context(), circuits)
	}
	if err != nil {
		return formatter.Fail(ExitFailure, "simulate", err)
	}

	if formatter.Structured() {
		entries := make([]RunEntry, len(results))
		for i, res := range results {
			entries[i] = RunEntry{File: files[i], Result: res.Export()}
		}
		return formatter.Success(entries)
	}

	p := rootOpts.Precision
	var sb strings.Builder
	for i, res := range results {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(render.Summary(files[i], res, p))
		sb.WriteString("\n")
		sb.WriteString(render.Histogram(res, p, opts.All))
		if opts.Amplitudes {
			sb.WriteString("\n\n")
			sb.WriteString(render.AmplitudeTable(res, p))
		}
		if opts.Marginals {
			labels := make([]string, circuits[i].NumQubits())
			for q := range labels {
				labels[q] = circuits[i].Qubit(q).Label
			}
			sb.WriteString("\n\n")
			sb.WriteString(render.Marginals(res, labels, p))
		}
		if opts.QSphere {
			sb.WriteString("\n\n")
			sb.WriteString(render.QSphere(res, p))
		}
	}
	return formatter.Success(sb.String())
}

// unwrapExit strips an ExitError so its cause is reported once.
func unwrapExit(err error) error {
	if e, ok := err.(*ExitError); ok && e.Err != nil {
		return e.Err
	}
	return err
}
