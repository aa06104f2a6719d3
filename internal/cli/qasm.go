package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"qsim/internal/circuit"
)

// NewQASMCommand creates the qasm command.
func NewQASMCommand(rootOpts *RootOptions) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "qasm <file>",
		Short: "Convert between circuit documents and OpenQASM",
		Long: `Convert a circuit file to OpenQASM 2.0 (the default) or to a YAML
circuit document with --to yaml. Gates are rescheduled as parsed, so the
output is the canonical form of the input circuit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			if to != "qasm" && to != "yaml" {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid target %q: must be qasm or yaml", to))
			}

			c, err := loadCircuit(args[0], false)
			if err != nil {
				return formatter.Fail(GetExitCode(err), "load "+args[0], unwrapExit(err))
			}
			rootOpts.log.Debug().Str("file", args[0]).Int("qubits", c.NumQubits()).Int("gates", c.GateCount()).Msg("circuit loaded")

			if formatter.Structured() {
				if to == "yaml" {
					return formatter.Success(c.ToDocument())
				}
				return formatter.Success(map[string]string{"qasm": c.ToQASM()})
			}

			if to == "qasm" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), c.ToQASM())
				return err
			}
			var buf bytes.Buffer
			if err := circuit.Encode(&buf, c); err != nil {
				return WrapExitError(ExitFailure, "encode", err)
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().StringVar(&to, "to", "qasm", "output form (qasm|yaml)")

	return cmd
}
