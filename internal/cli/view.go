package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"qsim/internal/circuit"
	"qsim/internal/render"
	"qsim/internal/sim"
	"qsim/internal/tui"
)

// NewViewCommand creates the view command.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		save   string
		static bool
	)

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Edit a circuit interactively and watch its distribution",
		Long: `Open the circuit editor. With a file argument the circuit is loaded
from it; ctrl+s writes OpenQASM to --save. With --static the circuit
diagram is printed once instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c *circuit.Circuit
			if len(args) == 1 {
				loaded, err := loadCircuit(args[0], false)
				if err != nil {
					return err
				}
				c = loaded
				if save == "" && isQASM(args[0], false) {
					save = args[0]
				}
			}

			if static {
				if c == nil {
					return NewExitError(ExitCommandError, "--static needs a file")
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), render.Diagram(c, render.DiagramOptions{}))
				return err
			}

			// The alternate screen owns the terminal, so logs go to a file.
			log := zerolog.Nop()
			if rootOpts.Verbose {
				f, err := tea.LogToFile("qsim-debug.log", "")
				if err != nil {
					return WrapExitError(ExitCommandError, "open debug log", err)
				}
				defer f.Close()
				log = zerolog.New(f).Level(zerolog.DebugLevel).With().Timestamp().Logger()
			}

			s := sim.New(
				sim.WithLogger(log),
				sim.WithMaxQubits(rootOpts.cfg.MaxQubits),
			)
			m := tui.New(tui.Options{
				Circuit:   c,
				Simulator: s,
				Logger:    log,
				SavePath:  save,
				Precision: rootOpts.Precision,
				MaxQubits: rootOpts.cfg.MaxQubits,
			})
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return WrapExitError(ExitCommandError, "editor", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&save, "save", "", "file written by ctrl+s (default circuit.qasm)")
	cmd.Flags().BoolVar(&static, "static", false, "print the diagram and exit")

	return cmd
}
