package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"qsim/internal/gate"
	"qsim/internal/render"
)

// GateInfo describes one supported gate.
type GateInfo struct {
	Name          string `json:"name" msgpack:"name"`
	Qubits        int    `json:"qubits" msgpack:"qubits"`
	Parameterized bool   `json:"parameterized" msgpack:"parameterized"`
}

// NewGatesCommand creates the gates command.
func NewGatesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gates",
		Short: "List supported gates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			var infos []GateInfo
			for _, k := range gate.Kinds() {
				infos = append(infos, GateInfo{Name: k.String(), Qubits: k.Arity(), Parameterized: k.Parameterized()})
			}
			if formatter.Structured() {
				return formatter.Success(infos)
			}

			var sb strings.Builder
			sb.WriteString(render.TitleStyle.Render(fmt.Sprintf("%-6s %-7s %s", "gate", "qubits", "angle")))
			for _, g := range infos {
				angle := "-"
				if g.Parameterized {
					angle = "θ"
				}
				fmt.Fprintf(&sb, "\n%-6s %-7d %s", g.Name, g.Qubits, angle)
			}
			return formatter.Success(sb.String())
		},
	}
}
