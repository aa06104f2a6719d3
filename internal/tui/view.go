package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qsim/internal/render"
)

const maxBars = 16

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	resultWidth := m.width / 3
	circuitWidth := m.width - resultWidth - 4
	controlsHeight := 4
	if m.help.ShowAll {
		controlsHeight = 8
	}
	panelHeight := max(m.height-controlsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, panelHeight)
	resultPanel := m.renderResultPanel(resultWidth, panelHeight)
	controlsPanel := render.ControlsStyle.Width(m.width - 4).Render(m.help.View(m.keys))

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, resultPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusAngle {
		frame = overlayAt(frame, m.renderAnglePrompt(), 2, 2)
	}
	return frame
}

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(render.TitleStyle.Render("Quantum Circuit"))
	sb.WriteString("\n\n")

	steps := render.StepsFitting(width)
	start := 0
	if m.cursorStep >= steps {
		start = m.cursorStep - steps + 1
	}
	if start > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", start, start+steps-1)
	}

	cur := &render.Cursor{Qubit: m.cursorQubit, Step: m.cursorStep, Target: -1}
	if m.focus == focusTarget {
		cur.Target = m.targetQubit
	}
	sb.WriteString(render.Diagram(m.circuit, render.DiagramOptions{Start: start, Steps: steps, Cursor: cur}))
	sb.WriteString("\n")

	if m.focus == focusTarget {
		fmt.Fprintf(&sb, "\n  %s  Select target qubit: %s",
			render.AccentStyle.Render("CNOT"),
			render.AccentStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(render.DimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	} else {
		fmt.Fprintf(&sb, "\n  Position: Step %d, Qubit %d", m.cursorStep, m.cursorQubit)
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "  │  %s", render.AccentStyle.Render(m.statusMsg))
		}
	}

	return render.CircuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderResultPanel shows the distribution of the current state.
func (m Model) renderResultPanel(width, height int) string {
	var sb strings.Builder

	title := "Probabilities"
	switch {
	case m.shown == 0:
		title += " [initial state]"
	case m.shown > 0:
		title += fmt.Sprintf(" [through step %d]", m.shown-1)
	}
	sb.WriteString(render.TitleStyle.Render(title))
	sb.WriteString("\n\n")

	switch {
	case m.err != nil:
		sb.WriteString(render.ErrorStyle.Render(m.err.Error()))
	case m.result != nil:
		shown := 0
		for _, o := range m.result.Outcomes() {
			if o.Probability < 1e-9 {
				continue
			}
			if shown == maxBars {
				sb.WriteString(render.DimStyle.Render("  …"))
				sb.WriteString("\n")
				break
			}
			fmt.Fprintf(&sb, "|%s⟩ %s %.*f\n", o.Label, m.bar.ViewAs(o.Probability), m.precision, o.Probability)
			shown++
		}
		sb.WriteString("\n")
		best := m.result.MostLikely()
		sb.WriteString(render.DimStyle.Render(fmt.Sprintf("most likely |%s⟩", best.Label)))
	}

	return render.ResultStyle.Width(width).Height(height).Render(sb.String())
}

// renderAnglePrompt renders the rotation angle overlay.
func (m Model) renderAnglePrompt() string {
	var sb strings.Builder
	sb.WriteString(render.TitleStyle.Render(fmt.Sprintf("%s on %s", m.rotation, m.qubitLabel(m.cursorQubit))))
	sb.WriteString("\n\n")
	sb.WriteString(m.angle.View())
	sb.WriteString("\n\n")
	sb.WriteString(render.DimStyle.Render("Tab Axis  ⏎ Ok  Esc ✕"))
	return render.PromptStyle.Render(sb.String())
}

func (m Model) qubitLabel(q int) string {
	if qb := m.circuit.Qubit(q); qb != nil {
		return qb.Label
	}
	return fmt.Sprintf("q[%d]", q)
}
