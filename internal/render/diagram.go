// Package render draws circuits and simulation results as terminal text.
package render

import (
	"fmt"
	"strings"

	"qsim/internal/circuit"
	"qsim/internal/gate"
)

// Cursor marks the cell under edit. Target is the qubit being picked as a
// CNOT partner, or -1.
type Cursor struct {
	Qubit  int
	Step   int
	Target int
}

// DiagramOptions selects the window of steps to draw.
type DiagramOptions struct {
	Start  int
	Steps  int // 0 draws up to the circuit width
	Cursor *Cursor
}

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
	hlTargetSelect
)

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	op          *gate.Op
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// cellAt returns rendering information for the cell at (step, qubit).
func cellAt(col []circuit.Placement, qubit int) cellInfo {
	var info cellInfo
	for _, p := range col {
		op := p.Op
		if op.Touches(qubit) {
			info.op = &op
			info.isControl = op.Kind == gate.CNOT && op.Control == qubit
			info.isTarget = op.Kind == gate.CNOT && op.Target == qubit
		}
		if op.Kind != gate.CNOT {
			continue
		}
		lo, hi := min(op.Control, op.Target), max(op.Control, op.Target)
		if qubit < lo || qubit > hi {
			continue
		}
		if qubit > lo {
			info.vertAbove = true
		}
		if qubit < hi {
			info.vertBelow = true
		}
		if qubit > lo && qubit < hi && !op.Touches(qubit) {
			info.passThrough = true
		}
	}
	return info
}

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	symbol := ""
	switch {
	case info.isControl:
		symbol = "●"
	case info.isTarget:
		symbol = "⊕"
	case info.passThrough:
		symbol = "┼"
	}

	if hl != hlNone {
		bdr := cursorBoxStyle
		if hl == hlTargetSelect {
			bdr = targetSelectStyle
		}
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")
		switch {
		case symbol != "":
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render(symbol) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.op != nil:
			mid = bdr.Render("║") + "─┤" + gateStyle.Render(padCenter(info.op.Kind.String(), gateNameW)) + "├─" + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	top, bot = emptyRow, emptyRow
	if info.vertAbove {
		top = vertRow
	}
	if info.vertBelow {
		bot = vertRow
	}

	switch {
	case symbol != "":
		mid = strings.Repeat("─", dashL) + gateStyle.Render(symbol) + strings.Repeat("─", dashR)
	case info.op != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(info.op.Kind.String(), gateNameW)
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
	default:
		mid = strings.Repeat("─", cellW)
	}
	return
}

// Diagram draws the circuit grid, three lines per qubit.
func Diagram(c *circuit.Circuit, opts DiagramOptions) string {
	steps := opts.Steps
	if steps <= 0 {
		steps = max(c.Width()-opts.Start, 1)
	}

	var sb strings.Builder

	header := strings.Repeat(" ", labelVisualW)
	for step := opts.Start; step < opts.Start+steps; step++ {
		header += DimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	cols := make([][]circuit.Placement, steps)
	for i := range cols {
		cols[i] = c.Column(opts.Start + i)
	}

	for qubit := range c.NumQubits() {
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", c.Qubit(qubit).Label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for i, col := range cols {
			top, mid, bot := renderCell(cellAt(col, qubit), highlightFor(opts.Cursor, qubit, opts.Start+i))
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func highlightFor(cur *Cursor, qubit, step int) cellHighlight {
	switch {
	case cur == nil || step != cur.Step:
		return hlNone
	case qubit == cur.Qubit:
		return hlCursor
	case qubit == cur.Target:
		return hlTargetSelect
	}
	return hlNone
}

// StepsFitting returns how many step columns fit in a panel of the given
// width, at least one.
func StepsFitting(width int) int {
	return max((width-labelVisualW-4)/cellW, 1)
}
