package render

import (
	"cmp"
	"fmt"
	"math"
	"math/cmplx"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qsim/internal/sim"
	"qsim/internal/state"
)

// Histogram draws one bar per basis state. Zero-probability states are
// hidden unless all is set.
func Histogram(res *sim.Result, precision int, all bool) string {
	var sb strings.Builder
	for _, o := range res.Outcomes() {
		if !all && o.Probability < math.Pow10(-precision)/2 {
			continue
		}
		filled := int(math.Round(o.Probability * barW))
		bar := barStyle.Render(strings.Repeat("█", filled)) + DimStyle.Render(strings.Repeat("░", barW-filled))
		fmt.Fprintf(&sb, "|%s⟩ %s %s\n", qubitLabelStyle.Render(o.Label), bar, formatProb(o.Probability, precision))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// AmplitudeTable lists every amplitude with its probability and phase.
func AmplitudeTable(res *sim.Result, precision int) string {
	rows := [][]string{{"state", "amplitude", "probability", "phase"}}
	for _, o := range res.Outcomes() {
		rows = append(rows, []string{
			"|" + o.Label + "⟩",
			formatComplex(o.Amplitude, precision),
			formatProb(o.Probability, precision),
			fmt.Sprintf("%.*f", precision, cmplx.Phase(o.Amplitude)),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var sb strings.Builder
	for r, row := range rows {
		for i, cell := range row {
			cell += strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if r == 0 {
				cell = TitleStyle.Render(cell)
			}
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Marginals shows P(1) for each qubit.
func Marginals(res *sim.Result, labels []string, precision int) string {
	var sb strings.Builder
	for q, p := range res.QubitProbabilities() {
		label := fmt.Sprintf("q[%d]", q)
		if q < len(labels) {
			label = labels[q]
		}
		fmt.Fprintf(&sb, "%s P(1)=%s\n", qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)), formatProb(p.Prob1, precision))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Summary is the one-line header printed above a result.
func Summary(name string, res *sim.Result, precision int) string {
	best := res.MostLikely()
	return fmt.Sprintf("%s  %s  %s",
		TitleStyle.Render(name),
		DimStyle.Render(fmt.Sprintf("%d qubits, %d columns", res.NumQubits(), res.Columns())),
		AccentStyle.Render(fmt.Sprintf("most likely |%s⟩ %s", best.Label, formatProb(best.Probability, precision))),
	)
}

func formatProb(p float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, p)
}

func formatComplex(a complex128, precision int) string {
	re, im := real(a), imag(a)
	sign := "+"
	if im < 0 || (im == 0 && math.Signbit(im)) {
		sign = "-"
	}
	return fmt.Sprintf("%.*f%s%.*fi", precision, re, sign, precision, math.Abs(im))
}

// QSphere lists the populated basis states grouped by Hamming weight, the
// latitude they occupy on a Q-sphere.
func QSphere(res *sim.Result, precision int) string {
	points := res.QSphere()
	slices.SortStableFunc(points, func(a, b state.QSpherePoint) int { return cmp.Compare(a.Hamming, b.Hamming) })

	var sb strings.Builder
	weight := -1
	for _, pt := range points {
		if pt.Hamming != weight {
			weight = pt.Hamming
			sb.WriteString(DimStyle.Render(fmt.Sprintf("weight %d", weight)))
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "  |%s⟩ p=%s φ=%.*f\n", qubitLabelStyle.Render(pt.Label), formatProb(pt.Prob, precision), precision, pt.Phase)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
