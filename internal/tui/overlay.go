package tui

import "strings"

// overlayAt draws overlay on top of bg with its top-left corner at
// visible column x of line y.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	for i, ovLine := range strings.Split(overlay, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLines[row] = spliceLineAt(bgLines[row], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces the visible columns of bgLine starting at x with
// overlay. ANSI sequences in the kept prefix survive; those inside the
// replaced span are dropped.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	width := visibleLen(overlay)

	var prefix strings.Builder
	col, i := 0, 0
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			n := escapeLen(runes[i:])
			prefix.WriteString(string(runes[i : i+n]))
			i += n
			continue
		}
		prefix.WriteRune(runes[i])
		col++
		i++
	}
	for ; col < x; col++ {
		prefix.WriteRune(' ')
	}

	for skipped := 0; i < len(runes) && skipped < width; {
		if runes[i] == '\x1b' {
			i += escapeLen(runes[i:])
			continue
		}
		skipped++
		i++
	}

	return prefix.String() + overlay + string(runes[i:])
}

// escapeLen returns the length of the escape sequence at the start of rs.
func escapeLen(rs []rune) int {
	for n := 1; n < len(rs); n++ {
		r := rs[n]
		if r != '[' && isFinal(r) {
			return n + 1
		}
	}
	return len(rs)
}

// visibleLen returns the number of visible (non-ANSI-escape) runes in s.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if isFinal(r) {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}

func isFinal(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}
