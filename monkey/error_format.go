package monkey

import (
	"fmt"
	"strconv"
	"strings"
)

// formatCodeFrame renders the line at pos, preceded by the line before it
// when there is one, with a caret under the column. Tabs before the column
// are kept in the caret padding so the caret lines up in a terminal.
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}
	lineAt := func(n int) string { return strings.TrimRight(lines[n-1], "\r") }

	lineRunes := []rune(lineAt(pos.Line))
	column := min(max(pos.Column, 1), len(lineRunes)+1)

	width := len(strconv.Itoa(pos.Line))
	var b strings.Builder
	fmt.Fprintf(&b, "  --> line %d, column %d\n", pos.Line, column)
	if pos.Line > 1 && strings.TrimSpace(lineAt(pos.Line-1)) != "" {
		fmt.Fprintf(&b, " %*d | %s\n", width, pos.Line-1, lineAt(pos.Line-1))
	}
	fmt.Fprintf(&b, " %*d | %s\n", width, pos.Line, string(lineRunes))
	fmt.Fprintf(&b, " %s | %s^", strings.Repeat(" ", width), caretPadding(lineRunes[:column-1]))
	return b.String()
}

func caretPadding(prefix []rune) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
