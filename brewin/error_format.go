package brewin

import (
	"fmt"
	"strconv"
	"strings"
)

func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := strings.TrimRight(lines[pos.Line-1], "\r")
	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))

	column := pos.Column
	if column <= 0 {
		// point at the first non-blank character when only the line is known
		column = len([]rune(lineText)) - len([]rune(strings.TrimLeft(lineText, " \t"))) + 1
	}
	if n := len([]rune(lineText)) + 1; column > n {
		column = n
	}

	return fmt.Sprintf(
		"  --> line %d\n %s | %s\n %s | %s^",
		pos.Line,
		lineLabel,
		lineText,
		gutterPad,
		strings.Repeat(" ", column-1),
	)
}

// withSource attaches a code frame for err's line if err is a Brewin error
// that does not have one yet.
func withSource(err error, source string) error {
	berr, ok := err.(*Error)
	if !ok || berr.CodeFrame != "" {
		return err
	}
	berr.CodeFrame = formatCodeFrame(source, Position{Line: berr.Line})
	return berr
}
