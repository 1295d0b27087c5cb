// Package terminal provides helpers for the interactive terminal: detecting one and
// clearing text that was echoed into it.
package terminal

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

// DefaultWidth is assumed when the terminal width cannot be read.
const DefaultWidth = 80

// IsInteractive reports whether both stdin and stdout are attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// IsColor reports whether stdout is a terminal that can show ANSI styles.
func IsColor() bool {
	return os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stdout.Fd()))
}

// Width returns the width of stdout, or DefaultWidth.
func Width() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}

// ClearPreviousLines clears text that was typed at a prompt, such as a DSN, from
// stdout. textLength is the length of the prompt plus the input.
func ClearPreviousLines(textLength int) {
	clearLines(os.Stdout, LinesFor(textLength, Width()))
}

// LinesFor returns how many lines to clear for textLength characters wrapped at
// width, counting the empty line left by Enter.
func LinesFor(textLength, width int) int {
	if width <= 0 {
		width = DefaultWidth
	}
	total := int(math.Ceil(float64(textLength) / float64(width)))
	if total < 1 {
		total = 1
	}
	return total + 1
}

func clearLines(w io.Writer, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < n-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
