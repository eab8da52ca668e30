package port

import (
	"strings"
)

// Escape-sequence scanner states
const (
	stateText = iota
	stateEscape
	stateSequence
)

// CleanLine turns a raw terminal line into the text a user meant to type:
// the line terminator is dropped, ANSI escape sequences (arrow keys, colour
// codes pasted along) are removed and backspaces erase the preceding rune.
func CleanLine(raw string) string {
	raw = strings.TrimRight(raw, "\r\n")

	var out []rune
	state := stateText
	for _, r := range raw {
		switch state {
		case stateText:
			switch {
			case r == '\x1b':
				state = stateEscape
			case r == '\b' || r == '\x7f':
				if len(out) > 0 {
					out = out[:len(out)-1]
				}
			case r == '\t' || r >= ' ':
				out = append(out, r)
			}

		case stateEscape:
			if r == '[' {
				state = stateSequence
			} else {
				// Two-byte escape (ESC x); drop both
				state = stateText
			}

		case stateSequence:
			// Parameters and intermediates run until a final byte in @..~
			if r >= '@' && r <= '~' {
				state = stateText
			}
		}
	}
	return string(out)
}
