package script

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// ParseText reads the line-oriented script format, one step per line:
//
//	# comment
//	show "1"
//	pause "second answer"
//	confirm 42
//	""
//
// A line with a single field is a silent step. Quotes keep spaces and allow
// the empty input.
func ParseText(name string, r io.Reader) (*Script, error) {
	s := &Script{Name: name}
	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts, err := splitFields(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}

		var step Step
		switch len(parts) {
		case 1:
			step = Step{Input: parts[0], Mode: ModeSilent}
		case 2:
			mode, err := ParseMode(parts[0])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			step = Step{Input: parts[1], Mode: mode}
		default:
			return nil, errors.Newf("line %d: expected [mode] input, got %d fields", lineNum, len(parts))
		}
		s.Steps = append(s.Steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "script: read text")
	}
	return s, nil
}

// splitFields splits a line on blanks, respecting double quotes.
func splitFields(line string) ([]string, error) {
	var parts []string
	var current strings.Builder
	inQuotes := false
	quoted := false

	flush := func() {
		if current.Len() > 0 || quoted {
			parts = append(parts, current.String())
			current.Reset()
			quoted = false
		}
	}

	for _, char := range line {
		switch char {
		case '"':
			inQuotes = !inQuotes
			quoted = true
		case ' ', '\t':
			if inQuotes {
				current.WriteRune(char)
			} else {
				flush()
			}
		default:
			current.WriteRune(char)
		}
	}
	if inQuotes {
		return nil, errors.New("unterminated quote")
	}
	flush()

	return parts, nil
}
