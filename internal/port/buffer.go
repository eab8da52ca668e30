package port

import (
	"io"
	"strings"
)

// Buffer is an in-memory port. Lines fed to it are returned by ReadLine in
// order; everything written is captured. Tests and embedding programs use it
// in place of a terminal.
type Buffer struct {
	input  []string
	output strings.Builder
	reads  int
}

// NewBuffer creates a buffer that will answer with lines.
func NewBuffer(lines ...string) *Buffer {
	b := &Buffer{}
	b.Feed(lines...)
	return b
}

// Feed appends lines to the pending input.
func (b *Buffer) Feed(lines ...string) {
	b.input = append(b.input, lines...)
}

// ReadLine returns the next fed line, or io.EOF when none is left.
func (b *Buffer) ReadLine() (string, error) {
	if len(b.input) == 0 {
		return "", io.EOF
	}
	line := b.input[0]
	b.input = b.input[1:]
	b.reads++
	return CleanLine(line), nil
}

func (b *Buffer) Write(s string) error {
	b.output.WriteString(s)
	return nil
}

func (b *Buffer) WriteLine(s string) error {
	b.output.WriteString(s)
	b.output.WriteByte('\n')
	return nil
}

func (b *Buffer) Flush() error {
	return nil
}

// Output returns everything written so far.
func (b *Buffer) Output() string {
	return b.output.String()
}

// Reset discards captured output.
func (b *Buffer) Reset() {
	b.output.Reset()
}

// Reads counts lines consumed by ReadLine.
func (b *Buffer) Reads() int {
	return b.reads
}

// Remaining counts fed lines not read yet.
func (b *Buffer) Remaining() int {
	return len(b.input)
}
