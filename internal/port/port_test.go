package port

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestCleanLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text", input: "hello", expected: "hello"},
		{name: "unix terminator", input: "hello\n", expected: "hello"},
		{name: "windows terminator", input: "hello\r\n", expected: "hello"},
		{name: "colour sequence", input: "\x1b[31mred\x1b[0m\n", expected: "red"},
		{name: "arrow key", input: "ab\x1b[Dc", expected: "abc"},
		{name: "backspace", input: "helo\bl\blo", expected: "hello"},
		{name: "delete at start", input: "\x7fok", expected: "ok"},
		{name: "two byte escape", input: "\x1bMok", expected: "ok"},
		{name: "empty", input: "\n", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanLine(tt.input))
		})
	}
}

func TestConsoleReadAndWrite(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("first\r\nsecond"), &out)

	require.NoError(t, c.Write("=> "))
	require.NoError(t, c.WriteLine("prompt"))
	require.NoError(t, c.Flush())
	assert.Equal(t, "=> prompt\n", out.String())

	line, err := c.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	// Last line without a terminator still counts
	line, err = c.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = c.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsoleEcho(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("yes\n"), &out, WithEcho(true))

	line, err := c.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "yes", line)
	assert.Equal(t, "yes\n", out.String())
}

func TestConsoleDecodesInput(t *testing.T) {
	// 0x82 is é in code page 437
	in := bytes.NewReader([]byte{'c', 'a', 'f', 0x82, '\n'})
	c := NewConsole(in, io.Discard, WithEncoding(charmap.CodePage437))

	line, err := c.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "café", line)
}

func TestBuffer(t *testing.T) {
	b := NewBuffer("a", "b\n")
	b.Feed("c")
	assert.Equal(t, 3, b.Remaining())

	for _, want := range []string{"a", "b", "c"} {
		line, err := b.ReadLine()
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}
	_, err := b.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 3, b.Reads())

	require.NoError(t, b.Write("x"))
	require.NoError(t, b.WriteLine("y"))
	assert.Equal(t, "xy\n", b.Output())
	b.Reset()
	assert.Empty(t, b.Output())
}

func newSimScreen(t *testing.T) (tcell.SimulationScreen, *Screen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	require.NoError(t, sim.Init())
	sim.SetSize(40, 10)
	p := NewScreen(sim)
	t.Cleanup(p.Close)
	return sim, p
}

func typeLine(sim tcell.SimulationScreen, text string) {
	for _, r := range text {
		sim.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	sim.InjectKey(tcell.KeyEnter, '\r', tcell.ModNone)
}

func TestScreenReadLine(t *testing.T) {
	sim, p := newSimScreen(t)

	require.NoError(t, p.WriteLine("> Pick one"))
	require.NoError(t, p.Write("=> "))
	require.NoError(t, p.Flush())

	typeLine(sim, "yes")
	line, err := p.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "yes", line)
	assert.Equal(t, []string{"> Pick one", "=> yes"}, p.Lines())
}

func TestScreenBackspace(t *testing.T) {
	sim, p := newSimScreen(t)

	sim.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'o', tcell.ModNone)
	sim.InjectKey(tcell.KeyEnter, '\r', tcell.ModNone)

	line, err := p.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "no", line)
}

func TestScreenInterrupt(t *testing.T) {
	sim, p := newSimScreen(t)

	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	_, err := p.ReadLine()
	assert.ErrorIs(t, err, ErrInterrupted)
}
