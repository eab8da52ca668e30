package port

import (
	"bufio"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"navigator/internal/log"
)

// Console is a line-oriented port over a reader and a writer, normally
// stdin and stdout.
type Console struct {
	reader *bufio.Reader
	writer *bufio.Writer
	echo   bool
}

type consoleConfig struct {
	encoding encoding.Encoding
	echo     *bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*consoleConfig)

// WithEncoding decodes input from enc (e.g. charmap.CodePage437) to UTF-8.
func WithEncoding(enc encoding.Encoding) ConsoleOption {
	return func(c *consoleConfig) { c.encoding = enc }
}

// WithEcho forces echoing of every line read back to the output. By default
// input is echoed only when it is piped rather than typed on a terminal,
// so transcripts show what was entered.
func WithEcho(echo bool) ConsoleOption {
	return func(c *consoleConfig) { c.echo = &echo }
}

// NewConsole creates a console port.
func NewConsole(in io.Reader, out io.Writer, opts ...ConsoleOption) *Console {
	cfg := consoleConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.encoding != nil {
		in = transform.NewReader(in, cfg.encoding.NewDecoder())
	}

	echo := false
	if cfg.echo != nil {
		echo = *cfg.echo
	} else if f, ok := in.(*os.File); ok {
		echo = !IsTerminal(f)
	}

	return &Console{
		reader: bufio.NewReader(in),
		writer: bufio.NewWriter(out),
		echo:   echo,
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ReadLine reads one line. A final line without terminator is returned
// before io.EOF.
func (c *Console) ReadLine() (string, error) {
	raw, err := c.reader.ReadString('\n')
	if err != nil && (err != io.EOF || raw == "") {
		return "", err
	}
	log.Transcript("<", raw)

	line := CleanLine(raw)
	if c.echo {
		if _, err := c.writer.WriteString(line + "\n"); err != nil {
			return "", err
		}
		if err := c.writer.Flush(); err != nil {
			return "", err
		}
	}
	return line, nil
}

func (c *Console) Write(s string) error {
	_, err := c.writer.WriteString(s)
	return err
}

func (c *Console) WriteLine(s string) error {
	log.Transcript(">", s)
	if _, err := c.writer.WriteString(s); err != nil {
		return err
	}
	return c.writer.WriteByte('\n')
}

func (c *Console) Flush() error {
	return c.writer.Flush()
}
