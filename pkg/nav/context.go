package nav

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"navigator/internal/log"
	"navigator/internal/port"
)

// Context owns the scripted queue and the last resolved command. Every
// prompt in a session goes through one Context. It is not safe for
// concurrent use.
type Context struct {
	in       InputSource
	out      OutputSink
	style    Style
	observer Observer

	queue queue
	last  Command
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithPort uses p for both input and output.
func WithPort(p Port) ContextOption {
	return func(c *Context) {
		c.in = p
		c.out = p
	}
}

// WithInput sets the live input source.
func WithInput(in InputSource) ContextOption {
	return func(c *Context) { c.in = in }
}

// WithOutput sets where prompts are printed.
func WithOutput(out OutputSink) ContextOption {
	return func(c *Context) { c.out = out }
}

// WithStyle overrides the text decorations. Zero fields keep their defaults.
func WithStyle(s Style) ContextOption {
	return func(c *Context) { c.style = s.withDefaults() }
}

// WithObserver registers an observer for navigation events.
func WithObserver(o Observer) ContextOption {
	return func(c *Context) {
		if o != nil {
			c.observer = o
		}
	}
}

// New creates a Context with an empty queue. Without WithPort it talks to
// stdin and stdout.
func New(opts ...ContextOption) *Context {
	c := &Context{
		style:    DefaultStyle(),
		observer: nopObserver{},
		// Before any input, prompts are shown and paused on.
		last: Command{Source: Automated, Level: Pause},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.in == nil || c.out == nil {
		console := port.NewConsole(os.Stdin, os.Stdout)
		if c.in == nil {
			c.in = console
		}
		if c.out == nil {
			c.out = console
		}
	}
	return c
}

// fork returns a fresh Context on the same terminal. It shares nothing else:
// no queue, no observer, no last command.
func (c *Context) fork() *Context {
	return New(WithInput(c.in), WithOutput(c.out), WithStyle(c.style))
}

// Last returns the most recently resolved command.
func (c *Context) Last() Command {
	return c.last
}

// Style returns the decorations in use.
func (c *Context) Style() Style {
	return c.style
}

// Execute queues inputs to be consumed, in the given order, by the next
// prompts as if they had been typed. Entries may carry directives (see Encode).
func (c *Context) Execute(inputs ...string) {
	c.queue.push(inputs)
	log.Debug("queued scripted input", "count", len(inputs), "pending", c.queue.len())
}

// Stack returns the pending queue in storage order: the next entry to be
// replayed is the last element.
func (c *Context) Stack() []string {
	return c.queue.snapshot()
}

// Pending reports how many scripted entries are waiting.
func (c *Context) Pending() int {
	return c.queue.len()
}

// ResolveNext produces the next command for a prompt, replaying the queue
// first and reading live input once it is empty. The command is reported to
// observers as accepted.
func (c *Context) ResolveNext(prompt string) (Command, error) {
	cmd, err := c.resolveNext(prompt, c.style.InputCue)
	if err != nil {
		return Command{}, err
	}
	c.observer.CommandAccepted(cmd)
	return cmd, nil
}

func (c *Context) resolveNext(prompt, cue string) (Command, error) {
	var (
		cmd Command
		err error
	)
	if line, ok := c.queue.pop(); ok {
		cmd, err = c.resolveScripted(prompt, cue, line)
	} else {
		cmd, err = c.readLive(prompt, cue)
	}
	if err != nil {
		return Command{}, err
	}

	c.last = cmd
	log.Debug("resolved command", "text", cmd.Text, "source", cmd.Source, "level", cmd.Level)
	c.observer.CommandResolved(cmd)
	return cmd, nil
}

func (c *Context) resolveScripted(prompt, cue, line string) (Command, error) {
	text, marker, tagged := decodeEntry(line)
	if !tagged {
		return Command{Text: line, Source: Automated, Level: Hide}, nil
	}

	switch marker {
	case markerConfirm:
		if err := c.out.WriteLine(prompt); err != nil {
			return Command{}, writeErr(err)
		}
		accepted, err := c.confirmScripted(text)
		if err != nil {
			return Command{}, err
		}
		if !accepted {
			// Taking over derails the rest of the script.
			log.Info("scripted input overridden, dropping queue", "input", text, "dropped", c.queue.len())
			c.queue.clear()
			return c.readLive(prompt, cue)
		}
		if err := c.echo(text); err != nil {
			return Command{}, err
		}
		return Command{Text: text, Source: User, Level: Pause}, nil

	case markerPause:
		if err := c.out.WriteLine(prompt); err != nil {
			return Command{}, writeErr(err)
		}
		if err := c.out.WriteLine(c.style.AutoCue + text); err != nil {
			return Command{}, writeErr(err)
		}
		if err := c.Pause(); err != nil {
			return Command{}, err
		}
		return Command{Text: text, Source: Automated, Level: Pause}, nil

	case markerShow:
		if err := c.out.WriteLine(prompt); err != nil {
			return Command{}, writeErr(err)
		}
		if err := c.echo(text); err != nil {
			return Command{}, err
		}
		return Command{Text: text, Source: Automated, Level: Show}, nil

	default:
		return Command{}, c.automationError(prompt, text,
			fmt.Sprintf("unknown directive marker %q", marker))
	}
}

// echo prints an accepted scripted input followed by a bar.
func (c *Context) echo(text string) error {
	if err := c.out.WriteLine(c.style.AutoCue + text); err != nil {
		return writeErr(err)
	}
	return c.bar()
}

// confirmScripted asks, on an isolated context, whether a scripted input may
// stand.
func (c *Context) confirmScripted(text string) (bool, error) {
	accepted := false
	accept := func() error {
		accepted = true
		return nil
	}
	reject := func() error {
		accepted = false
		return nil
	}

	menu := Pick(fmt.Sprintf("Scripted input: %q. Accept?", text),
		Choice("yes", accept).Describe("use the scripted input"),
		Choice("", accept).Describe("(Enter) same as yes"),
		Choice("cancel", reject).Describe("type it yourself; the rest of the script is dropped"),
	)
	if err := c.fork().Run(menu); err != nil {
		return false, err
	}
	log.Debug("scripted input confirmation", "input", text, "accepted", accepted)
	return accepted, nil
}

func (c *Context) readLive(prompt, cue string) (Command, error) {
	if err := c.out.WriteLine(prompt); err != nil {
		return Command{}, writeErr(err)
	}
	line, err := c.readLine(cue)
	if err != nil {
		return Command{}, err
	}
	if err := c.bar(); err != nil {
		return Command{}, err
	}
	return Command{Text: line, Source: User, Level: Pause}, nil
}

// readLine prints cue, flushes and reads one line without its terminator.
func (c *Context) readLine(cue string) (string, error) {
	if err := c.out.Write(cue); err != nil {
		return "", writeErr(err)
	}
	if err := c.out.Flush(); err != nil {
		return "", errors.Wrap(err, "nav: flush output")
	}
	line, err := c.in.ReadLine()
	if err != nil {
		return "", errors.Wrap(err, "nav: read input")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Prompt prints message when the last command asks for output. After a
// paused command it also waits for Enter.
func (c *Context) Prompt(message string) error {
	if c.last.Level < Show {
		return nil
	}
	for _, line := range splitLines(message) {
		if err := c.out.WriteLine(c.style.Cursor + line); err != nil {
			return writeErr(err)
		}
	}
	if c.last.Level == Pause {
		return c.Pause()
	}
	return c.bar()
}

// Pause blocks until an empty line is entered.
func (c *Context) Pause() error {
	for {
		line, err := c.readLine(c.style.PauseCue)
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
	}
	return c.bar()
}

func (c *Context) bar() error {
	if err := c.out.WriteLine(c.style.Bar()); err != nil {
		return writeErr(err)
	}
	return nil
}

func (c *Context) automationError(prompt, command, reason string) error {
	err := &AutomationError{
		Reason:    reason,
		Prompt:    prompt,
		Command:   command,
		Remaining: c.queue.snapshot(),
	}
	log.Warn("automation error", "reason", reason, "command", command, "remaining", len(err.Remaining))
	return errors.WithStack(err)
}

func writeErr(err error) error {
	return errors.Wrap(err, "nav: write output")
}
