package port

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"navigator/internal/log"
)

// ErrInterrupted is returned by Screen.ReadLine when the user presses Ctrl-C
// or Ctrl-D.
var ErrInterrupted = errors.New("port: input interrupted")

const maxScrollback = 1000

// Screen is a full-screen port on a tcell screen. Output scrolls like a
// plain terminal; ReadLine edits a single line at the bottom.
type Screen struct {
	screen  tcell.Screen
	lines   []string
	partial string // text written without a newline yet (cues)
}

// OpenScreen initialises the terminal for full-screen use. Call Close to
// restore it.
func OpenScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "port: create screen")
	}
	if err := s.Init(); err != nil {
		return nil, errors.Wrap(err, "port: init screen")
	}
	return NewScreen(s), nil
}

// NewScreen wraps an initialised tcell screen.
func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// Close restores the terminal.
func (p *Screen) Close() {
	p.screen.Fini()
}

// Lines returns the committed scrollback.
func (p *Screen) Lines() []string {
	out := make([]string, len(p.lines))
	copy(out, p.lines)
	return out
}

func (p *Screen) Write(s string) error {
	for {
		head, tail, found := strings.Cut(s, "\n")
		if !found {
			p.partial += head
			return nil
		}
		p.commit(p.partial + head)
		p.partial = ""
		s = tail
	}
}

func (p *Screen) WriteLine(s string) error {
	log.Transcript(">", s)
	return p.Write(s + "\n")
}

func (p *Screen) Flush() error {
	p.draw("")
	p.screen.Show()
	return nil
}

func (p *Screen) commit(line string) {
	p.lines = append(p.lines, line)
	if len(p.lines) > maxScrollback {
		p.lines = p.lines[len(p.lines)-maxScrollback:]
	}
}

// ReadLine collects key presses until Enter.
func (p *Screen) ReadLine() (string, error) {
	var input []rune
	p.draw("")
	p.screen.Show()

	for {
		switch ev := p.screen.PollEvent().(type) {
		case nil:
			// Screen finalised
			return "", io.EOF

		case *tcell.EventResize:
			p.screen.Sync()

		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEnter:
				line := string(input)
				log.Transcript("<", line)
				p.commit(p.partial + line)
				p.partial = ""
				return line, nil
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(input) > 0 {
					input = input[:len(input)-1]
				}
			case tcell.KeyCtrlC, tcell.KeyCtrlD:
				return "", ErrInterrupted
			case tcell.KeyRune:
				input = append(input, ev.Rune())
			default:
				log.Debug("ignored key", "key", keyName(ev))
			}
		}

		p.draw(string(input))
		p.screen.Show()
	}
}

// draw renders the tail of the scrollback with the editable line last.
func (p *Screen) draw(input string) {
	p.screen.Clear()
	width, height := p.screen.Size()
	if height <= 0 {
		return
	}

	start := max(0, len(p.lines)-(height-1))
	visible := make([]string, 0, height)
	visible = append(visible, p.lines[start:]...)
	visible = append(visible, p.partial+input)
	for y, line := range visible {
		x := 0
		for _, r := range line {
			w := runewidth.RuneWidth(r)
			if x+w > width {
				break
			}
			p.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
			x += w
		}
		if y == len(visible)-1 {
			p.screen.ShowCursor(min(x, width-1), y)
		}
	}
}

// keyName renders a key event like "ctrl+x" for logging.
func keyName(ev *tcell.EventKey) string {
	var parts []string
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if ev.Modifiers()&tcell.ModShift != 0 {
		parts = append(parts, "shift")
	}
	if ev.Key() == tcell.KeyRune {
		parts = append(parts, string(ev.Rune()))
	} else if name, ok := tcell.KeyNames[ev.Key()]; ok {
		parts = append(parts, strings.ToLower(name))
	} else {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "+")
}
