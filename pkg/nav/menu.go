package nav

import (
	"strings"

	"github.com/cockroachdb/errors"

	"navigator/internal/log"
)

// BackKey always leaves the innermost menu, declared or not. A declared
// "back" option runs its handler first.
const BackKey = "back"

// Handler runs when its option is selected. Returning ErrBreak leaves the
// menu; any other error aborts it and is returned by Run.
type Handler func() error

// Option is one selectable entry of a menu.
type Option struct {
	Key         string
	Description string
	Handler     Handler
}

// Choice declares an option matched by key.
func Choice(key string, handler Handler) Option {
	return Option{Key: key, Handler: handler}
}

// Describe returns a copy of o with a description shown next to its key.
func (o Option) Describe(description string) Option {
	o.Description = description
	return o
}

// Menu is a question with an ordered set of options. Loop menus keep asking
// until a terminator; one-shot menus return after the first match.
type Menu struct {
	Prompt  func() string
	Loop    bool
	Options []Option
}

// Nav declares a looping menu.
func Nav(prompt string, options ...Option) Menu {
	return NavFunc(staticPrompt(prompt), options...)
}

// NavFunc declares a looping menu whose prompt is recomputed on every pass.
func NavFunc(prompt func() string, options ...Option) Menu {
	return Menu{Prompt: prompt, Loop: true, Options: options}
}

// Pick declares a one-shot menu.
func Pick(prompt string, options ...Option) Menu {
	return PickFunc(staticPrompt(prompt), options...)
}

// PickFunc declares a one-shot menu with a computed prompt.
func PickFunc(prompt func() string, options ...Option) Menu {
	return Menu{Prompt: prompt, Loop: false, Options: options}
}

func staticPrompt(s string) func() string {
	return func() string { return s }
}

func (m Menu) text() string {
	if m.Prompt == nil {
		return ""
	}
	return m.Prompt()
}

// match finds the first option whose key equals text exactly.
func (m Menu) match(text string) (Option, bool) {
	for _, opt := range m.Options {
		if opt.Key == text {
			return opt, true
		}
	}
	return Option{}, false
}

// Title is the first line of a prompt, used to name menus in logs and traces.
func Title(prompt string) string {
	title, _, _ := strings.Cut(prompt, "\n")
	return strings.TrimSpace(title)
}

// Run drives m until it terminates. Scripted input that matches no option
// returns an *AutomationError; live input that matches nothing is answered
// with a corrective prompt and asked again.
func (c *Context) Run(m Menu) error {
	prompt := m.text()
	title := Title(prompt)
	c.observer.MenuEntered(title)
	defer c.observer.MenuExited(title)

	for {
		message := c.style.FormatMenu(prompt, m.Options)
		cmd, err := c.resolveNext(message, c.style.InputCue)
		if err != nil {
			return err
		}
		text := strings.TrimSpace(cmd.Text)

		if opt, ok := m.match(text); ok {
			c.observer.CommandAccepted(cmd)
			c.observer.OptionSelected(title, opt.Key)
			if opt.Handler != nil {
				if err := opt.Handler(); err != nil {
					if errors.Is(err, ErrBreak) {
						return nil
					}
					return err
				}
			}
			if !m.Loop || opt.Key == BackKey {
				return nil
			}
		} else {
			switch {
			case text == BackKey:
				c.observer.CommandAccepted(cmd)
				return nil
			case len(m.Options) == 0 && (text == "" || cmd.Source == User):
				// Only the empty input leaves a zero-option menu when replayed.
				cmd.Text = ""
				c.observer.CommandAccepted(cmd)
				return nil
			case cmd.Source == Automated:
				return c.automationError(message, text, "scripted input matches no option")
			}

			log.Debug("unmatched live input", "menu", title, "input", text)
			notice := "Unrecognized command."
			if text == "" {
				notice = "Please choose an option."
			}
			if err := c.Prompt(notice); err != nil {
				return err
			}
		}

		// Prompts may be computed; refresh before asking again.
		prompt = m.text()
	}
}
