package nav

import (
	"strings"

	"golang.org/x/text/cases"
)

// Answer is the default offered by Confirm.
type Answer int

const (
	NoDefault Answer = iota
	DefaultYes
	DefaultNo
)

func (a Answer) cue() string {
	switch a {
	case DefaultYes:
		return "=[Y/n]> "
	case DefaultNo:
		return "=[y/N]> "
	default:
		return "=[y/n]> "
	}
}

// Confirm asks a yes/no question through the same resolution path as menus,
// so it can be scripted. An empty answer takes def when there is one.
func (c *Context) Confirm(message string, def Answer) (bool, error) {
	prompt := c.style.FormatPrompt(message)
	fold := cases.Fold()
	for {
		cmd, err := c.resolveNext(prompt, def.cue())
		if err != nil {
			return false, err
		}
		answer := fold.String(strings.TrimSpace(cmd.Text))
		var yes, ok bool
		switch {
		case answer == "y" || answer == "yes":
			yes, ok = true, true
		case answer == "n" || answer == "no":
			yes, ok = false, true
		case answer == "" && def != NoDefault:
			yes, ok = def == DefaultYes, true
		}
		if ok {
			c.observer.CommandAccepted(cmd)
			return yes, nil
		}

		if cmd.Source == Automated {
			return false, c.automationError(prompt, cmd.Text, "scripted input is not a yes/no answer")
		}
		if err := c.Prompt("Please answer yes or no."); err != nil {
			return false, err
		}
	}
}

// Input reads a free-form value, trimmed. Scripted entries are consumed like
// any other command.
func (c *Context) Input(message string) (string, error) {
	cmd, err := c.ResolveNext(c.style.FormatPrompt(message))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(cmd.Text), nil
}
