package nav

import (
	"strings"
)

// Style holds the plain-text decorations printed around prompts.
type Style struct {
	BarLength    int    // width of the separator bar
	InputCue     string // printed before a live read
	PauseCue     string // printed while waiting for Enter
	AutoCue      string // printed before an echoed scripted input
	Cursor       string // prefix for prompt lines
	OptionHeader string // heading above the option list
}

// DefaultStyle returns the stock decorations.
func DefaultStyle() Style {
	return Style{
		BarLength:    32,
		InputCue:     "=> ",
		PauseCue:     "=[Enter]> ",
		AutoCue:      "=[AUTO]> ",
		Cursor:       "> ",
		OptionHeader: "  -- [ Options ] --",
	}
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.BarLength <= 0 {
		s.BarLength = d.BarLength
	}
	if s.InputCue == "" {
		s.InputCue = d.InputCue
	}
	if s.PauseCue == "" {
		s.PauseCue = d.PauseCue
	}
	if s.AutoCue == "" {
		s.AutoCue = d.AutoCue
	}
	if s.Cursor == "" {
		s.Cursor = d.Cursor
	}
	if s.OptionHeader == "" {
		s.OptionHeader = d.OptionHeader
	}
	return s
}

// Bar is the separator line, followed by an empty line.
func (s Style) Bar() string {
	return strings.Repeat("_", s.BarLength) + "\n"
}

// FormatPrompt prefixes every line of message with the cursor.
func (s Style) FormatPrompt(message string) string {
	lines := splitLines(message)
	for i, line := range lines {
		lines[i] = s.Cursor + line
	}
	return strings.Join(lines, "\n")
}

// FormatOptions renders the option panel, or "" when there are no options.
func (s Style) FormatOptions(options []Option) string {
	if len(options) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(s.OptionHeader)
	for _, opt := range options {
		b.WriteString("\n[")
		b.WriteString(opt.Key)
		b.WriteString("]")
		if opt.Description != "" {
			b.WriteString(": ")
			b.WriteString(opt.Description)
		}
	}
	return b.String()
}

// FormatMenu is the full text shown for one menu iteration.
func (s Style) FormatMenu(prompt string, options []Option) string {
	text := s.FormatPrompt(prompt)
	if panel := s.FormatOptions(options); panel != "" {
		text += "\n" + panel
	}
	return text
}

// splitLines splits on line breaks, accepting \r\n, and drops one trailing
// empty line.
func splitLines(message string) []string {
	message = strings.TrimSuffix(message, "\n")
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
