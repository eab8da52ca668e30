package nav

import (
	"strings"
	"unicode/utf8"
)

// Directive selects how a scripted entry is displayed when it is replayed.
type Directive int

const (
	// DirectiveNone replays silently.
	DirectiveNone Directive = iota
	// DirectiveShow prints the prompt and the echoed input without blocking.
	DirectiveShow
	// DirectivePause prints the prompt and the echoed input, then waits for Enter.
	DirectivePause
	// DirectiveConfirm offers the input to the user, who may accept or take over.
	DirectiveConfirm
)

// Directive markers. An entry is tagged when it contains a line break; its
// last rune is then the marker.
const (
	markerShow    = '\n'
	markerPause   = '.'
	markerConfirm = '?'
)

func (d Directive) String() string {
	switch d {
	case DirectiveNone:
		return "silent"
	case DirectiveShow:
		return "show"
	case DirectivePause:
		return "pause"
	case DirectiveConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Encode renders text in the scripted entry format understood by Execute.
func Encode(text string, d Directive) string {
	switch d {
	case DirectiveShow:
		return text + "\n" + string(markerShow)
	case DirectivePause:
		return text + "\n" + string(markerPause)
	case DirectiveConfirm:
		return text + "\n" + string(markerConfirm)
	default:
		return text
	}
}

// Silent is Encode(text, DirectiveNone).
func Silent(text string) string { return Encode(text, DirectiveNone) }

// Shown is Encode(text, DirectiveShow).
func Shown(text string) string { return Encode(text, DirectiveShow) }

// Paused is Encode(text, DirectivePause).
func Paused(text string) string { return Encode(text, DirectivePause) }

// Confirmable is Encode(text, DirectiveConfirm).
func Confirmable(text string) string { return Encode(text, DirectiveConfirm) }

// decodeEntry splits a raw queue entry into its text and marker. Untagged
// entries are returned verbatim with tagged=false.
func decodeEntry(line string) (text string, marker rune, tagged bool) {
	if !strings.Contains(line, "\n") {
		return line, 0, false
	}
	marker, size := utf8.DecodeLastRuneInString(line)
	return strings.TrimSpace(line[:len(line)-size]), marker, true
}

// queue is the scripted input stack. The next entry lives at the end.
type queue struct {
	entries []string
}

// push adds a batch so that it pops in the order given.
func (q *queue) push(inputs []string) {
	for i := len(inputs) - 1; i >= 0; i-- {
		q.entries = append(q.entries, inputs[i])
	}
}

func (q *queue) pop() (string, bool) {
	if len(q.entries) == 0 {
		return "", false
	}
	last := len(q.entries) - 1
	line := q.entries[last]
	q.entries = q.entries[:last]
	return line, true
}

func (q *queue) clear() {
	q.entries = nil
}

func (q *queue) len() int {
	return len(q.entries)
}

// snapshot copies the entries in storage order, i.e. reversed relative to
// the order they will be replayed.
func (q *queue) snapshot() []string {
	out := make([]string, len(q.entries))
	copy(out, q.entries)
	return out
}
