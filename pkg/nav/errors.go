package nav

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrBreak may be returned by an option handler to leave the menu it was
// selected from. The menu returns nil to its caller.
var ErrBreak = errors.New("nav: break")

// AutomationError reports a scripted run that drove a menu somewhere its
// script did not anticipate: an entry that matches no option, or an entry
// carrying an unknown directive marker. Live users never trigger it.
type AutomationError struct {
	Reason  string
	Prompt  string
	Command string
	// Remaining is the queue as stored; the next entry is the last one.
	Remaining []string
}

func (e *AutomationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "AUTOMATION ERROR: %s\n", e.Reason)
	fmt.Fprintf(&b, "Command: %q\n", e.Command)
	b.WriteString("Prompt:\n")
	b.WriteString(e.Prompt)
	b.WriteString("\nRemaining queue (read in reverse): [")
	for i, entry := range e.Remaining {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", entry)
	}
	b.WriteString("]")
	return b.String()
}

// IsAutomationError reports whether err wraps an *AutomationError.
func IsAutomationError(err error) bool {
	var ae *AutomationError
	return errors.As(err, &ae)
}

// AsAutomationError extracts the *AutomationError wrapped in err.
func AsAutomationError(err error) (*AutomationError, bool) {
	var ae *AutomationError
	ok := errors.As(err, &ae)
	return ae, ok
}
