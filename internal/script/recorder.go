package script

import (
	"navigator/pkg/nav"
)

// Recorder captures the commands a user typed and the session acted on, so
// the session can be replayed later. Rejected input and scripted commands
// are not recorded. Register it with nav.WithObserver.
type Recorder struct {
	steps []Step
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) CommandAccepted(cmd nav.Command) {
	if cmd.Source != nav.User {
		return
	}
	r.steps = append(r.steps, Step{Input: cmd.Text, Mode: ModeSilent})
}

func (r *Recorder) CommandResolved(nav.Command) {}

func (r *Recorder) MenuEntered(string) {}

func (r *Recorder) OptionSelected(string, string) {}

func (r *Recorder) MenuExited(string) {}

// Script returns what has been recorded so far under the given name.
func (r *Recorder) Script(name, description string) *Script {
	steps := make([]Step, len(r.steps))
	copy(steps, r.steps)
	return &Script{Name: name, Description: description, Steps: steps}
}

// Len reports how many steps have been recorded.
func (r *Recorder) Len() int {
	return len(r.steps)
}
