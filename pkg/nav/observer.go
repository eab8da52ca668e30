package nav

// Observer is notified as a Context navigates. Calls happen synchronously on
// the navigating goroutine.
//
// CommandResolved fires for every command produced, including live input a
// menu then rejects. CommandAccepted fires only once a command has been
// acted on, with the text that reproduces that action when replayed.
type Observer interface {
	MenuEntered(title string)
	OptionSelected(title, key string)
	CommandResolved(cmd Command)
	CommandAccepted(cmd Command)
	MenuExited(title string)
}

// Observers fans every notification out to each non-nil observer in order.
func Observers(observers ...Observer) Observer {
	var list multiObserver
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) MenuEntered(title string) {
	for _, o := range m {
		o.MenuEntered(title)
	}
}

func (m multiObserver) OptionSelected(title, key string) {
	for _, o := range m {
		o.OptionSelected(title, key)
	}
}

func (m multiObserver) CommandResolved(cmd Command) {
	for _, o := range m {
		o.CommandResolved(cmd)
	}
}

func (m multiObserver) CommandAccepted(cmd Command) {
	for _, o := range m {
		o.CommandAccepted(cmd)
	}
}

func (m multiObserver) MenuExited(title string) {
	for _, o := range m {
		o.MenuExited(title)
	}
}

type nopObserver struct{}

func (nopObserver) MenuEntered(string)            {}
func (nopObserver) OptionSelected(string, string) {}
func (nopObserver) CommandResolved(Command)       {}
func (nopObserver) CommandAccepted(Command)       {}
func (nopObserver) MenuExited(string)             {}
