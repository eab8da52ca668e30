package nav

// Source identifies where a resolved command came from.
type Source int

const (
	// User commands were typed live, or were scripted and then accepted
	// through the confirmation prompt.
	User Source = iota
	// Automated commands were replayed from the scripted queue.
	Automated
)

func (s Source) String() string {
	switch s {
	case User:
		return "user"
	case Automated:
		return "automated"
	default:
		return "unknown"
	}
}

// PromptLevel controls what Prompt does after a command was resolved.
// Levels are ordered: Hide < Show < Pause.
type PromptLevel int

const (
	// Hide suppresses prompts.
	Hide PromptLevel = iota
	// Show prints prompts followed by a bar.
	Show
	// Pause prints prompts and waits for Enter.
	Pause
)

func (l PromptLevel) String() string {
	switch l {
	case Hide:
		return "hide"
	case Show:
		return "show"
	case Pause:
		return "pause"
	default:
		return "unknown"
	}
}

// Command is one resolved input event.
type Command struct {
	Text   string
	Source Source
	Level  PromptLevel
}
