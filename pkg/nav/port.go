package nav

// InputSource supplies live input one line at a time. ReadLine blocks; the
// returned line may still carry its terminator.
type InputSource interface {
	ReadLine() (string, error)
}

// OutputSink receives everything the engine prints.
type OutputSink interface {
	// Write prints s without a trailing newline (used for input cues).
	Write(s string) error
	WriteLine(s string) error
	Flush() error
}

// Port is a terminal: input and output together.
type Port interface {
	InputSource
	OutputSink
}
