package script

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"navigator/pkg/nav"
)

// ErrUnknownMode is returned for a step mode other than silent, show, pause
// or confirm.
var ErrUnknownMode = errors.New("script: unknown mode")

// Mode is how a step is replayed.
type Mode string

const (
	ModeSilent  Mode = "silent"
	ModeShow    Mode = "show"
	ModePause   Mode = "pause"
	ModeConfirm Mode = "confirm"
)

// ParseMode accepts the four mode names; "" means silent.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeSilent, nil
	case ModeSilent, ModeShow, ModePause, ModeConfirm:
		return m, nil
	default:
		return "", errors.Wrapf(ErrUnknownMode, "%q", s)
	}
}

func (m Mode) directive() nav.Directive {
	switch m {
	case ModeShow:
		return nav.DirectiveShow
	case ModePause:
		return nav.DirectivePause
	case ModeConfirm:
		return nav.DirectiveConfirm
	default:
		return nav.DirectiveNone
	}
}

// Step is one simulated input.
type Step struct {
	Input string `yaml:"input"`
	Mode  Mode   `yaml:"mode,omitempty"`
}

// Entry encodes the step for nav.Context.Execute.
func (s Step) Entry() string {
	return nav.Encode(s.Input, s.Mode.directive())
}

// UnmarshalYAML accepts either a bare scalar (a silent step) or a mapping.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.Input = value.Value
		s.Mode = ModeSilent
		return nil
	}

	type plain Step
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	mode, err := ParseMode(string(p.Mode))
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	s.Input = p.Input
	s.Mode = mode
	return nil
}

// MarshalYAML writes silent steps as bare scalars.
func (s Step) MarshalYAML() (interface{}, error) {
	if s.Mode == "" || s.Mode == ModeSilent {
		return s.Input, nil
	}
	type plain Step
	return plain(s), nil
}

// Script is a named, replayable sequence of inputs.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// Entries encodes every step, in order, for nav.Context.Execute.
func (s *Script) Entries() []string {
	entries := make([]string, len(s.Steps))
	for i, step := range s.Steps {
		entries[i] = step.Entry()
	}
	return entries
}

// Load reads a YAML script.
func Load(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "script: decode yaml")
	}
	return &s, nil
}

// Save writes s as YAML.
func (s *Script) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "script: encode yaml")
	}
	return enc.Close()
}
